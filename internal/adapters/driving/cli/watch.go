package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/travelog/internal/adapters/driving/watcher"
)

var watchCmd = &cobra.Command{
	Use:   "watch [dir]",
	Short: "Ingest media files as they appear",
	Long: `Watches a media directory and ingests every supported file that is
created or written below it. Hidden files and directories are skipped.

Without an argument the configured media.root is watched.
Runs until interrupted.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().Duration("settle", watcher.DefaultSettle, "quiet period before a changed file is ingested")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	if ingestService == nil {
		return errors.New("ingest service not configured")
	}

	dir, err := watchDir(args)
	if err != nil {
		return err
	}
	settle, _ := cmd.Flags().GetDuration("settle")

	out := cmd.OutOrStdout()
	p := newPalette(out)
	w := watcher.New(dir, ingestService,
		watcher.WithSettle(settle),
		watcher.WithNotify(func(r watcher.Result) {
			if r.Err != nil {
				fmt.Fprintf(out, "%s %s: %v\n", p.Error("FAIL"), r.Path, r.Err)
				return
			}
			fmt.Fprintf(out, "%s %s -> %s\n", p.Success("OK  "), r.Path, r.ID)
		}),
	)

	ctx := cmd.Context()
	if err := w.Start(ctx); err != nil {
		return fmt.Errorf("watch failed: %w", err)
	}
	fmt.Fprintf(out, "Watching %s (Ctrl+C to stop)\n", p.Title(dir))

	select {
	case <-ctx.Done():
	case <-w.Done():
	}

	if err := w.Stop(); err != nil {
		return fmt.Errorf("stopping watcher: %w", err)
	}
	fmt.Fprintln(out, "Stopped.")
	return nil
}

// watchDir picks the directory argument or falls back to the media root.
func watchDir(args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	if settingsService == nil {
		return "", errors.New("no directory given and settings service not configured")
	}
	settings, err := settingsService.Get()
	if err != nil {
		return "", fmt.Errorf("failed to get settings: %w", err)
	}
	if settings.MediaRoot == "" {
		return "", errors.New("no directory given and media.root is not set")
	}
	return settings.MediaRoot, nil
}
