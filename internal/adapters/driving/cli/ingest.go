package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/travelog/internal/core/ports/driving"
)

var ingestCmd = &cobra.Command{
	Use:   "ingest <path>...",
	Short: "Parse media files and store the results",
	Long: `Parses every given file and stores each result. Directories are
walked recursively; hidden files and directories are skipped, as are
files no parser supports.

Files are processed in parallel. A failure on one file does not stop
the others.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runIngest,
}

var ingestHistoryCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent ingestions",
	Args:  cobra.NoArgs,
	RunE:  runIngestHistory,
}

func init() {
	ingestCmd.Flags().StringArray("extra", nil, "metadata stored with every result (key=value, repeatable)")
	ingestHistoryCmd.Flags().IntP("limit", "n", 20, "number of entries to show")
	ingestCmd.AddCommand(ingestHistoryCmd)
	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, args []string) error {
	if ingestService == nil {
		return errors.New("ingest service not configured")
	}

	pairs, _ := cmd.Flags().GetStringArray("extra")
	extra, err := parseExtra(pairs)
	if err != nil {
		return err
	}

	paths, err := collectFiles(args, ingestService.Supports)
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		cmd.Println("No supported files found.")
		return nil
	}

	out := cmd.OutOrStdout()
	p := newPalette(out)

	outcomes := ingestService.IngestMany(cmd.Context(), paths, extra)
	for _, o := range outcomes {
		if o.Err != nil {
			fmt.Fprintf(out, "%s %s: %v\n", p.Error("FAIL"), o.Path, o.Err)
			continue
		}
		fmt.Fprintf(out, "%s %s -> %s (%d accepted, %d rejected)\n",
			p.Success("OK  "), o.Path, o.ID, o.Accepted, o.Rejected)
	}

	failed := driving.FailedOutcomes(outcomes)
	fmt.Fprintf(out, "Ingested %d of %d files.\n", len(outcomes)-len(failed), len(outcomes))
	if len(failed) > 0 {
		return fmt.Errorf("%d files failed: %w", len(failed), driving.JoinOutcomeErrors(outcomes))
	}
	return nil
}

// parseExtra turns key=value pairs into result metadata.
func parseExtra(pairs []string) (map[string]any, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	extra := make(map[string]any, len(pairs))
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		if !ok || strings.TrimSpace(key) == "" {
			return nil, fmt.Errorf("--extra %q must be formatted as key=value", pair)
		}
		extra[strings.TrimSpace(key)] = value
	}
	return extra, nil
}

// collectFiles expands directories into the supported files below them.
// Explicit file arguments are passed through unchecked so that errors
// surface per file.
func collectFiles(args []string, supports func(string) bool) ([]string, error) {
	var paths []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil || !info.IsDir() {
			paths = append(paths, arg)
			continue
		}

		err = filepath.WalkDir(arg, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if path != arg && strings.HasPrefix(d.Name(), ".") {
				if d.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}
			if !d.IsDir() && supports(path) {
				paths = append(paths, path)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walking %s: %w", arg, err)
		}
	}
	return paths, nil
}

func runIngestHistory(cmd *cobra.Command, _ []string) error {
	if ingestService == nil {
		return errors.New("ingest service not configured")
	}

	limit, _ := cmd.Flags().GetInt("limit")
	entries, err := ingestService.History(cmd.Context(), limit)
	if err != nil {
		return fmt.Errorf("failed to read history: %w", err)
	}

	if len(entries) == 0 {
		cmd.Println("No ingestions recorded.")
		return nil
	}

	out := cmd.OutOrStdout()
	p := newPalette(out)
	for _, e := range entries {
		status := p.Success("OK  ")
		detail := fmt.Sprintf("%s (%d accepted, %d rejected)", e.MediaID, e.Accepted, e.Rejected)
		if !e.Succeeded() {
			status = p.Error("FAIL")
			detail = e.Error
		}
		fmt.Fprintf(out, "%s %s %s %s %s\n",
			p.Muted(e.StartedAt.Local().Format(time.DateTime)),
			status,
			e.Path,
			detail,
			p.Muted(e.Duration().Round(time.Millisecond).String()),
		)
	}
	return nil
}
