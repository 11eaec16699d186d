package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/travelog/internal/core/domain"
)

var mediaCmd = &cobra.Command{
	Use:   "media",
	Short: "Inspect stored parse results",
}

var mediaListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored parse results",
	Long: `Lists stored parse results, most recently updated first.
Soft-deleted results are hidden unless --deleted is given.`,
	Args: cobra.NoArgs,
	RunE: runMediaList,
}

var mediaGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Print a stored parse result as JSON",
	Args:  cobra.ExactArgs(1),
	RunE:  runMediaGet,
}

var mediaDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Soft-delete a stored parse result",
	Args:  cobra.ExactArgs(1),
	RunE:  runMediaDelete,
}

func init() {
	mediaListCmd.Flags().String("format", "", "only list results of this format (fit, photo, video)")
	mediaListCmd.Flags().String("prefix", "", "only list results whose stored path has this prefix")
	mediaListCmd.Flags().String("owner", "", "only list results owned by this actor")
	mediaListCmd.Flags().Bool("deleted", false, "include soft-deleted results")
	mediaListCmd.Flags().IntP("limit", "n", 50, "maximum number of results")

	mediaCmd.AddCommand(mediaListCmd)
	mediaCmd.AddCommand(mediaGetCmd)
	mediaCmd.AddCommand(mediaDeleteCmd)
	rootCmd.AddCommand(mediaCmd)
}

func runMediaList(cmd *cobra.Command, _ []string) error {
	if mediaService == nil {
		return errors.New("media service not configured")
	}

	format, _ := cmd.Flags().GetString("format")
	prefix, _ := cmd.Flags().GetString("prefix")
	owner, _ := cmd.Flags().GetString("owner")
	deleted, _ := cmd.Flags().GetBool("deleted")
	limit, _ := cmd.Flags().GetInt("limit")

	filter := domain.MediaFilter{
		Format:         domain.Format(format),
		PathPrefix:     prefix,
		Owner:          owner,
		IncludeDeleted: deleted,
	}
	docs, err := mediaService.List(cmd.Context(), filter, limit)
	if err != nil {
		return fmt.Errorf("failed to list media: %w", err)
	}

	if len(docs) == 0 {
		cmd.Println("No media found.")
		return nil
	}

	out := cmd.OutOrStdout()
	p := newPalette(out)
	for i := range docs {
		doc := &docs[i]
		line := fmt.Sprintf("%s  %-5s %s  %d entries, %d rejected",
			doc.ID, doc.Format, doc.Path, doc.Result.Total(), len(doc.Result.Rejected))
		if doc.Provenance.Deleted {
			line = p.Muted(line + " (deleted)")
		}
		fmt.Fprintf(out, "%s  %s\n", line, p.Muted(doc.Provenance.UpdatedAt.Local().Format(time.DateTime)))
	}
	return nil
}

func runMediaGet(cmd *cobra.Command, args []string) error {
	if mediaService == nil {
		return errors.New("media service not configured")
	}

	doc, err := mediaService.Get(cmd.Context(), args[0])
	if errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("media %s not found", args[0])
	}
	if err != nil {
		return fmt.Errorf("failed to get media: %w", err)
	}

	return writeJSON(cmd.OutOrStdout(), doc)
}

func runMediaDelete(cmd *cobra.Command, args []string) error {
	if mediaService == nil {
		return errors.New("media service not configured")
	}

	err := mediaService.Delete(cmd.Context(), args[0])
	if errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("media %s not found", args[0])
	}
	if err != nil {
		return fmt.Errorf("failed to delete media: %w", err)
	}

	cmd.Printf("Deleted media %s.\n", args[0])
	return nil
}
