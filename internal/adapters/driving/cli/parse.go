package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/travelog/internal/core/domain"
)

var parseCmd = &cobra.Command{
	Use:   "parse <file>",
	Short: "Parse a media file without storing it",
	Long: `Parses a FIT activity file or a photo and prints a summary of the
accepted entries per bucket and the inputs rejected by validation.
Nothing is written to the store.

Use --json to print the full parse result.`,
	Args: cobra.ExactArgs(1),
	RunE: runParse,
}

func init() {
	parseCmd.Flags().Bool("json", false, "print the full result as JSON")
	parseCmd.Flags().Bool("rejected", false, "list every rejected input with its findings")
	rootCmd.AddCommand(parseCmd)
}

func runParse(cmd *cobra.Command, args []string) error {
	if ingestService == nil {
		return errors.New("ingest service not configured")
	}

	asJSON, _ := cmd.Flags().GetBool("json")
	showRejected, _ := cmd.Flags().GetBool("rejected")

	result, err := ingestService.Parse(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("parse failed: %w", err)
	}

	if asJSON {
		return writeJSON(cmd.OutOrStdout(), result)
	}

	printResult(cmd.OutOrStdout(), result, showRejected)
	return nil
}

// printResult writes a per-bucket summary of result.
func printResult(out io.Writer, result *domain.ParseResult, showRejected bool) {
	p := newPalette(out)

	fmt.Fprintln(out, p.Title(fmt.Sprintf("%s (%s)", result.Path, result.Format)))

	buckets := domain.PhotoBuckets()
	if result.Format == domain.FormatFIT {
		buckets = domain.ActivityBuckets()
	}
	for _, b := range buckets {
		n := result.Count(b)
		line := fmt.Sprintf("  %-16s %d", b, n)
		if n == 0 {
			line = p.Muted(line)
		}
		fmt.Fprintln(out, line)
	}

	rejected := fmt.Sprintf("  %-16s %d", "rejected", len(result.Rejected))
	if len(result.Rejected) > 0 {
		rejected = p.Warning(rejected)
	}
	fmt.Fprintln(out, rejected)

	if !showRejected {
		return
	}
	for _, r := range result.Rejected {
		if r.Partial {
			fmt.Fprintf(out, "  #%d %s (partial)\n", r.Index, r.Bucket)
		} else {
			fmt.Fprintf(out, "  #%d %s\n", r.Index, r.Bucket)
		}
		for _, f := range r.Findings {
			fmt.Fprintf(out, "      %s\n", f.Error())
		}
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}
