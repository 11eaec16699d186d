// Package cli provides the cobra command tree for the travelog binary.
// Commands talk to the core only through driving ports, which the binary
// injects with SetServices before calling Execute.
package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/travelog/internal/core/ports/driving"
	"github.com/custodia-labs/travelog/internal/logger"
)

// version is set at build time via SetVersion.
var version = "dev"

var (
	ingestService   driving.IngestService
	mediaService    driving.MediaService
	geoService      driving.GeoService
	settingsService driving.SettingsService
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "travelog",
	Short: "Parse and store travel media metadata",
	Long: `travelog reads FIT activity files and photo EXIF metadata, validates
every sample and tag, and stores the typed result for later analysis.

Files can be parsed on demand, ingested in bulk, or picked up as they
appear in a watched media directory.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

// Services holds the driving ports the commands use.
// Nil services make the commands that need them fail with a clear error.
type Services struct {
	Ingest   driving.IngestService
	Media    driving.MediaService
	Geo      driving.GeoService
	Settings driving.SettingsService
}

// SetServices injects the core services.
func SetServices(s Services) {
	ingestService = s.Ingest
	mediaService = s.Media
	geoService = s.Geo
	settingsService = s.Settings
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	version = v
}

// Execute runs the root command.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}
