// Command travelog parses FIT activity files and photo metadata into
// validated records and stores them for analysis.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/custodia-labs/travelog/internal/adapters/driven/config/file"
	"github.com/custodia-labs/travelog/internal/adapters/driven/exif"
	"github.com/custodia-labs/travelog/internal/adapters/driven/fitdecode"
	"github.com/custodia-labs/travelog/internal/adapters/driven/geodata"
	"github.com/custodia-labs/travelog/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/travelog/internal/adapters/driving/cli"
	"github.com/custodia-labs/travelog/internal/core/domain"
	"github.com/custodia-labs/travelog/internal/core/ports/driven"
	"github.com/custodia-labs/travelog/internal/core/services"
	"github.com/custodia-labs/travelog/internal/logger"
	"github.com/custodia-labs/travelog/internal/parsers"
	"github.com/custodia-labs/travelog/internal/parsers/fit"
	"github.com/custodia-labs/travelog/internal/parsers/photo"
	"github.com/custodia-labs/travelog/internal/parsers/video"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := run(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cli.SetVersion(version)

	configStore, err := file.NewConfigStore(os.Getenv("TRAVELOG_CONFIG_DIR"))
	if err != nil {
		return report("opening config", err)
	}
	settingsService := services.NewSettingsService(configStore)

	settings, err := settingsService.Get()
	if err != nil {
		return report("loading settings", err)
	}

	store, err := sqlite.NewStore(settings.DataDir)
	if err != nil {
		return report("opening store", err)
	}
	defer store.Close()

	var reference driven.GeoReference
	if settings.GeoStaticDir != "" {
		ref, err := geodata.New(settings.GeoStaticDir)
		if err != nil {
			return report("opening geographic data", err)
		}
		reference = ref
	}

	svc := cli.Services{
		Media:    services.NewMediaService(store.MediaStore(), settings.Ingest.Actor),
		Geo:      services.NewGeoService(reference),
		Settings: settingsService,
	}

	// Invalid parse settings disable ingestion but keep "config set" usable.
	registry, err := newRegistry(settings)
	if err != nil {
		logger.Warn("configuring parsers: %v", err)
		logger.Warn("Run 'travelog config show' to check your settings.")
	} else {
		svc.Ingest = services.NewIngestService(registry, store.MediaStore(), store.IngestJournal(), settings.Ingest)
	}
	cli.SetServices(svc)

	// cobra has already printed command errors.
	return cli.Execute(ctx)
}

// newRegistry builds the parser registry from settings.
func newRegistry(settings *domain.Settings) (*parsers.Registry, error) {
	fitParser, err := fit.New(fitdecode.New(), fit.Config{
		Settings:  settings.Parse,
		MediaRoot: settings.MediaRoot,
	})
	if err != nil {
		return nil, err
	}

	photoParser, err := photo.New(exif.New(), photo.Config{
		Settings:  settings.Parse,
		MediaRoot: settings.MediaRoot,
	})
	if err != nil {
		return nil, err
	}

	return parsers.NewRegistry(fitParser, photoParser, video.New(settings.MediaRoot)), nil
}

func report(step string, err error) error {
	logger.Error("%s: %v", step, err)
	return fmt.Errorf("%s: %w", step, err)
}
