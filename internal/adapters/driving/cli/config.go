package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/travelog/internal/core/domain"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage application settings",
	Long: `View and change the settings stored in ~/.travelog/config.toml.

Use "travelog config keys" to list every setting that can be changed.`,
	RunE: runConfigShow,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	Args:  cobra.NoArgs,
	RunE:  runConfigShow,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change a setting",
	Long: `Change a single setting. List settings take a comma separated value.

Examples:
  travelog config set media.root /srv/media
  travelog config set parse.semicircle_mode legacy_squared
  travelog config set parse.fit.gear device_info,device_settings`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

var configKeysCmd = &cobra.Command{
	Use:   "keys",
	Short: "List the setting keys",
	Args:  cobra.NoArgs,
	RunE:  runConfigKeys,
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configKeysCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	cmd.Println("[Paths]")
	cmd.Printf("  Media root: %s\n", orNotSet(settings.MediaRoot))
	cmd.Printf("  Data dir: %s\n", orNotSet(settings.DataDir))
	cmd.Printf("  Geo static dir: %s\n", orNotSet(settings.GeoStaticDir))
	cmd.Println()

	cmd.Println("[Parse]")
	cmd.Printf("  Drop unknown fields: %t\n", settings.Parse.DropUnknown)
	cmd.Printf("  Semicircle mode: %s\n", settings.Parse.SemicircleMode)
	for _, b := range domain.ActivityBuckets() {
		if names, ok := settings.Parse.FITMessages[b]; ok {
			cmd.Printf("  FIT %s: %s\n", b, strings.Join(names, ", "))
		}
	}
	for _, b := range domain.PhotoBuckets() {
		if categories, ok := settings.Parse.PhotoCategories[b]; ok {
			cmd.Printf("  Photo %s: %s\n", b, strings.Join(categories, ", "))
		}
	}
	cmd.Println()

	cmd.Println("[Ingest]")
	cmd.Printf("  Workers: %d\n", settings.Ingest.Workers)
	if settings.Ingest.Rate > 0 {
		cmd.Printf("  Rate: %g files/s (burst %d)\n", settings.Ingest.Rate, settings.Ingest.Burst)
	} else {
		cmd.Println("  Rate: unlimited")
	}
	cmd.Printf("  Actor: %s\n", orNotSet(settings.Ingest.Actor))
	cmd.Println()

	if err := settingsService.Validate(); err != nil {
		cmd.Printf("Warning: %v\n", err)
		cmd.Println("Run 'travelog config set' to fix configuration issues.")
	} else {
		cmd.Println("Configuration is valid.")
	}

	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	if err := settingsService.SetValue(args[0], args[1]); err != nil {
		return fmt.Errorf("failed to set %s: %w", args[0], err)
	}

	cmd.Printf("Set %s = %s\n", args[0], args[1])
	return nil
}

func runConfigKeys(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	for _, key := range settingsService.Keys() {
		cmd.Println(key)
	}
	return nil
}

func orNotSet(s string) string {
	if s == "" {
		return "(not set)"
	}
	return s
}
