package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var geoCmd = &cobra.Command{
	Use:   "geo",
	Short: "Browse the geographic reference data",
	Long: `Reads province.json and city.json from the directory configured
as geo.static_dir.`,
}

var geoProvincesCmd = &cobra.Command{
	Use:   "provinces",
	Short: "List provinces",
	Args:  cobra.NoArgs,
	RunE:  runGeoProvinces,
}

var geoCitiesCmd = &cobra.Command{
	Use:   "cities <province-key>",
	Short: "List the cities of a province",
	Args:  cobra.ExactArgs(1),
	RunE:  runGeoCities,
}

func init() {
	geoCmd.PersistentFlags().Bool("json", false, "print as JSON")
	geoCmd.AddCommand(geoProvincesCmd)
	geoCmd.AddCommand(geoCitiesCmd)
	rootCmd.AddCommand(geoCmd)
}

func runGeoProvinces(cmd *cobra.Command, _ []string) error {
	if geoService == nil {
		return errors.New("geo service not configured")
	}

	provinces, err := geoService.Provinces(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to list provinces: %w", err)
	}

	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		return writeJSON(cmd.OutOrStdout(), provinces)
	}
	for _, p := range provinces {
		cmd.Printf("%-12s %s\n", p.Key, p.Name)
	}
	return nil
}

func runGeoCities(cmd *cobra.Command, args []string) error {
	if geoService == nil {
		return errors.New("geo service not configured")
	}

	cities, err := geoService.Cities(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("failed to list cities: %w", err)
	}

	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		return writeJSON(cmd.OutOrStdout(), cities)
	}
	if len(cities) == 0 {
		cmd.Printf("No cities for province %s.\n", args[0])
		return nil
	}
	for _, c := range cities {
		cmd.Printf("%-12s %s\n", c.Key, c.Name)
	}
	return nil
}
