// Package cmd - catalog commands
package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"roaming-cost/core/catalog"
	"roaming-cost/core/types"
	"roaming-cost/core/ui"
	"roaming-cost/internal/config"
)

var catalogCountry string

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Show the reference data simulations run against",
	Long: `Show the countries, bundles, metered rates, usage presets and
subscribers in the active catalog.

The built-in catalog is used unless --catalog or ROAMING_CATALOG names
an HCL catalog file.`,
}

var catalogCountriesCmd = &cobra.Command{
	Use:   "countries",
	Short: "List destination countries by region",
	Args:  cobra.NoArgs,
	RunE: withCatalog(func(w *ui.Writer, c *catalog.Catalog) error {
		w.Header("Countries")
		for _, group := range c.CountriesByRegion() {
			w.SubHeader(string(group.Region))
			t := w.NewTable("Code", "Country", "")
			for _, country := range group.Countries {
				t.AddRow(country.Code, country.Name, country.Flag)
			}
			t.Render()
		}
		return nil
	}),
}

var catalogBundlesCmd = &cobra.Command{
	Use:   "bundles",
	Short: "List roaming bundles",
	Args:  cobra.NoArgs,
	RunE: withCatalog(func(w *ui.Writer, c *catalog.Catalog) error {
		bundles := c.Bundles
		if catalogCountry != "" {
			countries, err := c.ResolveCountries(strings.Split(catalogCountry, ","))
			if err != nil {
				return err
			}
			codes := make([]string, len(countries))
			for i, country := range countries {
				codes[i] = country.Code
			}
			bundles = c.BundlesFor(codes)
		}

		currency := config.Get().Simulation.Currency
		w.Header("Bundles")
		if len(bundles) == 0 {
			w.Warning("No bundle covers %s", catalogCountry)
			return nil
		}
		t := w.NewTable("ID", "Name", "Data", "Voice", "SMS", "Days", "Price")
		for _, b := range bundles {
			t.AddRow(b.ID, b.Name,
				b.DataGB.String()+" GB",
				b.VoiceMinutes.String()+" min",
				b.SMS.String(),
				fmt.Sprintf("%d", b.ValidityDays),
				types.FormatAmount(b.Price, currency))
		}
		t.Render()
		return nil
	}),
}

var catalogRatesCmd = &cobra.Command{
	Use:   "rates",
	Short: "List pay-as-you-go rates",
	Args:  cobra.NoArgs,
	RunE: withCatalog(func(w *ui.Writer, c *catalog.Catalog) error {
		currency := config.Get().Simulation.Currency
		w.Header("Metered rates")
		t := w.NewTable("Country", "Data / MB", "Voice / min", "SMS")
		for _, r := range c.Rates {
			name := r.Country
			if country, ok := c.Country(r.Country); ok {
				name = country.Code + " " + country.Name
			}
			t.AddRow(name,
				types.FormatAmount(r.DataPerMB, currency),
				types.FormatAmount(r.VoicePerMin, currency),
				types.FormatAmount(r.SMSPerUnit, currency))
		}
		t.Render()
		w.Muted("Countries without a rate are priced at the fallback rate.")
		return nil
	}),
}

var catalogPresetsCmd = &cobra.Command{
	Use:   "presets",
	Short: "List usage profile presets",
	Args:  cobra.NoArgs,
	RunE: withCatalog(func(w *ui.Writer, c *catalog.Catalog) error {
		w.Header("Usage presets")
		t := w.NewTable("Profile", "Data / day", "Voice / day", "SMS / day")
		for _, p := range c.Presets {
			t.AddRow(p.Kind.String(),
				p.DailyDataMB.String()+" MB",
				p.DailyVoiceMin.String()+" min",
				p.DailySMS.String())
		}
		t.Render()
		return nil
	}),
}

var catalogSubscribersCmd = &cobra.Command{
	Use:   "subscribers",
	Short: "List subscribers",
	Args:  cobra.NoArgs,
	RunE: withCatalog(func(w *ui.Writer, c *catalog.Catalog) error {
		w.Header("Subscribers")
		t := w.NewTable("ID", "Name", "Phone", "Plan")
		for _, s := range c.Subscribers {
			t.AddRow(s.ID, s.Name, s.Phone, s.CurrentPlan)
		}
		t.Render()
		return nil
	}),
}

func init() {
	rootCmd.AddCommand(catalogCmd)
	catalogCmd.AddCommand(catalogCountriesCmd)
	catalogCmd.AddCommand(catalogBundlesCmd)
	catalogCmd.AddCommand(catalogRatesCmd)
	catalogCmd.AddCommand(catalogPresetsCmd)
	catalogCmd.AddCommand(catalogSubscribersCmd)

	catalogBundlesCmd.Flags().StringVar(&catalogCountry, "country", "", "only bundles covering these country codes (e.g. DE,US)")
}

// withCatalog opens the configured catalog before running fn
func withCatalog(fn func(*ui.Writer, *catalog.Catalog) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		c, err := catalog.Open(config.Get().Simulation.CatalogPath)
		if err != nil {
			return reportError(cmd, err)
		}
		w := ui.NewWriter(cmd.OutOrStdout(), config.Get().Output.NoColor)
		if err := fn(w, c); err != nil {
			return reportError(cmd, err)
		}
		return nil
	}
}
