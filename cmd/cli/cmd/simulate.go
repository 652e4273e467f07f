// Package cmd - simulate command
package cmd

import (
	"context"
	"io"
	"os"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"roaming-cost/core/output"
	"roaming-cost/core/simulation"
	"roaming-cost/core/ui"
	"roaming-cost/internal/config"
	"roaming-cost/internal/errors"
	"roaming-cost/internal/logging"
)

// tripFlags are the flags shared by every command that runs a simulation
type tripFlags struct {
	countries  []string
	start      string
	end        string
	profile    string
	data       string
	voice      string
	sms        string
	subscriber string
	format     string
	output     string
}

func (f *tripFlags) bind(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringSliceVarP(&f.countries, "countries", "c", nil, "destination country codes, comma separated (e.g. DE,FR)")
	flags.StringVar(&f.start, "start", "", "trip start date (YYYY-MM-DD)")
	flags.StringVar(&f.end, "end", "", "trip end date (YYYY-MM-DD)")
	flags.StringVarP(&f.profile, "profile", "p", "", "usage profile (light, medium, heavy, custom)")
	flags.StringVar(&f.data, "data", "", "daily data in MB, overrides the profile")
	flags.StringVar(&f.voice, "voice", "", "daily voice minutes, overrides the profile")
	flags.StringVar(&f.sms, "sms", "", "daily SMS count, overrides the profile")
	flags.StringVarP(&f.subscriber, "subscriber", "s", "", "subscriber ID to simulate for")
	flags.StringVarP(&f.format, "format", "f", "", "output format (cli, json, markdown, pdf)")
	flags.StringVarP(&f.output, "output", "o", "", "write the report to a file instead of stdout")
}

// request builds a simulation request from the flags
func (f *tripFlags) request() (simulation.Request, error) {
	req := simulation.Request{
		SubscriberID: f.subscriber,
		Countries:    f.countries,
		StartDate:    f.start,
		EndDate:      f.end,
		Profile:      f.profile,
	}

	var overrides simulation.UsageOverrides
	for _, o := range []struct {
		flag   string
		value  string
		target **decimal.Decimal
	}{
		{"data", f.data, &overrides.DailyDataMB},
		{"voice", f.voice, &overrides.DailyVoiceMin},
		{"sms", f.sms, &overrides.DailySMS},
	} {
		d, err := parseAmountFlag(o.flag, o.value)
		if err != nil {
			return simulation.Request{}, err
		}
		*o.target = d
	}
	if !overrides.IsEmpty() {
		req.Usage = &overrides
	}
	return req, nil
}

func parseAmountFlag(name, value string) (*decimal.Decimal, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}
	d, err := decimal.NewFromString(value)
	if err != nil {
		return nil, errors.Wrapf(errors.TypeInput, err, "invalid --%s value %q", name, value)
	}
	return &d, nil
}

var simulateFlags tripFlags

// simulateCmd represents the simulate command
var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Estimate roaming costs for a trip",
	Long: `Price every bundle covering the trip against pay-as-you-go rates
and recommend the cheapest options.

Examples:
  roaming-cost simulate --countries DE --start 2026-07-01 --end 2026-07-07 --profile light
  roaming-cost simulate -c DE,FR,IT --start 2026-07-01 --end 2026-08-15 --data 800
  roaming-cost simulate -c US --start 2026-07-01 --end 2026-07-07 -f pdf -o trip.pdf`,
	Args: cobra.NoArgs,
	RunE: runSimulate,
}

func init() {
	simulateFlags.bind(simulateCmd)
	rootCmd.AddCommand(simulateCmd)
}

func runSimulate(cmd *cobra.Command, args []string) error {
	req, err := simulateFlags.request()
	if err != nil {
		return reportError(cmd, err)
	}
	return simulateAndRender(cmd, req, simulateFlags)
}

// simulateAndRender runs the request and writes the report in the chosen format
func simulateAndRender(cmd *cobra.Command, req simulation.Request, flags tripFlags) error {
	cfg := config.Get()

	format := output.Format(flags.format)
	if format == "" {
		format = output.Format(cfg.Output.DefaultFormat)
	}
	formatter, err := output.DefaultRegistry(output.Options{NoColor: cfg.Output.NoColor}).Get(format)
	if err != nil {
		return reportError(cmd, err)
	}
	if format == output.FormatPDF && flags.output == "" {
		return reportError(cmd, errors.Input("pdf output requires --output"))
	}

	service, err := newService()
	if err != nil {
		return reportError(cmd, err)
	}
	report, err := service.Run(context.Background(), req)
	if err != nil {
		return reportError(cmd, err)
	}

	if flags.output == "" {
		return formatter.Render(cmd.OutOrStdout(), report)
	}
	return writeReport(cmd, flags.output, formatter, report)
}

func writeReport(cmd *cobra.Command, path string, formatter output.Formatter, report *output.Report) error {
	f, err := os.Create(path)
	if err != nil {
		return reportError(cmd, errors.Wrap(errors.TypeOutput, "failed to create output file", err))
	}
	if err := formatter.Render(f, report); err != nil {
		f.Close()
		return reportError(cmd, err)
	}
	if err := f.Close(); err != nil {
		return reportError(cmd, errors.Wrap(errors.TypeOutput, "failed to write output file", err))
	}

	logging.Debug("report written", zap.String("path", path), zap.String("format", string(formatter.Format())))
	ui.NewWriter(cmd.ErrOrStderr(), config.Get().Output.NoColor).
		Success("Report written to %s", path)
	return nil
}

// reportError prints err for a human and returns it so cobra exits non-zero
func reportError(cmd *cobra.Command, err error) error {
	logging.Debug("command failed", append(errors.Fields(err), zap.String("command", cmd.CommandPath()))...)
	printError(cmd.ErrOrStderr(), err)
	cmd.SilenceErrors = true
	return err
}

func printError(w io.Writer, err error) {
	ui.NewWriter(w, config.Get().Output.NoColor).Error("%s", err.Error())
}
