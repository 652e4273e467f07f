// Package cmd - topup command
package cmd

import (
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"roaming-cost/core/usage"
	"roaming-cost/internal/errors"
)

var (
	topUpFlags      tripFlags
	topUpExtraData  string
	topUpExtraVoice string
	topUpExtraSMS   string
)

// topUpCmd represents the topup command
var topUpCmd = &cobra.Command{
	Use:   "topup",
	Short: "Compare a trip before and after adding extra usage",
	Long: `Simulate a trip, add extra usage spread evenly over the trip days
and show how the recommendation changes.

Extra amounts are trip totals, not daily values.

Examples:
  roaming-cost topup -c DE --start 2026-07-01 --end 2026-07-07 -p light --extra-data 7000
  roaming-cost topup -c US --start 2026-07-01 --end 2026-07-10 --extra-voice 120 -f markdown`,
	Args: cobra.NoArgs,
	RunE: runTopUp,
}

func init() {
	topUpFlags.bind(topUpCmd)
	topUpCmd.Flags().StringVar(&topUpExtraData, "extra-data", "", "extra data in MB for the whole trip")
	topUpCmd.Flags().StringVar(&topUpExtraVoice, "extra-voice", "", "extra voice minutes for the whole trip")
	topUpCmd.Flags().StringVar(&topUpExtraSMS, "extra-sms", "", "extra SMS for the whole trip")
	rootCmd.AddCommand(topUpCmd)
}

func runTopUp(cmd *cobra.Command, args []string) error {
	req, err := topUpFlags.request()
	if err != nil {
		return reportError(cmd, err)
	}

	var topUp usage.TopUp
	for _, extra := range []struct {
		flag   string
		value  string
		target *decimal.Decimal
	}{
		{"extra-data", topUpExtraData, &topUp.DataMB},
		{"extra-voice", topUpExtraVoice, &topUp.VoiceMin},
		{"extra-sms", topUpExtraSMS, &topUp.SMS},
	} {
		d, err := parseAmountFlag(extra.flag, extra.value)
		if err != nil {
			return reportError(cmd, err)
		}
		if d != nil {
			*extra.target = *d
		}
	}
	if topUp.IsZero() {
		return reportError(cmd, errors.Input("at least one of --extra-data, --extra-voice or --extra-sms is required"))
	}

	req.TopUp = &topUp
	return simulateAndRender(cmd, req, topUpFlags)
}
