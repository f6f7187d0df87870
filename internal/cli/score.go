package cli

import (
	"github.com/spf13/cobra"

	"dividend-screener/internal/app"
)

var scoreChartPath string

var scoreCmd = &cobra.Command{
	Use:   "score SYMBOL...",
	Short: "Compute yield, growth and payout ratio of companies from market data",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return getApp().Score(cmd.Context(), app.ScoreOptions{
			Symbols:   args,
			ChartPath: scoreChartPath,
		})
	},
}

func init() {
	scoreCmd.Flags().StringVar(&scoreChartPath, "chart", "", "Path to write a PNG chart of the dividend histories")
}
