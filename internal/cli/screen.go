package cli

import (
	"github.com/spf13/cobra"

	"dividend-screener/internal/app"
)

var (
	screenDataPath      string
	screenList          string
	screenCompanies     []string
	screenInflation     float64
	screenMinDivYield   float64
	screenMaxDivYield   float64
	screenMinGrowthRate float64
	screenMaxPayoutRate float64
	screenIndexYield    float64
)

var screenCmd = &cobra.Command{
	Use:   "screen",
	Short: "Filter a dividend list by yield, payout and growth, or look up companies in it",
	RunE: func(cmd *cobra.Command, args []string) error {
		a := getApp()
		cfg := a.Config
		flags := cmd.Flags()

		if flags.Changed("data") {
			cfg.Data.Path = screenDataPath
		}
		if flags.Changed("list") {
			cfg.Data.List = screenList
		}
		if flags.Changed("inflation") {
			cfg.Screening.Inflation = screenInflation
		}
		if flags.Changed("min-div-yield") {
			cfg.Screening.MinDivYield = screenMinDivYield
		}
		if flags.Changed("max-div-yield") {
			cfg.Screening.MaxDivYield = screenMaxDivYield
		}
		if flags.Changed("min-div-growth-rate") {
			cfg.Screening.MinDivGrowthRate = screenMinGrowthRate
		}
		if flags.Changed("max-div-payout-rate") {
			cfg.Screening.MaxDivPayoutRate = screenMaxPayoutRate
		}
		if flags.Changed("sp500-divy") {
			cfg.Screening.SP500DivYield = screenIndexYield
		}
		if err := cfg.Validate(); err != nil {
			return err
		}

		return a.Screen(cmd.Context(), app.ScreenOptions{
			DataPath:   cfg.Data.Path,
			List:       cfg.Data.List,
			Companies:  screenCompanies,
			Thresholds: cfg.Thresholds(),
		})
	},
}

func init() {
	screenCmd.Flags().StringVar(&screenDataPath, "data", "", "Path to the dividend workbook (defaults to config)")
	screenCmd.Flags().StringVar(&screenList, "list", "", "Worksheet to screen, e.g. Champions")
	screenCmd.Flags().StringSliceVarP(&screenCompanies, "company", "c", nil, "Print the summary of these symbols instead of screening")
	screenCmd.Flags().Float64Var(&screenInflation, "inflation", 0, "Inflation rate [%]")
	screenCmd.Flags().Float64Var(&screenMinDivYield, "min-div-yield", 0, "Minimum dividend yield [%]")
	screenCmd.Flags().Float64Var(&screenMaxDivYield, "max-div-yield", 0, "Maximum dividend yield [%]")
	screenCmd.Flags().Float64Var(&screenMinGrowthRate, "min-div-growth-rate", 0, "Minimum one-year dividend growth rate [%]")
	screenCmd.Flags().Float64Var(&screenMaxPayoutRate, "max-div-payout-rate", 0, "Maximum dividend payout rate [%]")
	screenCmd.Flags().Float64Var(&screenIndexYield, "sp500-divy", 0, "S&P 500 dividend yield [%]")
}
