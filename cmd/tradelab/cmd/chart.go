package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/tradelab/analytics"
)

var chartCmd = &cobra.Command{
	Use:   "chart",
	Short: "Render a session's equity curve to a PNG",
	Long: `Render the balance history of a session as a line chart.

Example:
  tradelab chart --session <id> --out equity.png`,
	RunE: runChart,
}

var (
	chartSession string
	chartSymbol  string
	chartOut     string
)

func init() {
	rootCmd.AddCommand(chartCmd)

	chartCmd.Flags().StringVarP(&chartSession, "session", "s", "", "session id (required)")
	chartCmd.Flags().StringVar(&chartSymbol, "symbol", "", "restrict to one instrument")
	chartCmd.Flags().StringVarP(&chartOut, "out", "o", "equity.png", "output PNG path")
	chartCmd.MarkFlagRequired("session")
}

func runChart(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	j, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer j.Close()

	s, err := j.GetSession(chartSession)
	if err != nil {
		return err
	}
	logs, err := j.List(chartSession)
	if err != nil {
		return fmt.Errorf("list logs: %w", err)
	}

	logs = analytics.FilterSymbol(logs, chartSymbol)
	points := analytics.EquityCurve(logs, s.InitialBalance)

	png, err := analytics.RenderEquityPNG(points, s.Name)
	if err != nil {
		return err
	}
	if err := os.WriteFile(chartOut, png, 0644); err != nil {
		return fmt.Errorf("write chart: %w", err)
	}

	fmt.Printf("Wrote %s (%d points)\n", chartOut, len(points))
	return nil
}
