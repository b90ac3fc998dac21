package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/tradelab/analytics"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Print performance metrics for a session",
	Long: `Fold a session's history into summary performance metrics and the tail
of its equity curve.

Examples:
  tradelab report --session <id>
  tradelab report --session <id> --symbol XAUUSD`,
	RunE: runReport,
}

var (
	reportSession string
	reportSymbol  string
	reportPoints  int
)

func init() {
	rootCmd.AddCommand(reportCmd)

	reportCmd.Flags().StringVarP(&reportSession, "session", "s", "", "session id (required)")
	reportCmd.Flags().StringVar(&reportSymbol, "symbol", "", "restrict to one instrument")
	reportCmd.Flags().IntVar(&reportPoints, "points", 10, "equity-curve points to print")
	reportCmd.MarkFlagRequired("session")
}

func runReport(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	j, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer j.Close()

	s, err := j.GetSession(reportSession)
	if err != nil {
		return err
	}
	logs, err := j.List(reportSession)
	if err != nil {
		return fmt.Errorf("list logs: %w", err)
	}

	logs = analytics.FilterSymbol(logs, reportSymbol)

	w := cmd.OutOrStdout()
	analytics.PrintReport(w, s.Name, analytics.Summarize(logs))

	points := analytics.EquityCurve(logs, s.InitialBalance)
	if reportPoints > 0 && len(points) > 1 {
		fmt.Fprintln(w, "Equity Curve (latest)")
		fmt.Fprintln(w, "--------------------------------------------------")
		start := len(points) - reportPoints
		if start < 0 {
			start = 0
		}
		for _, p := range points[start:] {
			tag := ""
			if p.Transfer {
				tag = " (transfer)"
			}
			fmt.Fprintf(w, "#%-4d %12.2f  dd %8.2f (%5.2f%%)  R %6.2f%s\n",
				p.TradeNumber, p.Balance, p.Drawdown, p.DrawdownPercent, p.CumulativeR, tag)
		}
	}
	return nil
}
