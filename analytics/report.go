package analytics

import (
	"fmt"
	"io"
)

// PrintReport writes a plain-text performance summary.
func PrintReport(w io.Writer, name string, m Metrics) {
	fmt.Fprintln(w, "==================================================")
	fmt.Fprintf(w, " Performance Report: %s\n", name)
	fmt.Fprintln(w, "==================================================")

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Trade Statistics")
	fmt.Fprintln(w, "--------------------------------------------------")
	fmt.Fprintf(w, "Trades:        %d\n", m.TotalTrades)
	fmt.Fprintf(w, "Wins:          %d\n", m.WinningTrades)
	fmt.Fprintf(w, "Losses:        %d\n", m.LosingTrades)
	fmt.Fprintf(w, "Win Rate:      %.2f%%\n", m.WinRate)

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Profitability")
	fmt.Fprintln(w, "--------------------------------------------------")
	fmt.Fprintf(w, "Net P/L:       %.2f\n", m.NetProfit)
	fmt.Fprintf(w, "Profit Factor: %.2f\n", m.ProfitFactor)
	fmt.Fprintf(w, "Expectancy:    %.2f\n", m.Expectancy)
	fmt.Fprintf(w, "Avg Win:       %.2f\n", m.AverageWin)
	fmt.Fprintf(w, "Avg Loss:      %.2f\n", m.AverageLoss)
	fmt.Fprintf(w, "Largest Win:   %.2f\n", m.LargestWin)
	fmt.Fprintf(w, "Largest Loss:  %.2f\n", m.LargestLoss)

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Risk")
	fmt.Fprintln(w, "--------------------------------------------------")
	fmt.Fprintf(w, "Max Drawdown:  %.2f (%.2f%%)\n", m.MaxDrawdown, m.MaxDrawdownPercent)
	fmt.Fprintf(w, "Sharpe:        %.2f\n", m.SharpeRatio)
	fmt.Fprintf(w, "Risk/Reward:   %.2f\n", m.RiskReward)

	fmt.Fprintln(w)
}
