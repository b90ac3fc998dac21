package cmd

import (
	"fmt"
	"io"

	"github.com/rustyeddy/tradelab/montecarlo"
	"github.com/rustyeddy/tradelab/risk"
)

func printCalculation(w io.Writer, in risk.TradeInput, res risk.CalculationResult) {
	side := "SHORT"
	if in.Long() {
		side = "LONG"
	}

	fmt.Fprintln(w, "==================================================")
	fmt.Fprintf(w, " %s %s\n", side, in.Symbol)
	fmt.Fprintln(w, "==================================================")
	fmt.Fprintf(w, "Entry:         %.5f\n", in.EntryPrice)
	fmt.Fprintf(w, "Stop:          %.5f (%.1f pips)\n", in.StopLossPrice, res.SLPips)
	fmt.Fprintf(w, "Risk:          %.2f\n", res.InitialRiskAmount)
	fmt.Fprintf(w, "Position:      %.2f lots\n", res.InitialLots)

	if !res.Valid() {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "No position: check entry/stop distance and risk settings.")
		return
	}

	if len(res.Exits) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Exits")
		fmt.Fprintln(w, "--------------------------------------------------")
		for _, ex := range res.Exits {
			fmt.Fprintf(w, "%-4s %6.2f lots  %8.1f pips  net %10.2f  (%.0f%% of open)\n",
				ex.ExitID, ex.LotsClosed, ex.PipsCaptured, ex.NetProfit, ex.PercentClosedOfRemaining)
		}

		fmt.Fprintln(w)
		fmt.Fprintf(w, "Net P/L:       %.2f\n", res.TotalNetProfit)
		fmt.Fprintf(w, "Still open:    %.2f lots\n", res.RemainingLots)
		fmt.Fprintf(w, "Balance:       %.2f\n", res.FinalAccountBalance)
	}
}

func printSimulation(w io.Writer, p montecarlo.Params, stats montecarlo.Stats) {
	fmt.Fprintln(w, "==================================================")
	fmt.Fprintln(w, " Monte Carlo Simulation")
	fmt.Fprintln(w, "==================================================")
	fmt.Fprintf(w, "Simulations:   %d x %d trades\n", p.NumSimulations, p.NumTrades)
	fmt.Fprintf(w, "Start Balance: %.2f\n", p.StartBalance)
	fmt.Fprintf(w, "Win Rate:      %.1f%%\n", p.WinRate)
	fmt.Fprintf(w, "Avg Win/Loss:  %.2f / %.2f\n", p.AvgWin, p.AvgLoss)
	fmt.Fprintf(w, "Sizing:        %s (%.2f)\n", p.RiskMode, p.RiskPerTrade)

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Final Balance")
	fmt.Fprintln(w, "--------------------------------------------------")
	fmt.Fprintf(w, "P05:           %.2f\n", stats.P05Balance)
	fmt.Fprintf(w, "Median:        %.2f\n", stats.MedianBalance)
	fmt.Fprintf(w, "P95:           %.2f\n", stats.P95Balance)

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Drawdown")
	fmt.Fprintln(w, "--------------------------------------------------")
	fmt.Fprintf(w, "Median:        %.2f%%\n", stats.MedianDrawdown)
	fmt.Fprintf(w, "P95:           %.2f%%\n", stats.P95Drawdown)

	fmt.Fprintln(w)
	fmt.Fprintf(w, "Risk of Ruin:  %.2f%%\n", stats.RuinProbability)
}
