package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/tradelab/risk"
)

var sizeCmd = &cobra.Command{
	Use:   "size",
	Short: "Size a position and settle partial exits",
	Long: `Compute position size for a proposed trade, and optionally settle a
sequence of partial exits against it.

Exits are given as price:percent pairs and applied in order, each percent
against the volume still open at that point.

Examples:
  tradelab size --entry 1.1000 --stop 1.0950 --balance 10000 --risk 1
  tradelab size --entry 1.1000 --stop 1.0950 --balance 10000 --cash 150 \
      --exit 1.1050:50 --exit 1.1100:100`,
	RunE: runSize,
}

var (
	sizeEntry   float64
	sizeStop    float64
	sizeBalance float64
	sizeRisk    float64
	sizeCash    float64
	sizeSymbol  string
	sizeExits   []string
)

func init() {
	rootCmd.AddCommand(sizeCmd)

	sizeCmd.Flags().Float64Var(&sizeEntry, "entry", 0, "entry price (required)")
	sizeCmd.Flags().Float64Var(&sizeStop, "stop", 0, "stop-loss price (required)")
	sizeCmd.Flags().Float64Var(&sizeBalance, "balance", 0, "account balance (required)")
	sizeCmd.Flags().Float64Var(&sizeRisk, "risk", 1, "risk percent of balance")
	sizeCmd.Flags().Float64Var(&sizeCash, "cash", 0, "cash risk amount (overrides --risk)")
	sizeCmd.Flags().StringVar(&sizeSymbol, "symbol", "EURUSD", "instrument symbol")
	sizeCmd.Flags().StringArrayVar(&sizeExits, "exit", nil, "partial exit as price:percent (repeatable)")

	sizeCmd.MarkFlagRequired("entry")
	sizeCmd.MarkFlagRequired("stop")
	sizeCmd.MarkFlagRequired("balance")
}

func runSize(cmd *cobra.Command, args []string) error {
	in := buildTradeInput(sizeEntry, sizeStop, sizeBalance, sizeRisk, sizeCash, sizeSymbol)

	exits, err := parseExits(sizeExits)
	if err != nil {
		return err
	}

	res := risk.Compute(in, exits)
	printCalculation(cmd.OutOrStdout(), in, res)
	return nil
}

func buildTradeInput(entry, stop, balance, riskPct, cash float64, symbol string) risk.TradeInput {
	in := risk.TradeInput{
		EntryPrice:     entry,
		StopLossPrice:  stop,
		AccountBalance: balance,
		RiskMode:       risk.ModePercent,
		RiskPercent:    riskPct,
		Symbol:         strings.ToUpper(symbol),
	}
	if cash > 0 {
		in.RiskMode = risk.ModeCash
		in.RiskCash = cash
	}
	return in
}

// parseExits parses price:percent pairs, e.g. "1.1050:50".
func parseExits(specs []string) ([]risk.Exit, error) {
	exits := make([]risk.Exit, 0, len(specs))
	for i, s := range specs {
		parts := strings.SplitN(s, ":", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("bad exit %q: want price:percent", s)
		}
		price, err := strconv.ParseFloat(parts[0], 64)
		if err != nil {
			return nil, fmt.Errorf("bad exit price %q: %w", parts[0], err)
		}
		pct, err := strconv.ParseFloat(parts[1], 64)
		if err != nil {
			return nil, fmt.Errorf("bad exit percent %q: %w", parts[1], err)
		}
		if pct < 0 || pct > 100 {
			return nil, fmt.Errorf("exit percent %v out of range 0-100", pct)
		}
		exits = append(exits, risk.Exit{
			ID:             fmt.Sprintf("x%d", i+1),
			Price:          price,
			PercentToClose: pct,
		})
	}
	return exits, nil
}
