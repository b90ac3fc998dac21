package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/tradelab/montecarlo"
)

var montecarloCmd = &cobra.Command{
	Use:   "montecarlo",
	Short: "Run a Monte Carlo forward simulation",
	Long: `Simulate random trade sequences from win/loss statistics and report
balance percentiles, drawdown percentiles, and risk of ruin.

With --session the win rate and average win/loss are seeded from the
session's trade history; explicit flags override the seeded values.

Examples:
  tradelab montecarlo --balance 10000 --winrate 55 --avg-win 120 --avg-loss 100
  tradelab montecarlo --session <id> --trades 100
  tradelab montecarlo --balance 10000 --mode fixed --seed 42`,
	RunE: runMonteCarlo,
}

var (
	mcSession string
	mcBalance float64
	mcSims    int
	mcTrades  int
	mcWinRate float64
	mcAvgWin  float64
	mcAvgLoss float64
	mcMode    string
	mcRisk    float64
	mcSeed    int64
)

func init() {
	rootCmd.AddCommand(montecarloCmd)

	montecarloCmd.Flags().StringVarP(&mcSession, "session", "s", "", "seed stats from a session's history")
	montecarloCmd.Flags().Float64Var(&mcBalance, "balance", 0, "starting balance")
	montecarloCmd.Flags().IntVar(&mcSims, "sims", 0, "number of simulations")
	montecarloCmd.Flags().IntVar(&mcTrades, "trades", 0, "trades per simulation")
	montecarloCmd.Flags().Float64Var(&mcWinRate, "winrate", -1, "win rate percent")
	montecarloCmd.Flags().Float64Var(&mcAvgWin, "avg-win", -1, "average win")
	montecarloCmd.Flags().Float64Var(&mcAvgLoss, "avg-loss", -1, "average loss")
	montecarloCmd.Flags().StringVar(&mcMode, "mode", "", "sizing mode: percent or fixed")
	montecarloCmd.Flags().Float64Var(&mcRisk, "risk", 0, "risk per trade (percent of balance, or cash for fixed mode)")
	montecarloCmd.Flags().Int64Var(&mcSeed, "seed", 0, "random seed (0 = nondeterministic)")
}

func runMonteCarlo(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	p := montecarlo.Params{
		StartBalance:   cfg.Session.Balance,
		NumSimulations: cfg.MonteCarlo.Simulations,
		NumTrades:      cfg.MonteCarlo.Trades,
		WinRate:        montecarlo.DefaultWinRate,
		AvgWin:         montecarlo.DefaultAvgWin,
		AvgLoss:        montecarlo.DefaultAvgLoss,
		RiskMode:       montecarlo.RiskMode(cfg.MonteCarlo.RiskMode),
		RiskPerTrade:   cfg.MonteCarlo.RiskPerTrade,
	}

	if mcSession != "" {
		j, err := openStore(cfg)
		if err != nil {
			return err
		}
		defer j.Close()

		s, err := j.GetSession(mcSession)
		if err != nil {
			return err
		}
		logs, err := j.List(mcSession)
		if err != nil {
			return fmt.Errorf("list logs: %w", err)
		}

		seeded := montecarlo.ParamsFromHistory(logs, sessionBalance(s, logs))
		p.StartBalance = seeded.StartBalance
		p.WinRate = seeded.WinRate
		p.AvgWin = seeded.AvgWin
		p.AvgLoss = seeded.AvgLoss
	}

	// Explicit flags override both config and seeded history stats.
	if mcBalance > 0 {
		p.StartBalance = mcBalance
	}
	if mcSims > 0 {
		p.NumSimulations = mcSims
	}
	if mcTrades > 0 {
		p.NumTrades = mcTrades
	}
	if mcWinRate >= 0 {
		p.WinRate = mcWinRate
	}
	if mcAvgWin >= 0 {
		p.AvgWin = mcAvgWin
	}
	if mcAvgLoss >= 0 {
		p.AvgLoss = mcAvgLoss
	}
	if mcMode != "" {
		p.RiskMode = montecarlo.RiskMode(mcMode)
	}
	if mcRisk > 0 {
		p.RiskPerTrade = mcRisk
	}

	var out montecarlo.Outcome
	if mcSeed != 0 {
		out, err = montecarlo.SimulateSeeded(p, mcSeed)
	} else {
		out, err = montecarlo.Simulate(p)
	}
	if err != nil {
		return err
	}

	printSimulation(cmd.OutOrStdout(), p, out.Stats)
	return nil
}
