package cmd

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/rustyeddy/tradelab/config"
	"github.com/rustyeddy/tradelab/journal"
)

var rootCmd = &cobra.Command{
	Use:   "tradelab",
	Short: "A trade-risk calculator and journal analytics toolkit",
	Long: `Tradelab is a trading journal toolkit for discretionary traders.

It provides tools for:
  - Risk-based position sizing with waterfall partial exits
  - Journaling trades and cash transfers per session
  - Equity curves, drawdown, and performance metrics
  - Monte Carlo forward simulation of win/loss statistics
  - Equity-curve chart rendering

Complete documentation is available at https://github.com/rustyeddy/tradelab`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

var (
	cfgPath string
	dbPath  string
)

func init() {
	// .env may carry TRADELAB_DB / TRADELAB_CONFIG; missing file is fine.
	_ = godotenv.Load()

	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "path to config file")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "path to SQLite journal DB (overrides config)")
}

// loadConfig resolves the active configuration: the --config flag, then the
// TRADELAB_CONFIG environment variable, then built-in defaults.
func loadConfig() (*config.Config, error) {
	path := cfgPath
	if path == "" {
		path = os.Getenv("TRADELAB_CONFIG")
	}
	if path == "" {
		return config.Default(), nil
	}
	return config.LoadFromFile(path)
}

// openStore opens the journal DB: the --db flag, then TRADELAB_DB, then the
// configured path.
func openStore(cfg *config.Config) (*journal.SQLite, error) {
	path := dbPath
	if path == "" {
		path = os.Getenv("TRADELAB_DB")
	}
	if path == "" {
		path = cfg.Journal.DBPath
	}

	j, err := journal.NewSQLite(path)
	if err != nil {
		return nil, fmt.Errorf("open db %q: %w", path, err)
	}
	return j, nil
}

// sessionBalance replays a session's history to its current balance.
func sessionBalance(s journal.Session, logs []journal.HistoryLog) float64 {
	balance := s.InitialBalance
	for _, l := range logs {
		balance += l.NetProfit() + l.TransferAmount()
	}
	return balance
}
