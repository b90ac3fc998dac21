package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/rustyeddy/tradelab/market"
	"github.com/rustyeddy/tradelab/montecarlo"
)

// Config holds the CLI defaults: where the journal lives, how new sessions
// start, and how simulations run when flags don't override them.
type Config struct {
	Journal    JournalConfig    `json:"journal" yaml:"journal"`
	Session    SessionConfig    `json:"session" yaml:"session"`
	Calculator CalculatorConfig `json:"calculator" yaml:"calculator"`
	MonteCarlo MonteCarloConfig `json:"monte_carlo" yaml:"monte_carlo"`
}

// JournalConfig locates the journal store.
type JournalConfig struct {
	DBPath     string `json:"db_path" yaml:"db_path"`
	ExportFile string `json:"export_file,omitempty" yaml:"export_file,omitempty"`
}

// SessionConfig seeds newly created sessions.
type SessionConfig struct {
	Name     string  `json:"name" yaml:"name"`
	Currency string  `json:"currency" yaml:"currency"`
	Balance  float64 `json:"balance" yaml:"balance"`
}

// CalculatorConfig sets position-sizing defaults.
type CalculatorConfig struct {
	Symbol      string  `json:"symbol" yaml:"symbol"`
	RiskPercent float64 `json:"risk_percent" yaml:"risk_percent"`
}

// MonteCarloConfig sets forward-simulation defaults.
type MonteCarloConfig struct {
	Simulations  int     `json:"simulations" yaml:"simulations"`
	Trades       int     `json:"trades" yaml:"trades"`
	RiskMode     string  `json:"risk_mode" yaml:"risk_mode"` // "percent" or "fixed"
	RiskPerTrade float64 `json:"risk_per_trade" yaml:"risk_per_trade"`
}

// LoadFromFile loads configuration from a file (YAML or JSON).
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := &Config{}

	// Try YAML first, fall back to JSON.
	if err := yaml.Unmarshal(data, cfg); err != nil {
		if jerr := json.Unmarshal(data, cfg); jerr != nil {
			return nil, fmt.Errorf("parse config (tried YAML and JSON): %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// SaveToFile writes the configuration, choosing the format by extension.
func (c *Config) SaveToFile(path string) error {
	var data []byte
	var err error

	if strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml") {
		data, err = yaml.Marshal(c)
	} else {
		data, err = json.MarshalIndent(c, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}

// Validate checks if the configuration is usable.
func (c *Config) Validate() error {
	if c.Journal.DBPath == "" {
		return fmt.Errorf("journal.db_path is required")
	}
	if c.Session.Currency == "" {
		return fmt.Errorf("session.currency is required")
	}
	if c.Session.Balance <= 0 {
		return fmt.Errorf("session.balance must be positive")
	}
	if c.Calculator.Symbol != "" {
		if _, ok := market.Lookup(c.Calculator.Symbol); !ok {
			return fmt.Errorf("unknown instrument: %s", c.Calculator.Symbol)
		}
	}
	if c.Calculator.RiskPercent < 0 || c.Calculator.RiskPercent > 100 {
		return fmt.Errorf("calculator.risk_percent must be within 0-100")
	}
	if c.MonteCarlo.Simulations < 1 {
		return fmt.Errorf("monte_carlo.simulations must be >= 1")
	}
	if c.MonteCarlo.Trades < 1 {
		return fmt.Errorf("monte_carlo.trades must be >= 1")
	}
	switch montecarlo.RiskMode(c.MonteCarlo.RiskMode) {
	case montecarlo.RiskPercent, montecarlo.RiskFixed:
	default:
		return fmt.Errorf("monte_carlo.risk_mode must be 'percent' or 'fixed'")
	}
	return nil
}

// Default returns a configuration with sensible defaults.
func Default() *Config {
	return &Config{
		Journal: JournalConfig{
			DBPath: "./tradelab.sqlite",
		},
		Session: SessionConfig{
			Name:     "default",
			Currency: "USD",
			Balance:  10000,
		},
		Calculator: CalculatorConfig{
			Symbol:      "EURUSD",
			RiskPercent: 1,
		},
		MonteCarlo: MonteCarloConfig{
			Simulations:  montecarlo.DefaultSimulations,
			Trades:       montecarlo.DefaultTrades,
			RiskMode:     string(montecarlo.RiskPercent),
			RiskPerTrade: 1,
		},
	}
}
