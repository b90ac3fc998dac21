// market/instruments.go
package market

// AssetConfig describes a tradeable instrument: how a raw price difference
// converts to pips, what one pip is worth per standard lot, and what a
// round-turn costs in commission.
type AssetConfig struct {
	Symbol        string
	PipValue      float64 // account currency per pip per standard lot
	Commission    float64 // account currency per lot, round turn
	QuoteCurrency string
	PipMultiplier float64 // price difference -> pips
}

// USDQuoted reports whether the instrument settles its pips in USD directly.
func (a AssetConfig) USDQuoted() bool {
	return a.QuoteCurrency == "USD"
}

// PipValueAt returns the value of one pip per standard lot with the
// instrument trading at price. USD-quoted instruments carry a fixed pip
// value; for other quote currencies the value floats with the rate, so it
// must be taken at the price in effect (entry for sizing, exit for P/L).
func (a AssetConfig) PipValueAt(price float64) float64 {
	if a.Symbol == "" {
		return 0
	}
	if a.USDQuoted() {
		return a.PipValue
	}
	if price <= 0 {
		return 0
	}
	return 10 / price
}

// Assets is the instrument registry, keyed by symbol.
//
// EURUSD: 1.0000 -> 1.0001 is one pip (0.0001), so the multiplier is 10000.
// XAUUSD: 2000.00 -> 2000.10 is one pip (0.10), so the multiplier is 10.
var Assets = map[string]AssetConfig{
	"EURUSD": {
		Symbol:        "EURUSD",
		PipValue:      10,
		Commission:    7,
		QuoteCurrency: "USD",
		PipMultiplier: 10000,
	},
	"GBPUSD": {
		Symbol:        "GBPUSD",
		PipValue:      10,
		Commission:    7,
		QuoteCurrency: "USD",
		PipMultiplier: 10000,
	},
	"XAUUSD": {
		Symbol:        "XAUUSD",
		PipValue:      10,
		Commission:    7,
		QuoteCurrency: "USD",
		PipMultiplier: 10,
	},
	"EURGBP": {
		Symbol:        "EURGBP",
		PipValue:      10,
		Commission:    7,
		QuoteCurrency: "GBP",
		PipMultiplier: 10000,
	},
}

// Lookup returns the config for symbol. Unknown symbols return a zero
// config, which drives every downstream figure to zero rather than failing.
func Lookup(symbol string) (AssetConfig, bool) {
	a, ok := Assets[symbol]
	return a, ok
}

// Symbols returns the registered instrument symbols.
func Symbols() []string {
	out := make([]string, 0, len(Assets))
	for s := range Assets {
		out = append(out, s)
	}
	return out
}
