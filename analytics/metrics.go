// analytics/metrics.go
package analytics

import (
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/rustyeddy/tradelab/journal"
)

// Metrics is the scalar performance summary over a history slice. All
// figures cover TRADE entries only; transfers never count as performance.
type Metrics struct {
	NetProfit float64
	WinRate   float64 // percent

	// ProfitFactor is gross profit over gross loss. With no losing trades
	// it degrades to the gross profit itself, never infinity or NaN.
	ProfitFactor float64

	MaxDrawdown        float64
	MaxDrawdownPercent float64

	TotalTrades   int
	WinningTrades int
	LosingTrades  int

	AverageWin  float64
	AverageLoss float64 // positive magnitude
	Expectancy  float64 // average P/L per trade
	LargestWin  float64
	LargestLoss float64 // signed, <= 0

	// SharpeRatio is expectancy over the population stddev of per-trade
	// P/L, 0 when the dispersion is 0.
	SharpeRatio float64

	// RiskReward is average win over average loss, with the same
	// no-losses degradation as ProfitFactor.
	RiskReward float64
}

// Summarize folds a history into its scalar metrics. Pure; safe to re-run
// on every filter change. An empty or trade-free history yields the zero
// Metrics.
func Summarize(logs []journal.HistoryLog) Metrics {
	sorted := sortByDate(logs)

	var profits []float64
	for _, l := range sorted {
		if l.Type == journal.LogTrade && l.Trade != nil {
			profits = append(profits, l.NetProfit())
		}
	}
	if len(profits) == 0 {
		return Metrics{}
	}

	var m Metrics
	m.TotalTrades = len(profits)

	var grossWin, grossLoss float64
	for _, pl := range profits {
		m.NetProfit += pl
		switch {
		case pl > 0:
			grossWin += pl
			m.WinningTrades++
			if pl > m.LargestWin {
				m.LargestWin = pl
			}
		case pl < 0:
			grossLoss += -pl
			m.LosingTrades++
			if pl < m.LargestLoss {
				m.LargestLoss = pl
			}
		}
	}

	m.WinRate = float64(m.WinningTrades) / float64(m.TotalTrades) * 100
	if grossLoss > 0 {
		m.ProfitFactor = grossWin / grossLoss
	} else {
		m.ProfitFactor = grossWin
	}
	if m.WinningTrades > 0 {
		m.AverageWin = grossWin / float64(m.WinningTrades)
	}
	if m.LosingTrades > 0 {
		m.AverageLoss = grossLoss / float64(m.LosingTrades)
	}
	m.Expectancy = m.NetProfit / float64(m.TotalTrades)
	if m.AverageLoss > 0 {
		m.RiskReward = m.AverageWin / m.AverageLoss
	} else {
		m.RiskReward = m.AverageWin
	}

	if sd := stat.PopStdDev(profits, nil); sd > 0 {
		m.SharpeRatio = m.Expectancy / sd
	}

	m.MaxDrawdown, m.MaxDrawdownPercent = maxDrawdown(profits)

	return m
}

// maxDrawdown folds cumulative trade P/L against its running peak. The
// percent figure is taken against the peak at the moment the deepest
// drawdown occurs, 0 while the P/L peak is still non-positive.
func maxDrawdown(profits []float64) (dd float64, ddPct float64) {
	var running, peak float64
	for _, pl := range profits {
		running += pl
		if running > peak {
			peak = running
		}
		if d := peak - running; d > dd {
			dd = d
			if peak > 0 {
				ddPct = d / peak * 100
			} else {
				ddPct = 0
			}
		}
	}
	return dd, ddPct
}

// sortByDate returns a chronologically sorted copy. The engine never trusts
// caller ordering.
func sortByDate(logs []journal.HistoryLog) []journal.HistoryLog {
	out := make([]journal.HistoryLog, len(logs))
	copy(out, logs)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.Before(out[j].Date)
	})
	return out
}
