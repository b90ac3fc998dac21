package montecarlo

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/rustyeddy/tradelab/journal"
	"github.com/rustyeddy/tradelab/risk"
)

func testParams() Params {
	return Params{
		StartBalance:   10000,
		NumSimulations: 200,
		NumTrades:      50,
		WinRate:        50,
		AvgWin:         100,
		AvgLoss:        100,
		RiskMode:       RiskPercent,
		RiskPerTrade:   1,
	}
}

func TestSimulateValidation(t *testing.T) {
	t.Parallel()

	p := testParams()
	p.NumSimulations = 0
	_, err := SimulateSeeded(p, 1)
	assert.Error(t, err)

	p = testParams()
	p.NumTrades = 0
	_, err = SimulateSeeded(p, 1)
	assert.Error(t, err)
}

func TestSimulateShape(t *testing.T) {
	t.Parallel()

	p := testParams()
	out, err := SimulateSeeded(p, 42)
	assert.NoError(t, err)

	assert.Len(t, out.Results, p.NumSimulations)
	for _, r := range out.Results {
		// Starting point plus one sample per trade.
		assert.Len(t, r.EquityCurve, p.NumTrades+1)
		assert.InDelta(t, p.StartBalance, r.EquityCurve[0], 1e-9)
		assert.InDelta(t, r.FinalBalance, r.EquityCurve[p.NumTrades], 1e-9)
		assert.GreaterOrEqual(t, r.MaxDrawdown, 0.0)
		assert.GreaterOrEqual(t, r.MaxDrawdownPercent, 0.0)
	}
}

func TestSimulateDeterministicSeed(t *testing.T) {
	t.Parallel()

	p := testParams()

	a, err := SimulateSeeded(p, 7)
	assert.NoError(t, err)
	b, err := SimulateSeeded(p, 7)
	assert.NoError(t, err)

	assert.Equal(t, a.Stats, b.Stats)
	for i := range a.Results {
		assert.Equal(t, a.Results[i].FinalBalance, b.Results[i].FinalBalance)
	}
}

func TestSimulatePercentileOrdering(t *testing.T) {
	t.Parallel()

	out, err := SimulateSeeded(testParams(), 99)
	assert.NoError(t, err)

	s := out.Stats
	assert.LessOrEqual(t, s.P05Balance, s.MedianBalance)
	assert.LessOrEqual(t, s.MedianBalance, s.P95Balance)
	assert.LessOrEqual(t, s.MedianDrawdown, s.P95Drawdown)
	assert.GreaterOrEqual(t, s.RuinProbability, 0.0)
	assert.LessOrEqual(t, s.RuinProbability, 100.0)
}

func TestSimulateAllWinsFixedMode(t *testing.T) {
	t.Parallel()

	p := testParams()
	p.WinRate = 100
	p.RiskMode = RiskFixed
	p.NumSimulations = 10
	p.NumTrades = 20

	out, err := SimulateSeeded(p, 3)
	assert.NoError(t, err)

	for _, r := range out.Results {
		assert.InDelta(t, 10000+20*100.0, r.FinalBalance, 1e-9)
		assert.Zero(t, r.MaxDrawdown)
	}
	assert.Zero(t, out.Stats.RuinProbability)
	assert.InDelta(t, 12000.0, out.Stats.MedianBalance, 1e-9)
}

func TestSimulateAllLossesFixedModeRuins(t *testing.T) {
	t.Parallel()

	p := testParams()
	p.WinRate = 0
	p.RiskMode = RiskFixed
	p.AvgLoss = 1000
	p.StartBalance = 5000
	p.NumSimulations = 10
	p.NumTrades = 10

	out, err := SimulateSeeded(p, 3)
	assert.NoError(t, err)

	// Each trial marches straight to -5000; no early termination on ruin.
	for _, r := range out.Results {
		assert.InDelta(t, -5000.0, r.FinalBalance, 1e-9)
		assert.Len(t, r.EquityCurve, 11)
	}
	assert.InDelta(t, 100.0, out.Stats.RuinProbability, 1e-9)
}

func TestSimulatePercentModeCompounds(t *testing.T) {
	t.Parallel()

	// 100% win rate at 1% risk with a 1R payoff multiplies the balance by
	// 1.01 per trade.
	p := testParams()
	p.WinRate = 100
	p.NumSimulations = 5
	p.NumTrades = 3

	out, err := SimulateSeeded(p, 11)
	assert.NoError(t, err)

	want := 10000 * 1.01 * 1.01 * 1.01
	for _, r := range out.Results {
		assert.InDelta(t, want, r.FinalBalance, 1e-6)
	}
}

func TestSimulatePercentModeNeverRuins(t *testing.T) {
	t.Parallel()

	// Fractional sizing shrinks with the balance, so it can't cross zero.
	p := testParams()
	p.WinRate = 0
	p.NumTrades = 200
	p.NumSimulations = 20

	out, err := SimulateSeeded(p, 5)
	assert.NoError(t, err)

	for _, r := range out.Results {
		assert.Positive(t, r.FinalBalance)
	}
	assert.Zero(t, out.Stats.RuinProbability)
}

func TestParamsFromHistory(t *testing.T) {
	t.Parallel()

	mk := func(pl float64, offset time.Duration) journal.HistoryLog {
		return journal.HistoryLog{
			Type: journal.LogTrade,
			Date: time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC).Add(offset),
			Trade: &journal.TradeLog{
				Results: risk.CalculationResult{TotalNetProfit: pl},
			},
		}
	}
	logs := []journal.HistoryLog{
		mk(120, 0),
		mk(-60, time.Hour),
		mk(80, 2*time.Hour),
	}

	p := ParamsFromHistory(logs, 10000)

	assert.InDelta(t, 10000.0, p.StartBalance, 1e-9)
	assert.InDelta(t, 66.7, p.WinRate, 1e-9)
	assert.InDelta(t, 100.0, p.AvgWin, 1e-9)
	assert.InDelta(t, 60.0, p.AvgLoss, 1e-9)
}

func TestParamsFromHistoryDefaults(t *testing.T) {
	t.Parallel()

	p := ParamsFromHistory(nil, 2500)
	assert.InDelta(t, 2500.0, p.StartBalance, 1e-9)
	assert.InDelta(t, float64(DefaultWinRate), p.WinRate, 1e-9)
	assert.InDelta(t, float64(DefaultAvgWin), p.AvgWin, 1e-9)
	assert.InDelta(t, float64(DefaultAvgLoss), p.AvgLoss, 1e-9)
	assert.Equal(t, RiskPercent, p.RiskMode)
}
