package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/rustyeddy/tradelab/journal"
)

func TestEquityCurveStartingPoint(t *testing.T) {
	t.Parallel()

	points := EquityCurve(nil, 10000)

	assert.Len(t, points, 1)
	p := points[0]
	assert.Zero(t, p.TradeNumber)
	assert.InDelta(t, 10000.0, p.Balance, 1e-9)
	assert.Zero(t, p.Drawdown)
	assert.Zero(t, p.CumulativeNetProfit)
	assert.Zero(t, p.CumulativeR)
}

func TestEquityCurveTrades(t *testing.T) {
	t.Parallel()

	logs := []journal.HistoryLog{
		tradeEntry("L1", 0, 200, 100),
		tradeEntry("L2", time.Hour, -100, 100),
	}

	points := EquityCurve(logs, 10000)
	assert.Len(t, points, 3)

	p1 := points[1]
	assert.Equal(t, 1, p1.TradeNumber)
	assert.InDelta(t, 10200.0, p1.Balance, 1e-9)
	assert.Zero(t, p1.Drawdown)
	assert.InDelta(t, 200.0, p1.CumulativeNetProfit, 1e-9)
	assert.InDelta(t, 2.0, p1.CumulativePercentGain, 1e-9)
	assert.InDelta(t, 2.0, p1.CumulativeR, 1e-9)

	p2 := points[2]
	assert.Equal(t, 2, p2.TradeNumber)
	assert.InDelta(t, 10100.0, p2.Balance, 1e-9)
	assert.InDelta(t, 100.0, p2.Drawdown, 1e-9)
	assert.InDelta(t, 100.0/10200.0*100, p2.DrawdownPercent, 1e-9)
	assert.InDelta(t, 1.0, p2.CumulativeR, 1e-9)
}

func TestEquityCurveSortsDefensively(t *testing.T) {
	t.Parallel()

	logs := []journal.HistoryLog{
		tradeEntry("L2", time.Hour, -100, 100),
		tradeEntry("L1", 0, 200, 100),
	}

	points := EquityCurve(logs, 10000)
	assert.InDelta(t, 200.0, points[1].TradeNetProfit, 1e-9)
	assert.InDelta(t, -100.0, points[2].TradeNetProfit, 1e-9)
}

func TestEquityCurveZeroRiskTreatedAsOne(t *testing.T) {
	t.Parallel()

	logs := []journal.HistoryLog{tradeEntry("L1", 0, 50, 0)}

	points := EquityCurve(logs, 10000)
	assert.InDelta(t, 50.0, points[1].CumulativeR, 1e-9)
}

func TestEquityCurveWithdrawalAdjustsPeak(t *testing.T) {
	t.Parallel()

	logs := []journal.HistoryLog{
		tradeEntry("L1", 0, 200, 100),
		tradeEntry("L2", time.Hour, -100, 100),
	}
	base := EquityCurve(logs, 10000)

	// Insert a withdrawal after the drawdown point: the drawdown figure at
	// that moment must be unchanged, only the balance shifts.
	withW := append([]journal.HistoryLog{}, logs...)
	withW = append(withW, transferEntry("W1", 2*time.Hour, journal.LogWithdrawal, 1000))

	points := EquityCurve(withW, 10000)
	assert.Len(t, points, 4)

	w := points[3]
	assert.True(t, w.Transfer)
	assert.Equal(t, 2, w.TradeNumber) // trade count does not advance
	assert.InDelta(t, base[2].Balance-1000, w.Balance, 1e-9)
	assert.InDelta(t, base[2].Drawdown, w.Drawdown, 1e-9)

	// Cumulative performance figures carry over unchanged.
	assert.InDelta(t, base[2].CumulativeNetProfit, w.CumulativeNetProfit, 1e-9)
	assert.InDelta(t, base[2].CumulativeR, w.CumulativeR, 1e-9)
	assert.Zero(t, w.TradeNetProfit)
}

func TestEquityCurveDepositAdjustsPeak(t *testing.T) {
	t.Parallel()

	logs := []journal.HistoryLog{
		tradeEntry("L1", 0, -100, 100),
		transferEntry("D1", time.Hour, journal.LogDeposit, 5000),
		tradeEntry("L2", 2*time.Hour, -100, 100),
	}

	points := EquityCurve(logs, 10000)
	assert.Len(t, points, 4)

	// After the losing trade the drawdown is 100; the deposit moves both
	// balance and peak so it stays 100.
	assert.InDelta(t, 100.0, points[1].Drawdown, 1e-9)
	assert.InDelta(t, 100.0, points[2].Drawdown, 1e-9)
	assert.InDelta(t, 14900.0, points[2].Balance, 1e-9)

	// The next losing trade deepens it from the shifted peak.
	assert.InDelta(t, 200.0, points[3].Drawdown, 1e-9)
}

func TestEquityCurveDrawdownNonNegative(t *testing.T) {
	t.Parallel()

	logs := []journal.HistoryLog{
		tradeEntry("L1", 0, 50, 100),
		tradeEntry("L2", time.Hour, -75, 100),
		tradeEntry("L3", 2*time.Hour, 120, 100),
		tradeEntry("L4", 3*time.Hour, -10, 100),
	}

	points := EquityCurve(logs, 1000)
	for _, p := range points {
		assert.GreaterOrEqual(t, p.Drawdown, 0.0)
		assert.GreaterOrEqual(t, p.DrawdownPercent, 0.0)
	}
}

func TestRenderEquityPNG(t *testing.T) {
	t.Parallel()

	logs := []journal.HistoryLog{
		tradeEntry("L1", 0, 200, 100),
		tradeEntry("L2", time.Hour, -100, 100),
		transferEntry("W1", 2*time.Hour, journal.LogWithdrawal, 500),
	}
	points := EquityCurve(logs, 10000)

	png, err := RenderEquityPNG(points, "equity")
	assert.NoError(t, err)
	assert.NotEmpty(t, png)
	// PNG magic header
	assert.Equal(t, []byte{0x89, 'P', 'N', 'G'}, png[:4])

	_, err = RenderEquityPNG(nil, "empty")
	assert.Error(t, err)
}
