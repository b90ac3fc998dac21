package risk

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func eurusdInput() TradeInput {
	return TradeInput{
		EntryPrice:     1.1000,
		StopLossPrice:  1.0950,
		AccountBalance: 10000,
		RiskMode:       ModePercent,
		RiskPercent:    1,
		Symbol:         "EURUSD",
	}
}

func TestComputeSizing(t *testing.T) {
	t.Parallel()

	// 50 pip stop, $100 at risk, loss per lot = 50*10 + 7 = 507.
	got := Compute(eurusdInput(), nil)

	assert.InDelta(t, 100.0, got.InitialRiskAmount, 1e-9)
	assert.InDelta(t, 50.0, got.SLPips, 1e-9)
	assert.InDelta(t, 0.19, got.InitialLots, 1e-9)
	assert.InDelta(t, 0.19, got.RemainingLots, 1e-9)
	assert.Zero(t, got.TotalNetProfit)
	assert.InDelta(t, 10000.0, got.FinalAccountBalance, 1e-9)
	assert.True(t, got.Valid())
}

func TestComputeFullExit(t *testing.T) {
	t.Parallel()

	exits := []Exit{{ID: "x1", Price: 1.1050, PercentToClose: 100}}
	got := Compute(eurusdInput(), exits)

	assert.Len(t, got.Exits, 1)
	ex := got.Exits[0]
	assert.InDelta(t, 0.19, ex.LotsClosed, 1e-9)
	assert.InDelta(t, 50.0, ex.PipsCaptured, 1e-9)
	assert.InDelta(t, 95.0, ex.GrossProfit, 1e-9)
	assert.InDelta(t, 1.33, ex.Commission, 1e-9)
	assert.InDelta(t, 93.67, ex.NetProfit, 1e-9)
	assert.Zero(t, ex.LotsRemaining)

	assert.InDelta(t, 93.67, got.TotalNetProfit, 1e-9)
	assert.Zero(t, got.RemainingLots)
	assert.InDelta(t, 10093.67, got.FinalAccountBalance, 1e-9)
}

func TestComputeWaterfallExits(t *testing.T) {
	t.Parallel()

	// Each percent applies to what remains, not the original size.
	exits := []Exit{
		{ID: "x1", Price: 1.1050, PercentToClose: 50},
		{ID: "x2", Price: 1.1100, PercentToClose: 50},
	}
	got := Compute(eurusdInput(), exits)

	assert.Len(t, got.Exits, 2)
	// 0.19 * 50% = 0.095 -> 0.10 at the broker lot step
	assert.InDelta(t, 0.10, got.Exits[0].LotsClosed, 1e-9)
	assert.InDelta(t, 0.09, got.Exits[0].LotsRemaining, 1e-9)
	// 0.09 * 50% = 0.045 -> 0.05
	assert.InDelta(t, 0.05, got.Exits[1].LotsClosed, 1e-9)
	assert.InDelta(t, 0.04, got.Exits[1].LotsRemaining, 1e-9)

	// Lots closed never exceed the initial size.
	var closed float64
	for _, ex := range got.Exits {
		closed += ex.LotsClosed
	}
	assert.LessOrEqual(t, closed, got.InitialLots+1e-9)
	assert.InDelta(t, got.InitialLots-closed, got.RemainingLots, 1e-9)
}

func TestComputeShortDirection(t *testing.T) {
	t.Parallel()

	in := TradeInput{
		EntryPrice:     1.1000,
		StopLossPrice:  1.1050, // stop above entry: short
		AccountBalance: 10000,
		RiskMode:       ModePercent,
		RiskPercent:    1,
		Symbol:         "EURUSD",
	}
	assert.False(t, in.Long())

	exits := []Exit{{ID: "x1", Price: 1.0950, PercentToClose: 100}}
	got := Compute(in, exits)

	// Short captures pips as entry minus exit.
	assert.InDelta(t, 50.0, got.Exits[0].PipsCaptured, 1e-9)
	assert.Positive(t, got.Exits[0].NetProfit)
}

func TestComputeZeroStopDistance(t *testing.T) {
	t.Parallel()

	in := eurusdInput()
	in.StopLossPrice = in.EntryPrice

	got := Compute(in, []Exit{{ID: "x1", Price: 1.1100, PercentToClose: 100}})

	assert.Zero(t, got.InitialLots)
	assert.Zero(t, got.SLPips)
	assert.Zero(t, got.TotalNetProfit)
	assert.False(t, got.Valid())
	// The exit row is still recorded, with zero effect.
	assert.Len(t, got.Exits, 1)
	assert.Zero(t, got.Exits[0].LotsClosed)
}

func TestComputeCashRiskMode(t *testing.T) {
	t.Parallel()

	in := eurusdInput()
	in.RiskMode = ModeCash
	in.RiskCash = 253.50

	got := Compute(in, nil)

	assert.InDelta(t, 253.50, got.InitialRiskAmount, 1e-9)
	// 253.50 / 507 = 0.50 exactly
	assert.InDelta(t, 0.50, got.InitialLots, 1e-9)
}

func TestComputeNonUSDQuote(t *testing.T) {
	t.Parallel()

	// EURGBP is GBP-quoted: pip value is 10/price, taken at entry for
	// sizing and at exit for realized P/L.
	in := TradeInput{
		EntryPrice:     0.8500,
		StopLossPrice:  0.8450,
		AccountBalance: 10000,
		RiskMode:       ModePercent,
		RiskPercent:    1,
		Symbol:         "EURGBP",
	}
	got := Compute(in, []Exit{{ID: "x1", Price: 0.8600, PercentToClose: 100}})

	pipAtEntry := 10 / 0.8500
	lossPerLot := 50*pipAtEntry + 7
	wantLots := math.Floor(100/lossPerLot*100) / 100

	assert.InDelta(t, wantLots, got.InitialLots, 1e-9)

	pipAtExit := 10 / 0.8600
	wantGross := wantLots * 100 * pipAtExit // 100 pips captured
	assert.InDelta(t, wantGross, got.Exits[0].GrossProfit, 1e-6)
}

func TestComputeUnknownSymbol(t *testing.T) {
	t.Parallel()

	in := eurusdInput()
	in.Symbol = "BTCUSD"

	got := Compute(in, nil)
	assert.Zero(t, got.InitialLots)
	assert.False(t, got.Valid())
}

func TestComputeExitTooSmallToClose(t *testing.T) {
	t.Parallel()

	in := eurusdInput()
	in.RiskMode = ModeCash
	in.RiskCash = 5.10 // sizes to 0.01 lots

	exits := []Exit{
		{ID: "x1", Price: 1.1050, PercentToClose: 10}, // 0.001 lots -> 0
		{ID: "x2", Price: 1.1050, PercentToClose: 100},
	}
	got := Compute(in, exits)

	assert.Zero(t, got.Exits[0].LotsClosed)
	assert.Zero(t, got.Exits[0].NetProfit)
	assert.InDelta(t, 10, got.Exits[0].PercentClosedOfRemaining, 1e-9)
	// The skipped exit leaves the full volume for the next one.
	assert.InDelta(t, 0.01, got.Exits[1].LotsClosed, 1e-9)
}

func TestComputeFinalBalanceIdentity(t *testing.T) {
	t.Parallel()

	exits := []Exit{
		{ID: "x1", Price: 1.1030, PercentToClose: 33},
		{ID: "x2", Price: 1.0980, PercentToClose: 66},
		{ID: "x3", Price: 1.1100, PercentToClose: 100},
	}
	got := Compute(eurusdInput(), exits)
	assert.InDelta(t, got.FinalAccountBalance, eurusdInput().AccountBalance+got.TotalNetProfit, 1e-9)
}
