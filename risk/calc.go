package risk

import (
	"math"

	"github.com/rustyeddy/tradelab/market"
)

// round2 rounds to the cent / broker lot step.
func round2(x float64) float64 {
	return math.Round(x*100) / 100
}

// round1 rounds pips to their conventional single decimal.
func round1(x float64) float64 {
	return math.Round(x*10) / 10
}

// floor2 truncates to the broker lot step. Sizing floors rather than rounds
// so the planned risk is never exceeded.
func floor2(x float64) float64 {
	return math.Floor(x*100) / 100
}

// RiskAmount returns the account-currency amount put at risk by the input.
func RiskAmount(in TradeInput) float64 {
	if in.RiskMode == ModeCash {
		return in.RiskCash
	}
	return in.AccountBalance * in.RiskPercent / 100
}

// Compute sizes the position for a proposed trade and settles its partial
// exits in order. It is pure and never fails: degenerate input produces a
// zero-valued result instead of an error, so reactive callers can re-run it
// on every input change and check Valid() to decide what to render.
func Compute(in TradeInput, exits []Exit) CalculationResult {
	asset, _ := market.Lookup(in.Symbol)

	riskAmount := RiskAmount(in)

	// Stop distance is always an absolute price difference.
	slPips := math.Abs(in.EntryPrice-in.StopLossPrice) * asset.PipMultiplier

	// Loss per lot if the stop is hit: pip loss plus the round-turn
	// commission. Pip value is taken at the entry rate.
	lossPerLot := slPips*asset.PipValueAt(in.EntryPrice) + asset.Commission

	var initialLots float64
	if lossPerLot > 0 {
		initialLots = floor2(riskAmount / lossPerLot)
	}

	long := in.Long()
	remaining := initialLots
	var totalNet float64
	results := make([]ExitResult, 0, len(exits))

	for _, exit := range exits {
		lotsToClose := round2(remaining * exit.PercentToClose / 100)

		var pips float64
		if exit.Price != 0 {
			if long {
				pips = (exit.Price - in.EntryPrice) * asset.PipMultiplier
			} else {
				pips = (in.EntryPrice - exit.Price) * asset.PipMultiplier
			}
			pips = round1(pips)
		}

		if lotsToClose == 0 {
			// Too small to close. Keep the row so the exit's percent input
			// stays visible in the result.
			results = append(results, ExitResult{
				ExitID:                   exit.ID,
				PipsCaptured:             pips,
				PercentClosedOfRemaining: exit.PercentToClose,
				LotsRemaining:            remaining,
			})
			continue
		}

		// Realized P/L converts at the rate in effect when the position
		// closes, so the pip value is recomputed at the exit price. This is
		// deliberately asymmetric with the sizing step above.
		gross := lotsToClose * pips * asset.PipValueAt(exit.Price)
		commission := lotsToClose * asset.Commission
		net := gross - commission

		remaining -= lotsToClose
		if remaining < 0 {
			remaining = 0 // clamp float drift
		}
		totalNet += net

		results = append(results, ExitResult{
			ExitID:                   exit.ID,
			LotsClosed:               lotsToClose,
			PipsCaptured:             pips,
			GrossProfit:              gross,
			Commission:               commission,
			NetProfit:                net,
			PercentClosedOfRemaining: exit.PercentToClose,
			LotsRemaining:            remaining,
		})
	}

	totalNet = round2(totalNet)

	return CalculationResult{
		InitialRiskAmount:   round2(riskAmount),
		InitialLots:         initialLots,
		SLPips:              round1(slPips),
		Exits:               results,
		TotalNetProfit:      totalNet,
		RemainingLots:       round2(remaining),
		FinalAccountBalance: round2(in.AccountBalance + totalNet),
	}
}
