// analytics/equity.go
package analytics

import (
	"time"

	"github.com/rustyeddy/tradelab/journal"
)

// ChartDataPoint is one equity-curve sample: the starting state, a settled
// trade, or a cash transfer.
type ChartDataPoint struct {
	TradeNumber           int
	Date                  time.Time
	Balance               float64
	Drawdown              float64
	DrawdownPercent       float64
	TradeNetProfit        float64
	CumulativeNetProfit   float64
	CumulativePercentGain float64
	CumulativeR           float64
	Transfer              bool
}

// EquityCurve folds a history into balance samples. Logs are sorted
// chronologically first regardless of caller ordering. The first sample is
// always the pre-trade starting state.
//
// Transfers shift the balance and the high-water mark by the same signed
// amount, so a withdrawal never shows up as a trading drawdown. This is a
// deliberate modeling simplification; it is not a time-weighted return.
func EquityCurve(logs []journal.HistoryLog, initialBalance float64) []ChartDataPoint {
	sorted := sortByDate(logs)

	current := initialBalance
	peak := initialBalance

	points := make([]ChartDataPoint, 0, len(sorted)+1)
	points = append(points, ChartDataPoint{Balance: initialBalance})

	var (
		tradeCount    int
		cumulativeNet float64
		cumulativeR   float64
	)

	for _, l := range sorted {
		switch l.Type {
		case journal.LogTrade:
			if l.Trade == nil {
				continue
			}
			tradeCount++
			profit := l.NetProfit()
			current += profit
			cumulativeNet += profit

			// R-multiple against the amount initially at risk. A zero risk
			// amount is treated as 1 to keep the ratio defined.
			denom := l.Trade.Results.InitialRiskAmount
			if denom <= 0 {
				denom = 1
			}
			cumulativeR += profit / denom

			if current > peak {
				peak = current
			}

			points = append(points, ChartDataPoint{
				TradeNumber:           tradeCount,
				Date:                  l.Date,
				Balance:               current,
				Drawdown:              peak - current,
				DrawdownPercent:       drawdownPercent(peak, current),
				TradeNetProfit:        profit,
				CumulativeNetProfit:   cumulativeNet,
				CumulativePercentGain: percentGain(cumulativeNet, initialBalance),
				CumulativeR:           cumulativeR,
			})

		case journal.LogDeposit, journal.LogWithdrawal:
			amount := l.TransferAmount()
			current += amount
			// Move the high-water mark with the cash so the transfer alone
			// changes no drawdown figure.
			peak += amount

			points = append(points, ChartDataPoint{
				TradeNumber:           tradeCount,
				Date:                  l.Date,
				Balance:               current,
				Drawdown:              peak - current,
				DrawdownPercent:       drawdownPercent(peak, current),
				CumulativeNetProfit:   cumulativeNet,
				CumulativePercentGain: percentGain(cumulativeNet, initialBalance),
				CumulativeR:           cumulativeR,
				Transfer:              true,
			})
		}
	}

	return points
}

func drawdownPercent(peak, current float64) float64 {
	if peak <= 0 {
		return 0
	}
	return (peak - current) / peak * 100
}

func percentGain(cumulativeNet, initialBalance float64) float64 {
	if initialBalance <= 0 {
		return 0
	}
	return cumulativeNet / initialBalance * 100
}
