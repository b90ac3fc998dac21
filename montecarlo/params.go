package montecarlo

import (
	"math"

	"github.com/rustyeddy/tradelab/journal"
)

// Defaults used when a journal has no trade history to seed from.
const (
	DefaultWinRate = 50
	DefaultAvgWin  = 100
	DefaultAvgLoss = 100

	DefaultSimulations = 1000
	DefaultTrades      = 50
)

// ParamsFromHistory seeds simulation parameters from a journal's trade
// history: its win rate and average win/loss magnitudes. A history with no
// trades falls back to the 50/100/100 defaults.
func ParamsFromHistory(logs []journal.HistoryLog, startBalance float64) Params {
	p := Params{
		StartBalance:   startBalance,
		NumSimulations: DefaultSimulations,
		NumTrades:      DefaultTrades,
		WinRate:        DefaultWinRate,
		AvgWin:         DefaultAvgWin,
		AvgLoss:        DefaultAvgLoss,
		RiskMode:       RiskPercent,
		RiskPerTrade:   1,
	}

	var (
		trades, wins, losses int
		winAmt, lossAmt      float64
	)
	for _, l := range logs {
		if l.Type != journal.LogTrade || l.Trade == nil {
			continue
		}
		trades++
		pl := l.NetProfit()
		if pl > 0 {
			wins++
			winAmt += pl
		} else if pl < 0 {
			losses++
			lossAmt += -pl
		}
	}
	if trades == 0 {
		return p
	}

	p.WinRate = round1(float64(wins) / float64(trades) * 100)
	if wins > 0 {
		p.AvgWin = round2(winAmt / float64(wins))
	} else {
		p.AvgWin = 0
	}
	if losses > 0 {
		p.AvgLoss = round2(lossAmt / float64(losses))
	} else {
		p.AvgLoss = 0
	}
	return p
}

func round1(x float64) float64 { return math.Round(x*10) / 10 }
func round2(x float64) float64 { return math.Round(x*100) / 100 }
