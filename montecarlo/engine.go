// montecarlo/engine.go
package montecarlo

import (
	"fmt"
	"math"
	"math/rand"
	"runtime"
	"sort"
	"sync"
)

// RiskMode selects how each simulated trade is sized.
type RiskMode string

const (
	// RiskPercent risks a percentage of the current balance each trade, so
	// wins and losses compound.
	RiskPercent RiskMode = "percent"
	// RiskFixed applies the historical average win/loss directly,
	// regardless of the current balance.
	RiskFixed RiskMode = "fixed"
)

// Params configures a forward simulation run.
type Params struct {
	StartBalance   float64
	NumSimulations int
	NumTrades      int
	WinRate        float64 // percent, 0-100
	AvgWin         float64
	AvgLoss        float64 // magnitude; sign is ignored
	RiskMode       RiskMode
	RiskPerTrade   float64 // percent of balance or cash, per RiskMode
}

// Result is one simulated trial: its full equity trail and the deepest
// drawdown seen along it.
type Result struct {
	EquityCurve        []float64
	FinalBalance       float64
	MaxDrawdown        float64
	MaxDrawdownPercent float64
}

// Stats aggregates all trials. Percentiles are taken by floor(n*q) index on
// the ascending sort, not interpolated.
type Stats struct {
	MedianBalance   float64
	P05Balance      float64
	P95Balance      float64
	MedianDrawdown  float64 // percent
	P95Drawdown     float64 // percent
	RuinProbability float64 // percent of trials ending at or below zero
}

// Outcome bundles the trials with their aggregate statistics.
type Outcome struct {
	Results []Result
	Stats   Stats
}

// Simulate runs the forward simulation with a time-derived seed.
func Simulate(p Params) (Outcome, error) {
	return SimulateSeeded(p, rand.Int63())
}

// SimulateSeeded runs numSimulations independent trials. Each trial draws
// from its own generator seeded from the base seed and the trial index, so
// identical (params, seed) pairs reproduce identical output no matter how
// the trials are scheduled across workers.
func SimulateSeeded(p Params, seed int64) (Outcome, error) {
	if p.NumSimulations < 1 {
		return Outcome{}, fmt.Errorf("numSimulations must be >= 1, got %d", p.NumSimulations)
	}
	if p.NumTrades < 1 {
		return Outcome{}, fmt.Errorf("numTrades must be >= 1, got %d", p.NumTrades)
	}

	results := make([]Result, p.NumSimulations)

	workers := runtime.GOMAXPROCS(0)
	if workers > p.NumSimulations {
		workers = p.NumSimulations
	}

	// Trials share nothing; each worker owns a strided slice of indices.
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := w; i < p.NumSimulations; i += workers {
				rng := rand.New(rand.NewSource(seed + int64(i)))
				results[i] = runTrial(p, rng)
			}
		}(w)
	}
	wg.Wait()

	return Outcome{Results: results, Stats: aggregate(results)}, nil
}

// runTrial walks one random trade sequence. A trial is never cut short on
// ruin; the full path is recorded and the final balance decides whether it
// counts as ruined.
func runTrial(p Params, rng *rand.Rand) Result {
	balance := p.StartBalance
	peak := balance

	var maxDD, maxDDPct float64
	curve := make([]float64, 0, p.NumTrades+1)
	curve = append(curve, balance)

	rMultiple := 1.0
	if p.AvgLoss != 0 {
		rMultiple = p.AvgWin / math.Abs(p.AvgLoss)
	}

	for j := 0; j < p.NumTrades; j++ {
		win := rng.Float64()*100 < p.WinRate

		var pnl float64
		if p.RiskMode == RiskFixed {
			if win {
				pnl = p.AvgWin
			} else {
				pnl = -math.Abs(p.AvgLoss)
			}
		} else {
			riskAmount := balance * p.RiskPerTrade / 100
			if win {
				pnl = riskAmount * rMultiple
			} else {
				pnl = -riskAmount
			}
		}

		balance += pnl
		curve = append(curve, balance)

		if balance > peak {
			peak = balance
		}
		dd := peak - balance
		if dd > maxDD {
			maxDD = dd
		}
		if peak > 0 {
			if pct := dd / peak * 100; pct > maxDDPct {
				maxDDPct = pct
			}
		}
	}

	return Result{
		EquityCurve:        curve,
		FinalBalance:       balance,
		MaxDrawdown:        maxDD,
		MaxDrawdownPercent: maxDDPct,
	}
}

func aggregate(results []Result) Stats {
	n := len(results)

	balances := make([]float64, n)
	drawdowns := make([]float64, n)
	ruined := 0
	for i, r := range results {
		balances[i] = r.FinalBalance
		drawdowns[i] = r.MaxDrawdownPercent
		if r.FinalBalance <= 0 {
			ruined++
		}
	}
	sort.Float64s(balances)
	sort.Float64s(drawdowns)

	return Stats{
		MedianBalance:   percentile(balances, 0.5),
		P05Balance:      percentile(balances, 0.05),
		P95Balance:      percentile(balances, 0.95),
		MedianDrawdown:  percentile(drawdowns, 0.5),
		P95Drawdown:     percentile(drawdowns, 0.95),
		RuinProbability: float64(ruined) / float64(n) * 100,
	}
}

// percentile indexes an ascending-sorted slice at floor(n*q).
func percentile(sorted []float64, q float64) float64 {
	i := int(math.Floor(float64(len(sorted)) * q))
	if i >= len(sorted) {
		i = len(sorted) - 1
	}
	return sorted[i]
}
