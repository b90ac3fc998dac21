package risk

import "time"

// Mode selects how the risk budget for a trade is expressed.
type Mode string

const (
	ModePercent Mode = "percent" // percent of account balance
	ModeCash    Mode = "cash"    // fixed account-currency amount
)

// TradeInput is a proposed trade as entered by the user.
//
// Direction is not stored: a trade is long exactly when the entry sits above
// the stop. Flipping direction means swapping entry and stop, not toggling a
// flag, and editors must preserve that coupling.
type TradeInput struct {
	EntryPrice     float64
	StopLossPrice  float64
	AccountBalance float64
	RiskMode       Mode
	RiskPercent    float64 // used when RiskMode == ModePercent
	RiskCash       float64 // used when RiskMode == ModeCash
	Symbol         string
	Time           time.Time
}

// Long reports the derived trade direction.
func (in TradeInput) Long() bool {
	return in.EntryPrice > in.StopLossPrice
}

// Exit is one partial close. PercentToClose applies to the volume remaining
// when this exit is reached, not the original position size (waterfall
// semantics).
type Exit struct {
	ID             string
	Price          float64
	PercentToClose float64 // 0-100 of remaining lots
}

// ExitResult is the settled outcome of a single partial close.
type ExitResult struct {
	ExitID                   string
	LotsClosed               float64
	PipsCaptured             float64 // signed, direction-aware
	GrossProfit              float64
	Commission               float64
	NetProfit                float64
	PercentClosedOfRemaining float64
	LotsRemaining            float64
}

// CalculationResult is the full output of a calculator run. It is derived
// once per (TradeInput, []Exit) pair and never mutated afterwards.
type CalculationResult struct {
	InitialRiskAmount   float64
	InitialLots         float64
	SLPips              float64
	Exits               []ExitResult
	TotalNetProfit      float64
	RemainingLots       float64
	FinalAccountBalance float64
}

// Valid reports whether the input produced a usable position. Degenerate
// configurations (zero stop distance, zero risk, unknown symbol) size to
// zero lots rather than raising an error.
func (r CalculationResult) Valid() bool {
	return r.InitialLots > 0
}
