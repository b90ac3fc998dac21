// journal/journal.go
package journal

import (
	"time"

	"github.com/rustyeddy/tradelab/risk"
)

// LogType discriminates the entries of a session's history.
type LogType string

const (
	LogTrade      LogType = "TRADE"
	LogWithdrawal LogType = "WITHDRAWAL"
	LogDeposit    LogType = "DEPOSIT"
)

// Session is one journal: a named account with a starting balance whose
// history the analytics engines fold over. Created once, read-only after.
type Session struct {
	ID             string
	Name           string
	InitialBalance float64
	Currency       string
	CreatedAt      time.Time
}

// HistoryLog is one journal entry: a logged trade or a cash transfer.
// Exactly one of Trade / Transfer is populated, matching Type. Entries are
// append-only; edits and deletes happen only through the store.
type HistoryLog struct {
	ID       string
	Type     LogType
	Date     time.Time
	Trade    *TradeLog
	Transfer *TransferLog
}

// TradeLog captures a calculator run the user committed to the journal.
type TradeLog struct {
	Input       risk.TradeInput
	Results     risk.CalculationResult
	Tags        []string
	Attachments []string
}

// TransferLog is a deposit or withdrawal. Amount is always positive; the
// direction comes from the entry type.
type TransferLog struct {
	Amount  float64
	Balance float64 // balance after the transfer
	Note    string
}

// NetProfit returns the trade P/L of the entry, 0 for transfers.
func (l HistoryLog) NetProfit() float64 {
	if l.Type == LogTrade && l.Trade != nil {
		return l.Trade.Results.TotalNetProfit
	}
	return 0
}

// TransferAmount returns the signed balance effect of a transfer entry:
// positive for deposits, negative for withdrawals, 0 for trades.
func (l HistoryLog) TransferAmount() float64 {
	if l.Transfer == nil {
		return 0
	}
	switch l.Type {
	case LogDeposit:
		return l.Transfer.Amount
	case LogWithdrawal:
		return -l.Transfer.Amount
	}
	return 0
}

// Store is the persistence boundary. The engines never touch it; they take
// plain HistoryLog slices and return plain results.
type Store interface {
	CreateSession(Session) error
	GetSession(id string) (Session, error)
	ListSessions() ([]Session, error)
	DeleteSession(id string) error

	Append(sessionID string, log HistoryLog) error
	List(sessionID string) ([]HistoryLog, error)
	DeleteLog(sessionID, logID string) error

	Close() error
}
