package analytics

import "github.com/rustyeddy/tradelab/journal"

// FilterSymbol narrows a history to trades on one instrument. Transfers
// always pass, since they shape the balance curve regardless of instrument.
// An empty filter or "ALL" returns the input unchanged.
func FilterSymbol(logs []journal.HistoryLog, symbol string) []journal.HistoryLog {
	if symbol == "" || symbol == "ALL" {
		return logs
	}

	out := make([]journal.HistoryLog, 0, len(logs))
	for _, l := range logs {
		if l.Type == journal.LogTrade && l.Trade != nil && l.Trade.Input.Symbol != symbol {
			continue
		}
		out = append(out, l)
	}
	return out
}
