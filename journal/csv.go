// journal/csv.go
package journal

import (
	"encoding/csv"
	"os"
	"strconv"
	"strings"
	"time"
)

// ExportCSV writes the trade entries of a history to path, one row per
// trade. Transfers are written too, with the trade columns blank, so the
// file replays the full balance history.
func ExportCSV(path string, logs []HistoryLog) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)

	header := []string{
		"id", "type", "date", "symbol", "entry", "stop", "lots",
		"net_profit", "final_balance", "amount", "tags",
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for _, l := range logs {
		row := []string{l.ID, string(l.Type), l.Date.Format(time.RFC3339)}

		switch {
		case l.Type == LogTrade && l.Trade != nil:
			t := l.Trade
			row = append(row,
				t.Input.Symbol,
				fl(t.Input.EntryPrice),
				fl(t.Input.StopLossPrice),
				fl(t.Results.InitialLots),
				fl(t.Results.TotalNetProfit),
				fl(t.Results.FinalAccountBalance),
				"",
				strings.Join(t.Tags, ";"),
			)
		case l.Transfer != nil:
			row = append(row, "", "", "", "", "", "", fl(l.Transfer.Amount), "")
		default:
			row = append(row, "", "", "", "", "", "", "", "")
		}

		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return err
	}
	return f.Close()
}

func fl(x float64) string {
	return strconv.FormatFloat(x, 'f', -1, 64)
}
