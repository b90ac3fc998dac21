package journal

import (
	"database/sql"
	"fmt"
	"time"
)

// GetLog returns a single history entry by ID.
func (j *SQLite) GetLog(sessionID, logID string) (HistoryLog, error) {
	row := j.db.QueryRow(`
		SELECT id, type, date, data
		FROM logs
		WHERE session_id = ? AND id = ?`, sessionID, logID)

	l, err := scanLog(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return HistoryLog{}, fmt.Errorf("log %q not found", logID)
		}
		return HistoryLog{}, err
	}
	return l, nil
}

// ListBetween returns history entries whose date falls within [start, end),
// oldest first.
func (j *SQLite) ListBetween(sessionID string, start, end time.Time) ([]HistoryLog, error) {
	rows, err := j.db.Query(`
		SELECT id, type, date, data
		FROM logs
		WHERE session_id = ? AND date >= ? AND date < ?
		ORDER BY date ASC`, sessionID, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []HistoryLog
	for rows.Next() {
		l, err := scanLog(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
