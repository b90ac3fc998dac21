package journal

import (
	"database/sql"
	"encoding/json"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

// SQLite persists sessions and their history logs. The log payload is kept
// as a JSON document so the trade/transfer union round-trips without a
// column per field.
type SQLite struct {
	db *sql.DB
}

var _ Store = (*SQLite)(nil)

func NewSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(`PRAGMA foreign_keys = ON`); err != nil {
		return nil, err
	}
	if _, err := db.Exec(Schema); err != nil {
		return nil, err
	}

	return &SQLite{db: db}, nil
}

func (j *SQLite) CreateSession(s Session) error {
	_, err := j.db.Exec(`
		INSERT INTO sessions (id, name, initial_balance, currency, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		s.ID, s.Name, s.InitialBalance, s.Currency, s.CreatedAt,
	)
	return err
}

func (j *SQLite) GetSession(id string) (Session, error) {
	var s Session

	row := j.db.QueryRow(`
		SELECT id, name, initial_balance, currency, created_at
		FROM sessions
		WHERE id = ?`, id)

	err := row.Scan(&s.ID, &s.Name, &s.InitialBalance, &s.Currency, &s.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return Session{}, fmt.Errorf("session %q not found", id)
		}
		return Session{}, err
	}
	return s, nil
}

func (j *SQLite) ListSessions() ([]Session, error) {
	rows, err := j.db.Query(`
		SELECT id, name, initial_balance, currency, created_at
		FROM sessions
		ORDER BY created_at ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Session
	for rows.Next() {
		var s Session
		if err := rows.Scan(&s.ID, &s.Name, &s.InitialBalance, &s.Currency, &s.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (j *SQLite) DeleteSession(id string) error {
	// Logs cascade via the foreign key.
	_, err := j.db.Exec(`DELETE FROM sessions WHERE id = ?`, id)
	return err
}

// logPayload is the JSON document stored in the data column.
type logPayload struct {
	Trade    *TradeLog    `json:"trade,omitempty"`
	Transfer *TransferLog `json:"transfer,omitempty"`
}

func (j *SQLite) Append(sessionID string, l HistoryLog) error {
	data, err := json.Marshal(logPayload{Trade: l.Trade, Transfer: l.Transfer})
	if err != nil {
		return fmt.Errorf("encode log: %w", err)
	}

	_, err = j.db.Exec(`
		INSERT INTO logs (id, session_id, type, date, data)
		VALUES (?, ?, ?, ?, ?)`,
		l.ID, sessionID, string(l.Type), l.Date, string(data),
	)
	return err
}

func (j *SQLite) List(sessionID string) ([]HistoryLog, error) {
	rows, err := j.db.Query(`
		SELECT id, type, date, data
		FROM logs
		WHERE session_id = ?
		ORDER BY date ASC`, sessionID)
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

func (j *SQLite) DeleteLog(sessionID, logID string) error {
	_, err := j.db.Exec(`DELETE FROM logs WHERE session_id = ? AND id = ?`, sessionID, logID)
	return err
}

func (j *SQLite) Close() error {
	return j.db.Close()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanLog(row rowScanner) (HistoryLog, error) {
	var (
		l    HistoryLog
		typ  string
		data string
	)
	if err := row.Scan(&l.ID, &typ, &l.Date, &data); err != nil {
		return HistoryLog{}, err
	}
	l.Type = LogType(typ)

	var payload logPayload
	if err := json.Unmarshal([]byte(data), &payload); err != nil {
		return HistoryLog{}, fmt.Errorf("decode log %q: %w", l.ID, err)
	}
	l.Trade = payload.Trade
	l.Transfer = payload.Transfer
	return l, nil
}
