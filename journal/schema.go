// journal/schema.go
package journal

const Schema = `
CREATE TABLE IF NOT EXISTS sessions (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	initial_balance REAL NOT NULL,
	currency TEXT NOT NULL DEFAULT 'USD',
	created_at DATETIME NOT NULL
);

CREATE TABLE IF NOT EXISTS logs (
	id TEXT PRIMARY KEY,
	session_id TEXT NOT NULL REFERENCES sessions(id) ON DELETE CASCADE,
	type TEXT NOT NULL,
	date DATETIME NOT NULL,
	data TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_logs_session_date ON logs(session_id, date);
`
