// Package state persists the session transcript and a per-turn outcome
// journal in SQLite. The in-memory dialog context stays the source of truth
// during a session; this store exists so transcripts survive restarts and so
// hosts (REPL, HTTP console) can list recent messages.
package state

import (
	"database/sql"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"astra-core/internal/brain"
)

type DB struct{ *sql.DB }

func Open(path string) (*DB, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	if err := migrate(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &DB{DB: db}, nil
}

func migrate(db *sql.DB) error {
	stmts := []string{
		`PRAGMA journal_mode=WAL;`,
		`CREATE TABLE IF NOT EXISTS messages (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			session_id TEXT NOT NULL,
			created_at TEXT NOT NULL,
			kind TEXT NOT NULL,
			text TEXT NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_messages_session ON messages(session_id);`,
		`CREATE TABLE IF NOT EXISTS turn_log (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			session_id TEXT NOT NULL,
			created_at TEXT NOT NULL,
			intent TEXT NOT NULL,
			confidence REAL NOT NULL,
			outcome TEXT NOT NULL,
			steps INTEGER NOT NULL,
			summary TEXT NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_turn_log_session ON turn_log(session_id);`,
	}
	for _, s := range stmts {
		if _, err := db.Exec(s); err != nil {
			return err
		}
	}
	return nil
}

// Message kinds in the transcript.
const (
	KindUser  = "user"
	KindReply = "reply"
)

type Message struct {
	ID        int64
	SessionID string
	CreatedAt time.Time
	Kind      string
	Text      string
}

func (d *DB) AppendMessage(sessionID, kind, text string) (int64, error) {
	res, err := d.Exec(
		`INSERT INTO messages(session_id, created_at, kind, text) VALUES(?,?,?,?)`,
		sessionID, time.Now().Format(time.RFC3339), kind, text,
	)
	if err != nil {
		return 0, err
	}
	id, _ := res.LastInsertId()
	return id, nil
}

// LogTurn journals one committed turn outcome.
func (d *DB) LogTurn(sessionID string, result brain.TurnResult) error {
	_, err := d.Exec(
		`INSERT INTO turn_log(session_id, created_at, intent, confidence, outcome, steps, summary)
		 VALUES(?,?,?,?,?,?,?)`,
		sessionID,
		time.Now().Format(time.RFC3339),
		result.Intent.Category.String(),
		result.Intent.Confidence,
		result.Kind.String(),
		len(result.Plan.Steps),
		result.Plan.Summary,
	)
	return err
}

// RecentMessages returns the newest messages for a session, chronological.
func (d *DB) RecentMessages(sessionID string, limit int) ([]Message, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := d.Query(
		`SELECT id, created_at, kind, text
		 FROM messages
		 WHERE session_id=?
		 ORDER BY id DESC
		 LIMIT ?`,
		sessionID, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rev []Message
	for rows.Next() {
		var m Message
		var created string
		if err := rows.Scan(&m.ID, &created, &m.Kind, &m.Text); err != nil {
			return nil, err
		}
		m.SessionID = sessionID
		m.CreatedAt, _ = time.Parse(time.RFC3339, created)
		rev = append(rev, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// reverse into chronological order
	out := make([]Message, 0, len(rev))
	for i := len(rev) - 1; i >= 0; i-- {
		out = append(out, rev[i])
	}
	return out, nil
}

// LoadMemory rebuilds bounded conversation memory from the newest transcript
// rows, pairing each user message with the reply that followed it.
func (d *DB) LoadMemory(sessionID string, maxTurns int) (brain.Memory, error) {
	mem := brain.NewMemory(maxTurns)
	msgs, err := d.RecentMessages(sessionID, mem.MaxTurns()*2)
	if err != nil {
		return mem, err
	}
	for _, m := range msgs {
		text := strings.TrimSpace(m.Text)
		if text == "" {
			continue
		}
		switch m.Kind {
		case KindUser:
			mem = mem.AppendUser(text)
		case KindReply:
			mem = mem.AppendReply(text)
		}
	}
	return mem, nil
}
