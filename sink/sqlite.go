package sink

import (
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/mattn/go-sqlite3"

	"github.com/quietmail/mailsrv/daemon/smtpd/smtp"
)

const createTableSQL = `CREATE TABLE IF NOT EXISTS messages (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	from_addr TEXT NOT NULL,
	to_addrs TEXT NOT NULL,
	message BLOB NOT NULL
)`

const insertMessageSQL = `INSERT INTO messages (from_addr, to_addrs, message) VALUES (?, ?, ?)`

// SQLiteStore persists every accepted envelope into a single "messages" table, one row per
// message. Recipients are stored as a comma-joined list rather than a normalised side table: the
// server has no need to query by individual recipient.
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLiteStore opens (and creates, if absent) the database file at path and ensures the
// messages table exists before returning.
func OpenSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("sink: failed to open sqlite database %q - %w", path, err)
	}
	if _, err := db.Exec(createTableSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("sink: failed to create messages table - %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Handle(env *smtp.Envelope) error {
	_, err := s.db.Exec(insertMessageSQL, env.From, strings.Join(env.To, ","), env.Data)
	if err != nil {
		return fmt.Errorf("sink: failed to insert message from %q - %w", env.From, err)
	}
	return nil
}

// Close releases the underlying database handle.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
