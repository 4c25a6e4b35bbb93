package sink

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/quietmail/mailsrv/daemon/smtpd/smtp"
)

func TestSQLiteStore_PersistsMessage(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "messages.db")
	store, err := OpenSQLiteStore(dbPath)
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	env := &smtp.Envelope{
		From: "<alice@sender.com>",
		To:   []string{"<bob@example.com>", "<carol@example.com>"},
		Data: []byte("Subject: hi\r\n\r\nbody\r\n"),
	}
	if err := store.Handle(env); err != nil {
		t.Fatal(err)
	}

	raw, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		t.Fatal(err)
	}
	defer raw.Close()

	var from, to string
	var message []byte
	row := raw.QueryRow("SELECT from_addr, to_addrs, message FROM messages WHERE id = 1")
	if err := row.Scan(&from, &to, &message); err != nil {
		t.Fatal(err)
	}
	if from != env.From {
		t.Errorf("from_addr = %q, want %q", from, env.From)
	}
	if to != "<bob@example.com>,<carol@example.com>" {
		t.Errorf("to_addrs = %q", to)
	}
	if string(message) != string(env.Data) {
		t.Errorf("message = %q, want %q", message, env.Data)
	}
}

func TestSQLiteStore_ReopenReusesExistingTable(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "messages.db")
	first, err := OpenSQLiteStore(dbPath)
	if err != nil {
		t.Fatal(err)
	}
	if err := first.Handle(&smtp.Envelope{From: "<a@b.com>", To: []string{"<c@d.com>"}}); err != nil {
		t.Fatal(err)
	}
	first.Close()

	second, err := OpenSQLiteStore(dbPath)
	if err != nil {
		t.Fatal(err)
	}
	defer second.Close()
	if err := second.Handle(&smtp.Envelope{From: "<e@f.com>", To: []string{"<g@h.com>"}}); err != nil {
		t.Fatal(err)
	}
}
