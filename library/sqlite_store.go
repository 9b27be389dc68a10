package library

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// SQLiteStore persists the snapshot in a single SQLite database with one
// table per record kind. Save rewrites all three tables in one transaction,
// so a crash mid-save never leaves a half-written state visible.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (or creates) the database at dbPath and applies the
// schema.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	// Ensure directory exists so first-run succeeds.
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create db dir: %w", err)
		}
	}

	// Enable busy_timeout and foreign keys.
	dsn := fmt.Sprintf("file:%s?_busy_timeout=5000&_foreign_keys=1", dbPath)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if err := applyMigrations(db); err != nil {
		db.Close()
		return nil, err
	}
	return &SQLiteStore{db: db}, nil
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() error { return s.db.Close() }

const schemaVersion = 1

func applyMigrations(db *sql.DB) error {
	// WAL improves write concurrency.
	if _, err := db.Exec("PRAGMA journal_mode=WAL;"); err != nil {
		return fmt.Errorf("enable WAL: %w", err)
	}

	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS meta (key TEXT PRIMARY KEY, value TEXT);`); err != nil {
		return err
	}

	var current int
	_ = db.QueryRow(`SELECT value FROM meta WHERE key='schema_version';`).Scan(&current)
	if current >= schemaVersion {
		return nil
	}

	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmts := []string{
		`CREATE TABLE IF NOT EXISTS books (
            id TEXT PRIMARY KEY,
            title TEXT NOT NULL,
            author TEXT NOT NULL,
            total_copies INTEGER NOT NULL,
            available_copies INTEGER NOT NULL
        );`,
		`CREATE TABLE IF NOT EXISTS members (
            id TEXT PRIMARY KEY,
            name TEXT NOT NULL
        );`,
		// position preserves ledger append order across a round-trip.
		`CREATE TABLE IF NOT EXISTS transactions (
            position INTEGER PRIMARY KEY AUTOINCREMENT,
            txn_id TEXT NOT NULL,
            kind TEXT NOT NULL,
            member_id TEXT NOT NULL,
            book_id TEXT NOT NULL,
            txn_time TEXT NOT NULL
        );`,
		`INSERT INTO meta(key,value) VALUES('schema_version',?)
            ON CONFLICT(key) DO UPDATE SET value=excluded.value;`,
	}

	for _, stmt := range stmts {
		if _, err := tx.Exec(stmt, schemaVersion); err != nil {
			return fmt.Errorf("apply migration: %w", err)
		}
	}

	return tx.Commit()
}

// Load reads the full snapshot. A fresh database yields an empty snapshot.
func (s *SQLiteStore) Load() (Snapshot, error) {
	var snap Snapshot

	rows, err := s.db.Query(`SELECT id,title,author,total_copies,available_copies FROM books ORDER BY id`)
	if err != nil {
		return Snapshot{}, err
	}
	defer rows.Close()
	for rows.Next() {
		var b Book
		if err := rows.Scan(&b.ID, &b.Title, &b.Author, &b.TotalCopies, &b.AvailableCopies); err != nil {
			return Snapshot{}, err
		}
		snap.Books = append(snap.Books, b)
	}
	if err := rows.Err(); err != nil {
		return Snapshot{}, err
	}

	rows, err = s.db.Query(`SELECT id,name FROM members ORDER BY id`)
	if err != nil {
		return Snapshot{}, err
	}
	defer rows.Close()
	for rows.Next() {
		var m Member
		if err := rows.Scan(&m.ID, &m.Name); err != nil {
			return Snapshot{}, err
		}
		snap.Members = append(snap.Members, m)
	}
	if err := rows.Err(); err != nil {
		return Snapshot{}, err
	}

	rows, err = s.db.Query(`SELECT txn_id,kind,member_id,book_id,txn_time FROM transactions ORDER BY position`)
	if err != nil {
		return Snapshot{}, err
	}
	defer rows.Close()
	for rows.Next() {
		var (
			t  Transaction
			ts string
		)
		if err := rows.Scan(&t.ID, (*string)(&t.Kind), &t.MemberID, &t.BookID, &ts); err != nil {
			return Snapshot{}, err
		}
		t.Time, err = time.ParseInLocation(TimeFormat, ts, time.Local)
		if err != nil {
			return Snapshot{}, fmt.Errorf("transaction %q: bad time %q: %w", t.ID, ts, err)
		}
		snap.Transactions = append(snap.Transactions, t)
	}
	if err := rows.Err(); err != nil {
		return Snapshot{}, err
	}

	return snap, nil
}

// Save replaces the stored snapshot in one transaction.
func (s *SQLiteStore) Save(snap Snapshot) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, table := range []string{"books", "members", "transactions"} {
		if _, err := tx.Exec(`DELETE FROM ` + table); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}

	for _, b := range snap.Books {
		if _, err := tx.Exec(`INSERT INTO books(id,title,author,total_copies,available_copies) VALUES(?,?,?,?,?)`,
			b.ID, b.Title, b.Author, b.TotalCopies, b.AvailableCopies); err != nil {
			return fmt.Errorf("save book %q: %w", b.ID, err)
		}
	}
	for _, m := range snap.Members {
		if _, err := tx.Exec(`INSERT INTO members(id,name) VALUES(?,?)`, m.ID, m.Name); err != nil {
			return fmt.Errorf("save member %q: %w", m.ID, err)
		}
	}
	for _, t := range snap.Transactions {
		if _, err := tx.Exec(`INSERT INTO transactions(txn_id,kind,member_id,book_id,txn_time) VALUES(?,?,?,?,?)`,
			t.ID, string(t.Kind), t.MemberID, t.BookID, t.Time.Format(TimeFormat)); err != nil {
			return fmt.Errorf("save transaction %q: %w", t.ID, err)
		}
	}

	return tx.Commit()
}
