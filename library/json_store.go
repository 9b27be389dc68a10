package library

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// JSONStore persists the snapshot as three independent files in one
// directory: books.json, members.json and transactions.json. The layout and
// field names match the files earlier tooling wrote, so existing data
// directories load as-is.
type JSONStore struct {
	dir string
}

// NewJSONStore uses dir as the data directory, creating it if needed.
func NewJSONStore(dir string) (*JSONStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	return &JSONStore{dir: dir}, nil
}

// txnRecord is the on-disk shape of a ledger entry. The date is a formatted
// string, not an RFC 3339 timestamp, for compatibility with prior data.
type txnRecord struct {
	ID       string `json:"transaction_id"`
	MemberID string `json:"member_id"`
	BookID   string `json:"book_id"`
	Date     string `json:"date"`
	Type     string `json:"type"`
}

func (s *JSONStore) booksPath() string   { return filepath.Join(s.dir, "books.json") }
func (s *JSONStore) membersPath() string { return filepath.Join(s.dir, "members.json") }
func (s *JSONStore) txnsPath() string    { return filepath.Join(s.dir, "transactions.json") }

// Load reads the three files. A missing file is an empty collection.
func (s *JSONStore) Load() (Snapshot, error) {
	var snap Snapshot

	if err := readJSONFile(s.booksPath(), &snap.Books); err != nil {
		return Snapshot{}, err
	}
	if err := readJSONFile(s.membersPath(), &snap.Members); err != nil {
		return Snapshot{}, err
	}

	var records []txnRecord
	if err := readJSONFile(s.txnsPath(), &records); err != nil {
		return Snapshot{}, err
	}
	for _, r := range records {
		ts, err := time.ParseInLocation(TimeFormat, r.Date, time.Local)
		if err != nil {
			return Snapshot{}, fmt.Errorf("transaction %q: bad date %q: %w", r.ID, r.Date, err)
		}
		snap.Transactions = append(snap.Transactions, Transaction{
			ID:       r.ID,
			Kind:     TxnKind(r.Type),
			MemberID: r.MemberID,
			BookID:   r.BookID,
			Time:     ts,
		})
	}
	return snap, nil
}

// Save rewrites all three files. Each file is written to a temp path and
// renamed into place so a reader never observes a partial write.
func (s *JSONStore) Save(snap Snapshot) error {
	books := snap.Books
	if books == nil {
		books = []Book{}
	}
	if err := writeJSONFile(s.booksPath(), books); err != nil {
		return err
	}

	members := snap.Members
	if members == nil {
		members = []Member{}
	}
	if err := writeJSONFile(s.membersPath(), members); err != nil {
		return err
	}

	records := make([]txnRecord, 0, len(snap.Transactions))
	for _, t := range snap.Transactions {
		records = append(records, txnRecord{
			ID:       t.ID,
			MemberID: t.MemberID,
			BookID:   t.BookID,
			Date:     t.Time.Format(TimeFormat),
			Type:     string(t.Kind),
		})
	}
	return writeJSONFile(s.txnsPath(), records)
}

// readJSONFile reads path into out; a missing file leaves out untouched.
func readJSONFile(path string, out any) error {
	b, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}
	if err := json.Unmarshal(b, out); err != nil {
		return fmt.Errorf("decode %s: %w", filepath.Base(path), err)
	}
	return nil
}

// writeJSONFile writes v as indented JSON via a temp file then rename.
func writeJSONFile(path string, v any) error {
	b, err := json.MarshalIndent(v, "", "    ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", filepath.Base(path), err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}
