// Package library implements the circulation core of the library front desk:
// the catalog and member registries, the append-only loan ledger, and the
// durable snapshot stores behind them. The UI layer is a thin caller of the
// System facade and lives outside this package.
package library

import "time"

// TimeFormat is the wire format for transaction timestamps in durable
// storage, identical across storage backends.
const TimeFormat = "2006-01-02 15:04:05"

// Book is a catalog entry. AvailableCopies counts the units not currently on
// loan and always stays within [0, TotalCopies].
type Book struct {
	ID              string `json:"item_id"`
	Title           string `json:"title"`
	Author          string `json:"author"`
	TotalCopies     int    `json:"total_copies"`
	AvailableCopies int    `json:"available_copies"`
}

// Member is a registered borrower. Immutable once created.
type Member struct {
	ID   string `json:"member_id"`
	Name string `json:"name"`
}

// TxnKind discriminates ledger records.
type TxnKind string

const (
	Borrow TxnKind = "borrow"
	Return TxnKind = "return"
)

// Transaction is one ledger record. IDs are caller-supplied and the ledger
// does not enforce their uniqueness.
type Transaction struct {
	ID       string
	Kind     TxnKind
	MemberID string
	BookID   string
	Time     time.Time
}

// Snapshot carries the full durable state between the System and a Store.
// Transactions are in append order, which is chronological by construction.
type Snapshot struct {
	Books        []Book
	Members      []Member
	Transactions []Transaction
}
