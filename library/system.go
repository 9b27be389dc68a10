package library

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"
)

// System is the facade the front desk drives. It owns the only in-memory
// copy of the catalog, the member registry and the loan ledger; the Store is
// a pure transform invoked after every successful mutation.
//
// Construction and loading are explicit, separate steps:
//
//	sys := library.NewSystem(store)
//	if err := sys.Load(); err != nil { ... }
//
// Operations serialize on one mutex, so callers need no locking discipline
// of their own.
type System struct {
	mu      sync.Mutex
	books   map[string]*Book
	members map[string]*Member
	ledger  []Transaction

	store Store
	clock func() time.Time
	log   *zap.Logger
}

// SystemOption configures a System.
type SystemOption func(*System)

// WithLogger routes operation logging to log instead of discarding it.
func WithLogger(log *zap.Logger) SystemOption {
	return func(s *System) { s.log = log }
}

// WithClock replaces the timestamp source, which tests use to pin ledger
// times.
func WithClock(clock func() time.Time) SystemOption {
	return func(s *System) { s.clock = clock }
}

// NewSystem returns an empty System backed by store. Call Load to pull in
// any existing durable state.
func NewSystem(store Store, opts ...SystemOption) *System {
	s := &System{
		books:   make(map[string]*Book),
		members: make(map[string]*Member),
		store:   store,
		clock:   time.Now,
		log:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load replaces the in-memory state with the stored snapshot. Absent durable
// state loads as empty.
func (s *System) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap, err := s.store.Load()
	if err != nil {
		return &PersistenceError{Op: "load", Err: err}
	}

	s.books = make(map[string]*Book, len(snap.Books))
	for i := range snap.Books {
		b := snap.Books[i]
		s.books[b.ID] = &b
	}
	s.members = make(map[string]*Member, len(snap.Members))
	for i := range snap.Members {
		m := snap.Members[i]
		s.members[m.ID] = &m
	}
	s.ledger = append([]Transaction(nil), snap.Transactions...)

	s.log.Info("state loaded",
		zap.Int("books", len(s.books)),
		zap.Int("members", len(s.members)),
		zap.Int("transactions", len(s.ledger)))
	return nil
}

// AddBook registers a new catalog entry with every copy available.
func (s *System) AddBook(id, title, author string, totalCopies int) error {
	if totalCopies <= 0 {
		return fmt.Errorf("add book %q: %w", id, ErrInvalidQuantity)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.books[id]; ok {
		return fmt.Errorf("add book %q: %w", id, ErrDuplicateID)
	}
	s.books[id] = &Book{
		ID:              id,
		Title:           title,
		Author:          author,
		TotalCopies:     totalCopies,
		AvailableCopies: totalCopies,
	}

	s.log.Info("book added", zap.String("book", id), zap.Int("copies", totalCopies))
	return s.persist("add book")
}

// AddMember registers a new member.
func (s *System) AddMember(id, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.members[id]; ok {
		return fmt.Errorf("add member %q: %w", id, ErrDuplicateID)
	}
	s.members[id] = &Member{ID: id, Name: name}

	s.log.Info("member added", zap.String("member", id))
	return s.persist("add member")
}

// Borrow lends one copy of a book to a member and records it in the ledger.
// Both identifiers are resolved before anything mutates, so a failed lookup
// leaves no trace.
func (s *System) Borrow(txnID, memberID, bookID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	book, err := s.resolve(memberID, bookID)
	if err != nil {
		return fmt.Errorf("borrow: %w", err)
	}
	if book.AvailableCopies <= 0 {
		return fmt.Errorf("borrow %q: %w", bookID, ErrNoCopiesAvailable)
	}

	book.AvailableCopies--
	s.append(txnID, Borrow, memberID, bookID)
	return s.persist("borrow")
}

// ReturnBook takes back one copy of a book from a member and records it.
// A return with every copy already on the shelf is rejected, keeping
// AvailableCopies within TotalCopies.
func (s *System) ReturnBook(txnID, memberID, bookID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	book, err := s.resolve(memberID, bookID)
	if err != nil {
		return fmt.Errorf("return: %w", err)
	}
	if book.AvailableCopies >= book.TotalCopies {
		return fmt.Errorf("return %q: %w", bookID, ErrNoCopiesOut)
	}

	book.AvailableCopies++
	s.append(txnID, Return, memberID, bookID)
	return s.persist("return")
}

// resolve checks both referenced entities exist. Caller holds the mutex.
func (s *System) resolve(memberID, bookID string) (*Book, error) {
	if _, ok := s.members[memberID]; !ok {
		return nil, fmt.Errorf("member %q: %w", memberID, ErrNotFound)
	}
	book, ok := s.books[bookID]
	if !ok {
		return nil, fmt.Errorf("book %q: %w", bookID, ErrNotFound)
	}
	return book, nil
}

// append adds a ledger record stamped with the clock. The ledger is
// append-only; records are never updated or removed. Caller holds the mutex.
func (s *System) append(txnID string, kind TxnKind, memberID, bookID string) {
	t := Transaction{
		ID:       txnID,
		Kind:     kind,
		MemberID: memberID,
		BookID:   bookID,
		Time:     s.clock(),
	}
	s.ledger = append(s.ledger, t)

	s.log.Info("transaction recorded",
		zap.String("txn", t.ID),
		zap.String("kind", string(t.Kind)),
		zap.String("member", t.MemberID),
		zap.String("book", t.BookID))
}

// persist writes the full current state. By the time it runs the in-memory
// mutation has already succeeded, so a failure means memory and disk have
// diverged; it is surfaced as a PersistenceError, distinct from any domain
// rejection. Caller holds the mutex.
func (s *System) persist(op string) error {
	if err := s.store.Save(s.snapshot()); err != nil {
		s.log.Error("save failed", zap.String("op", op), zap.Error(err))
		return &PersistenceError{Op: op, Err: err}
	}
	return nil
}

// snapshot copies the current state. Caller holds the mutex.
func (s *System) snapshot() Snapshot {
	snap := Snapshot{
		Books:        make([]Book, 0, len(s.books)),
		Members:      make([]Member, 0, len(s.members)),
		Transactions: append([]Transaction(nil), s.ledger...),
	}
	for _, b := range s.books {
		snap.Books = append(snap.Books, *b)
	}
	sort.Slice(snap.Books, func(i, j int) bool { return snap.Books[i].ID < snap.Books[j].ID })
	for _, m := range s.members {
		snap.Members = append(snap.Members, *m)
	}
	sort.Slice(snap.Members, func(i, j int) bool { return snap.Members[i].ID < snap.Members[j].ID })
	return snap
}

// Books lists the catalog sorted by ID. The result is a copy.
func (s *System) Books() []Book {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot().Books
}

// Members lists the registry sorted by ID. The result is a copy.
func (s *System) Members() []Member {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot().Members
}

// Transactions lists the ledger in append order. The result is a copy.
func (s *System) Transactions() []Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Transaction(nil), s.ledger...)
}
