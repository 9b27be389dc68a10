// Command seed wipes the library data store and repopulates it with a demo
// catalog, membership, and a few ledger entries. Handy for trying out the
// deskledger CLI without typing in a catalog first.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"deskledger/library"
)

func main() {
	dataDir := flag.String("data-dir", "data", "data directory to seed")
	backend := flag.String("store", "sqlite", "storage backend: sqlite or json")
	flag.Parse()

	// Clean up any existing store files so the seed starts from scratch.
	fmt.Println("Cleaning up existing data files...")
	stale := []string{
		"library.db", "library.db-shm", "library.db-wal",
		"books.json", "members.json", "transactions.json",
	}
	for _, name := range stale {
		path := filepath.Join(*dataDir, name)
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			fmt.Printf("Warning: could not remove %s: %v\n", path, err)
		}
	}

	var (
		store library.Store
		err   error
	)
	switch *backend {
	case "sqlite":
		var s *library.SQLiteStore
		if s, err = library.NewSQLiteStore(filepath.Join(*dataDir, "library.db")); err == nil {
			defer s.Close()
			store = s
		}
	case "json":
		store, err = library.NewJSONStore(*dataDir)
	default:
		err = fmt.Errorf("unknown store backend %q", *backend)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening store: %v\n", err)
		os.Exit(1)
	}

	sys := library.NewSystem(store)
	if err := sys.Load(); err != nil {
		fmt.Fprintf(os.Stderr, "Error loading store: %v\n", err)
		os.Exit(1)
	}

	books := []struct {
		id, title, author string
		copies            int
	}{
		{"B001", "1984", "George Orwell", 3},
		{"B002", "Animal Farm", "George Orwell", 2},
		{"B003", "The Art of War", "Sun Tzu", 1},
		{"B004", "The Fellowship of the Ring", "J.R.R. Tolkien", 2},
		{"B005", "Romeo and Juliet", "William Shakespeare", 4},
		{"B006", "The Three Musketeers", "Alexandre Dumas", 2},
	}
	members := []struct{ id, name string }{
		{"M001", "Alice"},
		{"M002", "Bob"},
		{"M003", "Charlie"},
	}

	for _, b := range books {
		if err := sys.AddBook(b.id, b.title, b.author, b.copies); err != nil {
			fmt.Fprintf(os.Stderr, "Error adding %s: %v\n", b.title, err)
			os.Exit(1)
		}
		fmt.Printf("Added book %s: %s by %s (%d copies)\n", b.id, b.title, b.author, b.copies)
	}
	for _, m := range members {
		if err := sys.AddMember(m.id, m.name); err != nil {
			fmt.Fprintf(os.Stderr, "Error adding member %s: %v\n", m.name, err)
			os.Exit(1)
		}
		fmt.Printf("Added member %s: %s\n", m.id, m.name)
	}

	// A little circulation history so the ledger is not empty.
	loans := []struct{ member, book string }{
		{"M001", "B001"},
		{"M002", "B003"},
		{"M003", "B004"},
	}
	for _, l := range loans {
		if err := sys.Borrow(uuid.NewString(), l.member, l.book); err != nil {
			fmt.Fprintf(os.Stderr, "Error seeding loan: %v\n", err)
			os.Exit(1)
		}
	}
	if err := sys.ReturnBook(uuid.NewString(), "M001", "B001"); err != nil {
		fmt.Fprintf(os.Stderr, "Error seeding return: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("\nSeed complete: %d books, %d members, %d transactions.\n",
		len(sys.Books()), len(sys.Members()), len(sys.Transactions()))
}
