package commands

import (
	"fmt"
	"strconv"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"deskledger/library"
)

// withSystem opens the configured store, loads the system, runs fn, and
// releases the store. Every library command goes through here.
func withSystem(fn func(*library.System) error) error {
	store, closeStore, err := openStore()
	if err != nil {
		return err
	}
	defer closeStore()

	log, err := newLogger()
	if err != nil {
		return err
	}
	defer log.Sync()

	sys := library.NewSystem(store, library.WithLogger(log))
	if err := sys.Load(); err != nil {
		return err
	}
	return fn(sys)
}

func libraryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "library",
		Short: "Library circulation: catalog, members, borrow/return ledger",
	}
	cmd.AddCommand(
		addBookCmd(),
		addMemberCmd(),
		borrowCmd(),
		returnCmd(),
		listBooksCmd(),
		listMembersCmd(),
		listTransactionsCmd(),
	)
	return cmd
}

func addBookCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add-book <id> <title> <author> <total-copies>",
		Short: "Add a book to the catalog",
		Args:  cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			copies, err := strconv.Atoi(args[3])
			if err != nil {
				return fmt.Errorf("total copies must be a positive integer")
			}
			return withSystem(func(sys *library.System) error {
				if err := sys.AddBook(args[0], args[1], args[2], copies); err != nil {
					return err
				}
				fmt.Println("Book added successfully.")
				return nil
			})
		},
	}
}

func addMemberCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add-member <id> <name>",
		Short: "Register a library member",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSystem(func(sys *library.System) error {
				if err := sys.AddMember(args[0], args[1]); err != nil {
					return err
				}
				fmt.Println("Member added successfully.")
				return nil
			})
		},
	}
}

// txnID returns the --tx flag value, or a fresh UUID when it was left blank.
func txnID(cmd *cobra.Command) string {
	id, _ := cmd.Flags().GetString("tx")
	if id == "" {
		id = uuid.NewString()
	}
	return id
}

func borrowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "borrow <member-id> <book-id>",
		Short: "Lend one copy of a book to a member",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSystem(func(sys *library.System) error {
				id := txnID(cmd)
				if err := sys.Borrow(id, args[0], args[1]); err != nil {
					return err
				}
				fmt.Printf("Book borrowed successfully (transaction %s).\n", id)
				return nil
			})
		},
	}
	cmd.Flags().String("tx", "", "transaction id (generated when omitted)")
	return cmd
}

func returnCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "return <member-id> <book-id>",
		Short: "Take back one copy of a book from a member",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSystem(func(sys *library.System) error {
				id := txnID(cmd)
				if err := sys.ReturnBook(id, args[0], args[1]); err != nil {
					return err
				}
				fmt.Printf("Book returned successfully (transaction %s).\n", id)
				return nil
			})
		},
	}
	cmd.Flags().String("tx", "", "transaction id (generated when omitted)")
	return cmd
}

func listBooksCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list-books",
		Short: "List the catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSystem(func(sys *library.System) error {
				books := sys.Books()
				if len(books) == 0 {
					fmt.Println("No books in the catalog.")
					return nil
				}
				fmt.Printf("%-8s %-35s %-25s %s\n", "ID", "Title", "Author", "Available/Total")
				for _, b := range books {
					fmt.Printf("%-8s %-35s %-25s %d/%d\n",
						b.ID, b.Title, b.Author, b.AvailableCopies, b.TotalCopies)
				}
				return nil
			})
		},
	}
}

func listMembersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list-members",
		Short: "List registered members",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSystem(func(sys *library.System) error {
				members := sys.Members()
				if len(members) == 0 {
					fmt.Println("No members registered.")
					return nil
				}
				fmt.Printf("%-8s %s\n", "ID", "Name")
				for _, m := range members {
					fmt.Printf("%-8s %s\n", m.ID, m.Name)
				}
				return nil
			})
		},
	}
}

func listTransactionsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list-transactions",
		Short: "List the borrow/return ledger in order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSystem(func(sys *library.System) error {
				txns := sys.Transactions()
				if len(txns) == 0 {
					fmt.Println("No transactions recorded.")
					return nil
				}
				fmt.Printf("%-38s %-8s %-10s %-10s %s\n", "Transaction", "Kind", "Member", "Book", "Date")
				for _, t := range txns {
					fmt.Printf("%-38s %-8s %-10s %-10s %s\n",
						t.ID, t.Kind, t.MemberID, t.BookID, t.Time.Format(library.TimeFormat))
				}
				return nil
			})
		},
	}
}
