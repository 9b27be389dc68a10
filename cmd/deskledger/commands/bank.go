package commands

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"deskledger/bank"
)

// bankCmd runs an interactive teller session. The bank domain keeps no
// durable state, so accounts live for the session only.
func bankCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "bank",
		Short: "Interactive bank-account session (in-memory)",
		RunE: func(cmd *cobra.Command, args []string) error {
			log, err := newLogger()
			if err != nil {
				return err
			}
			defer log.Sync()

			runBankSession(bank.New(bank.WithLogger(log)))
			return nil
		},
	}
}

func runBankSession(b *bank.Bank) {
	fmt.Println("Bank account session. Commands:")
	fmt.Println("  open <owner> <standard|overdraft>")
	fmt.Println("  deposit <owner> <amount>")
	fmt.Println("  withdraw <owner> <amount>")
	fmt.Println("  balance <owner>")
	fmt.Println("  list")
	fmt.Println("  exit")

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("\n> ")
		if !scanner.Scan() {
			return
		}
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		switch cmd := fields[0]; cmd {
		case "open":
			if len(fields) != 3 {
				fmt.Println("usage: open <owner> <standard|overdraft>")
				continue
			}
			variant, err := bank.ParseVariant(fields[2])
			if err != nil {
				fmt.Println("Error:", err)
				continue
			}
			acct, err := b.CreateAccount(fields[1], variant)
			if err != nil {
				fmt.Println("Error:", err)
				continue
			}
			fmt.Printf("%s account created for %s.\n", acct.Variant, acct.Owner)

		case "deposit", "withdraw":
			if len(fields) != 3 {
				fmt.Printf("usage: %s <owner> <amount>\n", cmd)
				continue
			}
			amount, err := decimal.NewFromString(fields[2])
			if err != nil {
				fmt.Println("Error: invalid amount entered.")
				continue
			}
			var balance decimal.Decimal
			if cmd == "deposit" {
				balance, err = b.Deposit(fields[1], amount)
			} else {
				balance, err = b.Withdraw(fields[1], amount)
			}
			if err != nil {
				fmt.Println("Error:", err)
				continue
			}
			fmt.Printf("Done. Balance for %s: %s\n", fields[1], balance.StringFixed(2))

		case "balance":
			if len(fields) != 2 {
				fmt.Println("usage: balance <owner>")
				continue
			}
			balance, err := b.Balance(fields[1])
			if err != nil {
				fmt.Println("Error:", err)
				continue
			}
			fmt.Printf("Balance for %s: %s\n", fields[1], balance.StringFixed(2))

		case "list":
			accounts := b.Accounts()
			if len(accounts) == 0 {
				fmt.Println("No accounts.")
				continue
			}
			for _, a := range accounts {
				fmt.Printf("%-20s %-10s %12s\n", a.Owner, a.Variant, a.Balance.StringFixed(2))
			}

		case "exit", "quit":
			return

		default:
			fmt.Println("Unknown command. Type one of the commands listed above.")
		}
	}
}
