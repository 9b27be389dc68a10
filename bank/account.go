// Package bank holds the account model and the facade the front-desk UI
// drives. Balances are decimals, never floats, and every rule violation is a
// sentinel error the caller can test with errors.Is.
package bank

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Variant selects the withdrawal rule for an account. It is fixed at
// creation time and never changes.
type Variant string

const (
	// Standard accounts may never go below zero.
	Standard Variant = "standard"
	// OverdraftLimited accounts may go negative down to -OverdraftLimit.
	OverdraftLimited Variant = "overdraft"
)

// OverdraftLimit is the maximum negative balance an OverdraftLimited account
// may reach: 500 currency units.
var OverdraftLimit = decimal.NewFromInt(500)

// ParseVariant maps user input onto a Variant.
func ParseVariant(s string) (Variant, error) {
	switch Variant(strings.ToLower(strings.TrimSpace(s))) {
	case Standard:
		return Standard, nil
	case OverdraftLimited:
		return OverdraftLimited, nil
	}
	return "", fmt.Errorf("%q: %w", s, ErrUnknownVariant)
}

// Account is a balance holder keyed by its owner's name. Mutate it only
// through Deposit and Withdraw so the variant's balance floor holds.
type Account struct {
	Owner   string
	Variant Variant
	Balance decimal.Decimal
}

// Deposit increases the balance. There is no upper bound.
func (a *Account) Deposit(amount decimal.Decimal) error {
	if amount.Sign() <= 0 {
		return ErrInvalidAmount
	}
	a.Balance = a.Balance.Add(amount)
	return nil
}

// Withdraw decreases the balance, dispatching the floor check on the
// account's variant.
func (a *Account) Withdraw(amount decimal.Decimal) error {
	if amount.Sign() <= 0 {
		return ErrInvalidAmount
	}
	switch a.Variant {
	case Standard:
		if amount.GreaterThan(a.Balance) {
			return ErrInsufficientFunds
		}
	case OverdraftLimited:
		if amount.GreaterThan(a.Balance.Add(OverdraftLimit)) {
			return ErrOverdraftExceeded
		}
	default:
		return ErrUnknownVariant
	}
	a.Balance = a.Balance.Sub(amount)
	return nil
}
