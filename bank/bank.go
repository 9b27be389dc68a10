package bank

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Bank owns every account for the process lifetime. The bank domain keeps no
// durable state, so there is nothing to load or save here.
//
// All operations serialize on one mutex, so callers need no locking
// discipline of their own.
type Bank struct {
	mu       sync.Mutex
	accounts map[string]*Account
	log      *zap.Logger
}

// Option configures a Bank.
type Option func(*Bank)

// WithLogger routes operation logging to log instead of discarding it.
func WithLogger(log *zap.Logger) Option {
	return func(b *Bank) { b.log = log }
}

// New returns an empty Bank.
func New(opts ...Option) *Bank {
	b := &Bank{
		accounts: make(map[string]*Account),
		log:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// CreateAccount opens a zero-balance account of the given variant. Owner
// names are trimmed and act as the unique key.
func (b *Bank) CreateAccount(owner string, variant Variant) (Account, error) {
	owner = strings.TrimSpace(owner)
	if owner == "" {
		return Account{}, ErrEmptyOwner
	}
	if variant != Standard && variant != OverdraftLimited {
		return Account{}, fmt.Errorf("%q: %w", variant, ErrUnknownVariant)
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if _, ok := b.accounts[owner]; ok {
		return Account{}, fmt.Errorf("create account %q: %w", owner, ErrDuplicateOwner)
	}
	acct := &Account{Owner: owner, Variant: variant}
	b.accounts[owner] = acct

	b.log.Info("account created",
		zap.String("owner", owner),
		zap.String("variant", string(variant)))
	return *acct, nil
}

// Deposit adds amount to the owner's account and returns the new balance.
func (b *Bank) Deposit(owner string, amount decimal.Decimal) (decimal.Decimal, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	acct, ok := b.accounts[strings.TrimSpace(owner)]
	if !ok {
		return decimal.Zero, fmt.Errorf("deposit for %q: %w", owner, ErrNotFound)
	}
	if err := acct.Deposit(amount); err != nil {
		b.log.Warn("deposit rejected",
			zap.String("owner", acct.Owner),
			zap.String("amount", amount.String()),
			zap.Error(err))
		return acct.Balance, fmt.Errorf("deposit for %q: %w", acct.Owner, err)
	}

	b.log.Info("deposit",
		zap.String("owner", acct.Owner),
		zap.String("amount", amount.String()),
		zap.String("balance", acct.Balance.String()))
	return acct.Balance, nil
}

// Withdraw removes amount from the owner's account and returns the new
// balance. The account's variant decides how far the balance may fall.
func (b *Bank) Withdraw(owner string, amount decimal.Decimal) (decimal.Decimal, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	acct, ok := b.accounts[strings.TrimSpace(owner)]
	if !ok {
		return decimal.Zero, fmt.Errorf("withdrawal for %q: %w", owner, ErrNotFound)
	}
	if err := acct.Withdraw(amount); err != nil {
		b.log.Warn("withdrawal rejected",
			zap.String("owner", acct.Owner),
			zap.String("amount", amount.String()),
			zap.Error(err))
		return acct.Balance, fmt.Errorf("withdrawal for %q: %w", acct.Owner, err)
	}

	b.log.Info("withdrawal",
		zap.String("owner", acct.Owner),
		zap.String("amount", amount.String()),
		zap.String("balance", acct.Balance.String()))
	return acct.Balance, nil
}

// Balance reports the owner's current balance without side effects.
func (b *Bank) Balance(owner string) (decimal.Decimal, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	acct, ok := b.accounts[strings.TrimSpace(owner)]
	if !ok {
		return decimal.Zero, fmt.Errorf("balance for %q: %w", owner, ErrNotFound)
	}
	return acct.Balance, nil
}

// Accounts returns a copy of every account, sorted by owner, for listings.
func (b *Bank) Accounts() []Account {
	b.mu.Lock()
	defer b.mu.Unlock()

	out := make([]Account, 0, len(b.accounts))
	for _, acct := range b.accounts {
		out = append(out, *acct)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Owner < out[j].Owner })
	return out
}
