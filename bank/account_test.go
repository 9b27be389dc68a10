package bank

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func amt(n int64) decimal.Decimal { return decimal.NewFromInt(n) }

func TestDepositRejectsNonPositiveAmounts(t *testing.T) {
	a := &Account{Owner: "alice", Variant: Standard}

	assert.ErrorIs(t, a.Deposit(amt(0)), ErrInvalidAmount)
	assert.ErrorIs(t, a.Deposit(amt(-10)), ErrInvalidAmount)
	assert.True(t, a.Balance.IsZero(), "failed deposits must not move the balance")
}

func TestWithdrawRejectsNonPositiveAmounts(t *testing.T) {
	a := &Account{Owner: "alice", Variant: Standard, Balance: amt(100)}

	assert.ErrorIs(t, a.Withdraw(amt(0)), ErrInvalidAmount)
	assert.ErrorIs(t, a.Withdraw(amt(-5)), ErrInvalidAmount)
	assert.True(t, a.Balance.Equal(amt(100)))
}

// Scenario: a standard account holding 1000 cannot pay out 1500.
func TestStandardWithdrawalCannotOverdraw(t *testing.T) {
	a := &Account{Owner: "alice", Variant: Standard}
	require.NoError(t, a.Deposit(amt(1000)))

	err := a.Withdraw(amt(1500))
	assert.ErrorIs(t, err, ErrInsufficientFunds)
	assert.True(t, a.Balance.Equal(amt(1000)), "rejected withdrawal must leave the balance unchanged")
}

// Scenario: an overdraft account at 0 may go to -400 but not on to -600.
func TestOverdraftWithdrawalBoundedByLimit(t *testing.T) {
	a := &Account{Owner: "bob", Variant: OverdraftLimited}

	require.NoError(t, a.Withdraw(amt(400)))
	assert.True(t, a.Balance.Equal(amt(-400)))

	err := a.Withdraw(amt(200))
	assert.ErrorIs(t, err, ErrOverdraftExceeded)
	assert.True(t, a.Balance.Equal(amt(-400)))
}

func TestOverdraftWithdrawalExactlyAtLimit(t *testing.T) {
	a := &Account{Owner: "bob", Variant: OverdraftLimited}

	require.NoError(t, a.Withdraw(amt(500)))
	assert.True(t, a.Balance.Equal(amt(-500)))
}

// Balance floors hold across any mix of valid and rejected operations.
func TestBalanceFloorsHoldAcrossSequences(t *testing.T) {
	std := &Account{Owner: "s", Variant: Standard}
	ovd := &Account{Owner: "o", Variant: OverdraftLimited}

	ops := []int64{250, -100, -300, 80, -900, -30, 1200, -1500, -1}
	for _, n := range ops {
		for _, a := range []*Account{std, ovd} {
			if n > 0 {
				_ = a.Deposit(amt(n))
			} else {
				_ = a.Withdraw(amt(-n))
			}
		}
	}

	assert.True(t, std.Balance.GreaterThanOrEqual(decimal.Zero),
		"standard balance went below zero: %s", std.Balance)
	assert.True(t, ovd.Balance.GreaterThanOrEqual(OverdraftLimit.Neg()),
		"overdraft balance went below -500: %s", ovd.Balance)
}

func TestParseVariant(t *testing.T) {
	v, err := ParseVariant(" Standard ")
	require.NoError(t, err)
	assert.Equal(t, Standard, v)

	v, err = ParseVariant("overdraft")
	require.NoError(t, err)
	assert.Equal(t, OverdraftLimited, v)

	_, err = ParseVariant("savings")
	assert.ErrorIs(t, err, ErrUnknownVariant)
}
