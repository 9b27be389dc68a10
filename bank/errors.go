package bank

import "errors"

var (
	ErrInvalidAmount     = errors.New("amount must be positive")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrOverdraftExceeded = errors.New("overdraft limit exceeded")
	ErrEmptyOwner        = errors.New("owner name cannot be empty")
	ErrUnknownVariant    = errors.New("unknown account variant")
	ErrDuplicateOwner    = errors.New("account already exists for this owner")
	ErrNotFound          = errors.New("account not found")
)
