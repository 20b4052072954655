package service

import (
	"bank-office-api/model"
	"errors"

	"github.com/shopspring/decimal"
)

var (
	ErrInvalidAccountType    = errors.New("account type must be CHECKING or SAVINGS")
	ErrInvalidInitialBalance = errors.New("account balance cannot be zero")
	ErrNegativeBalance       = errors.New("account balance cannot be negative")
)

// ValidateAccountType checks that the given type is one of the two supported
// account types.
func ValidateAccountType(accountType model.AccountType) error {
	if accountType != model.AccountTypeChecking && accountType != model.AccountTypeSavings {
		return ErrInvalidAccountType
	}
	return nil
}

// ValidateMinimumBalance enforces the balance floor for every account type:
// a balance of exactly zero is rejected at creation and update, and a
// negative balance is never allowed.
func ValidateMinimumBalance(balance decimal.Decimal) error {
	if balance.IsZero() {
		return ErrInvalidInitialBalance
	}
	if balance.IsNegative() {
		return ErrNegativeBalance
	}
	return nil
}
