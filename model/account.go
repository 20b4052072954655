package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type AccountType string

const (
	AccountTypeChecking AccountType = "CHECKING"
	AccountTypeSavings  AccountType = "SAVINGS"
)

type AccountStatus string

const (
	AccountStatusActive   AccountStatus = "ACTIVE"
	AccountStatusInactive AccountStatus = "INACTIVE"
)

// Account is the bank product ("producto") owned by a customer. The account
// number is assigned once at creation and never reassigned.
type Account struct {
	ID            int             `json:"id"`
	CustomerID    int             `json:"customer_id"`
	AccountType   AccountType     `json:"account_type"`
	AccountNumber string          `json:"account_number"`
	Status        AccountStatus   `json:"status"`
	Balance       decimal.Decimal `json:"balance"`
	GMFExempt     bool            `json:"gmf_exempt"`
	CreatedAt     time.Time       `json:"created_at"`
	ModifiedAt    *time.Time      `json:"modified_at,omitempty"`
}
