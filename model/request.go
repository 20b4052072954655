package model

import "github.com/shopspring/decimal"

// CustomerRequest defines the payload for creating or updating a customer.
// Field-level checks live in the validation tags; the domain rules (age,
// email grammar, name length) are enforced by the customer service.
type CustomerRequest struct {
	IdentificationType   string `json:"identification_type" validate:"required"`
	IdentificationNumber string `json:"identification_number" validate:"required"`
	FirstName            string `json:"first_name" validate:"required"`
	LastName             string `json:"last_name" validate:"required"`
	Email                string `json:"email" validate:"required"`
	BirthDate            string `json:"birth_date" validate:"omitempty,datetime=2006-01-02"`
}

// CreateAccountRequest defines the payload for opening an account under a
// customer. The account number is generated server side and cannot be chosen.
type CreateAccountRequest struct {
	AccountType string          `json:"account_type" validate:"required"`
	Balance     decimal.Decimal `json:"balance"`
	GMFExempt   bool            `json:"gmf_exempt"`
}

// UpdateAccountRequest defines the payload for overwriting an account's
// mutable fields. Account number and owning customer are never updated.
type UpdateAccountRequest struct {
	AccountType string          `json:"account_type" validate:"required"`
	Status      string          `json:"status" validate:"required,oneof=ACTIVE INACTIVE"`
	Balance     decimal.Decimal `json:"balance"`
	GMFExempt   bool            `json:"gmf_exempt"`
}

type TransferRequest struct {
	SourceAccountID      int             `json:"source_account_id" validate:"required"`
	DestinationAccountID int             `json:"destination_account_id" validate:"required"`
	Amount               decimal.Decimal `json:"amount"`
}

type WithdrawRequest struct {
	SourceAccountID int             `json:"source_account_id" validate:"required"`
	Amount          decimal.Decimal `json:"amount"`
}

type DepositRequest struct {
	DestinationAccountID int             `json:"destination_account_id" validate:"required"`
	Amount               decimal.Decimal `json:"amount"`
}
