package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type MovementKind string

const (
	MovementKindTransfer   MovementKind = "TRANSFER"
	MovementKindWithdrawal MovementKind = "WITHDRAWAL"
	MovementKindDeposit    MovementKind = "DEPOSIT"
)

// Movement is an append-only ledger entry. A deposit has no source account
// and a withdrawal has no destination account.
type Movement struct {
	ID                   int             `json:"id"`
	Kind                 MovementKind    `json:"kind"`
	Amount               decimal.Decimal `json:"amount"`
	SourceAccountID      *int            `json:"source_account_id,omitempty"`
	DestinationAccountID *int            `json:"destination_account_id,omitempty"`
	CreatedAt            time.Time       `json:"created_at"`
}
