package service

import (
	"bank-office-api/logger"
	"bank-office-api/model"
	"bank-office-api/repository"
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

var (
	ErrInsufficientFunds   = errors.New("insufficient funds in the source account")
	ErrInvalidAmount       = errors.New("movement amount must be greater than zero")
	ErrSameAccountTransfer = errors.New("cannot transfer money to the same account")
)

// MovementService executes deposits, withdrawals and transfers as single
// database transactions and records each one as an immutable ledger entry.
// The movement row is always written after the balance updates it describes,
// inside the same transaction.
type MovementService struct {
	db           *sql.DB
	accountRepo  repository.IAccountRepository
	movementRepo repository.IMovementRepository
}

func NewMovementService(db *sql.DB, accountRepo repository.IAccountRepository, movementRepo repository.IMovementRepository) *MovementService {
	return &MovementService{
		db:           db,
		accountRepo:  accountRepo,
		movementRepo: movementRepo,
	}
}

// Transfer moves amount from the source account to the destination account.
// Both rows are locked in ascending id order so that two transfers with
// swapped endpoints cannot deadlock each other.
func (s *MovementService) Transfer(ctx context.Context, sourceID, destinationID int, amount decimal.Decimal) (*model.Movement, error) {
	log := logger.Log.WithFields(logrus.Fields{
		"source_account_id":      sourceID,
		"destination_account_id": destinationID,
		"amount":                 amount,
	})
	log.Info("Starting transfer")

	if amount.Sign() <= 0 {
		return nil, ErrInvalidAmount
	}
	if sourceID == destinationID {
		return nil, ErrSameAccountTransfer
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("could not begin transaction: %w", err)
	}
	defer tx.Rollback()

	source, destination, err := s.lockAccountPair(tx, sourceID, destinationID)
	if err != nil {
		return nil, err
	}

	if source.Balance.LessThan(amount) {
		return nil, ErrInsufficientFunds
	}

	if err := s.accountRepo.UpdateAccountBalance(tx, source.ID, source.Balance.Sub(amount)); err != nil {
		return nil, fmt.Errorf("could not update source balance: %w", err)
	}
	if err := s.accountRepo.UpdateAccountBalance(tx, destination.ID, destination.Balance.Add(amount)); err != nil {
		return nil, fmt.Errorf("could not update destination balance: %w", err)
	}

	movement := &model.Movement{
		Kind:                 model.MovementKindTransfer,
		Amount:               amount,
		SourceAccountID:      &source.ID,
		DestinationAccountID: &destination.ID,
	}
	if err := s.movementRepo.CreateMovement(tx, movement); err != nil {
		return nil, fmt.Errorf("could not create movement record: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("could not commit transaction: %w", err)
	}

	log.Info("Transfer completed successfully")
	return movement, nil
}

// Withdraw debits amount from the source account.
func (s *MovementService) Withdraw(ctx context.Context, sourceID int, amount decimal.Decimal) (*model.Movement, error) {
	log := logger.Log.WithFields(logrus.Fields{
		"source_account_id": sourceID,
		"amount":            amount,
	})
	log.Info("Starting withdrawal")

	if amount.Sign() <= 0 {
		return nil, ErrInvalidAmount
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("could not begin transaction: %w", err)
	}
	defer tx.Rollback()

	source, err := s.lockAccount(tx, sourceID)
	if err != nil {
		return nil, err
	}

	if source.Balance.LessThan(amount) {
		return nil, ErrInsufficientFunds
	}

	if err := s.accountRepo.UpdateAccountBalance(tx, source.ID, source.Balance.Sub(amount)); err != nil {
		return nil, fmt.Errorf("could not update source balance: %w", err)
	}

	movement := &model.Movement{
		Kind:            model.MovementKindWithdrawal,
		Amount:          amount,
		SourceAccountID: &source.ID,
	}
	if err := s.movementRepo.CreateMovement(tx, movement); err != nil {
		return nil, fmt.Errorf("could not create movement record: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("could not commit transaction: %w", err)
	}

	log.Info("Withdrawal completed successfully")
	return movement, nil
}

// Deposit credits amount to the destination account.
func (s *MovementService) Deposit(ctx context.Context, destinationID int, amount decimal.Decimal) (*model.Movement, error) {
	log := logger.Log.WithFields(logrus.Fields{
		"destination_account_id": destinationID,
		"amount":                 amount,
	})
	log.Info("Starting deposit")

	if amount.Sign() <= 0 {
		return nil, ErrInvalidAmount
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("could not begin transaction: %w", err)
	}
	defer tx.Rollback()

	destination, err := s.lockAccount(tx, destinationID)
	if err != nil {
		return nil, err
	}

	if err := s.accountRepo.UpdateAccountBalance(tx, destination.ID, destination.Balance.Add(amount)); err != nil {
		return nil, fmt.Errorf("could not update destination balance: %w", err)
	}

	movement := &model.Movement{
		Kind:                 model.MovementKindDeposit,
		Amount:               amount,
		DestinationAccountID: &destination.ID,
	}
	if err := s.movementRepo.CreateMovement(tx, movement); err != nil {
		return nil, fmt.Errorf("could not create movement record: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("could not commit transaction: %w", err)
	}

	log.Info("Deposit completed successfully")
	return movement, nil
}

// ListMovementsForAccount retrieves the ledger history for an account.
func (s *MovementService) ListMovementsForAccount(ctx context.Context, accountID int) ([]*model.Movement, error) {
	if _, err := s.accountRepo.GetAccountByID(accountID); err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrAccountNotFound
		}
		return nil, err
	}
	return s.movementRepo.GetMovementsByAccountID(accountID)
}

func (s *MovementService) lockAccount(tx *sql.Tx, accountID int) (*model.Account, error) {
	account, err := s.accountRepo.GetAccountForUpdate(tx, accountID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrAccountNotFound
		}
		return nil, err
	}
	return account, nil
}

// lockAccountPair acquires row locks on both accounts in ascending id order
// and returns them as (source, destination).
func (s *MovementService) lockAccountPair(tx *sql.Tx, sourceID, destinationID int) (*model.Account, *model.Account, error) {
	firstID, secondID := sourceID, destinationID
	if secondID < firstID {
		firstID, secondID = secondID, firstID
	}

	first, err := s.lockAccount(tx, firstID)
	if err != nil {
		return nil, nil, err
	}
	second, err := s.lockAccount(tx, secondID)
	if err != nil {
		return nil, nil, err
	}

	if firstID == sourceID {
		return first, second, nil
	}
	return second, first, nil
}
