// service/movement_service_test.go
package service

import (
	"bank-office-api/logger"
	"bank-office-api/model"
	"context"
	"database/sql"
	"errors"
	"os"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// TestMain runs setup before any tests in this package are executed.
func TestMain(m *testing.M) {
	logger.Init()
	exitCode := m.Run()
	os.Exit(exitCode)
}

// MockAccountRepository is a mock for IAccountRepository.
type MockAccountRepository struct{ mock.Mock }

func (m *MockAccountRepository) GetAccountForUpdate(tx *sql.Tx, id int) (*model.Account, error) {
	args := m.Called(tx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Account), args.Error(1)
}

func (m *MockAccountRepository) UpdateAccountBalance(tx *sql.Tx, id int, balance decimal.Decimal) error {
	args := m.Called(tx, id, balance)
	return args.Error(0)
}

func (m *MockAccountRepository) GetAccountByID(id int) (*model.Account, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Account), args.Error(1)
}

// Unused methods needed to satisfy the interface
func (m *MockAccountRepository) CreateAccount(*model.Account) error           { return nil }
func (m *MockAccountRepository) UpdateAccount(*model.Account) error           { return nil }
func (m *MockAccountRepository) UpdateAccountStatus(*model.Account) error     { return nil }
func (m *MockAccountRepository) DeleteAccount(int) error                      { return nil }
func (m *MockAccountRepository) ExistsByAccountNumber(string) (bool, error)   { return false, nil }
func (m *MockAccountRepository) CountByCustomerID(int) (int, error)           { return 0, nil }
func (m *MockAccountRepository) GetAccountsByCustomerID(int) ([]*model.Account, error) {
	return nil, nil
}

// MockMovementRepository is a mock for IMovementRepository.
type MockMovementRepository struct{ mock.Mock }

func (m *MockMovementRepository) CreateMovement(tx *sql.Tx, movement *model.Movement) error {
	args := m.Called(tx, movement)
	return args.Error(0)
}

func (m *MockMovementRepository) GetMovementsByAccountID(accountID int) ([]*model.Movement, error) {
	args := m.Called(accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Movement), args.Error(1)
}

func decimalEq(expected decimal.Decimal) interface{} {
	return mock.MatchedBy(func(d decimal.Decimal) bool { return d.Equal(expected) })
}

func TestMovementService_Transfer(t *testing.T) {
	db, dbMock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		mockAccountRepo := new(MockAccountRepository)
		mockMovementRepo := new(MockMovementRepository)
		movementService := NewMovementService(db, mockAccountRepo, mockMovementRepo)

		source := &model.Account{ID: 1, CustomerID: 1, AccountType: model.AccountTypeSavings, Balance: decimal.NewFromInt(1000)}
		destination := &model.Account{ID: 2, CustomerID: 2, AccountType: model.AccountTypeChecking, Balance: decimal.NewFromInt(300)}
		amount := decimal.NewFromInt(100)

		dbMock.ExpectBegin()
		mockAccountRepo.On("GetAccountForUpdate", mock.Anything, 1).Return(source, nil).Once()
		mockAccountRepo.On("GetAccountForUpdate", mock.Anything, 2).Return(destination, nil).Once()
		mockAccountRepo.On("UpdateAccountBalance", mock.Anything, 1, decimalEq(decimal.NewFromInt(900))).Return(nil).Once()
		mockAccountRepo.On("UpdateAccountBalance", mock.Anything, 2, decimalEq(decimal.NewFromInt(400))).Return(nil).Once()
		mockMovementRepo.On("CreateMovement", mock.Anything, mock.AnythingOfType("*model.Movement")).Return(nil).Once()
		dbMock.ExpectCommit()

		movement, err := movementService.Transfer(ctx, 1, 2, amount)

		assert.NoError(t, err)
		assert.Equal(t, model.MovementKindTransfer, movement.Kind)
		assert.True(t, movement.Amount.Equal(amount))
		assert.Equal(t, 1, *movement.SourceAccountID)
		assert.Equal(t, 2, *movement.DestinationAccountID)
		mockAccountRepo.AssertExpectations(t)
		mockMovementRepo.AssertExpectations(t)
		assert.NoError(t, dbMock.ExpectationsWereMet())
	})

	t.Run("locks in ascending id order when source id is higher", func(t *testing.T) {
		mockAccountRepo := new(MockAccountRepository)
		mockMovementRepo := new(MockMovementRepository)
		movementService := NewMovementService(db, mockAccountRepo, mockMovementRepo)

		source := &model.Account{ID: 9, Balance: decimal.NewFromInt(500)}
		destination := &model.Account{ID: 3, Balance: decimal.NewFromInt(200)}

		var lockOrder []int
		dbMock.ExpectBegin()
		mockAccountRepo.On("GetAccountForUpdate", mock.Anything, 3).Run(func(args mock.Arguments) {
			lockOrder = append(lockOrder, 3)
		}).Return(destination, nil).Once()
		mockAccountRepo.On("GetAccountForUpdate", mock.Anything, 9).Run(func(args mock.Arguments) {
			lockOrder = append(lockOrder, 9)
		}).Return(source, nil).Once()
		mockAccountRepo.On("UpdateAccountBalance", mock.Anything, 9, decimalEq(decimal.NewFromInt(450))).Return(nil).Once()
		mockAccountRepo.On("UpdateAccountBalance", mock.Anything, 3, decimalEq(decimal.NewFromInt(250))).Return(nil).Once()
		mockMovementRepo.On("CreateMovement", mock.Anything, mock.AnythingOfType("*model.Movement")).Return(nil).Once()
		dbMock.ExpectCommit()

		_, err := movementService.Transfer(ctx, 9, 3, decimal.NewFromInt(50))

		assert.NoError(t, err)
		assert.Equal(t, []int{3, 9}, lockOrder)
		mockAccountRepo.AssertExpectations(t)
		assert.NoError(t, dbMock.ExpectationsWereMet())
	})

	t.Run("insufficient funds", func(t *testing.T) {
		mockAccountRepo := new(MockAccountRepository)
		mockMovementRepo := new(MockMovementRepository)
		movementService := NewMovementService(db, mockAccountRepo, mockMovementRepo)

		source := &model.Account{ID: 1, Balance: decimal.NewFromInt(50)}
		destination := &model.Account{ID: 2, Balance: decimal.NewFromInt(200)}

		dbMock.ExpectBegin()
		mockAccountRepo.On("GetAccountForUpdate", mock.Anything, 1).Return(source, nil).Once()
		mockAccountRepo.On("GetAccountForUpdate", mock.Anything, 2).Return(destination, nil).Once()
		dbMock.ExpectRollback()

		_, err := movementService.Transfer(ctx, 1, 2, decimal.NewFromInt(100))

		assert.Equal(t, ErrInsufficientFunds, err)
		mockAccountRepo.AssertExpectations(t)
		mockMovementRepo.AssertNotCalled(t, "CreateMovement")
		assert.NoError(t, dbMock.ExpectationsWereMet())
	})

	t.Run("non-positive amount rejected before any lookup", func(t *testing.T) {
		mockAccountRepo := new(MockAccountRepository)
		mockMovementRepo := new(MockMovementRepository)
		movementService := NewMovementService(db, mockAccountRepo, mockMovementRepo)

		_, err := movementService.Transfer(ctx, 1, 2, decimal.Zero)
		assert.Equal(t, ErrInvalidAmount, err)

		_, err = movementService.Transfer(ctx, 1, 2, decimal.NewFromInt(-10))
		assert.Equal(t, ErrInvalidAmount, err)

		mockAccountRepo.AssertNotCalled(t, "GetAccountForUpdate")
		assert.NoError(t, dbMock.ExpectationsWereMet())
	})

	t.Run("same account", func(t *testing.T) {
		mockAccountRepo := new(MockAccountRepository)
		movementService := NewMovementService(db, mockAccountRepo, new(MockMovementRepository))

		_, err := movementService.Transfer(ctx, 1, 1, decimal.NewFromInt(10))

		assert.Equal(t, ErrSameAccountTransfer, err)
		mockAccountRepo.AssertNotCalled(t, "GetAccountForUpdate")
	})

	t.Run("source account not found", func(t *testing.T) {
		mockAccountRepo := new(MockAccountRepository)
		movementService := NewMovementService(db, mockAccountRepo, new(MockMovementRepository))

		dbMock.ExpectBegin()
		mockAccountRepo.On("GetAccountForUpdate", mock.Anything, 1).Return(nil, sql.ErrNoRows).Once()
		dbMock.ExpectRollback()

		_, err := movementService.Transfer(ctx, 1, 2, decimal.NewFromInt(10))

		assert.Equal(t, ErrAccountNotFound, err)
		assert.NoError(t, dbMock.ExpectationsWereMet())
	})

	t.Run("commit error", func(t *testing.T) {
		mockAccountRepo := new(MockAccountRepository)
		mockMovementRepo := new(MockMovementRepository)
		movementService := NewMovementService(db, mockAccountRepo, mockMovementRepo)

		source := &model.Account{ID: 1, Balance: decimal.NewFromInt(500)}
		destination := &model.Account{ID: 2, Balance: decimal.NewFromInt(200)}

		dbMock.ExpectBegin()
		mockAccountRepo.On("GetAccountForUpdate", mock.Anything, 1).Return(source, nil).Once()
		mockAccountRepo.On("GetAccountForUpdate", mock.Anything, 2).Return(destination, nil).Once()
		mockAccountRepo.On("UpdateAccountBalance", mock.Anything, 1, mock.Anything).Return(nil).Once()
		mockAccountRepo.On("UpdateAccountBalance", mock.Anything, 2, mock.Anything).Return(nil).Once()
		mockMovementRepo.On("CreateMovement", mock.Anything, mock.AnythingOfType("*model.Movement")).Return(nil).Once()
		dbMock.ExpectCommit().WillReturnError(errors.New("commit failed"))

		_, err := movementService.Transfer(ctx, 1, 2, decimal.NewFromInt(100))

		assert.Error(t, err)
		mockAccountRepo.AssertExpectations(t)
		assert.NoError(t, dbMock.ExpectationsWereMet())
	})
}

func TestMovementService_Withdraw(t *testing.T) {
	db, dbMock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		mockAccountRepo := new(MockAccountRepository)
		mockMovementRepo := new(MockMovementRepository)
		movementService := NewMovementService(db, mockAccountRepo, mockMovementRepo)

		source := &model.Account{ID: 1, Balance: decimal.NewFromInt(500)}

		dbMock.ExpectBegin()
		mockAccountRepo.On("GetAccountForUpdate", mock.Anything, 1).Return(source, nil).Once()
		mockAccountRepo.On("UpdateAccountBalance", mock.Anything, 1, decimalEq(decimal.NewFromInt(400))).Return(nil).Once()
		mockMovementRepo.On("CreateMovement", mock.Anything, mock.AnythingOfType("*model.Movement")).Return(nil).Once()
		dbMock.ExpectCommit()

		movement, err := movementService.Withdraw(ctx, 1, decimal.NewFromInt(100))

		assert.NoError(t, err)
		assert.Equal(t, model.MovementKindWithdrawal, movement.Kind)
		assert.Equal(t, 1, *movement.SourceAccountID)
		assert.Nil(t, movement.DestinationAccountID)
		mockAccountRepo.AssertExpectations(t)
		mockMovementRepo.AssertExpectations(t)
		assert.NoError(t, dbMock.ExpectationsWereMet())
	})

	t.Run("insufficient funds leaves balance untouched", func(t *testing.T) {
		mockAccountRepo := new(MockAccountRepository)
		mockMovementRepo := new(MockMovementRepository)
		movementService := NewMovementService(db, mockAccountRepo, mockMovementRepo)

		source := &model.Account{ID: 1, Balance: decimal.NewFromInt(50)}

		dbMock.ExpectBegin()
		mockAccountRepo.On("GetAccountForUpdate", mock.Anything, 1).Return(source, nil).Once()
		dbMock.ExpectRollback()

		_, err := movementService.Withdraw(ctx, 1, decimal.NewFromInt(100))

		assert.Equal(t, ErrInsufficientFunds, err)
		assert.True(t, source.Balance.Equal(decimal.NewFromInt(50)))
		mockAccountRepo.AssertNotCalled(t, "UpdateAccountBalance")
		mockMovementRepo.AssertNotCalled(t, "CreateMovement")
		assert.NoError(t, dbMock.ExpectationsWereMet())
	})

	t.Run("account not found", func(t *testing.T) {
		mockAccountRepo := new(MockAccountRepository)
		movementService := NewMovementService(db, mockAccountRepo, new(MockMovementRepository))

		dbMock.ExpectBegin()
		mockAccountRepo.On("GetAccountForUpdate", mock.Anything, 7).Return(nil, sql.ErrNoRows).Once()
		dbMock.ExpectRollback()

		_, err := movementService.Withdraw(ctx, 7, decimal.NewFromInt(10))

		assert.Equal(t, ErrAccountNotFound, err)
		assert.NoError(t, dbMock.ExpectationsWereMet())
	})
}

func TestMovementService_Deposit(t *testing.T) {
	db, dbMock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		mockAccountRepo := new(MockAccountRepository)
		mockMovementRepo := new(MockMovementRepository)
		movementService := NewMovementService(db, mockAccountRepo, mockMovementRepo)

		destination := &model.Account{ID: 2, Balance: decimal.NewFromInt(300)}

		dbMock.ExpectBegin()
		mockAccountRepo.On("GetAccountForUpdate", mock.Anything, 2).Return(destination, nil).Once()
		mockAccountRepo.On("UpdateAccountBalance", mock.Anything, 2, decimalEq(decimal.NewFromInt(450))).Return(nil).Once()
		mockMovementRepo.On("CreateMovement", mock.Anything, mock.AnythingOfType("*model.Movement")).Return(nil).Once()
		dbMock.ExpectCommit()

		movement, err := movementService.Deposit(ctx, 2, decimal.NewFromInt(150))

		assert.NoError(t, err)
		assert.Equal(t, model.MovementKindDeposit, movement.Kind)
		assert.Nil(t, movement.SourceAccountID)
		assert.Equal(t, 2, *movement.DestinationAccountID)
		mockAccountRepo.AssertExpectations(t)
		mockMovementRepo.AssertExpectations(t)
		assert.NoError(t, dbMock.ExpectationsWereMet())
	})

	t.Run("negative amount causes no mutation", func(t *testing.T) {
		mockAccountRepo := new(MockAccountRepository)
		mockMovementRepo := new(MockMovementRepository)
		movementService := NewMovementService(db, mockAccountRepo, mockMovementRepo)

		_, err := movementService.Deposit(ctx, 2, decimal.NewFromInt(-50))

		assert.Equal(t, ErrInvalidAmount, err)
		mockAccountRepo.AssertNotCalled(t, "GetAccountForUpdate")
		mockAccountRepo.AssertNotCalled(t, "UpdateAccountBalance")
		mockMovementRepo.AssertNotCalled(t, "CreateMovement")
	})

	t.Run("destination account not found", func(t *testing.T) {
		mockAccountRepo := new(MockAccountRepository)
		movementService := NewMovementService(db, mockAccountRepo, new(MockMovementRepository))

		dbMock.ExpectBegin()
		mockAccountRepo.On("GetAccountForUpdate", mock.Anything, 5).Return(nil, sql.ErrNoRows).Once()
		dbMock.ExpectRollback()

		_, err := movementService.Deposit(ctx, 5, decimal.NewFromInt(10))

		assert.Equal(t, ErrAccountNotFound, err)
		assert.NoError(t, dbMock.ExpectationsWereMet())
	})
}

func TestMovementService_ListMovementsForAccount(t *testing.T) {
	db, _, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		mockAccountRepo := new(MockAccountRepository)
		mockMovementRepo := new(MockMovementRepository)
		movementService := NewMovementService(db, mockAccountRepo, mockMovementRepo)

		account := &model.Account{ID: 1}
		expected := []*model.Movement{{ID: 10, Kind: model.MovementKindDeposit, Amount: decimal.NewFromInt(100)}}

		mockAccountRepo.On("GetAccountByID", 1).Return(account, nil).Once()
		mockMovementRepo.On("GetMovementsByAccountID", 1).Return(expected, nil).Once()

		movements, err := movementService.ListMovementsForAccount(ctx, 1)

		assert.NoError(t, err)
		assert.Equal(t, expected, movements)
		mockAccountRepo.AssertExpectations(t)
		mockMovementRepo.AssertExpectations(t)
	})

	t.Run("account not found", func(t *testing.T) {
		mockAccountRepo := new(MockAccountRepository)
		mockMovementRepo := new(MockMovementRepository)
		movementService := NewMovementService(db, mockAccountRepo, mockMovementRepo)

		mockAccountRepo.On("GetAccountByID", 42).Return(nil, sql.ErrNoRows).Once()

		_, err := movementService.ListMovementsForAccount(ctx, 42)

		assert.Equal(t, ErrAccountNotFound, err)
		mockMovementRepo.AssertNotCalled(t, "GetMovementsByAccountID")
	})
}
