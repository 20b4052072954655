package repository

import (
	"bank-office-api/logger"
	"bank-office-api/model"
	"database/sql"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// IAccountRepository defines the contract for account database operations.
type IAccountRepository interface {
	CreateAccount(account *model.Account) error
	GetAccountByID(id int) (*model.Account, error)
	GetAccountsByCustomerID(customerID int) ([]*model.Account, error)
	UpdateAccount(account *model.Account) error
	UpdateAccountStatus(account *model.Account) error
	DeleteAccount(id int) error
	ExistsByAccountNumber(accountNumber string) (bool, error)
	CountByCustomerID(customerID int) (int, error)
	GetAccountForUpdate(tx *sql.Tx, accountID int) (*model.Account, error)
	UpdateAccountBalance(tx *sql.Tx, accountID int, newBalance decimal.Decimal) error
}

type AccountRepository struct {
	DB *sql.DB
}

func NewAccountRepository(db *sql.DB) *AccountRepository {
	return &AccountRepository{DB: db}
}

const accountColumns = `id, customer_id, account_type, account_number, status, balance, gmf_exempt, created_at, modified_at`

func scanAccount(row *sql.Row) (*model.Account, error) {
	account := &model.Account{}
	err := row.Scan(
		&account.ID,
		&account.CustomerID,
		&account.AccountType,
		&account.AccountNumber,
		&account.Status,
		&account.Balance,
		&account.GMFExempt,
		&account.CreatedAt,
		&account.ModifiedAt,
	)
	if err != nil {
		return nil, err
	}
	return account, nil
}

// CreateAccount adds a new account to the database.
func (r *AccountRepository) CreateAccount(account *model.Account) error {
	log := logger.Log.WithFields(logrus.Fields{
		"customer_id":    account.CustomerID,
		"account_number": account.AccountNumber,
		"account_type":   account.AccountType,
	})
	log.Info("Executing query to create a new account")

	query := `INSERT INTO accounts (customer_id, account_type, account_number, status, balance, gmf_exempt)
		VALUES ($1, $2, $3, $4, $5, $6) RETURNING id, created_at`
	err := r.DB.QueryRow(query,
		account.CustomerID,
		account.AccountType,
		account.AccountNumber,
		account.Status,
		account.Balance,
		account.GMFExempt,
	).Scan(&account.ID, &account.CreatedAt)
	if err != nil {
		log.WithError(err).Error("Failed to execute create account query")
		return err
	}
	return nil
}

func (r *AccountRepository) GetAccountByID(id int) (*model.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE id = $1`
	return scanAccount(r.DB.QueryRow(query, id))
}

// GetAccountsByCustomerID retrieves all accounts owned by a customer.
func (r *AccountRepository) GetAccountsByCustomerID(customerID int) ([]*model.Account, error) {
	log := logger.Log.WithField("customer_id", customerID)
	log.Info("Executing query to get accounts by customer ID")

	query := `SELECT ` + accountColumns + ` FROM accounts WHERE customer_id = $1 ORDER BY id`
	rows, err := r.DB.Query(query, customerID)
	if err != nil {
		log.WithError(err).Error("Failed to execute query for accounts by customer ID")
		return nil, err
	}
	defer rows.Close()

	var accounts []*model.Account
	for rows.Next() {
		var acc model.Account
		if err := rows.Scan(&acc.ID, &acc.CustomerID, &acc.AccountType, &acc.AccountNumber, &acc.Status, &acc.Balance, &acc.GMFExempt, &acc.CreatedAt, &acc.ModifiedAt); err != nil {
			log.WithError(err).Error("Failed to scan account row")
			return nil, err
		}
		accounts = append(accounts, &acc)
	}
	return accounts, rows.Err()
}

// UpdateAccount overwrites the mutable fields of an account. The account
// number and customer are intentionally absent from the statement.
func (r *AccountRepository) UpdateAccount(account *model.Account) error {
	query := `UPDATE accounts
		SET account_type = $1, status = $2, balance = $3, gmf_exempt = $4, modified_at = $5
		WHERE id = $6`
	_, err := r.DB.Exec(query,
		account.AccountType,
		account.Status,
		account.Balance,
		account.GMFExempt,
		account.ModifiedAt,
		account.ID,
	)
	return err
}

func (r *AccountRepository) UpdateAccountStatus(account *model.Account) error {
	query := `UPDATE accounts SET status = $1, modified_at = $2 WHERE id = $3`
	_, err := r.DB.Exec(query, account.Status, account.ModifiedAt, account.ID)
	return err
}

func (r *AccountRepository) DeleteAccount(id int) error {
	query := `DELETE FROM accounts WHERE id = $1`
	_, err := r.DB.Exec(query, id)
	return err
}

// ExistsByAccountNumber reports whether an account number is already taken.
func (r *AccountRepository) ExistsByAccountNumber(accountNumber string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM accounts WHERE account_number = $1)`
	err := r.DB.QueryRow(query, accountNumber).Scan(&exists)
	return exists, err
}

func (r *AccountRepository) CountByCustomerID(customerID int) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM accounts WHERE customer_id = $1`
	err := r.DB.QueryRow(query, customerID).Scan(&count)
	return count, err
}

// GetAccountForUpdate locks the account row for the duration of the given
// transaction.
func (r *AccountRepository) GetAccountForUpdate(tx *sql.Tx, accountID int) (*model.Account, error) {
	log := logger.Log.WithField("account_id", accountID)
	log.Info("Executing query to get account for update")

	account := &model.Account{}
	query := `SELECT id, customer_id, account_type, status, balance FROM accounts WHERE id = $1 FOR UPDATE`
	err := tx.QueryRow(query, accountID).Scan(
		&account.ID,
		&account.CustomerID,
		&account.AccountType,
		&account.Status,
		&account.Balance,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			log.Info("Account not found for update")
		} else {
			log.WithError(err).Error("Failed to execute get account for update query")
		}
		return nil, err
	}
	return account, nil
}

func (r *AccountRepository) UpdateAccountBalance(tx *sql.Tx, accountID int, newBalance decimal.Decimal) error {
	log := logger.Log.WithFields(logrus.Fields{
		"account_id":  accountID,
		"new_balance": newBalance,
	})
	log.Info("Executing query to update account balance")

	query := `UPDATE accounts SET balance = $1 WHERE id = $2`
	_, err := tx.Exec(query, newBalance, accountID)
	if err != nil {
		log.WithError(err).Error("Failed to execute update account balance query")
		return err
	}
	return nil
}
