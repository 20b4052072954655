package service

import (
	"bank-office-api/logger"
	"bank-office-api/model"
	"bank-office-api/repository"
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
)

var (
	ErrAccountNotFound = errors.New("account not found")
	ErrNonZeroBalance  = errors.New("account cannot be deleted while its balance is not zero")
)

// AccountService owns the account lifecycle: creation under a customer,
// updates, status transitions and deletion. Every create and update runs
// through the account rules before anything is persisted.
type AccountService struct {
	accountRepo  repository.IAccountRepository
	customerRepo repository.ICustomerRepository
	numberGen    *AccountNumberGenerator
	cache        ICacheClient
}

func NewAccountService(accountRepo repository.IAccountRepository, customerRepo repository.ICustomerRepository, cache ICacheClient) *AccountService {
	return &AccountService{
		accountRepo:  accountRepo,
		customerRepo: customerRepo,
		numberGen:    NewAccountNumberGenerator(accountRepo),
		cache:        cache,
	}
}

// CreateAccount opens a new account under the given customer. The account
// number is generated here and the account always starts ACTIVE.
func (s *AccountService) CreateAccount(customerID int, req model.CreateAccountRequest) (*model.Account, error) {
	log := logger.Log.WithFields(logrus.Fields{
		"customer_id":  customerID,
		"account_type": req.AccountType,
	})
	log.Info("Starting account creation")

	customer, err := s.customerRepo.GetCustomerByID(customerID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrCustomerNotFound
		}
		return nil, err
	}

	accountType := model.AccountType(req.AccountType)
	if err := ValidateAccountType(accountType); err != nil {
		return nil, err
	}

	accountNumber, err := s.numberGen.Generate(accountType)
	if err != nil {
		return nil, err
	}

	if err := ValidateMinimumBalance(req.Balance); err != nil {
		return nil, err
	}

	account := &model.Account{
		CustomerID:    customer.ID,
		AccountType:   accountType,
		AccountNumber: accountNumber,
		Status:        model.AccountStatusActive,
		Balance:       req.Balance,
		GMFExempt:     req.GMFExempt,
	}

	if err := s.accountRepo.CreateAccount(account); err != nil {
		return nil, err
	}

	s.invalidateAccountCache(customer.ID)

	log.WithField("account_number", account.AccountNumber).Info("Account created successfully")
	return account, nil
}

// UpdateAccount overwrites the mutable fields of an existing account with
// the incoming values. The account number and owning customer are never
// reassigned.
func (s *AccountService) UpdateAccount(id int, req model.UpdateAccountRequest) (*model.Account, error) {
	account, err := s.resolveAccount(id)
	if err != nil {
		return nil, err
	}

	accountType := model.AccountType(req.AccountType)
	if err := ValidateAccountType(accountType); err != nil {
		return nil, err
	}
	if err := ValidateMinimumBalance(req.Balance); err != nil {
		return nil, err
	}

	now := time.Now()
	account.AccountType = accountType
	account.Status = model.AccountStatus(req.Status)
	account.Balance = req.Balance
	account.GMFExempt = req.GMFExempt
	account.ModifiedAt = &now

	if err := s.accountRepo.UpdateAccount(account); err != nil {
		return nil, err
	}

	s.invalidateAccountCache(account.CustomerID)
	return account, nil
}

// DeleteAccount removes an account. An account can only be closed once its
// balance is exactly zero.
func (s *AccountService) DeleteAccount(id int) error {
	account, err := s.resolveAccount(id)
	if err != nil {
		return err
	}

	if !account.Balance.IsZero() {
		return ErrNonZeroBalance
	}

	if err := s.accountRepo.DeleteAccount(id); err != nil {
		return err
	}

	s.invalidateAccountCache(account.CustomerID)
	return nil
}

// SetAccountStatus switches an account between ACTIVE and INACTIVE. The
// transition touches nothing but the status field.
func (s *AccountService) SetAccountStatus(id int, status model.AccountStatus) (*model.Account, error) {
	account, err := s.resolveAccount(id)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	account.Status = status
	account.ModifiedAt = &now

	if err := s.accountRepo.UpdateAccountStatus(account); err != nil {
		return nil, err
	}

	s.invalidateAccountCache(account.CustomerID)
	return account, nil
}

func (s *AccountService) GetAccount(id int) (*model.Account, error) {
	return s.resolveAccount(id)
}

func (s *AccountService) GetAccountStatus(id int) (model.AccountStatus, error) {
	account, err := s.resolveAccount(id)
	if err != nil {
		return "", err
	}
	return account.Status, nil
}

// ListAccountsForCustomer lists a customer's accounts, utilizing a
// cache-aside strategy.
func (s *AccountService) ListAccountsForCustomer(customerID int) ([]*model.Account, error) {
	cacheKey := accountCacheKey(customerID)
	ctx := context.Background()

	cachedAccounts, err := s.cache.Get(ctx, cacheKey).Result()
	if err == nil {
		var accounts []*model.Account
		if err := json.Unmarshal([]byte(cachedAccounts), &accounts); err == nil {
			return accounts, nil
		}
	}

	accounts, err := s.accountRepo.GetAccountsByCustomerID(customerID)
	if err != nil {
		return nil, err
	}

	data, err := json.Marshal(accounts)
	if err == nil {
		s.cache.Set(ctx, cacheKey, data, 10*time.Minute)
	}

	return accounts, nil
}

func (s *AccountService) resolveAccount(id int) (*model.Account, error) {
	account, err := s.accountRepo.GetAccountByID(id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrAccountNotFound
		}
		return nil, err
	}
	return account, nil
}

func (s *AccountService) invalidateAccountCache(customerID int) {
	s.cache.Del(context.Background(), accountCacheKey(customerID))
}

func accountCacheKey(customerID int) string {
	return fmt.Sprintf("accounts:%d", customerID)
}
