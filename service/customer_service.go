package service

import (
	"bank-office-api/logger"
	"bank-office-api/model"
	"bank-office-api/repository"
	"database/sql"
	"errors"
	"time"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
)

var (
	ErrCustomerNotFound    = errors.New("customer not found")
	ErrMissingBirthDate    = errors.New("birth date is required")
	ErrUnderageCustomer    = errors.New("customer must be of legal age")
	ErrInvalidEmail        = errors.New("email address is not valid")
	ErrInvalidName         = errors.New("first and last name must be at least 2 characters long")
	ErrCustomerHasAccounts = errors.New("customer cannot be deleted while accounts are linked to it")
)

const (
	minimumCustomerAge = 18
	minimumNameLength  = 2
	birthDateLayout    = "2006-01-02"
)

var fieldValidator = validator.New()

// CustomerService handles customer lifecycle and the domain validations that
// gate it. Account creation depends on it to resolve ownership.
type CustomerService struct {
	customerRepo repository.ICustomerRepository
	accountRepo  repository.IAccountRepository
}

func NewCustomerService(customerRepo repository.ICustomerRepository, accountRepo repository.IAccountRepository) *CustomerService {
	return &CustomerService{
		customerRepo: customerRepo,
		accountRepo:  accountRepo,
	}
}

// CreateCustomer validates the draft, derives the customer's age from the
// birth date and persists the record.
func (s *CustomerService) CreateCustomer(req model.CustomerRequest) (*model.Customer, error) {
	log := logger.Log.WithField("email", req.Email)
	log.Info("Starting customer creation")

	birthDate, age, err := deriveAge(req.BirthDate)
	if err != nil {
		return nil, err
	}
	if err := validateCustomerFields(req, age); err != nil {
		return nil, err
	}

	customer := &model.Customer{
		IdentificationType:   req.IdentificationType,
		IdentificationNumber: req.IdentificationNumber,
		FirstName:            req.FirstName,
		LastName:             req.LastName,
		Age:                  age,
		Email:                req.Email,
		BirthDate:            birthDate,
	}

	if err := s.customerRepo.CreateCustomer(customer); err != nil {
		return nil, err
	}

	log.WithField("customer_id", customer.ID).Info("Customer created successfully")
	return customer, nil
}

// UpdateCustomer re-derives the age from the draft's birth date, re-runs all
// validations and overwrites the stored fields.
func (s *CustomerService) UpdateCustomer(id int, req model.CustomerRequest) (*model.Customer, error) {
	customer, err := s.resolveCustomer(id)
	if err != nil {
		return nil, err
	}

	birthDate, age, err := deriveAge(req.BirthDate)
	if err != nil {
		return nil, err
	}
	if err := validateCustomerFields(req, age); err != nil {
		return nil, err
	}

	now := time.Now()
	customer.IdentificationType = req.IdentificationType
	customer.IdentificationNumber = req.IdentificationNumber
	customer.FirstName = req.FirstName
	customer.LastName = req.LastName
	customer.Age = age
	customer.Email = req.Email
	customer.BirthDate = birthDate
	customer.ModifiedAt = &now

	if err := s.customerRepo.UpdateCustomer(customer); err != nil {
		return nil, err
	}
	return customer, nil
}

// DeleteCustomer removes a customer, provided no accounts are linked to it.
func (s *CustomerService) DeleteCustomer(id int) error {
	customer, err := s.resolveCustomer(id)
	if err != nil {
		return err
	}

	count, err := s.accountRepo.CountByCustomerID(customer.ID)
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrCustomerHasAccounts
	}

	return s.customerRepo.DeleteCustomer(id)
}

func (s *CustomerService) GetCustomer(id int) (*model.Customer, error) {
	return s.resolveCustomer(id)
}

func (s *CustomerService) resolveCustomer(id int) (*model.Customer, error) {
	customer, err := s.customerRepo.GetCustomerByID(id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrCustomerNotFound
		}
		return nil, err
	}
	return customer, nil
}

// deriveAge parses the birth date and computes the customer's age in whole
// calendar years, accounting for whether the birthday has passed this year.
func deriveAge(birthDate string) (time.Time, int, error) {
	if birthDate == "" {
		return time.Time{}, 0, ErrMissingBirthDate
	}
	parsed, err := time.Parse(birthDateLayout, birthDate)
	if err != nil {
		return time.Time{}, 0, ErrMissingBirthDate
	}

	now := time.Now()
	age := now.Year() - parsed.Year()
	if now.Month() < parsed.Month() || (now.Month() == parsed.Month() && now.Day() < parsed.Day()) {
		age--
	}
	return parsed, age, nil
}

func validateCustomerFields(req model.CustomerRequest, age int) error {
	if age < minimumCustomerAge {
		return ErrUnderageCustomer
	}
	if err := fieldValidator.Var(req.Email, "required,email"); err != nil {
		return ErrInvalidEmail
	}
	if utf8.RuneCountInString(req.FirstName) < minimumNameLength || utf8.RuneCountInString(req.LastName) < minimumNameLength {
		return ErrInvalidName
	}
	return nil
}
