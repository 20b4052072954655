package repository

import (
	"bank-office-api/model"
	"database/sql"
)

// ICustomerRepository defines the contract for customer database operations.
type ICustomerRepository interface {
	CreateCustomer(customer *model.Customer) error
	GetCustomerByID(id int) (*model.Customer, error)
	UpdateCustomer(customer *model.Customer) error
	DeleteCustomer(id int) error
}

type CustomerRepository struct {
	DB *sql.DB
}

func NewCustomerRepository(db *sql.DB) *CustomerRepository {
	return &CustomerRepository{DB: db}
}

func (r *CustomerRepository) CreateCustomer(customer *model.Customer) error {
	query := `INSERT INTO customers (identification_type, identification_number, first_name, last_name, age, email, birth_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id, created_at`
	return r.DB.QueryRow(query,
		customer.IdentificationType,
		customer.IdentificationNumber,
		customer.FirstName,
		customer.LastName,
		customer.Age,
		customer.Email,
		customer.BirthDate,
	).Scan(&customer.ID, &customer.CreatedAt)
}

func (r *CustomerRepository) GetCustomerByID(id int) (*model.Customer, error) {
	customer := &model.Customer{}
	query := `SELECT id, identification_type, identification_number, first_name, last_name, age, email, birth_date, created_at, modified_at
		FROM customers WHERE id = $1`
	err := r.DB.QueryRow(query, id).Scan(
		&customer.ID,
		&customer.IdentificationType,
		&customer.IdentificationNumber,
		&customer.FirstName,
		&customer.LastName,
		&customer.Age,
		&customer.Email,
		&customer.BirthDate,
		&customer.CreatedAt,
		&customer.ModifiedAt,
	)
	if err != nil {
		return nil, err
	}
	return customer, nil
}

func (r *CustomerRepository) UpdateCustomer(customer *model.Customer) error {
	query := `UPDATE customers
		SET identification_type = $1, identification_number = $2, first_name = $3, last_name = $4, age = $5, email = $6, birth_date = $7, modified_at = $8
		WHERE id = $9`
	_, err := r.DB.Exec(query,
		customer.IdentificationType,
		customer.IdentificationNumber,
		customer.FirstName,
		customer.LastName,
		customer.Age,
		customer.Email,
		customer.BirthDate,
		customer.ModifiedAt,
		customer.ID,
	)
	return err
}

func (r *CustomerRepository) DeleteCustomer(id int) error {
	query := `DELETE FROM customers WHERE id = $1`
	_, err := r.DB.Exec(query, id)
	return err
}
