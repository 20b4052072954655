package model

import "time"

type Customer struct {
	ID                   int        `json:"id"`
	IdentificationType   string     `json:"identification_type"`
	IdentificationNumber string     `json:"identification_number"`
	FirstName            string     `json:"first_name"`
	LastName             string     `json:"last_name"`
	Age                  int        `json:"age"`
	Email                string     `json:"email"`
	BirthDate            time.Time  `json:"birth_date"`
	CreatedAt            time.Time  `json:"created_at"`
	ModifiedAt           *time.Time `json:"modified_at,omitempty"`
}
