package repository

import (
	"bank-office-api/logger"
	"bank-office-api/model"
	"database/sql"

	"github.com/sirupsen/logrus"
)

// IMovementRepository defines the contract for ledger database operations.
// Movements are append-only: there is no update or delete.
type IMovementRepository interface {
	CreateMovement(tx *sql.Tx, movement *model.Movement) error
	GetMovementsByAccountID(accountID int) ([]*model.Movement, error)
}

type MovementRepository struct {
	DB *sql.DB
}

func NewMovementRepository(db *sql.DB) *MovementRepository {
	return &MovementRepository{DB: db}
}

// CreateMovement inserts a ledger entry inside the transaction that carries
// the balance updates it describes.
func (r *MovementRepository) CreateMovement(tx *sql.Tx, movement *model.Movement) error {
	log := logger.Log.WithFields(logrus.Fields{
		"kind":   movement.Kind,
		"amount": movement.Amount,
	})
	log.Info("Executing query to create a new movement")

	query := `INSERT INTO movements (kind, amount, source_account_id, destination_account_id)
		VALUES ($1, $2, $3, $4) RETURNING id, created_at`
	err := tx.QueryRow(query,
		movement.Kind,
		movement.Amount,
		movement.SourceAccountID,
		movement.DestinationAccountID,
	).Scan(&movement.ID, &movement.CreatedAt)
	if err != nil {
		log.WithError(err).Error("Failed to execute create movement query")
		return err
	}
	return nil
}

// GetMovementsByAccountID retrieves all movements touching an account,
// newest first.
func (r *MovementRepository) GetMovementsByAccountID(accountID int) ([]*model.Movement, error) {
	log := logger.Log.WithField("account_id", accountID)
	log.Info("Executing query to get movements by account ID")

	query := `
		SELECT id, kind, amount, source_account_id, destination_account_id, created_at
		FROM movements
		WHERE source_account_id = $1 OR destination_account_id = $1
		ORDER BY created_at DESC`

	rows, err := r.DB.Query(query, accountID)
	if err != nil {
		log.WithError(err).Error("Failed to execute query for movements by account ID")
		return nil, err
	}
	defer rows.Close()

	var movements []*model.Movement
	for rows.Next() {
		var m model.Movement
		if err := rows.Scan(&m.ID, &m.Kind, &m.Amount, &m.SourceAccountID, &m.DestinationAccountID, &m.CreatedAt); err != nil {
			log.WithError(err).Error("Failed to scan movement row")
			return nil, err
		}
		movements = append(movements, &m)
	}

	return movements, rows.Err()
}
