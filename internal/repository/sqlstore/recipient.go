package sqlstore

import (
	"github.com/jmoiron/sqlx"
)

// RecipientRepo implements repository.RecipientRepository
type RecipientRepo struct {
	db *sqlx.DB
}

// NewRecipientRepo creates a new broadcast recipient repository
func NewRecipientRepo(db *sqlx.DB) *RecipientRepo {
	return &RecipientRepo{db: db}
}

// AddRecipient registers user for broadcasts if not registered yet
func (r *RecipientRepo) AddRecipient(userID int64) error {
	query := r.db.Rebind(`
		INSERT INTO broadcast_users (user_id)
		VALUES (?)
		ON CONFLICT (user_id) DO NOTHING
	`)
	_, err := r.db.Exec(query, userID)
	return err
}

// ListRecipients returns every registered user
func (r *RecipientRepo) ListRecipients() ([]int64, error) {
	var userIDs []int64
	err := r.db.Select(&userIDs, `SELECT user_id FROM broadcast_users ORDER BY user_id`)
	return userIDs, err
}

// CountRecipients returns the number of registered users
func (r *RecipientRepo) CountRecipients() (int, error) {
	var count int
	err := r.db.Get(&count, `SELECT COUNT(*) FROM broadcast_users`)
	return count, err
}
