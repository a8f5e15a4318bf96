package sqlstore

import (
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"predlozhka/internal/domain"
)

// BanRepo implements repository.BanRepository
type BanRepo struct {
	db *sqlx.DB
}

// NewBanRepo creates a new ban repository
func NewBanRepo(db *sqlx.DB) *BanRepo {
	return &BanRepo{db: db}
}

// IsBanned checks if user is on the ban list
func (r *BanRepo) IsBanned(userID int64) (bool, error) {
	var found int
	query := r.db.Rebind(`SELECT 1 FROM banned_users WHERE user_id = ?`)
	err := r.db.QueryRow(query, userID).Scan(&found)

	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	return true, nil
}

// Ban adds user to the ban list or refreshes an existing entry
func (r *BanRepo) Ban(entry domain.BanEntry) error {
	query := r.db.Rebind(`
		INSERT INTO banned_users (user_id, banned_by, banned_at, reason)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (user_id)
		DO UPDATE SET banned_by = excluded.banned_by, banned_at = excluded.banned_at, reason = excluded.reason
	`)
	_, err := r.db.Exec(query, entry.UserID, entry.BannedBy, entry.BannedAt, entry.Reason)
	return err
}

// Unban removes user from the ban list, reporting whether an entry existed
func (r *BanRepo) Unban(userID int64) (bool, error) {
	query := r.db.Rebind(`DELETE FROM banned_users WHERE user_id = ?`)
	res, err := r.db.Exec(query, userID)
	if err != nil {
		return false, err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
