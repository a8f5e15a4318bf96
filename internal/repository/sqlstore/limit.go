package sqlstore

import (
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
)

// LimitRepo implements repository.LimitRepository
type LimitRepo struct {
	db *sqlx.DB
}

// NewLimitRepo creates a new daily limit repository
func NewLimitRepo(db *sqlx.DB) *LimitRepo {
	return &LimitRepo{db: db}
}

// GetCount returns the number of submissions of user on day
func (r *LimitRepo) GetCount(userID int64, day string) (int, error) {
	var count int
	query := r.db.Rebind(`SELECT post_count FROM user_limits WHERE user_id = ? AND date_str = ?`)
	err := r.db.QueryRow(query, userID, day).Scan(&count)

	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}

	return count, nil
}

// Increment adds one submission in a single upsert
func (r *LimitRepo) Increment(userID int64, day string) error {
	query := r.db.Rebind(`
		INSERT INTO user_limits (user_id, date_str, post_count)
		VALUES (?, ?, 1)
		ON CONFLICT (user_id, date_str)
		DO UPDATE SET post_count = user_limits.post_count + 1
	`)
	_, err := r.db.Exec(query, userID, day)
	return err
}

// TryIncrement adds one submission only while the counter is below limit.
// It reports whether the slot was taken.
func (r *LimitRepo) TryIncrement(userID int64, day string, limit int) (bool, error) {
	if limit <= 0 {
		return false, nil
	}

	query := r.db.Rebind(`
		INSERT INTO user_limits (user_id, date_str, post_count)
		VALUES (?, ?, 1)
		ON CONFLICT (user_id, date_str)
		DO UPDATE SET post_count = user_limits.post_count + 1
		WHERE user_limits.post_count < ?
	`)
	res, err := r.db.Exec(query, userID, day, limit)
	if err != nil {
		return false, err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// Decrement frees one submission; the counter never drops below zero
// and a missing row is left alone
func (r *LimitRepo) Decrement(userID int64, day string) error {
	query := r.db.Rebind(`
		UPDATE user_limits
		SET post_count = post_count - 1
		WHERE user_id = ? AND date_str = ? AND post_count > 0
	`)
	_, err := r.db.Exec(query, userID, day)
	return err
}

// CleanBefore deletes counters of days before day
func (r *LimitRepo) CleanBefore(day string) (int64, error) {
	query := r.db.Rebind(`DELETE FROM user_limits WHERE date_str < ?`)
	res, err := r.db.Exec(query, day)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
