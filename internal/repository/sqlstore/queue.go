package sqlstore

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"predlozhka/internal/domain"
)

// QueueRepo implements repository.QueueRepository
type QueueRepo struct {
	db *sqlx.DB
}

// NewQueueRepo creates a new moderation queue repository
func NewQueueRepo(db *sqlx.DB) *QueueRepo {
	return &QueueRepo{db: db}
}

// AddPending records a review post awaiting a decision
func (r *QueueRepo) AddPending(entry domain.PendingEntry) error {
	query := r.db.Rebind(`
		INSERT INTO pending_posts (message_id, user_id, submitted_at)
		VALUES (?, ?, ?)
	`)
	_, err := r.db.Exec(query, entry.MessageID, entry.UserID, entry.SubmittedAt)
	return err
}

// GetPending returns the entry for a review post, or nil if there is none
func (r *QueueRepo) GetPending(messageID int) (*domain.PendingEntry, error) {
	var entry domain.PendingEntry
	query := r.db.Rebind(`SELECT message_id, user_id, submitted_at FROM pending_posts WHERE message_id = ?`)
	err := r.db.Get(&entry, query, messageID)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &entry, nil
}

// ResolvePending deletes the entry and appends the outcome in one transaction.
// It returns domain.ErrEntryNotFound when the entry is already gone.
func (r *QueueRepo) ResolvePending(messageID int, stat domain.ModerationStat) (int64, error) {
	tx, err := r.db.Beginx()
	if err != nil {
		return 0, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.Exec(tx.Rebind(`DELETE FROM pending_posts WHERE message_id = ?`), messageID)
	if err != nil {
		return 0, fmt.Errorf("delete pending post: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("delete pending post: %w", err)
	}
	if n == 0 {
		return 0, domain.ErrEntryNotFound
	}

	query := tx.Rebind(`
		INSERT INTO moderation_stats (event_type, created_at, moderated_at, moderated_date)
		VALUES (?, ?, ?, ?)
		RETURNING id
	`)
	var statID int64
	if err := tx.QueryRowx(query, string(stat.EventType), stat.CreatedAt, stat.ModeratedAt, stat.ModeratedDate).Scan(&statID); err != nil {
		return 0, fmt.Errorf("insert moderation stat: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit resolve: %w", err)
	}
	return statID, nil
}

// ReopenPending restores a resolved entry and removes the stat recorded for
// it, in one transaction
func (r *QueueRepo) ReopenPending(entry domain.PendingEntry, statID int64) error {
	tx, err := r.db.Beginx()
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := tx.Rebind(`
		INSERT INTO pending_posts (message_id, user_id, submitted_at)
		VALUES (?, ?, ?)
	`)
	if _, err := tx.Exec(query, entry.MessageID, entry.UserID, entry.SubmittedAt); err != nil {
		return fmt.Errorf("restore pending post: %w", err)
	}

	if _, err := tx.Exec(tx.Rebind(`DELETE FROM moderation_stats WHERE id = ?`), statID); err != nil {
		return fmt.Errorf("delete moderation stat: %w", err)
	}

	return tx.Commit()
}

// ExpirePending deletes entries submitted before the given instant
func (r *QueueRepo) ExpirePending(before time.Time) (int64, error) {
	query := r.db.Rebind(`DELETE FROM pending_posts WHERE submitted_at < ?`)
	res, err := r.db.Exec(query, before)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
