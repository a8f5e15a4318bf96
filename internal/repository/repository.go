package repository

import (
	"time"

	"predlozhka/internal/domain"
)

// BanRepository defines ban list operations
type BanRepository interface {
	IsBanned(userID int64) (bool, error)
	Ban(entry domain.BanEntry) error
	Unban(userID int64) (bool, error)
}

// LimitRepository defines daily counter operations. day is a local day key.
type LimitRepository interface {
	GetCount(userID int64, day string) (int, error)
	Increment(userID int64, day string) error
	TryIncrement(userID int64, day string, limit int) (bool, error)
	Decrement(userID int64, day string) error
	CleanBefore(day string) (int64, error)
}

// QueueRepository defines moderation queue operations
type QueueRepository interface {
	AddPending(entry domain.PendingEntry) error
	GetPending(messageID int) (*domain.PendingEntry, error)
	// ResolvePending removes the entry and appends stat atomically. It
	// returns the id of the appended stat.
	ResolvePending(messageID int, stat domain.ModerationStat) (int64, error)
	// ReopenPending puts a resolved entry back and drops its stat
	ReopenPending(entry domain.PendingEntry, statID int64) error
	ExpirePending(before time.Time) (int64, error)
}

// StatsRepository defines moderation statistics queries.
// An empty day counts all time.
type StatsRepository interface {
	CountEvents(day string) (domain.StatsCounts, error)
}

// RecipientRepository defines broadcast recipient operations
type RecipientRepository interface {
	AddRecipient(userID int64) error
	ListRecipients() ([]int64, error)
	CountRecipients() (int, error)
}
