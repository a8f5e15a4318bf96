package domain

import "time"

// DefaultBanReason is stored when the moderator gives none
const DefaultBanReason = "not specified"

// BanEntry marks a user as banned. Presence of the row is the only predicate.
type BanEntry struct {
	UserID   int64     `db:"user_id"`
	BannedBy int64     `db:"banned_by"`
	BannedAt time.Time `db:"banned_at"`
	Reason   string    `db:"reason"`
}
