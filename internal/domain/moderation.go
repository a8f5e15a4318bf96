package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// PendingEntry links a post in the review channel to its author
type PendingEntry struct {
	MessageID   int       `db:"message_id"`
	UserID      int64     `db:"user_id"`
	SubmittedAt time.Time `db:"submitted_at"`
}

// EventType is the kind of a moderation outcome
type EventType string

const (
	EventPublished EventType = "published"
	EventRejected  EventType = "rejected"
)

// ModerationStat is an append-only record of one moderation outcome
type ModerationStat struct {
	EventType     EventType `db:"event_type"`
	CreatedAt     time.Time `db:"created_at"`
	ModeratedAt   time.Time `db:"moderated_at"`
	ModeratedDate string    `db:"moderated_date"`
}

// Decision is the moderator's verdict on a queue entry
type Decision int

const (
	DecisionPublish Decision = iota + 1
	DecisionReject
)

func (d Decision) String() string {
	switch d {
	case DecisionPublish:
		return "publish"
	case DecisionReject:
		return "reject"
	default:
		return "unknown"
	}
}

// Event maps a decision to the statistics event it produces
func (d Decision) Event() EventType {
	if d == DecisionPublish {
		return EventPublished
	}
	return EventRejected
}

// ParseModerationCallback parses "mod_pub:<id>" and "mod_rej:<id>"
func ParseModerationCallback(data string) (Decision, int64, error) {
	action, idStr, ok := strings.Cut(data, ":")
	if !ok {
		return 0, 0, fmt.Errorf("malformed moderation callback %q", data)
	}

	var decision Decision
	switch action {
	case CallbackPublishPrefix:
		decision = DecisionPublish
	case CallbackRejectPrefix:
		decision = DecisionReject
	default:
		return 0, 0, fmt.Errorf("unknown moderation action %q", action)
	}

	authorID, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid author id in %q: %w", data, err)
	}
	return decision, authorID, nil
}
