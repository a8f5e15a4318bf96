package testutil

import (
	"time"

	"go.uber.org/zap"

	"predlozhka/internal/domain"
)

// TestNow is the fixed instant returned by NewTestCalendar: 2024-03-10 12:00 UTC
var TestNow = time.Date(2024, time.March, 10, 12, 0, 0, 0, time.UTC)

// TestToday is the day key of TestNow in UTC
const TestToday = "2024-03-10"

// NewTestLogger creates a no-op logger for tests
func NewTestLogger() *zap.Logger {
	return zap.NewNop()
}

// NewTestCalendar creates a UTC calendar frozen at TestNow
func NewTestCalendar() *domain.Calendar {
	return domain.NewCalendarWithClock(time.UTC, func() time.Time { return TestNow })
}

// NewTestPendingEntry creates a queue entry submitted an hour before TestNow
func NewTestPendingEntry(messageID int, userID int64) domain.PendingEntry {
	return domain.PendingEntry{
		MessageID:   messageID,
		UserID:      userID,
		SubmittedAt: TestNow.Add(-time.Hour),
	}
}
