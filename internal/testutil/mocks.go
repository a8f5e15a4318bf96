package testutil

import (
	"time"

	"github.com/stretchr/testify/mock"

	"predlozhka/internal/domain"
)

// MockBanRepository is a mock for BanRepository
type MockBanRepository struct {
	mock.Mock
}

func (m *MockBanRepository) IsBanned(userID int64) (bool, error) {
	args := m.Called(userID)
	return args.Bool(0), args.Error(1)
}

func (m *MockBanRepository) Ban(entry domain.BanEntry) error {
	args := m.Called(entry)
	return args.Error(0)
}

func (m *MockBanRepository) Unban(userID int64) (bool, error) {
	args := m.Called(userID)
	return args.Bool(0), args.Error(1)
}

// MockLimitRepository is a mock for LimitRepository
type MockLimitRepository struct {
	mock.Mock
}

func (m *MockLimitRepository) GetCount(userID int64, day string) (int, error) {
	args := m.Called(userID, day)
	return args.Int(0), args.Error(1)
}

func (m *MockLimitRepository) Increment(userID int64, day string) error {
	args := m.Called(userID, day)
	return args.Error(0)
}

func (m *MockLimitRepository) TryIncrement(userID int64, day string, limit int) (bool, error) {
	args := m.Called(userID, day, limit)
	return args.Bool(0), args.Error(1)
}

func (m *MockLimitRepository) Decrement(userID int64, day string) error {
	args := m.Called(userID, day)
	return args.Error(0)
}

func (m *MockLimitRepository) CleanBefore(day string) (int64, error) {
	args := m.Called(day)
	return args.Get(0).(int64), args.Error(1)
}

// MockQueueRepository is a mock for QueueRepository
type MockQueueRepository struct {
	mock.Mock
}

func (m *MockQueueRepository) AddPending(entry domain.PendingEntry) error {
	args := m.Called(entry)
	return args.Error(0)
}

func (m *MockQueueRepository) GetPending(messageID int) (*domain.PendingEntry, error) {
	args := m.Called(messageID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PendingEntry), args.Error(1)
}

func (m *MockQueueRepository) ResolvePending(messageID int, stat domain.ModerationStat) (int64, error) {
	args := m.Called(messageID, stat)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockQueueRepository) ReopenPending(entry domain.PendingEntry, statID int64) error {
	args := m.Called(entry, statID)
	return args.Error(0)
}

func (m *MockQueueRepository) ExpirePending(before time.Time) (int64, error) {
	args := m.Called(before)
	return args.Get(0).(int64), args.Error(1)
}

// MockStatsRepository is a mock for StatsRepository
type MockStatsRepository struct {
	mock.Mock
}

func (m *MockStatsRepository) CountEvents(day string) (domain.StatsCounts, error) {
	args := m.Called(day)
	return args.Get(0).(domain.StatsCounts), args.Error(1)
}

// MockRecipientRepository is a mock for RecipientRepository
type MockRecipientRepository struct {
	mock.Mock
}

func (m *MockRecipientRepository) AddRecipient(userID int64) error {
	args := m.Called(userID)
	return args.Error(0)
}

func (m *MockRecipientRepository) ListRecipients() ([]int64, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]int64), args.Error(1)
}

func (m *MockRecipientRepository) CountRecipients() (int, error) {
	args := m.Called()
	return args.Int(0), args.Error(1)
}
