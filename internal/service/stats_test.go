package service

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"predlozhka/internal/domain"
	"predlozhka/internal/testutil"
)

func seedStats(store *testutil.MemoryStore, day string, event domain.EventType, n int) {
	for i := 0; i < n; i++ {
		store.AddStat(domain.ModerationStat{EventType: event, ModeratedDate: day})
	}
}

func TestStatsService_Counts(t *testing.T) {
	env := newFlowEnv()
	seedStats(env.store, testutil.TestToday, domain.EventPublished, 3)
	seedStats(env.store, testutil.TestToday, domain.EventRejected, 1)
	seedStats(env.store, "2024-03-09", domain.EventRejected, 2)

	today, err := env.stats.Counts(domain.PeriodToday)
	require.NoError(t, err)
	assert.Equal(t, domain.StatsCounts{Published: 3, Rejected: 1}, today)
	assert.Equal(t, "75.00%", today.PublishedPercent())
	assert.Equal(t, "25.00%", today.RejectedPercent())

	all, err := env.stats.Counts(domain.PeriodAll)
	require.NoError(t, err)
	assert.Equal(t, domain.StatsCounts{Published: 3, Rejected: 3}, all)

	_, err = env.stats.Counts(domain.Period("week"))
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestStatsService_Report(t *testing.T) {
	env := newFlowEnv()
	seedStats(env.store, testutil.TestToday, domain.EventPublished, 3)
	seedStats(env.store, testutil.TestToday, domain.EventRejected, 1)

	report, err := env.stats.Report(domain.PeriodToday)
	require.NoError(t, err)
	assert.Contains(t, report, testutil.TestToday)
	assert.Contains(t, report, "Published: 3 (75.00%)")
	assert.Contains(t, report, "Rejected: 1 (25.00%)")

	empty := newFlowEnv()
	report, err = empty.stats.Report(domain.PeriodAll)
	require.NoError(t, err)
	assert.Contains(t, report, "Published: 0 (0.00%)")
	assert.Contains(t, report, "Rejected: 0 (0.00%)")
}

func TestStatsService_CleanupOldData(t *testing.T) {
	const queueTTL = 720 * time.Hour

	tests := []struct {
		name          string
		limitsError   error
		queueError    error
		expectedError bool
	}{
		{
			name: "successful cleanup",
		},
		{
			name:          "counter cleanup error",
			limitsError:   fmt.Errorf("db error"),
			expectedError: true,
		},
		{
			name:          "queue expiry error",
			queueError:    fmt.Errorf("db error"),
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockLimits := new(testutil.MockLimitRepository)
			mockLimits.On("CleanBefore", "2024-03-03").Return(int64(2), tt.limitsError)
			mockQueue := new(testutil.MockQueueRepository)
			mockQueue.On("ExpirePending", testutil.TestNow.Add(-queueTTL)).Return(int64(1), tt.queueError).Maybe()

			logger := testutil.NewTestLogger()
			service := NewStatsService(new(testutil.MockStatsRepository), mockLimits, mockQueue, testutil.NewTestCalendar(), queueTTL, logger)

			err := service.CleanupOldData()

			if tt.expectedError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}

			mockLimits.AssertExpectations(t)
			if tt.limitsError != nil {
				mockQueue.AssertNotCalled(t, "ExpirePending", testutil.TestNow.Add(-queueTTL))
			}
		})
	}
}

func TestStatsService_CleanupExpiresStaleEntries(t *testing.T) {
	store := testutil.NewMemoryStore()
	fresh := testutil.NewTestPendingEntry(1, testUserID)
	stale := domain.PendingEntry{MessageID: 2, UserID: testUserID, SubmittedAt: testutil.TestNow.Add(-800 * time.Hour)}
	require.NoError(t, store.AddPending(fresh))
	require.NoError(t, store.AddPending(stale))
	store.SetCount(testUserID, "2024-02-01", 4)
	store.SetCount(testUserID, testutil.TestToday, 1)

	service := NewStatsService(store, store, store, testutil.NewTestCalendar(), 720*time.Hour, testutil.NewTestLogger())
	require.NoError(t, service.CleanupOldData())

	assert.Equal(t, 1, store.PendingCount())
	old, _ := store.GetCount(testUserID, "2024-02-01")
	assert.Equal(t, 0, old)
	current, _ := store.GetCount(testUserID, testutil.TestToday)
	assert.Equal(t, 1, current)
}
