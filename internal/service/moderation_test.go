package service

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"predlozhka/internal/domain"
	"predlozhka/internal/testutil"
)

const testReviewMessageID = 10

func reviewItem(text string) ReviewItem {
	return ReviewItem{
		Ref:     domain.MessageRef{ChatID: testReviewID, MessageID: testReviewMessageID},
		Content: domain.Content{Text: text},
	}
}

func TestModerationService_Enqueue(t *testing.T) {
	env := newFlowEnv()

	require.NoError(t, env.moderation.Enqueue(testReviewMessageID, testUserID))

	entry, err := env.store.GetPending(testReviewMessageID)
	require.NoError(t, err)
	require.NotNil(t, entry)
	assert.Equal(t, testUserID, entry.UserID)
	assert.Equal(t, testutil.TestNow, entry.SubmittedAt)
}

func TestModerationService_Reject(t *testing.T) {
	env := newFlowEnv()
	env.store.SetCount(testUserID, testutil.TestToday, 3)
	require.NoError(t, env.store.AddPending(testutil.NewTestPendingEntry(testReviewMessageID, testUserID)))

	resolution, err := env.moderation.Resolve(reviewItem("Old bicycle"), domain.DecisionReject, testUserID)
	require.NoError(t, err)
	assert.Equal(t, testUserID, resolution.AuthorID)

	count, _ := env.store.GetCount(testUserID, testutil.TestToday)
	assert.Equal(t, 2, count)
	assert.Equal(t, 0, env.store.PendingCount())

	stats := env.store.Stats()
	require.Len(t, stats, 1)
	assert.Equal(t, domain.EventRejected, stats[0].EventType)
	assert.Equal(t, testutil.TestNow.Add(-time.Hour), stats[0].CreatedAt)
	assert.Equal(t, testutil.TestToday, stats[0].ModeratedDate)

	notice, ok := env.messenger.LastSentTo(testUserID)
	require.True(t, ok)
	assert.Contains(t, notice.Content.Text, "rejected")

	require.NotEmpty(t, env.messenger.Edited)
	edit := env.messenger.Edited[len(env.messenger.Edited)-1]
	assert.Equal(t, reviewItem("").Ref, edit.Ref)
	assert.Nil(t, edit.Keyboard)
	assert.True(t, strings.HasSuffix(edit.Content.Text, "❌ REJECTED"))
}

func TestModerationService_ResolveTwice(t *testing.T) {
	tests := []struct {
		decision          domain.Decision
		expectedPublished int
	}{
		{decision: domain.DecisionPublish, expectedPublished: 1},
		{decision: domain.DecisionReject, expectedPublished: 0},
	}

	for _, tt := range tests {
		decision := tt.decision
		t.Run(decision.String(), func(t *testing.T) {
			env := newFlowEnv()
			env.store.SetCount(testUserID, testutil.TestToday, 3)
			require.NoError(t, env.store.AddPending(testutil.NewTestPendingEntry(testReviewMessageID, testUserID)))

			_, err := env.moderation.Resolve(reviewItem("Old bicycle"), decision, testUserID)
			require.NoError(t, err)
			countAfterFirst, _ := env.store.GetCount(testUserID, testutil.TestToday)

			_, err = env.moderation.Resolve(reviewItem("Old bicycle"), decision, testUserID)
			assert.ErrorIs(t, err, domain.ErrEntryNotFound)

			countAfterSecond, _ := env.store.GetCount(testUserID, testutil.TestToday)
			assert.Equal(t, countAfterFirst, countAfterSecond)
			assert.Len(t, env.store.Stats(), 1)
			assert.Len(t, env.messenger.SentTo(testPublicID), tt.expectedPublished)
		})
	}
}

func TestModerationService_PublishStripsSignature(t *testing.T) {
	env := newFlowEnv()
	require.NoError(t, env.store.AddPending(testutil.NewTestPendingEntry(testReviewMessageID, testUserID)))

	body := FormatAd(domain.Draft{Description: "Old bicycle, barely used", Price: "100", Contact: "@seller"})
	item := reviewItem(AppendSignature(body, testUserID, "@seller"))
	item.Content.PhotoID = "photo-1"

	_, err := env.moderation.Resolve(item, domain.DecisionPublish, testUserID)
	require.NoError(t, err)

	published := env.messenger.SentTo(testPublicID)
	require.Len(t, published, 1)
	assert.Equal(t, body, published[0].Content.Text)
	assert.Equal(t, "photo-1", published[0].Content.PhotoID)
	assert.Nil(t, published[0].Keyboard)

	stats := env.store.Stats()
	require.Len(t, stats, 1)
	assert.Equal(t, domain.EventPublished, stats[0].EventType)

	edit := env.messenger.Edited[len(env.messenger.Edited)-1]
	assert.True(t, strings.HasSuffix(edit.Content.Text, "✅ PUBLISHED"))
	assert.Equal(t, "photo-1", edit.Content.PhotoID)
}

func TestModerationService_StoredAuthorWins(t *testing.T) {
	env := newFlowEnv()
	require.NoError(t, env.store.AddPending(testutil.NewTestPendingEntry(testReviewMessageID, testUserID)))

	resolution, err := env.moderation.Resolve(reviewItem("Old bicycle"), domain.DecisionPublish, 999)
	require.NoError(t, err)

	assert.Equal(t, testUserID, resolution.AuthorID)
	assert.Len(t, env.messenger.SentTo(testUserID), 1)
	assert.Empty(t, env.messenger.SentTo(999))
}

func TestModerationService_UnknownEntry(t *testing.T) {
	env := newFlowEnv()

	_, err := env.moderation.Resolve(reviewItem("Old bicycle"), domain.DecisionPublish, testUserID)

	assert.ErrorIs(t, err, domain.ErrEntryNotFound)
	assert.Empty(t, env.messenger.SentTo(testPublicID))
	assert.Empty(t, env.messenger.Edited)
}

func TestModerationService_PublishFailureKeepsEntry(t *testing.T) {
	env := newFlowEnv()
	env.messenger.FailSendTo[testPublicID] = true
	require.NoError(t, env.store.AddPending(testutil.NewTestPendingEntry(testReviewMessageID, testUserID)))

	_, err := env.moderation.Resolve(reviewItem("Old bicycle"), domain.DecisionPublish, testUserID)

	assert.ErrorIs(t, err, domain.ErrDelivery)
	assert.Equal(t, 1, env.store.PendingCount())
	assert.Empty(t, env.store.Stats())
	assert.Empty(t, env.messenger.SentTo(testUserID))
}

func TestModerationService_PublishRetryAfterStoreFailure(t *testing.T) {
	env := newFlowEnv()
	require.NoError(t, env.store.AddPending(testutil.NewTestPendingEntry(testReviewMessageID, testUserID)))

	env.store.ResolveErr = fmt.Errorf("db down")
	_, err := env.moderation.Resolve(reviewItem("Old bicycle"), domain.DecisionPublish, testUserID)
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrEntryNotFound)
	assert.Empty(t, env.messenger.SentTo(testPublicID))
	assert.Equal(t, 1, env.store.PendingCount())

	env.store.ResolveErr = nil
	_, err = env.moderation.Resolve(reviewItem("Old bicycle"), domain.DecisionPublish, testUserID)
	require.NoError(t, err)

	assert.Len(t, env.messenger.SentTo(testPublicID), 1)
	assert.Len(t, env.store.Stats(), 1)
	assert.Equal(t, 0, env.store.PendingCount())
}

func TestModerationService_PublishFailureThenRetry(t *testing.T) {
	env := newFlowEnv()
	env.messenger.FailSendTo[testPublicID] = true
	require.NoError(t, env.store.AddPending(testutil.NewTestPendingEntry(testReviewMessageID, testUserID)))

	_, err := env.moderation.Resolve(reviewItem("Old bicycle"), domain.DecisionPublish, testUserID)
	require.ErrorIs(t, err, domain.ErrDelivery)

	env.messenger.FailSendTo[testPublicID] = false
	_, err = env.moderation.Resolve(reviewItem("Old bicycle"), domain.DecisionPublish, testUserID)
	require.NoError(t, err)

	assert.Len(t, env.messenger.SentTo(testPublicID), 1)
	stats := env.store.Stats()
	require.Len(t, stats, 1)
	assert.Equal(t, domain.EventPublished, stats[0].EventType)
}

func TestModerationService_PublishFailureWithoutReopen(t *testing.T) {
	env := newFlowEnv()
	env.messenger.FailSendTo[testPublicID] = true
	env.store.ReopenErr = fmt.Errorf("db down")
	require.NoError(t, env.store.AddPending(testutil.NewTestPendingEntry(testReviewMessageID, testUserID)))

	_, err := env.moderation.Resolve(reviewItem("Old bicycle"), domain.DecisionPublish, testUserID)
	assert.ErrorIs(t, err, domain.ErrDelivery)

	env.messenger.FailSendTo[testPublicID] = false
	_, err = env.moderation.Resolve(reviewItem("Old bicycle"), domain.DecisionPublish, testUserID)

	assert.ErrorIs(t, err, domain.ErrEntryNotFound)
	assert.Empty(t, env.messenger.SentTo(testPublicID))
}

func TestModerationService_RejectStoreFailureKeepsQuota(t *testing.T) {
	tests := []struct {
		name  string
		count int
	}{
		{name: "counter in use", count: 3},
		{name: "counter at zero", count: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newFlowEnv()
			env.store.SetCount(testUserID, testutil.TestToday, tt.count)
			env.store.ResolveErr = fmt.Errorf("db down")
			require.NoError(t, env.store.AddPending(testutil.NewTestPendingEntry(testReviewMessageID, testUserID)))

			_, err := env.moderation.Resolve(reviewItem("Old bicycle"), domain.DecisionReject, testUserID)

			assert.Error(t, err)
			count, _ := env.store.GetCount(testUserID, testutil.TestToday)
			assert.Equal(t, tt.count, count)
			assert.Equal(t, 1, env.store.PendingCount())
			assert.Empty(t, env.messenger.SentTo(testUserID))
		})
	}
}

func TestModerationService_RejectPostFromEarlierDay(t *testing.T) {
	env := newFlowEnv()
	require.NoError(t, env.store.AddPending(testutil.NewTestPendingEntry(testReviewMessageID, testUserID)))

	_, err := env.moderation.Resolve(reviewItem("Old bicycle"), domain.DecisionReject, testUserID)
	require.NoError(t, err)

	count, _ := env.store.GetCount(testUserID, testutil.TestToday)
	assert.Equal(t, 0, count)
	assert.Len(t, env.store.Stats(), 1)
}

func TestModerationService_NotificationFailureDoesNotAbort(t *testing.T) {
	env := newFlowEnv()
	env.messenger.FailSendTo[testUserID] = true
	env.messenger.FailEdit = true
	require.NoError(t, env.store.AddPending(testutil.NewTestPendingEntry(testReviewMessageID, testUserID)))

	_, err := env.moderation.Resolve(reviewItem("Old bicycle"), domain.DecisionPublish, testUserID)

	assert.NoError(t, err)
	assert.Len(t, env.store.Stats(), 1)
	assert.Equal(t, 0, env.store.PendingCount())
}
