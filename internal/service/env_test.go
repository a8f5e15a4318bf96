package service

import (
	"predlozhka/internal/testutil"
)

const (
	testOwnerID   int64 = 1
	testUserID    int64 = 42
	testReviewID  int64 = -100
	testPublicID  int64 = -200
	testLogID     int64 = -300
	testMaxPerDay int   = 5
)

// flowEnv wires every service over an in-memory store and a fake messenger
type flowEnv struct {
	store        *testutil.MemoryStore
	messenger    *testutil.FakeMessenger
	sessions     *SessionStore
	admission    *AdmissionService
	moderation   *ModerationService
	broadcast    *BroadcastService
	stats        *StatsService
	conversation *ConversationService
}

func newFlowEnv() *flowEnv {
	store := testutil.NewMemoryStore()
	messenger := testutil.NewFakeMessenger()
	logger := testutil.NewTestLogger()
	calendar := testutil.NewTestCalendar()
	channels := Channels{ReviewChatID: testReviewID, PublicChatID: testPublicID, LogChatID: testLogID}
	audit := NewAuditLog(messenger, channels.LogChatID, logger)

	sessions := NewSessionStore()
	admission := NewAdmissionService(store, store, calendar, testOwnerID, testMaxPerDay, logger)
	moderation := NewModerationService(store, admission, messenger, channels, calendar, audit, logger)
	broadcast := NewBroadcastService(store, messenger, 0, testOwnerID, logger)
	stats := NewStatsService(store, store, store, calendar, 0, logger)

	return &flowEnv{
		store:        store,
		messenger:    messenger,
		sessions:     sessions,
		admission:    admission,
		moderation:   moderation,
		broadcast:    broadcast,
		stats:        stats,
		conversation: NewConversationService(sessions, admission, moderation, broadcast, stats, messenger, channels, audit, logger),
	}
}
