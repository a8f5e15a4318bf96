package middleware

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tele "gopkg.in/telebot.v3"

	"predlozhka/internal/testutil"
)

const ownerID int64 = 1

func newContext(t *testing.T, userID int64, chatType tele.ChatType) tele.Context {
	t.Helper()
	bot, err := tele.NewBot(tele.Settings{Offline: true})
	require.NoError(t, err)

	return bot.NewContext(tele.Update{
		Message: &tele.Message{
			ID:     1,
			Sender: &tele.User{ID: userID},
			Chat:   &tele.Chat{ID: userID, Type: chatType},
			Text:   "/stats",
		},
	})
}

func recordCall(called *bool) tele.HandlerFunc {
	return func(c tele.Context) error {
		*called = true
		return nil
	}
}

func TestOwnerOnly(t *testing.T) {
	tests := []struct {
		name     string
		userID   int64
		expected bool
	}{
		{name: "owner passes", userID: ownerID, expected: true},
		{name: "other user is dropped", userID: 42, expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			called := false
			handler := OwnerOnly(ownerID, testutil.NewTestLogger())(recordCall(&called))

			err := handler(newContext(t, tt.userID, tele.ChatPrivate))

			assert.NoError(t, err)
			assert.Equal(t, tt.expected, called)
		})
	}
}

func TestPrivateOnly(t *testing.T) {
	tests := []struct {
		name     string
		chatType tele.ChatType
		expected bool
	}{
		{name: "private chat passes", chatType: tele.ChatPrivate, expected: true},
		{name: "group is dropped", chatType: tele.ChatGroup, expected: false},
		{name: "channel is dropped", chatType: tele.ChatChannel, expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			called := false
			handler := PrivateOnly(testutil.NewTestLogger())(recordCall(&called))

			err := handler(newContext(t, 42, tt.chatType))

			assert.NoError(t, err)
			assert.Equal(t, tt.expected, called)
		})
	}
}
