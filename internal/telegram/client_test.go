package telegram

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tele "gopkg.in/telebot.v3"

	"predlozhka/internal/domain"
)

func TestMarkup(t *testing.T) {
	t.Run("nil keyboard", func(t *testing.T) {
		assert.Nil(t, Markup(nil))
		assert.Empty(t, options(nil))
	})

	t.Run("rows and raw data are kept", func(t *testing.T) {
		markup := Markup(domain.ModerationKeyboard(42))

		require.Len(t, markup.InlineKeyboard, 1)
		row := markup.InlineKeyboard[0]
		require.Len(t, row, 2)
		assert.Equal(t, "mod_pub:42", row[0].Data)
		assert.Equal(t, "mod_rej:42", row[1].Data)
		assert.Empty(t, row[0].Unique)
	})

	t.Run("draft keyboard layout", func(t *testing.T) {
		markup := Markup(domain.DraftEditKeyboard())

		require.Len(t, markup.InlineKeyboard, 3)
		assert.Len(t, markup.InlineKeyboard[0], 3)
		assert.Equal(t, domain.CallbackFinalSend, markup.InlineKeyboard[1][0].Data)
		assert.Equal(t, domain.CallbackCancel, markup.InlineKeyboard[2][0].Data)
	})
}

func TestPayload(t *testing.T) {
	text := payload(domain.Content{Text: "hello"})
	assert.Equal(t, "hello", text)

	photo, ok := payload(domain.Content{Text: "caption", PhotoID: "file-1"}).(*tele.Photo)
	require.True(t, ok)
	assert.Equal(t, "file-1", photo.FileID)
	assert.Equal(t, "caption", photo.Caption)
}

func TestEditable(t *testing.T) {
	ref := domain.MessageRef{ChatID: -100, MessageID: 7}

	messageID, chatID := Editable(ref).MessageSig()

	assert.Equal(t, "7", messageID)
	assert.Equal(t, int64(-100), chatID)
}
