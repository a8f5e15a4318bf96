package service

import (
	"go.uber.org/zap"

	"predlozhka/internal/domain"
)

// Messenger is the messaging transport consumed by the services
type Messenger interface {
	Send(chatID int64, content domain.Content, kb *domain.Keyboard) (domain.MessageRef, error)
	// Edit replaces text, or photo and caption together, and the keyboard.
	// A nil keyboard removes the existing controls.
	Edit(ref domain.MessageRef, content domain.Content, kb *domain.Keyboard) error
	Delete(ref domain.MessageRef) error
	Copy(chatID int64, src domain.MessageRef) error
}

// Channels are the chats the bot posts into
type Channels struct {
	ReviewChatID int64
	PublicChatID int64
	LogChatID    int64
}

// deleteQuietly removes a transient UI message. Failures are expected
// (the message may already be gone) and only logged.
func deleteQuietly(m Messenger, logger *zap.Logger, ref *domain.MessageRef) {
	if ref == nil {
		return
	}
	if err := m.Delete(*ref); err != nil {
		logger.Debug("Failed to delete message",
			zap.Int64("chat_id", ref.ChatID),
			zap.Int("message_id", ref.MessageID),
			zap.Error(err),
		)
	}
}

// notify sends a fire-and-forget text message; failure is logged, never returned
func notify(m Messenger, logger *zap.Logger, chatID int64, text string) {
	if _, err := m.Send(chatID, domain.Content{Text: text}, nil); err != nil {
		logger.Warn("Failed to notify user",
			zap.Int64("chat_id", chatID),
			zap.Error(err),
		)
	}
}

// editOrSend replaces the message at ref, falling back to sending a new one
// when the edit is rejected. It returns the message now showing content.
func editOrSend(m Messenger, logger *zap.Logger, ref domain.MessageRef, content domain.Content, kb *domain.Keyboard) (domain.MessageRef, error) {
	err := m.Edit(ref, content, kb)
	if err == nil {
		return ref, nil
	}

	logger.Debug("Failed to edit message, sending a new one",
		zap.Int64("chat_id", ref.ChatID),
		zap.Int("message_id", ref.MessageID),
		zap.Error(err),
	)
	return m.Send(ref.ChatID, content, kb)
}
