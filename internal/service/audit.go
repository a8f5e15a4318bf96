package service

import (
	"fmt"

	"go.uber.org/zap"

	"predlozhka/internal/domain"
)

// AuditLog mirrors notable events into the log channel
type AuditLog struct {
	messenger Messenger
	chatID    int64
	logger    *zap.Logger
}

// NewAuditLog creates an audit log. A zero chatID disables it.
func NewAuditLog(messenger Messenger, chatID int64, logger *zap.Logger) *AuditLog {
	return &AuditLog{
		messenger: messenger,
		chatID:    chatID,
		logger:    logger,
	}
}

// Record posts a line to the log channel, best effort
func (a *AuditLog) Record(format string, args ...interface{}) {
	if a == nil || a.chatID == 0 {
		return
	}
	text := "📋 LOG: " + fmt.Sprintf(format, args...)
	if _, err := a.messenger.Send(a.chatID, domain.Content{Text: text}, nil); err != nil {
		a.logger.Error("Failed to send audit log", zap.Error(err))
	}
}
