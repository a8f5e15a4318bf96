package handler

import (
	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// handleStart handles /start command
func (h *Handler) handleStart(c tele.Context) error {
	user := sender(c)

	h.logger.Info("User started bot",
		zap.Int64("user_id", user.ID),
		zap.String("username", user.Username),
	)

	return h.reportError(c, h.conversation.Start(user), "start")
}

// handleCancel handles /cancel command
func (h *Handler) handleCancel(c tele.Context) error {
	return h.reportError(c, h.conversation.Cancel(sender(c), nil), "cancel")
}

// handleHelp lists the available commands
func (h *Handler) handleHelp(c tele.Context) error {
	return c.Send(h.conversation.HelpText(sender(c).ID))
}
