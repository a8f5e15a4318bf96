package handler

import (
	"errors"
	"strings"
	"unicode"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"

	"predlozhka/internal/domain"
	"predlozhka/internal/service"
	"predlozhka/internal/telegram"
)

// cleanCallbackData removes all non-printable characters from callback data
func cleanCallbackData(data string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsPrint(r) {
			return r
		}
		return -1
	}, strings.TrimSpace(data))
}

// callbackText is the short notice shown for a failed control press.
// Empty means a plain acknowledgement.
func callbackText(err error) (text string, alert bool) {
	switch {
	case err == nil:
		return "", false
	case errors.Is(err, domain.ErrEntryNotFound):
		return "Post not found or already processed.", true
	case errors.Is(err, domain.ErrOwnerOnly):
		return "Only the owner can do this.", false
	case errors.Is(err, domain.ErrStaleAction):
		return "This action is no longer available.", false
	case errors.Is(err, domain.ErrDelivery):
		return "Telegram rejected the message, try again.", true
	case errors.Is(err, domain.ErrValidation), errors.Is(err, domain.ErrAccessDenied):
		return "", false
	default:
		return "Something went wrong.", true
	}
}

// respond acknowledges the callback, reporting err to the presser
func (h *Handler) respond(c tele.Context, err error, action string) error {
	if err != nil {
		log := h.logger.Error
		if isExpected(err) || errors.Is(err, domain.ErrEntryNotFound) {
			log = h.logger.Debug
		}
		log("Callback action failed",
			zap.String("action", action),
			zap.Int64("user_id", sender(c).ID),
			zap.Error(err),
		)
	}

	text, alert := callbackText(err)
	if text == "" {
		return c.Respond()
	}
	return c.Respond(&tele.CallbackResponse{Text: text, ShowAlert: alert})
}

// ack answers the callback up front for actions that take a while
func (h *Handler) ack(c tele.Context, text string) {
	if err := c.Respond(&tele.CallbackResponse{Text: text}); err != nil {
		h.logger.Warn("Failed to acknowledge callback", zap.Error(err))
	}
}

// checkLongAction rejects a long-running control that its dialogue no
// longer offers, before the early acknowledgement hides the outcome
func (h *Handler) checkLongAction(user service.Sender, data string) error {
	switch data {
	case domain.CallbackFinalSend:
		if h.conversation.Session(user.ID).State != domain.StateConfirmation {
			return domain.ErrStaleAction
		}
	case domain.CallbackBroadcastOK:
		if user.ID != h.ownerID {
			return domain.ErrOwnerOnly
		}
		if h.conversation.Session(user.ID).State != domain.StateBroadcastConfirm {
			return domain.ErrStaleAction
		}
	}
	return nil
}

// handleCallback handles ALL callback queries
func (h *Handler) handleCallback(c tele.Context) error {
	callback := c.Callback()
	if callback == nil {
		h.logger.Warn("handleCallback: callback is nil")
		return nil
	}

	data := cleanCallbackData(callback.Data)
	h.logger.Debug("handleCallback: Processing callback",
		zap.String("data", data),
		zap.String("id", callback.ID),
		zap.Int64("user_id", sender(c).ID),
	)

	if strings.HasPrefix(data, domain.CallbackPublishPrefix+":") || strings.HasPrefix(data, domain.CallbackRejectPrefix+":") {
		return h.handleModeration(c, data)
	}

	if c.Chat() == nil || c.Chat().Type != tele.ChatPrivate || callback.Message == nil {
		return c.Respond()
	}

	user := sender(c)
	origin := telegram.Ref(callback.Message)

	switch data {
	case domain.CallbackStartSubmit:
		return h.respond(c, h.conversation.BeginSubmission(user, origin), data)

	case domain.CallbackEditDesc:
		return h.respond(c, h.conversation.BeginEdit(user, domain.FieldDescription), data)
	case domain.CallbackEditPrice:
		return h.respond(c, h.conversation.BeginEdit(user, domain.FieldPrice), data)
	case domain.CallbackEditContact:
		return h.respond(c, h.conversation.BeginEdit(user, domain.FieldContact), data)

	case domain.CallbackFinalSend:
		if err := h.checkLongAction(user, data); err != nil {
			return h.respond(c, err, data)
		}
		h.ack(c, "📤 Sending...")
		if err := h.conversation.FinalSend(user); err != nil && !isExpected(err) {
			h.logger.Error("Final send failed", zap.Int64("user_id", user.ID), zap.Error(err))
		}
		return nil

	case domain.CallbackCancel:
		return h.respond(c, h.conversation.Cancel(user, &origin), data)

	case domain.CallbackBroadcastOK:
		if err := h.checkLongAction(user, data); err != nil {
			return h.respond(c, err, data)
		}
		h.ack(c, "📢 Broadcast started")
		if _, err := h.conversation.ConfirmBroadcast(h.ctx, user, origin); err != nil && !isExpected(err) {
			h.logger.Error("Broadcast failed", zap.Error(err))
		}
		return nil

	case domain.CallbackStatsToday:
		return h.respond(c, h.conversation.ShowStats(user, origin, domain.PeriodToday), data)
	case domain.CallbackStatsAll:
		return h.respond(c, h.conversation.ShowStats(user, origin, domain.PeriodAll), data)
	case domain.CallbackStatsShowMenu:
		return h.respond(c, h.conversation.ShowStatsMenu(user, origin), data)
	case domain.CallbackStatsBack:
		return h.respond(c, h.conversation.CloseStats(user, origin), data)
	}

	h.logger.Warn("Unhandled callback in handleCallback", zap.String("data", data))
	return c.Respond()
}

// handleModeration applies a publish or reject control pressed in the
// review channel
func (h *Handler) handleModeration(c tele.Context, data string) error {
	callback := c.Callback()
	if callback.Message == nil || callback.Message.Chat == nil || callback.Message.Chat.ID != h.reviewChatID {
		h.logger.Warn("Moderation control outside the review channel", zap.String("data", data))
		return c.Respond()
	}
	if c.Sender() == nil || c.Sender().ID != h.ownerID {
		return h.respond(c, domain.ErrOwnerOnly, data)
	}

	decision, claimedAuthorID, err := domain.ParseModerationCallback(data)
	if err != nil {
		h.logger.Warn("Malformed moderation callback", zap.String("data", data), zap.Error(err))
		return c.Respond(&tele.CallbackResponse{Text: "Unknown action."})
	}

	item := service.ReviewItem{
		Ref:     telegram.Ref(callback.Message),
		Content: contentOf(callback.Message),
	}
	_, err = h.moderation.Resolve(item, decision, claimedAuthorID)
	return h.respond(c, err, data)
}

// contentOf returns the visible content of a delivered message
func contentOf(msg *tele.Message) domain.Content {
	if msg.Photo != nil {
		return domain.Content{Text: msg.Caption, PhotoID: msg.Photo.FileID}
	}
	return domain.Content{Text: msg.Text}
}
