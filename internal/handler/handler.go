package handler

import (
	"context"
	"errors"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"

	"predlozhka/internal/domain"
	"predlozhka/internal/middleware"
	"predlozhka/internal/service"
)

const textInternalError = "❌ Something went wrong. Please try again later."

// Handler routes bot updates to the services
type Handler struct {
	ctx          context.Context
	bot          *tele.Bot
	conversation *service.ConversationService
	moderation   *service.ModerationService
	ownerID      int64
	reviewChatID int64
	logger       *zap.Logger
}

// NewHandler creates a new handler instance. ctx bounds long-running work
// started from updates, such as broadcasts.
func NewHandler(
	ctx context.Context,
	bot *tele.Bot,
	conversation *service.ConversationService,
	moderation *service.ModerationService,
	ownerID int64,
	reviewChatID int64,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		ctx:          ctx,
		bot:          bot,
		conversation: conversation,
		moderation:   moderation,
		ownerID:      ownerID,
		reviewChatID: reviewChatID,
		logger:       logger,
	}
}

// RegisterHandlers registers all bot handlers
func (h *Handler) RegisterHandlers() {
	private := h.bot.Group()
	private.Use(middleware.PrivateOnly(h.logger))

	// Commands open to everyone
	private.Handle("/start", h.handleStart)
	private.Handle("/cancel", h.handleCancel)

	// Owner commands
	owner := h.bot.Group()
	owner.Use(middleware.PrivateOnly(h.logger), middleware.OwnerOnly(h.ownerID, h.logger))
	owner.Handle("/help", h.handleHelp)
	owner.Handle("/stats", h.handleStats)
	owner.Handle("/broadcast", h.handleBroadcast)
	owner.Handle("/ban", h.handleBan)
	owner.Handle("/unban", h.handleUnban)

	// Dialogue input; anything can be a broadcast source
	for _, endpoint := range []string{
		tele.OnText,
		tele.OnPhoto,
		tele.OnVideo,
		tele.OnAnimation,
		tele.OnDocument,
		tele.OnAudio,
		tele.OnVoice,
		tele.OnSticker,
	} {
		private.Handle(endpoint, h.handleInput)
	}

	// Callback queries (inline buttons)
	h.bot.Handle(tele.OnCallback, h.handleCallback)
}

// sender converts the telebot sender to a service sender
func sender(c tele.Context) service.Sender {
	u := c.Sender()
	if u == nil {
		return service.Sender{}
	}

	name := u.FirstName
	if u.LastName != "" {
		name += " " + u.LastName
	}
	return service.Sender{ID: u.ID, Username: u.Username, Name: name}
}

// reportError handles a service error for a message update. The services
// already told the user about expected failures; anything else gets a
// generic reply.
func (h *Handler) reportError(c tele.Context, err error, action string) error {
	if err == nil || isExpected(err) {
		if err != nil {
			h.logger.Debug("Action declined",
				zap.String("action", action),
				zap.Int64("user_id", sender(c).ID),
				zap.Error(err),
			)
		}
		return nil
	}

	h.logger.Error("Action failed",
		zap.String("action", action),
		zap.Int64("user_id", sender(c).ID),
		zap.Error(err),
	)
	return c.Send(textInternalError)
}

func isExpected(err error) bool {
	return errors.Is(err, domain.ErrValidation) ||
		errors.Is(err, domain.ErrAccessDenied) ||
		errors.Is(err, domain.ErrStaleAction)
}
