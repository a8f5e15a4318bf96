package handler

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	tele "gopkg.in/telebot.v3"

	"predlozhka/internal/domain"
)

const (
	usageBan   = "Usage: /ban <id> [reason]"
	usageUnban = "Usage: /unban <id>"
)

// handleStats opens the statistics menu
func (h *Handler) handleStats(c tele.Context) error {
	return h.reportError(c, h.conversation.OpenStats(sender(c)), "stats")
}

// handleBroadcast starts composing a broadcast
func (h *Handler) handleBroadcast(c tele.Context) error {
	return h.reportError(c, h.conversation.BeginBroadcast(sender(c)), "broadcast")
}

// handleBan handles /ban <id> [reason]
func (h *Handler) handleBan(c tele.Context) error {
	userID, reason, err := parseBanArgs(c.Message().Payload)
	if err != nil {
		return c.Send(usageBan)
	}

	err = h.conversation.Ban(sender(c), userID, reason)
	if errors.Is(err, domain.ErrValidation) {
		return c.Send("❌ The owner cannot be banned.")
	}
	if err != nil {
		return h.reportError(c, err, "ban")
	}

	if reason == "" {
		reason = domain.DefaultBanReason
	}
	return c.Send(fmt.Sprintf("🚫 User %d banned.\nReason: %s", userID, reason))
}

// handleUnban handles /unban <id>
func (h *Handler) handleUnban(c tele.Context) error {
	userID, err := parseUserID(c.Message().Payload)
	if err != nil {
		return c.Send(usageUnban)
	}

	removed, err := h.conversation.Unban(sender(c), userID)
	if err != nil {
		return h.reportError(c, err, "unban")
	}
	if !removed {
		return c.Send(fmt.Sprintf("User %d was not banned.", userID))
	}
	return c.Send(fmt.Sprintf("✅ User %d unbanned.", userID))
}

// parseBanArgs splits "<id> [reason]"; the reason may contain spaces
func parseBanArgs(payload string) (int64, string, error) {
	idStr, reason, _ := strings.Cut(strings.TrimSpace(payload), " ")
	userID, err := parseUserID(idStr)
	if err != nil {
		return 0, "", err
	}
	return userID, strings.TrimSpace(reason), nil
}

func parseUserID(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("missing user id")
	}
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid user id %q: %w", s, err)
	}
	if id <= 0 {
		return 0, fmt.Errorf("invalid user id %d", id)
	}
	return id, nil
}
