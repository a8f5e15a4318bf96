package handler

import (
	"strings"

	tele "gopkg.in/telebot.v3"

	"predlozhka/internal/service"
	"predlozhka/internal/telegram"
)

// handleInput feeds a private message to the user's dialogue
func (h *Handler) handleInput(c tele.Context) error {
	msg := c.Message()
	if msg == nil {
		return nil
	}

	// Unknown commands are not dialogue input
	if strings.HasPrefix(msg.Text, "/") {
		return nil
	}

	handled, err := h.conversation.HandleInput(sender(c), inputFromMessage(msg))
	if !handled {
		return nil
	}
	return h.reportError(c, err, "input")
}

// inputFromMessage extracts the dialogue input of a message: its text, or
// a photo with its caption
func inputFromMessage(msg *tele.Message) service.Input {
	in := service.Input{
		Ref:  telegram.Ref(msg),
		Text: msg.Text,
	}
	if msg.Photo != nil {
		in.PhotoID = msg.Photo.FileID
		in.Text = msg.Caption
		in.FromCaption = true
	} else if in.Text == "" {
		in.Text = msg.Caption
		in.FromCaption = true
	}
	return in
}
