package telegram

import (
	"strconv"

	tele "gopkg.in/telebot.v3"

	"predlozhka/internal/domain"
)

// Client sends messages through the Telegram Bot API. All text is sent
// without a parse mode so that it round-trips byte for byte.
type Client struct {
	bot *tele.Bot
}

// NewClient wraps a telebot bot
func NewClient(bot *tele.Bot) *Client {
	return &Client{bot: bot}
}

// Send posts text, or a photo with caption, to chatID
func (c *Client) Send(chatID int64, content domain.Content, kb *domain.Keyboard) (domain.MessageRef, error) {
	msg, err := c.bot.Send(tele.ChatID(chatID), payload(content), options(kb)...)
	if err != nil {
		return domain.MessageRef{}, err
	}
	return domain.MessageRef{ChatID: msg.Chat.ID, MessageID: msg.ID}, nil
}

// Edit replaces the message at ref. Photo content is swapped as media
// together with its caption. A nil keyboard removes the controls.
func (c *Client) Edit(ref domain.MessageRef, content domain.Content, kb *domain.Keyboard) error {
	_, err := c.bot.Edit(Editable(ref), payload(content), options(kb)...)
	return err
}

// Delete removes the message at ref
func (c *Client) Delete(ref domain.MessageRef) error {
	return c.bot.Delete(Editable(ref))
}

// Copy re-sends the message at src to chatID without a forward header
func (c *Client) Copy(chatID int64, src domain.MessageRef) error {
	_, err := c.bot.Copy(tele.ChatID(chatID), Editable(src))
	return err
}

// Editable converts a message reference to a telebot editable
func Editable(ref domain.MessageRef) tele.StoredMessage {
	return tele.StoredMessage{
		MessageID: strconv.Itoa(ref.MessageID),
		ChatID:    ref.ChatID,
	}
}

// Ref converts a telebot message to a message reference
func Ref(msg *tele.Message) domain.MessageRef {
	return domain.MessageRef{ChatID: msg.Chat.ID, MessageID: msg.ID}
}

// Markup converts a keyboard to inline reply markup. Buttons carry their
// data verbatim so callbacks arrive exactly as declared.
func Markup(kb *domain.Keyboard) *tele.ReplyMarkup {
	if kb == nil {
		return nil
	}

	rows := make([][]tele.InlineButton, 0, len(*kb))
	for _, row := range *kb {
		buttons := make([]tele.InlineButton, 0, len(row))
		for _, b := range row {
			buttons = append(buttons, tele.InlineButton{Text: b.Text, Data: b.Data})
		}
		rows = append(rows, buttons)
	}
	return &tele.ReplyMarkup{InlineKeyboard: rows}
}

func payload(content domain.Content) interface{} {
	if content.HasPhoto() {
		return &tele.Photo{
			File:    tele.File{FileID: content.PhotoID},
			Caption: content.Text,
		}
	}
	return content.Text
}

func options(kb *domain.Keyboard) []interface{} {
	if kb == nil {
		return nil
	}
	return []interface{}{Markup(kb)}
}
