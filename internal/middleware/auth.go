package middleware

import (
	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// OwnerOnly drops updates from anyone but the owner
func OwnerOnly(ownerID int64, logger *zap.Logger) tele.MiddlewareFunc {
	return func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			sender := c.Sender()
			if sender == nil || sender.ID != ownerID {
				var userID int64
				if sender != nil {
					userID = sender.ID
				}
				logger.Debug("Ignoring owner command from another user",
					zap.Int64("user_id", userID),
					zap.String("text", c.Text()),
				)
				if c.Callback() != nil {
					return c.Respond()
				}
				return nil
			}

			return next(c)
		}
	}
}

// PrivateOnly drops updates that do not come from a private chat
func PrivateOnly(logger *zap.Logger) tele.MiddlewareFunc {
	return func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			chat := c.Chat()
			if chat == nil || chat.Type != tele.ChatPrivate {
				if chat != nil {
					logger.Debug("Ignoring update outside a private chat",
						zap.Int64("chat_id", chat.ID),
						zap.String("chat_type", string(chat.Type)),
					)
				}
				return nil
			}

			return next(c)
		}
	}
}
