package bot

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	tele "gopkg.in/telebot.v3"

	"github.com/akverma/kitegram/internal/kite"
)

// sendKiteError maps brokerage API failures to user-facing replies. Expired
// tokens drop the stored session so the next command prompts a fresh login.
func (b *Bot) sendKiteError(c tele.Context, err error) error {
	var kerr *kite.Error
	if errors.As(err, &kerr) {
		if kerr.ErrorType == "TokenException" {
			if derr := b.store.DeleteSession(context.Background(), senderID(c)); derr != nil {
				logrus.WithError(derr).Warn("stale session cleanup failed")
			}
			return c.Send("⏰ Your Kite session has expired. Use /login to reconnect.")
		}
		return c.Send(fmt.Sprintf("❌ Kite API error: %s", kerr.Message))
	}
	logrus.WithError(err).Error("kite request failed")
	return c.Send("❌ Could not reach Kite right now. Please try again.")
}
