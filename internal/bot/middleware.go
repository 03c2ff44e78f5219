package bot

import (
	"context"
	"strconv"

	"github.com/sirupsen/logrus"
	tele "gopkg.in/telebot.v3"

	"github.com/akverma/kitegram/internal/kite"
	"github.com/akverma/kitegram/internal/storage"
)

const (
	ctxKeyKite    = "kite"
	ctxKeySession = "session"
)

// attachSession loads the sender's stored session, if any, and stashes an
// authenticated kite client on the request context for downstream handlers.
func (b *Bot) attachSession(next tele.HandlerFunc) tele.HandlerFunc {
	return func(c tele.Context) error {
		if sender := c.Sender(); sender != nil {
			sess, err := b.store.GetSession(context.Background(), senderID(c))
			if err != nil {
				logrus.WithError(err).Warn("session lookup failed")
			} else if sess != nil && sess.AccessToken != "" {
				c.Set(ctxKeySession, sess)
				c.Set(ctxKeyKite, b.kite.WithAccessToken(sess.AccessToken))
			}
		}
		return next(c)
	}
}

// requireAuth rejects commands from users without an active Kite session.
func (b *Bot) requireAuth(next tele.HandlerFunc) tele.HandlerFunc {
	return func(c tele.Context) error {
		if kiteFrom(c) == nil {
			return c.Send("🔒 You are not logged in. Use /login to connect your Zerodha account.")
		}
		return next(c)
	}
}

func senderID(c tele.Context) string {
	return strconv.FormatInt(c.Sender().ID, 10)
}

func kiteFrom(c tele.Context) *kite.Client {
	cl, _ := c.Get(ctxKeyKite).(*kite.Client)
	return cl
}

func sessionFrom(c tele.Context) *storage.Session {
	s, _ := c.Get(ctxKeySession).(*storage.Session)
	return s
}
