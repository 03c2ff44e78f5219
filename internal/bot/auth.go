package bot

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	tele "gopkg.in/telebot.v3"

	"github.com/akverma/kitegram/internal/storage"
)

const requestTokenLen = 32

func (b *Bot) handleStart(c tele.Context) error {
	name := ""
	if s := c.Sender(); s != nil {
		name = s.FirstName
	}
	msg := fmt.Sprintf(
		"👋 Hi %s!\n\n"+
			"I connect your Zerodha Kite account to Telegram.\n\n"+
			"• /login — connect your account\n"+
			"• /holdings — view your portfolio\n"+
			"• /analyze — AI portfolio analysis\n"+
			"• /help — full command list",
		name,
	)
	return c.Send(msg)
}

func (b *Bot) handleHelp(c tele.Context) error {
	msg := "📖 *Commands*\n\n" +
		"*Account*\n" +
		"/login — connect your Zerodha account\n" +
		"/logout — disconnect\n\n" +
		"*Portfolio*\n" +
		"/holdings — equity holdings\n" +
		"/positions — open positions\n" +
		"/balance — funds and margins\n\n" +
		"*Trading*\n" +
		"/buy SYMBOL QTY [TYPE] [PRICE] [PRODUCT]\n" +
		"/sell SYMBOL QTY [TYPE] [PRICE] [PRODUCT]\n" +
		"/orders — recent orders\n" +
		"/orderstatus ORDER\\_ID — order status\n\n" +
		"*Mutual Funds*\n" +
		"/mfholdings — MF holdings\n" +
		"/mforders — MF orders\n" +
		"/mforder ORDER\\_ID — MF order detail\n" +
		"/mfsips — active SIPs\n" +
		"/mfinstruments QUERY — search MF instruments\n\n" +
		"*AI*\n" +
		"/analyze — portfolio analysis\n" +
		"/analyze detailed — in-depth analysis\n" +
		"/analyze QUESTION — ask about your portfolio\n" +
		"/analyze credits — check remaining credits"
	return c.Send(msg, tele.ModeMarkdown)
}

func (b *Bot) handleLogin(c tele.Context) error {
	if sess := sessionFrom(c); sess != nil {
		return c.Send(fmt.Sprintf("✅ You are already logged in as %s. Use /logout first to reconnect.", sess.UserName))
	}
	msg := fmt.Sprintf(
		"🔑 *Login to Zerodha*\n\n"+
			"1. Open this link and log in:\n%s\n\n"+
			"2. After login you will land on %s — copy the `request_token` "+
			"value from that URL.\n\n"+
			"3. Paste the token here as a plain message.",
		b.kite.LoginURL(), b.redirectURL,
	)
	return c.Send(msg, tele.ModeMarkdown)
}

func (b *Bot) handleLogout(c tele.Context) error {
	if err := b.store.DeleteSession(context.Background(), senderID(c)); err != nil {
		return err
	}
	return c.Send("👋 Logged out. Your session has been removed.")
}

// handleText treats any 32-character bare message from an unauthenticated
// user as a Kite request token and attempts the session exchange.
func (b *Bot) handleText(c tele.Context) error {
	text := strings.TrimSpace(c.Text())
	if strings.HasPrefix(text, "/") {
		return nil
	}
	if len(text) != requestTokenLen || strings.ContainsAny(text, " \n") {
		return nil
	}
	if kiteFrom(c) != nil {
		return c.Send("✅ You are already logged in.")
	}
	return b.completeLogin(c, text)
}

func (b *Bot) completeLogin(c tele.Context, requestToken string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	sess, err := b.kite.GenerateSession(ctx, requestToken)
	if err != nil {
		logrus.WithError(err).Warn("session exchange failed")
		return c.Send("❌ Login failed. The token may be expired — use /login to get a fresh link.")
	}

	saved := storage.Session{
		AccessToken: sess.AccessToken,
		PublicToken: sess.PublicToken,
		KiteUserID:  sess.UserID,
		UserName:    sess.UserName,
		AvatarURL:   sess.AvatarURL,
	}
	if err := b.store.SaveSession(ctx, senderID(c), saved); err != nil {
		return err
	}

	logrus.WithField("kite_user", sess.UserID).Info("user logged in")
	return c.Send(fmt.Sprintf("✅ Welcome, %s! Your Zerodha account (%s) is connected.\n\nTry /holdings to see your portfolio.", sess.UserName, sess.UserID))
}
