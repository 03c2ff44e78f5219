// Package bot wires the Telegram transport: command routing, session
// middleware, and message formatting. Handlers translate chat commands into
// brokerage/AI calls and format the results back as Telegram messages.
package bot

import (
	"time"

	"github.com/sirupsen/logrus"
	tele "gopkg.in/telebot.v3"

	"github.com/akverma/kitegram/internal/ai"
	"github.com/akverma/kitegram/internal/config"
	"github.com/akverma/kitegram/internal/kite"
	"github.com/akverma/kitegram/internal/mfcache"
	"github.com/akverma/kitegram/internal/storage"
)

// Bot is the assembled Telegram bot with all its collaborators.
type Bot struct {
	tb          *tele.Bot
	store       *storage.Store
	kite        *kite.Client
	analyzer    *ai.Analyzer
	cache       *mfcache.Cache
	redirectURL string
}

// New builds the bot and registers every command handler.
func New(cfg *config.Config, store *storage.Store, kiteClient *kite.Client, analyzer *ai.Analyzer, cache *mfcache.Cache) (*Bot, error) {
	tb, err := tele.NewBot(tele.Settings{
		Token:  cfg.TelegramBotToken,
		Poller: &tele.LongPoller{Timeout: 10 * time.Second},
		OnError: func(err error, c tele.Context) {
			logrus.WithError(err).Error("unhandled bot error")
			if c != nil {
				_ = c.Send("⚠️ An unexpected error occurred. Please try again later.")
			}
		},
	})
	if err != nil {
		return nil, err
	}

	b := &Bot{
		tb:          tb,
		store:       store,
		kite:        kiteClient,
		analyzer:    analyzer,
		cache:       cache,
		redirectURL: cfg.KiteRedirectURL,
	}
	b.register()
	return b, nil
}

func (b *Bot) register() {
	b.tb.Use(b.attachSession)

	// Account
	b.tb.Handle("/start", b.handleStart)
	b.tb.Handle("/help", b.handleHelp)
	b.tb.Handle("/login", b.handleLogin)
	b.tb.Handle("/logout", b.handleLogout)

	// Portfolio
	b.tb.Handle("/holdings", b.handleHoldings, b.requireAuth)
	b.tb.Handle("/portfolio", b.handleHoldings, b.requireAuth)
	b.tb.Handle("/positions", b.handlePositions, b.requireAuth)
	b.tb.Handle("/balance", b.handleBalance, b.requireAuth)
	b.tb.Handle("/funds", b.handleBalance, b.requireAuth)
	b.tb.Handle("/account", b.handleBalance, b.requireAuth)

	// Trading
	b.tb.Handle("/buy", b.handlePlaceOrder, b.requireAuth)
	b.tb.Handle("/sell", b.handlePlaceOrder, b.requireAuth)
	b.tb.Handle("/orders", b.handleListOrders, b.requireAuth)
	b.tb.Handle("/orderstatus", b.handleOrderStatus, b.requireAuth)

	// Mutual funds
	b.tb.Handle("/mfholdings", b.handleMFHoldings, b.requireAuth)
	b.tb.Handle("/mutualfunds", b.handleMFHoldings, b.requireAuth)
	b.tb.Handle("/mforders", b.handleMFOrders, b.requireAuth)
	b.tb.Handle("/mforder", b.handleMFOrder, b.requireAuth)
	b.tb.Handle("/mfsips", b.handleMFSIPs, b.requireAuth)
	b.tb.Handle("/mfinstruments", b.handleMFInstruments, b.requireAuth)

	// AI analysis
	b.tb.Handle("/analyze", b.handleAnalyze, b.requireAuth)
	b.tb.Handle("/aiportfolio", b.handleAnalyze, b.requireAuth)

	// Plain text doubles as the request-token input channel.
	b.tb.Handle(tele.OnText, b.handleText)
}

// Start begins long polling and blocks until Stop is called.
func (b *Bot) Start() {
	logrus.Info("bot is running")
	b.tb.Start()
}

func (b *Bot) Stop() {
	b.tb.Stop()
}
