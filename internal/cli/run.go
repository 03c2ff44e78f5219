package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"

	"github.com/akverma/kitegram/internal/ai"
	"github.com/akverma/kitegram/internal/bot"
	"github.com/akverma/kitegram/internal/config"
	"github.com/akverma/kitegram/internal/kite"
	"github.com/akverma/kitegram/internal/mfcache"
	"github.com/akverma/kitegram/internal/storage"
)

// runBot wires every component together and blocks until SIGINT/SIGTERM.
func runBot(debug bool, envFile string) error {
	var envFiles []string
	if envFile != "" {
		envFiles = append(envFiles, envFile)
	}
	cfg, err := config.Load(envFiles...)
	if err != nil {
		return err
	}
	setupLogging(debug || cfg.Debug)

	store, err := storage.Open(cfg.DBFile)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer store.Close()
	logrus.WithField("db", cfg.DBFile).Info("database ready")

	kiteClient := kite.New(cfg.KiteAPIKey, cfg.KiteAPISecret)

	ctx := context.Background()
	gemini, err := ai.NewGemini(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
	if err != nil {
		return fmt.Errorf("init gemini: %w", err)
	}
	defer gemini.Close()
	if gemini.Enabled() {
		logrus.WithField("model", cfg.GeminiModel).Info("ai analysis enabled")
	} else {
		logrus.Info("ai analysis disabled (no GEMINI_API_KEY)")
	}
	analyzer := ai.NewAnalyzer(gemini)

	cache := mfcache.New()

	b, err := bot.New(cfg, store, kiteClient, analyzer, cache)
	if err != nil {
		return fmt.Errorf("init bot: %w", err)
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-stop
		logrus.WithField("signal", sig.String()).Info("shutting down")
		b.Stop()
	}()

	b.Start()
	return nil
}
