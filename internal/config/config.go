package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds everything the bot needs at startup. Values come from the
// environment, with a .env file loaded first when present.
type Config struct {
	TelegramBotToken string
	KiteAPIKey       string
	KiteAPISecret    string
	KiteRedirectURL  string

	// DBFile is the SQLite database path.
	DBFile string

	// Gemini is optional; an empty key disables AI analysis.
	GeminiAPIKey string
	GeminiModel  string

	Debug bool
}

const (
	defaultDBFile      = "kite_bot.db"
	defaultGeminiModel = "gemini-2.0-flash"
)

var requiredVars = []string{
	"TELEGRAM_BOT_TOKEN",
	"KITE_API_KEY",
	"KITE_API_SECRET",
	"KITE_REDIRECT_URL",
}

// Load reads configuration from the environment. An explicit .env path may be
// given; otherwise .env in the working directory is tried. Missing required
// variables make startup fail with a single error naming all of them.
func Load(envFiles ...string) (*Config, error) {
	_ = godotenv.Load(envFiles...)

	var missing []string
	for _, key := range requiredVars {
		if os.Getenv(key) == "" {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}

	cfg := &Config{
		TelegramBotToken: os.Getenv("TELEGRAM_BOT_TOKEN"),
		KiteAPIKey:       os.Getenv("KITE_API_KEY"),
		KiteAPISecret:    os.Getenv("KITE_API_SECRET"),
		KiteRedirectURL:  os.Getenv("KITE_REDIRECT_URL"),

		DBFile:       defaultDBFile,
		GeminiAPIKey: os.Getenv("GEMINI_API_KEY"),
		GeminiModel:  defaultGeminiModel,
	}

	if val := os.Getenv("DB_FILE"); val != "" {
		cfg.DBFile = val
	}
	if val := os.Getenv("GEMINI_MODEL"); val != "" {
		cfg.GeminiModel = val
	}
	if val := os.Getenv("DEBUG"); val != "" {
		cfg.Debug, _ = strconv.ParseBool(val)
	}

	return cfg, nil
}

// AIEnabled reports whether the Gemini integration is configured.
func (c *Config) AIEnabled() bool {
	return c.GeminiAPIKey != ""
}
