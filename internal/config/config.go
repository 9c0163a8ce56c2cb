// Package config loads the bot's environment configuration and the store
// profile file holding the shop's public details and seed data.
package config

import (
	"fmt"
	"os"
	"strconv"
)

const (
	defaultDBPath      = "./data/storebot.db"
	defaultPort        = "8080"
	defaultFontPath    = "fonts/Amiri-Regular.ttf"
	defaultLogoPath    = "assets/logo.png"
	defaultOffersDir   = "images/60x60"
	defaultProfilePath = "store.yaml"
	defaultWebhookPath = "/telegram/webhook"
)

// Config holds application configuration sourced from environment variables.
type Config struct {
	// BotToken is the Telegram bot token. Required.
	BotToken string

	// AdminChatID receives the startup notification and may run the offer
	// archival commands. 0 disables both.
	AdminChatID int64

	DBPath      string
	Port        string
	FontPath    string
	LogoPath    string
	OffersDir   string
	ProfilePath string
	WebhookPath string
}

// Load reads environment variables and returns a populated Config.
// BOT_TOKEN is the only required variable.
func Load() (Config, error) {
	cfg := Config{
		BotToken:    os.Getenv("BOT_TOKEN"),
		DBPath:      getEnv("DB_PATH", defaultDBPath),
		Port:        getEnv("PORT", defaultPort),
		FontPath:    getEnv("FONT_PATH", defaultFontPath),
		LogoPath:    getEnv("LOGO_PATH", defaultLogoPath),
		OffersDir:   getEnv("OFFERS_DIR", defaultOffersDir),
		ProfilePath: getEnv("PROFILE_PATH", defaultProfilePath),
		WebhookPath: getEnv("WEBHOOK_PATH", defaultWebhookPath),
	}

	if cfg.BotToken == "" {
		return Config{}, fmt.Errorf("BOT_TOKEN is not set")
	}

	if raw := os.Getenv("ADMIN_CHAT_ID"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return Config{}, fmt.Errorf("ADMIN_CHAT_ID is not a chat id: %w", err)
		}
		cfg.AdminChatID = id
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
