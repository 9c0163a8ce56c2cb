package main

import (
	"context"
	"fmt"
	"log/slog"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/eamarbiyout/storebot/internal/arabictext"
	"github.com/eamarbiyout/storebot/internal/bot"
	"github.com/eamarbiyout/storebot/internal/config"
	"github.com/eamarbiyout/storebot/internal/flow"
	"github.com/eamarbiyout/storebot/internal/offers"
	"github.com/eamarbiyout/storebot/internal/render"
	"github.com/eamarbiyout/storebot/internal/store/sqlite"
)

// app holds the wired application, shared by the serve and webhook commands.
type app struct {
	cfg   config.Config
	store *sqlite.SQLiteStore
	bot   *bot.Bot
}

func newApp(ctx context.Context) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	profile, err := config.LoadProfile(cfg.ProfilePath)
	if err != nil {
		return nil, err
	}

	st, err := sqlite.New(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}
	slog.Info("Storage initialized", "database", cfg.DBPath)

	if err := st.SeedOrders(ctx, profile.Orders); err != nil {
		st.Close()
		return nil, fmt.Errorf("failed to seed orders: %w", err)
	}

	renderer := render.New(render.Options{
		FontPath: cfg.FontPath,
		LogoPath: cfg.LogoPath,
		Shape:    arabictext.Shape,
	})
	engine := flow.New(st, renderer)
	offersSvc := offers.New(st, cfg.OffersDir)

	api, err := tgbotapi.NewBotAPI(cfg.BotToken)
	if err != nil {
		st.Close()
		return nil, fmt.Errorf("failed to connect to telegram: %w", err)
	}
	slog.Info("Authorized on telegram", "username", api.Self.UserName)

	b := bot.New(api, engine, st, offersSvc, profile, cfg.AdminChatID)
	return &app{cfg: cfg, store: st, bot: b}, nil
}

func (a *app) Close() {
	if err := a.store.Close(); err != nil {
		slog.Error("Failed to close storage", "error", err)
	}
}
