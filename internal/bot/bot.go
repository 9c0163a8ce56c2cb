// Package bot is the Telegram transport. It maps inbound updates onto the
// calculator flow, the menu responders, the request forms, and the offer
// archive, and turns flow replies back into Telegram messages.
package bot

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/eamarbiyout/storebot/internal/config"
	"github.com/eamarbiyout/storebot/internal/flow"
	"github.com/eamarbiyout/storebot/internal/metrics"
	"github.com/eamarbiyout/storebot/internal/offers"
	"github.com/eamarbiyout/storebot/internal/store"
)

// pollTimeout is the long-poll wait passed to getUpdates, in seconds.
const pollTimeout = 30

// Bot wires one Telegram bot account to the application services.
type Bot struct {
	api     *tgbotapi.BotAPI
	engine  *flow.Engine
	store   store.Store
	offers  *offers.Service
	profile config.Profile
	adminID int64
}

// New returns a bot ready to serve updates. adminChatID gates the archival
// commands and receives the startup notification; 0 disables both.
func New(api *tgbotapi.BotAPI, engine *flow.Engine, st store.Store, offersSvc *offers.Service, profile config.Profile, adminChatID int64) *Bot {
	return &Bot{
		api:     api,
		engine:  engine,
		store:   st,
		offers:  offersSvc,
		profile: profile,
		adminID: adminChatID,
	}
}

// Run serves updates over long polling until ctx is cancelled. Updates arrive
// on one channel and are handled in order, so each conversation sees its
// actions one at a time.
func (b *Bot) Run(ctx context.Context) error {
	b.NotifyStartup()

	u := tgbotapi.NewUpdate(0)
	u.Timeout = pollTimeout
	updates := b.api.GetUpdatesChan(u)

	slog.Info("Bot is polling for updates", "username", b.api.Self.UserName)
	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			return nil
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			b.HandleUpdate(ctx, update)
		}
	}
}

// HandleUpdate dispatches one update. Shared by the polling loop and the
// webhook server.
func (b *Bot) HandleUpdate(ctx context.Context, update tgbotapi.Update) {
	switch {
	case update.CallbackQuery != nil:
		metrics.Updates.WithLabelValues("callback").Inc()
		b.handleCallback(ctx, update.CallbackQuery)
	case update.Message != nil:
		metrics.Updates.WithLabelValues("message").Inc()
		b.handleMessage(ctx, update.Message)
	}
}

func (b *Bot) handleCallback(ctx context.Context, cq *tgbotapi.CallbackQuery) {
	if _, err := b.api.Request(tgbotapi.NewCallback(cq.ID, "")); err != nil {
		slog.Warn("Failed to ack callback", "error", err)
	}
	if cq.Message == nil {
		return
	}
	chatID := cq.Message.Chat.ID

	if strings.HasPrefix(cq.Data, offerNavPrefix) {
		b.handleOfferNav(ctx, cq)
		return
	}

	action, ok := flow.ParseCallback(cq.Data)
	if !ok {
		slog.Debug("Ignoring unknown callback", "data", cq.Data)
		return
	}
	b.dispatchFlow(ctx, chatID, action)
}

func (b *Bot) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID

	if msg.IsCommand() {
		b.handleCommand(ctx, msg)
		return
	}
	if msg.Text == "" {
		return
	}

	switch msg.Text {
	case btnCalculator:
		b.dispatchFlow(ctx, chatID, flow.Action{Kind: flow.ActionStart})
	case btnOffers:
		b.sendText(chatID, offersText(b.profile), mainKeyboard())
	case btnOffers60:
		b.showOffers(ctx, chatID)
	case btnQuote:
		b.startForm(ctx, chatID, formQuote)
	case btnTrack:
		b.startForm(ctx, chatID, formTrack)
	case btnLocation:
		b.sendText(chatID, locationText, linkKeyboard("🗺️ فتح الخريطة", b.profile.MapsLink))
	case btnHours:
		b.sendText(chatID, hoursText(b.profile), mainKeyboard())
	case btnWhatsApp:
		b.sendText(chatID, whatsappText, linkKeyboard("💬 فتح واتساب", b.profile.WhatsAppLink()))
	case btnInfo:
		b.sendText(chatID, infoText(b.profile), mainKeyboard())
	default:
		// Free text goes to an active form first, then to the calculator,
		// which falls back to a menu hint when idle.
		if handled := b.handleFormText(ctx, chatID, msg.Text); handled {
			return
		}
		b.dispatchFlow(ctx, chatID, flow.Action{Kind: flow.ActionMeasurement, Text: msg.Text})
	}
}

func (b *Bot) handleCommand(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID

	switch msg.Command() {
	case "start":
		b.resetConversation(ctx, chatID)
		b.sendText(chatID, welcomeText(b.profile), mainKeyboard())
	case "help":
		b.sendText(chatID, helpText, mainKeyboard())
	case "tile":
		b.dispatchFlow(ctx, chatID, flow.Action{Kind: flow.ActionStart})
	case "index_60", "index_60_missing", "check_60":
		b.handleArchiveCommand(ctx, msg)
	default:
		b.sendText(chatID, unknownCommandText, mainKeyboard())
	}
}

// resetConversation drops any in-progress calculator session and form.
func (b *Bot) resetConversation(ctx context.Context, chatID int64) {
	if err := b.store.ClearState(ctx, chatID, flow.StateNamespace); err != nil {
		slog.Warn("Failed to clear calculator state", "chat_id", chatID, "error", err)
	}
	if err := b.store.ClearState(ctx, chatID, formNamespace); err != nil {
		slog.Warn("Failed to clear form state", "chat_id", chatID, "error", err)
	}
}

func (b *Bot) dispatchFlow(ctx context.Context, chatID int64, action flow.Action) {
	reply, err := b.engine.Handle(ctx, chatID, action)
	if err != nil {
		slog.Error("Calculator action failed", "chat_id", chatID, "action", action.Kind, "error", err)
		b.sendText(chatID, errorText, mainKeyboard())
		return
	}
	b.sendReply(chatID, reply)
}

// sendReply maps one flow reply onto Telegram messages and an optional
// document.
func (b *Bot) sendReply(chatID int64, reply flow.Reply) {
	for _, m := range reply.Messages {
		out := tgbotapi.NewMessage(chatID, m.Text)
		switch {
		case len(m.Buttons) > 0:
			out.ReplyMarkup = inlineKeyboard(m.Buttons)
		case m.ToMainMenu:
			out.ReplyMarkup = mainKeyboard()
		case m.RemoveKeyboard:
			out.ReplyMarkup = tgbotapi.NewRemoveKeyboard(false)
		}
		b.send(out)
	}
	if reply.Document != nil {
		doc := tgbotapi.NewDocument(chatID, tgbotapi.FileBytes{
			Name:  reply.Document.Name,
			Bytes: reply.Document.Bytes,
		})
		b.send(doc)
	}
}

// inlineKeyboard converts flow buttons to a Telegram inline keyboard.
func inlineKeyboard(rows [][]flow.Button) tgbotapi.InlineKeyboardMarkup {
	var out [][]tgbotapi.InlineKeyboardButton
	for _, row := range rows {
		var line []tgbotapi.InlineKeyboardButton
		for _, btn := range row {
			line = append(line, tgbotapi.NewInlineKeyboardButtonData(btn.Label, btn.Data))
		}
		out = append(out, line)
	}
	return tgbotapi.NewInlineKeyboardMarkup(out...)
}

func linkKeyboard(label, url string) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonURL(label, url)),
	)
}

// UploadPhoto sends one local image and returns the Telegram file id of the
// largest stored size. Satisfies offers.Uploader.
func (b *Bot) UploadPhoto(chatID int64, path, caption string) (string, error) {
	photo := tgbotapi.NewPhoto(chatID, tgbotapi.FilePath(path))
	photo.Caption = caption
	sent, err := b.api.Send(photo)
	if err != nil {
		return "", err
	}
	if len(sent.Photo) == 0 {
		return "", fmt.Errorf("telegram returned no photo sizes")
	}
	return sent.Photo[len(sent.Photo)-1].FileID, nil
}

// NotifyStartup tells the admin chat the bot is up. Best effort.
func (b *Bot) NotifyStartup() {
	if b.adminID == 0 {
		return
	}
	msg := tgbotapi.NewMessage(b.adminID, "✅ بوت "+b.profile.Name+" يعمل الآن.")
	if _, err := b.api.Send(msg); err != nil {
		slog.Warn("Failed to notify admin", "error", err)
	}
}

func (b *Bot) sendText(chatID int64, text string, markup interface{}) {
	msg := tgbotapi.NewMessage(chatID, text)
	if markup != nil {
		msg.ReplyMarkup = markup
	}
	b.send(msg)
}

func (b *Bot) send(c tgbotapi.Chattable) {
	if _, err := b.api.Send(c); err != nil {
		slog.Error("Failed to send message", "error", err)
	}
}
