package bot

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/eamarbiyout/storebot/internal/offers"
)

// offerNavPrefix marks the browsing callbacks: "offer60:<index>" jumps to a
// page, "offer60:back" returns to the main menu.
const offerNavPrefix = "offer60:"

const (
	noOffersText   = "لا توجد عروض مؤرشفة بعد."
	adminOnlyText  = "هذه الأوامر للإدارة فقط."
	backToMenuText = "تمت العودة إلى القائمة الرئيسية ✅"
	maxListedCodes = 20
)

// showOffers opens the archive browser at its first page.
func (b *Bot) showOffers(ctx context.Context, chatID int64) {
	offer, total, err := b.offers.Page(ctx, 0)
	if err != nil {
		b.sendText(chatID, noOffersText, mainKeyboard())
		return
	}

	photo := tgbotapi.NewPhoto(chatID, tgbotapi.FileID(offer.FileID))
	photo.Caption = b.offerCaption(offer.Code, 0, total)
	photo.ParseMode = tgbotapi.ModeHTML
	photo.ReplyMarkup = offerNavKeyboard(0, total)
	b.send(photo)
}

// handleOfferNav serves the prev/next/back buttons under an offer photo.
func (b *Bot) handleOfferNav(ctx context.Context, cq *tgbotapi.CallbackQuery) {
	chatID := cq.Message.Chat.ID
	arg := strings.TrimPrefix(cq.Data, offerNavPrefix)

	if arg == "back" {
		b.sendText(chatID, backToMenuText, mainKeyboard())
		return
	}

	idx, err := strconv.Atoi(arg)
	if err != nil {
		slog.Debug("Ignoring malformed offer callback", "data", cq.Data)
		return
	}
	offer, total, err := b.offers.Page(ctx, idx)
	if err != nil {
		b.sendText(chatID, noOffersText, mainKeyboard())
		return
	}

	media := tgbotapi.NewInputMediaPhoto(tgbotapi.FileID(offer.FileID))
	media.Caption = b.offerCaption(offer.Code, idx, total)
	media.ParseMode = tgbotapi.ModeHTML

	markup := offerNavKeyboard(idx, total)
	edit := tgbotapi.EditMessageMediaConfig{
		BaseEdit: tgbotapi.BaseEdit{
			ChatID:      chatID,
			MessageID:   cq.Message.MessageID,
			ReplyMarkup: &markup,
		},
		Media: media,
	}
	if _, err := b.api.Request(edit); err != nil {
		// Editing fails on old messages; fall back to a fresh photo.
		slog.Warn("Offer edit failed, sending new photo", "error", err)
		photo := tgbotapi.NewPhoto(chatID, tgbotapi.FileID(offer.FileID))
		photo.Caption = b.offerCaption(offer.Code, idx, total)
		photo.ParseMode = tgbotapi.ModeHTML
		photo.ReplyMarkup = markup
		b.send(photo)
	}
}

func (b *Bot) offerCaption(code string, idx, total int) string {
	return fmt.Sprintf("🧱 عرض <b>%s</b> — %s\n(%d من %d)\n💬 اطلبه بذكر رقم العرض.",
		code, b.offers.Size(), idx+1, total)
}

func offerNavKeyboard(idx, total int) tgbotapi.InlineKeyboardMarkup {
	var nav []tgbotapi.InlineKeyboardButton
	if idx > 0 {
		nav = append(nav, tgbotapi.NewInlineKeyboardButtonData("⬅️ السابق", offerNavPrefix+strconv.Itoa(idx-1)))
	}
	if idx < total-1 {
		nav = append(nav, tgbotapi.NewInlineKeyboardButtonData("التالي ➡️", offerNavPrefix+strconv.Itoa(idx+1)))
	}

	rows := [][]tgbotapi.InlineKeyboardButton{}
	if len(nav) > 0 {
		rows = append(rows, nav)
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("🏠 القائمة الرئيسية", offerNavPrefix+"back"),
	))
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// handleArchiveCommand runs the admin-only archival commands.
func (b *Bot) handleArchiveCommand(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID
	if b.adminID == 0 || chatID != b.adminID {
		b.sendText(chatID, adminOnlyText, nil)
		return
	}

	switch msg.Command() {
	case "index_60":
		report, err := b.offers.IndexAll(ctx, chatID, b)
		b.sendText(chatID, archiveReportText(report, err), nil)
	case "index_60_missing":
		report, err := b.offers.IndexMissing(ctx, chatID, b)
		b.sendText(chatID, archiveReportText(report, err), nil)
	case "check_60":
		check, err := b.offers.Check(ctx)
		b.sendText(chatID, archiveCheckText(check, err), nil)
	}
}

func archiveReportText(report offers.Report, err error) string {
	if err != nil {
		return "فشلت الأرشفة: " + err.Error()
	}
	text := fmt.Sprintf("تمت أرشفة %d صورة.", report.Indexed)
	if len(report.Failures) > 0 {
		text += fmt.Sprintf("\nفشل %d:", len(report.Failures))
		for i, f := range report.Failures {
			if i == maxListedCodes {
				text += "\n..."
				break
			}
			text += "\n• " + f.Code
		}
	}
	return text
}

func archiveCheckText(check offers.CheckReport, err error) string {
	if err != nil {
		return "فشل الفحص: " + err.Error()
	}
	text := fmt.Sprintf("في المجلد: %d\nمؤرشف: %d", check.InDir, check.Archived)
	text += "\nغير مؤرشف: " + joinOrDash(check.Missing)
	text += "\nمؤرشف بلا ملف: " + joinOrDash(check.Extra)
	return text
}

func joinOrDash(codes []string) string {
	if len(codes) == 0 {
		return "—"
	}
	if len(codes) > maxListedCodes {
		return strings.Join(codes[:maxListedCodes], ", ") + " ..."
	}
	return strings.Join(codes, ", ")
}
