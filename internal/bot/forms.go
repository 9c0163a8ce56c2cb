package bot

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/eamarbiyout/storebot/internal/config"
	"github.com/eamarbiyout/storebot/internal/models"
)

// formNamespace keys the short question-answer forms in the state store,
// separate from the calculator's namespace.
const formNamespace = "form"

type formKind string

const (
	formQuote formKind = "quote"
	formTrack formKind = "track"
)

type formState struct {
	Kind   formKind          `json:"kind"`
	Step   int               `json:"step"`
	Fields map[string]string `json:"fields,omitempty"`
}

// quoteSteps is the quote request questionnaire, asked in order.
var quoteSteps = []struct {
	key    string
	prompt string
}{
	{"product", "ما نوع المنتج المطلوب؟ (بلاط، أطقم حمّام، خلاطات...)"},
	{"area", "ما المساحة التقريبية (م²)؟ أو اكتب: غير محدد"},
	{"quantity", "الكمية المطلوبة؟ أو اكتب: غير محدد"},
	{"specs", "مواصفات إضافية؟ (مقاس، لون، ماركة...)"},
	{"customer", "الاسم الكريم؟"},
	{"phone", "رقم الهاتف للتواصل؟"},
	{"address", "المدينة / منطقة التسليم؟"},
	{"notes", "ملاحظات أخيرة؟ أو اكتب: لا يوجد"},
}

const (
	trackPrompt = "أدخل رقم الطلب (مثال: EB-2510-001):"

	quoteDoneText = "تم تجهيز الطلب ✅\nاضغط الزر لإرساله مباشرة عبر واتساب:"
)

// startForm opens a form for the chat, replacing any form in progress.
func (b *Bot) startForm(ctx context.Context, chatID int64, kind formKind) {
	st := formState{Kind: kind, Fields: map[string]string{}}
	if err := b.saveForm(ctx, chatID, st); err != nil {
		slog.Error("Failed to start form", "chat_id", chatID, "kind", kind, "error", err)
		b.sendText(chatID, errorText, mainKeyboard())
		return
	}

	switch kind {
	case formQuote:
		msg := tgbotapi.NewMessage(chatID, "🧾 طلب عرض سعر — "+quoteSteps[0].prompt)
		msg.ReplyMarkup = tgbotapi.NewRemoveKeyboard(false)
		b.send(msg)
	case formTrack:
		msg := tgbotapi.NewMessage(chatID, trackPrompt)
		msg.ReplyMarkup = tgbotapi.NewRemoveKeyboard(false)
		b.send(msg)
	}
}

// handleFormText advances an in-progress form with one answer. Returns false
// when no form is active for the chat.
func (b *Bot) handleFormText(ctx context.Context, chatID int64, text string) bool {
	data, err := b.store.GetState(ctx, chatID, formNamespace)
	if err != nil {
		slog.Error("Failed to load form state", "chat_id", chatID, "error", err)
		return false
	}
	if data == nil {
		return false
	}

	var st formState
	if err := json.Unmarshal(data, &st); err != nil {
		slog.Warn("Dropping undecodable form state", "chat_id", chatID, "error", err)
		b.clearForm(ctx, chatID)
		return false
	}

	switch st.Kind {
	case formQuote:
		b.advanceQuote(ctx, chatID, st, text)
	case formTrack:
		b.finishTrack(ctx, chatID, text)
	default:
		b.clearForm(ctx, chatID)
		return false
	}
	return true
}

func (b *Bot) advanceQuote(ctx context.Context, chatID int64, st formState, answer string) {
	if st.Step < 0 || st.Step >= len(quoteSteps) {
		b.clearForm(ctx, chatID)
		b.sendText(chatID, errorText, mainKeyboard())
		return
	}
	if st.Fields == nil {
		st.Fields = map[string]string{}
	}
	st.Fields[quoteSteps[st.Step].key] = strings.TrimSpace(answer)
	st.Step++

	if st.Step < len(quoteSteps) {
		if err := b.saveForm(ctx, chatID, st); err != nil {
			slog.Error("Failed to save form state", "chat_id", chatID, "error", err)
			b.sendText(chatID, errorText, mainKeyboard())
			return
		}
		b.sendText(chatID, quoteSteps[st.Step].prompt, nil)
		return
	}

	b.clearForm(ctx, chatID)
	summary := quoteSummary(b.profile, st.Fields, time.Now())

	msg := tgbotapi.NewMessage(chatID, quoteDoneText+"\n\n"+summary)
	msg.ReplyMarkup = linkKeyboard("📤 إرسال عبر واتساب", b.profile.WhatsAppPrefill(summary))
	b.send(msg)
	b.sendText(chatID, "يمكنك المتابعة من القائمة:", mainKeyboard())
}

func (b *Bot) finishTrack(ctx context.Context, chatID int64, code string) {
	b.clearForm(ctx, chatID)

	order, err := b.store.GetOrder(ctx, strings.TrimSpace(code))
	if err != nil {
		slog.Error("Order lookup failed", "chat_id", chatID, "error", err)
		b.sendText(chatID, errorText, mainKeyboard())
		return
	}
	b.sendText(chatID, orderStatusText(order, strings.TrimSpace(code), b.profile), mainKeyboard())
}

// quoteSummary builds the WhatsApp-ready quote request text.
func quoteSummary(p config.Profile, fields map[string]string, now time.Time) string {
	var sb strings.Builder
	sb.WriteString("🧾 طلب عرض سعر — ")
	sb.WriteString(p.Name)
	sb.WriteString("\nالتاريخ: ")
	sb.WriteString(now.Format("2006-01-02 15:04"))
	sb.WriteString("\n")

	lines := []struct{ key, label string }{
		{"product", "المنتج"},
		{"area", "المساحة"},
		{"quantity", "الكمية"},
		{"specs", "المواصفات"},
		{"customer", "الاسم"},
		{"phone", "الهاتف"},
		{"address", "المنطقة"},
		{"notes", "ملاحظات"},
	}
	for _, l := range lines {
		sb.WriteString(l.label)
		sb.WriteString(": ")
		if v := fields[l.key]; v != "" {
			sb.WriteString(v)
		} else {
			sb.WriteString("غير محدد")
		}
		sb.WriteString("\n")
	}
	return strings.TrimRight(sb.String(), "\n")
}

// orderStatusText formats a tracking answer. order may be nil (unknown code).
func orderStatusText(order *models.Order, code string, p config.Profile) string {
	if order == nil {
		return "لم يتم العثور على طلب بالرقم " + code + ".\n" +
			"تأكد من الرقم أو تواصل معنا عبر واتساب: " + p.WhatsAppLink()
	}

	var sb strings.Builder
	sb.WriteString("📦 الطلب ")
	sb.WriteString(order.Code)
	sb.WriteString("\nالحالة: ")
	sb.WriteString(order.Status)
	if order.ETA != "" && order.ETA != "-" {
		sb.WriteString("\nالتسليم المتوقع: ")
		sb.WriteString(order.ETA)
	}
	if order.Note != "" {
		sb.WriteString("\nملاحظة: ")
		sb.WriteString(order.Note)
	}
	return sb.String()
}

func (b *Bot) saveForm(ctx context.Context, chatID int64, st formState) error {
	data, err := json.Marshal(st)
	if err != nil {
		return err
	}
	return b.store.PutState(ctx, chatID, formNamespace, data)
}

func (b *Bot) clearForm(ctx context.Context, chatID int64) {
	if err := b.store.ClearState(ctx, chatID, formNamespace); err != nil {
		slog.Warn("Failed to clear form state", "chat_id", chatID, "error", err)
	}
}
