package bot

import (
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/eamarbiyout/storebot/internal/config"
)

// Main menu button labels. The reply keyboard sends these back as plain text.
const (
	btnCalculator = "🧮 حاسبة السيراميك"
	btnOffers     = "📰 أحدث العروض"
	btnOffers60   = "📰 أحدث العروض 60×60"
	btnQuote      = "🧾 طلب عرض سعر"
	btnTrack      = "📦 تتبّع الطلب"
	btnLocation   = "📍 الموقع"
	btnHours      = "🕘 أوقات العمل"
	btnWhatsApp   = "📞 واتساب مباشر"
	btnInfo       = "ℹ️ معلومات"
)

const (
	helpText = "الأوامر المتاحة:\n" +
		"/start — القائمة الرئيسية\n" +
		"/tile — حاسبة السيراميك\n" +
		"/help — هذه الرسالة\n\n" +
		"أو استخدم الأزرار بالأسفل."

	locationText = "📍 موقعنا على الخريطة:"

	whatsappText = "📞 تواصل معنا مباشرة عبر واتساب:"

	unknownCommandText = "أمر غير معروف. أرسل /help لعرض الأوامر."

	errorText = "حدث خطأ مؤقت، حاول مرة أخرى."
)

func mainKeyboard() tgbotapi.ReplyKeyboardMarkup {
	kb := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(btnCalculator),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(btnOffers),
			tgbotapi.NewKeyboardButton(btnOffers60),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(btnQuote),
			tgbotapi.NewKeyboardButton(btnTrack),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(btnLocation),
			tgbotapi.NewKeyboardButton(btnHours),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(btnWhatsApp),
			tgbotapi.NewKeyboardButton(btnInfo),
		),
	)
	kb.ResizeKeyboard = true
	return kb
}

func welcomeText(p config.Profile) string {
	return "أهلًا بك في " + p.Name + " 👋\nاختر من القائمة بالأسفل:"
}

func hoursText(p config.Profile) string {
	return "🕘 أوقات العمل:\n" + p.WorkingHours
}

func offersText(p config.Profile) string {
	var sb strings.Builder
	sb.WriteString("🔥 أحدث العروض:\n")
	for _, o := range p.Offers {
		sb.WriteString("• ")
		sb.WriteString(o)
		sb.WriteString("\n")
	}
	sb.WriteString("\n💬 للاستفسار تواصل عبر واتساب: ")
	sb.WriteString(p.WhatsAppLink())
	return sb.String()
}

func infoText(p config.Profile) string {
	var sb strings.Builder
	sb.WriteString("ℹ️ ")
	sb.WriteString(p.Name)
	sb.WriteString("\n\n")
	sb.WriteString(hoursText(p))
	sb.WriteString("\n\n📞 واتساب: ")
	sb.WriteString(p.WhatsAppLink())
	if p.MapsLink != "" {
		sb.WriteString("\n📍 الخريطة: ")
		sb.WriteString(p.MapsLink)
	}
	if p.FacebookPage != "" {
		sb.WriteString("\n📘 فيسبوك: ")
		sb.WriteString(p.FacebookPage)
	}
	if p.CatalogLink != "" {
		sb.WriteString("\n📖 الكتالوج: ")
		sb.WriteString(p.CatalogLink)
	}
	return sb.String()
}
