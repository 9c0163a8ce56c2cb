package flow

import "github.com/eamarbiyout/storebot/internal/models"

// Button is one inline choice offered to the user. Data round-trips through
// the transport back into ParseCallback.
type Button struct {
	Label string
	Data  string
}

// Message is one outbound text with optional inline buttons. A step may emit
// several messages (e.g. a notice followed by the next prompt).
type Message struct {
	Text    string
	Buttons [][]Button

	// ToMainMenu asks the transport to attach its top-level menu keyboard.
	ToMainMenu bool

	// RemoveKeyboard asks the transport to drop any reply keyboard, used
	// when the calculator takes over the conversation.
	RemoveKeyboard bool
}

// Document is a rendered invoice handed to the transport for delivery.
type Document struct {
	Name  string
	Bytes []byte
}

// Reply is everything the flow wants sent in response to one action.
type Reply struct {
	Messages []Message
	Document *Document
}

func textMessage(text string) Message {
	return Message{Text: text}
}

func categoryKeyboard() [][]Button {
	return [][]Button{
		{
			{Label: "🛁 حمام", Data: cbCategoryPrefix + string(models.CategoryBath)},
			{Label: "🍳 مطبخ", Data: cbCategoryPrefix + string(models.CategoryKitchen)},
		},
		{
			{Label: "🏠 أرضيات فقط", Data: cbCategoryPrefix + string(models.CategoryFloor)},
			{Label: "🧱 مساحات مسطّحة", Data: cbCategoryPrefix + string(models.CategoryFlat)},
		},
	}
}

func modeKeyboard(cat models.Category) [][]Button {
	return [][]Button{
		{{Label: "📏 إدخال الأبعاد (ط × ع)", Data: cbModePrefix + string(cat) + ":dim"}},
		{{Label: "🔢 إدخال المساحة مباشرة", Data: cbModePrefix + string(cat) + ":area"}},
	}
}

func heightKeyboard() [][]Button {
	return [][]Button{{
		{Label: "🔧 تعديل الارتفاع", Data: cbEditHeight},
		{Label: "متابعة", Data: cbSkipHeight},
	}}
}

func afterSpaceKeyboard(cat models.Category) [][]Button {
	return [][]Button{
		{{Label: "➕ إضافة " + cat.Label() + " أخرى", Data: cbAddMorePrefix + string(cat)}},
		{{Label: "➕ إضافة نوع آخر", Data: cbAddOther}},
		{{Label: "🧾 عرض / حفظ PDF إجمالي", Data: cbExport}},
		{{Label: "🏠 القائمة الرئيسية", Data: cbMainMenu}},
	}
}

func restartKeyboard() [][]Button {
	return [][]Button{
		{{Label: "🔁 بدء جديد (حاسبة)", Data: cbRestart}},
		{{Label: "🏠 القائمة الرئيسية", Data: cbMainMenu}},
		{{Label: "➕ إضافة نوع آخر", Data: cbAddOther}},
	}
}
