// Package flow implements the tile calculator's conversation state machine
// and session accumulator. Every inbound action loads the conversation's
// state from the store, advances it, and saves it back; the flow itself never
// talks to Telegram.
package flow

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/eamarbiyout/storebot/internal/metrics"
	"github.com/eamarbiyout/storebot/internal/models"
	"github.com/eamarbiyout/storebot/internal/pricing"
	"github.com/eamarbiyout/storebot/internal/render"
	"github.com/eamarbiyout/storebot/internal/store"
)

// ErrNoData is returned when an invoice export is requested for a session
// that holds no spaces. The session is left untouched.
var ErrNoData = errors.New("no accumulated spaces to export")

// InvoiceFileName is the delivery name of the exported document.
const InvoiceFileName = "فاتورة_السيراميك.pdf"

// User-facing prompts.
const (
	promptCalculatorTitle = "📊 حاسبة السيراميك — اختر النوع:"
	promptPickCategory    = "اختر من القائمة:"
	promptPickNewCategory = "اختر نوعًا جديدًا:"
	promptPickMode        = "اختر طريقة الإدخال:"
	promptLength          = "أدخل الطول بالمتر:"
	promptWidth           = "أدخل العرض بالمتر:"
	promptWallArea        = "أدخل مساحة الحائط (م²):"
	promptFloorArea       = "أدخل مساحة الأرضية (م²):"
	promptFlatArea        = "أدخل المساحة الإجمالية (م²):"
	promptHeightValue     = "أدخل الارتفاع المطلوب بالمتر (مثال 2.8):"
	promptHeightChoice    = "هل تريد تعديل الارتفاع أم المتابعة؟"

	replyInvalidMeter = "أدخل رقمًا صحيحًا بالمتر."
	replyInvalidArea  = "أدخل مساحة صحيحة (م²)."
	replyNoData       = "لا توجد بيانات بعد."
	replySessionFull  = "اكتمل الحد الأقصى للمساحات في هذه الفاتورة. اطبع الفاتورة أو ابدأ من جديد."
	replyExported     = "تم إنشاء الفاتورة ✅\nهل ترغب بالبدء من جديد أو العودة للقائمة الرئيسية؟"
	replyBackToMenu   = "تمت العودة إلى القائمة الرئيسية ✅"
	replyMenuFallback = "اختر من الأزرار بالأسفل، أو أرسل /tile لفتح حاسبة السيراميك."
)

// Engine drives the calculator for all conversations. Stateless itself; all
// per-conversation data lives in the store.
type Engine struct {
	store    store.Store
	renderer *render.Renderer
}

// New returns an engine backed by the given store and invoice renderer.
func New(st store.Store, r *render.Renderer) *Engine {
	return &Engine{store: st, renderer: r}
}

// Handle processes one action for one conversation and returns what to send
// back. Each conversation's actions must be handled one at a time; different
// conversations are independent.
func (e *Engine) Handle(ctx context.Context, conversationID int64, action Action) (Reply, error) {
	data, err := e.store.GetState(ctx, conversationID, StateNamespace)
	if err != nil {
		return Reply{}, fmt.Errorf("failed to load conversation %d: %w", conversationID, err)
	}
	state, err := decodeState(data)
	if err != nil {
		// Corrupt state: drop it and start over rather than wedging the
		// conversation forever.
		slog.Warn("Dropping undecodable conversation state", "conversation_id", conversationID, "error", err)
		state = newState()
	}

	metrics.Actions.WithLabelValues(string(action.Kind)).Inc()

	reply, clear := e.advance(state, action)

	if clear {
		if err := e.store.ClearState(ctx, conversationID, StateNamespace); err != nil {
			return Reply{}, fmt.Errorf("failed to clear conversation %d: %w", conversationID, err)
		}
		return reply, nil
	}

	encoded, err := encodeState(state)
	if err != nil {
		return Reply{}, err
	}
	if err := e.store.PutState(ctx, conversationID, StateNamespace, encoded); err != nil {
		return Reply{}, fmt.Errorf("failed to save conversation %d: %w", conversationID, err)
	}
	return reply, nil
}

// Export renders the invoice for the conversation's accumulated spaces and
// clears the session. Returns ErrNoData (leaving state untouched) when
// nothing has been accumulated.
func (e *Engine) Export(ctx context.Context, conversationID int64) ([]byte, error) {
	data, err := e.store.GetState(ctx, conversationID, StateNamespace)
	if err != nil {
		return nil, fmt.Errorf("failed to load conversation %d: %w", conversationID, err)
	}
	state, err := decodeState(data)
	if err != nil {
		return nil, err
	}
	if state.Session == nil || state.Session.Empty() {
		metrics.EmptyExports.Inc()
		return nil, ErrNoData
	}

	doc, err := e.renderer.Render(state.Session.Spaces)
	if err != nil {
		return nil, fmt.Errorf("failed to render invoice: %w", err)
	}

	if err := e.store.ClearState(ctx, conversationID, StateNamespace); err != nil {
		return nil, fmt.Errorf("failed to clear conversation %d: %w", conversationID, err)
	}
	metrics.InvoiceExports.Inc()
	return doc, nil
}

// advance applies one action to the state and returns the reply plus whether
// the stored state should be cleared instead of saved.
func (e *Engine) advance(s *State, action Action) (Reply, bool) {
	switch action.Kind {
	case ActionStart:
		// Session (if any) survives re-entry; only the step resets.
		s.Step = StepCategory
		s.Category = ""
		s.Entry = nil
		return Reply{Messages: []Message{
			{Text: promptCalculatorTitle, RemoveKeyboard: true},
			{Text: promptPickCategory, Buttons: categoryKeyboard()},
		}}, false

	case ActionSelectCategory:
		s.Category = action.Category
		s.Step = StepMode
		return Reply{Messages: []Message{
			{Text: promptPickMode, Buttons: modeKeyboard(action.Category)},
		}}, false

	case ActionSelectMode:
		return e.startEntry(s, action.Category, action.Mode), false

	case ActionMeasurement:
		return e.measurement(s, action.Text)

	case ActionEditHeight:
		if s.Step != StepHeightConfirm && s.Step != StepHeightEntry {
			return menuFallback(), false
		}
		s.Step = StepHeightEntry
		return Reply{Messages: []Message{textMessage(promptHeightValue)}}, false

	case ActionSkipHeight:
		if s.Step != StepHeightConfirm && s.Step != StepHeightEntry {
			return menuFallback(), false
		}
		return e.finalizeWet(s), false

	case ActionAddMore:
		s.Category = action.Category
		s.Entry = nil
		s.Step = StepMode
		return Reply{Messages: []Message{
			{Text: promptPickMode, Buttons: modeKeyboard(action.Category)},
		}}, false

	case ActionAddOther:
		s.Category = ""
		s.Entry = nil
		s.Step = StepCategory
		return Reply{Messages: []Message{
			{Text: promptPickNewCategory, Buttons: categoryKeyboard()},
		}}, false

	case ActionExport:
		return e.export(s)

	case ActionRestart:
		*s = *newState()
		s.Step = StepCategory
		return Reply{Messages: []Message{
			{Text: promptCalculatorTitle, RemoveKeyboard: true},
			{Text: promptPickCategory, Buttons: categoryKeyboard()},
		}}, false

	case ActionMainMenu:
		return Reply{Messages: []Message{
			{Text: replyBackToMenu, ToMainMenu: true},
		}}, true
	}

	return menuFallback(), false
}

// startEntry fixes the category and input mode and issues the first prompt of
// the chosen entry sub-flow.
func (e *Engine) startEntry(s *State, cat models.Category, mode EntryMode) Reply {
	s.Category = cat
	s.HeightM = 0
	s.Entry = &Entry{Mode: mode}

	switch {
	case cat.Wet() && mode == ModeDimensions:
		s.Entry.Dimensions = &DimensionsEntry{}
		s.Step = StepLength
		return Reply{Messages: []Message{textMessage(promptLength)}}
	case cat.Wet():
		s.Entry.Area = &AreaEntry{}
		s.Step = StepWallArea
		return Reply{Messages: []Message{textMessage(promptWallArea)}}
	case mode == ModeDimensions:
		s.Entry.Dimensions = &DimensionsEntry{}
		s.Step = StepLength
		return Reply{Messages: []Message{textMessage(promptLength)}}
	default:
		s.Entry.Area = &AreaEntry{}
		s.Step = StepFlatArea
		return Reply{Messages: []Message{textMessage(promptFlatArea)}}
	}
}

// measurement routes one line of text to the current numeric entry step.
// Invalid input re-prompts the same step without advancing.
func (e *Engine) measurement(s *State, text string) (Reply, bool) {
	if s.Entry == nil {
		// No entry in progress; treat the text as top-level chatter.
		return menuFallback(), false
	}
	v, ok := pricing.ParseMeasurement(text)

	switch s.Step {
	case StepLength:
		if !ok || v <= 0 {
			return reprompt(replyInvalidMeter), false
		}
		s.Entry.Dimensions.Length = v
		s.Step = StepWidth
		return Reply{Messages: []Message{textMessage(promptWidth)}}, false

	case StepWidth:
		if !ok || v <= 0 {
			return reprompt(replyInvalidMeter), false
		}
		s.Entry.Dimensions.Width = v
		if !s.Category.Wet() {
			return e.finalizeFlat(s, s.Entry.Dimensions.Length*v), false
		}
		s.HeightM = pricing.DefaultHeightM
		s.Step = StepHeightConfirm
		return Reply{Messages: []Message{
			textMessage(fmt.Sprintf("سيتم الحساب بارتفاع قياسي: %s م", fmtNum(pricing.DefaultHeightM))),
			{Text: promptHeightChoice, Buttons: heightKeyboard()},
		}}, false

	case StepWallArea:
		if !ok || v <= 0 {
			return reprompt(replyInvalidArea), false
		}
		s.Entry.Area.Wall = v
		s.Step = StepFloorArea
		return Reply{Messages: []Message{textMessage(promptFloorArea)}}, false

	case StepFloorArea:
		if !ok || v < 0 {
			return reprompt(replyInvalidArea), false
		}
		s.Entry.Area.Floor = v
		s.HeightM = pricing.DefaultHeightM
		s.Step = StepHeightConfirm
		perimeter := models.Round2(pricing.FromAreas(s.Entry.Area.Wall, v, s.HeightM).PerimeterM)
		return Reply{Messages: []Message{
			{
				Text: strings.Join([]string{
					fmt.Sprintf("سيتم حساب المحيط تلقائيًا من مساحة الحائط ÷ الارتفاع القياسي %sم.", fmtNum(s.HeightM)),
					fmt.Sprintf("المحيط المبدئي = %s متر.", fmtNum(perimeter)),
					promptHeightChoice,
				}, "\n"),
				Buttons: heightKeyboard(),
			},
		}}, false

	case StepHeightConfirm, StepHeightEntry:
		// Typing a number at the confirmation stage works like pressing
		// edit first: a valid positive value overrides the height, and
		// anything else is treated as a skip, finalizing with the
		// current height.
		var messages []Message
		if ok && v > 0 {
			s.HeightM = v
			messages = append(messages, textMessage(fmt.Sprintf("تم ضبط الارتفاع على %s م.", fmtNum(v))))
		}
		reply := e.finalizeWet(s)
		reply.Messages = append(messages, reply.Messages...)
		return reply, false

	case StepFlatArea:
		if !ok || v < 0 {
			return reprompt(replyInvalidArea), false
		}
		return e.finalizeFlat(s, v), false
	}

	// Free text outside any entry step falls back to the menu prompt.
	return menuFallback(), false
}

// finalizeWet computes the kitchen/bath space from the entered measurements,
// appends it to the session and emits the summary.
func (e *Engine) finalizeWet(s *State) Reply {
	if s.Entry == nil || (s.Entry.Dimensions == nil && s.Entry.Area == nil) {
		return menuFallback()
	}
	height := s.HeightM
	if height == 0 {
		height = pricing.DefaultHeightM
	}

	var derived pricing.Derived
	if s.Entry.Mode == ModeDirectArea && s.Entry.Area != nil {
		derived = pricing.FromAreas(s.Entry.Area.Wall, s.Entry.Area.Floor, height)
	} else {
		derived = pricing.FromDimensions(s.Entry.Dimensions.Length, s.Entry.Dimensions.Width, height)
	}

	name := s.session().NextName(s.Category)
	space := pricing.WetSpace(name, s.Category, derived)
	return e.appendAndSummarize(s, space)
}

// finalizeFlat builds the single-line floor/flat space for the given area.
func (e *Engine) finalizeFlat(s *State, area float64) Reply {
	name := s.session().NextName(s.Category)
	space := pricing.FlatSpace(name, s.Category, area)
	return e.appendAndSummarize(s, space)
}

func (e *Engine) appendAndSummarize(s *State, space models.SpaceInvoice) Reply {
	if err := s.session().Append(space); err != nil {
		slog.Warn("Session is full, refusing new space", "category", space.Category, "error", err)
		s.Step = StepSummary
		return Reply{Messages: []Message{
			{Text: replySessionFull, Buttons: afterSpaceKeyboard(space.Category)},
		}}
	}

	metrics.SpacesFinalized.WithLabelValues(string(space.Category)).Inc()
	s.Entry = nil
	s.Step = StepSummary
	return Reply{Messages: []Message{
		{Text: summarize(&space), Buttons: afterSpaceKeyboard(space.Category)},
	}}
}

// export renders the accumulated invoice. On an empty session the user gets a
// plain notice and the state is untouched.
func (e *Engine) export(s *State) (Reply, bool) {
	if s.Session == nil || s.Session.Empty() {
		metrics.EmptyExports.Inc()
		return Reply{Messages: []Message{textMessage(replyNoData)}}, false
	}

	doc, err := e.renderer.Render(s.Session.Spaces)
	if err != nil {
		// Rendering is in-memory; a failure here is a bug, not user
		// error. Keep the session so nothing is lost.
		slog.Error("Invoice rendering failed", "spaces", len(s.Session.Spaces), "error", err)
		return Reply{Messages: []Message{textMessage(replyNoData)}}, false
	}

	metrics.InvoiceExports.Inc()
	return Reply{
		Messages: []Message{
			{Text: replyExported, Buttons: restartKeyboard()},
		},
		Document: &Document{Name: InvoiceFileName, Bytes: doc},
	}, true
}

// summarize renders the per-space summary text shown right after
// finalization.
func summarize(space *models.SpaceInvoice) string {
	var b strings.Builder
	b.WriteString(space.Name)
	b.WriteString("\n")
	if space.Category.Wet() {
		fmt.Fprintf(&b, "• المحيط: %s م | الارتفاع: %s م\n", fmtNum(space.PerimeterMeters), fmtNum(space.HeightMeters))
		fmt.Fprintf(&b, "• الحائط: %s م² | الأرضية: %s م²\n", fmtNum(space.WallAreaM2), fmtNum(space.FloorAreaM2))
	}
	b.WriteString("\n")
	for _, line := range space.Lines {
		fmt.Fprintf(&b, "- %s: %s %s × %s = %.2f\n", line.Label, fmtNum(line.Quantity), line.Unit, fmtNum(line.UnitPrice), line.Total())
	}
	b.WriteString(strings.Repeat("—", 20))
	b.WriteString("\n")
	fmt.Fprintf(&b, "إجمالي %s: %.2f د.ل", space.Name, space.Total())
	return b.String()
}

func reprompt(text string) Reply {
	return Reply{Messages: []Message{textMessage(text)}}
}

func menuFallback() Reply {
	return Reply{Messages: []Message{{Text: replyMenuFallback, ToMainMenu: true}}}
}

// fmtNum renders a measurement with natural precision.
func fmtNum(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
