package flow

import (
	"strings"

	"github.com/eamarbiyout/storebot/internal/models"
)

// ActionKind enumerates the typed user actions the flow understands. The
// transport maps button presses and text messages onto these.
type ActionKind string

const (
	// ActionStart opens (or re-enters) the calculator at category choice.
	ActionStart ActionKind = "start"

	ActionSelectCategory ActionKind = "select_category"
	ActionSelectMode     ActionKind = "select_mode"

	// ActionMeasurement carries one line of free text to the current
	// numeric entry step.
	ActionMeasurement ActionKind = "measurement"

	// Height confirmation branch.
	ActionEditHeight ActionKind = "edit_height"
	ActionSkipHeight ActionKind = "skip_height"

	// Post-summary choices.
	ActionAddMore  ActionKind = "add_more"
	ActionAddOther ActionKind = "add_other"
	ActionExport   ActionKind = "export"
	ActionRestart  ActionKind = "restart"
	ActionMainMenu ActionKind = "main_menu"
)

// Action is one inbound user action.
type Action struct {
	Kind     ActionKind
	Category models.Category // SelectCategory, SelectMode, AddMore
	Mode     EntryMode       // SelectMode
	Text     string          // Measurement
}

// Callback data protocol shared with the transport. The flow emits these on
// buttons and parses them back into actions.
const (
	cbCategoryPrefix = "cat:"
	cbModePrefix     = "mode:"
	cbAddMorePrefix  = "add_more:"
	cbEditHeight     = "edit_height"
	cbSkipHeight     = "skip_height"
	cbAddOther       = "add_other"
	cbExport         = "export_pdf"
	cbRestart        = "restart_calc"
	cbMainMenu       = "go_main"
)

// ParseCallback maps a button callback payload to an action. ok is false for
// payloads the calculator does not own.
func ParseCallback(data string) (Action, bool) {
	switch {
	case strings.HasPrefix(data, cbCategoryPrefix):
		cat := models.Category(strings.TrimPrefix(data, cbCategoryPrefix))
		if !cat.Valid() {
			return Action{}, false
		}
		return Action{Kind: ActionSelectCategory, Category: cat}, true

	case strings.HasPrefix(data, cbModePrefix):
		parts := strings.Split(strings.TrimPrefix(data, cbModePrefix), ":")
		if len(parts) != 2 {
			return Action{}, false
		}
		cat := models.Category(parts[0])
		if !cat.Valid() {
			return Action{}, false
		}
		var mode EntryMode
		switch parts[1] {
		case "dim":
			mode = ModeDimensions
		case "area":
			mode = ModeDirectArea
		default:
			return Action{}, false
		}
		return Action{Kind: ActionSelectMode, Category: cat, Mode: mode}, true

	case strings.HasPrefix(data, cbAddMorePrefix):
		cat := models.Category(strings.TrimPrefix(data, cbAddMorePrefix))
		if !cat.Valid() {
			return Action{}, false
		}
		return Action{Kind: ActionAddMore, Category: cat}, true
	}

	switch data {
	case cbEditHeight:
		return Action{Kind: ActionEditHeight}, true
	case cbSkipHeight:
		return Action{Kind: ActionSkipHeight}, true
	case cbAddOther:
		return Action{Kind: ActionAddOther}, true
	case cbExport:
		return Action{Kind: ActionExport}, true
	case cbRestart:
		return Action{Kind: ActionRestart}, true
	case cbMainMenu:
		return Action{Kind: ActionMainMenu}, true
	}
	return Action{}, false
}
