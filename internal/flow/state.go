package flow

import (
	"encoding/json"
	"fmt"

	"github.com/eamarbiyout/storebot/internal/models"
)

// StateNamespace is the conversation-store namespace holding calculator state.
const StateNamespace = "calc"

// Step identifies where in the input flow a conversation currently is.
// Serialized as strings so stored state stays debuggable.
type Step string

const (
	// StepIdle: no calculator flow active; free text falls back to the
	// main menu prompt.
	StepIdle Step = "idle"

	StepCategory Step = "category"
	StepMode     Step = "mode"

	// Dimension entry, shared by wet and flat categories.
	StepLength Step = "length"
	StepWidth  Step = "width"

	// Direct area entry for kitchen/bath.
	StepWallArea  Step = "wall_area"
	StepFloorArea Step = "floor_area"

	// Height confirmation branch, kitchen/bath only.
	StepHeightConfirm Step = "height_confirm"
	StepHeightEntry   Step = "height_entry"

	// Direct area entry for floor/flat.
	StepFlatArea Step = "flat_area"

	// Terminal per-space step offering the next actions.
	StepSummary Step = "summary"
)

// EntryMode distinguishes the two input paths.
type EntryMode string

const (
	ModeDimensions EntryMode = "dimensions"
	ModeDirectArea EntryMode = "area"
)

// Entry is the tagged variant of partially entered measurements. Exactly one
// of Dimensions/Area is set, according to Mode.
type Entry struct {
	Mode       EntryMode        `json:"mode"`
	Dimensions *DimensionsEntry `json:"dimensions,omitempty"`
	Area       *AreaEntry       `json:"area,omitempty"`
}

// DimensionsEntry holds the raw length/width path.
type DimensionsEntry struct {
	Length float64 `json:"length"`
	Width  float64 `json:"width"`
}

// AreaEntry holds the directly stated areas path.
type AreaEntry struct {
	Wall  float64 `json:"wall"`
	Floor float64 `json:"floor"`
}

// State is the complete per-conversation scratch state, loaded from and saved
// to the conversation store around every action. It is an explicit value, not
// ambient storage, so the state machine is testable in isolation.
type State struct {
	Step     Step            `json:"step"`
	Category models.Category `json:"category,omitempty"`
	Entry    *Entry          `json:"entry,omitempty"`

	// HeightM is the wall height used at finalization; defaulted when the
	// width/floor-area step completes and overridden by the height edit.
	HeightM float64 `json:"height_m,omitempty"`

	// Session accumulates finalized spaces until export or restart.
	Session *models.Session `json:"session,omitempty"`
}

func newState() *State {
	return &State{Step: StepIdle}
}

// session returns the lazily created session accumulator.
func (s *State) session() *models.Session {
	if s.Session == nil {
		s.Session = models.NewSession()
	}
	return s.Session
}

func decodeState(data []byte) (*State, error) {
	if data == nil {
		return newState(), nil
	}
	var s State
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to decode conversation state: %w", err)
	}
	if s.Step == "" {
		s.Step = StepIdle
	}
	return &s, nil
}

func encodeState(s *State) ([]byte, error) {
	data, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("failed to encode conversation state: %w", err)
	}
	return data, nil
}
