package models

import "fmt"

// MaxSpaces caps how many spaces one session can accumulate. The flow reports
// a fixed error message past this point instead of growing without bound.
const MaxSpaces = 200

// Session accumulates the priced spaces of one conversation between the first
// finalized space and the invoice export. One session per conversation; it is
// carried inside the conversation's stored state and never shared.
type Session struct {
	// Counters hold the per-category naming sequence. They only ever
	// increase within a conversation, even across "add different category"
	// round trips, so space names stay unique on the final invoice.
	Counters map[Category]int `json:"counters"`

	// Spaces in insertion order; this is also the invoice order.
	Spaces []SpaceInvoice `json:"spaces"`
}

// NewSession returns an empty session with zeroed counters.
func NewSession() *Session {
	return &Session{Counters: map[Category]int{}}
}

// NextName bumps the category counter and returns the display name for the
// next space of that category, e.g. "مطبخ 2".
func (s *Session) NextName(cat Category) string {
	if s.Counters == nil {
		s.Counters = map[Category]int{}
	}
	s.Counters[cat]++
	return fmt.Sprintf("%s %d", cat.Label(), s.Counters[cat])
}

// Append adds a finalized space. It fails once the session holds MaxSpaces.
func (s *Session) Append(space SpaceInvoice) error {
	if len(s.Spaces) >= MaxSpaces {
		return fmt.Errorf("session full: %d spaces", MaxSpaces)
	}
	s.Spaces = append(s.Spaces, space)
	return nil
}

// Empty reports whether nothing has been accumulated yet.
func (s *Session) Empty() bool {
	return len(s.Spaces) == 0
}

// GrandTotal sums the totals of all accumulated spaces.
func (s *Session) GrandTotal() float64 {
	var sum float64
	for i := range s.Spaces {
		sum += s.Spaces[i].Total()
	}
	return Round2(sum)
}
