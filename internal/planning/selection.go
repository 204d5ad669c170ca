package planning

import (
	"time"

	"github.com/noah-isme/trainer-planning-api/pkg/calendar"
)

// Phase is the state of a drag gesture.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseSelecting
)

func (p Phase) String() string {
	if p == PhaseSelecting {
		return "selecting"
	}
	return "idle"
}

// Range is a committed inclusive interval of days on one row.
type Range struct {
	Owner string
	From  time.Time
	To    time.Time
}

// Days enumerates the range.
func (r Range) Days() []time.Time {
	return calendar.Span(r.From, r.To)
}

// Selection tracks one drag gesture: idle, or selecting with an owner row,
// the anchor day and the day currently under the pointer.
// The zero value is idle.
type Selection struct {
	phase   Phase
	owner   string
	anchor  time.Time
	current time.Time
}

// Phase reports the current state.
func (s *Selection) Phase() Phase { return s.phase }

// Owner is the row being selected, empty when idle.
func (s *Selection) Owner() string { return s.owner }

// Begin anchors a gesture on day for owner. It is ignored unless idle.
func (s *Selection) Begin(owner string, day time.Time) bool {
	if s.phase != PhaseIdle || owner == "" {
		return false
	}
	d := calendar.Day(day)
	s.phase = PhaseSelecting
	s.owner = owner
	s.anchor = d
	s.current = d
	return true
}

// Extend moves the free end of the gesture. Days on other rows are ignored.
func (s *Selection) Extend(owner string, day time.Time) bool {
	if s.phase != PhaseSelecting || owner != s.owner {
		return false
	}
	s.current = calendar.Day(day)
	return true
}

// Bounds returns the ordered interval of the gesture in progress.
func (s *Selection) Bounds() (time.Time, time.Time, bool) {
	if s.phase != PhaseSelecting {
		return time.Time{}, time.Time{}, false
	}
	lo, hi := calendar.Ordered(s.anchor, s.current)
	return lo, hi, true
}

// Highlighted reports whether the cell (owner, day) is inside the gesture.
func (s *Selection) Highlighted(owner string, day time.Time) bool {
	if s.phase != PhaseSelecting || owner != s.owner {
		return false
	}
	return calendar.Between(day, s.anchor, s.current)
}

// Commit ends the gesture and returns the range captured at release.
func (s *Selection) Commit() (Range, bool) {
	lo, hi, ok := s.Bounds()
	if !ok {
		return Range{}, false
	}
	r := Range{Owner: s.owner, From: lo, To: hi}
	s.reset()
	return r, true
}

// Cancel ends the gesture without a range.
func (s *Selection) Cancel() {
	s.reset()
}

func (s *Selection) reset() {
	*s = Selection{}
}
