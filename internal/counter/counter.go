// Package counter holds the two-page bounded counter.
// This package has NO external dependencies (no display, buzzer or GPIO).
// Operations report a Result instead of touching hardware; callers pick
// feedback and decide whether to re-render.
package counter

// PageCount is the number of independent counters.
const PageCount = 2

// Bounds for every page value (inclusive).
const (
	Min = -9
	Max = 99
)

// Result classifies the outcome of a counter operation.
type Result int

const (
	OK Result = iota
	AtCeiling
	AtFloor
)

func (r Result) String() string {
	switch r {
	case OK:
		return "ok"
	case AtCeiling:
		return "at-ceiling"
	case AtFloor:
		return "at-floor"
	}
	return "unknown"
}

// State is the per-face context. Page is always in [0, PageCount) and every
// value is within [Min, Max] after any operation returns.
type State struct {
	Page   int
	Values [PageCount]int
}

// New returns a zeroed state on page 0.
func New() *State {
	return &State{}
}

// Current returns the value of the active page.
func (s *State) Current() int {
	return s.Values[s.Page]
}

// Increment adds one to the active page unless it is already at Max.
func (s *State) Increment() Result {
	if s.Values[s.Page] >= Max {
		return AtCeiling
	}
	s.Values[s.Page]++
	return OK
}

// Decrement subtracts one from the active page unless it is already at Min.
func (s *State) Decrement() Result {
	if s.Values[s.Page] <= Min {
		return AtFloor
	}
	s.Values[s.Page]--
	return OK
}

// Reset zeroes the active page.
func (s *State) Reset() Result {
	s.Values[s.Page] = 0
	return OK
}

// NextPage advances to the next page, wrapping around.
func (s *State) NextPage() Result {
	s.Page = (s.Page + 1) % PageCount
	return OK
}

// Clamp limits v to [Min, Max].
func Clamp(v int) int {
	if v > Max {
		return Max
	}
	if v < Min {
		return Min
	}
	return v
}
