// Package face implements the points counter watch face: an event-driven
// state machine over a counter.State that renders to a Display and gives
// audio feedback through a Buzzer.
//
// The face does no I/O of its own. Every hardware or host concern is a
// collaborator interface declared here, so the whole package runs in tests
// against the fakes in fake.go.
package face

import "time"

// EventType is the kind tag of an event delivered by the host.
type EventType string

const (
	EventNone            EventType = "NONE"
	EventActivate        EventType = "ACTIVATE"
	EventTick            EventType = "TICK"
	EventLowEnergyUpdate EventType = "LOW_ENERGY_UPDATE"
	EventBackgroundTask  EventType = "BACKGROUND_TASK"
	EventTimeout         EventType = "TIMEOUT"

	EventLightButtonDown EventType = "LIGHT_BUTTON_DOWN"
	EventLightButtonUp   EventType = "LIGHT_BUTTON_UP"
	EventLightLongPress  EventType = "LIGHT_LONG_PRESS"
	EventLightLongUp     EventType = "LIGHT_LONG_UP"

	EventModeButtonDown EventType = "MODE_BUTTON_DOWN"
	EventModeButtonUp   EventType = "MODE_BUTTON_UP"
	EventModeLongPress  EventType = "MODE_LONG_PRESS"
	EventModeLongUp     EventType = "MODE_LONG_UP"

	EventAlarmButtonDown EventType = "ALARM_BUTTON_DOWN"
	EventAlarmButtonUp   EventType = "ALARM_BUTTON_UP"
	EventAlarmLongPress  EventType = "ALARM_LONG_PRESS"
	EventAlarmLongUp     EventType = "ALARM_LONG_UP"
)

// Event is a single host event.
type Event struct {
	Type EventType
	Time time.Time
}

// Position addresses a region of the display.
type Position string

const (
	PositionTop    Position = "TOP"
	PositionBottom Position = "BOTTOM"
)

// Indicator is a persistent glyph on the display.
type Indicator string

const IndicatorBell Indicator = "BELL"

// Note is a buzzer pitch.
type Note string

const (
	NoteC5Sharp Note = "C#5"
	NoteC6Sharp Note = "C#6"
	NoteE6      Note = "E6"
	NoteE7      Note = "E7"
)

// Frequency returns the pitch in Hz, or 0 for an unknown note.
func (n Note) Frequency() float64 {
	switch n {
	case NoteC5Sharp:
		return 554.37
	case NoteC6Sharp:
		return 1108.73
	case NoteE6:
		return 1318.51
	case NoteE7:
		return 2637.02
	}
	return 0
}

// ToneDuration is the length of every feedback tone.
const ToneDuration = 30 * time.Millisecond

// HomeFace is the face index the mode long press returns to.
const HomeFace = 0

// Display receives rendered text and indicator changes.
type Display interface {
	DisplayText(pos Position, text string)
	// DisplayTextWithFallback shows text, or fallback on displays that
	// cannot show the full string.
	DisplayTextWithFallback(pos Position, text, fallback string)
	SetIndicator(ind Indicator)
	ClearIndicator(ind Indicator)
}

// Buzzer plays feedback tones.
type Buzzer interface {
	PlayNote(note Note, d time.Duration)
}

// Buttons is a synchronous read of the current physical button levels.
type Buttons interface {
	ModePressed() bool
	LightPressed() bool
	AlarmPressed() bool
}

// Host is the face-lifecycle side of the runtime.
type Host interface {
	// Illuminate triggers the transient backlight.
	Illuminate()
	// MoveToFace requests a switch to the face at index.
	MoveToFace(index int)
	// DefaultLoopHandler handles events the face does not recognise.
	DefaultLoopHandler(ev Event) bool
	// ButtonShouldSound reports the current sound preference.
	ButtonShouldSound() bool
}
