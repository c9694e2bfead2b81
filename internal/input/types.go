// Package input turns sampled button levels into face events.
// This package has NO external dependencies (no GPIO, MQTT, OS, or time.Sleep).
// Time is always injectable via time.Time parameters.
package input

import (
	"time"

	"github.com/sweeney/points-face/internal/face"
)

// Level is the debounced state of a single button.
type Level string

const (
	LevelPressed  Level = "PRESSED"
	LevelReleased Level = "RELEASED"
)

// Button identifies one of the three physical buttons.
type Button string

const (
	ButtonLight Button = "LIGHT"
	ButtonMode  Button = "MODE"
	ButtonAlarm Button = "ALARM"
)

// buttonOrder is the order events are emitted when several buttons change
// in the same sample.
var buttonOrder = [...]Button{ButtonLight, ButtonMode, ButtonAlarm}

// ButtonState tracks debounce and hold state for a single button.
type ButtonState struct {
	// Current stable (debounced) level
	Stable Level
	// Pending level during debounce
	Pending Level
	// Time when pending level was first observed
	PendingSince time.Time
	// Whether we have established a baseline
	Baselined bool
	// Armed is true when the press edge was seen after baseline; a button
	// already held at startup produces no events until released.
	Armed bool
	// Time the current press became stable
	PressedAt time.Time
	// Whether the long press event has fired for the current press
	LongFired bool
}

// Sample represents a single reading of all buttons.
type Sample struct {
	Light bool // true = pressed
	Mode  bool
	Alarm bool
	Time  time.Time
}

func (s Sample) pressed(b Button) bool {
	switch b {
	case ButtonLight:
		return s.Light
	case ButtonMode:
		return s.Mode
	case ButtonAlarm:
		return s.Alarm
	}
	return false
}

// PressCounts tracks the number of presses per button since startup.
type PressCounts struct {
	Light int
	Mode  int
	Alarm int
}

// eventSet maps a button to its four edge events.
type eventSet struct {
	down, up, long, longUp face.EventType
}

var events = map[Button]eventSet{
	ButtonLight: {face.EventLightButtonDown, face.EventLightButtonUp, face.EventLightLongPress, face.EventLightLongUp},
	ButtonMode:  {face.EventModeButtonDown, face.EventModeButtonUp, face.EventModeLongPress, face.EventModeLongUp},
	ButtonAlarm: {face.EventAlarmButtonDown, face.EventAlarmButtonUp, face.EventAlarmLongPress, face.EventAlarmLongUp},
}
