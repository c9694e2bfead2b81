package input

import (
	"time"

	"github.com/sweeney/points-face/internal/face"
)

// Detector debounces button samples and emits press, release and long-press
// events.
type Detector struct {
	debounceDuration time.Duration
	longPress        time.Duration
	buttons          map[Button]*ButtonState
	baselined        bool
	counts           PressCounts
	lastActivity     time.Time
	timedOut         bool
}

// NewDetector creates a detector with the given debounce and long-press
// durations. startTime seeds the inactivity timer.
func NewDetector(debounceDuration, longPress time.Duration, startTime time.Time) *Detector {
	d := &Detector{
		debounceDuration: debounceDuration,
		longPress:        longPress,
		buttons:          make(map[Button]*ButtonState, len(buttonOrder)),
		lastActivity:     startTime,
	}
	for _, b := range buttonOrder {
		d.buttons[b] = &ButtonState{}
	}
	return d
}

// Process takes a new sample and returns the events it produces, in
// LIGHT, MODE, ALARM order. Nothing is emitted until every button has a
// baseline.
func (d *Detector) Process(input Sample) []face.Event {
	transitions := make(map[Button]bool, len(buttonOrder))
	for _, b := range buttonOrder {
		transitions[b] = d.processButton(d.buttons[b], levelOf(input.pressed(b)), input.Time)
	}

	if !d.baselined {
		for _, b := range buttonOrder {
			if !d.buttons[b].Baselined {
				return nil // No events until baseline established
			}
		}
		d.baselined = true
		return nil
	}

	var out []face.Event
	for _, b := range buttonOrder {
		st := d.buttons[b]
		names := events[b]

		if transitions[b] {
			if st.Stable == LevelPressed {
				st.Armed = true
				st.PressedAt = input.Time
				st.LongFired = false
				d.counts.add(b)
				out = append(out, face.Event{Type: names.down, Time: input.Time})
			} else if st.Armed {
				st.Armed = false
				typ := names.up
				if st.LongFired {
					typ = names.longUp
				}
				out = append(out, face.Event{Type: typ, Time: input.Time})
			}
			continue
		}

		if st.Armed && st.Stable == LevelPressed && !st.LongFired && input.Time.Sub(st.PressedAt) >= d.longPress {
			st.LongFired = true
			out = append(out, face.Event{Type: names.long, Time: input.Time})
		}
	}

	if len(out) > 0 {
		d.lastActivity = input.Time
		d.timedOut = false
	}
	return out
}

// processButton handles debounce logic for a single button.
// Returns true if the stable level changed after baseline.
func (d *Detector) processButton(st *ButtonState, level Level, now time.Time) bool {
	// First time seeing this button
	if !st.Baselined {
		if st.Pending == "" || st.Pending != level {
			// Start (or restart) observing
			st.Pending = level
			st.PendingSince = now
			return false
		}

		if now.Sub(st.PendingSince) >= d.debounceDuration {
			st.Stable = level
			st.Baselined = true
			st.Pending = ""
		}
		return false
	}

	if level == st.Stable {
		// No change from stable level, clear any pending
		st.Pending = ""
		return false
	}

	if st.Pending != level {
		st.Pending = level
		st.PendingSince = now
		return false
	}

	if now.Sub(st.PendingSince) >= d.debounceDuration {
		st.Stable = level
		st.Pending = ""
		return true
	}
	return false
}

func levelOf(pressed bool) Level {
	if pressed {
		return LevelPressed
	}
	return LevelReleased
}

func (c *PressCounts) add(b Button) {
	switch b {
	case ButtonLight:
		c.Light++
	case ButtonMode:
		c.Mode++
	case ButtonAlarm:
		c.Alarm++
	}
}

// IsBaselined returns whether the detector has established a baseline.
func (d *Detector) IsBaselined() bool {
	return d.baselined
}

// Level returns the stable level of b.
func (d *Detector) Level(b Button) Level {
	return d.buttons[b].Stable
}

// Counts returns presses per button since startup.
func (d *Detector) Counts() PressCounts {
	return d.counts
}

// CheckTimeout returns true once when no button event has been emitted for
// at least after. It re-arms on the next button event. Returns false if not
// yet baselined or if after is <= 0 (disabled).
func (d *Detector) CheckTimeout(now time.Time, after time.Duration) bool {
	if after <= 0 || !d.baselined || d.timedOut {
		return false
	}
	if now.Sub(d.lastActivity) < after {
		return false
	}
	d.timedOut = true
	return true
}
