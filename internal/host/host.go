// Package host provides the runtime side of the face: lifecycle requests,
// the default event handler, the illumination LED, the button-level query
// and the sound preference.
package host

import (
	"log"
	"time"

	"github.com/sweeney/points-face/internal/face"
	"github.com/sweeney/points-face/internal/gpio"
)

// Config contains host settings.
type Config struct {
	// Faces is the number of face slots. Only slot 0 is populated.
	Faces int
	// LEDDuration is how long the LED stays lit after Illuminate.
	LEDDuration time.Duration
	// Sound is the initial sound preference.
	Sound bool
}

// Host implements face.Host and face.Buttons.
// Not safe for concurrent use. Only called from the event loop.
type Host struct {
	led gpio.LED
	cfg Config
	now func() time.Time

	levels gpio.Levels
	sound  bool

	current       int
	pending       int
	switchPending bool

	ledOn    bool
	ledUntil time.Time
}

var (
	_ face.Host    = (*Host)(nil)
	_ face.Buttons = (*Host)(nil)
	_ face.Buttons = gpio.Levels{}
)

// New creates a Host. led may be nil when no LED is fitted.
func New(led gpio.LED, cfg Config, now func() time.Time) *Host {
	if cfg.Faces < 1 {
		cfg.Faces = 1
	}
	return &Host{
		led:   led,
		cfg:   cfg,
		now:   now,
		sound: cfg.Sound,
	}
}

// SetLevels records the latest button sample. ModePressed and friends report
// these levels.
func (h *Host) SetLevels(l gpio.Levels) {
	h.levels = l
}

func (h *Host) ModePressed() bool  { return h.levels.ModePressed() }
func (h *Host) LightPressed() bool { return h.levels.LightPressed() }
func (h *Host) AlarmPressed() bool { return h.levels.AlarmPressed() }

// Illuminate lights the LED for the configured duration. Repeated calls
// extend the deadline.
func (h *Host) Illuminate() {
	h.ledUntil = h.now().Add(h.cfg.LEDDuration)
	if h.ledOn {
		return
	}
	h.setLED(true)
}

// ExpireLED turns the LED off once its deadline has passed. Called from the
// event loop on every poll.
func (h *Host) ExpireLED(now time.Time) {
	if h.ledOn && !now.Before(h.ledUntil) {
		h.setLED(false)
	}
}

// LEDOn reports whether the LED is lit.
func (h *Host) LEDOn() bool {
	return h.ledOn
}

func (h *Host) setLED(on bool) {
	h.ledOn = on
	if h.led == nil {
		return
	}
	if err := h.led.Set(on); err != nil {
		log.Printf("host: led: %v", err)
	}
}

// MoveToFace requests a switch to index. The switch is applied by the event
// loop through TakeSwitch once the current event has been handled.
func (h *Host) MoveToFace(index int) {
	if index < 0 || index >= h.cfg.Faces {
		log.Printf("host: ignoring move to face %d (have %d)", index, h.cfg.Faces)
		return
	}
	h.pending = index
	h.switchPending = true
}

// TakeSwitch returns and clears a pending face switch.
func (h *Host) TakeSwitch() (int, bool) {
	if !h.switchPending {
		return 0, false
	}
	h.switchPending = false
	h.current = h.pending
	return h.pending, true
}

// CurrentFace returns the index of the active face slot.
func (h *Host) CurrentFace() int {
	return h.current
}

// DefaultLoopHandler applies the runtime's behaviour for events a face
// leaves unhandled.
func (h *Host) DefaultLoopHandler(ev face.Event) bool {
	switch ev.Type {
	case face.EventModeButtonUp:
		h.MoveToFace((h.current + 1) % h.cfg.Faces)
	case face.EventModeLongPress:
		h.MoveToFace(face.HomeFace)
	case face.EventLightButtonDown:
		h.Illuminate()
	default:
		return false
	}
	return true
}

// ButtonShouldSound reports the sound preference.
func (h *Host) ButtonShouldSound() bool {
	return h.sound
}

// SetSound changes the sound preference.
func (h *Host) SetSound(on bool) {
	h.sound = on
}
