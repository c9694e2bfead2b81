package face

import "time"

// FakeDisplay records what was written to each display region.
type FakeDisplay struct {
	Top         string
	TopFallback string
	Bottom      string
	Bell        bool

	// Writes counts DisplayText and DisplayTextWithFallback calls.
	Writes int
}

// DisplayText records text at pos.
func (d *FakeDisplay) DisplayText(pos Position, text string) {
	d.Writes++
	switch pos {
	case PositionTop:
		d.Top = text
		d.TopFallback = ""
	case PositionBottom:
		d.Bottom = text
	}
}

// DisplayTextWithFallback records text and fallback at pos.
func (d *FakeDisplay) DisplayTextWithFallback(pos Position, text, fallback string) {
	d.DisplayText(pos, text)
	if pos == PositionTop {
		d.TopFallback = fallback
	}
}

// SetIndicator turns the bell on.
func (d *FakeDisplay) SetIndicator(ind Indicator) {
	if ind == IndicatorBell {
		d.Bell = true
	}
}

// ClearIndicator turns the bell off.
func (d *FakeDisplay) ClearIndicator(ind Indicator) {
	if ind == IndicatorBell {
		d.Bell = false
	}
}

// Tone is a recorded buzzer call.
type Tone struct {
	Note     Note
	Duration time.Duration
}

// FakeBuzzer records played tones.
type FakeBuzzer struct {
	Tones []Tone
}

// PlayNote records the tone.
func (b *FakeBuzzer) PlayNote(note Note, d time.Duration) {
	b.Tones = append(b.Tones, Tone{Note: note, Duration: d})
}

// FakeButtons holds scripted button levels.
type FakeButtons struct {
	Mode  bool
	Light bool
	Alarm bool
}

func (b *FakeButtons) ModePressed() bool  { return b.Mode }
func (b *FakeButtons) LightPressed() bool { return b.Light }
func (b *FakeButtons) AlarmPressed() bool { return b.Alarm }

// FakeHost records lifecycle requests.
type FakeHost struct {
	// Sound controls ButtonShouldSound.
	Sound bool

	Illuminations int
	MovedTo       []int
	Defaulted     []Event
}

// Illuminate counts the request.
func (h *FakeHost) Illuminate() {
	h.Illuminations++
}

// MoveToFace records the requested index.
func (h *FakeHost) MoveToFace(index int) {
	h.MovedTo = append(h.MovedTo, index)
}

// DefaultLoopHandler records the event.
func (h *FakeHost) DefaultLoopHandler(ev Event) bool {
	h.Defaulted = append(h.Defaulted, ev)
	return true
}

// ButtonShouldSound returns Sound.
func (h *FakeHost) ButtonShouldSound() bool {
	return h.Sound
}
