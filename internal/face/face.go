package face

import "github.com/sweeney/points-face/internal/counter"

// Face is the points counter state machine. One Face serves one face slot;
// the counter.State it operates on is owned by the host and passed to every
// call.
type Face struct {
	display Display
	buzzer  Buzzer
	buttons Buttons
	host    Host

	// usingLED is set while mode is held together with light or alarm. It
	// stays set until all three buttons read released.
	usingLED bool
}

// New creates a Face wired to its collaborators.
func New(display Display, buzzer Buzzer, buttons Buttons, host Host) *Face {
	return &Face{
		display: display,
		buzzer:  buzzer,
		buttons: buttons,
		host:    host,
	}
}

// Setup returns ctx if the host already holds a context for this slot,
// otherwise a freshly zeroed one.
func (f *Face) Setup(ctx *counter.State) *counter.State {
	if ctx != nil {
		return ctx
	}
	return counter.New()
}

// Activate is called when the face becomes visible. Rendering happens on the
// ACTIVATE event that follows.
func (f *Face) Activate(st *counter.State) {}

// Resign is called when the host switches away from the face.
func (f *Face) Resign(st *counter.State) {}

// Illuminating reports whether the illumination override is active.
func (f *Face) Illuminating() bool {
	return f.usingLED
}

// Handle processes one event against st. It always returns true so the host
// never applies its own fallback; unknown events go to the host's default
// handler first.
func (f *Face) Handle(ev Event, st *counter.State) bool {
	if f.usingLED {
		if f.allReleased() {
			f.usingLED = false
		} else {
			if isLightOrAlarmDown(ev.Type) {
				f.host.Illuminate()
			}
			return true
		}
	}

	switch ev.Type {
	case EventTick:
	case EventAlarmButtonUp:
		f.increment(st)
	case EventAlarmLongPress:
		st.NextPage()
		f.beep(NoteC5Sharp)
		f.render(st)
	case EventModeLongPress:
		f.host.MoveToFace(HomeFace)
	case EventLightButtonUp:
		f.decrement(st)
	case EventLightButtonDown, EventAlarmButtonDown:
		if f.buttons.ModePressed() {
			f.host.Illuminate()
			f.usingLED = true
		}
	case EventLightLongPress:
		st.Reset()
		f.beep(NoteC5Sharp)
		f.render(st)
	case EventActivate:
		f.render(st)
	case EventTimeout:
		// The face stays up until the user leaves it.
	default:
		f.host.DefaultLoopHandler(ev)
	}
	return true
}

func (f *Face) increment(st *counter.State) {
	if st.Increment() == counter.AtCeiling {
		f.beep(NoteE7)
		return
	}
	f.render(st)
	f.beep(NoteE6)
}

func (f *Face) decrement(st *counter.State) {
	if st.Decrement() == counter.AtFloor {
		f.beep(NoteC5Sharp)
		return
	}
	f.render(st)
	f.beep(NoteC6Sharp)
}

func (f *Face) render(st *counter.State) {
	Render(f.display, st, f.host.ButtonShouldSound())
}

func (f *Face) beep(note Note) {
	if f.host.ButtonShouldSound() {
		f.buzzer.PlayNote(note, ToneDuration)
	}
}

func (f *Face) allReleased() bool {
	return !f.buttons.ModePressed() && !f.buttons.LightPressed() && !f.buttons.AlarmPressed()
}

func isLightOrAlarmDown(t EventType) bool {
	return t == EventLightButtonDown || t == EventAlarmButtonDown
}
