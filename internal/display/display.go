// Package display provides a thread-safe panel that stands in for the watch
// display. The face writes to it; HTTP handlers and the MQTT mirror read
// point-in-time snapshots from it.
package display

import (
	"sync"
	"time"

	"github.com/sweeney/points-face/internal/counter"
	"github.com/sweeney/points-face/internal/face"
	"github.com/sweeney/points-face/internal/input"
)

// Config contains daemon configuration for display.
type Config struct {
	PollMs      int64
	DebounceMs  int64
	LongPressMs int64
	TimeoutMs   int64
	Broker      string
	HTTPPort    string
}

// Snapshot is a point-in-time view of the panel and daemon state.
// It is a value type — safe to use after the lock is released.
type Snapshot struct {
	Top          string
	TopFallback  string
	Bottom       string
	Bell         bool
	Version      uint64
	Page         int
	Values       [counter.PageCount]int
	Sound        bool
	Illuminating bool
	Counts       input.PressCounts

	StartTime     time.Time
	Now           time.Time
	MQTTConnected bool
	Config        Config
}

// Uptime returns the duration since the daemon started.
func (s Snapshot) Uptime() time.Duration {
	return s.Now.Sub(s.StartTime)
}

// Panel holds the display contents and daemon state behind an RWMutex.
// It implements face.Display.
type Panel struct {
	mu   sync.RWMutex
	snap Snapshot
}

var _ face.Display = (*Panel)(nil)

// NewPanel creates a blank Panel with the given start time and config.
func NewPanel(startTime time.Time, cfg Config) *Panel {
	return &Panel{
		snap: Snapshot{
			StartTime: startTime,
			Config:    cfg,
		},
	}
}

// DisplayText sets the text at pos. Writing the top line clears its fallback.
func (p *Panel) DisplayText(pos face.Position, text string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	switch pos {
	case face.PositionTop:
		p.setLocked(&p.snap.Top, text)
		p.setLocked(&p.snap.TopFallback, "")
	case face.PositionBottom:
		p.setLocked(&p.snap.Bottom, text)
	}
}

// DisplayTextWithFallback sets text and its short form at pos. Only the top
// line carries a fallback.
func (p *Panel) DisplayTextWithFallback(pos face.Position, text, fallback string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	switch pos {
	case face.PositionTop:
		p.setLocked(&p.snap.Top, text)
		p.setLocked(&p.snap.TopFallback, fallback)
	case face.PositionBottom:
		p.setLocked(&p.snap.Bottom, text)
	}
}

// SetIndicator lights ind.
func (p *Panel) SetIndicator(ind face.Indicator) {
	p.setBell(ind, true)
}

// ClearIndicator clears ind.
func (p *Panel) ClearIndicator(ind face.Indicator) {
	p.setBell(ind, false)
}

func (p *Panel) setBell(ind face.Indicator, on bool) {
	if ind != face.IndicatorBell {
		return
	}
	p.mu.Lock()
	if p.snap.Bell != on {
		p.snap.Bell = on
		p.snap.Version++
	}
	p.mu.Unlock()
}

// Clear blanks both lines and the bell, as shown while an empty face slot
// is active.
func (p *Panel) Clear() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.setLocked(&p.snap.Top, "")
	p.setLocked(&p.snap.TopFallback, "")
	p.setLocked(&p.snap.Bottom, "")
	if p.snap.Bell {
		p.snap.Bell = false
		p.snap.Version++
	}
}

// setLocked assigns v to *field and bumps the version if it changed.
// Caller must hold p.mu.
func (p *Panel) setLocked(field *string, v string) {
	if *field == v {
		return
	}
	*field = v
	p.snap.Version++
}

// Version returns a counter that increases whenever the visible contents
// change.
func (p *Panel) Version() uint64 {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.snap.Version
}

// Update records the counter state and runtime flags behind the display.
// Called from runLoop after every dispatched event.
func (p *Panel) Update(st counter.State, sound, illuminating bool, counts input.PressCounts) {
	p.mu.Lock()
	p.snap.Page = st.Page
	p.snap.Values = st.Values
	p.snap.Sound = sound
	p.snap.Illuminating = illuminating
	p.snap.Counts = counts
	p.mu.Unlock()
}

// SetMQTTConnected sets the MQTT connection status.
func (p *Panel) SetMQTTConnected(connected bool) {
	p.mu.Lock()
	p.snap.MQTTConnected = connected
	p.mu.Unlock()
}

// Snapshot returns a point-in-time copy of the panel.
// The Now field is set to the current time at the moment of the call.
func (p *Panel) Snapshot() Snapshot {
	p.mu.RLock()
	s := p.snap
	p.mu.RUnlock()
	s.Now = time.Now()
	return s
}
