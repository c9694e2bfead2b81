package display

import (
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/sweeney/points-face/internal/counter"
	"github.com/sweeney/points-face/internal/face"
	"github.com/sweeney/points-face/internal/input"
)

func TestNewPanel(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	cfg := Config{PollMs: 10, DebounceMs: 30, Broker: "tcp://localhost:1883", HTTPPort: ":80"}
	p := NewPanel(start, cfg)

	snap := p.Snapshot()
	if !snap.StartTime.Equal(start) {
		t.Errorf("StartTime: got %v, want %v", snap.StartTime, start)
	}
	if snap.Config.PollMs != 10 {
		t.Errorf("Config.PollMs: got %d, want 10", snap.Config.PollMs)
	}
	if snap.Top != "" || snap.Bottom != "" || snap.Bell {
		t.Errorf("expected blank panel, got %+v", snap)
	}
	if p.Version() != 0 {
		t.Errorf("Version: got %d, want 0", p.Version())
	}
}

func TestPanelRendersFace(t *testing.T) {
	p := NewPanel(time.Now(), Config{})
	st := &counter.State{Values: [counter.PageCount]int{12, 0}}

	face.Render(p, st, true)

	snap := p.Snapshot()
	if snap.Top != "OSMO" || snap.TopFallback != "OS" {
		t.Errorf("top: got %q/%q, want OSMO/OS", snap.Top, snap.TopFallback)
	}
	if snap.Bottom != " 12=100" {
		t.Errorf("bottom: got %q, want %q", snap.Bottom, " 12=100")
	}
	if !snap.Bell {
		t.Error("expected bell on")
	}
}

func TestVersionBumpsOnlyOnChange(t *testing.T) {
	p := NewPanel(time.Now(), Config{})
	st := &counter.State{}

	face.Render(p, st, false)
	v1 := p.Version()
	if v1 == 0 {
		t.Fatal("expected version to increase after first render")
	}

	face.Render(p, st, false)
	if p.Version() != v1 {
		t.Errorf("identical render changed version: %d -> %d", v1, p.Version())
	}

	p.SetIndicator(face.IndicatorBell)
	if p.Version() != v1+1 {
		t.Errorf("bell change: got version %d, want %d", p.Version(), v1+1)
	}

	p.DisplayText(face.PositionBottom, " 1 =05")
	if p.Version() != v1+2 {
		t.Errorf("bottom change: got version %d, want %d", p.Version(), v1+2)
	}
}

func TestDisplayTextClearsFallback(t *testing.T) {
	p := NewPanel(time.Now(), Config{})
	p.DisplayTextWithFallback(face.PositionTop, "OSMO", "OS")
	p.DisplayText(face.PositionTop, "FEMO")

	snap := p.Snapshot()
	if snap.Top != "FEMO" || snap.TopFallback != "" {
		t.Errorf("got %q/%q, want FEMO/empty", snap.Top, snap.TopFallback)
	}
}

func TestUpdateAndSnapshot(t *testing.T) {
	p := NewPanel(time.Now(), Config{})

	p.Update(counter.State{Page: 1, Values: [counter.PageCount]int{3, -2}}, true, true, input.PressCounts{Alarm: 4})

	snap := p.Snapshot()
	if snap.Page != 1 {
		t.Errorf("Page: got %d, want 1", snap.Page)
	}
	if snap.Values != [counter.PageCount]int{3, -2} {
		t.Errorf("Values: got %v", snap.Values)
	}
	if !snap.Sound || !snap.Illuminating {
		t.Error("expected Sound and Illuminating")
	}
	if snap.Counts.Alarm != 4 {
		t.Errorf("Counts.Alarm: got %d, want 4", snap.Counts.Alarm)
	}
}

func TestSetMQTTConnected(t *testing.T) {
	p := NewPanel(time.Now(), Config{})

	p.SetMQTTConnected(true)
	if !p.Snapshot().MQTTConnected {
		t.Error("expected MQTTConnected=true")
	}

	p.SetMQTTConnected(false)
	if p.Snapshot().MQTTConnected {
		t.Error("expected MQTTConnected=false")
	}
}

func TestSnapshotIsCopy(t *testing.T) {
	p := NewPanel(time.Now(), Config{})
	p.Update(counter.State{Values: [counter.PageCount]int{1, 1}}, false, false, input.PressCounts{})

	snap1 := p.Snapshot()
	p.Update(counter.State{Values: [counter.PageCount]int{9, 9}}, false, false, input.PressCounts{})

	if snap1.Values[0] != 1 {
		t.Error("snapshot should be a copy; Values was modified")
	}
}

func TestSnapshotUptime(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	snap := Snapshot{StartTime: start, Now: start.Add(15 * time.Minute)}

	if snap.Uptime() != 15*time.Minute {
		t.Errorf("Uptime: got %v, want 15m", snap.Uptime())
	}
}

func TestFormatJSON(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	snap := Snapshot{
		Top:           "FEMO",
		TopFallback:   "FE",
		Bottom:        " 7 =35",
		Bell:          true,
		Page:          1,
		Values:        [counter.PageCount]int{12, 7},
		Sound:         true,
		Counts:        input.PressCounts{Light: 2, Mode: 1, Alarm: 9},
		StartTime:     start,
		Now:           start.Add(15 * time.Minute),
		MQTTConnected: true,
		Config:        Config{PollMs: 10, DebounceMs: 30, LongPressMs: 1000, Broker: "tcp://localhost:1883", HTTPPort: ":80"},
	}

	data := FormatJSON(snap)

	var parsed StatusJSON
	if err := json.Unmarshal(data, &parsed); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}

	d := parsed.Display
	if d.Top != "FEMO" || d.TopFallback != "FE" || d.Bottom != " 7 =35" {
		t.Errorf("lines: got %q/%q/%q", d.Top, d.TopFallback, d.Bottom)
	}
	if !d.Bell {
		t.Error("expected Bell=true")
	}
	if len(d.Values) != 2 || d.Values[0] != 12 || d.Values[1] != 7 {
		t.Errorf("Values: got %v", d.Values)
	}
	if d.UptimeSeconds != 900 {
		t.Errorf("UptimeSeconds: got %d, want 900", d.UptimeSeconds)
	}
	if !d.MQTT.Connected {
		t.Error("expected MQTT.Connected=true")
	}
	if d.Counts.Alarm != 9 {
		t.Errorf("Counts.Alarm: got %d, want 9", d.Counts.Alarm)
	}
	if d.Config.LongPressMs != 1000 {
		t.Errorf("Config.LongPressMs: got %d, want 1000", d.Config.LongPressMs)
	}
	if d.Event != "" || d.Reason != "" {
		t.Errorf("expected no event/reason for web format, got %q/%q", d.Event, d.Reason)
	}
}

func TestFormatFrameEvent(t *testing.T) {
	snap := Snapshot{
		Bottom:    " 0 =00",
		StartTime: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		Now:       time.Date(2026, 1, 1, 0, 0, 1, 0, time.UTC),
	}

	data := FormatFrameEvent(snap, "SHUTDOWN", "SIGTERM")

	var parsed StatusJSON
	if err := json.Unmarshal(data, &parsed); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if parsed.Display.Event != "SHUTDOWN" {
		t.Errorf("Event: got %q, want SHUTDOWN", parsed.Display.Event)
	}
	if parsed.Display.Reason != "SIGTERM" {
		t.Errorf("Reason: got %q, want SIGTERM", parsed.Display.Reason)
	}
}

func TestFormatFrameEventOmitsReasonWhenEmpty(t *testing.T) {
	snap := Snapshot{
		StartTime: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		Now:       time.Date(2026, 1, 1, 0, 0, 1, 0, time.UTC),
	}

	data := FormatFrameEvent(snap, "FRAME", "")

	var raw map[string]interface{}
	json.Unmarshal(data, &raw)
	inner := raw["display"].(map[string]interface{})
	if _, exists := inner["reason"]; exists {
		t.Error("reason should be omitted when empty")
	}
	if inner["event"] != "FRAME" {
		t.Errorf("event: got %v, want FRAME", inner["event"])
	}
}

func TestClearBlanksPanel(t *testing.T) {
	p := NewPanel(time.Now(), Config{})
	face.Render(p, &counter.State{Values: [counter.PageCount]int{12, 0}}, true)
	before := p.Version()

	p.Clear()

	snap := p.Snapshot()
	if snap.Top != "" || snap.TopFallback != "" || snap.Bottom != "" || snap.Bell {
		t.Errorf("expected blank panel, got %q/%q/%q bell=%v", snap.Top, snap.TopFallback, snap.Bottom, snap.Bell)
	}
	if snap.Version <= before {
		t.Errorf("version should advance: before=%d after=%d", before, snap.Version)
	}

	v := snap.Version
	p.Clear()
	if p.Version() != v {
		t.Error("clearing a blank panel should not bump the version")
	}
}

func TestConcurrentAccess(t *testing.T) {
	p := NewPanel(time.Now(), Config{})
	var wg sync.WaitGroup

	// Writer
	wg.Add(1)
	go func() {
		defer wg.Done()
		st := &counter.State{}
		for i := 0; i < 1000; i++ {
			st.Increment()
			face.Render(p, st, i%2 == 0)
			p.Update(*st, i%2 == 0, false, input.PressCounts{Alarm: i})
			p.SetMQTTConnected(i%2 == 0)
		}
	}()

	// Reader
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 1000; i++ {
			snap := p.Snapshot()
			_ = FormatJSON(snap)
			_ = p.Version()
		}
	}()

	wg.Wait()
}
