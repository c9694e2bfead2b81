package display

import (
	"encoding/json"
	"time"
)

// StatusJSON is the top-level JSON envelope for status output.
type StatusJSON struct {
	Display DisplayInner `json:"display"`
}

// DisplayInner contains the display and daemon details.
type DisplayInner struct {
	Event         string     `json:"event,omitempty"`
	Reason        string     `json:"reason,omitempty"`
	Top           string     `json:"top"`
	TopFallback   string     `json:"top_fallback,omitempty"`
	Bottom        string     `json:"bottom"`
	Bell          bool       `json:"bell"`
	Page          int        `json:"page"`
	Values        []int      `json:"values"`
	Sound         bool       `json:"sound"`
	Illuminating  bool       `json:"illuminating"`
	UptimeSeconds int64      `json:"uptime_seconds"`
	StartTime     string     `json:"start_time"`
	Timestamp     string     `json:"timestamp"`
	MQTT          MQTTStatus `json:"mqtt"`
	Counts        CountsJSON `json:"press_counts"`
	Config        ConfigJSON `json:"config"`
}

// MQTTStatus reports MQTT connection state.
type MQTTStatus struct {
	Connected bool   `json:"connected"`
	Broker    string `json:"broker"`
}

// CountsJSON is the JSON representation of button press counts.
type CountsJSON struct {
	Light int `json:"light"`
	Mode  int `json:"mode"`
	Alarm int `json:"alarm"`
}

// ConfigJSON is the JSON representation of daemon config.
type ConfigJSON struct {
	PollMs      int64  `json:"poll_ms"`
	DebounceMs  int64  `json:"debounce_ms"`
	LongPressMs int64  `json:"long_press_ms"`
	TimeoutMs   int64  `json:"timeout_ms"`
	Broker      string `json:"broker"`
	HTTPPort    string `json:"http_port"`
}

func buildInner(snap Snapshot) DisplayInner {
	return DisplayInner{
		Top:           snap.Top,
		TopFallback:   snap.TopFallback,
		Bottom:        snap.Bottom,
		Bell:          snap.Bell,
		Page:          snap.Page,
		Values:        snap.Values[:],
		Sound:         snap.Sound,
		Illuminating:  snap.Illuminating,
		UptimeSeconds: int64(snap.Uptime().Truncate(time.Second).Seconds()),
		StartTime:     snap.StartTime.UTC().Format(time.RFC3339),
		Timestamp:     snap.Now.UTC().Format(time.RFC3339),
		MQTT:          MQTTStatus{Connected: snap.MQTTConnected, Broker: snap.Config.Broker},
		Counts: CountsJSON{
			Light: snap.Counts.Light,
			Mode:  snap.Counts.Mode,
			Alarm: snap.Counts.Alarm,
		},
		Config: ConfigJSON{
			PollMs:      snap.Config.PollMs,
			DebounceMs:  snap.Config.DebounceMs,
			LongPressMs: snap.Config.LongPressMs,
			TimeoutMs:   snap.Config.TimeoutMs,
			Broker:      snap.Config.Broker,
			HTTPPort:    snap.Config.HTTPPort,
		},
	}
}

// FormatJSON returns the JSON status for the web endpoint (no event/reason).
func FormatJSON(snap Snapshot) []byte {
	data, _ := json.MarshalIndent(StatusJSON{Display: buildInner(snap)}, "", "  ")
	return data
}

// FormatFrameEvent returns the JSON status for an MQTT frame or system event.
func FormatFrameEvent(snap Snapshot, event, reason string) []byte {
	inner := buildInner(snap)
	inner.Event = event
	inner.Reason = reason

	data, _ := json.Marshal(StatusJSON{Display: inner})
	return data
}
