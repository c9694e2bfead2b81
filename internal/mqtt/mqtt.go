// Package mqtt mirrors the face's display frames, feedback tones and
// lifecycle events to an MQTT broker, with an abstraction for testing.
package mqtt

import (
	"encoding/json"
	"time"

	"github.com/sweeney/points-face/internal/face"
)

// TopicDisplay is the MQTT topic for display frames (retained).
const TopicDisplay = "watch/points/display"

// TopicTone is the MQTT topic for feedback tones.
const TopicTone = "watch/points/tone"

// TopicSystem is the MQTT topic for system lifecycle events.
const TopicSystem = "watch/points/system"

// Publisher publishes events to MQTT.
type Publisher interface {
	// PublishFrame sends the current display contents.
	// Returns error if publishing fails (should not crash the process).
	PublishFrame(frame FrameEvent) error

	// PublishTone sends a feedback tone.
	PublishTone(tone ToneEvent) error

	// PublishSystem sends a system lifecycle event to the broker.
	PublishSystem(event SystemEvent) error

	// Close disconnects from the broker.
	Close() error
}

// ConnectionStatus reports whether the MQTT connection is active.
type ConnectionStatus interface {
	IsConnected() bool
}

// FrameEvent is a rendered display frame.
type FrameEvent struct {
	Timestamp time.Time
	Version   uint64
	Payload   []byte // Pre-formatted JSON from display.FormatFrameEvent
}

// ToneEvent is a tone played by the face.
type ToneEvent struct {
	Timestamp time.Time
	Note      face.Note
	Duration  time.Duration
}

// SystemEvent represents a system lifecycle event (e.g., startup, shutdown).
type SystemEvent struct {
	Timestamp  time.Time
	Event      string // e.g., "STARTUP", "SHUTDOWN", "RECONNECTED"
	Reason     string // e.g., "SIGTERM", "SIGINT" (shutdown only)
	RawPayload []byte // Pre-formatted JSON payload; if set, FormatSystemPayload returns it directly
	Retained   bool   // Whether the message should be retained by the broker
}

// TonePayload represents the MQTT message payload for a tone.
type TonePayload struct {
	Tone ToneInner `json:"tone"`
}

// ToneInner contains the tone details.
type ToneInner struct {
	Timestamp   string  `json:"timestamp"`
	Note        string  `json:"note"`
	FrequencyHz float64 `json:"frequency_hz"`
	DurationMs  int64   `json:"duration_ms"`
}

// FormatTonePayload creates the JSON payload for a tone event.
func FormatTonePayload(tone ToneEvent) ([]byte, error) {
	return json.Marshal(TonePayload{
		Tone: ToneInner{
			Timestamp:   tone.Timestamp.UTC().Format(time.RFC3339),
			Note:        string(tone.Note),
			FrequencyHz: tone.Note.Frequency(),
			DurationMs:  tone.Duration.Milliseconds(),
		},
	})
}

// SystemPayload represents the MQTT message payload for system events.
// Used for simple events (LWT, RECONNECTED) that don't carry a full snapshot.
type SystemPayload struct {
	System SystemPayloadInner `json:"system"`
}

// SystemPayloadInner contains the system event details.
type SystemPayloadInner struct {
	Timestamp string `json:"timestamp"`
	Event     string `json:"event"`
	Reason    string `json:"reason,omitempty"`
}

// FormatSystemPayload creates the JSON payload for a system event.
// If event.RawPayload is set, it is returned directly (used for full snapshots).
func FormatSystemPayload(event SystemEvent) ([]byte, error) {
	if event.RawPayload != nil {
		return event.RawPayload, nil
	}

	payload := SystemPayload{
		System: SystemPayloadInner{
			Timestamp: event.Timestamp.UTC().Format(time.RFC3339),
			Event:     event.Event,
			Reason:    event.Reason,
		},
	}
	return json.Marshal(payload)
}

// WillPayload is the last-will message the broker publishes if the daemon
// drops off without a clean shutdown.
func WillPayload() []byte {
	data, _ := json.Marshal(SystemPayload{System: SystemPayloadInner{Event: "OFFLINE"}})
	return data
}
