package host

import (
	"log"
	"time"

	"github.com/sweeney/points-face/internal/face"
	"github.com/sweeney/points-face/internal/mqtt"
)

// Buzzer implements face.Buzzer by logging each tone and mirroring it to MQTT.
type Buzzer struct {
	pub mqtt.Publisher
	now func() time.Time
}

var _ face.Buzzer = (*Buzzer)(nil)

// NewBuzzer creates a Buzzer. pub may be nil to only log.
func NewBuzzer(pub mqtt.Publisher, now func() time.Time) *Buzzer {
	return &Buzzer{pub: pub, now: now}
}

// PlayNote logs and publishes the tone. Publish errors are logged.
func (b *Buzzer) PlayNote(note face.Note, d time.Duration) {
	log.Printf("buzzer: %s (%.0f Hz) for %v", note, note.Frequency(), d)
	if b.pub == nil {
		return
	}
	if err := b.pub.PublishTone(mqtt.ToneEvent{Timestamp: b.now(), Note: note, Duration: d}); err != nil {
		log.Printf("buzzer: publish error: %v", err)
	}
}
