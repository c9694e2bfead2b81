package mqtt

import (
	"fmt"
	"log"
	"sync"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
)

// BufferCapacity is how many messages are held while disconnected.
const BufferCapacity = 256

// RealPublisher publishes to an actual MQTT broker. Messages published while
// the connection is down are buffered and replayed on reconnect.
type RealPublisher struct {
	client paho.Client

	// connected and transmit default to the paho client.
	connected func() bool
	transmit  func(msg bufferedMsg) error

	mu            sync.Mutex
	buf           *ringBuffer
	connectedOnce bool
	// replaying is set while onConnect flushes the buffer. New messages are
	// queued behind the replay so retained frames stay in order.
	replaying bool
}

// NewRealPublisher creates a publisher for the given broker. The connection
// is established in the background and retried until it succeeds.
func NewRealPublisher(broker string) *RealPublisher {
	p := &RealPublisher{buf: newRingBuffer(BufferCapacity)}

	opts := paho.NewClientOptions().
		AddBroker(broker).
		SetClientID("points-face").
		SetAutoReconnect(true).
		SetConnectRetry(true).
		SetConnectRetryInterval(5 * time.Second).
		SetWill(TopicSystem, string(WillPayload()), 1, true).
		SetOnConnectHandler(p.onConnect).
		SetConnectionLostHandler(func(_ paho.Client, err error) {
			log.Printf("mqtt: connection lost: %v", err)
		})

	p.client = paho.NewClient(opts)
	p.connected = p.client.IsConnectionOpen
	p.transmit = p.send
	p.client.Connect()
	return p
}

// newPublisher builds a publisher without a paho client. Used by tests.
func newPublisher(connected func() bool, transmit func(bufferedMsg) error) *RealPublisher {
	return &RealPublisher{
		buf:       newRingBuffer(BufferCapacity),
		connected: connected,
		transmit:  transmit,
	}
}

// onConnect replays buffered messages and announces reconnection.
func (p *RealPublisher) onConnect(_ paho.Client) {
	log.Printf("mqtt: connected")
	p.replay()
}

func (p *RealPublisher) replay() {
	p.mu.Lock()
	p.replaying = true
	reconnect := p.connectedOnce
	p.connectedOnce = true
	p.mu.Unlock()

	// Anything published during a pass lands in the buffer and is picked up
	// by the next one. The flag is cleared only once a drain comes back empty.
	for {
		p.mu.Lock()
		pending := p.buf.drain()
		if len(pending) == 0 {
			p.replaying = false
			p.mu.Unlock()
			break
		}
		p.mu.Unlock()

		for _, msg := range pending {
			if err := p.transmit(msg); err != nil {
				log.Printf("mqtt: replay to %s failed: %v", msg.topic, err)
			}
		}
	}

	if reconnect {
		payload, _ := FormatSystemPayload(SystemEvent{Timestamp: time.Now(), Event: "RECONNECTED"})
		if err := p.publish(bufferedMsg{topic: TopicSystem, payload: payload, qos: 1}); err != nil {
			log.Printf("mqtt: publish reconnected event failed: %v", err)
		}
	}
}

// PublishFrame sends a display frame. Frames are retained so new
// subscribers see the current display.
func (p *RealPublisher) PublishFrame(frame FrameEvent) error {
	return p.publish(bufferedMsg{topic: TopicDisplay, payload: frame.Payload, qos: 0, retained: true})
}

// PublishTone sends a feedback tone.
func (p *RealPublisher) PublishTone(tone ToneEvent) error {
	payload, err := FormatTonePayload(tone)
	if err != nil {
		return fmt.Errorf("format tone payload: %w", err)
	}
	return p.publish(bufferedMsg{topic: TopicTone, payload: payload, qos: 0})
}

// PublishSystem sends a system lifecycle event to the MQTT broker.
func (p *RealPublisher) PublishSystem(event SystemEvent) error {
	payload, err := FormatSystemPayload(event)
	if err != nil {
		return fmt.Errorf("format system payload: %w", err)
	}
	// QoS 1 (at-least-once) for lifecycle events - we want to ensure delivery
	return p.publish(bufferedMsg{topic: TopicSystem, payload: payload, qos: 1, retained: event.Retained})
}

// publish sends msg directly only when the connection is up and nothing is
// queued ahead of it; otherwise msg joins the buffer.
func (p *RealPublisher) publish(msg bufferedMsg) error {
	p.mu.Lock()
	if !p.connected() || p.replaying || p.buf.len() > 0 {
		p.buf.push(msg)
		p.mu.Unlock()
		return nil
	}
	p.mu.Unlock()
	return p.transmit(msg)
}

func (p *RealPublisher) send(msg bufferedMsg) error {
	token := p.client.Publish(msg.topic, msg.qos, msg.retained, msg.payload)
	if !token.WaitTimeout(5 * time.Second) {
		return fmt.Errorf("publish to %s: timeout", msg.topic)
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("publish to %s: %w", msg.topic, err)
	}
	return nil
}

// IsConnected reports whether the broker connection is up.
func (p *RealPublisher) IsConnected() bool {
	return p.connected()
}

// Close disconnects from the broker.
func (p *RealPublisher) Close() error {
	if p.client != nil {
		p.client.Disconnect(1000) // 1 second timeout
	}
	return nil
}
