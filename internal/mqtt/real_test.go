package mqtt

import (
	"errors"
	"strings"
	"testing"
)

// fakeLink stands in for the broker connection.
type fakeLink struct {
	up     bool
	sent   []bufferedMsg
	onSend func(msg bufferedMsg)
	err    error
}

func (l *fakeLink) connected() bool { return l.up }

func (l *fakeLink) transmit(msg bufferedMsg) error {
	if l.err != nil {
		return l.err
	}
	l.sent = append(l.sent, msg)
	if l.onSend != nil {
		l.onSend(msg)
	}
	return nil
}

func frame(v byte) FrameEvent {
	return FrameEvent{Version: uint64(v), Payload: []byte{v}}
}

func sentTopics(msgs []bufferedMsg) []string {
	var out []string
	for _, m := range msgs {
		out = append(out, m.topic)
	}
	return out
}

func TestPublishWhileConnectedSendsDirectly(t *testing.T) {
	link := &fakeLink{up: true}
	p := newPublisher(link.connected, link.transmit)

	if err := p.PublishFrame(frame(1)); err != nil {
		t.Fatalf("PublishFrame: %v", err)
	}

	if len(link.sent) != 1 || !link.sent[0].retained {
		t.Fatalf("expected one retained frame, got %+v", link.sent)
	}
	if p.buf.len() != 0 {
		t.Errorf("buffer should be empty, has %d", p.buf.len())
	}
}

func TestPublishWhileDisconnectedBuffers(t *testing.T) {
	link := &fakeLink{}
	p := newPublisher(link.connected, link.transmit)

	p.PublishFrame(frame(1))
	p.PublishTone(ToneEvent{Note: "E6"})

	if len(link.sent) != 0 {
		t.Errorf("nothing should be sent while down, got %d", len(link.sent))
	}
	if p.buf.len() != 2 {
		t.Errorf("buffered: got %d, want 2", p.buf.len())
	}
}

func TestReplayKeepsFrameOrder(t *testing.T) {
	link := &fakeLink{}
	p := newPublisher(link.connected, link.transmit)
	for v := byte(2); v <= 4; v++ {
		p.PublishFrame(frame(v))
	}

	// The loop publishes a newer frame and a tone while the replay is
	// still sending the first buffered message.
	link.up = true
	injected := false
	link.onSend = func(bufferedMsg) {
		if injected {
			return
		}
		injected = true
		p.PublishFrame(frame(5))
		p.PublishTone(ToneEvent{Note: "E6"})
	}
	p.replay()

	var frames []byte
	for _, m := range link.sent {
		if m.topic == TopicDisplay {
			frames = append(frames, m.payload[0])
		}
	}
	if string(frames) != string([]byte{2, 3, 4, 5}) {
		t.Errorf("frame order: got %v, want [2 3 4 5]", frames)
	}
	if last := link.sent[len(link.sent)-1]; last.topic != TopicTone {
		t.Errorf("tone should follow the replayed frames, got %v", sentTopics(link.sent))
	}
	if p.buf.len() != 0 {
		t.Errorf("buffer should be empty after replay, has %d", p.buf.len())
	}
	if p.replaying {
		t.Error("replaying flag should be cleared")
	}

	// Once the replay is done, publishing goes straight out again.
	p.PublishFrame(frame(6))
	if got := link.sent[len(link.sent)-1]; got.payload[0] != 6 {
		t.Errorf("expected direct send of frame 6, got %v", got.payload)
	}
}

func TestReplayAnnouncesReconnect(t *testing.T) {
	link := &fakeLink{up: true}
	p := newPublisher(link.connected, link.transmit)

	p.replay()
	if len(link.sent) != 0 {
		t.Fatalf("first connect should not announce, got %v", sentTopics(link.sent))
	}

	link.up = false
	p.PublishFrame(frame(1))
	link.up = true
	p.replay()

	if len(link.sent) != 2 {
		t.Fatalf("expected frame then RECONNECTED, got %v", sentTopics(link.sent))
	}
	if link.sent[0].topic != TopicDisplay || link.sent[1].topic != TopicSystem {
		t.Errorf("order: got %v", sentTopics(link.sent))
	}
	if !strings.Contains(string(link.sent[1].payload), `"RECONNECTED"`) {
		t.Errorf("payload: %s", link.sent[1].payload)
	}
}

func TestReplaySendErrorDoesNotStall(t *testing.T) {
	link := &fakeLink{}
	p := newPublisher(link.connected, link.transmit)
	p.PublishFrame(frame(1))

	link.up = true
	link.err = errors.New("broker gone")
	p.replay()

	if p.replaying || p.buf.len() != 0 {
		t.Errorf("replay should finish: replaying=%v buffered=%d", p.replaying, p.buf.len())
	}
}

func TestIsConnectedFollowsLink(t *testing.T) {
	link := &fakeLink{}
	p := newPublisher(link.connected, link.transmit)
	if p.IsConnected() {
		t.Error("expected disconnected")
	}
	link.up = true
	if !p.IsConnected() {
		t.Error("expected connected")
	}
}
