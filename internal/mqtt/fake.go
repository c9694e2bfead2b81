package mqtt

// FakePublisher records published events for test assertions.
type FakePublisher struct {
	// Frames contains all display frames that were published.
	Frames []FrameEvent

	// Tones contains all tones that were published.
	Tones []ToneEvent

	// TonePayloads contains the JSON payloads for tones.
	TonePayloads [][]byte

	// SystemEvents contains all system events that were published.
	SystemEvents []SystemEvent

	// SystemPayloads contains the JSON payloads for system events.
	SystemPayloads [][]byte

	// PublishError, if set, will be returned by PublishFrame and PublishTone.
	PublishError error

	// PublishSystemError, if set, will be returned by PublishSystem.
	PublishSystemError error

	// Closed tracks if Close was called.
	Closed bool

	// Connected controls the return value of IsConnected.
	Connected bool
}

// NewFakePublisher creates a FakePublisher for testing.
func NewFakePublisher() *FakePublisher {
	return &FakePublisher{}
}

// PublishFrame records the frame.
func (f *FakePublisher) PublishFrame(frame FrameEvent) error {
	if f.PublishError != nil {
		return f.PublishError
	}
	f.Frames = append(f.Frames, frame)
	return nil
}

// PublishTone records the tone.
func (f *FakePublisher) PublishTone(tone ToneEvent) error {
	if f.PublishError != nil {
		return f.PublishError
	}

	payload, err := FormatTonePayload(tone)
	if err != nil {
		return err
	}
	f.Tones = append(f.Tones, tone)
	f.TonePayloads = append(f.TonePayloads, payload)
	return nil
}

// PublishSystem records the system event.
func (f *FakePublisher) PublishSystem(event SystemEvent) error {
	if f.PublishSystemError != nil {
		return f.PublishSystemError
	}

	payload, err := FormatSystemPayload(event)
	if err != nil {
		return err
	}
	f.SystemEvents = append(f.SystemEvents, event)
	f.SystemPayloads = append(f.SystemPayloads, payload)
	return nil
}

// Close marks the publisher as closed.
func (f *FakePublisher) Close() error {
	f.Closed = true
	return nil
}

// IsConnected reports whether the fake publisher is "connected".
func (f *FakePublisher) IsConnected() bool {
	return f.Connected
}

// Reset clears recorded events.
func (f *FakePublisher) Reset() {
	*f = FakePublisher{}
}
