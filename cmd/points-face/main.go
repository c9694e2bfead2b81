// Command points-face runs the two-page points counter face on GPIO buttons,
// mirroring the display to MQTT and an HTTP status page.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sweeney/points-face/internal/display"
	"github.com/sweeney/points-face/internal/face"
	"github.com/sweeney/points-face/internal/gpio"
	"github.com/sweeney/points-face/internal/host"
	"github.com/sweeney/points-face/internal/input"
	"github.com/sweeney/points-face/internal/mqtt"
	"github.com/sweeney/points-face/internal/web"
)

// loopConfig holds the timing and host settings for runLoop.
type loopConfig struct {
	Debounce  time.Duration
	LongPress time.Duration
	TickEvery time.Duration
	Timeout   time.Duration
	Host      host.Config
}

func main() {
	poll := flag.Duration("poll", 10*time.Millisecond, "Button polling interval")
	debounce := flag.Duration("debounce", 30*time.Millisecond, "Debounce duration")
	longPress := flag.Duration("long-press", 500*time.Millisecond, "Hold time for a long press")
	tickEvery := flag.Duration("tick", time.Second, "TICK event interval (0 to disable)")
	timeout := flag.Duration("timeout", time.Minute, "Inactivity before a TIMEOUT event (0 to disable)")
	ledDuration := flag.Duration("led", time.Second, "How long the LED stays lit")
	sound := flag.Bool("sound", true, "Play button tones")
	faces := flag.Int("faces", 1, "Number of face slots")
	broker := flag.String("broker", "tcp://192.168.1.200:1883", "MQTT broker address (empty to disable)")
	httpAddr := flag.String("http", ":8080", "HTTP status address (empty to disable)")
	chip := flag.String("chip", gpio.DefaultChip, "GPIO character device")
	defPins := gpio.DefaultPins()
	pinMode := flag.Int("pin-mode", defPins.Mode, "BCM pin number for the mode button")
	pinLight := flag.Int("pin-light", defPins.Light, "BCM pin number for the light button")
	pinAlarm := flag.Int("pin-alarm", defPins.Alarm, "BCM pin number for the alarm button")
	pinLED := flag.Int("pin-led", gpio.DefaultPinLED, "BCM pin number for the LED (-1 to disable)")
	printState := flag.Bool("print-state", false, "Print current button levels and exit")

	flag.Parse()

	cfg := loopConfig{
		Debounce:  *debounce,
		LongPress: *longPress,
		TickEvery: *tickEvery,
		Timeout:   *timeout,
		Host: host.Config{
			Faces:       *faces,
			LEDDuration: *ledDuration,
			Sound:       *sound,
		},
	}
	pins := gpio.Pins{Mode: *pinMode, Light: *pinLight, Alarm: *pinAlarm}

	if err := run(*poll, cfg, *broker, *httpAddr, *chip, pins, *pinLED, *printState); err != nil {
		log.Fatalf("fatal: %v", err)
	}
}

func run(poll time.Duration, cfg loopConfig, broker, httpAddr, chip string, pins gpio.Pins, pinLED int, printState bool) error {
	// Initialize GPIO
	reader, err := gpio.NewRealReader(chip, pins)
	if err != nil {
		return fmt.Errorf("init gpio: %w", err)
	}
	defer reader.Close()

	// Print state mode
	if printState {
		levels, err := reader.Read()
		if err != nil {
			return fmt.Errorf("read gpio: %w", err)
		}
		fmt.Printf("MODE: %s, LIGHT: %s, ALARM: %s\n",
			levelString(levels.Mode), levelString(levels.Light), levelString(levels.Alarm))
		return nil
	}

	var led gpio.LED
	if pinLED >= 0 {
		realLED, err := gpio.NewRealLED(chip, pinLED)
		if err != nil {
			return fmt.Errorf("init led: %w", err)
		}
		defer realLED.Close()
		led = realLED
	}

	// Initialize MQTT
	var publisher mqtt.Publisher = noopPublisher{}
	var mqttStatus mqtt.ConnectionStatus
	if broker != "" {
		realPub := mqtt.NewRealPublisher(broker)
		defer realPub.Close()
		publisher = realPub
		mqttStatus = realPub
	}

	panel := display.NewPanel(time.Now(), display.Config{
		PollMs:      poll.Milliseconds(),
		DebounceMs:  cfg.Debounce.Milliseconds(),
		LongPressMs: cfg.LongPress.Milliseconds(),
		TimeoutMs:   cfg.Timeout.Milliseconds(),
		Broker:      broker,
		HTTPPort:    httpAddr,
	})

	// Start HTTP status server
	if httpAddr != "" {
		srv := web.New(httpAddr, panel)
		go func() {
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.Printf("http server error: %v", err)
			}
		}()
		defer srv.Shutdown(context.Background())
		log.Printf("http status server listening on %s", httpAddr)
	}

	log.Printf("started: poll=%v debounce=%v long-press=%v broker=%s sound=%v", poll, cfg.Debounce, cfg.LongPress, broker, cfg.Host.Sound)

	ticker := time.NewTicker(poll)
	defer ticker.Stop()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, append([]os.Signal{syscall.SIGINT, syscall.SIGTERM}, soundToggleSignals...)...)

	return runLoop(reader, led, publisher, mqttStatus, panel, cfg, time.Now, ticker.C, sigCh)
}

func runLoop(reader gpio.Reader, led gpio.LED, publisher mqtt.Publisher, mqttStatus mqtt.ConnectionStatus, panel *display.Panel, cfg loopConfig, now func() time.Time, tick <-chan time.Time, sig <-chan os.Signal) error {
	current := now()
	clock := func() time.Time { return current }

	detector := input.NewDetector(cfg.Debounce, cfg.LongPress, current)
	h := host.New(led, cfg.Host, clock)
	f := face.New(panel, host.NewBuzzer(publisher, clock), h, h)
	st := f.Setup(nil)
	lastTick := current
	var lastVersion uint64

	// deliver hands ev to the active slot and applies any face switch it
	// requested.
	deliver := func(ev face.Event) {
		if h.CurrentFace() == 0 {
			f.Handle(ev, st)
		} else {
			h.DefaultLoopHandler(ev)
		}

		idx, ok := h.TakeSwitch()
		if !ok {
			return
		}
		log.Printf("face: switch to face %d", idx)
		f.Resign(st)
		if idx != 0 {
			// Only slot 0 holds a face; the others show a blank panel.
			panel.Clear()
			return
		}
		st = f.Setup(st)
		f.Activate(st)
		f.Handle(face.Event{Type: face.EventActivate, Time: ev.Time}, st)
	}

	// syncPanel copies face state into the panel and mirrors changed frames.
	syncPanel := func() {
		panel.Update(*st, h.ButtonShouldSound(), f.Illuminating(), detector.Counts())
		if mqttStatus != nil {
			panel.SetMQTTConnected(mqttStatus.IsConnected())
		}
		v := panel.Version()
		if v == lastVersion {
			return
		}
		lastVersion = v
		frame := mqtt.FrameEvent{
			Timestamp: current,
			Version:   v,
			Payload:   display.FormatFrameEvent(panel.Snapshot(), "FRAME", ""),
		}
		if err := publisher.PublishFrame(frame); err != nil {
			log.Printf("frame publish error: %v", err)
		}
	}

	f.Activate(st)
	deliver(face.Event{Type: face.EventActivate, Time: current})
	syncPanel()

	startup := mqtt.SystemEvent{
		Timestamp:  current,
		Event:      "STARTUP",
		Retained:   true,
		RawPayload: display.FormatFrameEvent(panel.Snapshot(), "STARTUP", ""),
	}
	if err := publisher.PublishSystem(startup); err != nil {
		log.Printf("failed to publish startup event: %v", err)
	}

	for {
		select {
		case s := <-sig:
			if isSoundToggle(s) {
				h.SetSound(!h.ButtonShouldSound())
				log.Printf("received %v, sound=%v", s, h.ButtonShouldSound())
				if h.CurrentFace() == 0 {
					deliver(face.Event{Type: face.EventActivate, Time: current})
				}
				syncPanel()
				continue
			}

			log.Printf("received %v, shutting down", s)
			signalName := "UNKNOWN"
			if s == syscall.SIGINT {
				signalName = "SIGINT"
			} else if s == syscall.SIGTERM {
				signalName = "SIGTERM"
			}
			event := mqtt.SystemEvent{
				Timestamp:  now(),
				Event:      "SHUTDOWN",
				Reason:     signalName,
				Retained:   true,
				RawPayload: display.FormatFrameEvent(panel.Snapshot(), "SHUTDOWN", signalName),
			}
			if err := publisher.PublishSystem(event); err != nil {
				log.Printf("failed to publish shutdown event: %v", err)
			} else {
				log.Printf("published shutdown event")
			}
			return nil

		case <-tick:
			current = now()
			levels, err := reader.Read()
			if err != nil {
				log.Printf("gpio read error: %v", err)
				continue
			}
			h.SetLevels(levels)

			events := detector.Process(input.Sample{
				Light: levels.Light,
				Mode:  levels.Mode,
				Alarm: levels.Alarm,
				Time:  current,
			})
			for _, ev := range events {
				log.Printf("event: %s", ev.Type)
				deliver(ev)
			}

			if detector.CheckTimeout(current, cfg.Timeout) {
				deliver(face.Event{Type: face.EventTimeout, Time: current})
			}
			if cfg.TickEvery > 0 && current.Sub(lastTick) >= cfg.TickEvery {
				lastTick = current
				deliver(face.Event{Type: face.EventTick, Time: current})
			}

			h.ExpireLED(current)
			syncPanel()
		}
	}
}

func isSoundToggle(s os.Signal) bool {
	for _, t := range soundToggleSignals {
		if s == t {
			return true
		}
	}
	return false
}

// noopPublisher stands in when MQTT is disabled.
type noopPublisher struct{}

func (noopPublisher) PublishFrame(mqtt.FrameEvent) error   { return nil }
func (noopPublisher) PublishTone(mqtt.ToneEvent) error     { return nil }
func (noopPublisher) PublishSystem(mqtt.SystemEvent) error { return nil }
func (noopPublisher) Close() error                         { return nil }

func levelString(pressed bool) string {
	if pressed {
		return "PRESSED"
	}
	return "RELEASED"
}
