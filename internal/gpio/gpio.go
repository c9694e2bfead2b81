// Package gpio provides button input and LED output with hardware abstraction.
// The real implementation uses Linux GPIO character device.
// The fake implementation allows testing without hardware.
package gpio

// Levels is one sample of the three buttons. true = pressed.
type Levels struct {
	Mode  bool
	Light bool
	Alarm bool
}

// ModePressed reports the mode button level.
func (l Levels) ModePressed() bool { return l.Mode }

// LightPressed reports the light button level.
func (l Levels) LightPressed() bool { return l.Light }

// AlarmPressed reports the alarm button level.
func (l Levels) AlarmPressed() bool { return l.Alarm }

// Reader reads button levels.
type Reader interface {
	// Read returns the logical button levels.
	// The raw GPIO values are inverted: buttons pull the line low when pressed.
	Read() (Levels, error)

	// Close releases GPIO resources.
	Close() error
}

// LED drives the illumination output.
type LED interface {
	Set(on bool) error
	Close() error
}

// DefaultChip is the GPIO character device used on a Raspberry Pi.
const DefaultChip = "gpiochip0"

// Default pin definitions (BCM numbering)
const (
	DefaultPinMode  = 5
	DefaultPinLight = 6
	DefaultPinAlarm = 13
	DefaultPinLED   = 19
)

// Pins groups the BCM pin numbers used by RealReader.
type Pins struct {
	Mode  int
	Light int
	Alarm int
}

// DefaultPins returns the default button pins.
func DefaultPins() Pins {
	return Pins{Mode: DefaultPinMode, Light: DefaultPinLight, Alarm: DefaultPinAlarm}
}
