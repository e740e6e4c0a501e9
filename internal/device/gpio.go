package device

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/vovakirdan/gridsnake/internal/core"
)

// NumPorts is the number of 32-bit GPIO ports on the board.
const NumPorts = 5

// ErrInvalidPin is returned when a pin map names a port or bit that does not exist.
var ErrInvalidPin = errors.New("device: invalid pin")

// Pin addresses one bit of one port.
type Pin struct {
	Port int  `yaml:"port"`
	Bit  uint `yaml:"bit"`
}

func (p Pin) String() string {
	return fmt.Sprintf("P%d.%d", p.Port, p.Bit)
}

func (p Pin) valid() bool {
	return p.Port >= 0 && p.Port < NumPorts && p.Bit < 32
}

func (p Pin) mask() uint32 {
	return 1 << p.Bit
}

// Bus holds the pin registers. Reads return the level of every pin on the
// port; writes set or clear single pins. All access is atomic.
type Bus struct {
	ports [NumPorts]atomic.Uint32
}

// NewBus returns a bus with every pin pulled high.
func NewBus() *Bus {
	b := &Bus{}
	for i := range b.ports {
		b.ports[i].Store(^uint32(0))
	}
	return b
}

// Read returns the pin levels of port.
func (b *Bus) Read(port int) uint32 {
	if port < 0 || port >= NumPorts {
		return ^uint32(0)
	}
	return b.ports[port].Load()
}

// Level reports whether p is high. Unknown pins read high.
func (b *Bus) Level(p Pin) bool {
	if !p.valid() {
		return true
	}
	return b.ports[p.Port].Load()&p.mask() != 0
}

// Set drives p high.
func (b *Bus) Set(p Pin) {
	if p.valid() {
		b.ports[p.Port].Or(p.mask())
	}
}

// Clr drives p low.
func (b *Bus) Clr(p Pin) {
	if p.valid() {
		b.ports[p.Port].And(^p.mask())
	}
}

// PinMap wires the game's inputs and lamps to pins.
type PinMap struct {
	Button Pin   `yaml:"button"`
	Up     Pin   `yaml:"up"`
	Down   Pin   `yaml:"down"`
	Left   Pin   `yaml:"left"`
	Right  Pin   `yaml:"right"`
	Lamps  []Pin `yaml:"lamps"` // Lamp i shows score bit i
}

// DefaultPinMap returns the wiring of the reference board: the push button
// on P2.10, the joystick on P1.23-26 and eight lamps on port 2 and port 1.
func DefaultPinMap() PinMap {
	return PinMap{
		Button: Pin{Port: 2, Bit: 10},
		Up:     Pin{Port: 1, Bit: 23},
		Down:   Pin{Port: 1, Bit: 25},
		Left:   Pin{Port: 1, Bit: 26},
		Right:  Pin{Port: 1, Bit: 24},
		Lamps: []Pin{
			{Port: 2, Bit: 6}, {Port: 2, Bit: 5}, {Port: 2, Bit: 4}, {Port: 2, Bit: 3},
			{Port: 2, Bit: 2}, {Port: 1, Bit: 31}, {Port: 1, Bit: 29}, {Port: 1, Bit: 28},
		},
	}
}

// Joystick returns the pin of a joystick direction.
func (m PinMap) Joystick(d core.Direction) (Pin, bool) {
	switch d {
	case core.DirUp:
		return m.Up, true
	case core.DirDown:
		return m.Down, true
	case core.DirLeft:
		return m.Left, true
	case core.DirRight:
		return m.Right, true
	default:
		return Pin{}, false
	}
}

// Validate checks that every pin exists, that there are eight lamps and
// that no pin is wired twice.
func (m PinMap) Validate() error {
	if len(m.Lamps) != 8 {
		return fmt.Errorf("%w: expected 8 lamps, got %d", ErrInvalidPin, len(m.Lamps))
	}

	named := []struct {
		name string
		pin  Pin
	}{
		{"button", m.Button}, {"up", m.Up}, {"down", m.Down}, {"left", m.Left}, {"right", m.Right},
	}
	for i, p := range m.Lamps {
		named = append(named, struct {
			name string
			pin  Pin
		}{fmt.Sprintf("lamp %d", i), p})
	}

	seen := make(map[Pin]string, len(named))
	for _, n := range named {
		if !n.pin.valid() {
			return fmt.Errorf("%w: %s on %s", ErrInvalidPin, n.name, n.pin)
		}
		if other, ok := seen[n.pin]; ok {
			return fmt.Errorf("%w: %s and %s share %s", ErrInvalidPin, other, n.name, n.pin)
		}
		seen[n.pin] = n.name
	}
	return nil
}

// PinInput reads the button and joystick from the bus. Inputs are active low.
type PinInput struct {
	bus  *Bus
	pins PinMap
}

// NewPinInput reads the button and joystick pins of pins from bus.
func NewPinInput(bus *Bus, pins PinMap) *PinInput {
	return &PinInput{bus: bus, pins: pins}
}

// IsButtonPressed reports whether the button pin is held low.
func (in *PinInput) IsButtonPressed() bool {
	return !in.bus.Level(in.pins.Button)
}

// IsJoystickAsserted reports whether the pin mapped to d is held low.
func (in *PinInput) IsJoystickAsserted(d core.Direction) bool {
	p, ok := in.pins.Joystick(d)
	return ok && !in.bus.Level(p)
}

// LampBank drives the score lamps. Lamps are active high.
type LampBank struct {
	mu    sync.Mutex
	bus   *Bus
	lamps []Pin
}

// NewLampBank drives the eight lamp pins of pins on bus.
func NewLampBank(bus *Bus, pins PinMap) *LampBank {
	return &LampBank{bus: bus, lamps: pins.Lamps}
}

// SetIndicator switches every lamp off, then lights the bits of mask.
func (l *LampBank) SetIndicator(mask uint8) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for _, p := range l.lamps {
		l.bus.Clr(p)
	}
	for i, p := range l.lamps {
		if mask&(1<<uint(i)) != 0 {
			l.bus.Set(p)
		}
	}
}

// Mask reads the lamps back from the bus.
func (l *LampBank) Mask() uint8 {
	l.mu.Lock()
	defer l.mu.Unlock()

	var mask uint8
	for i, p := range l.lamps {
		if i < 8 && l.bus.Level(p) {
			mask |= 1 << uint(i)
		}
	}
	return mask
}

// Keypad turns host key presses into pin levels. Terminals report key
// presses but not releases, so a press holds the pin low until hold has
// passed without another press of the same key.
type Keypad struct {
	bus  *Bus
	pins PinMap
	hold time.Duration

	mu     sync.Mutex
	timers map[Pin]*time.Timer
	gens   map[Pin]uint64
	closed bool
}

// NewKeypad creates a keypad that holds each pressed pin low for hold.
func NewKeypad(bus *Bus, pins PinMap, hold time.Duration) *Keypad {
	return &Keypad{
		bus:    bus,
		pins:   pins,
		hold:   hold,
		timers: make(map[Pin]*time.Timer),
		gens:   make(map[Pin]uint64),
	}
}

// PressButton holds the push button.
func (k *Keypad) PressButton() {
	k.Press(k.pins.Button)
}

// PressDirection holds a joystick direction.
func (k *Keypad) PressDirection(d core.Direction) {
	if p, ok := k.pins.Joystick(d); ok {
		k.Press(p)
	}
}

// Press pulls p low and (re)arms its release.
func (k *Keypad) Press(p Pin) {
	k.mu.Lock()
	defer k.mu.Unlock()
	if k.closed {
		return
	}

	k.bus.Clr(p)
	if t, ok := k.timers[p]; ok {
		t.Stop()
	}
	k.gens[p]++
	gen := k.gens[p]
	k.timers[p] = time.AfterFunc(k.hold, func() {
		k.expire(p, gen)
	})
}

func (k *Keypad) expire(p Pin, gen uint64) {
	k.mu.Lock()
	defer k.mu.Unlock()
	if k.gens[p] != gen {
		return
	}
	delete(k.timers, p)
	k.bus.Set(p)
}

// Release lets p go high immediately.
func (k *Keypad) Release(p Pin) {
	k.mu.Lock()
	defer k.mu.Unlock()
	if t, ok := k.timers[p]; ok {
		t.Stop()
		delete(k.timers, p)
	}
	k.gens[p]++
	k.bus.Set(p)
}

// Close releases every held pin and ignores further presses.
func (k *Keypad) Close() {
	k.mu.Lock()
	defer k.mu.Unlock()
	for p, t := range k.timers {
		t.Stop()
		k.gens[p]++
		k.bus.Set(p)
	}
	k.timers = map[Pin]*time.Timer{}
	k.closed = true
}
