package main

import (
	"fmt"
	"sync"
	"time"
)

// Control is a logical input the simulation can query
type Control int

const (
	ControlP1Left Control = iota
	ControlP1Right
	ControlP1Fire
	ControlP1Up
	ControlP1Down
	ControlP2Left
	ControlP2Right
	ControlP2Fire
	ControlP2Up
	ControlP2Down
	ControlConfirm
	ControlQuit
	numControls
)

var controlNames = [numControls]string{
	ControlP1Left:  "p1_left",
	ControlP1Right: "p1_right",
	ControlP1Fire:  "p1_fire",
	ControlP1Up:    "p1_up",
	ControlP1Down:  "p1_down",
	ControlP2Left:  "p2_left",
	ControlP2Right: "p2_right",
	ControlP2Fire:  "p2_fire",
	ControlP2Up:    "p2_up",
	ControlP2Down:  "p2_down",
	ControlConfirm: "confirm",
	ControlQuit:    "quit",
}

func (c Control) String() string {
	if c < 0 || c >= numControls {
		return fmt.Sprintf("control(%d)", int(c))
	}
	return controlNames[c]
}

// ParseControl maps a config name like "p1_fire" to its control
func ParseControl(name string) (Control, error) {
	for i, n := range controlNames {
		if n == name {
			return Control(i), nil
		}
	}
	return 0, fmt.Errorf("unknown control %q", name)
}

// PlayerControls is the control set bound to one ship
type PlayerControls struct {
	Left, Right, Fire, Up, Down Control
}

var playerControls = [2]PlayerControls{
	{Left: ControlP1Left, Right: ControlP1Right, Fire: ControlP1Fire, Up: ControlP1Up, Down: ControlP1Down},
	{Left: ControlP2Left, Right: ControlP2Right, Fire: ControlP2Fire, Up: ControlP2Up, Down: ControlP2Down},
}

// InputSource answers whether a control is currently held. It never blocks.
type InputSource interface {
	Held(c Control) bool
}

// DefaultHoldWindow is how long a key press counts as held. Terminals only
// report presses and auto-repeats, never releases.
const DefaultHoldWindow = 120 * time.Millisecond

// KeyState records key presses from an event goroutine and answers Held
// queries from the simulation goroutine.
type KeyState struct {
	mu   sync.Mutex
	last [numControls]time.Time
	hold time.Duration
	now  func() time.Time
}

// NewKeyState creates a key state with the given hold window
func NewKeyState(hold time.Duration) *KeyState {
	if hold <= 0 {
		hold = DefaultHoldWindow
	}
	return &KeyState{
		hold: hold,
		now:  time.Now,
	}
}

// Press marks a control as pressed now
func (k *KeyState) Press(c Control) {
	if c < 0 || c >= numControls {
		return
	}
	k.mu.Lock()
	k.last[c] = k.now()
	k.mu.Unlock()
}

// Release clears a control immediately
func (k *KeyState) Release(c Control) {
	if c < 0 || c >= numControls {
		return
	}
	k.mu.Lock()
	k.last[c] = time.Time{}
	k.mu.Unlock()
}

// Held reports whether the control was pressed within the hold window
func (k *KeyState) Held(c Control) bool {
	if c < 0 || c >= numControls {
		return false
	}
	k.mu.Lock()
	defer k.mu.Unlock()
	if k.last[c].IsZero() {
		return false
	}
	return k.now().Sub(k.last[c]) < k.hold
}

// Reset clears every control
func (k *KeyState) Reset() {
	k.mu.Lock()
	k.last = [numControls]time.Time{}
	k.mu.Unlock()
}
