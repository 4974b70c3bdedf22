package main

import (
	"testing"
	"time"
)

func TestKeyStateHoldWindow(t *testing.T) {
	now := time.Unix(100, 0)
	k := NewKeyState(100 * time.Millisecond)
	k.now = func() time.Time { return now }

	if k.Held(ControlP1Fire) {
		t.Error("nothing pressed yet")
	}
	k.Press(ControlP1Fire)
	if !k.Held(ControlP1Fire) {
		t.Error("control should be held right after a press")
	}
	now = now.Add(99 * time.Millisecond)
	if !k.Held(ControlP1Fire) {
		t.Error("control should be held within the window")
	}
	now = now.Add(time.Millisecond)
	if k.Held(ControlP1Fire) {
		t.Error("control should expire after the window")
	}

	k.Press(ControlP2Left)
	k.Release(ControlP2Left)
	if k.Held(ControlP2Left) {
		t.Error("released control should not be held")
	}

	k.Press(ControlConfirm)
	k.Reset()
	if k.Held(ControlConfirm) {
		t.Error("reset should clear every control")
	}

	k.Press(numControls)
	if k.Held(Control(-1)) || k.Held(numControls) {
		t.Error("out of range controls are never held")
	}
}

func TestKeyStateDefaultWindow(t *testing.T) {
	k := NewKeyState(0)
	if k.hold != DefaultHoldWindow {
		t.Errorf("expected default window %v, got %v", DefaultHoldWindow, k.hold)
	}
}

func TestParseControl(t *testing.T) {
	for c := Control(0); c < numControls; c++ {
		got, err := ParseControl(c.String())
		if err != nil || got != c {
			t.Errorf("%s: got %v, %v", c, got, err)
		}
	}
	if _, err := ParseControl("p3_fire"); err == nil {
		t.Error("unknown control should fail")
	}
}
