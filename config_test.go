package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
)

func TestLoadConfigMissingFile(t *testing.T) {
	c, unknown, err := LoadConfig(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatal(err)
	}
	want := DefaultConfig()
	if c.Difficulty != want.Difficulty || c.Database != want.Database || c.Volume != want.Volume {
		t.Errorf("expected defaults, got %+v", c)
	}
	if len(unknown) != 0 {
		t.Errorf("unexpected unknown keys %v", unknown)
	}
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "invaders.toml")
	data := `
difficulty = "hard"
volume = 0.25
hold_window_ms = 200
colour = "green"

[keys]
p1_fire = "g"
p2_fire = "enter"
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
	c, unknown, err := LoadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if d, _ := c.DifficultyLevel(); d != DifficultyHard {
		t.Errorf("expected hard, got %v", d)
	}
	if c.Database != "invaders.db" {
		t.Errorf("unset keys should keep defaults, got %q", c.Database)
	}
	if c.HoldWindow() != 200*time.Millisecond {
		t.Errorf("expected 200ms, got %v", c.HoldWindow())
	}
	if len(unknown) != 1 || unknown[0] != "colour" {
		t.Errorf("expected colour reported as unknown, got %v", unknown)
	}

	b, err := c.Bindings()
	if err != nil {
		t.Fatal(err)
	}
	if ctl, ok := b.Lookup(tcell.NewEventKey(tcell.KeyRune, 'g', tcell.ModNone)); !ok || ctl != ControlP1Fire {
		t.Error("g should fire for player 1")
	}
	if ctl, ok := b.Lookup(tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone)); !ok || ctl != ControlP2Fire {
		t.Error("enter should be rebound to player 2 fire")
	}
	if err := c.Validate(); err != nil {
		t.Errorf("config should be valid: %v", err)
	}
}

func TestLoadConfigMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.toml")
	os.WriteFile(path, []byte("difficulty = "), 0o644)
	if _, _, err := LoadConfig(path); err == nil {
		t.Error("malformed file should fail")
	}
}

func TestConfigValidate(t *testing.T) {
	c := DefaultConfig()
	c.Difficulty = "insane"
	if c.Validate() == nil {
		t.Error("bad difficulty should fail")
	}
	c = DefaultConfig()
	c.Volume = 1.5
	if c.Validate() == nil {
		t.Error("volume above 1 should fail")
	}
	c = DefaultConfig()
	c.Keys = map[string]string{"p3_fire": "x"}
	if c.Validate() == nil {
		t.Error("unknown control should fail")
	}
}

func TestConfigSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "invaders.toml")
	c := DefaultConfig()
	c.Difficulty = "easy"
	c.Spectate = ":8080"
	if err := c.Save(path); err != nil {
		t.Fatal(err)
	}
	got, unknown, err := LoadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if got.Difficulty != "easy" || got.Spectate != ":8080" || len(unknown) != 0 {
		t.Errorf("unexpected config after save %+v %v", got, unknown)
	}
}
