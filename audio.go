package main

import (
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
)

const soundSampleRate = beep.SampleRate(44100)

// Cue is a sound effect the simulation can trigger
type Cue int

const (
	CueShot Cue = iota
	CueEnemyShot
	CueExplosion
	CuePlayerHit
	CueBonusAppear
	CueBonusKill
	CueLevelStart
	numCues
)

// SoundSink plays cues. Play must not block the frame loop.
type SoundSink interface {
	Play(c Cue)
}

type tone struct {
	freq float64
	dur  time.Duration
}

var cueTones = [numCues][]tone{
	CueShot:        {{freq: 1320, dur: 40 * time.Millisecond}},
	CueEnemyShot:   {{freq: 330, dur: 40 * time.Millisecond}},
	CueExplosion:   {{freq: 220, dur: 60 * time.Millisecond}, {freq: 110, dur: 80 * time.Millisecond}},
	CuePlayerHit:   {{freq: 440, dur: 100 * time.Millisecond}, {freq: 220, dur: 100 * time.Millisecond}, {freq: 110, dur: 200 * time.Millisecond}},
	CueBonusAppear: {{freq: 660, dur: 60 * time.Millisecond}, {freq: 880, dur: 60 * time.Millisecond}},
	CueBonusKill:   {{freq: 880, dur: 60 * time.Millisecond}, {freq: 1320, dur: 60 * time.Millisecond}, {freq: 1760, dur: 120 * time.Millisecond}},
	CueLevelStart:  {{freq: 523, dur: 120 * time.Millisecond}, {freq: 659, dur: 120 * time.Millisecond}, {freq: 784, dur: 200 * time.Millisecond}},
}

// cueStreamer builds the finite tone sequence for a cue
func cueStreamer(sr beep.SampleRate, c Cue, volume float64) (beep.Streamer, error) {
	if c < 0 || c >= numCues {
		return nil, fmt.Errorf("unknown cue %d", c)
	}
	parts := make([]beep.Streamer, 0, len(cueTones[c]))
	for _, t := range cueTones[c] {
		sine, err := generators.SineTone(sr, t.freq)
		if err != nil {
			return nil, fmt.Errorf("cue %d: %w", c, err)
		}
		parts = append(parts, beep.Take(sr.N(t.dur), sine))
	}
	seq := beep.Seq(parts...)
	if volume <= 0 {
		return &effects.Volume{Streamer: seq, Base: 2, Silent: true}, nil
	}
	return &effects.Volume{Streamer: seq, Base: 2, Volume: math.Log2(volume)}, nil
}

// Speaker plays cues through the system audio device
type Speaker struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	volume      float64
	initialized bool
}

// NewSpeaker creates a speaker; call Init before Play
func NewSpeaker(volume float64) *Speaker {
	return &Speaker{
		mixer:  &beep.Mixer{},
		volume: volume,
	}
}

// Init opens the audio device
func (s *Speaker) Init() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.initialized {
		return nil
	}
	if err := speaker.Init(soundSampleRate, soundSampleRate.N(time.Second/10)); err != nil {
		return fmt.Errorf("speaker init: %w", err)
	}
	speaker.Play(s.mixer)
	s.initialized = true
	return nil
}

// Play mixes a cue into the output stream
func (s *Speaker) Play(c Cue) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.initialized {
		return
	}
	st, err := cueStreamer(soundSampleRate, c, s.volume)
	if err != nil {
		return
	}
	speaker.Lock()
	s.mixer.Add(st)
	speaker.Unlock()
}

// Close stops playback and releases the device
func (s *Speaker) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.initialized {
		return
	}
	speaker.Clear()
	speaker.Close()
	s.initialized = false
}

type nopSound struct{}

func (nopSound) Play(Cue) {}
