package main

import "testing"

func drain(t *testing.T, c Cue, volume float64) (int, bool) {
	t.Helper()
	st, err := cueStreamer(soundSampleRate, c, volume)
	if err != nil {
		t.Fatal(err)
	}
	buf := make([][2]float64, 512)
	total, silent := 0, true
	for {
		n, ok := st.Stream(buf)
		for _, s := range buf[:n] {
			if s[0] != 0 || s[1] != 0 {
				silent = false
			}
		}
		total += n
		if !ok {
			break
		}
	}
	return total, silent
}

func TestCueStreamerLength(t *testing.T) {
	for c := Cue(0); c < numCues; c++ {
		want := 0
		for _, tn := range cueTones[c] {
			want += soundSampleRate.N(tn.dur)
		}
		got, silent := drain(t, c, 0.5)
		if got != want {
			t.Errorf("cue %d: expected %d samples, got %d", c, want, got)
		}
		if silent {
			t.Errorf("cue %d should be audible", c)
		}
	}
}

func TestCueStreamerMuted(t *testing.T) {
	if _, silent := drain(t, CueExplosion, 0); !silent {
		t.Error("zero volume should be silent")
	}
	if _, err := cueStreamer(soundSampleRate, numCues, 1); err == nil {
		t.Error("unknown cue should fail")
	}
}

func TestSpeakerPlayBeforeInit(t *testing.T) {
	s := NewSpeaker(0.5)
	// no device is opened, so these are no-ops
	s.Play(CueShot)
	s.Close()
}
