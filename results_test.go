package main

import "testing"

func newTestResults(input heldInput, store ScoreStore, p1, p2 int) (*ResultsScreen, *recordRender) {
	state := NewGameState()
	state.Level = 4
	state.Players[0].Score = p1
	state.Players[1].Score = p2
	rec := &recordRender{}
	return NewResultsScreen(Env{Input: input, Render: rec}, state, store), rec
}

func TestResultsRecords(t *testing.T) {
	store := NewMemoryScoreStore()
	store.SaveHighScores(fullBoard())

	r, _ := newTestResults(nil, store, 500, 100)
	res := r.Results()
	if !res.Records[0] || res.Records[1] {
		t.Errorf("expected a record for player 1 only, got %v", res.Records)
	}
	if res.Ready {
		t.Error("screen should not accept input right away")
	}
	if len(res.HighScores) != MaxHighScores {
		t.Errorf("expected the loaded board, got %d entries", len(res.HighScores))
	}
}

func TestResultsNameEntryAndConfirm(t *testing.T) {
	store := NewMemoryScoreStore()
	store.SaveHighScores(fullBoard())
	input := heldInput{ControlP1Up: true, ControlP2Up: true}
	r, rec := newTestResults(input, store, 500, 100)

	for i := 0; i < 11; i++ {
		r.Step()
	}
	if got := r.Results().Names[0]; got != "AAA" {
		t.Fatalf("letters should not change before the selection delay, got %s", got)
	}
	r.Step()
	if got := r.Results().Names[0]; got != "BAA" {
		t.Fatalf("expected BAA, got %s", got)
	}
	if got := r.Results().Names[1]; got != "AAA" {
		t.Errorf("player without a record cannot edit, got %s", got)
	}

	delete(input, ControlP1Up)
	input[ControlP1Right] = true
	for i := 0; i < 12; i++ {
		r.Step()
	}
	if c := r.Results().Cursors[0]; c != 1 {
		t.Errorf("expected cursor on the second letter, got %d", c)
	}

	delete(input, ControlP1Right)
	input[ControlConfirm] = true
	steps := 24
	for ; steps < 100 && !r.Done(); steps++ {
		r.Step()
	}
	if steps != 60 {
		t.Errorf("confirm should be accepted once the input delay ends, took %d frames", steps)
	}
	if r.exit != ExitPlayAgain {
		t.Errorf("expected play again, got %d", r.exit)
	}

	saved, _ := store.LoadHighScores()
	if len(saved) != MaxHighScores || saved[3] != (Score{"BAA", 500}) {
		t.Errorf("expected BAA saved in fourth place, got %+v", saved)
	}
	if len(rec.results) != steps {
		t.Errorf("expected a render per frame, got %d", len(rec.results))
	}
}

func TestResultsQuitSavesRecords(t *testing.T) {
	store := NewMemoryScoreStore()
	r, _ := newTestResults(heldInput{ControlQuit: true}, store, 40, 70)
	for i := 0; i < 60; i++ {
		r.Step()
	}
	if !r.Done() || r.exit != ExitQuit {
		t.Fatalf("expected quit after the input delay, done=%v exit=%d", r.Done(), r.exit)
	}
	saved, _ := store.LoadHighScores()
	if len(saved) != 2 || saved[0].Value != 70 || saved[1].Value != 40 {
		t.Errorf("both records should be saved, got %+v", saved)
	}
	// closed screen ignores further steps
	r.Step()
}

func TestResultsWithoutStore(t *testing.T) {
	r, _ := newTestResults(heldInput{ControlConfirm: true}, nil, 10, 0)
	for i := 0; i < 60; i++ {
		r.Step()
	}
	if !r.Done() {
		t.Fatal("screen should close without a store")
	}
	if hs := r.HighScores(); len(hs) != 2 {
		t.Errorf("records should still be ranked in memory, got %+v", hs)
	}
}
