package main

import (
	"context"
	"time"
)

const (
	SelectionTime     = 200 * time.Millisecond
	ResultsInputDelay = 1000 * time.Millisecond
)

// ResultsScreen shows the end of a run and lets record holders enter a name
type ResultsScreen struct {
	env        Env
	clock      *FrameClock
	state      GameState
	store      ScoreStore
	highScores []Score

	records     [2]bool
	names       [2]NameEntry
	inputDelay  *Cooldown
	selectionCD *Cooldown

	done bool
	exit ExitCode
}

// NewResultsScreen loads the leaderboard and works out who set a record
func NewResultsScreen(env Env, state GameState, store ScoreStore) *ResultsScreen {
	env = env.withDefaults()
	clock := NewFrameClock()
	r := &ResultsScreen{
		env:         env,
		clock:       clock,
		state:       state,
		store:       store,
		highScores:  loadHighScores(store, env.Logger),
		names:       [2]NameEntry{NewNameEntry(), NewNameEntry()},
		inputDelay:  NewCooldown(clock, ResultsInputDelay),
		selectionCD: NewCooldown(clock, SelectionTime),
	}
	for i, p := range state.Players {
		r.records[i] = IsNewRecord(r.highScores, p.Score)
	}
	r.inputDelay.Reset()
	r.selectionCD.Reset()
	return r
}

// Run steps the screen at the frame rate until a player confirms or quits
func (r *ResultsScreen) Run(ctx context.Context) ExitCode {
	ticker := time.NewTicker(FrameDuration)
	defer ticker.Stop()

	for !r.done {
		select {
		case <-ctx.Done():
			return ExitQuit
		case <-ticker.C:
			r.Step()
		}
	}
	return r.exit
}

// Step advances one frame
func (r *ResultsScreen) Step() {
	if r.done {
		return
	}
	r.clock.Advance()

	if r.inputDelay.Finished() {
		switch {
		case r.env.Input.Held(ControlQuit):
			r.close(ExitQuit)
		case r.env.Input.Held(ControlConfirm):
			r.close(ExitPlayAgain)
		}
	}
	if !r.done && (r.records[0] || r.records[1]) && r.selectionCD.Finished() {
		for i := range r.names {
			if r.records[i] && r.editName(i) {
				r.selectionCD.Reset()
			}
		}
	}
	r.env.Render.RenderResults(r.Results())
}

// editName applies one player's name controls; reports whether anything changed
func (r *ResultsScreen) editName(i int) bool {
	c := playerControls[i]
	n := &r.names[i]
	changed := false
	if r.env.Input.Held(c.Right) {
		n.Next()
		changed = true
	}
	if r.env.Input.Held(c.Left) {
		n.Prev()
		changed = true
	}
	if r.env.Input.Held(c.Up) {
		n.Up()
		changed = true
	}
	if r.env.Input.Held(c.Down) {
		n.Down()
		changed = true
	}
	return changed
}

// close saves every record and ends the screen
func (r *ResultsScreen) close(code ExitCode) {
	saved := false
	for i, p := range r.state.Players {
		if !r.records[i] {
			continue
		}
		r.highScores = InsertScore(r.highScores, Score{Name: r.names[i].String(), Value: p.Score})
		saved = true
	}
	if saved {
		saveHighScores(r.store, r.highScores, r.env.Logger)
	}
	r.done = true
	r.exit = code
}

// Results builds the render snapshot
func (r *ResultsScreen) Results() ResultsState {
	rs := ResultsState{
		Level:      r.state.Level,
		Records:    r.records,
		Ready:      r.inputDelay.Finished(),
		HighScores: append([]Score(nil), r.highScores...),
	}
	for i, p := range r.state.Players {
		rs.Players[i] = p.ToState()
		rs.Names[i] = r.names[i].String()
		rs.Cursors[i] = r.names[i].Cursor()
	}
	return rs
}

// HighScores returns the leaderboard as it stands
func (r *ResultsScreen) HighScores() []Score {
	return append([]Score(nil), r.highScores...)
}

// Done reports whether the screen has closed
func (r *ResultsScreen) Done() bool {
	return r.done
}
