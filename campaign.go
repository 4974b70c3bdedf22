package main

import (
	"context"
	"time"
)

// RunStore records finished campaigns
type RunStore interface {
	RecordRun(r RunRecord) error
}

// LevelRunner plays one level to completion
type LevelRunner func(ctx context.Context, g *Game) (ExitCode, GameState)

// Campaign plays the levels of one run in order
type Campaign struct {
	env        Env
	difficulty Difficulty
	table      SettingsTable
	runs       RunStore
	journal    *Journal
	runLevel   LevelRunner
	onStart    func(RunRecord)
	now        func() time.Time
}

// NewCampaign prepares a run at the given difficulty. runs and journal may be nil.
func NewCampaign(env Env, d Difficulty, runs RunStore, journal *Journal) *Campaign {
	return &Campaign{
		env:        env.withDefaults(),
		difficulty: d,
		table:      NewSettingsTable(d),
		runs:       runs,
		journal:    journal,
		runLevel: func(ctx context.Context, g *Game) (ExitCode, GameState) {
			return g.Run(ctx)
		},
		now: time.Now,
	}
}

// OnStart registers a callback invoked with the new run before the first level
func (c *Campaign) OnStart(fn func(RunRecord)) {
	c.onStart = fn
}

// Play runs levels until both players are out of lives, the last level is
// cleared or a player quits. It returns the final state and the record of the run.
func (c *Campaign) Play(ctx context.Context) (GameState, RunRecord, ExitCode) {
	rec := RunRecord{
		ID:         GenerateRunID(),
		Difficulty: c.difficulty,
		StartedAt:  c.now(),
	}
	env := c.env
	if c.journal != nil {
		env.Events = c.journal.ForRun(rec.ID)
	}
	env.Logger.Printf("Starting run %s on %s", rec.ID, c.difficulty)
	if c.onStart != nil {
		c.onStart(rec)
	}

	state := NewGameState()
	final := state
	code := ExitGameOver
	for state.Level <= NumLevels && state.AnyAlive() {
		g := NewGame(env, state, c.table.Level(state.Level), state.BonusLives(c.difficulty))
		code, final = c.runLevel(ctx, g)
		if code == ExitQuit {
			break
		}
		state = final.Next()
	}
	if code != ExitQuit && !final.AnyAlive() {
		code = ExitGameOver
	}

	rec.Level = final.Level
	rec.Players = final.Players
	rec.EndedAt = c.now()
	env.Logger.Printf("Run %s over at level %d: %d points, %d lives, %d shots, %d kills / %d points, %d lives, %d shots, %d kills",
		rec.ID, rec.Level,
		final.Players[0].Score, final.Players[0].Lives, final.Players[0].BulletsShot, final.Players[0].ShipsDestroyed,
		final.Players[1].Score, final.Players[1].Lives, final.Players[1].BulletsShot, final.Players[1].ShipsDestroyed)

	if c.runs != nil && code != ExitQuit {
		if err := c.runs.RecordRun(rec); err != nil {
			env.Logger.Printf("warning: %v", err)
		}
	}
	return final, rec, code
}
