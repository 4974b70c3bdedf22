package main

import (
	"path/filepath"
	"testing"
	"time"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := OpenDB(filepath.Join(t.TempDir(), "invaders.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestDBHighScores(t *testing.T) {
	db := openTestDB(t)

	scores, err := db.LoadHighScores()
	if err != nil {
		t.Fatal(err)
	}
	if len(scores) != 0 {
		t.Fatalf("expected empty board, got %v", scores)
	}

	board := append(fullBoard(), Score{"TOP", 900}, Score{"LOW", 10})
	if err := db.SaveHighScores(board); err != nil {
		t.Fatal(err)
	}
	scores, err = db.LoadHighScores()
	if err != nil {
		t.Fatal(err)
	}
	if len(scores) != MaxHighScores {
		t.Fatalf("expected %d entries, got %d", MaxHighScores, len(scores))
	}
	if scores[0] != (Score{"TOP", 900}) || scores[6] != (Score{"FFF", 200}) {
		t.Errorf("unexpected board %+v", scores)
	}

	// saving again replaces rather than appends
	if err := db.SaveHighScores(scores[:3]); err != nil {
		t.Fatal(err)
	}
	scores, _ = db.LoadHighScores()
	if len(scores) != 3 {
		t.Errorf("expected 3 entries after replace, got %d", len(scores))
	}

	if err := db.ResetScores(); err != nil {
		t.Fatal(err)
	}
	scores, _ = db.LoadHighScores()
	if len(scores) != 0 {
		t.Errorf("expected empty board after reset, got %d", len(scores))
	}
}

func TestDBRuns(t *testing.T) {
	db := openTestDB(t)
	start := time.Unix(1700000000, 0)

	for i, id := range []string{"run-a", "run-b"} {
		rec := RunRecord{
			ID:         id,
			Difficulty: DifficultyHard,
			Level:      i + 2,
			Players: [2]PlayerStats{
				{Score: 100 * (i + 1), Lives: 1, BulletsShot: 10, ShipsDestroyed: 4},
				{Score: 50, Lives: 0, BulletsShot: 3, ShipsDestroyed: 1},
			},
			StartedAt: start,
			EndedAt:   start.Add(time.Duration(i+1) * time.Minute),
		}
		if err := db.RecordRun(rec); err != nil {
			t.Fatal(err)
		}
	}
	if err := db.RecordRun(RunRecord{ID: "run-a", StartedAt: start, EndedAt: start}); err == nil {
		t.Error("duplicate run ID should fail")
	}

	runs, err := db.RecentRuns(10)
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 2 {
		t.Fatalf("expected 2 runs, got %d", len(runs))
	}
	r := runs[0]
	if r.ID != "run-b" || r.Level != 3 || r.Difficulty != DifficultyHard {
		t.Errorf("unexpected latest run %+v", r)
	}
	if r.Players[0].Score != 200 || r.Players[1].ShipsDestroyed != 1 {
		t.Errorf("player stats not restored: %+v", r.Players)
	}
	if !r.EndedAt.Equal(start.Add(2 * time.Minute)) {
		t.Errorf("unexpected end time %v", r.EndedAt)
	}
}

func TestDBEvents(t *testing.T) {
	db := openTestDB(t)
	events := []Event{
		{RunID: "r1", Type: EvtShot, Player: 0, Timestamp: time.Now()},
		{RunID: "r1", Type: EvtShot, Player: 1, Timestamp: time.Now()},
		{RunID: "r1", Type: EvtKill, Player: 1, Value: 30, Timestamp: time.Now()},
		{RunID: "r2", Type: EvtShot, Player: 0, Timestamp: time.Now()},
	}
	if err := db.InsertEvents(events); err != nil {
		t.Fatal(err)
	}
	counts, err := db.EventCounts("r1")
	if err != nil {
		t.Fatal(err)
	}
	if counts[EvtShot] != 2 || counts[EvtKill] != 1 || len(counts) != 2 {
		t.Errorf("unexpected counts %v", counts)
	}
}

func TestDBSettings(t *testing.T) {
	db := openTestDB(t)
	if v := db.GetSetting("missing"); v != "" {
		t.Errorf("expected empty value, got %q", v)
	}
	if err := db.SetSetting("k", "one"); err != nil {
		t.Fatal(err)
	}
	if err := db.SetSetting("k", "two"); err != nil {
		t.Fatal(err)
	}
	if v := db.GetSetting("k"); v != "two" {
		t.Errorf("expected two, got %q", v)
	}
}
