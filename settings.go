package main

import (
	"fmt"
	"strings"
	"time"
)

// Difficulty is the tier picked before a run
type Difficulty int

const (
	DifficultyEasy   Difficulty = 0
	DifficultyMedium Difficulty = 1
	DifficultyHard   Difficulty = 2
)

const NumLevels = 7

// GameSettings holds per-level tuning
type GameSettings struct {
	FormationWidth   int           // columns
	FormationHeight  int           // rows
	BaseSpeed        int           // frames between formation steps at full strength
	ShootingInterval time.Duration // mean time between enemy shots
}

var baseSettings = [NumLevels]GameSettings{
	{FormationWidth: 4, FormationHeight: 4, BaseSpeed: 60, ShootingInterval: 2500 * time.Millisecond},
	{FormationWidth: 5, FormationHeight: 5, BaseSpeed: 50, ShootingInterval: 2000 * time.Millisecond},
	{FormationWidth: 6, FormationHeight: 5, BaseSpeed: 40, ShootingInterval: 1500 * time.Millisecond},
	{FormationWidth: 6, FormationHeight: 6, BaseSpeed: 30, ShootingInterval: 1000 * time.Millisecond},
	{FormationWidth: 7, FormationHeight: 6, BaseSpeed: 20, ShootingInterval: 500 * time.Millisecond},
	{FormationWidth: 7, FormationHeight: 7, BaseSpeed: 10, ShootingInterval: 250 * time.Millisecond},
	{FormationWidth: 8, FormationHeight: 7, BaseSpeed: 2, ShootingInterval: 100 * time.Millisecond},
}

// Offsets added to every level of the base table
var difficultyWeights = [...]GameSettings{
	DifficultyEasy:   {FormationWidth: -1, FormationHeight: -1, BaseSpeed: 0, ShootingInterval: 400 * time.Millisecond},
	DifficultyMedium: {FormationWidth: 0, FormationHeight: 1, BaseSpeed: 20, ShootingInterval: 250 * time.Millisecond},
	DifficultyHard:   {FormationWidth: 1, FormationHeight: 2, BaseSpeed: 50, ShootingInterval: 100 * time.Millisecond},
}

var difficultyNames = [...]string{
	DifficultyEasy:   "easy",
	DifficultyMedium: "medium",
	DifficultyHard:   "hard",
}

func (d Difficulty) String() string {
	if d < 0 || int(d) >= len(difficultyNames) {
		return fmt.Sprintf("difficulty(%d)", int(d))
	}
	return difficultyNames[d]
}

// ParseDifficulty maps a name like "hard" to its tier
func ParseDifficulty(s string) (Difficulty, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for i, n := range difficultyNames {
		if n == name {
			return Difficulty(i), nil
		}
	}
	return 0, fmt.Errorf("unknown difficulty %q (want easy, medium or hard)", s)
}

// SettingsTable is the per-level settings for one difficulty, indexed 1..NumLevels
type SettingsTable []GameSettings

// NewSettingsTable derives the level table for a difficulty
func NewSettingsTable(d Difficulty) SettingsTable {
	if d < 0 || int(d) >= len(difficultyWeights) {
		panic(fmt.Sprintf("settings: %v out of range", d))
	}
	w := difficultyWeights[d]
	table := make(SettingsTable, NumLevels)
	for i, b := range baseSettings {
		table[i] = GameSettings{
			FormationWidth:   b.FormationWidth + w.FormationWidth,
			FormationHeight:  b.FormationHeight + w.FormationHeight,
			BaseSpeed:        b.BaseSpeed + w.BaseSpeed,
			ShootingInterval: b.ShootingInterval + w.ShootingInterval,
		}
	}
	return table
}

// Level returns the settings for level n. An index outside 1..len is a bug
// in the caller and panics.
func (t SettingsTable) Level(n int) GameSettings {
	if n < 1 || n > len(t) {
		panic(fmt.Sprintf("settings: level %d out of range 1..%d", n, len(t)))
	}
	return t[n-1]
}
