package main

const (
	MaxLives           = 3
	LifeScore          = 100 // awarded per life beyond the first when a level ends
	ExtraLifeFrequency = 3   // an extra life every this many levels
)

// PlayerStats is one player's progress through a run
type PlayerStats struct {
	Score          int
	Lives          int
	BulletsShot    int
	ShipsDestroyed int
}

// Alive reports whether the player still has lives
func (p PlayerStats) Alive() bool {
	return p.Lives > 0
}

// Accuracy returns the kill ratio in percent
func (p PlayerStats) Accuracy() float64 {
	if p.BulletsShot == 0 {
		return 0
	}
	return float64(p.ShipsDestroyed) / float64(p.BulletsShot) * 100
}

// ToState converts to protocol state
func (p PlayerStats) ToState() PlayerState {
	return PlayerState{
		Score:          p.Score,
		Lives:          p.Lives,
		BulletsShot:    p.BulletsShot,
		ShipsDestroyed: p.ShipsDestroyed,
	}
}

// GameState is the progress carried from one level to the next. It is passed
// by value; a level works on its own copy and hands back a new one.
type GameState struct {
	Level   int
	Players [2]PlayerStats
}

// NewGameState returns the state at the start of a run
func NewGameState() GameState {
	return GameState{
		Level: 1,
		Players: [2]PlayerStats{
			{Lives: MaxLives},
			{Lives: MaxLives},
		},
	}
}

// AnyAlive reports whether at least one player can still play
func (s GameState) AnyAlive() bool {
	return s.Players[0].Alive() || s.Players[1].Alive()
}

// TotalScore sums both players' scores
func (s GameState) TotalScore() int {
	return s.Players[0].Score + s.Players[1].Score
}

// Next returns the state for the following level
func (s GameState) Next() GameState {
	s.Level++
	return s
}

// BonusLives decides which players earn an extra life before the level
// starts. Eliminated players are not revived.
func (s GameState) BonusLives(d Difficulty) [2]bool {
	var bonus [2]bool
	for i, p := range s.Players {
		if !p.Alive() {
			continue
		}
		if d == DifficultyEasy && s.Level == 1 {
			bonus[i] = true
			continue
		}
		bonus[i] = s.Level%ExtraLifeFrequency == 0 && p.Lives < MaxLives
	}
	return bonus
}
