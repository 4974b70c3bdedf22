package main

import (
	"math/rand"
	"time"
)

// Variant selects an enemy's sprite and point tier
type Variant uint8

const (
	VariantA     Variant = iota // front rows
	VariantB                    // middle rows
	VariantC                    // back rows
	VariantBonus                // special ship crossing the top
)

const (
	EnemyWidth         = 24
	EnemyHeight        = 16
	EnemyExplosionTime = 500 * time.Millisecond

	BonusWidth  = 32
	BonusHeight = 14
	BonusStartX = -32
	BonusStartY = 60
	BonusSpeed  = 2   // px/frame
	BonusPoints = 100 // multiplied by 1..3
)

var variantPoints = [...]int{
	VariantA: 10,
	VariantB: 20,
	VariantC: 30,
}

// EnemyShip is a formation cell or the bonus ship
type EnemyShip struct {
	Entity
	Variant     Variant
	PointValue  int
	Row, Col    int
	baseX       int
	baseY       int
	destroyed   bool
	explosionCD *Cooldown
	anim        bool
}

// NewEnemyShip creates a formation ship at its base position
func NewEnemyShip(x, y int, v Variant, clock Clock) *EnemyShip {
	return &EnemyShip{
		Entity: Entity{
			X:      x,
			Y:      y,
			Width:  EnemyWidth,
			Height: EnemyHeight,
			Kind:   KindEnemy,
		},
		Variant:     v,
		PointValue:  variantPoints[v],
		baseX:       x,
		baseY:       y,
		explosionCD: NewCooldown(clock, EnemyExplosionTime),
	}
}

// NewBonusShip creates the special ship at the left edge with a random value
func NewBonusShip(rng *rand.Rand, clock Clock) *EnemyShip {
	return &EnemyShip{
		Entity: Entity{
			X:      BonusStartX,
			Y:      BonusStartY,
			Width:  BonusWidth,
			Height: BonusHeight,
			Kind:   KindBonus,
		},
		Variant:     VariantBonus,
		PointValue:  BonusPoints * (1 + rng.Intn(3)),
		baseX:       BonusStartX,
		baseY:       BonusStartY,
		explosionCD: NewCooldown(clock, EnemyExplosionTime),
	}
}

// Destroy marks the ship destroyed and starts its explosion.
// Returns false if it was already destroyed.
func (e *EnemyShip) Destroy() bool {
	if e.destroyed {
		return false
	}
	e.destroyed = true
	e.explosionCD.Reset()
	return true
}

// IsDestroyed reports whether the ship has been hit
func (e *EnemyShip) IsDestroyed() bool {
	return e.destroyed
}

// ExplosionOver is true once a destroyed ship no longer needs drawing
func (e *EnemyShip) ExplosionOver() bool {
	return e.destroyed && e.explosionCD.Finished()
}

// ToState converts to protocol state
func (e *EnemyShip) ToState() EntityState {
	return EntityState{
		Kind:      e.Kind,
		Variant:   uint8(e.Variant),
		X:         e.X,
		Y:         e.Y,
		W:         e.Width,
		H:         e.Height,
		Destroyed: e.destroyed,
		Anim:      e.anim,
	}
}
