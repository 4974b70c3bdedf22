package main

import "time"

const (
	ShipWidth         = 26
	ShipHeight        = 16
	ShipSpeed         = 2 // px/frame
	ShipShootInterval = 750 * time.Millisecond
	ShipDestroyedTime = 1000 * time.Millisecond // explosion shown before the ship flies again
	ShipSpawnOffset   = 150                     // horizontal distance from the field center
	ShipSpawnMargin   = 30                      // distance from the bottom edge
)

// Ship is a player-controlled cannon
type Ship struct {
	Entity
	Player      int // 0 or 1
	Speed       int
	shootCD     *Cooldown
	destroyedCD *Cooldown
}

// NewShip creates a ship for the given player at (x, y)
func NewShip(player, x, y int, clock Clock) *Ship {
	return &Ship{
		Entity: Entity{
			X:      x,
			Y:      y,
			Width:  ShipWidth,
			Height: ShipHeight,
			Kind:   KindShip,
		},
		Player:      player,
		Speed:       ShipSpeed,
		shootCD:     NewCooldown(clock, ShipShootInterval),
		destroyedCD: NewCooldown(clock, ShipDestroyedTime),
	}
}

// CanMoveRight reports whether a step right keeps the ship inside the field
func (s *Ship) CanMoveRight(fieldWidth int) bool {
	return s.X+s.Width+s.Speed <= fieldWidth-1
}

// CanMoveLeft reports whether a step left keeps the ship inside the field
func (s *Ship) CanMoveLeft() bool {
	return s.X-s.Speed >= 1
}

// MoveRight moves the ship one step right
func (s *Ship) MoveRight() {
	s.X += s.Speed
}

// MoveLeft moves the ship one step left
func (s *Ship) MoveLeft() {
	s.X -= s.Speed
}

// Shoot fires a bullet from the nose if the shot cooldown allows it.
// Returns nil when the ship is still reloading.
func (s *Ship) Shoot(pool *BulletPool) *Bullet {
	if !s.shootCD.Finished() {
		return nil
	}
	s.shootCD.Reset()
	return pool.Get(s.CenterX(), s.Y, ShipBulletSpeed, s)
}

// Destroy starts the explosion timeout. Returns false if the ship was already down.
func (s *Ship) Destroy() bool {
	if s.IsDestroyed() {
		return false
	}
	s.destroyedCD.Reset()
	return true
}

// IsDestroyed is true while the explosion timeout runs
func (s *Ship) IsDestroyed() bool {
	return !s.destroyedCD.Finished()
}

// Relocate places the ship at an absolute position
func (s *Ship) Relocate(x, y int) {
	s.X = x
	s.Y = y
}

// ToState converts to protocol state
func (s *Ship) ToState() EntityState {
	return EntityState{
		Kind:      s.Kind,
		Variant:   uint8(s.Player),
		X:         s.X,
		Y:         s.Y,
		W:         s.Width,
		H:         s.Height,
		Destroyed: s.IsDestroyed(),
	}
}
