package main

// Kind tags the variant an Entity belongs to
type Kind uint8

const (
	KindShip Kind = iota + 1
	KindEnemy
	KindBonus
	KindBullet
)

// Entity is the axis-aligned box shared by ships, enemies and bullets
type Entity struct {
	X, Y          int
	Width, Height int
	Kind          Kind
}

// CenterX returns the horizontal center of the box
func (e *Entity) CenterX() int {
	return e.X + e.Width/2
}

// CenterY returns the vertical center of the box
func (e *Entity) CenterY() int {
	return e.Y + e.Height/2
}

// Move shifts the entity by the given offsets
func (e *Entity) Move(dx, dy int) {
	e.X += dx
	e.Y += dy
}

// CheckCollision checks if two boxes overlap: the distance between centers must
// be strictly below the sum of half extents on both axes.
func CheckCollision(a, b *Entity) bool {
	maxDX := a.Width/2 + b.Width/2
	maxDY := a.Height/2 + b.Height/2
	dx := absInt(a.CenterX() - b.CenterX())
	dy := absInt(a.CenterY() - b.CenterY())
	return dx < maxDX && dy < maxDY
}
