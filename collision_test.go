package main

import "testing"

func TestCheckCollision(t *testing.T) {
	a := &Entity{X: 100, Y: 100, Width: 20, Height: 20}

	// Overlapping boxes
	b := &Entity{X: 105, Y: 105, Width: 5, Height: 5}
	if !CheckCollision(a, b) {
		t.Error("boxes should collide (overlapping)")
	}

	// Same center
	c := &Entity{X: 100, Y: 100, Width: 20, Height: 20}
	if !CheckCollision(a, c) {
		t.Error("same position should collide")
	}

	// Touching edges is not a collision (strict <)
	d := &Entity{X: 120, Y: 100, Width: 20, Height: 20}
	if CheckCollision(a, d) {
		t.Error("edge-touching boxes should not collide")
	}

	// Overlap on X only
	e := &Entity{X: 105, Y: 200, Width: 20, Height: 20}
	if CheckCollision(a, e) {
		t.Error("boxes separated on Y should not collide")
	}
}

func TestCheckCollisionSymmetric(t *testing.T) {
	cases := []struct{ a, b Entity }{
		{Entity{X: 0, Y: 0, Width: 26, Height: 16}, Entity{X: 10, Y: 5, Width: 6, Height: 10}},
		{Entity{X: 50, Y: 50, Width: 24, Height: 16}, Entity{X: 80, Y: 50, Width: 6, Height: 10}},
		{Entity{X: -32, Y: 60, Width: 32, Height: 14}, Entity{X: -20, Y: 62, Width: 6, Height: 10}},
		{Entity{X: 3, Y: 3, Width: 1, Height: 1}, Entity{X: 3, Y: 3, Width: 1, Height: 1}},
	}
	for i, c := range cases {
		if CheckCollision(&c.a, &c.b) != CheckCollision(&c.b, &c.a) {
			t.Errorf("case %d: collision result depends on argument order", i)
		}
	}
}

func TestEntityCenterAndMove(t *testing.T) {
	e := Entity{X: 10, Y: 20, Width: 6, Height: 10}
	if e.CenterX() != 13 || e.CenterY() != 25 {
		t.Errorf("expected center (13,25), got (%d,%d)", e.CenterX(), e.CenterY())
	}
	e.Move(2, -3)
	if e.X != 12 || e.Y != 17 {
		t.Errorf("expected (12,17) after move, got (%d,%d)", e.X, e.Y)
	}
}
