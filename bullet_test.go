package main

import "testing"

func TestBulletPoolReuse(t *testing.T) {
	pool := NewBulletPool()
	owner := &Ship{Player: 1}

	b1 := pool.Get(100, 200, ShipBulletSpeed, owner)
	if pool.Allocated() != 1 {
		t.Fatalf("expected 1 allocation, got %d", pool.Allocated())
	}
	pool.Recycle([]*Bullet{b1})
	if pool.Free() != 1 {
		t.Fatalf("expected 1 free bullet, got %d", pool.Free())
	}

	b2 := pool.Get(50, 300, EnemyBulletSpeed, nil)
	if b2 != b1 {
		t.Error("pool should hand back the recycled instance")
	}
	if pool.Allocated() != 1 {
		t.Errorf("reuse should not allocate, got %d allocations", pool.Allocated())
	}
	// No state from the first shot may leak
	if b2.Owner != nil {
		t.Error("owner leaked from previous use")
	}
	if b2.Speed != EnemyBulletSpeed {
		t.Errorf("expected speed %d, got %d", EnemyBulletSpeed, b2.Speed)
	}
	if b2.X != 50-BulletWidth/2 || b2.Y != 300 {
		t.Errorf("expected position (%d,300), got (%d,%d)", 50-BulletWidth/2, b2.X, b2.Y)
	}
	if b2.Width != BulletWidth || b2.Height != BulletHeight || b2.Kind != KindBullet {
		t.Error("shape not reset on reuse")
	}
	if b2.pooled {
		t.Error("bullet handed out while still marked pooled")
	}
}

func TestBulletPoolNoDoubleUse(t *testing.T) {
	pool := NewBulletPool()
	live := make(map[*Bullet]bool)
	var held []*Bullet

	for round := 0; round < 20; round++ {
		for i := 0; i < 5; i++ {
			b := pool.Get(i, round, ShipBulletSpeed, nil)
			if live[b] {
				t.Fatalf("round %d: instance handed out twice", round)
			}
			live[b] = true
			held = append(held, b)
		}
		// Release every other bullet, twice to check idempotence
		var release []*Bullet
		var keep []*Bullet
		for i, b := range held {
			if i%2 == 0 {
				release = append(release, b)
				delete(live, b)
			} else {
				keep = append(keep, b)
			}
		}
		pool.Recycle(release)
		pool.Recycle(release)
		held = keep
	}
	if pool.Free()+len(held) != pool.Allocated() {
		t.Errorf("free (%d) + live (%d) should equal allocated (%d)",
			pool.Free(), len(held), pool.Allocated())
	}
}

func TestBulletUpdateAndOwnership(t *testing.T) {
	pool := NewBulletPool()
	up := pool.Get(10, 100, ShipBulletSpeed, &Ship{})
	down := pool.Get(10, 100, EnemyBulletSpeed, nil)
	up.Update()
	down.Update()
	if up.Y != 100+ShipBulletSpeed {
		t.Errorf("player bullet should move up, y=%d", up.Y)
	}
	if down.Y != 100+EnemyBulletSpeed {
		t.Errorf("enemy bullet should move down, y=%d", down.Y)
	}
	if up.EnemyOwned() || !down.EnemyOwned() {
		t.Error("ownership should follow the sign of the speed")
	}
	if down.ToState().Variant != 1 || up.ToState().Variant != 0 {
		t.Error("enemy fire should be tagged in its state")
	}
}
