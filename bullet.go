package main

const (
	BulletWidth      = 6
	BulletHeight     = 10
	ShipBulletSpeed  = -6 // px/frame, upward
	EnemyBulletSpeed = 4  // px/frame, downward
)

// Bullet is a projectile; the sign of Speed gives its direction
type Bullet struct {
	Entity
	Speed  int
	Owner  *Ship // nil for enemy fire
	pooled bool
}

// Update moves the bullet one frame
func (b *Bullet) Update() {
	b.Y += b.Speed
}

// EnemyOwned reports whether the bullet travels downward
func (b *Bullet) EnemyOwned() bool {
	return b.Speed > 0
}

// ToState converts to protocol state. Variant is 1 for enemy fire.
func (b *Bullet) ToState() EntityState {
	es := EntityState{
		Kind: b.Kind,
		X:    b.X,
		Y:    b.Y,
		W:    b.Width,
		H:    b.Height,
	}
	if b.EnemyOwned() {
		es.Variant = 1
	}
	return es
}

// BulletPool recycles bullet instances between shots
type BulletPool struct {
	free      []*Bullet
	allocated int
}

// NewBulletPool creates an empty pool
func NewBulletPool() *BulletPool {
	return &BulletPool{free: make([]*Bullet, 0, 32)}
}

// Get returns a bullet horizontally centered on x, reusing a free instance
// when one is available. Every field is reassigned.
func (p *BulletPool) Get(x, y, speed int, owner *Ship) *Bullet {
	var b *Bullet
	if n := len(p.free); n > 0 {
		b = p.free[n-1]
		p.free[n-1] = nil
		p.free = p.free[:n-1]
	} else {
		b = &Bullet{}
		p.allocated++
	}
	*b = Bullet{
		Entity: Entity{
			X:      x - BulletWidth/2,
			Y:      y,
			Width:  BulletWidth,
			Height: BulletHeight,
			Kind:   KindBullet,
		},
		Speed: speed,
		Owner: owner,
	}
	return b
}

// Recycle returns a batch of dead bullets to the free list. Bullets already
// in the pool are skipped so an instance is never handed out twice.
func (p *BulletPool) Recycle(bullets []*Bullet) {
	for _, b := range bullets {
		if b == nil || b.pooled {
			continue
		}
		*b = Bullet{pooled: true}
		p.free = append(p.free, b)
	}
}

// Free returns the number of instances waiting for reuse
func (p *BulletPool) Free() int {
	return len(p.free)
}

// Allocated returns how many instances the pool has ever created
func (p *BulletPool) Allocated() int {
	return p.allocated
}
