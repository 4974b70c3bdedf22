package main

import (
	"math"
	"math/rand"
	"time"
)

const (
	FormationOriginX      = 20
	FormationOriginY      = 100
	FormationSpacing      = 40
	FormationStepX        = 8  // px per horizontal step
	FormationDescent      = 20 // px per descent step
	FormationSideMargin   = 20
	FormationBottomMargin = 80
	FormationMinInterval  = 10  // frames between steps with one ship left
	ShootingVariance      = 0.2 // fraction of the shooting interval

	proportionC = 0.2
	proportionB = 0.4
)

// Direction is the formation's horizontal heading
type Direction int

const (
	DirLeft  Direction = -1
	DirRight Direction = 1
)

// Formation moves a grid of enemy ships as one body
type Formation struct {
	cols, rows int
	// cells is row-major; a slot becomes nil once its explosion has been shown
	cells [][]*EnemyShip

	fieldW, fieldH int
	total          int
	live           int
	baseSpeed      int

	interval  int // frames between steps
	counter   int
	direction Direction
	offsetX   int
	offsetY   int
	descents  int

	shootCD    *Cooldown
	rng        *rand.Rand
	shooterBuf []*EnemyShip
}

// NewFormation builds the grid for one level
func NewFormation(s GameSettings, fieldW, fieldH int, clock Clock, rng *rand.Rand) *Formation {
	cols, rows := s.FormationWidth, s.FormationHeight
	cells := make([][]*EnemyShip, rows)
	for r := 0; r < rows; r++ {
		cells[r] = make([]*EnemyShip, cols)
		v := rowVariant(r, rows)
		for c := 0; c < cols; c++ {
			e := NewEnemyShip(
				FormationOriginX+FormationSpacing*c,
				FormationOriginY+FormationSpacing*r,
				v, clock)
			e.Row, e.Col = r, c
			cells[r][c] = e
		}
	}

	variance := time.Duration(float64(s.ShootingInterval) * ShootingVariance)
	f := &Formation{
		cols:       cols,
		rows:       rows,
		cells:      cells,
		fieldW:     fieldW,
		fieldH:     fieldH,
		total:      cols * rows,
		live:       cols * rows,
		baseSpeed:  s.BaseSpeed,
		direction:  DirRight,
		shootCD:    NewVariableCooldown(clock, rng, s.ShootingInterval, variance),
		rng:        rng,
		shooterBuf: make([]*EnemyShip, 0, cols),
	}
	f.updateInterval()
	// First volley waits a full interval instead of firing on frame one
	f.shootCD.Reset()
	return f
}

// rowVariant gives the back rows the higher point tiers
func rowVariant(row, rows int) Variant {
	p := float64(row) / float64(rows)
	switch {
	case p < proportionC:
		return VariantC
	case p < proportionC+proportionB:
		return VariantB
	default:
		return VariantA
	}
}

// updateInterval speeds the swarm up as it thins out
func (f *Formation) updateInterval() {
	if f.total == 0 {
		f.interval = FormationMinInterval
		return
	}
	remaining := float64(f.live) / float64(f.total)
	f.interval = int(math.Pow(remaining, 2)*float64(f.baseSpeed)) + FormationMinInterval
}

// Update advances the movement counter and steps the swarm when it expires
func (f *Formation) Update() {
	f.clearExplosions()
	if f.live == 0 {
		return
	}
	f.counter++
	if f.counter < f.interval {
		return
	}
	f.counter = 0

	minX, maxX, maxY, _ := f.liveBounds()
	dx, dy := 0, 0
	switch {
	case f.direction == DirRight && maxX+FormationStepX > f.fieldW-FormationSideMargin,
		f.direction == DirLeft && minX-FormationStepX < FormationSideMargin:
		f.direction = -f.direction
		if maxY+FormationDescent <= f.fieldH-FormationBottomMargin {
			dy = FormationDescent
			f.descents++
		}
	default:
		dx = FormationStepX * int(f.direction)
	}

	f.offsetX += dx
	f.offsetY += dy
	for _, row := range f.cells {
		for _, e := range row {
			if e == nil {
				continue
			}
			e.X = e.baseX + f.offsetX
			e.Y = e.baseY + f.offsetY
			e.anim = !e.anim
		}
	}
}

// clearExplosions frees slots whose explosion has been displayed
func (f *Formation) clearExplosions() {
	for _, row := range f.cells {
		for c, e := range row {
			if e != nil && e.ExplosionOver() {
				row[c] = nil
			}
		}
	}
}

// liveBounds returns the bounding box of the surviving ships
func (f *Formation) liveBounds() (minX, maxX, maxY int, ok bool) {
	minX = math.MaxInt
	maxX = math.MinInt
	maxY = math.MinInt
	for _, row := range f.cells {
		for _, e := range row {
			if e == nil || e.destroyed {
				continue
			}
			ok = true
			if e.X < minX {
				minX = e.X
			}
			if e.X+e.Width > maxX {
				maxX = e.X + e.Width
			}
			if e.Y+e.Height > maxY {
				maxY = e.Y + e.Height
			}
		}
	}
	return
}

// Shooters returns the frontmost live ship of every column that still has one.
// The slice is reused between calls.
func (f *Formation) Shooters() []*EnemyShip {
	f.shooterBuf = f.shooterBuf[:0]
	for c := 0; c < f.cols; c++ {
		for r := f.rows - 1; r >= 0; r-- {
			if e := f.cells[r][c]; e != nil && !e.destroyed {
				f.shooterBuf = append(f.shooterBuf, e)
				break
			}
		}
	}
	return f.shooterBuf
}

// Shoot fires from a random column's front ship once the shooting cooldown
// has expired. Returns nil when nothing fires this frame.
func (f *Formation) Shoot(pool *BulletPool) *Bullet {
	if f.live == 0 || !f.shootCD.Finished() {
		return nil
	}
	shooters := f.Shooters()
	if len(shooters) == 0 {
		return nil
	}
	s := shooters[f.rng.Intn(len(shooters))]
	f.shootCD.Reset()
	return pool.Get(s.CenterX(), s.Y+s.Height, EnemyBulletSpeed, nil)
}

// FirstHit returns the first live ship, in row-major order, overlapping b
func (f *Formation) FirstHit(b *Entity) *EnemyShip {
	for _, row := range f.cells {
		for _, e := range row {
			if e == nil || e.destroyed {
				continue
			}
			if CheckCollision(b, &e.Entity) {
				return e
			}
		}
	}
	return nil
}

// Destroy marks a cell destroyed. The slot is kept so rows and columns stay
// stable. Returns false if the ship was not a live member of this formation.
func (f *Formation) Destroy(e *EnemyShip) bool {
	if e == nil || e.Row < 0 || e.Row >= f.rows || e.Col < 0 || e.Col >= f.cols {
		return false
	}
	if f.cells[e.Row][e.Col] != e || !e.Destroy() {
		return false
	}
	f.live--
	f.updateInterval()
	return true
}

// Cell returns the ship in a slot, nil once it is gone
func (f *Formation) Cell(row, col int) *EnemyShip {
	return f.cells[row][col]
}

// IsEmpty reports whether every ship has been destroyed
func (f *Formation) IsEmpty() bool {
	return f.live == 0
}

// LiveCount returns the number of surviving ships
func (f *Formation) LiveCount() int {
	return f.live
}

// Size returns the grid dimensions
func (f *Formation) Size() (cols, rows int) {
	return f.cols, f.rows
}

// Interval returns the frames between steps
func (f *Formation) Interval() int {
	return f.interval
}

// Direction returns the current horizontal heading
func (f *Formation) Direction() Direction {
	return f.direction
}

// Descents returns how many times the swarm has stepped down
func (f *Formation) Descents() int {
	return f.descents
}

// AppendStates appends every drawable ship, row-major
func (f *Formation) AppendStates(dst []EntityState) []EntityState {
	for _, row := range f.cells {
		for _, e := range row {
			if e != nil {
				dst = append(dst, e.ToState())
			}
		}
	}
	return dst
}
