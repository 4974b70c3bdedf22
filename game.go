package main

import (
	"context"
	"io"
	"log"
	"math/rand"
	"time"
)

const (
	FieldWidth     = 448
	FieldHeight    = 520
	SeparationLine = 40 // bullets above this line are off the playfield

	InputDelay           = 6000 * time.Millisecond
	BonusShipInterval    = 20000 * time.Millisecond
	BonusShipVariance    = 10000 * time.Millisecond
	ScreenChangeInterval = 1500 * time.Millisecond

	offFieldX = -100
	offFieldY = -100
)

// Phase is a level's lifecycle stage
type Phase uint8

const (
	PhaseInitializing Phase = iota
	PhaseCountdown
	PhaseActive
	PhaseFinishing
	PhaseDone
)

var phaseNames = [...]string{"initializing", "countdown", "active", "finishing", "done"}

func (p Phase) String() string {
	if int(p) < len(phaseNames) {
		return phaseNames[p]
	}
	return "unknown"
}

// ExitCode tells the host controller how a screen ended
type ExitCode int

const (
	ExitNone ExitCode = iota
	ExitLevelCleared
	ExitGameOver
	ExitQuit
	ExitPlayAgain
)

// RenderSink draws frames handed over by the simulation. A Frame is never
// modified after it is passed in.
type RenderSink interface {
	RenderFrame(f Frame)
	RenderResults(r ResultsState)
}

// Env carries the collaborators of the simulation
type Env struct {
	Input  InputSource
	Render RenderSink
	Sound  SoundSink
	Events EventSink
	Logger *log.Logger
	Rand   *rand.Rand
}

// withDefaults fills unset collaborators with no-op implementations
func (e Env) withDefaults() Env {
	if e.Input == nil {
		e.Input = noInput{}
	}
	if e.Render == nil {
		e.Render = nopRender{}
	}
	if e.Sound == nil {
		e.Sound = nopSound{}
	}
	if e.Events == nil {
		e.Events = nopEvents{}
	}
	if e.Logger == nil {
		e.Logger = log.New(io.Discard, "", 0)
	}
	if e.Rand == nil {
		e.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return e
}

// Game simulates one level for two players
type Game struct {
	env      Env
	clock    *FrameClock
	settings GameSettings
	state    GameState
	bonus    [2]bool // extra life granted at level start
	width    int
	height   int

	phase Phase
	tick  uint64
	exit  ExitCode

	ships     [2]*Ship
	formation *Formation
	special   *EnemyShip

	specialCD  *Cooldown
	inputDelay *Cooldown
	finishCD   *Cooldown

	pool       *BulletPool
	bullets    []*Bullet
	toRemove   map[*Bullet]struct{}
	recycleBuf []*Bullet
}

// NewGame sets up a level from the carried state. bonusLife grants each
// player one extra life for this level.
func NewGame(env Env, state GameState, settings GameSettings, bonusLife [2]bool) *Game {
	env = env.withDefaults()
	clock := NewFrameClock()
	g := &Game{
		env:        env,
		clock:      clock,
		settings:   settings,
		state:      state,
		bonus:      bonusLife,
		width:      FieldWidth,
		height:     FieldHeight,
		phase:      PhaseInitializing,
		specialCD:  NewVariableCooldown(clock, env.Rand, BonusShipInterval, BonusShipVariance),
		inputDelay: NewCooldown(clock, InputDelay),
		finishCD:   NewCooldown(clock, ScreenChangeInterval),
		pool:       NewBulletPool(),
		bullets:    make([]*Bullet, 0, 32),
		toRemove:   make(map[*Bullet]struct{}),
	}
	for i := range g.state.Players {
		if bonusLife[i] {
			g.state.Players[i].Lives++
		}
	}
	g.formation = NewFormation(settings, g.width, g.height, clock, env.Rand)
	g.ships[0] = NewShip(0, g.width/2-ShipSpawnOffset, g.height-ShipSpawnMargin, clock)
	g.ships[1] = NewShip(1, g.width/2+ShipSpawnOffset, g.height-ShipSpawnMargin, clock)
	for i, p := range g.state.Players {
		if !p.Alive() {
			g.ships[i].Relocate(offFieldX, offFieldY)
		}
	}
	return g
}

// Run drives the level at the frame rate until it ends, the quit control is
// held or ctx is cancelled. Slow frames are not caught up.
func (g *Game) Run(ctx context.Context) (ExitCode, GameState) {
	ticker := time.NewTicker(FrameDuration)
	defer ticker.Stop()

	for g.phase != PhaseDone {
		select {
		case <-ctx.Done():
			return ExitQuit, g.state
		case <-ticker.C:
			if g.env.Input.Held(ControlQuit) {
				g.env.Logger.Printf("Level %d aborted", g.state.Level)
				return ExitQuit, g.state
			}
			g.Step()
		}
	}
	return g.exit, g.state
}

// Step advances the simulation by exactly one frame
func (g *Game) Step() {
	if g.phase == PhaseDone {
		return
	}
	g.clock.Advance()
	g.tick++

	switch g.phase {
	case PhaseInitializing:
		g.start()
	case PhaseCountdown:
		if g.inputDelay.Finished() {
			g.phase = PhaseActive
		}
	}

	if g.phase == PhaseActive {
		g.updateActive()
		g.manageCollisions()
	}
	if g.phase == PhaseActive || g.phase == PhaseFinishing {
		g.cleanBullets()
	}

	switch {
	case g.phase == PhaseActive && (g.formation.IsEmpty() || !g.state.AnyAlive()):
		g.phase = PhaseFinishing
		g.finishCD.Reset()
	case g.phase == PhaseFinishing && g.finishCD.Finished():
		g.finish()
	}

	g.env.Render.RenderFrame(g.Frame())
}

// start arms the level timers on the first frame
func (g *Game) start() {
	g.inputDelay.Reset()
	g.specialCD.Reset()
	g.phase = PhaseCountdown
	g.env.Logger.Printf("Starting level %d (%dx%d formation)",
		g.state.Level, g.settings.FormationWidth, g.settings.FormationHeight)
	g.env.Events.Track(Event{Type: EvtLevelStart, Level: g.state.Level, Player: -1, Tick: g.tick})
	g.env.Sound.Play(CueLevelStart)
}

func (g *Game) updateActive() {
	for i, s := range g.ships {
		p := &g.state.Players[i]
		if s.IsDestroyed() || !p.Alive() {
			continue
		}
		c := playerControls[i]
		if g.env.Input.Held(c.Right) && s.CanMoveRight(g.width) {
			s.MoveRight()
		}
		if g.env.Input.Held(c.Left) && s.CanMoveLeft() {
			s.MoveLeft()
		}
		if g.env.Input.Held(c.Fire) {
			if b := s.Shoot(g.pool); b != nil {
				g.bullets = append(g.bullets, b)
				p.BulletsShot++
				g.env.Sound.Play(CueShot)
				g.env.Events.Track(Event{Type: EvtShot, Level: g.state.Level, Player: i, Tick: g.tick})
			}
		}
	}

	g.updateSpecial()
	g.formation.Update()
	if b := g.formation.Shoot(g.pool); b != nil {
		g.bullets = append(g.bullets, b)
		g.env.Sound.Play(CueEnemyShot)
	}
}

// updateSpecial moves, spawns and despawns the bonus ship
func (g *Game) updateSpecial() {
	if g.special != nil {
		if !g.special.IsDestroyed() {
			g.special.Move(BonusSpeed, 0)
		} else if g.special.ExplosionOver() {
			g.special = nil
		}
	}
	if g.special == nil && g.specialCD.Finished() {
		g.special = NewBonusShip(g.env.Rand, g.clock)
		g.specialCD.Reset()
		g.env.Logger.Printf("A special ship appears")
		g.env.Sound.Play(CueBonusAppear)
		g.env.Events.Track(Event{Type: EvtBonusSpawn, Level: g.state.Level, Player: -1, Value: g.special.PointValue, Tick: g.tick})
	}
	if g.special != nil && g.special.X > g.width {
		g.special = nil
		g.env.Logger.Printf("The special ship has escaped")
		g.env.Events.Track(Event{Type: EvtBonusEscape, Level: g.state.Level, Player: -1, Tick: g.tick})
	}
}

// manageCollisions sweeps the live bullets once, then removes every bullet
// that hit something.
func (g *Game) manageCollisions() {
	for _, b := range g.bullets {
		if b.EnemyOwned() {
			g.hitPlayers(b)
		} else {
			g.hitEnemies(b)
		}
	}
	g.removeMarked()
}

func (g *Game) hitPlayers(b *Bullet) {
	for i, s := range g.ships {
		p := &g.state.Players[i]
		if !p.Alive() || s.IsDestroyed() {
			continue
		}
		if !CheckCollision(&b.Entity, &s.Entity) {
			continue
		}
		g.mark(b)
		if s.Destroy() {
			p.Lives--
			g.env.Logger.Printf("Hit on player %d ship, %d lives remaining", i+1, p.Lives)
			g.env.Sound.Play(CuePlayerHit)
			g.env.Events.Track(Event{Type: EvtLifeLost, Level: g.state.Level, Player: i, Value: p.Lives, Tick: g.tick})
			if p.Lives == 0 {
				s.Relocate(offFieldX, offFieldY)
			}
		}
		return
	}
}

func (g *Game) hitEnemies(b *Bullet) {
	if b.Owner == nil {
		return
	}
	if e := g.formation.FirstHit(&b.Entity); e != nil {
		if g.formation.Destroy(e) {
			g.credit(b, e, EvtKill)
		}
		return
	}
	if g.special != nil && !g.special.IsDestroyed() && CheckCollision(&b.Entity, &g.special.Entity) {
		if g.special.Destroy() {
			g.credit(b, g.special, EvtBonusKill)
		}
	}
}

// credit attributes a kill to the player who fired b
func (g *Game) credit(b *Bullet, e *EnemyShip, evt EventType) {
	i := b.Owner.Player
	p := &g.state.Players[i]
	p.Score += e.PointValue
	p.ShipsDestroyed++
	g.mark(b)
	if evt == EvtBonusKill {
		g.env.Sound.Play(CueBonusKill)
	} else {
		g.env.Sound.Play(CueExplosion)
	}
	g.env.Events.Track(Event{Type: evt, Level: g.state.Level, Player: i, Value: e.PointValue, Tick: g.tick})
}

func (g *Game) mark(b *Bullet) {
	g.toRemove[b] = struct{}{}
}

// removeMarked drops marked bullets from the live set, keeping the order of
// the rest, and recycles them in one batch.
func (g *Game) removeMarked() {
	if len(g.toRemove) == 0 {
		return
	}
	g.recycleBuf = g.recycleBuf[:0]
	kept := g.bullets[:0]
	for _, b := range g.bullets {
		if _, ok := g.toRemove[b]; ok {
			g.recycleBuf = append(g.recycleBuf, b)
			continue
		}
		kept = append(kept, b)
	}
	for i := len(kept); i < len(g.bullets); i++ {
		g.bullets[i] = nil
	}
	g.bullets = kept
	g.pool.Recycle(g.recycleBuf)
	clear(g.toRemove)
}

// cleanBullets moves every bullet and recycles those that left the field
func (g *Game) cleanBullets() {
	for _, b := range g.bullets {
		b.Update()
		if b.Y < SeparationLine || b.Y > g.height {
			g.mark(b)
		}
	}
	g.removeMarked()
}

// finish applies the surviving-lives bonus once and ends the level
func (g *Game) finish() {
	for i := range g.state.Players {
		p := &g.state.Players[i]
		if p.Lives > 1 {
			p.Score += LifeScore * (p.Lives - 1)
		}
	}
	g.phase = PhaseDone
	if g.formation.IsEmpty() && g.state.AnyAlive() {
		g.exit = ExitLevelCleared
		g.env.Logger.Printf("Level %d cleared with scores %d / %d",
			g.state.Level, g.state.Players[0].Score, g.state.Players[1].Score)
		g.env.Events.Track(Event{Type: EvtLevelCleared, Level: g.state.Level, Player: -1, Value: g.state.TotalScore(), Tick: g.tick})
	} else {
		g.exit = ExitGameOver
		g.env.Logger.Printf("Game over on level %d with scores %d / %d",
			g.state.Level, g.state.Players[0].Score, g.state.Players[1].Score)
		g.env.Events.Track(Event{Type: EvtGameOver, Level: g.state.Level, Player: -1, Value: g.state.TotalScore(), Tick: g.tick})
	}
}

// Frame builds an immutable snapshot of the current frame
func (g *Game) Frame() Frame {
	f := Frame{
		Tick:     g.tick,
		Level:    g.state.Level,
		Phase:    g.phase,
		Width:    g.width,
		Height:   g.height,
		Entities: make([]EntityState, 0, 2+g.formation.LiveCount()+len(g.bullets)+1),
	}
	if g.phase <= PhaseCountdown {
		f.Countdown = int(g.inputDelay.Remaining() / time.Second)
		if g.phase == PhaseInitializing {
			f.Countdown = int(InputDelay / time.Second)
		}
	}
	for i, p := range g.state.Players {
		f.Players[i] = p.ToState()
		f.Players[i].BonusLife = g.bonus[i]
		if p.Alive() {
			f.Entities = append(f.Entities, g.ships[i].ToState())
		}
	}
	if g.special != nil {
		f.Entities = append(f.Entities, g.special.ToState())
	}
	f.Entities = g.formation.AppendStates(f.Entities)
	for _, b := range g.bullets {
		f.Entities = append(f.Entities, b.ToState())
	}
	return f
}

// State returns a copy of the players' progress
func (g *Game) State() GameState {
	return g.state
}

// Phase returns the current lifecycle stage
func (g *Game) Phase() Phase {
	return g.phase
}

// ExitCode returns the outcome once the level is done
func (g *Game) ExitCode() ExitCode {
	return g.exit
}

type noInput struct{}

func (noInput) Held(Control) bool { return false }

type nopRender struct{}

func (nopRender) RenderFrame(Frame)          {}
func (nopRender) RenderResults(ResultsState) {}

// MultiRender fans frames out to several sinks in order
type MultiRender []RenderSink

func (m MultiRender) RenderFrame(f Frame) {
	for _, r := range m {
		r.RenderFrame(f)
	}
}

func (m MultiRender) RenderResults(r ResultsState) {
	for _, s := range m {
		s.RenderResults(r)
	}
}
