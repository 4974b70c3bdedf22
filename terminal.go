package main

import (
	"fmt"
	"strings"
	"sync"
	"unicode"

	"github.com/gdamore/tcell/v2"
)

// KeyBinding identifies a terminal key; Rune is set only for KeyRune
type KeyBinding struct {
	Key  tcell.Key
	Rune rune
}

var namedKeys = map[string]KeyBinding{
	"left":  {Key: tcell.KeyLeft},
	"right": {Key: tcell.KeyRight},
	"up":    {Key: tcell.KeyUp},
	"down":  {Key: tcell.KeyDown},
	"enter": {Key: tcell.KeyEnter},
	"esc":   {Key: tcell.KeyEscape},
	"tab":   {Key: tcell.KeyTab},
	"space": {Key: tcell.KeyRune, Rune: ' '},
}

// ParseKeyBinding accepts a single character or a key name like "left"
func ParseKeyBinding(s string) (KeyBinding, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if kb, ok := namedKeys[name]; ok {
		return kb, nil
	}
	r := []rune(name)
	if len(r) == 1 && unicode.IsPrint(r[0]) {
		return KeyBinding{Key: tcell.KeyRune, Rune: r[0]}, nil
	}
	return KeyBinding{}, fmt.Errorf("unknown key %q", s)
}

// Bindings maps terminal keys to controls
type Bindings map[KeyBinding]Control

// DefaultBindings puts player one on WASD plus F and player two on the
// arrows plus space.
func DefaultBindings() Bindings {
	return Bindings{
		{Key: tcell.KeyRune, Rune: 'a'}: ControlP1Left,
		{Key: tcell.KeyRune, Rune: 'd'}: ControlP1Right,
		{Key: tcell.KeyRune, Rune: 'f'}: ControlP1Fire,
		{Key: tcell.KeyRune, Rune: 'w'}: ControlP1Up,
		{Key: tcell.KeyRune, Rune: 's'}: ControlP1Down,
		{Key: tcell.KeyLeft}:            ControlP2Left,
		{Key: tcell.KeyRight}:           ControlP2Right,
		{Key: tcell.KeyRune, Rune: ' '}: ControlP2Fire,
		{Key: tcell.KeyUp}:              ControlP2Up,
		{Key: tcell.KeyDown}:            ControlP2Down,
		{Key: tcell.KeyEnter}:           ControlConfirm,
		{Key: tcell.KeyEscape}:          ControlQuit,
	}
}

// Rebind moves a control to a new key, dropping its previous keys
func (b Bindings) Rebind(c Control, kb KeyBinding) {
	for k, v := range b {
		if v == c {
			delete(b, k)
		}
	}
	b[kb] = c
}

// Lookup maps a key event to its control
func (b Bindings) Lookup(ev *tcell.EventKey) (Control, bool) {
	kb := KeyBinding{Key: ev.Key()}
	if ev.Key() == tcell.KeyRune {
		kb.Rune = unicode.ToLower(ev.Rune())
	}
	c, ok := b[kb]
	return c, ok
}

var (
	styleHUD      = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	styleLine     = tcell.StyleDefault.Foreground(tcell.ColorGreen)
	stylePlayer   = [2]tcell.Style{tcell.StyleDefault.Foreground(tcell.ColorGreen), tcell.StyleDefault.Foreground(tcell.ColorRed)}
	styleEnemy    = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	styleBonus    = tcell.StyleDefault.Foreground(tcell.ColorFuchsia)
	styleExplode  = tcell.StyleDefault.Foreground(tcell.ColorYellow)
	styleBullet   = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	styleEnemyBul = tcell.StyleDefault.Foreground(tcell.ColorOrange)
	styleOverlay  = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	styleSelected = tcell.StyleDefault.Foreground(tcell.ColorGreen).Reverse(true)
)

// Terminal is the tcell frontend: an InputSource fed by a polling goroutine
// and a RenderSink drawing on the simulation goroutine.
type Terminal struct {
	screen   tcell.Screen
	keys     *KeyState
	bindings Bindings

	quit     chan struct{}
	quitOnce sync.Once
	done     chan struct{}
}

// NewTerminal wraps an initialized screen
func NewTerminal(screen tcell.Screen, keys *KeyState, bindings Bindings) *Terminal {
	if bindings == nil {
		bindings = DefaultBindings()
	}
	return &Terminal{
		screen:   screen,
		keys:     keys,
		bindings: bindings,
		quit:     make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Start begins polling terminal events
func (t *Terminal) Start() {
	go t.pollLoop()
}

func (t *Terminal) pollLoop() {
	defer close(t.done)
	for {
		ev := t.screen.PollEvent()
		if ev == nil {
			return
		}
		t.handleEvent(ev)
	}
}

func (t *Terminal) handleEvent(ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if isCtrlC(ev) {
			t.keys.Press(ControlQuit)
			t.requestQuit()
			return
		}
		if c, ok := t.bindings.Lookup(ev); ok {
			t.keys.Press(c)
		}
	case *tcell.EventResize:
		t.screen.Sync()
	}
}

func isCtrlC(ev *tcell.EventKey) bool {
	if ev.Key() == tcell.KeyCtrlC {
		return true
	}
	return ev.Key() == tcell.KeyRune && ev.Modifiers()&tcell.ModCtrl != 0 && unicode.ToLower(ev.Rune()) == 'c'
}

func (t *Terminal) requestQuit() {
	t.quitOnce.Do(func() { close(t.quit) })
}

// Quit is closed on Ctrl-C
func (t *Terminal) Quit() <-chan struct{} {
	return t.quit
}

// Held implements InputSource
func (t *Terminal) Held(c Control) bool {
	return t.keys.Held(c)
}

// Close restores the terminal
func (t *Terminal) Close() {
	t.screen.Fini()
}

// cellRect maps a playfield rectangle onto terminal cells below the HUD row
func (t *Terminal) cellRect(f *Frame, e EntityState) (x0, x1, y int) {
	cols, rows := t.screen.Size()
	rows--
	if f.Width <= 0 || f.Height <= 0 || cols <= 0 || rows <= 0 {
		return 0, -1, 0
	}
	x0 = e.X * cols / f.Width
	x1 = (e.X + e.W - 1) * cols / f.Width
	y = 1 + (e.Y+e.H/2)*rows/f.Height
	return
}

func glyphFor(e EntityState) (rune, tcell.Style) {
	switch e.Kind {
	case KindShip:
		if e.Destroyed {
			return '*', styleExplode
		}
		return '^', stylePlayer[int(e.Variant)%2]
	case KindEnemy:
		if e.Destroyed {
			return '*', styleExplode
		}
		glyphs := [...][2]rune{
			VariantA: {'w', 'W'},
			VariantB: {'m', 'M'},
			VariantC: {'x', 'X'},
		}
		frame := 0
		if e.Anim {
			frame = 1
		}
		if int(e.Variant) < len(glyphs) {
			return glyphs[e.Variant][frame], styleEnemy
		}
		return '?', styleEnemy
	case KindBonus:
		if e.Destroyed {
			return '*', styleExplode
		}
		return '@', styleBonus
	case KindBullet:
		if e.Variant == 1 {
			return '!', styleEnemyBul
		}
		return '|', styleBullet
	}
	return ' ', tcell.StyleDefault
}

// RenderFrame draws one simulation frame
func (t *Terminal) RenderFrame(f Frame) {
	t.screen.Clear()
	cols, rows := t.screen.Size()

	for i, p := range f.Players {
		label := fmt.Sprintf("P%d %05d %s", i+1, p.Score, strings.Repeat("^", p.Lives))
		x := 0
		if i == 1 {
			x = cols - len(label)
		}
		t.drawText(x, 0, stylePlayer[i], label)
	}
	level := fmt.Sprintf("LEVEL %d", f.Level)
	t.drawText((cols-len(level))/2, 0, styleHUD, level)

	lineY := 1 + SeparationLine*(rows-1)/FieldHeight
	for x := 0; x < cols; x++ {
		t.screen.SetContent(x, lineY, '-', nil, styleLine)
	}

	for _, e := range f.Entities {
		x0, x1, y := t.cellRect(&f, e)
		if y < 1 || y >= rows {
			continue
		}
		r, style := glyphFor(e)
		for x := x0; x <= x1; x++ {
			if x >= 0 && x < cols {
				t.screen.SetContent(x, y, r, nil, style)
			}
		}
	}

	if f.Phase <= PhaseCountdown {
		mid := rows / 2
		t.drawCentered(mid-1, styleOverlay, fmt.Sprintf("LEVEL %d", f.Level))
		if f.Countdown > 0 {
			t.drawCentered(mid, styleOverlay, fmt.Sprintf("%d", f.Countdown))
		} else {
			t.drawCentered(mid, styleOverlay, "GO!")
		}
		for i, p := range f.Players {
			if p.BonusLife {
				t.drawCentered(mid+1+i, stylePlayer[i], fmt.Sprintf("P%d BONUS LIFE!", i+1))
			}
		}
	}

	t.screen.Show()
}

// RenderResults draws the end-of-run screen with name entry
func (t *Terminal) RenderResults(r ResultsState) {
	t.screen.Clear()
	_, rows := t.screen.Size()

	t.drawCentered(1, styleOverlay, "GAME OVER")
	y := 3
	for i, p := range r.Players {
		acc := 0.0
		if p.BulletsShot > 0 {
			acc = float64(p.ShipsDestroyed) / float64(p.BulletsShot) * 100
		}
		t.drawCentered(y, stylePlayer[i], fmt.Sprintf("P%d  score %d  lives %d  kills %d  accuracy %.1f%%",
			i+1, p.Score, p.Lives, p.ShipsDestroyed, acc))
		y++
		if r.Records[i] {
			t.drawNameInput(y, r.Names[i], r.Cursors[i])
			y++
		}
		y++
	}

	t.drawCentered(y, styleHUD, "HIGH SCORES")
	y++
	for i, s := range r.HighScores {
		if y >= rows-2 {
			break
		}
		t.drawCentered(y, styleHUD, fmt.Sprintf("%d. %s %6d", i+1, s.Name, s.Value))
		y++
	}

	if r.Ready {
		t.drawCentered(rows-1, styleHUD, "ENTER play again   ESC quit")
	}
	t.screen.Show()
}

func (t *Terminal) drawNameInput(y int, name string, cursor int) {
	label := "NEW RECORD  "
	cols, _ := t.screen.Size()
	x := (cols - len(label) - len(name)) / 2
	t.drawText(x, y, styleOverlay, label)
	x += len(label)
	for i, r := range name {
		style := styleHUD
		if i == cursor {
			style = styleSelected
		}
		t.screen.SetContent(x+i, y, r, nil, style)
	}
}

func (t *Terminal) drawText(x, y int, style tcell.Style, s string) {
	for i, r := range []rune(s) {
		t.screen.SetContent(x+i, y, r, nil, style)
	}
}

func (t *Terminal) drawCentered(y int, style tcell.Style, s string) {
	cols, _ := t.screen.Size()
	x := ClampInt((cols-len([]rune(s)))/2, 0, cols)
	t.drawText(x, y, style, s)
}
