//go:build ebiten

package app

import (
	"time"

	"lenia-ca/internal/core"
	"lenia-ca/internal/render"
	"lenia-ca/internal/sched"
	"lenia-ca/internal/ui"
	"lenia-ca/pkg/lenia"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

type modeToggler interface {
	ToggleMode() error
}

type patternSetter interface {
	SetPattern(name string) error
}

type statsProvider interface {
	Stats() lenia.Stats
}

// Game adapts a core simulation to the ebiten.Game interface.
type Game struct {
	sim     core.Sim
	sched   *sched.Scheduler
	timer   *core.FixedStep
	painter *render.GridPainter
	palette render.Palette
	hud     *ui.HUD
	overlay *ui.Overlay

	scale    int
	tickOnce bool
	seed     int64
	pattern  int
	gps      float64
	minDelay time.Duration
}

// New constructs a Game for the provided simulation.
func New(sim core.Sim, cfg *Config) *Game {
	palette, ok := render.PaletteByName(cfg.Palette)
	if !ok {
		palette = render.Mono
	}
	g := &Game{
		sim:      sim,
		painter:  render.NewGridPainter(sim.Size().W, sim.Size().H),
		palette:  palette,
		hud:      ui.NewHUD(sim, cfg.HUDWidth),
		overlay:  ui.NewOverlay(sim, cfg.Scale),
		scale:    cfg.Scale,
		seed:     cfg.Seed,
		gps:      cfg.GPS,
		minDelay: cfg.MinDelay,
	}
	g.sched = sched.New(sim)
	g.timer = core.NewFixedStep(60)
	g.setRate(cfg.GPS)
	return g
}

func (g *Game) setRate(gps float64) {
	if gps < 1 {
		gps = 1
	}
	if gps > core.MaxGenerationsPerSecond {
		gps = core.MaxGenerationsPerSecond
	}
	g.gps = gps
	plan := g.sched.SetRate(gps, g.minDelay)
	g.timer.SetTPS(int(time.Second / plan.Delay))
}

// Reset reinitializes the simulation state with the provided seed. The reset
// runs before the next step and leaves the simulation paused.
func (g *Game) Reset(seed int64) {
	g.seed = seed
	g.sched.RequestReset(seed)
	g.tickOnce = false
}

// Update handles per-frame logic and advances the simulation.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.sched.Toggle()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
		g.sched.Resume()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		g.tickOnce = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.Reset(g.seed)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		g.Reset(time.Now().UnixNano())
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyM) {
		if t, ok := g.sim.(modeToggler); ok {
			if err := t.ToggleMode(); err != nil {
				return err
			}
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		g.cyclePattern()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEqual) || inpututil.IsKeyJustPressed(ebiten.KeyKPAdd) {
		g.setRate(g.gps * 2)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyMinus) || inpututil.IsKeyJustPressed(ebiten.KeyKPSubtract) {
		g.setRate(g.gps / 2)
	}

	g.overlay.Update()
	g.hud.Update(g.viewWidth(), g.status())

	if g.tickOnce {
		g.tickOnce = false
		return g.sched.StepOnce()
	}
	if g.timer.ShouldStep() {
		if _, err := g.sched.Tick(); err != nil {
			return err
		}
	}
	return nil
}

func (g *Game) cyclePattern() {
	setter, ok := g.sim.(patternSetter)
	if !ok {
		return
	}
	patterns := lenia.Patterns()
	names := make([]string, 0, len(patterns)+1)
	names = append(names, lenia.RandomPattern)
	for _, p := range patterns {
		names = append(names, p.Name)
	}
	g.pattern = (g.pattern + 1) % len(names)
	if err := setter.SetPattern(names[g.pattern]); err == nil {
		g.Reset(g.seed)
	}
}

func (g *Game) status() ui.Status {
	st := ui.Status{
		Paused:     g.sched.Paused(),
		Generation: g.sched.Generation(),
		Rate:       g.sched.Plan().Rate(),
	}
	if sp, ok := g.sim.(statsProvider); ok {
		s := sp.Stats()
		st.Mass = s.Mass
		st.Live = s.Live
	}
	return st
}

func (g *Game) viewWidth() int { return g.sim.Size().W * g.scale }

// Draw renders the current simulation state.
func (g *Game) Draw(screen *ebiten.Image) {
	g.painter.Blit(screen, g.sim.Cells(), g.palette, g.scale)
	g.overlay.Draw(screen)
	g.hud.Draw(screen, g.viewWidth(), g.scale)
}

// Layout returns the logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	s := g.sim.Size()
	return s.W*g.scale + g.hud.Width(), s.H * g.scale
}
