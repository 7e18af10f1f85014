// Package sched drives a simulation at a target generations-per-second rate,
// advancing several generations per refresh when the rate exceeds what the
// display can show.
package sched

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"lenia-ca/internal/core"
	"lenia-ca/internal/logging"
)

// Frame is passed to the renderer after every refresh.
type Frame struct {
	Sim        core.Sim
	Generation int
	Advanced   int
}

// Renderer receives frames from the loop goroutine. The sim must be treated
// as read-only for the duration of the call.
type Renderer func(Frame) error

// Scheduler owns the stepping of one sim. Run executes on a single
// goroutine; the control methods may be called from any goroutine.
type Scheduler struct {
	sim    core.Sim
	logger *slog.Logger
	render Renderer
	limit  int
	sleep  func(ctx context.Context, d time.Duration) bool

	mu         sync.Mutex
	plan       core.Plan
	paused     bool
	pending    *int64
	generation int
}

// Option configures a Scheduler.
type Option func(*Scheduler)

// WithLogger sets the logger used for debug output.
func WithLogger(l *slog.Logger) Option {
	return func(s *Scheduler) { s.logger = l }
}

// WithRenderer installs a callback invoked after every refresh.
func WithRenderer(r Renderer) Option {
	return func(s *Scheduler) { s.render = r }
}

// WithLimit stops Run after n generations. Zero means unlimited.
func WithLimit(n int) Option {
	return func(s *Scheduler) { s.limit = n }
}

// WithPlan overrides the default refresh plan.
func WithPlan(p core.Plan) Option {
	return func(s *Scheduler) { s.plan = p }
}

// New returns a running (unpaused) scheduler for sim using the default rate.
func New(sim core.Sim, opts ...Option) *Scheduler {
	s := &Scheduler{
		sim:    sim,
		logger: logging.Discard(),
		plan:   core.PlanFor(core.DefaultGenerationsPerSecond, core.DefaultMinDelay),
		sleep:  sleepCtx,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func sleepCtx(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

// SetRate recomputes the refresh plan for gps generations per second.
func (s *Scheduler) SetRate(gps float64, minDelay time.Duration) core.Plan {
	p := core.PlanFor(gps, minDelay)
	s.mu.Lock()
	s.plan = p
	s.mu.Unlock()
	s.logger.Debug("rate changed", "gps", gps, "generations_per_refresh", p.Generations, "delay", p.Delay)
	return p
}

// Plan returns the current refresh plan.
func (s *Scheduler) Plan() core.Plan {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.plan
}

// Pause stops stepping; refreshes and renders continue.
func (s *Scheduler) Pause() { s.setPaused(true) }

// Resume restarts stepping.
func (s *Scheduler) Resume() { s.setPaused(false) }

// Toggle flips the paused state and reports whether the scheduler now runs.
func (s *Scheduler) Toggle() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.paused = !s.paused
	return !s.paused
}

// Paused reports whether stepping is suspended.
func (s *Scheduler) Paused() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.paused
}

func (s *Scheduler) setPaused(v bool) {
	s.mu.Lock()
	s.paused = v
	s.mu.Unlock()
}

// RequestReset asks for the sim to be reset with seed. The reset is applied
// at the start of the next refresh, before any further step runs on the old
// grid, and the scheduler is paused.
func (s *Scheduler) RequestReset(seed int64) {
	s.mu.Lock()
	s.pending = &seed
	s.mu.Unlock()
}

// Generation returns the number of generations advanced since the last reset.
func (s *Scheduler) Generation() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.generation
}

// Tick performs one refresh: apply a pending reset, advance the planned
// number of generations unless paused, then render. It returns the number of
// generations advanced.
func (s *Scheduler) Tick() (int, error) {
	return s.tick(false)
}

// StepOnce advances exactly one generation even when paused, after applying
// any pending reset.
func (s *Scheduler) StepOnce() error {
	_, err := s.tick(true)
	return err
}

func (s *Scheduler) tick(single bool) (int, error) {
	s.mu.Lock()
	pending := s.pending
	s.pending = nil
	if pending != nil {
		s.paused = true
		s.generation = 0
	}
	paused := s.paused
	count := s.plan.Generations
	if single {
		paused, count = false, 1
	}
	if s.limit > 0 && s.generation+count > s.limit {
		count = s.limit - s.generation
	}
	s.mu.Unlock()

	if pending != nil {
		s.sim.Reset(*pending)
		s.logger.Debug("reset applied", "sim", s.sim.Name(), "seed", *pending)
	}

	advanced := 0
	var stepErr error
	if !paused && count > 0 {
		advanced, stepErr = core.Advance(s.sim, count)
	}

	s.mu.Lock()
	s.generation += advanced
	gen := s.generation
	s.mu.Unlock()
	if stepErr != nil {
		return advanced, stepErr
	}

	if s.render != nil {
		if err := s.render(Frame{Sim: s.sim, Generation: gen, Advanced: advanced}); err != nil {
			return advanced, err
		}
	}
	return advanced, nil
}

// Done reports whether the generation limit has been reached.
func (s *Scheduler) Done() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.limit > 0 && s.generation >= s.limit
}

// Run refreshes until ctx is cancelled, the generation limit is reached, or a
// step or render fails. Cancellation prevents the next step from starting; a
// step already running completes. Run returns nil on cancellation.
func (s *Scheduler) Run(ctx context.Context) error {
	s.logger.Debug("scheduler started", "sim", s.sim.Name(), "limit", s.limit)
	for {
		if ctx.Err() != nil {
			return nil
		}
		if _, err := s.Tick(); err != nil {
			s.logger.Error("scheduler stopped", "err", err)
			return err
		}
		if s.Done() {
			s.logger.Debug("generation limit reached", "generation", s.Generation())
			return nil
		}
		if !s.sleep(ctx, s.Plan().Delay) {
			return nil
		}
	}
}
