package sched

import (
	"context"
	"errors"
	"testing"
	"time"

	qt "github.com/frankban/quicktest"

	"lenia-ca/internal/core"
)

type fakeSim struct {
	events []string
	steps  int
	failAt int
}

func (f *fakeSim) Name() string     { return "fake" }
func (f *fakeSim) Size() core.Size  { return core.Size{W: 1, H: 1} }
func (f *fakeSim) Cells() []float64 { return []float64{float64(f.steps)} }

func (f *fakeSim) Reset(seed int64) {
	f.steps = 0
	f.events = append(f.events, "reset")
}

func (f *fakeSim) Step() error {
	f.steps++
	f.events = append(f.events, "step")
	if f.failAt > 0 && f.steps == f.failAt {
		return errors.New("step failed")
	}
	return nil
}

func noSleep(ctx context.Context, d time.Duration) bool { return ctx.Err() == nil }

func TestTickFollowsPlan(t *testing.T) {
	c := qt.New(t)
	sim := &fakeSim{}
	s := New(sim, WithPlan(core.PlanFor(1000, 20*time.Millisecond)))
	n, err := s.Tick()
	c.Assert(err, qt.IsNil)
	c.Assert(n, qt.Equals, 20)
	c.Assert(sim.steps, qt.Equals, 20)
	c.Assert(s.Generation(), qt.Equals, 20)

	p := s.SetRate(30, 20*time.Millisecond)
	c.Assert(p.Generations, qt.Equals, 1)
	n, err = s.Tick()
	c.Assert(err, qt.IsNil)
	c.Assert(n, qt.Equals, 1)
}

func TestResetAppliedBeforeNextStep(t *testing.T) {
	c := qt.New(t)
	sim := &fakeSim{}
	s := New(sim)
	_, err := s.Tick()
	c.Assert(err, qt.IsNil)

	s.RequestReset(7)
	_, err = s.Tick()
	c.Assert(err, qt.IsNil)
	c.Assert(sim.events, qt.DeepEquals, []string{"step", "reset"})
	c.Assert(s.Paused(), qt.IsTrue)
	c.Assert(s.Generation(), qt.Equals, 0)

	s.Resume()
	_, err = s.Tick()
	c.Assert(err, qt.IsNil)
	c.Assert(sim.events, qt.DeepEquals, []string{"step", "reset", "step"})
}

func TestPauseStillRenders(t *testing.T) {
	c := qt.New(t)
	sim := &fakeSim{}
	frames := 0
	s := New(sim, WithRenderer(func(f Frame) error {
		frames++
		c.Assert(f.Advanced, qt.Equals, 0)
		return nil
	}))
	s.Pause()
	for i := 0; i < 3; i++ {
		_, err := s.Tick()
		c.Assert(err, qt.IsNil)
	}
	c.Assert(sim.steps, qt.Equals, 0)
	c.Assert(frames, qt.Equals, 3)
	c.Assert(s.Toggle(), qt.IsTrue)
}

func TestRunStopsAtLimit(t *testing.T) {
	c := qt.New(t)
	sim := &fakeSim{}
	s := New(sim, WithPlan(core.Plan{Generations: 3, Delay: time.Millisecond}), WithLimit(10))
	s.sleep = noSleep
	c.Assert(s.Run(context.Background()), qt.IsNil)
	c.Assert(sim.steps, qt.Equals, 10)
	c.Assert(s.Done(), qt.IsTrue)
}

func TestRunPropagatesStepError(t *testing.T) {
	c := qt.New(t)
	sim := &fakeSim{failAt: 4}
	s := New(sim)
	s.sleep = noSleep
	err := s.Run(context.Background())
	c.Assert(err, qt.ErrorMatches, "step failed")
	c.Assert(sim.steps, qt.Equals, 4)
	c.Assert(s.Generation(), qt.Equals, 3)
}

func TestTickCountsGenerationsBeforeFailure(t *testing.T) {
	c := qt.New(t)
	sim := &fakeSim{failAt: 7}
	s := New(sim, WithPlan(core.Plan{Generations: 10, Delay: time.Millisecond}))
	n, err := s.Tick()
	c.Assert(err, qt.ErrorMatches, "step failed")
	c.Assert(n, qt.Equals, 6)
	c.Assert(s.Generation(), qt.Equals, 6)
}

func TestRunPropagatesRenderError(t *testing.T) {
	c := qt.New(t)
	boom := errors.New("display closed")
	s := New(&fakeSim{}, WithRenderer(func(Frame) error { return boom }))
	s.sleep = noSleep
	c.Assert(errors.Is(s.Run(context.Background()), boom), qt.IsTrue)
}

func TestRunCancelledDoesNotStep(t *testing.T) {
	c := qt.New(t)
	sim := &fakeSim{}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	c.Assert(New(sim).Run(ctx), qt.IsNil)
	c.Assert(sim.steps, qt.Equals, 0)
}

func TestRunCancelDuringDelay(t *testing.T) {
	c := qt.New(t)
	sim := &fakeSim{}
	s := New(sim, WithPlan(core.Plan{Generations: 1, Delay: time.Hour}))
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()
	time.Sleep(10 * time.Millisecond)
	cancel()
	select {
	case err := <-done:
		c.Assert(err, qt.IsNil)
	case <-time.After(5 * time.Second):
		c.Fatal("Run did not return after cancellation")
	}
	c.Assert(s.Generation(), qt.Equals, 1)
}

func TestStepOnceWhilePaused(t *testing.T) {
	c := qt.New(t)
	sim := &fakeSim{}
	s := New(sim, WithPlan(core.Plan{Generations: 5, Delay: time.Millisecond}))
	s.Pause()
	c.Assert(s.StepOnce(), qt.IsNil)
	c.Assert(sim.steps, qt.Equals, 1)
	c.Assert(s.Generation(), qt.Equals, 1)
	c.Assert(s.Paused(), qt.IsTrue)
}
