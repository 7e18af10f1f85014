package core

import "time"

// FixedStep helps run simulation updates at a steady ticks-per-second rate.
type FixedStep struct {
	step        time.Duration
	accumulator time.Duration
	last        time.Time
}

// NewFixedStep constructs a FixedStep controller targeting the given TPS.
func NewFixedStep(tps int) *FixedStep {
	if tps <= 0 {
		tps = 60
	}
	fs := &FixedStep{}
	fs.SetTPS(tps)
	fs.accumulator = fs.step
	return fs
}

// SetTPS changes the tick rate. It is safe to call from the main loop.
func (f *FixedStep) SetTPS(tps int) {
	if tps <= 0 {
		tps = 60
	}
	f.step = time.Second / time.Duration(tps)
}

// ShouldStep reports whether the simulation should advance by one tick.
func (f *FixedStep) ShouldStep() bool {
	now := time.Now()
	if f.last.IsZero() {
		f.last = now
	}
	delta := now.Sub(f.last)
	f.last = now
	f.accumulator += delta
	if f.accumulator >= f.step {
		f.accumulator -= f.step
		return true
	}
	return false
}

const (
	// DefaultGenerationsPerSecond is the target rate when none is configured.
	DefaultGenerationsPerSecond = 60
	// DefaultMinDelay is the shortest pause between display refreshes.
	DefaultMinDelay = 20 * time.Millisecond
	// MaxGenerationsPerSecond bounds the requested rate.
	MaxGenerationsPerSecond = 1e6
)

// Plan says how many generations to advance per display refresh and how long
// to wait before the next refresh.
type Plan struct {
	Generations int
	Delay       time.Duration
}

// PlanFor derives the refresh plan for a target generations-per-second rate.
// When the ideal delay 1s/gps is shorter than minDelay, several generations
// run per refresh and the refresh waits minDelay; otherwise one generation
// runs per refresh after the ideal delay, truncated to whole milliseconds but
// never below minDelay. Rates above MaxGenerationsPerSecond are clamped.
func PlanFor(gps float64, minDelay time.Duration) Plan {
	if !(gps > 0) {
		gps = DefaultGenerationsPerSecond
	}
	if gps > MaxGenerationsPerSecond {
		gps = MaxGenerationsPerSecond
	}
	if minDelay <= 0 {
		minDelay = DefaultMinDelay
	}
	ideal := time.Duration(float64(time.Second) / gps)
	if ideal < 1 {
		ideal = 1
	}
	if ideal >= minDelay {
		delay := ideal.Truncate(time.Millisecond)
		if delay < minDelay {
			delay = minDelay
		}
		return Plan{Generations: 1, Delay: delay}
	}
	gens := int(minDelay / ideal)
	if gens < 1 {
		gens = 1
	}
	return Plan{Generations: gens, Delay: minDelay}
}

// Rate returns the effective generations per second of the plan.
func (p Plan) Rate() float64 {
	if p.Delay <= 0 {
		return 0
	}
	return float64(p.Generations) / p.Delay.Seconds()
}
