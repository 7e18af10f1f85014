package core

import (
	"errors"
	"testing"
)

type countingSim struct {
	steps int
	fail  int
}

func (s *countingSim) Name() string     { return "counting" }
func (s *countingSim) Size() Size       { return Size{W: 1, H: 1} }
func (s *countingSim) Reset(int64)      { s.steps = 0 }
func (s *countingSim) Cells() []float64 { return []float64{float64(s.steps)} }
func (s *countingSim) Step() error {
	s.steps++
	if s.fail > 0 && s.steps == s.fail {
		return errors.New("boom")
	}
	return nil
}

func TestAdvanceFallsBackToStep(t *testing.T) {
	s := &countingSim{}
	if n, err := Advance(s, 3); err != nil || n != 3 {
		t.Fatalf("Advance = %d, %v", n, err)
	}
	if s.steps != 3 {
		t.Fatalf("expected 3 steps, got %d", s.steps)
	}
	s = &countingSim{fail: 2}
	n, err := Advance(s, 5)
	if err == nil || s.steps != 2 {
		t.Fatalf("expected failure at step 2, got err=%v steps=%d", err, s.steps)
	}
	if n != 1 {
		t.Fatalf("expected 1 completed generation before the failure, got %d", n)
	}
}

func TestRegistry(t *testing.T) {
	Register("counting-test", func(map[string]string) (Sim, error) { return &countingSim{}, nil })
	Register("", nil)
	sim, err := New("counting-test", nil)
	if err != nil || sim.Name() != "counting" {
		t.Fatalf("New returned %v, %v", sim, err)
	}
	if _, err := New("missing", nil); err == nil {
		t.Fatal("expected error for unknown sim")
	}
	found := false
	for _, n := range Names() {
		if n == "counting-test" {
			found = true
		}
		if n == "" {
			t.Fatal("empty name registered")
		}
	}
	if !found {
		t.Fatal("registered sim missing from Names()")
	}
}

func TestSnapshotLookupAndClamp(t *testing.T) {
	snap := ParameterSnapshot{Groups: []ParameterGroup{
		{Name: "A", Params: []Parameter{IntParam("w", "Width", 64)}},
		{Name: "B", Params: []Parameter{FloatParam("mu", "Mu", 0.15), StringParam("mode", "Mode", "continuous")}},
	}}
	if p, ok := snap.Lookup("mu"); !ok || p.Value != "0.15" || p.Type != ParamTypeFloat {
		t.Fatalf("Lookup(mu) = %+v, %v", p, ok)
	}
	if _, ok := snap.Lookup("nope"); ok {
		t.Fatal("unexpected parameter found")
	}
	c := ParameterControl{Min: 0, Max: 1, HasMin: true, HasMax: true}
	if c.Clamp(-1) != 0 || c.Clamp(2) != 1 || c.Clamp(0.5) != 0.5 {
		t.Fatal("Clamp ignored bounds")
	}
}
