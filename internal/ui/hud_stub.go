//go:build !ebiten

package ui

import "lenia-ca/internal/core"

// Status is the run state shown above the controls.
type Status struct {
	Paused     bool
	Generation int
	Rate       float64
	Mass       float64
	Live       int
}

// HUD is a no-op placeholder for headless builds.
type HUD struct{}

// NewHUD returns nil in the headless build.
func NewHUD(core.Sim, int) *HUD { return nil }

// Width is zero in the headless build.
func (h *HUD) Width() int { return 0 }

// Update is a no-op in the headless build.
func (h *HUD) Update(int, Status) {}

// Draw is a no-op in the headless build.
func (h *HUD) Draw(any, int, int) {}
