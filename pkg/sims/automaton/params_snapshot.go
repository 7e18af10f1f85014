package automaton

import (
	simcore "lenia-ca/internal/core"
)

// Parameters reports the current configuration for the HUD and CLI.
func (a *Automaton) Parameters() simcore.ParameterSnapshot {
	p := a.params
	pattern := a.cfg.Pattern
	if pattern == "" {
		pattern = "default"
	}
	return simcore.ParameterSnapshot{Groups: []simcore.ParameterGroup{
		{
			Name: "World",
			Params: []simcore.Parameter{
				simcore.IntParam("w", "Width", int64(a.cfg.Width)),
				simcore.IntParam("h", "Height", int64(a.cfg.Height)),
				simcore.IntParam("seed", "Seed", a.cfg.Seed),
				simcore.StringParam("pattern", "Pattern", pattern),
				simcore.FloatParam("p", "Alive probability", a.cfg.AliveProbability),
				simcore.IntParam("generation", "Generation", int64(a.generation)),
			},
		},
		{
			Name:    "Rule",
			Summary: "kernel, growth and time step selected by mode",
			Params: []simcore.Parameter{
				simcore.StringParam("mode", "Mode", p.Mode.String()),
				simcore.FloatParam("dt", "Time step", p.TimeStep),
			},
		},
		{
			Name: "Kernel",
			Params: []simcore.Parameter{
				simcore.FloatParam("mu", "Ring mu", p.Mu),
				simcore.FloatParam("sigma", "Ring sigma", p.Sigma),
				simcore.IntParam("radius", "Radius", int64(p.Radius)),
			},
		},
		{
			Name: "Growth",
			Params: []simcore.Parameter{
				simcore.FloatParam("growth_mu", "Growth mu", p.GrowthMu),
				simcore.FloatParam("growth_sigma", "Growth sigma", p.GrowthSigma),
			},
		},
	}}
}

// ParameterControls lists the values adjustable from the HUD.
func (a *Automaton) ParameterControls() []simcore.ParameterControl {
	return []simcore.ParameterControl{
		{Key: "mu", Label: "Ring mu", Type: simcore.ParamTypeFloat, Step: 0.01, Min: 0, Max: 1, HasMin: true, HasMax: true},
		{Key: "sigma", Label: "Ring sigma", Type: simcore.ParamTypeFloat, Step: 0.01, Min: 0.01, Max: 1, HasMin: true, HasMax: true},
		{Key: "radius", Label: "Radius", Type: simcore.ParamTypeInt, Step: 1, Min: 1, Max: 64, HasMin: true, HasMax: true},
		{Key: "growth_mu", Label: "Growth mu", Type: simcore.ParamTypeFloat, Step: 0.005, Min: 0, Max: 1, HasMin: true, HasMax: true},
		{Key: "growth_sigma", Label: "Growth sigma", Type: simcore.ParamTypeFloat, Step: 0.001, Min: 0.001, Max: 0.5, HasMin: true, HasMax: true},
		{Key: "dt", Label: "Time step", Type: simcore.ParamTypeFloat, Step: 0.05, Min: 0.01, Max: 1, HasMin: true, HasMax: true},
	}
}

// SetFloatParameter applies a HUD adjustment. It reports false when the key
// is unknown or the value is rejected.
func (a *Automaton) SetFloatParameter(key string, value float64) bool {
	var err error
	switch key {
	case "mu":
		err = a.SetKernelParams(&value, nil)
	case "sigma":
		err = a.SetKernelParams(nil, &value)
	case "growth_mu":
		err = a.SetGrowthParams(&value, nil)
	case "growth_sigma":
		err = a.SetGrowthParams(nil, &value)
	case "dt":
		err = a.SetTimeStep(value)
	case "p":
		if !(value >= 0 && value <= 1) {
			return false
		}
		a.cfg.AliveProbability = value
	default:
		return false
	}
	return err == nil
}

// SetIntParameter applies an integer HUD adjustment.
func (a *Automaton) SetIntParameter(key string, value int) bool {
	switch key {
	case "radius":
		return a.SetRadius(value) == nil
	case "seed":
		a.cfg.Seed = int64(value)
		return true
	}
	return false
}
