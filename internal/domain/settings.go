package domain

// EngineSettings tune the solver and reporting defaults. They are loaded by
// config.LoadSettings and never change scenario semantics beyond the IRR bracket.
type EngineSettings struct {
	IRRLow           float64 `koanf:"irr_low" yaml:"irr_low"`
	IRRHigh          float64 `koanf:"irr_high" yaml:"irr_high"`
	IRRTolerance     float64 `koanf:"irr_tolerance" yaml:"irr_tolerance"`
	IRRMaxIterations int     `koanf:"irr_max_iterations" yaml:"irr_max_iterations"`
	Checkpoints      []int   `koanf:"checkpoints" yaml:"checkpoints"`
	OutputFormat     string  `koanf:"output_format" yaml:"output_format"`
}

// DefaultEngineSettings are the solver bracket and checkpoints used when no settings file is given
func DefaultEngineSettings() EngineSettings {
	return EngineSettings{
		IRRLow:           -0.9,
		IRRHigh:          10.0,
		IRRTolerance:     1e-6,
		IRRMaxIterations: 100,
		Checkpoints:      []int{1, 3, 5},
		OutputFormat:     "console",
	}
}
