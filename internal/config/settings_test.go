package config

import (
	"testing"

	"github.com/rgehrsitz/bizcase/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadSettings_Defaults(t *testing.T) {
	t.Setenv("BIZCASE_CONFIG", "")

	s, err := LoadSettings("")
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultEngineSettings(), s)
}

func TestLoadSettings_File(t *testing.T) {
	path := writeFile(t, "settings.yaml", `
irr_low: -0.5
irr_high: 5
checkpoints: [2, 4]
output_format: json
`)

	s, err := LoadSettings(path)
	require.NoError(t, err)
	assert.Equal(t, -0.5, s.IRRLow)
	assert.Equal(t, 5.0, s.IRRHigh)
	assert.Equal(t, []int{2, 4}, s.Checkpoints)
	assert.Equal(t, "json", s.OutputFormat)
	assert.Equal(t, 100, s.IRRMaxIterations, "unset keys keep their defaults")
}

func TestLoadSettings_EnvOverridesFile(t *testing.T) {
	path := writeFile(t, "settings.yaml", "irr_high: 5\noutput_format: json\n")
	t.Setenv("BIZCASE_CONFIG", path)
	t.Setenv("BIZCASE_IRR_HIGH", "20")
	t.Setenv("BIZCASE_IRR_MAX_ITERATIONS", "250")
	t.Setenv("BIZCASE_CHECKPOINTS", "1, 2,10")

	s, err := LoadSettings("")
	require.NoError(t, err)
	assert.Equal(t, 20.0, s.IRRHigh)
	assert.Equal(t, 250, s.IRRMaxIterations)
	assert.Equal(t, []int{1, 2, 10}, s.Checkpoints)
	assert.Equal(t, "json", s.OutputFormat)
}

func TestLoadSettings_Invalid(t *testing.T) {
	t.Setenv("BIZCASE_CONFIG", "")
	t.Setenv("BIZCASE_IRR_LOW", "-1")

	_, err := LoadSettings("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "irr_low")
}

func TestValidateSettings(t *testing.T) {
	base := domain.DefaultEngineSettings()

	tests := []struct {
		name   string
		mutate func(*domain.EngineSettings)
	}{
		{"inverted bracket", func(s *domain.EngineSettings) { s.IRRHigh = -0.95 }},
		{"zero tolerance", func(s *domain.EngineSettings) { s.IRRTolerance = 0 }},
		{"no iterations", func(s *domain.EngineSettings) { s.IRRMaxIterations = 0 }},
		{"negative checkpoint", func(s *domain.EngineSettings) { s.Checkpoints = []int{1, -3} }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := base
			s.Checkpoints = append([]int(nil), base.Checkpoints...)
			tt.mutate(&s)
			assert.Error(t, ValidateSettings(s))
		})
	}
	assert.NoError(t, ValidateSettings(base))
}
