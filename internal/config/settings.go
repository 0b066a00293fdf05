package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/rgehrsitz/bizcase/internal/domain"
)

// EnvPrefix is the prefix for environment overrides, e.g. BIZCASE_IRR_HIGH
const EnvPrefix = "BIZCASE_"

// LoadSettings builds engine settings by layering defaults, an optional YAML
// file, and environment variables (low -> high precedence). When path is empty
// the file named by BIZCASE_CONFIG is used, if set.
func LoadSettings(path string) (domain.EngineSettings, error) {
	defaults := domain.DefaultEngineSettings()

	k := koanf.New(".")

	if path == "" {
		path = os.Getenv(EnvPrefix + "CONFIG")
	}
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return domain.EngineSettings{}, fmt.Errorf("failed to load settings file %s: %w", path, err)
		}
	}

	// BIZCASE_IRR_MAX_ITERATIONS -> irr_max_iterations; list values are comma separated
	envProvider := env.ProviderWithValue(EnvPrefix, ".", func(key, value string) (string, interface{}) {
		key = strings.TrimPrefix(strings.ToLower(key), strings.ToLower(EnvPrefix))
		if key == "checkpoints" {
			parts := strings.Split(value, ",")
			for i := range parts {
				parts[i] = strings.TrimSpace(parts[i])
			}
			return key, parts
		}
		return key, value
	})
	if err := k.Load(envProvider, nil); err != nil {
		return domain.EngineSettings{}, fmt.Errorf("failed to load settings from environment: %w", err)
	}

	// slices decode element-wise into existing storage, so start from nil
	cfg := defaults
	cfg.Checkpoints = nil
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return domain.EngineSettings{}, fmt.Errorf("failed to decode settings: %w", err)
	}
	if cfg.Checkpoints == nil {
		cfg.Checkpoints = defaults.Checkpoints
	}

	if err := ValidateSettings(cfg); err != nil {
		return domain.EngineSettings{}, err
	}
	return cfg, nil
}

// ValidateSettings checks the IRR bracket and checkpoint list
func ValidateSettings(s domain.EngineSettings) error {
	if s.IRRLow <= -1 {
		return errors.New("irr_low must be greater than -1")
	}
	if s.IRRHigh <= s.IRRLow {
		return fmt.Errorf("irr_high (%v) must be greater than irr_low (%v)", s.IRRHigh, s.IRRLow)
	}
	if s.IRRTolerance <= 0 {
		return errors.New("irr_tolerance must be positive")
	}
	if s.IRRMaxIterations < 1 {
		return errors.New("irr_max_iterations must be at least 1")
	}
	for _, c := range s.Checkpoints {
		if c < 0 {
			return fmt.Errorf("checkpoint year %d must not be negative", c)
		}
	}
	return nil
}
