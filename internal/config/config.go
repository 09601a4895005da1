// Package config loads cellspacer settings from defaults, the environment
// and explicit command line overrides, in that order.
package config

import (
	"fmt"
	"strings"

	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"

	"github.com/baditaflorin/go_cell_spacer/internal/adapters/normalizer"
	"github.com/baditaflorin/go_cell_spacer/internal/core/domain"
	"github.com/baditaflorin/go_cell_spacer/internal/core/rewrite"
)

// EnvPrefix marks the environment variables read by Load.
const EnvPrefix = "CELLSPACER_"

// Config holds every tunable of a run.
type Config struct {
	Dir         string `koanf:"dir"`
	Pattern     string `koanf:"pattern"`
	DryRun      bool   `koanf:"dry_run"`
	SkipInvalid bool   `koanf:"skip_invalid"`
	Engine      string `koanf:"engine"`
	Verbose     bool   `koanf:"verbose"`
	JSONLogs    bool   `koanf:"json_logs"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Dir:     ".",
		Pattern: domain.DefaultPattern,
		Engine:  normalizer.ScanNormalizerType.String(),
	}
}

// Load merges defaults, CELLSPACER_* environment variables and overrides.
// Override keys are the koanf tags of Config.
func Load(overrides map[string]any) (Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(Default(), "koanf"), nil); err != nil {
		return Config{}, fmt.Errorf("failed to load defaults: %w", err)
	}

	if err := k.Load(env.Provider(".", env.Opt{
		Prefix: EnvPrefix,
		TransformFunc: func(key, value string) (string, any) {
			return strings.ToLower(strings.TrimPrefix(key, EnvPrefix)), value
		},
	}), nil); err != nil {
		return Config{}, fmt.Errorf("failed to load environment variables: %w", err)
	}

	for key, value := range overrides {
		if err := k.Set(key, value); err != nil {
			return Config{}, fmt.Errorf("failed to apply override %q: %w", key, err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the run settings and the engine name.
func (c Config) Validate() error {
	if err := c.Rewrite().Validate(); err != nil {
		return err
	}
	if _, err := normalizer.ParseNormalizerType(c.Engine); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidConfig, err)
	}
	return nil
}

// Rewrite returns the orchestrator settings.
func (c Config) Rewrite() rewrite.Config {
	return rewrite.Config{
		Dir:         c.Dir,
		Pattern:     c.Pattern,
		DryRun:      c.DryRun,
		SkipInvalid: c.SkipInvalid,
	}
}

// EngineType returns the parsed engine. Call after Validate.
func (c Config) EngineType() normalizer.NormalizerType {
	typ, _ := normalizer.ParseNormalizerType(c.Engine)
	return typ
}
