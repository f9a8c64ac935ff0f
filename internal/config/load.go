package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Loaded captures resolved config path, parsed values, and non-fatal warnings.
type Loaded struct {
	Path     string
	Config   Config
	Warnings []Warning
	Exists   bool
}

// Load resolves, reads, parses, and validates the runtime configuration.
// Secrets left empty in the file are filled from MULL_GATEWAY_KEY and
// GEMINI_API_KEY so credentials never have to live on disk.
func Load(explicitPath string) (Loaded, error) {
	resolvedPath, err := ResolvePath(explicitPath)
	if err != nil {
		return Loaded{}, err
	}

	cfg := Default()
	exists := true
	var warnings []Warning

	content, err := os.ReadFile(resolvedPath)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(content, &cfg); err != nil {
			return Loaded{}, fmt.Errorf("parse config %q: %w", resolvedPath, err)
		}
	case errors.Is(err, os.ErrNotExist):
		exists = false
		warnings = append(warnings, Warning{
			Message: fmt.Sprintf("config file %q not found; using defaults", resolvedPath),
		})
	default:
		return Loaded{}, fmt.Errorf("read config %q: %w", resolvedPath, err)
	}

	applyEnvSecrets(&cfg)

	if err := Validate(cfg); err != nil {
		return Loaded{}, fmt.Errorf("validate config %q: %w", resolvedPath, err)
	}

	return Loaded{
		Path:     resolvedPath,
		Config:   cfg,
		Warnings: warnings,
		Exists:   exists,
	}, nil
}

// applyEnvSecrets fills empty credential fields from the environment.
func applyEnvSecrets(cfg *Config) {
	if cfg.Gateway.APIKey == "" {
		cfg.Gateway.APIKey = strings.TrimSpace(os.Getenv("MULL_GATEWAY_KEY"))
	}
	if cfg.Synthesis.APIKey == "" {
		cfg.Synthesis.APIKey = strings.TrimSpace(os.Getenv("GEMINI_API_KEY"))
	}
}
