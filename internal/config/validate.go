package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// Qualities accepted by audio.quality.
const (
	QualityStandard = "standard"
	QualityHigh     = "high"
)

// Validate rejects configurations that cannot produce a working runtime.
func Validate(cfg Config) error {
	if strings.TrimSpace(cfg.Gateway.URL) == "" {
		return errors.New("gateway.url must not be empty")
	}
	parsed, err := url.Parse(cfg.Gateway.URL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return fmt.Errorf("gateway.url %q is not an absolute URL", cfg.Gateway.URL)
	}
	if strings.TrimSpace(cfg.Gateway.Bucket) == "" {
		return errors.New("gateway.bucket must not be empty")
	}
	if strings.TrimSpace(cfg.Synthesis.Model) == "" {
		return errors.New("synthesis.model must not be empty")
	}
	switch cfg.Audio.Quality {
	case QualityStandard, QualityHigh:
	default:
		return fmt.Errorf("audio.quality %q must be %q or %q", cfg.Audio.Quality, QualityStandard, QualityHigh)
	}
	return nil
}
