// Package config resolves, parses, validates, and defaults mull configuration.
package config

// Config is the fully materialized runtime configuration used by mull.
type Config struct {
	Gateway   GatewayConfig   `yaml:"gateway"`
	Synthesis SynthesisConfig `yaml:"synthesis"`
	Audio     AudioConfig     `yaml:"audio"`
}

// GatewayConfig points at the remote persistence service and its blob bucket.
type GatewayConfig struct {
	URL    string `yaml:"url"`
	APIKey string `yaml:"api_key"`
	Bucket string `yaml:"bucket"`
}

// SynthesisConfig controls the generative text service used for folder synthesis.
type SynthesisConfig struct {
	Model  string `yaml:"model"`
	APIKey string `yaml:"api_key"`
}

// AudioConfig controls input-source selection and the capture quality profile.
type AudioConfig struct {
	Input   string `yaml:"input"`
	Quality string `yaml:"quality"`
}

// Warning is a non-fatal load/validation message.
type Warning struct {
	Message string
}
