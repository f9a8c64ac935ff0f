package config

// Default returns the canonical runtime configuration used when no file is present.
func Default() Config {
	return Config{
		Gateway: GatewayConfig{
			URL:    "http://127.0.0.1:54321",
			Bucket: "recordings",
		},
		Synthesis: SynthesisConfig{
			Model: "gemini-pro",
		},
		Audio: AudioConfig{
			Input:   "default",
			Quality: "standard",
		},
	}
}
