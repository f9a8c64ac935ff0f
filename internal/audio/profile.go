package audio

import (
	"fmt"
	"time"
)

const bytesPerSample = 2 // s16le

// QualityProfile fixes the capture format for one recording session.
type QualityProfile struct {
	Name        string
	SampleRate  int
	Channels    int
	BitRateKbps int
}

var profiles = map[string]QualityProfile{
	"standard": {Name: "standard", SampleRate: 44100, Channels: 1, BitRateKbps: 128},
	"high":     {Name: "high", SampleRate: 48000, Channels: 2, BitRateKbps: 256},
}

// ProfileByName resolves a configured quality name to its capture parameters.
func ProfileByName(name string) (QualityProfile, error) {
	profile, ok := profiles[name]
	if !ok {
		return QualityProfile{}, fmt.Errorf("unknown quality profile %q", name)
	}
	return profile, nil
}

// ChunkSizeBytes returns the per-chunk byte count, sized to 100ms of audio.
func (p QualityProfile) ChunkSizeBytes() int {
	return p.SampleRate * p.Channels * bytesPerSample / 10
}

// PCMDuration converts a raw PCM byte count into playback time.
func (p QualityProfile) PCMDuration(byteCount int) time.Duration {
	bytesPerSecond := p.SampleRate * p.Channels * bytesPerSample
	if bytesPerSecond == 0 {
		return 0
	}
	return time.Duration(float64(byteCount) / float64(bytesPerSecond) * float64(time.Second))
}
