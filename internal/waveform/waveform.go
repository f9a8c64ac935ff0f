// Package waveform derives a read-only visual summary from finalized PCM audio.
package waveform

import (
	"math"
	"time"

	"github.com/rbright/mull/internal/audio"
)

// DefaultBuckets is the peak resolution used for terminal-width previews.
const DefaultBuckets = 64

// Preview is purely derived view state; it holds no authoritative data.
type Preview struct {
	Duration   time.Duration
	SampleRate int
	Channels   int
	// Peaks holds one normalized [0,1] amplitude per bucket, in time order.
	Peaks []float64
	// RMS is the overall root-mean-square level, normalized to [0,1].
	RMS float64
}

// Build computes bucketed peaks and RMS over raw s16le PCM.
// Multi-channel audio is summarized frame-wise across channels.
func Build(pcm []byte, profile audio.QualityProfile, buckets int) Preview {
	if buckets <= 0 {
		buckets = DefaultBuckets
	}

	preview := Preview{
		Duration:   profile.PCMDuration(len(pcm)),
		SampleRate: profile.SampleRate,
		Channels:   profile.Channels,
	}

	sampleCount := len(pcm) / 2
	if sampleCount == 0 {
		return preview
	}
	if buckets > sampleCount {
		buckets = sampleCount
	}

	peaks := make([]float64, buckets)
	var sumSquares float64

	for i := 0; i < sampleCount; i++ {
		raw := int16(uint16(pcm[2*i]) | uint16(pcm[2*i+1])<<8)
		normalized := math.Abs(float64(raw)) / math.MaxInt16
		if normalized > 1 {
			normalized = 1
		}
		sumSquares += normalized * normalized

		bucket := i * buckets / sampleCount
		if normalized > peaks[bucket] {
			peaks[bucket] = normalized
		}
	}

	preview.Peaks = peaks
	preview.RMS = math.Sqrt(sumSquares / float64(sampleCount))
	return preview
}
