package waveform

import (
	"bytes"
	"encoding/binary"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/rbright/mull/internal/audio"
)

func pcmFromSamples(t *testing.T, samples []int16) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, binary.Write(&buf, binary.LittleEndian, samples))
	return buf.Bytes()
}

func TestBuildEmptyPCM(t *testing.T) {
	profile, err := audio.ProfileByName("standard")
	require.NoError(t, err)

	preview := Build(nil, profile, 16)
	require.Zero(t, preview.Duration)
	require.Empty(t, preview.Peaks)
	require.Zero(t, preview.RMS)
	require.Equal(t, profile.SampleRate, preview.SampleRate)
}

func TestBuildDurationMatchesProfile(t *testing.T) {
	profile, err := audio.ProfileByName("standard")
	require.NoError(t, err)

	// Exactly two seconds of silence.
	pcm := make([]byte, 2*profile.SampleRate*profile.Channels*2)
	preview := Build(pcm, profile, 32)
	require.Equal(t, 2*time.Second, preview.Duration)
	require.Len(t, preview.Peaks, 32)
	for _, peak := range preview.Peaks {
		require.Zero(t, peak)
	}
}

func TestBuildPeaksLandInTimeOrderedBuckets(t *testing.T) {
	profile, err := audio.ProfileByName("standard")
	require.NoError(t, err)

	// 8 samples, 4 buckets: loud samples in the second half only.
	samples := []int16{0, 0, 0, 0, 16384, 16384, math.MaxInt16, math.MaxInt16}
	preview := Build(pcmFromSamples(t, samples), profile, 4)

	require.Len(t, preview.Peaks, 4)
	require.Zero(t, preview.Peaks[0])
	require.Zero(t, preview.Peaks[1])
	require.InDelta(t, 0.5, preview.Peaks[2], 0.001)
	require.InDelta(t, 1.0, preview.Peaks[3], 0.001)
	require.Greater(t, preview.RMS, 0.0)
	require.Less(t, preview.RMS, 1.0)
}

func TestBuildClampsBucketsToSampleCount(t *testing.T) {
	profile, err := audio.ProfileByName("standard")
	require.NoError(t, err)

	samples := []int16{100, -200, 300}
	preview := Build(pcmFromSamples(t, samples), profile, 1000)
	require.Len(t, preview.Peaks, 3)
}

func TestBuildDefaultBuckets(t *testing.T) {
	profile, err := audio.ProfileByName("standard")
	require.NoError(t, err)

	pcm := make([]byte, 4096)
	preview := Build(pcm, profile, 0)
	require.Len(t, preview.Peaks, DefaultBuckets)
}
