package audio

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestProfileByName(t *testing.T) {
	standard, err := ProfileByName("standard")
	require.NoError(t, err)
	require.Equal(t, 44100, standard.SampleRate)
	require.Equal(t, 1, standard.Channels)
	require.Equal(t, 128, standard.BitRateKbps)

	high, err := ProfileByName("high")
	require.NoError(t, err)
	require.Equal(t, 48000, high.SampleRate)
	require.Equal(t, 2, high.Channels)
	require.Equal(t, 256, high.BitRateKbps)

	_, err = ProfileByName("lossless")
	require.Error(t, err)
	require.Contains(t, err.Error(), "unknown quality profile")
}

func TestChunkSizeBytesIs100Milliseconds(t *testing.T) {
	standard, err := ProfileByName("standard")
	require.NoError(t, err)
	// 44100 Hz * 1 ch * 2 bytes / 10
	require.Equal(t, 8820, standard.ChunkSizeBytes())

	high, err := ProfileByName("high")
	require.NoError(t, err)
	// 48000 Hz * 2 ch * 2 bytes / 10
	require.Equal(t, 19200, high.ChunkSizeBytes())
}

func TestPCMDuration(t *testing.T) {
	standard, err := ProfileByName("standard")
	require.NoError(t, err)

	oneSecond := standard.SampleRate * standard.Channels * bytesPerSample
	require.Equal(t, time.Second, standard.PCMDuration(oneSecond))
	require.Equal(t, 500*time.Millisecond, standard.PCMDuration(oneSecond/2))
	require.Equal(t, time.Duration(0), QualityProfile{}.PCMDuration(1024))
}
