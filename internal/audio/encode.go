package audio

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

const bitDepth = 16

// EncodeWAV renders raw s16le PCM as an in-memory WAV file suitable for upload.
func EncodeWAV(pcm []byte, profile QualityProfile) ([]byte, error) {
	if len(pcm) == 0 {
		return nil, fmt.Errorf("no PCM data to encode")
	}

	buf := &writeSeekerBuffer{}
	enc := wav.NewEncoder(buf, profile.SampleRate, bitDepth, profile.Channels, 1)

	intBuf := &goaudio.IntBuffer{
		Data:   pcmToInts(pcm),
		Format: &goaudio.Format{SampleRate: profile.SampleRate, NumChannels: profile.Channels},
	}
	if err := enc.Write(intBuf); err != nil {
		return nil, fmt.Errorf("write WAV samples: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("finalize WAV: %w", err)
	}

	return buf.data, nil
}

// pcmToInts converts little-endian 16-bit PCM bytes into integer samples.
func pcmToInts(pcm []byte) []int {
	samples := make([]int, 0, len(pcm)/bytesPerSample)
	buf := bytes.NewBuffer(pcm)
	for {
		var sample int16
		if err := binary.Read(buf, binary.LittleEndian, &sample); err != nil {
			break
		}
		samples = append(samples, int(sample))
	}
	return samples
}

// writeSeekerBuffer is an in-memory io.WriteSeeker; the WAV encoder seeks
// back to patch chunk sizes into the header on Close.
type writeSeekerBuffer struct {
	data []byte
	pos  int
}

func (b *writeSeekerBuffer) Write(p []byte) (int, error) {
	if need := b.pos + len(p); need > len(b.data) {
		grown := make([]byte, need)
		copy(grown, b.data)
		b.data = grown
	}
	copy(b.data[b.pos:], p)
	b.pos += len(p)
	return len(p), nil
}

func (b *writeSeekerBuffer) Seek(offset int64, whence int) (int64, error) {
	var next int64
	switch whence {
	case io.SeekStart:
		next = offset
	case io.SeekCurrent:
		next = int64(b.pos) + offset
	case io.SeekEnd:
		next = int64(len(b.data)) + offset
	default:
		return 0, fmt.Errorf("unsupported whence %d", whence)
	}
	if next < 0 {
		return 0, fmt.Errorf("seek before start of buffer")
	}
	b.pos = int(next)
	return next, nil
}
