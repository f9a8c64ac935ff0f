package capture

import (
	"context"
	"fmt"

	"github.com/rbright/mull/internal/audio"
)

// Stream is one live byte-producing capture session on an exclusive device.
type Stream interface {
	Chunks() <-chan []byte
	Pause() error
	Resume() error
	Stop() error
	BytesCaptured() int64
	Device() audio.Device
}

// Source acquires exclusive access to a media capture device.
type Source interface {
	Open(ctx context.Context, profile audio.QualityProfile) (Stream, error)
}

// Uploader persists a finalized recording blob and returns its public reference.
type Uploader interface {
	UploadRecording(ctx context.Context, objectName string, wavData []byte) (string, error)
}

// PulseSource opens live Pulse capture streams honoring the configured input preference.
type PulseSource struct {
	Input string
}

func (s PulseSource) Open(ctx context.Context, profile audio.QualityProfile) (Stream, error) {
	device, err := audio.SelectDevice(ctx, s.Input)
	if err != nil {
		return nil, fmt.Errorf("select input device: %w", err)
	}
	stream, err := audio.StartCapture(ctx, device, profile)
	if err != nil {
		return nil, fmt.Errorf("start capture on %q: %w", device.ID, err)
	}
	return stream, nil
}
