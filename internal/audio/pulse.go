// Package audio handles device discovery, selection, and PCM capture streams.
package audio

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/jfreymuth/pulse"
	pulseproto "github.com/jfreymuth/pulse/proto"
)

// Device describes one Pulse input source surfaced to mull.
type Device struct {
	ID          string
	Description string
	State       string
	Available   bool
	Muted       bool
	Default     bool
}

// ListDevices returns available Pulse input sources with default/availability metadata.
func ListDevices(_ context.Context) ([]Device, error) {
	client, err := pulse.NewClient(
		pulse.ClientApplicationName("mull"),
		pulse.ClientApplicationIconName("audio-input-microphone"),
	)
	if err != nil {
		return nil, fmt.Errorf("connect pulse server: %w", err)
	}
	defer client.Close()

	defaultSource, err := client.DefaultSource()
	if err != nil {
		return nil, fmt.Errorf("read default source: %w", err)
	}
	defaultID := defaultSource.ID()

	var sourceInfos pulseproto.GetSourceInfoListReply
	if err := client.RawRequest(&pulseproto.GetSourceInfoList{}, &sourceInfos); err != nil {
		return nil, fmt.Errorf("list sources: %w", err)
	}

	devices := make([]Device, 0, len(sourceInfos))
	for _, source := range sourceInfos {
		if source == nil {
			continue
		}
		devices = append(devices, Device{
			ID:          source.SourceName,
			Description: source.Device,
			State:       sourceStateString(source.State),
			Available:   sourceAvailable(source),
			Muted:       source.Mute,
			Default:     source.SourceName == defaultID,
		})
	}
	return devices, nil
}

// SelectDevice resolves the audio.input preference against live devices.
// An unusable preferred device falls back to the default source.
func SelectDevice(ctx context.Context, input string) (Device, error) {
	devices, err := ListDevices(ctx)
	if err != nil {
		return Device{}, err
	}
	return selectDeviceFromList(devices, input)
}

// selectDeviceFromList applies selection policy to a pre-fetched device list.
func selectDeviceFromList(devices []Device, input string) (Device, error) {
	if len(devices) == 0 {
		return Device{}, errors.New("no audio input devices found")
	}

	input = strings.TrimSpace(strings.ToLower(input))

	var defaultDevice *Device
	var preferred *Device
	for i := range devices {
		dev := &devices[i]
		if dev.Default {
			defaultDevice = dev
		}
		if preferred == nil && input != "" && input != "default" && deviceMatches(*dev, input) {
			preferred = dev
		}
	}

	usable := func(d *Device) bool { return d != nil && d.Available && !d.Muted }

	if input != "" && input != "default" {
		if preferred == nil {
			return Device{}, fmt.Errorf("audio.input %q did not match any device", input)
		}
		if usable(preferred) {
			return *preferred, nil
		}
		if !usable(defaultDevice) {
			return Device{}, fmt.Errorf("audio.input %q is unusable and no usable default source exists", input)
		}
		return *defaultDevice, nil
	}

	if !usable(defaultDevice) {
		if defaultDevice == nil {
			return Device{}, errors.New("default audio source is unavailable")
		}
		reason := "unavailable"
		if defaultDevice.Muted {
			reason = "muted"
		}
		return Device{}, fmt.Errorf("default audio source %q is %s", defaultDevice.ID, reason)
	}
	return *defaultDevice, nil
}

// deviceMatches reports whether a search term matches a device id or description.
func deviceMatches(device Device, term string) bool {
	if term == "" {
		return false
	}
	id := strings.ToLower(device.ID)
	desc := strings.ToLower(device.Description)
	return strings.Contains(id, term) || strings.Contains(desc, term)
}

// Capture streams fixed-size PCM chunks from one selected Pulse source.
// Chunk size is derived from the session quality profile (100ms of audio).
type Capture struct {
	device  Device
	profile QualityProfile

	client *pulse.Client
	stream *pulse.RecordStream

	chunks chan []byte
	stopCh chan struct{}

	mu      sync.Mutex
	pending []byte
	stopped bool
	paused  bool

	inflight sync.WaitGroup
	bytes    atomic.Int64
}

// StartCapture creates and starts a record stream with the profile's format.
func StartCapture(ctx context.Context, selected Device, profile QualityProfile) (*Capture, error) {
	client, err := pulse.NewClient(
		pulse.ClientApplicationName("mull"),
		pulse.ClientApplicationIconName("audio-input-microphone"),
	)
	if err != nil {
		return nil, fmt.Errorf("connect pulse server: %w", err)
	}

	source, err := client.SourceByID(selected.ID)
	if err != nil {
		client.Close()
		return nil, fmt.Errorf("resolve source %q: %w", selected.ID, err)
	}

	capture := &Capture{
		device:  selected,
		profile: profile,
		client:  client,
		chunks:  make(chan []byte, 128),
		stopCh:  make(chan struct{}),
	}

	channelOpt := pulse.RecordMono
	if profile.Channels == 2 {
		channelOpt = pulse.RecordStereo
	}

	writer := pulse.NewWriter(writerFunc(capture.onPCM), pulseproto.FormatInt16LE)
	stream, err := client.NewRecord(
		writer,
		pulse.RecordSource(source),
		channelOpt,
		pulse.RecordSampleRate(profile.SampleRate),
		pulse.RecordBufferFragmentSize(uint32(profile.ChunkSizeBytes())),
		pulse.RecordMediaName("mull voice memo"),
	)
	if err != nil {
		capture.Close()
		return nil, fmt.Errorf("create pulse record stream: %w", err)
	}

	capture.stream = stream
	stream.Start()

	go func() {
		<-ctx.Done()
		_ = capture.Stop()
	}()

	return capture, nil
}

// Device returns capture metadata for logging and diagnostics.
func (c *Capture) Device() Device {
	return c.device
}

// Profile returns the quality profile this capture was opened with.
func (c *Capture) Profile() QualityProfile {
	return c.profile
}

// Chunks returns the PCM stream as fixed-size byte slices.
func (c *Capture) Chunks() <-chan []byte {
	return c.chunks
}

// BytesCaptured reports total bytes accepted from Pulse.
func (c *Capture) BytesCaptured() int64 {
	return c.bytes.Load()
}

// Pause suspends the record stream; buffered chunks are preserved.
func (c *Capture) Pause() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.stopped {
		return errors.New("capture already stopped")
	}
	if c.paused {
		return nil
	}
	c.paused = true
	c.stream.Stop()
	return nil
}

// Resume restarts a paused record stream.
func (c *Capture) Resume() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.stopped {
		return errors.New("capture already stopped")
	}
	if !c.paused {
		return nil
	}
	c.paused = false
	c.stream.Start()
	return nil
}

// Stop halts the stream, flushes residual PCM, and closes Chunks exactly once.
func (c *Capture) Stop() error {
	c.mu.Lock()
	if c.stopped {
		c.mu.Unlock()
		return nil
	}
	c.stopped = true
	close(c.stopCh)
	c.mu.Unlock()

	if c.stream != nil {
		c.stream.Stop()
		c.stream.Close()
	}
	if c.client != nil {
		c.client.Close()
	}

	c.inflight.Wait()

	c.mu.Lock()
	pending := append([]byte(nil), c.pending...)
	c.pending = nil
	c.mu.Unlock()

	if len(pending) > 0 {
		chunk := make([]byte, len(pending))
		copy(chunk, pending)
		select {
		case c.chunks <- chunk:
		default:
		}
	}

	close(c.chunks)
	return nil
}

// Close is a convenience alias for Stop.
func (c *Capture) Close() {
	_ = c.Stop()
}

// onPCM receives raw Pulse frames and emits profile-sized slices to c.chunks.
func (c *Capture) onPCM(buffer []byte) (int, error) {
	if len(buffer) == 0 {
		return 0, nil
	}

	select {
	case <-c.stopCh:
		return 0, io.EOF
	default:
	}

	chunkSize := c.profile.ChunkSizeBytes()

	c.mu.Lock()
	if c.stopped {
		c.mu.Unlock()
		return 0, io.EOF
	}
	if c.paused {
		// The server may flush a residual fragment right after stream.Stop;
		// paused sessions must not grow the buffer.
		c.mu.Unlock()
		return len(buffer), nil
	}
	// Guard Add under the same mutex as c.stopped to avoid Add/Wait races.
	c.inflight.Add(1)

	c.pending = append(c.pending, buffer...)

	chunks := make([][]byte, 0, len(c.pending)/chunkSize)
	for len(c.pending) >= chunkSize {
		chunk := make([]byte, chunkSize)
		copy(chunk, c.pending[:chunkSize])
		c.pending = c.pending[chunkSize:]
		chunks = append(chunks, chunk)
	}
	c.mu.Unlock()
	defer c.inflight.Done()

	c.bytes.Add(int64(len(buffer)))

	for _, chunk := range chunks {
		select {
		case <-c.stopCh:
			return 0, io.EOF
		case c.chunks <- chunk:
		}
	}

	return len(buffer), nil
}

// writerFunc adapts a function to io.Writer for pulse.NewWriter.
type writerFunc func([]byte) (int, error)

func (f writerFunc) Write(b []byte) (int, error) {
	return f(b)
}

// sourceStateString maps Pulse source state constants to human-readable values.
func sourceStateString(state uint32) string {
	switch state {
	case 0:
		return "running"
	case 1:
		return "idle"
	case 2:
		return "suspended"
	default:
		return fmt.Sprintf("unknown(%d)", state)
	}
}

// sourceAvailable maps Pulse source port availability to a simple boolean.
func sourceAvailable(source *pulseproto.GetSourceInfoReply) bool {
	if source == nil {
		return false
	}
	if len(source.Ports) == 0 {
		return true
	}
	for _, port := range source.Ports {
		if port.Name != source.ActivePortName {
			continue
		}
		// PulseAudio values: unknown=0, no=1, yes=2.
		return port.Available == 0 || port.Available == 2
	}
	return true
}
