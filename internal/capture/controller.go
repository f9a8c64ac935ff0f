// Package capture drives one audio-recording session at a time through the
// idle -> recording <-> paused -> preview -> {commit|discard} lifecycle.
package capture

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/rbright/mull/internal/audio"
	"github.com/rbright/mull/internal/fsm"
	"github.com/rbright/mull/internal/waveform"
)

var (
	// ErrDeviceUnavailable indicates the capture source could not be acquired.
	ErrDeviceUnavailable = errors.New("capture device unavailable")
	// ErrSessionActive indicates start was called while a session exists.
	ErrSessionActive = errors.New("capture session already active")
	// ErrUploadFailed indicates commit could not persist the recording blob.
	// The finalized recording is kept in preview for retry or discard.
	ErrUploadFailed = errors.New("recording upload failed")
)

// Recording is one finalized, immutable capture awaiting commit or discard.
type Recording struct {
	PCM        []byte
	Profile    audio.QualityProfile
	Device     audio.Device
	Duration   time.Duration
	Bytes      int64
	CapturedAt time.Time
}

// CommitResult is returned to the caller that persists a recording.
type CommitResult struct {
	FileRef  string
	Caption  string
	Duration time.Duration
}

// Status is a snapshot of controller state for status reporting.
type Status struct {
	State   fsm.State
	Elapsed time.Duration
}

// liveSession holds the in-flight capture owned exclusively by the controller.
type liveSession struct {
	profile     audio.QualityProfile
	stream      Stream
	startedAt   time.Time
	pausedAt    time.Time
	pausedTotal time.Duration

	chunkMu     sync.Mutex
	chunks      [][]byte
	collectDone chan struct{}
}

func newLiveSession(profile audio.QualityProfile, stream Stream) *liveSession {
	return &liveSession{
		profile:     profile,
		stream:      stream,
		startedAt:   time.Now(),
		collectDone: make(chan struct{}),
	}
}

// append buffers one chunk emitted by the stream.
func (s *liveSession) append(chunk []byte) {
	s.chunkMu.Lock()
	s.chunks = append(s.chunks, chunk)
	s.chunkMu.Unlock()
}

// assemble concatenates buffered chunks into one PCM byte slice.
func (s *liveSession) assemble() []byte {
	s.chunkMu.Lock()
	defer s.chunkMu.Unlock()
	total := 0
	for _, chunk := range s.chunks {
		total += len(chunk)
	}
	pcm := make([]byte, 0, total)
	for _, chunk := range s.chunks {
		pcm = append(pcm, chunk...)
	}
	return pcm
}

// Controller owns at most one recording session and its finalized preview.
type Controller struct {
	logger   *slog.Logger
	source   Source
	uploader Uploader

	mu         sync.Mutex
	state      fsm.State
	sess       *liveSession
	finalized  *Recording
	committing bool
}

// NewController constructs an idle capture controller.
func NewController(logger *slog.Logger, source Source, uploader Uploader) *Controller {
	return &Controller{
		logger:   logger,
		source:   source,
		uploader: uploader,
		state:    fsm.StateIdle,
	}
}

// State returns the current lifecycle state snapshot.
func (c *Controller) State() fsm.State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// CurrentStatus reports state plus elapsed active recording time.
func (c *Controller) CurrentStatus() Status {
	c.mu.Lock()
	defer c.mu.Unlock()

	status := Status{State: c.state}
	switch {
	case c.sess != nil:
		active := time.Since(c.sess.startedAt) - c.sess.pausedTotal
		if c.state == fsm.StatePaused {
			active -= time.Since(c.sess.pausedAt)
		}
		status.Elapsed = active
	case c.finalized != nil:
		status.Elapsed = c.finalized.Duration
	}
	return status
}

// Start acquires the capture device and begins buffering chunks.
// A second start while any session exists fails with ErrSessionActive.
func (c *Controller) Start(ctx context.Context, profileName string) error {
	profile, err := audio.ProfileByName(profileName)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != fsm.StateIdle {
		return fmt.Errorf("%w: state is %s", ErrSessionActive, c.state)
	}

	stream, err := c.source.Open(ctx, profile)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrDeviceUnavailable, err)
	}

	next, err := fsm.Transition(c.state, fsm.EventStart)
	if err != nil {
		// Unreachable given the idle check, but release the device if it ever fires.
		_ = stream.Stop()
		return err
	}

	sess := newLiveSession(profile, stream)
	c.sess = sess
	c.state = next
	go c.collect(sess)

	c.logInfo("capture started",
		"device", stream.Device().ID,
		"profile", profile.Name,
		"sample_rate", profile.SampleRate,
		"channels", profile.Channels,
	)
	return nil
}

// collect drains stream chunks into the session buffer until the stream closes.
func (c *Controller) collect(sess *liveSession) {
	for chunk := range sess.stream.Chunks() {
		if len(chunk) == 0 {
			continue
		}
		sess.append(chunk)
	}
	close(sess.collectDone)
}

// Pause suspends buffer growth without discarding captured chunks.
func (c *Controller) Pause() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	next, err := fsm.Transition(c.state, fsm.EventPause)
	if err != nil {
		return err
	}
	if err := c.sess.stream.Pause(); err != nil {
		return fmt.Errorf("pause capture stream: %w", err)
	}
	c.sess.pausedAt = time.Now()
	c.state = next
	return nil
}

// Resume restarts buffering after a pause.
func (c *Controller) Resume() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	next, err := fsm.Transition(c.state, fsm.EventResume)
	if err != nil {
		return err
	}
	if err := c.sess.stream.Resume(); err != nil {
		return fmt.Errorf("resume capture stream: %w", err)
	}
	c.sess.pausedTotal += time.Since(c.sess.pausedAt)
	c.state = next
	return nil
}

// Stop finalizes the buffered chunks into an immutable recording and releases
// the capture device. Reported duration excludes paused intervals so the
// caption reflects the audible length of the capture.
func (c *Controller) Stop() error {
	c.mu.Lock()
	wasPaused := c.state == fsm.StatePaused
	next, err := fsm.Transition(c.state, fsm.EventStop)
	if err != nil {
		c.mu.Unlock()
		return err
	}
	sess := c.sess
	c.sess = nil
	c.state = next
	c.mu.Unlock()

	if wasPaused {
		sess.pausedTotal += time.Since(sess.pausedAt)
	}

	_ = sess.stream.Stop()
	<-sess.collectDone

	rec := &Recording{
		PCM:        sess.assemble(),
		Profile:    sess.profile,
		Device:     sess.stream.Device(),
		Duration:   time.Since(sess.startedAt) - sess.pausedTotal,
		Bytes:      sess.stream.BytesCaptured(),
		CapturedAt: sess.startedAt,
	}

	c.mu.Lock()
	c.finalized = rec
	c.mu.Unlock()

	c.logInfo("capture stopped",
		"duration_ms", rec.Duration.Milliseconds(),
		"bytes_captured", rec.Bytes,
	)
	return nil
}

// Preview returns the derived waveform view over the finalized recording.
func (c *Controller) Preview(buckets int) (waveform.Preview, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != fsm.StatePreview || c.finalized == nil {
		return waveform.Preview{}, fmt.Errorf("%w: no finalized recording in state %s", fsm.ErrInvalidTransition, c.state)
	}
	return waveform.Build(c.finalized.PCM, c.finalized.Profile, buckets), nil
}

// Commit uploads the finalized recording and returns its reference plus a
// synthesized caption. On upload failure the controller stays in preview so
// the caller may retry or discard; the captured audio is never dropped.
// The lock is released for the encode and upload so status/pause requests
// stay responsive while the blob is in flight.
func (c *Controller) Commit(ctx context.Context) (CommitResult, error) {
	c.mu.Lock()
	if _, err := fsm.Transition(c.state, fsm.EventCommit); err != nil {
		c.mu.Unlock()
		return CommitResult{}, err
	}
	rec := c.finalized
	if rec == nil {
		c.mu.Unlock()
		return CommitResult{}, fmt.Errorf("%w: no finalized recording", fsm.ErrInvalidTransition)
	}
	if c.committing {
		c.mu.Unlock()
		return CommitResult{}, fmt.Errorf("%w: commit already in progress", fsm.ErrInvalidTransition)
	}
	c.committing = true
	c.mu.Unlock()

	result, objectName, err := c.uploadRecording(ctx, rec)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.committing = false
	if err != nil {
		return CommitResult{}, err
	}

	// Re-validate: a discard may have raced the upload.
	if c.finalized != rec {
		return CommitResult{}, fmt.Errorf("%w: recording discarded during upload", fsm.ErrInvalidTransition)
	}
	next, err := fsm.Transition(c.state, fsm.EventCommit)
	if err != nil {
		return CommitResult{}, err
	}
	c.state = next
	c.finalized = nil

	c.logInfo("capture committed",
		"object", objectName,
		"file_ref", result.FileRef,
		"duration_ms", rec.Duration.Milliseconds(),
	)
	return result, nil
}

// uploadRecording encodes and uploads one finalized recording. Called
// without the controller lock held.
func (c *Controller) uploadRecording(ctx context.Context, rec *Recording) (CommitResult, string, error) {
	wavData, err := audio.EncodeWAV(rec.PCM, rec.Profile)
	if err != nil {
		return CommitResult{}, "", fmt.Errorf("encode recording: %w", err)
	}

	objectName := fmt.Sprintf("%d-recording-%s.wav", rec.CapturedAt.UnixMilli(), uuid.NewString())
	fileRef, err := c.uploader.UploadRecording(ctx, objectName, wavData)
	if err != nil {
		return CommitResult{}, "", fmt.Errorf("%w: %w", ErrUploadFailed, err)
	}

	return CommitResult{
		FileRef:  fileRef,
		Caption:  Caption(rec.CapturedAt, rec.Duration),
		Duration: rec.Duration,
	}, objectName, nil
}

// Discard releases the finalized recording without persisting anything.
func (c *Controller) Discard() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	next, err := fsm.Transition(c.state, fsm.EventDiscard)
	if err != nil {
		return err
	}
	c.finalized = nil
	c.state = next
	c.logInfo("capture discarded")
	return nil
}

// Shutdown force-releases any held device and resets to idle. Used on process
// exit so no open stream outlives the controller on any path.
func (c *Controller) Shutdown() {
	c.mu.Lock()
	sess := c.sess
	c.sess = nil
	c.finalized = nil
	c.state = fsm.StateIdle
	c.mu.Unlock()

	if sess != nil {
		_ = sess.stream.Stop()
		<-sess.collectDone
	}
}

// Caption formats the user-visible description of a committed recording.
func Caption(capturedAt time.Time, duration time.Duration) string {
	return fmt.Sprintf("Recording from %s (%.1fs)", capturedAt.Format("2006-01-02 15:04:05"), duration.Seconds())
}

func (c *Controller) logInfo(msg string, args ...any) {
	if c.logger == nil {
		return
	}
	c.logger.Info(msg, args...)
}
