package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/rbright/mull/internal/capture"
	"github.com/rbright/mull/internal/cli"
	"github.com/rbright/mull/internal/config"
	"github.com/rbright/mull/internal/entity"
	"github.com/rbright/mull/internal/fsm"
	"github.com/rbright/mull/internal/gateway"
	"github.com/rbright/mull/internal/ipc"
	"github.com/rbright/mull/internal/store"
	"github.com/rbright/mull/internal/waveform"
)

// sessionOutcome is what a finished record session reports to its owner.
// err is set when the blob was uploaded but the note insert failed, so the
// capture produced no note.
type sessionOutcome struct {
	committed bool
	result    capture.CommitResult
	note      entity.Note
	err       error
}

// commandRecord runs a foreground capture session: it owns the control
// socket, records until a commit or discard arrives, and persists the
// committed recording as a note in the target folder.
func (r Runner) commandRecord(ctx context.Context, parsed cli.Parsed, cfg config.Config, logger *slog.Logger) int {
	socketPath, err := ipc.RuntimeSocketPath()
	if err != nil {
		fmt.Fprintf(r.Stderr, "error: %v\n", err)
		return 1
	}

	gw := gateway.New(cfg.Gateway)
	st := store.New(logger, gw, nil)

	folder, err := resolveFolder(ctx, st, parsed.Folder)
	if err != nil {
		fmt.Fprintf(r.Stderr, "error: %v\n", err)
		return 1
	}

	quality := parsed.Quality
	if quality == "" {
		quality = cfg.Audio.Quality
	}

	listener, err := ipc.Acquire(ctx, socketPath, 180*time.Millisecond, 8, nil)
	if err != nil {
		if errors.Is(err, ipc.ErrAlreadyRunning) {
			fmt.Fprintln(r.Stderr, "error: a mull recording session is already running")
			return 1
		}
		fmt.Fprintf(r.Stderr, "error: %v\n", err)
		return 1
	}
	defer func() {
		_ = listener.Close()
		_ = os.Remove(socketPath)
	}()

	controller := capture.NewController(logger, capture.PulseSource{Input: cfg.Audio.Input}, gw)
	if err := controller.Start(ctx, quality); err != nil {
		fmt.Fprintf(r.Stderr, "error: %v\n", err)
		return 1
	}
	defer controller.Shutdown()

	done := make(chan sessionOutcome, 1)
	var endOnce sync.Once
	end := func(outcome sessionOutcome) {
		endOnce.Do(func() { done <- outcome })
	}

	handler := sessionHandler(controller, st, folder, end)

	serverCtx, serverCancel := context.WithCancel(ctx)
	defer serverCancel()

	serverErrCh := make(chan error, 1)
	go func() {
		serverErrCh <- ipc.Serve(serverCtx, listener, handler)
	}()

	fmt.Fprintf(r.Stdout, "recording into %q (%s quality); control with: mull pause|resume|stop|commit|discard\n",
		folder.Name, quality)

	var outcome sessionOutcome
	interrupted := false
	select {
	case outcome = <-done:
	case <-ctx.Done():
		interrupted = true
	}

	serverCancel()
	if serverErr := <-serverErrCh; serverErr != nil {
		fmt.Fprintf(r.Stderr, "error: control server failed: %v\n", serverErr)
		return 1
	}

	if interrupted {
		logger.Warn("record session interrupted", "folder_id", folder.ID)
		fmt.Fprintln(r.Stdout, "interrupted; recording discarded")
		return 1
	}

	if !outcome.committed {
		fmt.Fprintln(r.Stdout, "discarded")
		return 0
	}

	if outcome.err != nil {
		fmt.Fprintf(r.Stderr, "error: recording uploaded to %s but no note was saved: %v\n",
			outcome.result.FileRef, outcome.err)
		logger.Error("record session saved no note",
			"folder_id", folder.ID,
			"file_ref", outcome.result.FileRef,
			"error", outcome.err.Error(),
		)
		return 1
	}

	fmt.Fprintln(r.Stdout, outcome.result.Caption)
	fmt.Fprintln(r.Stdout, outcome.result.FileRef)
	logger.Info("record session complete",
		"folder_id", folder.ID,
		"note_id", outcome.note.ID,
		"duration_ms", outcome.result.Duration.Milliseconds(),
	)
	return 0
}

// sessionHandler maps control commands onto the capture controller. Commit
// additionally persists the note; commit and discard end the session.
func sessionHandler(controller *capture.Controller, st *store.Store, folder entity.Folder, end func(sessionOutcome)) ipc.Handler {
	return ipc.HandlerFunc(func(ctx context.Context, req ipc.Request) ipc.Response {
		switch req.Command {
		case ipc.CmdStatus:
			status := controller.CurrentStatus()
			return ipc.Response{
				OK:             true,
				State:          string(status.State),
				ElapsedSeconds: status.Elapsed.Seconds(),
			}
		case ipc.CmdPause:
			if err := controller.Pause(); err != nil {
				return errorResponse(controller, err)
			}
			return okResponse(controller)
		case ipc.CmdResume:
			if err := controller.Resume(); err != nil {
				return errorResponse(controller, err)
			}
			return okResponse(controller)
		case ipc.CmdStop:
			if err := controller.Stop(); err != nil {
				return errorResponse(controller, err)
			}
			return previewResponse(controller)
		case ipc.CmdPreview:
			return previewResponse(controller)
		case ipc.CmdCommit:
			result, err := controller.Commit(ctx)
			if err != nil {
				return errorResponse(controller, err)
			}
			note, err := st.AddNote(ctx, folder.ID, result.Caption, entity.NoteRecording, result.FileRef)
			if err != nil {
				// The blob is uploaded but the note insert failed; surface
				// the reference so the capture is not lost.
				end(sessionOutcome{committed: true, result: result, err: err})
				return ipc.Response{
					OK:      false,
					State:   string(controller.State()),
					FileRef: result.FileRef,
					Error:   fmt.Sprintf("recording uploaded to %s but note insert failed: %v", result.FileRef, err),
				}
			}
			end(sessionOutcome{committed: true, result: result, note: note})
			return ipc.Response{
				OK:              true,
				State:           string(fsm.StateIdle),
				DurationSeconds: result.Duration.Seconds(),
				FileRef:         result.FileRef,
				Caption:         result.Caption,
			}
		case ipc.CmdDiscard:
			if err := controller.Discard(); err != nil {
				return errorResponse(controller, err)
			}
			end(sessionOutcome{})
			return okResponse(controller)
		default:
			return ipc.Response{
				OK:    false,
				State: string(controller.State()),
				Error: fmt.Sprintf("unknown command %q", req.Command),
			}
		}
	})
}

func okResponse(controller *capture.Controller) ipc.Response {
	return ipc.Response{OK: true, State: string(controller.State())}
}

func errorResponse(controller *capture.Controller, err error) ipc.Response {
	return ipc.Response{OK: false, State: string(controller.State()), Error: err.Error()}
}

func previewResponse(controller *capture.Controller) ipc.Response {
	preview, err := controller.Preview(waveform.DefaultBuckets)
	if err != nil {
		return errorResponse(controller, err)
	}
	return ipc.Response{
		OK:              true,
		State:           string(controller.State()),
		DurationSeconds: preview.Duration.Seconds(),
		Peaks:           preview.Peaks,
	}
}
