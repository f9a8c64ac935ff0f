// Package app wires config, logging, capture, store, and IPC into the mull
// command surface.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"syscall"
	"time"

	"github.com/rbright/mull/internal/audio"
	"github.com/rbright/mull/internal/cli"
	"github.com/rbright/mull/internal/config"
	"github.com/rbright/mull/internal/doctor"
	"github.com/rbright/mull/internal/ipc"
	"github.com/rbright/mull/internal/logging"
	"github.com/rbright/mull/internal/version"
)

type Runner struct {
	Stdout io.Writer
	Stderr io.Writer
	Logger *slog.Logger
}

func Execute(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	r := Runner{Stdout: stdout, Stderr: stderr}
	return r.Execute(ctx, args)
}

func (r Runner) Execute(ctx context.Context, args []string) int {
	parsed, err := cli.Parse(args)
	if err != nil {
		fmt.Fprintf(r.Stderr, "error: %v\n\n", err)
		fmt.Fprint(r.Stderr, cli.HelpText("mull"))
		return 2
	}

	if parsed.ShowHelp {
		fmt.Fprint(r.Stdout, cli.HelpText("mull"))
		return 0
	}

	if parsed.Command == cli.CommandVersion {
		fmt.Fprintln(r.Stdout, version.String())
		return 0
	}

	logRuntime, err := logging.New()
	if err != nil {
		fmt.Fprintf(r.Stderr, "error: setup logging: %v\n", err)
		return 1
	}
	defer func() { _ = logRuntime.Close() }()

	logger := r.Logger
	if logger == nil {
		logger = logRuntime.Logger
	}

	cfgLoaded, err := config.Load(parsed.ConfigPath)
	if err != nil {
		fmt.Fprintf(r.Stderr, "error: %v\n", err)
		logger.Error("load config failed", "error", err.Error())
		return 1
	}
	for _, w := range cfgLoaded.Warnings {
		fmt.Fprintf(r.Stderr, "warning: %s\n", w.Message)
		logger.Warn("config warning", "message", w.Message)
	}

	logger.Info("command start",
		"command", parsed.Command,
		"config", cfgLoaded.Path,
		"log", logRuntime.Path,
	)

	switch parsed.Command {
	case cli.CommandDoctor:
		report := doctor.Run(cfgLoaded)
		fmt.Fprintln(r.Stdout, report.String())
		if report.OK() {
			return 0
		}
		return 1
	case cli.CommandDevices:
		return r.commandDevices(ctx)
	case cli.CommandStatus:
		return r.commandStatus(ctx)
	case cli.CommandPause:
		return r.forwardOrFail(ctx, ipc.CmdPause)
	case cli.CommandResume:
		return r.forwardOrFail(ctx, ipc.CmdResume)
	case cli.CommandStop:
		return r.forwardOrFail(ctx, ipc.CmdStop)
	case cli.CommandCommit:
		return r.forwardOrFail(ctx, ipc.CmdCommit)
	case cli.CommandDiscard:
		return r.forwardOrFail(ctx, ipc.CmdDiscard)
	case cli.CommandRecord:
		return r.commandRecord(ctx, parsed, cfgLoaded.Config, logger)
	case cli.CommandFolders, cli.CommandFolder, cli.CommandNotes, cli.CommandJot, cli.CommandSynthesize:
		return r.commandStore(ctx, parsed, cfgLoaded.Config, logger)
	default:
		fmt.Fprintf(r.Stderr, "error: unsupported command %q\n", parsed.Command)
		return 2
	}
}

func (r Runner) commandDevices(ctx context.Context) int {
	devices, err := audio.ListDevices(ctx)
	if err != nil {
		fmt.Fprintf(r.Stderr, "error: %v\n", err)
		return 1
	}
	if len(devices) == 0 {
		fmt.Fprintln(r.Stdout, "no audio devices found")
		return 1
	}

	for _, device := range devices {
		defaultMark := " "
		if device.Default {
			defaultMark = "*"
		}
		availability := "yes"
		if !device.Available {
			availability = "no"
		}
		muted := "no"
		if device.Muted {
			muted = "yes"
		}
		fmt.Fprintf(
			r.Stdout,
			"%s id=%s | description=%q | state=%s | available=%s | muted=%s\n",
			defaultMark,
			device.ID,
			device.Description,
			device.State,
			availability,
			muted,
		)
	}

	return 0
}

func (r Runner) commandStatus(ctx context.Context) int {
	socketPath, err := ipc.RuntimeSocketPath()
	if err != nil {
		fmt.Fprintln(r.Stdout, "idle")
		return 0
	}

	resp, handled, err := tryForward(ctx, socketPath, ipc.CmdStatus)
	if handled {
		if err != nil {
			fmt.Fprintf(r.Stderr, "error: %v\n", err)
			return 1
		}
		if resp.State == "" {
			resp.State = "idle"
		}
		if resp.ElapsedSeconds > 0 {
			fmt.Fprintf(r.Stdout, "%s (%.1fs)\n", resp.State, resp.ElapsedSeconds)
		} else {
			fmt.Fprintln(r.Stdout, resp.State)
		}
		return 0
	}

	fmt.Fprintln(r.Stdout, "idle")
	return 0
}

func (r Runner) forwardOrFail(ctx context.Context, command string) int {
	socketPath, err := ipc.RuntimeSocketPath()
	if err != nil {
		fmt.Fprintf(r.Stderr, "error: %v\n", err)
		return 1
	}

	resp, handled, err := tryForward(ctx, socketPath, command)
	if !handled {
		fmt.Fprintf(r.Stderr, "error: no active mull recording session\n")
		return 1
	}
	if err != nil {
		fmt.Fprintf(r.Stderr, "error: %v\n", err)
		return 1
	}

	r.printResponse(command, resp)
	return 0
}

// printResponse renders the payload fields a forwarded command came back with.
func (r Runner) printResponse(command string, resp ipc.Response) {
	switch command {
	case ipc.CmdStop, ipc.CmdPreview:
		if len(resp.Peaks) > 0 {
			fmt.Fprintln(r.Stdout, renderPeaks(resp.Peaks))
		}
		fmt.Fprintf(r.Stdout, "preview: %.1fs captured\n", resp.DurationSeconds)
	case ipc.CmdCommit:
		fmt.Fprintln(r.Stdout, resp.Caption)
		fmt.Fprintln(r.Stdout, resp.FileRef)
	default:
		if resp.Message != "" {
			fmt.Fprintln(r.Stdout, resp.Message)
		} else if resp.State != "" {
			fmt.Fprintln(r.Stdout, resp.State)
		}
	}
}

var sparkLevels = []rune("▁▂▃▄▅▆▇█")

// renderPeaks draws normalized waveform peaks as a one-line sparkline.
func renderPeaks(peaks []float64) string {
	var b strings.Builder
	for _, peak := range peaks {
		if peak < 0 {
			peak = 0
		}
		if peak > 1 {
			peak = 1
		}
		idx := int(peak * float64(len(sparkLevels)-1))
		b.WriteRune(sparkLevels[idx])
	}
	return b.String()
}

// forwardTimeout bounds one control roundtrip. Commit covers a WAV encode,
// a blob upload, and a note insert, so it gets far more headroom than the
// in-memory state commands.
func forwardTimeout(command string) time.Duration {
	switch command {
	case ipc.CmdCommit:
		return 30 * time.Second
	case ipc.CmdStop:
		return 5 * time.Second
	default:
		return 500 * time.Millisecond
	}
}

func tryForward(ctx context.Context, socketPath string, command string) (ipc.Response, bool, error) {
	resp, err := ipc.Send(ctx, socketPath, ipc.Request{Command: command}, forwardTimeout(command))
	if err == nil {
		if resp.OK {
			return resp, true, nil
		}
		return resp, true, errors.New(resp.Error)
	}

	if isSocketMissing(err) {
		return ipc.Response{}, false, nil
	}
	if isConnectionRefused(err) {
		return ipc.Response{}, false, nil
	}

	return ipc.Response{}, true, fmt.Errorf("forward command %q: %w", command, err)
}

func isSocketMissing(err error) bool {
	if err == nil {
		return false
	}
	return errors.Is(err, os.ErrNotExist) ||
		strings.Contains(err.Error(), "no such file or directory")
}

func isConnectionRefused(err error) bool {
	if err == nil {
		return false
	}
	return errors.Is(err, syscall.ECONNREFUSED)
}
