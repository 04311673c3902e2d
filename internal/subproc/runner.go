// Copyright (c) fetchmux 2026. All rights reserved.
// SPDX-License-Identifier: MIT

package subproc

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"

	"github.com/fetchmux/fetchmux/internal/ctxlog"
	"github.com/fetchmux/fetchmux/internal/linebuf"
)

const maxOutputSize = 8 * 1024 * 1024 // 8MB

var (
	// ErrCouldNotStartProcess is returned when the process could not be started.
	ErrCouldNotStartProcess = errors.New("could not start process")
	// ErrFailedToCreatePipe is returned when the operating system pipe could not be created.
	ErrFailedToCreatePipe = errors.New("failed to create pipe")
	// ErrOutputClipped is returned when the captured output exceeds the max size.
	ErrOutputClipped = fmt.Errorf("output exceeds max size of %d bytes", maxOutputSize)
)

// Invocation is a fully built command line for one subprocess launch.
type Invocation struct {
	Path string            // Resolved absolute path of the executable
	Args []string          // Arguments, not including the executable itself
	Dir  string            // Working directory, empty for the caller's
	Env  map[string]string // Extra environment variables
}

// Result is the outcome of one subprocess run, produced once at process exit.
type Result struct {
	ExitCode int    // Exit code; -1 for launch failures and signal deaths
	Output   []byte // Combined stdout and stderr, or the failure message
	Err      error  // Launch or drain error, nil for a plain non-zero exit
}

// Run launches the invocation, drains all combined stdout and stderr as it
// arrives, and returns when the process exits.
func Run(ctx context.Context, inv Invocation) Result {
	return run(ctx, inv, nil, nil)
}

// Stream is Run with a per-line callback and cooperative cancellation.
// onLine is invoked for every complete output line, in the order the bytes
// were produced; it runs on the drain goroutine, not the caller's. handle is
// bound to the process immediately after a successful launch, before any
// output is drained, and released when the process exits. Either may be nil.
func Stream(ctx context.Context, inv Invocation, onLine func(string), handle *CancelHandle) Result {
	return run(ctx, inv, onLine, handle)
}

func run(ctx context.Context, inv Invocation, onLine func(string), handle *CancelHandle) Result {
	logger := ctxlog.Logger(ctx).With("path", inv.Path)
	logger.Debug("launching", "args", inv.Args, "dir", inv.Dir)

	rOut, wOut, err := os.Pipe()
	if err != nil {
		return Result{
			ExitCode: -1,
			Output:   []byte(err.Error()),
			Err:      errors.Join(ErrFailedToCreatePipe, err),
		}
	}

	env := os.Environ()
	for k, v := range inv.Env {
		env = append(env, fmt.Sprintf("%s=%s", k, v))
	}

	cmd := exec.Command(inv.Path, inv.Args...)
	cmd.Dir = inv.Dir
	cmd.Env = env
	cmd.Stdout = wOut
	cmd.Stderr = wOut

	if err := cmd.Start(); err != nil {
		_ = wOut.Close()
		_ = rOut.Close()

		joined := errors.Join(ErrCouldNotStartProcess, err)

		return Result{
			ExitCode: -1,
			Output:   []byte(joined.Error()),
			Err:      joined,
		}
	}

	// The child holds its own copy of the write end; ours must go so the
	// drain goroutine sees EOF when the child exits.
	_ = wOut.Close()

	logger.Debug("process started", "pid", cmd.Process.Pid)

	if handle != nil {
		handle.bind(cmd.Process)
		defer handle.release()
	}

	out := linebuf.NewWriter(onLine, maxOutputSize)

	drained := make(chan error, 1)

	go func() {
		_, copyErr := io.Copy(out, rOut)
		out.Flush()
		drained <- copyErr
	}()

	// Watchdog: a cancelled context hard-kills the process. Cooperative
	// cancellation goes through the CancelHandle instead.
	done := make(chan struct{})

	go func() {
		select {
		case <-ctx.Done():
			logger.Debug("context done, killing process", "pid", cmd.Process.Pid)

			if err := cmd.Process.Kill(); err != nil && !errors.Is(err, os.ErrProcessDone) {
				logger.Error("process kill error", "pid", cmd.Process.Pid, "error", err)
			}
		case <-done:
		}
	}()

	waitErr := cmd.Wait()
	drainErr := <-drained

	close(done)
	_ = rOut.Close()

	res := Result{
		ExitCode: cmd.ProcessState.ExitCode(),
		Output:   out.Bytes(),
	}

	var exitErr *exec.ExitError
	if waitErr != nil && !errors.As(waitErr, &exitErr) {
		res.Err = waitErr
	}

	if drainErr != nil {
		res.Err = errors.Join(res.Err, drainErr)
	}

	if out.Clipped() {
		res.Err = errors.Join(res.Err, ErrOutputClipped)
	}

	logger.Debug("process finished", "exitCode", res.ExitCode, "outputBytes", len(res.Output))

	return res
}
