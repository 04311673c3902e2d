// Copyright (c) fetchmux 2026. All rights reserved.
// SPDX-License-Identifier: MIT

package subproc

import (
	"errors"
	"os"
	"sync"
	"syscall"
)

// CancelHandle allows an in-flight subprocess to be asked to terminate from
// a different goroutine than the one awaiting its completion. It wraps at
// most one live process reference at a time; Stream binds the process as it
// starts and releases it when it exits.
//
// The zero value is not usable; create handles with NewCancelHandle.
type CancelHandle struct {
	mu   sync.Mutex
	proc *os.Process
}

// NewCancelHandle creates an unbound cancellation handle.
func NewCancelHandle() *CancelHandle {
	return &CancelHandle{}
}

// Terminate requests graceful termination of the bound process, if any.
// It sends SIGTERM rather than SIGKILL so the tool can flush partial output.
// It is idempotent and safe to call before a process is bound, after it has
// exited, or concurrently from multiple goroutines; it never waits for
// termination to complete.
func (h *CancelHandle) Terminate() {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.proc == nil {
		return
	}

	if err := h.proc.Signal(syscall.SIGTERM); err != nil && !errors.Is(err, os.ErrProcessDone) {
		// The process exited between the bind and the signal; nothing to do.
		return
	}
}

// bind stores the process reference. Called by Stream immediately after a
// successful launch, before any output is drained.
func (h *CancelHandle) bind(p *os.Process) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.proc = p
}

// release clears the process reference so a later Terminate cannot signal a
// reaped or unrelated process.
func (h *CancelHandle) release() {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.proc = nil
}
