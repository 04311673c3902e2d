// Copyright (c) fetchmux 2026. All rights reserved.
// SPDX-License-Identifier: MIT

package consolestatus

import (
	"fmt"
	"io"
	"sync"

	"github.com/fetchmux/fetchmux/internal/progress"
)

// Listener renders batch progress events as a single repainted status line,
// with item completions and failures printed on their own lines.
// It implements progress.Listener.
type Listener struct {
	mu sync.Mutex
	w  io.Writer
}

// New creates a console status listener writing to w.
func New(w io.Writer) *Listener {
	return &Listener{w: w}
}

// OnEvent implements progress.Listener.
func (l *Listener) OnEvent(event progress.Event) {
	l.mu.Lock()
	defer l.mu.Unlock()

	switch event.Type {
	case progress.EventRunStarted:
		fmt.Fprintf(l.w, "Starting batch of %d item(s)\n", event.TotalItems)

	case progress.EventSnapshot:
		label := event.Snapshot.Label
		if label == "" {
			label = "..."
		}

		fmt.Fprintf(l.w, "\r\033[2K[%d/%d] %5.1f%% %3.0f%% total  %s",
			event.Item, event.TotalItems, event.Snapshot.Percent, event.Fraction*100, label)

	case progress.EventItemCompleted:
		fmt.Fprintf(l.w, "\r\033[2K[%d/%d] done  %s\n", event.Item, event.TotalItems, event.Snapshot.Label)

	case progress.EventItemFailed:
		fmt.Fprintf(l.w, "\r\033[2K[%d/%d] failed (exit code %d)\n", event.Item, event.TotalItems, event.ExitCode)

	case progress.EventRunFinished:
		fmt.Fprintf(l.w, "\r\033[2KBatch %s", event.Message)

		if event.Failed > 0 {
			fmt.Fprintf(l.w, " (%d item(s) failed)", event.Failed)
		}

		fmt.Fprintln(l.w)

	case progress.EventItemStarted:
		// The first snapshot line covers it.
	}
}
