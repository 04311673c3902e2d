// Copyright (c) fetchmux 2026. All rights reserved.
// SPDX-License-Identifier: MIT

package linebuf

import (
	"bytes"
	"strings"
	"sync"
)

// Writer is an io.Writer that splits incoming byte chunks into lines and
// invokes a callback for each complete line, in the order the bytes were
// written. It also captures the full output up to a configurable cap.
// External tools do not flush on line boundaries, so a chunk may contain
// several lines or end mid-line; partial lines are buffered until the
// terminating newline arrives.
// It is safe for concurrent use.
type Writer struct {
	onLine  func(string)
	full    bytes.Buffer
	partial strings.Builder
	maxSize int
	clipped bool
	mu      sync.Mutex
}

// NewWriter creates a Writer that invokes onLine for every complete line.
// onLine may be nil, in which case only capture is performed. maxSize caps
// the captured output in bytes; zero or negative means no cap.
func NewWriter(onLine func(string), maxSize int) *Writer {
	return &Writer{
		onLine:  onLine,
		maxSize: maxSize,
	}
}

// Write implements io.Writer. It never returns an error.
func (w *Writer) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.capture(p)

	w.partial.Write(p)
	combined := w.partial.String()

	if !strings.Contains(combined, "\n") {
		return len(p), nil
	}

	lines := strings.Split(combined, "\n")

	w.partial.Reset()
	// The final element is empty if the chunk ended on a newline,
	// otherwise it is the start of the next line.
	w.partial.WriteString(lines[len(lines)-1])

	if w.onLine != nil {
		for _, line := range lines[:len(lines)-1] {
			w.onLine(strings.TrimSuffix(line, "\r"))
		}
	}

	return len(p), nil
}

// Flush delivers any buffered partial line as a final line.
// Call once after the producing stream has closed.
func (w *Writer) Flush() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.partial.Len() == 0 {
		return
	}

	line := w.partial.String()
	w.partial.Reset()

	if w.onLine != nil {
		w.onLine(strings.TrimSuffix(line, "\r"))
	}
}

// Bytes returns a copy of the captured output.
func (w *Writer) Bytes() []byte {
	w.mu.Lock()
	defer w.mu.Unlock()

	return bytes.Clone(w.full.Bytes())
}

// Clipped reports whether the captured output was truncated at the cap.
func (w *Writer) Clipped() bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	return w.clipped
}

// capture appends p to the full buffer, respecting the cap.
// Must be called with the lock held.
func (w *Writer) capture(p []byte) {
	if w.maxSize <= 0 {
		w.full.Write(p)
		return
	}

	room := w.maxSize - w.full.Len()
	if room <= 0 {
		w.clipped = true
		return
	}

	if len(p) > room {
		p = p[:room]
		w.clipped = true
	}

	w.full.Write(p)
}
