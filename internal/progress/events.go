// Copyright (c) fetchmux 2026. All rights reserved.
// SPDX-License-Identifier: MIT

package progress

import (
	"time"

	"github.com/google/uuid"

	"github.com/fetchmux/fetchmux/internal/progressline"
)

// Event represents a real-time update from a batch run. Events are emitted
// throughout the run lifecycle to provide feedback for console status
// display and other monitoring consumers.
type Event struct {
	RunID     uuid.UUID // Identifies the batch run the event belongs to
	Type      EventType // Event type indicating what happened
	Timestamp time.Time // When the event occurred

	Item       int                   // 1-based index of the batch item, 0 for run-level events
	TotalItems int                   // Number of items in the batch
	Snapshot   progressline.Snapshot // Parsed per-run progress fields
	Fraction   float64               // Aggregate completion fraction in [0,1], non-decreasing

	// For EventItemFailed and EventRunFinished
	ExitCode int    // Item exit code
	Err      error  // Item failure, if any
	Message  string // Terminal status label for EventRunFinished
	Failed   int    // Count of failed items, for EventRunFinished
}

// EventType represents the type of progress event.
type EventType int

const (
	// EventRunStarted indicates a batch run has begun.
	EventRunStarted EventType = iota
	// EventItemStarted indicates a batch item has begun execution.
	EventItemStarted
	// EventSnapshot indicates the progress snapshot changed.
	EventSnapshot
	// EventItemCompleted indicates a batch item finished successfully.
	EventItemCompleted
	// EventItemFailed indicates a batch item exited non-zero or failed to launch.
	EventItemFailed
	// EventRunFinished indicates the run reached a terminal state.
	EventRunFinished
)

// String implements the Stringer interface for EventType.
func (et EventType) String() string {
	switch et {
	case EventRunStarted:
		return "run-started"
	case EventItemStarted:
		return "item-started"
	case EventSnapshot:
		return "snapshot"
	case EventItemCompleted:
		return "item-completed"
	case EventItemFailed:
		return "item-failed"
	case EventRunFinished:
		return "run-finished"
	default:
		return "unknown"
	}
}

// Reporter is the interface for sending progress events. The batch
// orchestrator emits events through it during execution.
type Reporter interface {
	// Report sends a progress event. Implementations should be non-blocking
	// and handle the case where the receiver might not be listening.
	Report(event Event)
	// Close signals that no more events will be sent and cleans up resources.
	Close()
}

// Listener receives progress events from a batch run. Console status and
// other monitoring consumers implement this interface.
type Listener interface {
	// OnEvent is called when a progress event is received.
	// Implementations should handle events quickly to avoid blocking
	// the reporting goroutine.
	OnEvent(event Event)
}

// NullReporter is a no-op implementation of Reporter, used when progress
// reporting is not needed.
type NullReporter struct{}

// Report implements Reporter.Report by doing nothing.
func (nr *NullReporter) Report(_ Event) {}

// Close implements Reporter.Close by doing nothing.
func (nr *NullReporter) Close() {}

// NewNullReporter creates a new NullReporter.
func NewNullReporter() Reporter {
	return &NullReporter{}
}
