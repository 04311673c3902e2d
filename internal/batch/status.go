// Copyright (c) fetchmux 2026. All rights reserved.
// SPDX-License-Identifier: MIT

package batch

// Status is the lifecycle state of a batch run. Runs move from StatusIdle to
// StatusRunning and then to exactly one terminal state; terminal states are
// final and a new run requires a fresh Run instance.
type Status int

const (
	// StatusIdle means the run has been created but not executed.
	StatusIdle Status = iota
	// StatusRunning means items are being processed.
	StatusRunning
	// StatusCompleted means all items processed with zero failures.
	StatusCompleted
	// StatusCancelled means the run observed a cancellation request before
	// exhausting the item list.
	StatusCancelled
	// StatusPartiallyFailed means all items were processed and at least one failed.
	StatusPartiallyFailed
)

const (
	statusIdleStr            = "idle"
	statusRunningStr         = "running"
	statusCompletedStr       = "completed"
	statusCancelledStr       = "cancelled"
	statusPartiallyFailedStr = "partially-failed"
	statusUnknownStr         = "unknown"
)

// String returns the string representation of the Status.
func (s Status) String() string {
	switch s {
	case StatusIdle:
		return statusIdleStr
	case StatusRunning:
		return statusRunningStr
	case StatusCompleted:
		return statusCompletedStr
	case StatusCancelled:
		return statusCancelledStr
	case StatusPartiallyFailed:
		return statusPartiallyFailedStr
	default:
		return statusUnknownStr
	}
}

// Terminal reports whether the status is final.
func (s Status) Terminal() bool {
	switch s {
	case StatusCompleted, StatusCancelled, StatusPartiallyFailed:
		return true
	default:
		return false
	}
}
