// Copyright (c) fetchmux 2026. All rights reserved.
// SPDX-License-Identifier: MIT

package batch

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/go-multierror"

	"github.com/fetchmux/fetchmux/internal/ctxlog"
	"github.com/fetchmux/fetchmux/internal/progress"
	"github.com/fetchmux/fetchmux/internal/progressline"
	"github.com/fetchmux/fetchmux/internal/subproc"
	"github.com/fetchmux/fetchmux/internal/toolpath"
)

var (
	// ErrEmptyBatch is returned when a run is created with no items.
	ErrEmptyBatch = errors.New("batch item list is empty")
	// ErrToolNotFound is returned per item when the executable cannot be resolved.
	ErrToolNotFound = errors.New("tool not found")
	// ErrAlreadyExecuted is returned when Execute is called on a used run.
	ErrAlreadyExecuted = errors.New("batch run already executed")
)

// StreamFunc launches an invocation with a line callback and a cancellation
// handle. It matches subproc.Stream and exists so tests can substitute fake
// subprocess behaviour.
type StreamFunc func(ctx context.Context, inv subproc.Invocation, onLine func(string), handle *subproc.CancelHandle) subproc.Result

// Config wires a Run to its collaborators.
type Config struct {
	// ToolName is the logical executable name, resolved once per run.
	ToolName string
	// Resolver locates the executable.
	Resolver *toolpath.Resolver
	// Build constructs the invocation for one item from the resolved path.
	Build func(toolPath string, item Item) subproc.Invocation
	// Reporter receives progress events; nil means no reporting.
	Reporter progress.Reporter
	// Stream runs one subprocess; nil means subproc.Stream.
	Stream StreamFunc
}

// Run drives an ordered list of items through the subprocess runner, one at
// a time, merging per-item progress into a single aggregate fraction and
// tolerating per-item failures. A Run executes at most once.
type Run struct {
	id     uuid.UUID
	cfg    Config
	items  []Item
	handle *subproc.CancelHandle

	cancelled atomic.Bool

	mu          sync.Mutex
	status      Status
	snap        progressline.Snapshot
	finished    int // items fully processed (success or failure) before the current one
	maxFraction float64
}

// New creates a run over a non-empty item list. The list is copied; it is
// immutable for the duration of the run.
func New(cfg Config, items []Item) (*Run, error) {
	if len(items) == 0 {
		return nil, ErrEmptyBatch
	}

	if cfg.Reporter == nil {
		cfg.Reporter = progress.NewNullReporter()
	}

	if cfg.Stream == nil {
		cfg.Stream = subproc.Stream
	}

	copied := make([]Item, len(items))
	copy(copied, items)

	return &Run{
		id:     uuid.New(),
		cfg:    cfg,
		items:  copied,
		handle: subproc.NewCancelHandle(),
		status: StatusIdle,
	}, nil
}

// ID returns the run identifier carried on every emitted event.
func (r *Run) ID() uuid.UUID {
	return r.id
}

// Status returns the current lifecycle state.
func (r *Run) Status() Status {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.status
}

// Snapshot returns a consistent copy of the current progress snapshot.
func (r *Run) Snapshot() progressline.Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.snap
}

// Cancel requests cooperative cancellation: the in-flight subprocess is
// asked to terminate and no further items are scheduled. Safe to call from
// any goroutine, any number of times, before, during or after the run.
func (r *Run) Cancel() {
	r.cancelled.Store(true)
	r.handle.Terminate()
}

// Execute processes the items in declaration order and returns the terminal
// status plus the aggregated per-item failures, if any. Per-item errors
// never abort the batch; only cancellation stops it early.
func (r *Run) Execute(ctx context.Context) (Status, error) {
	r.mu.Lock()
	if r.status != StatusIdle {
		status := r.status
		r.mu.Unlock()

		return status, ErrAlreadyExecuted
	}

	r.status = StatusRunning
	r.mu.Unlock()

	logger := ctxlog.Logger(ctx).With("runID", r.id.String(), "tool", r.cfg.ToolName)
	logger.Debug("batch run starting", "items", len(r.items))

	total := len(r.items)

	r.report(progress.Event{
		Type:       progress.EventRunStarted,
		TotalItems: total,
	})

	// Resolved once per run, not per item.
	toolPath, found := r.cfg.Resolver.Resolve(ctx, r.cfg.ToolName)

	var (
		failures     *multierror.Error
		failedCount  int
		cancelledMid bool
	)

	for i, item := range r.items {
		if r.cancelled.Load() {
			cancelledMid = true
			break
		}

		idx := i + 1

		r.startItem()
		r.report(progress.Event{
			Type:       progress.EventItemStarted,
			Item:       idx,
			TotalItems: total,
			Fraction:   r.fraction(),
		})

		if !found {
			err := fmt.Errorf("item %d (%s): %w: %s", idx, item.Source, ErrToolNotFound, r.cfg.ToolName)
			failures = multierror.Append(failures, err)
			failedCount++

			logger.Warn("item failed", "item", idx, "source", item.Source, "error", err)
			r.finishItem()
			r.report(progress.Event{
				Type:       progress.EventItemFailed,
				Item:       idx,
				TotalItems: total,
				ExitCode:   1,
				Err:        err,
				Fraction:   r.fraction(),
			})

			continue
		}

		inv := r.cfg.Build(toolPath, item)
		res := r.cfg.Stream(ctx, inv, r.lineFunc(idx, total), r.handle)

		if r.cancelled.Load() {
			// The in-flight process was signalled on our behalf; its exit
			// code is unreliable and is not recorded as a failure.
			cancelledMid = true
			break
		}

		r.finishItem()

		if res.ExitCode == 0 && res.Err == nil {
			logger.Debug("item completed", "item", idx, "source", item.Source)
			r.report(progress.Event{
				Type:       progress.EventItemCompleted,
				Item:       idx,
				TotalItems: total,
				Snapshot:   r.Snapshot(),
				Fraction:   r.fraction(),
			})

			continue
		}

		err := fmt.Errorf("item %d (%s): exit code %d", idx, item.Source, res.ExitCode)
		if res.Err != nil {
			err = fmt.Errorf("item %d (%s): %w", idx, item.Source, res.Err)
		}

		failures = multierror.Append(failures, err)
		failedCount++

		logger.Warn("item failed", "item", idx, "source", item.Source, "exitCode", res.ExitCode, "error", res.Err)
		r.report(progress.Event{
			Type:       progress.EventItemFailed,
			Item:       idx,
			TotalItems: total,
			ExitCode:   res.ExitCode,
			Err:        err,
			Fraction:   r.fraction(),
		})
	}

	var final Status

	switch {
	case cancelledMid:
		final = StatusCancelled
	case failedCount > 0:
		final = StatusPartiallyFailed
	default:
		final = StatusCompleted
	}

	r.mu.Lock()
	r.status = final

	if final == StatusCompleted {
		r.maxFraction = 1
	}

	fraction := r.maxFraction
	r.mu.Unlock()

	logger.Debug("batch run finished", "status", final.String(), "failed", failedCount)

	r.report(progress.Event{
		Type:       progress.EventRunFinished,
		TotalItems: total,
		Fraction:   fraction,
		Message:    final.String(),
		Failed:     failedCount,
	})

	return final, failures.ErrorOrNil()
}

// lineFunc feeds one item's output lines through the parser and publishes a
// snapshot event whenever a field changes. It runs on the subprocess drain
// goroutine; snapshot access is serialized by the run mutex.
func (r *Run) lineFunc(idx, total int) func(string) {
	return func(line string) {
		r.mu.Lock()

		if !progressline.Apply(line, &r.snap) {
			r.mu.Unlock()
			return
		}

		snap := r.snap
		fraction := r.aggregateLocked()
		r.mu.Unlock()

		r.report(progress.Event{
			Type:       progress.EventSnapshot,
			Item:       idx,
			TotalItems: total,
			Snapshot:   snap,
			Fraction:   fraction,
		})
	}
}

// startItem resets the per-item snapshot fields. The label is kept; it is a
// human-readable breadcrumb that persists until the tool announces the next
// destination.
func (r *Run) startItem() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.snap.CurrentItem = 0
	r.snap.TotalItems = 0
	r.snap.Percent = 0
}

// finishItem counts the current item as fully processed, advancing the
// aggregate floor past whatever fraction its output reported. The per-item
// snapshot fields are cleared first so the finished item's percent does not
// double-count on top of the incremented floor.
func (r *Run) finishItem() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.snap.CurrentItem = 0
	r.snap.TotalItems = 0
	r.snap.Percent = 0
	r.finished++
	r.aggregateLocked()
}

// fraction returns the published aggregate fraction.
func (r *Run) fraction() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.aggregateLocked()
}

// aggregateLocked computes (finished + currentItemFraction) / totalItems,
// clamping percent into [0,1] and nesting the tool's own n-of-m position
// when it reports one. The published value never regresses. Must be called
// with the run mutex held.
func (r *Run) aggregateLocked() float64 {
	itemFrac := clamp01(r.snap.Percent / 100)

	if r.snap.TotalItems > 1 && r.snap.CurrentItem >= 1 {
		itemFrac = (float64(r.snap.CurrentItem-1) + itemFrac) / float64(r.snap.TotalItems)
	}

	f := (float64(r.finished) + clamp01(itemFrac)) / float64(len(r.items))
	if f < r.maxFraction {
		return r.maxFraction
	}

	r.maxFraction = f

	return f
}

func clamp01(f float64) float64 {
	switch {
	case f < 0:
		return 0
	case f > 1:
		return 1
	default:
		return f
	}
}

func (r *Run) report(event progress.Event) {
	event.RunID = r.id
	event.Timestamp = time.Now()
	r.cfg.Reporter.Report(event)
}
