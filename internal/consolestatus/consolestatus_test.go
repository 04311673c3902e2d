// Copyright (c) fetchmux 2026. All rights reserved.
// SPDX-License-Identifier: MIT

package consolestatus

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fetchmux/fetchmux/internal/progress"
	"github.com/fetchmux/fetchmux/internal/progressline"
)

func TestOnEvent_RunLifecycle(t *testing.T) {
	buf := new(bytes.Buffer)
	l := New(buf)

	l.OnEvent(progress.Event{Type: progress.EventRunStarted, TotalItems: 2})
	l.OnEvent(progress.Event{
		Type:       progress.EventSnapshot,
		Item:       1,
		TotalItems: 2,
		Snapshot:   progressline.Snapshot{Percent: 45.2, Label: "MyClip.mp4"},
		Fraction:   0.226,
	})
	l.OnEvent(progress.Event{
		Type:       progress.EventItemCompleted,
		Item:       1,
		TotalItems: 2,
		Snapshot:   progressline.Snapshot{Label: "MyClip.mp4"},
		Fraction:   0.5,
	})
	l.OnEvent(progress.Event{Type: progress.EventRunFinished, Message: "completed"})

	out := buf.String()
	assert.Contains(t, out, "Starting batch of 2 item(s)")
	assert.Contains(t, out, "[1/2]")
	assert.Contains(t, out, "45.2%")
	assert.Contains(t, out, "MyClip.mp4")
	assert.Contains(t, out, "Batch completed")
}

func TestOnEvent_FailureSummary(t *testing.T) {
	buf := new(bytes.Buffer)
	l := New(buf)

	l.OnEvent(progress.Event{Type: progress.EventItemFailed, Item: 2, TotalItems: 3, ExitCode: 9})
	l.OnEvent(progress.Event{Type: progress.EventRunFinished, Message: "partially-failed", Failed: 1})

	out := buf.String()
	assert.Contains(t, out, "failed (exit code 9)")
	assert.Contains(t, out, "Batch partially-failed (1 item(s) failed)")
}
