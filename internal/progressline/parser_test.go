// Copyright (c) fetchmux 2026. All rights reserved.
// SPDX-License-Identifier: MIT

package progressline

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestApply_ItemPosition(t *testing.T) {
	snap := &Snapshot{}

	changed := Apply("[download] Downloading item 3 of 10", snap)

	assert.True(t, changed)
	assert.Equal(t, 3, snap.CurrentItem)
	assert.Equal(t, 10, snap.TotalItems)
}

func TestApply_SingleItemGuard(t *testing.T) {
	snap := &Snapshot{CurrentItem: 2, TotalItems: 5}

	changed := Apply("[download] Downloading item 1 of 1", snap)

	assert.False(t, changed, "total of 1 is a trivial statement, not a batch position")
	assert.Equal(t, 2, snap.CurrentItem)
	assert.Equal(t, 5, snap.TotalItems)
}

func TestApply_Percent(t *testing.T) {
	snap := &Snapshot{}

	changed := Apply("[download]  45.2%", snap)

	assert.True(t, changed)
	assert.InDelta(t, 45.2, snap.Percent, 0.001)
}

func TestApply_PercentWithTrailingDetail(t *testing.T) {
	snap := &Snapshot{}

	changed := Apply("[download]  12.5% of 10.57MiB at 2.31MiB/s ETA 00:04", snap)

	assert.True(t, changed)
	assert.InDelta(t, 12.5, snap.Percent, 0.001)
	assert.Zero(t, snap.CurrentItem, "size detail must not be mistaken for an item position")
	assert.Zero(t, snap.TotalItems)
}

func TestApply_PercentOutOfRangeTolerated(t *testing.T) {
	snap := &Snapshot{}

	changed := Apply("[download]  102.3%", snap)

	assert.True(t, changed, "out-of-range values are accepted; clamping happens at aggregation")
	assert.InDelta(t, 102.3, snap.Percent, 0.001)
}

func TestApply_Destination(t *testing.T) {
	snap := &Snapshot{}

	changed := Apply("[download] Destination: MyClip-ABC123.mp4", snap)

	assert.True(t, changed)
	assert.Equal(t, "MyClip-ABC123.mp4", snap.Label)
}

func TestApply_DestinationStripsDirectory(t *testing.T) {
	snap := &Snapshot{}

	changed := Apply("[download] Destination: /home/user/media/out/Talk Episode 4.webm", snap)

	assert.True(t, changed)
	assert.Equal(t, "Talk Episode 4.webm", snap.Label)
}

func TestApply_UnmatchedLineIgnored(t *testing.T) {
	snap := &Snapshot{CurrentItem: 1, TotalItems: 4, Percent: 33.3, Label: "keep.mp4"}

	changed := Apply("[info] Extracting cookies from browser", snap)

	assert.False(t, changed)
	assert.Equal(t, Snapshot{CurrentItem: 1, TotalItems: 4, Percent: 33.3, Label: "keep.mp4"}, *snap)
}

func TestApply_MalformedNeverPanics(t *testing.T) {
	lines := []string{
		"",
		"of",
		"999999999999999999999999999 of 999999999999999999999999999",
		"[download] %",
		"Destination:",
		"\x00\xff garbage",
	}

	snap := &Snapshot{}
	for _, line := range lines {
		Apply(line, snap)
	}
}

func TestApply_PercentRequiresPrefix(t *testing.T) {
	snap := &Snapshot{}

	changed := Apply("frame= 1234 fps= 30 q=28.0 size=  512kB time=00:00:41.00 bitrate= 102.3%", snap)

	assert.False(t, changed)
	assert.Zero(t, snap.Percent)
}

func TestApply_SequentialUpdatesAccumulate(t *testing.T) {
	snap := &Snapshot{}

	Apply("[download] Downloading item 2 of 8", snap)
	Apply("[download] Destination: /tmp/clip.m4a", snap)
	Apply("[download]  10.0%", snap)
	Apply("[download]  99.9%", snap)

	assert.Equal(t, 2, snap.CurrentItem)
	assert.Equal(t, 8, snap.TotalItems)
	assert.InDelta(t, 99.9, snap.Percent, 0.001)
	assert.Equal(t, "clip.m4a", snap.Label)
}
