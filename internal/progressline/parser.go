// Copyright (c) fetchmux 2026. All rights reserved.
// SPDX-License-Identifier: MIT

package progressline

import (
	"path/filepath"
	"regexp"
	"strconv"
)

// Snapshot is the mutable progress accumulator for one batch run. Fields are
// updated in place as output lines arrive; unmatched lines leave every field
// untouched.
type Snapshot struct {
	CurrentItem int     // 1-based position within a multi-item tool run
	TotalItems  int     // Total reported by the tool, 0 when unknown
	Percent     float64 // Percent complete of the current item; may exceed 100 on bad tool output
	Label       string  // Human-readable title or filename
}

// The three recognized line shapes. Tool output is free-form and versions
// drift, so these deliberately match loosely; anything else is ignored.
var (
	// "Downloading item 3 of 10" — totals of 1 are excluded below, they
	// are trivial single-item statements.
	reItemOf = regexp.MustCompile(`\b(\d+)\s+of\s+(\d+)\b`)
	// "[download]  45.2% of 10.57MiB at ..."
	rePercent = regexp.MustCompile(`^\[download\]\s+(\d+(?:\.\d+)?)%`)
	// "[download] Destination: /path/to/MyClip.mp4"
	reDestination = regexp.MustCompile(`Destination:\s+(.+?)\s*$`)
)

// Apply matches one output line against the recognized progress patterns and
// updates the snapshot in place. It reports whether any field changed.
// Malformed input never fails; at worst no field is updated.
func Apply(line string, snap *Snapshot) bool {
	changed := false

	if m := reItemOf.FindStringSubmatch(line); m != nil {
		current, errCur := strconv.Atoi(m[1])
		total, errTot := strconv.Atoi(m[2])

		if errCur == nil && errTot == nil && total > 1 {
			snap.CurrentItem = current
			snap.TotalItems = total
			changed = true
		}
	}

	if m := rePercent.FindStringSubmatch(line); m != nil {
		if pct, err := strconv.ParseFloat(m[1], 64); err == nil {
			snap.Percent = pct
			changed = true
		}
	}

	if m := reDestination.FindStringSubmatch(line); m != nil {
		snap.Label = filepath.Base(m[1])
		changed = true
	}

	return changed
}
