// Copyright (c) fetchmux 2026. All rights reserved.
// SPDX-License-Identifier: MIT

// Package batch orchestrates a sequence of download or conversion items
// through the subprocess runner, one at a time, merging per-item progress
// into a single aggregate fraction and tolerating per-item failures.
package batch
