// Copyright (c) fetchmux 2026. All rights reserved.
// SPDX-License-Identifier: MIT

// Package subproc launches external tools, drains their combined output
// concurrently so pipes never stall the child, and reports exit status.
// Stream adds per-line callbacks and cooperative cancellation via a
// CancelHandle.
package subproc
