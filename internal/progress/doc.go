// Copyright (c) fetchmux 2026. All rights reserved.
// SPDX-License-Identifier: MIT

// Package progress provides real-time progress reporting for batch runs.
// The orchestrator emits events while executing; presentation consumers
// subscribe through a Reporter without sharing mutable state with the core.
package progress
