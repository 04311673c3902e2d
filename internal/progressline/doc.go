// Copyright (c) fetchmux 2026. All rights reserved.
// SPDX-License-Identifier: MIT

// Package progressline turns single lines of external tool output into
// structured progress-field updates: multi-item position, percent complete
// and destination label.
package progressline
