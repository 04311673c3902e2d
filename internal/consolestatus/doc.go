// Copyright (c) fetchmux 2026. All rights reserved.
// SPDX-License-Identifier: MIT

// Package consolestatus renders batch progress events as a repainted
// terminal status line. It is a presentation consumer of the progress
// stream; the core never depends on it.
package consolestatus
