// Copyright (c) fetchmux 2026. All rights reserved.
// SPDX-License-Identifier: MIT

// Package ctxlog provides a context-based logger using the slog package for
// structured logging. The log level is configured from an environment
// variable derived from the executable name, e.g. FETCHMUX_LOG_LEVEL.
package ctxlog
