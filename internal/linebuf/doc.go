// Copyright (c) fetchmux 2026. All rights reserved.
// SPDX-License-Identifier: MIT

// Package linebuf provides a line-splitting writer used to turn the byte
// stream from a subprocess pipe into ordered per-line callbacks while
// capturing the complete output.
package linebuf
