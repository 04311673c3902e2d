// Copyright (c) fetchmux 2026. All rights reserved.
// SPDX-License-Identifier: MIT

// Package toolpath locates external tool executables, trying a bundled
// binaries directory, well-known install paths, the package manager prefix
// and PATH, in that order.
package toolpath
