// Copyright (c) fetchmux 2026. All rights reserved.
// SPDX-License-Identifier: MIT

// Package invoke builds command lines for the external downloader and
// transcoder tools.
package invoke
