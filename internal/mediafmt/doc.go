// Copyright (c) fetchmux 2026. All rights reserved.
// SPDX-License-Identifier: MIT

// Package mediafmt maps logical target format names to transcoder flag
// profiles, with a builtin table and optional YAML overrides.
package mediafmt
