// Copyright (c) fetchmux 2026. All rights reserved.
// SPDX-License-Identifier: MIT

// Package main is the entry point for the fetchmux command-line application.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/fetchmux/fetchmux"
	"github.com/fetchmux/fetchmux/cmd"
	"github.com/fetchmux/fetchmux/internal/ctxlog"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	ctx = ctxlog.New(ctx, ctxlog.DefaultLogger)
	defer cancel()

	cmd.RootCmd.Version = fmt.Sprintf("%s (commit: %s)", fetchmux.Version, fetchmux.Commit)

	err := cmd.RootCmd.Run(ctx, os.Args)
	if err != nil {
		ctxlog.Logger(ctx).Error("command execution failed", "error", err)
		os.Exit(1)
	}
}
