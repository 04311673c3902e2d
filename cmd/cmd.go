// Copyright (c) fetchmux 2026. All rights reserved.
// SPDX-License-Identifier: MIT

// Package cmd contains the command-line interface (CLI) for the module.
package cmd

import (
	"os"

	"github.com/urfave/cli/v3"

	"github.com/fetchmux/fetchmux/cmd/convert"
	"github.com/fetchmux/fetchmux/cmd/download"
	"github.com/fetchmux/fetchmux/cmd/formats"
)

// RootCmd is the root command for the CLI.
var RootCmd = &cli.Command{
	Commands: []*cli.Command{
		download.DownloadCmd,
		convert.ConvertCmd,
		formats.FormatsCmd,
	},
	Writer:    os.Stdout,
	ErrWriter: os.Stderr,
	Name:      "fetchmux",
	Description: `Fetchmux batch-downloads and batch-converts media by driving the external
downloader and transcoder tools, streaming their output into a live progress
display. Downloads and conversions run as sequential batches that tolerate
per-item failures and can be cancelled mid-run with Ctrl-C.`,
	Usage:                 "fetchmux download -u https://example.com/watch?v=abc",
	Copyright:             "Copyright (c) fetchmux 2026. All rights reserved.",
	EnableShellCompletion: true,
}
