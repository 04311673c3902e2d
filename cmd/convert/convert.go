// Copyright (c) fetchmux 2026. All rights reserved.
// SPDX-License-Identifier: MIT

// Package convert implements the convert command, which transcodes local
// media files into one or more target formats as a sequential batch.
package convert

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/afero"
	"github.com/urfave/cli/v3"

	"github.com/fetchmux/fetchmux/cmd/hostcfg"
	"github.com/fetchmux/fetchmux/internal/batch"
	"github.com/fetchmux/fetchmux/internal/ctxlog"
	"github.com/fetchmux/fetchmux/internal/invoke"
	"github.com/fetchmux/fetchmux/internal/mediafmt"
	"github.com/fetchmux/fetchmux/internal/subproc"
)

const (
	inputFlag       = "input"
	toFlag          = "to"
	dirFlag         = "dir"
	formatsFileFlag = "formats-file"
)

// ConvertCmd batch-converts local media files via the external transcoder tool.
var ConvertCmd = &cli.Command{
	Name: "convert",
	Description: `Convert one or more local media files into one or more target formats.
The (input x format) matrix is flattened into a sequential batch: the first
input across all its formats, then the next input. A failing conversion does
not abort the batch.

Run "fetchmux formats" to list the available target formats.`,
	Usage: "fetchmux convert -i <file> [-i <file> ...] -t <format> [-t <format> ...] [-d <dir>]",
	Flags: []cli.Flag{
		&cli.StringSliceFlag{
			Name:      inputFlag,
			Aliases:   []string{"i"},
			Usage:     "Input media file. Specify multiple times for a batch.",
			TakesFile: true,
			OnlyOnce:  false,
		},
		&cli.StringSliceFlag{
			Name:     toFlag,
			Aliases:  []string{"t"},
			Usage:    "Target format name. Specify multiple times to fan out.",
			OnlyOnce: false,
		},
		&cli.StringFlag{
			Name:     dirFlag,
			Aliases:  []string{"d"},
			Usage:    "Destination directory for converted files",
			Value:    ".",
			OnlyOnce: true,
		},
		&cli.StringFlag{
			Name:      formatsFileFlag,
			Usage:     "YAML file with extra format profiles, merged over the builtin set",
			TakesFile: true,
			OnlyOnce:  true,
		},
	},
	Action: actionFunc,
}

func actionFunc(ctx context.Context, cmd *cli.Command) error {
	logger := ctxlog.Logger(ctx).With("command", cmd.Name)

	inputs := cmd.StringSlice(inputFlag)
	if len(inputs) == 0 {
		logger.Error("no input files given; use --input")
		return cli.Exit("no input files given; use --input", 1)
	}

	targets := cmd.StringSlice(toFlag)
	if len(targets) == 0 {
		logger.Error("no target formats given; use --to")
		return cli.Exit("no target formats given; use --to", 1)
	}

	table, err := loadTable(cmd.String(formatsFileFlag))
	if err != nil {
		logger.Error("failed to load formats file", "error", err)
		return cli.Exit(err.Error(), 1)
	}

	// Reject unknown formats before any process launches so a typo in the
	// last format cannot waste a long batch.
	profiles := make(map[string]mediafmt.Profile, len(targets))

	for _, name := range targets {
		p, ok := table.Lookup(name)
		if !ok {
			msg := fmt.Sprintf("unknown format %q; known formats: %s", name, strings.Join(table.Names(), ", "))
			logger.Error("unknown format", "format", name)

			return cli.Exit(msg, 1)
		}

		profiles[name] = p
	}

	items := batch.ExpandMatrix(inputs, targets, cmd.String(dirFlag))

	cfg := batch.Config{
		ToolName: hostcfg.TranscoderName,
		Resolver: hostcfg.NewResolver(),
		Build: func(toolPath string, item batch.Item) subproc.Invocation {
			return invoke.Transcode(toolPath, invoke.TranscodeSpec{
				Input:     item.Source,
				OutputDir: item.OutputDir,
				Profile:   profiles[item.Format],
			})
		},
	}

	status, err := hostcfg.RunWithConsole(ctx, cfg, items, cmd.Writer)
	if err != nil {
		logger.Warn("batch finished with failures", "status", status.String(), "error", err)
	}

	if status != batch.StatusCompleted {
		return cli.Exit("", 1)
	}

	return nil
}

func loadTable(path string) (*mediafmt.Table, error) {
	if path == "" {
		return mediafmt.Builtin(), nil
	}

	return mediafmt.Load(afero.NewOsFs(), path)
}
