// Copyright (c) fetchmux 2026. All rights reserved.
// SPDX-License-Identifier: MIT

package download

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/fetchmux/fetchmux/cmd/hostcfg"
	"github.com/fetchmux/fetchmux/internal/batch"
	"github.com/fetchmux/fetchmux/internal/ctxlog"
	"github.com/fetchmux/fetchmux/internal/invoke"
	"github.com/fetchmux/fetchmux/internal/subproc"
)

const (
	urlFlag      = "url"
	dirFlag      = "dir"
	manifestFlag = "manifest"
	selectorFlag = "format-selector"
	templateFlag = "template"

	cliExitStr = ""
)

// DownloadCmd batch-downloads media links via the external downloader tool.
var DownloadCmd = &cli.Command{
	Name: "download",
	Description: `Download one or more media links, sequentially, with live progress.
Links are processed in the order given; a playlist link reports its own
item position and nests into the aggregate fraction. A failing link does
not abort the batch.

A YAML manifest may be supplied instead of (or in addition to) URL flags.
Manifest URLs use Hashicorp's go-getter syntax, allowing local paths and
remote sources. Layout:

  items:
    - source: https://example.com/watch?v=abc
      output_dir: ./media
`,
	Usage: "fetchmux download -u <link> [-u <link> ...] [-d <dir>]",
	Flags: []cli.Flag{
		&cli.StringSliceFlag{
			Name:     urlFlag,
			Aliases:  []string{"u"},
			Usage:    "Media link to download. Specify multiple times for a batch.",
			OnlyOnce: false,
		},
		&cli.StringFlag{
			Name:     dirFlag,
			Aliases:  []string{"d"},
			Usage:    "Destination directory for downloaded files",
			Value:    ".",
			OnlyOnce: true,
		},
		&cli.StringFlag{
			Name:      manifestFlag,
			Aliases:   []string{"m"},
			Usage:     "URL of a YAML manifest listing batch items (go-getter syntax)",
			TakesFile: true,
			OnlyOnce:  true,
		},
		&cli.StringFlag{
			Name:     selectorFlag,
			Aliases:  []string{"f"},
			Usage:    "Format-selector expression passed to the downloader",
			OnlyOnce: true,
		},
		&cli.StringFlag{
			Name:     templateFlag,
			Usage:    "Output filename template passed to the downloader",
			OnlyOnce: true,
		},
	},
	Action: actionFunc,
}

func actionFunc(ctx context.Context, cmd *cli.Command) error {
	logger := ctxlog.Logger(ctx).With("command", cmd.Name)

	items := make([]batch.Item, 0, len(cmd.StringSlice(urlFlag)))
	for _, u := range cmd.StringSlice(urlFlag) {
		items = append(items, batch.Item{
			Source:    u,
			OutputDir: cmd.String(dirFlag),
		})
	}

	if manifestURL := cmd.String(manifestFlag); manifestURL != "" {
		manifestItems, err := fetchManifest(ctx, manifestURL, cmd.String(dirFlag))
		if err != nil {
			logger.Error("failed to load manifest", "url", manifestURL, "error", err)
			return cli.Exit(err.Error(), 1)
		}

		items = append(items, manifestItems...)
	}

	if len(items) == 0 {
		logger.Error("no links given; use --url or --manifest")
		return cli.Exit("no links given; use --url or --manifest", 1)
	}

	resolver := hostcfg.NewResolver()

	// The downloader can hand muxing off to a co-located transcoder; a miss
	// here is fine, the tool falls back to its own default.
	transcoderPath, _ := resolver.Resolve(ctx, hostcfg.TranscoderName)

	cfg := batch.Config{
		ToolName: hostcfg.DownloaderName,
		Resolver: resolver,
		Build: func(toolPath string, item batch.Item) subproc.Invocation {
			return invoke.Download(toolPath, invoke.DownloadSpec{
				URL:            item.Source,
				OutputDir:      item.OutputDir,
				OutputTemplate: cmd.String(templateFlag),
				FormatSelector: cmd.String(selectorFlag),
				TranscoderPath: transcoderPath,
			})
		},
	}

	status, err := hostcfg.RunWithConsole(ctx, cfg, items, cmd.Writer)
	if err != nil {
		logger.Warn("batch finished with failures", "status", status.String(), "error", err)
	}

	if status != batch.StatusCompleted {
		return cli.Exit(cliExitStr, 1)
	}

	return nil
}
