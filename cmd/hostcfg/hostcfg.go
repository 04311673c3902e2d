// Copyright (c) fetchmux 2026. All rights reserved.
// SPDX-License-Identifier: MIT

// Package hostcfg supplies the host-specific configuration the core is
// deliberately not hardcoded with: logical tool names, well-known install
// paths, and the wiring between a batch run, the console status display and
// the signal watcher.
package hostcfg

import (
	"context"
	"io"

	"github.com/fetchmux/fetchmux/internal/batch"
	"github.com/fetchmux/fetchmux/internal/consolestatus"
	"github.com/fetchmux/fetchmux/internal/progress"
	"github.com/fetchmux/fetchmux/internal/signalnotify"
	"github.com/fetchmux/fetchmux/internal/toolpath"
)

const (
	// DownloaderName is the logical name of the media downloader tool.
	DownloaderName = "yt-dlp"
	// TranscoderName is the logical name of the media transcoder tool.
	TranscoderName = "ffmpeg"
	// PackageManagerName is queried for an installation prefix when the
	// other resolver tiers miss.
	PackageManagerName = "brew"

	eventBufferSize = 64
)

// NewResolver builds the tool resolver with this application's bundled
// directory and well-known install locations.
func NewResolver() *toolpath.Resolver {
	return toolpath.New(
		toolpath.BundledDirNextToExecutable(),
		toolpath.WellKnownPaths{
			DownloaderName: {
				"/opt/homebrew/bin/yt-dlp",
				"/usr/local/bin/yt-dlp",
				"/usr/bin/yt-dlp",
			},
			TranscoderName: {
				"/opt/homebrew/bin/ffmpeg",
				"/usr/local/bin/ffmpeg",
				"/usr/bin/ffmpeg",
			},
			PackageManagerName: {
				"/opt/homebrew/bin/brew",
				"/usr/local/bin/brew",
			},
		},
		PackageManagerName,
	)
}

// RunWithConsole executes a batch run wired to a console status line and the
// interrupt watcher: the first Ctrl-C cancels the batch cooperatively, the
// second cancels the context and hard-kills the in-flight process.
func RunWithConsole(ctx context.Context, cfg batch.Config, items []batch.Item, w io.Writer) (batch.Status, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	reporter := progress.NewChannelReporter(ctx, eventBufferSize)
	defer reporter.Close()

	reporter.Listen(consolestatus.New(w))

	cfg.Reporter = reporter

	run, err := batch.New(cfg, items)
	if err != nil {
		return batch.StatusIdle, err
	}

	sigCh := signalnotify.New(ctx)

	go signalnotify.Watch(ctx, sigCh, run.Cancel, cancel)

	return run.Execute(ctx)
}
