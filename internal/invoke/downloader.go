// Copyright (c) fetchmux 2026. All rights reserved.
// SPDX-License-Identifier: MIT

package invoke

import (
	"github.com/fetchmux/fetchmux/internal/subproc"
)

// DefaultOutputTemplate is the downloader's output path template; the tool
// expands the placeholders per downloaded item.
const DefaultOutputTemplate = "%(title)s.%(ext)s"

// DownloadSpec describes one downloader launch.
type DownloadSpec struct {
	URL            string // Source link, single video or playlist
	OutputDir      string // Directory the tool writes into
	OutputTemplate string // Output filename template; DefaultOutputTemplate when empty
	FormatSelector string // Format-selector expression, empty for tool default
	TranscoderPath string // Co-located transcoder binary for muxing, empty to omit
}

// Download builds the downloader invocation: safe filenames,
// newline-delimited progress output, an output template, an optional format
// selector and an optional transcoder location, with the source URL last.
func Download(toolPath string, spec DownloadSpec) subproc.Invocation {
	template := spec.OutputTemplate
	if template == "" {
		template = DefaultOutputTemplate
	}

	args := []string{
		"--restrict-filenames",
		"--newline",
		"-o", template,
	}

	if spec.OutputDir != "" {
		args = append(args, "-P", spec.OutputDir)
	}

	if spec.FormatSelector != "" {
		args = append(args, "-f", spec.FormatSelector)
	}

	if spec.TranscoderPath != "" {
		args = append(args, "--ffmpeg-location", spec.TranscoderPath)
	}

	args = append(args, spec.URL)

	return subproc.Invocation{
		Path: toolPath,
		Args: args,
	}
}
