// Copyright (c) fetchmux 2026. All rights reserved.
// SPDX-License-Identifier: MIT

package invoke

import (
	"path/filepath"
	"strings"

	"github.com/fetchmux/fetchmux/internal/mediafmt"
	"github.com/fetchmux/fetchmux/internal/subproc"
)

// TranscodeSpec describes one transcoder launch.
type TranscodeSpec struct {
	Input     string           // Input media file
	OutputDir string           // Directory for the converted file
	Profile   mediafmt.Profile // Target format profile
}

// Transcode builds the transcoder invocation: input flag, overwrite without
// prompting, the profile's codec and quality flags, and the output path as
// the final positional argument.
func Transcode(toolPath string, spec TranscodeSpec) subproc.Invocation {
	args := []string{
		"-i", spec.Input,
		"-y",
	}
	args = append(args, spec.Profile.Args...)
	args = append(args, OutputPath(spec.Input, spec.OutputDir, spec.Profile))

	return subproc.Invocation{
		Path: toolPath,
		Args: args,
	}
}

// OutputPath derives the converted file's path: the input's base name with
// the profile's extension, inside the output directory. When the extensions
// collide the profile name is appended to avoid overwriting the input.
func OutputPath(input, outputDir string, profile mediafmt.Profile) string {
	base := filepath.Base(input)
	stem := strings.TrimSuffix(base, filepath.Ext(base))

	if strings.EqualFold(filepath.Ext(base), profile.Extension) {
		stem += "." + profile.Name
	}

	return filepath.Join(outputDir, stem+profile.Extension)
}
