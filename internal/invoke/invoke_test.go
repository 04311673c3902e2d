// Copyright (c) fetchmux 2026. All rights reserved.
// SPDX-License-Identifier: MIT

package invoke

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fetchmux/fetchmux/internal/mediafmt"
)

func TestDownload_DefaultFlags(t *testing.T) {
	inv := Download("/usr/local/bin/yt-dlp", DownloadSpec{
		URL:       "https://example.com/watch?v=abc",
		OutputDir: "/tmp/out",
	})

	assert.Equal(t, "/usr/local/bin/yt-dlp", inv.Path)
	assert.Equal(t, []string{
		"--restrict-filenames",
		"--newline",
		"-o", "%(title)s.%(ext)s",
		"-P", "/tmp/out",
		"https://example.com/watch?v=abc",
	}, inv.Args)
}

func TestDownload_OptionalFlags(t *testing.T) {
	inv := Download("/usr/local/bin/yt-dlp", DownloadSpec{
		URL:            "https://example.com/watch?v=abc",
		OutputDir:      "/tmp/out",
		OutputTemplate: "%(playlist_index)s-%(title)s.%(ext)s",
		FormatSelector: "bv*+ba/b",
		TranscoderPath: "/opt/ffmpeg/bin/ffmpeg",
	})

	assert.Contains(t, inv.Args, "-f")
	assert.Contains(t, inv.Args, "bv*+ba/b")
	assert.Contains(t, inv.Args, "--ffmpeg-location")
	assert.Contains(t, inv.Args, "/opt/ffmpeg/bin/ffmpeg")
	assert.Contains(t, inv.Args, "%(playlist_index)s-%(title)s.%(ext)s")
	assert.Equal(t, "https://example.com/watch?v=abc", inv.Args[len(inv.Args)-1], "URL is the final argument")
}

func TestTranscode_ArgOrder(t *testing.T) {
	profile, ok := mediafmt.Builtin().Lookup("mp3")
	require.True(t, ok)

	inv := Transcode("/usr/bin/ffmpeg", TranscodeSpec{
		Input:     "/media/in/talk.webm",
		OutputDir: "/media/out",
		Profile:   profile,
	})

	assert.Equal(t, "/usr/bin/ffmpeg", inv.Path)
	require.GreaterOrEqual(t, len(inv.Args), 4)
	assert.Equal(t, []string{"-i", "/media/in/talk.webm", "-y"}, inv.Args[:3])
	assert.Equal(t, "/media/out/talk.mp3", inv.Args[len(inv.Args)-1], "output path is the final argument")
	assert.Subset(t, inv.Args, profile.Args)
}

func TestOutputPath_SameExtensionDisambiguated(t *testing.T) {
	profile := mediafmt.Profile{Name: "mp4-720p", Extension: ".mp4"}

	got := OutputPath("/media/in/clip.mp4", "/media/out", profile)

	assert.Equal(t, "/media/out/clip.mp4-720p.mp4", got)
}
