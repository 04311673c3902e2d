// Copyright (c) fetchmux 2026. All rights reserved.
// SPDX-License-Identifier: MIT

package mediafmt

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuiltin_CommonFormatsPresent(t *testing.T) {
	table := Builtin()

	for _, name := range []string{"mp3", "aac", "flac", "wav", "mp4", "webm"} {
		p, ok := table.Lookup(name)
		require.True(t, ok, "builtin format %s missing", name)
		assert.NotEmpty(t, p.Extension)
		assert.NotEmpty(t, p.Args)
	}
}

func TestLookup_UnknownFormat(t *testing.T) {
	_, ok := Builtin().Lookup("divx")
	assert.False(t, ok)
}

func TestNames_Sorted(t *testing.T) {
	names := Builtin().Names()
	require.NotEmpty(t, names)
	assert.IsIncreasing(t, names)
}

func TestLoad_MergesOverBuiltin(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "formats.yaml", []byte(`
formats:
  - name: ringtone
    extension: .m4a
    args: ["-vn", "-codec:a", "aac", "-t", "30"]
  - name: mp3
    extension: .mp3
    args: ["-vn", "-codec:a", "libmp3lame", "-b:a", "320k"]
`), 0o644))

	table, err := Load(fs, "formats.yaml")
	require.NoError(t, err)

	ringtone, ok := table.Lookup("ringtone")
	require.True(t, ok)
	assert.Equal(t, ".m4a", ringtone.Extension)

	mp3, ok := table.Lookup("mp3")
	require.True(t, ok)
	assert.Contains(t, mp3.Args, "320k", "file entry replaces the builtin profile")

	_, ok = table.Lookup("flac")
	assert.True(t, ok, "untouched builtin profiles survive the merge")
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(afero.NewMemMapFs(), "nope.yaml")
	assert.ErrorIs(t, err, ErrReadFormatsFile)
}

func TestLoad_BadYAML(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "formats.yaml", []byte("formats: ["), 0o644))

	_, err := Load(fs, "formats.yaml")
	assert.ErrorIs(t, err, ErrParseFormatsFile)
}

func TestLoad_ProfileMissingFields(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "formats.yaml", []byte(`
formats:
  - name: broken
`), 0o644))

	_, err := Load(fs, "formats.yaml")
	assert.ErrorIs(t, err, ErrInvalidProfile)
}
