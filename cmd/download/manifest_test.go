// Copyright (c) fetchmux 2026. All rights reserved.
// SPDX-License-Identifier: MIT

package download

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeManifest(t *testing.T, content string) string {
	t.Helper()

	p := filepath.Join(t.TempDir(), "manifest.yaml")
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))

	return p
}

func TestFetchManifest_LocalFile(t *testing.T) {
	p := writeManifest(t, `
items:
  - source: https://example.com/watch?v=one
    output_dir: /media/one
  - source: https://example.com/watch?v=two
`)

	items, err := fetchManifest(context.Background(), p, "/media/default")
	require.NoError(t, err)
	require.Len(t, items, 2)

	assert.Equal(t, "https://example.com/watch?v=one", items[0].Source)
	assert.Equal(t, "/media/one", items[0].OutputDir)
	assert.Equal(t, "/media/default", items[1].OutputDir, "missing output_dir inherits the default")
}

func TestFetchManifest_EmptyManifest(t *testing.T) {
	p := writeManifest(t, "items: []\n")

	_, err := fetchManifest(context.Background(), p, ".")
	assert.ErrorIs(t, err, ErrEmptyManifest)
}

func TestFetchManifest_BadYAML(t *testing.T) {
	p := writeManifest(t, "items: [")

	_, err := fetchManifest(context.Background(), p, ".")
	assert.ErrorIs(t, err, ErrParseManifest)
}

func TestFetchManifest_MissingFile(t *testing.T) {
	_, err := fetchManifest(context.Background(), filepath.Join(t.TempDir(), "nope.yaml"), ".")
	assert.ErrorIs(t, err, ErrGetManifest)
}

func TestGetURL_EmptyURL(t *testing.T) {
	_, err := getURL(context.Background(), "")
	assert.ErrorIs(t, err, ErrGetManifest)
}
