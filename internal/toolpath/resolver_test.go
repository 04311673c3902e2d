// Copyright (c) fetchmux 2026. All rights reserved.
// SPDX-License-Identifier: MIT

package toolpath

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errNotOnPath = errors.New("executable file not found in $PATH")

func writeExecutable(t *testing.T, dir, name string) string {
	t.Helper()

	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte("#!/bin/sh\n"), 0o755))

	return p
}

func newTestResolver() *Resolver {
	r := New("", nil, "")
	r.lookPath = func(string) (string, error) { return "", errNotOnPath }
	r.queryPrefix = func(context.Context, string) (string, error) { return "", errors.New("no prefix") }

	return r
}

func TestResolve_BundledDirWins(t *testing.T) {
	dir := t.TempDir()
	want := writeExecutable(t, dir, "downloader")

	r := newTestResolver()
	r.BundledDir = dir
	r.WellKnown = WellKnownPaths{"downloader": {"/nonexistent/downloader"}}

	got, ok := r.Resolve(context.Background(), "downloader")
	require.True(t, ok)
	assert.Equal(t, want, got)
}

func TestResolve_WellKnownPath(t *testing.T) {
	dir := t.TempDir()
	want := writeExecutable(t, dir, "transcoder")

	r := newTestResolver()
	r.WellKnown = WellKnownPaths{"transcoder": {"/nonexistent/transcoder", want}}

	got, ok := r.Resolve(context.Background(), "transcoder")
	require.True(t, ok)
	assert.Equal(t, want, got)
}

func TestResolve_NonExecutableSkipped(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "downloader")
	require.NoError(t, os.WriteFile(p, []byte("data"), 0o644))

	r := newTestResolver()
	r.BundledDir = dir

	_, ok := r.Resolve(context.Background(), "downloader")
	assert.False(t, ok)
}

func TestResolve_PackageManagerPrefix(t *testing.T) {
	prefix := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(prefix, "bin"), 0o755))
	want := writeExecutable(t, filepath.Join(prefix, "bin"), "downloader")

	pmDir := t.TempDir()
	pm := writeExecutable(t, pmDir, "brew")

	r := newTestResolver()
	r.PackageManager = "brew"
	r.WellKnown = WellKnownPaths{"brew": {pm}}
	r.queryPrefix = func(_ context.Context, pmPath string) (string, error) {
		assert.Equal(t, pm, pmPath)
		return prefix, nil
	}

	got, ok := r.Resolve(context.Background(), "downloader")
	require.True(t, ok)
	assert.Equal(t, want, got)
}

func TestResolve_PackageManagerSelfNoRecursion(t *testing.T) {
	r := newTestResolver()
	r.PackageManager = "brew"
	r.queryPrefix = func(context.Context, string) (string, error) {
		t.Fatal("prefix tier must not be used to resolve the package manager itself")
		return "", nil
	}

	_, ok := r.Resolve(context.Background(), "brew")
	assert.False(t, ok)
}

func TestResolve_PathLookupLastResort(t *testing.T) {
	r := newTestResolver()
	r.lookPath = func(name string) (string, error) {
		assert.Equal(t, "downloader", name)
		return "/usr/bin/downloader", nil
	}

	got, ok := r.Resolve(context.Background(), "downloader")
	require.True(t, ok)
	assert.Equal(t, "/usr/bin/downloader", got)
}

func TestResolve_AllTiersMissReturnsNotFound(t *testing.T) {
	r := newTestResolver()
	r.BundledDir = filepath.Join(t.TempDir(), "missing")
	r.WellKnown = WellKnownPaths{"downloader": {"/nonexistent/a", "/nonexistent/b"}}
	r.PackageManager = "brew"

	got, ok := r.Resolve(context.Background(), "downloader")
	assert.False(t, ok)
	assert.Empty(t, got)
}
