// Copyright (c) fetchmux 2026. All rights reserved.
// SPDX-License-Identifier: MIT

package download

import (
	"context"
	"errors"
	"os"
	"path/filepath"

	"github.com/goccy/go-yaml"
	"github.com/hashicorp/go-getter/v2"

	"github.com/fetchmux/fetchmux/internal/batch"
)

var (
	// ErrGetManifest is returned when the manifest cannot be fetched.
	ErrGetManifest = errors.New("failed to get manifest")
	// ErrParseManifest is returned when the manifest is not valid YAML.
	ErrParseManifest = errors.New("failed to parse manifest")
	// ErrEmptyManifest is returned when the manifest lists no items.
	ErrEmptyManifest = errors.New("manifest lists no items")
)

type manifestFile struct {
	Items []manifestItem `yaml:"items"`
}

type manifestItem struct {
	Source    string `yaml:"source"`
	OutputDir string `yaml:"output_dir"`
}

// fetchManifest retrieves a YAML manifest with go-getter and converts it to
// batch items. Items without their own output_dir inherit defaultDir.
func fetchManifest(ctx context.Context, url, defaultDir string) ([]batch.Item, error) {
	data, err := getURL(ctx, url)
	if err != nil {
		return nil, err
	}

	var file manifestFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, errors.Join(ErrParseManifest, err)
	}

	if len(file.Items) == 0 {
		return nil, ErrEmptyManifest
	}

	items := make([]batch.Item, 0, len(file.Items))

	for _, mi := range file.Items {
		dir := mi.OutputDir
		if dir == "" {
			dir = defaultDir
		}

		items = append(items, batch.Item{
			Source:    mi.Source,
			OutputDir: dir,
		})
	}

	return items, nil
}

// getURL retrieves the content from the specified URL using Hashicorp's
// go-getter. It removes the temporary file after reading its content.
func getURL(ctx context.Context, url string) ([]byte, error) {
	if url == "" {
		return nil, ErrGetManifest
	}

	tmpDir, err := os.MkdirTemp("", "fetchmux-getter-*")
	if err != nil {
		return nil, errors.Join(ErrGetManifest, err)
	}

	defer os.RemoveAll(tmpDir) //nolint:errcheck

	wd, err := os.Getwd()
	if err != nil {
		return nil, errors.Join(ErrGetManifest, err)
	}

	client := getter.Client{
		DisableSymlinks: true,
	}

	dst := filepath.Join(tmpDir, "manifest.yaml")

	req := &getter.Request{
		Src:     url,
		Dst:     dst,
		Pwd:     wd,
		GetMode: getter.ModeFile,
	}

	if _, err := client.Get(ctx, req); err != nil {
		return nil, errors.Join(ErrGetManifest, err)
	}

	data, err := os.ReadFile(dst)
	if err != nil {
		return nil, errors.Join(ErrGetManifest, err)
	}

	return data, nil
}
