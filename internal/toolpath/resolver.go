// Copyright (c) fetchmux 2026. All rights reserved.
// SPDX-License-Identifier: MIT

package toolpath

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/fetchmux/fetchmux/internal/ctxlog"
)

// WellKnownPaths maps a logical tool name to absolute install locations to
// probe before falling back to the package manager and PATH. Supplied by the
// surrounding application, not hardcoded here.
type WellKnownPaths map[string][]string

// Resolver locates external tool executables by logical name.
// Strategies are tried in order: the bundled binaries directory, well-known
// install paths, the package manager's installation prefix, and finally a
// PATH lookup. A miss on every tier is a normal outcome, not an error.
type Resolver struct {
	// BundledDir is a directory of binaries shipped alongside the running
	// program. Empty disables the tier.
	BundledDir string
	// WellKnown holds static per-tool install path candidates.
	WellKnown WellKnownPaths
	// PackageManager is the logical name of the package manager to query
	// for an installation prefix, e.g. "brew". Empty disables the tier.
	PackageManager string

	lookPath    func(string) (string, error)
	stat        func(string) (os.FileInfo, error)
	queryPrefix func(ctx context.Context, pmPath string) (string, error)
}

// New builds a resolver using real OS dependencies.
func New(bundledDir string, wellKnown WellKnownPaths, packageManager string) *Resolver {
	return &Resolver{
		BundledDir:     bundledDir,
		WellKnown:      wellKnown,
		PackageManager: packageManager,
		lookPath:       exec.LookPath,
		stat:           os.Stat,
		queryPrefix:    brewPrefix,
	}
}

// Resolve returns the absolute path of the executable for the given logical
// name, and whether one was found. It has no side effects.
func (r *Resolver) Resolve(ctx context.Context, name string) (string, bool) {
	logger := ctxlog.Logger(ctx).With("tool", name)

	if r.BundledDir != "" {
		p := filepath.Join(r.BundledDir, name)
		if r.isExecutable(p) {
			logger.Debug("resolved from bundled directory", "path", p)
			return p, true
		}
	}

	for _, p := range r.WellKnown[name] {
		if r.isExecutable(p) {
			logger.Debug("resolved from well-known path", "path", p)
			return p, true
		}
	}

	if p, ok := r.resolveViaPackageManager(ctx, name); ok {
		logger.Debug("resolved from package manager prefix", "path", p)
		return p, true
	}

	if p, err := r.lookPath(name); err == nil {
		logger.Debug("resolved from PATH", "path", p)
		return p, true
	}

	logger.Debug("tool not found")

	return "", false
}

// resolveViaPackageManager asks the package manager for its installation
// prefix and probes <prefix>/bin/<name>. The package manager executable is
// itself resolved with the earlier tiers plus PATH; the prefix tier is
// skipped for it to avoid recursing.
func (r *Resolver) resolveViaPackageManager(ctx context.Context, name string) (string, bool) {
	if r.PackageManager == "" || name == r.PackageManager {
		return "", false
	}

	pm, ok := r.resolveWithoutPrefixTier(r.PackageManager)
	if !ok {
		return "", false
	}

	prefix, err := r.queryPrefix(ctx, pm)
	if err != nil || prefix == "" {
		ctxlog.Debug(ctx, "package manager prefix query failed", "packageManager", pm, "error", err)
		return "", false
	}

	p := filepath.Join(prefix, "bin", name)
	if r.isExecutable(p) {
		return p, true
	}

	return "", false
}

func (r *Resolver) resolveWithoutPrefixTier(name string) (string, bool) {
	if r.BundledDir != "" {
		p := filepath.Join(r.BundledDir, name)
		if r.isExecutable(p) {
			return p, true
		}
	}

	for _, p := range r.WellKnown[name] {
		if r.isExecutable(p) {
			return p, true
		}
	}

	if p, err := r.lookPath(name); err == nil {
		return p, true
	}

	return "", false
}

func (r *Resolver) isExecutable(path string) bool {
	info, err := r.stat(path)
	if err != nil || info.IsDir() {
		return false
	}

	return info.Mode().Perm()&0o111 != 0
}

// brewPrefix runs the package manager with --prefix and returns the
// trimmed output.
func brewPrefix(ctx context.Context, pmPath string) (string, error) {
	out, err := exec.CommandContext(ctx, pmPath, "--prefix").Output()
	if err != nil {
		return "", err
	}

	return strings.TrimSpace(string(out)), nil
}

// BundledDirNextToExecutable returns the conventional bundled binaries
// directory: a "bin" directory next to the running executable. Empty string
// if the executable path cannot be determined.
func BundledDirNextToExecutable() string {
	exe, err := os.Executable()
	if err != nil {
		return ""
	}

	return filepath.Join(filepath.Dir(exe), "bin")
}
