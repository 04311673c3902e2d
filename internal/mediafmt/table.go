// Copyright (c) fetchmux 2026. All rights reserved.
// SPDX-License-Identifier: MIT

package mediafmt

import (
	"errors"
	"fmt"
	"sort"

	"github.com/goccy/go-yaml"
	"github.com/spf13/afero"
)

var (
	// ErrReadFormatsFile is returned when the formats file cannot be read.
	ErrReadFormatsFile = errors.New("failed to read formats file")
	// ErrParseFormatsFile is returned when the formats file is not valid YAML.
	ErrParseFormatsFile = errors.New("failed to parse formats file")
	// ErrInvalidProfile is returned when a profile entry is missing required fields.
	ErrInvalidProfile = errors.New("invalid format profile")
)

// Profile maps a logical target format to the transcoder flags that produce
// it. Args sit between the input flag and the output path in the built
// command line.
type Profile struct {
	Name      string   `yaml:"name"`
	Extension string   `yaml:"extension"`
	Args      []string `yaml:"args"`
}

// Table holds the known format profiles, keyed by logical name.
type Table struct {
	profiles map[string]Profile
}

// Builtin returns the default format table covering the common audio and
// video targets.
func Builtin() *Table {
	t := &Table{profiles: make(map[string]Profile)}

	for _, p := range []Profile{
		{Name: "mp3", Extension: ".mp3", Args: []string{"-vn", "-codec:a", "libmp3lame", "-qscale:a", "2"}},
		{Name: "aac", Extension: ".m4a", Args: []string{"-vn", "-codec:a", "aac", "-b:a", "192k"}},
		{Name: "flac", Extension: ".flac", Args: []string{"-vn", "-codec:a", "flac"}},
		{Name: "wav", Extension: ".wav", Args: []string{"-vn", "-codec:a", "pcm_s16le"}},
		{Name: "opus", Extension: ".opus", Args: []string{"-vn", "-codec:a", "libopus", "-b:a", "128k"}},
		{Name: "mp4", Extension: ".mp4", Args: []string{"-codec:v", "libx264", "-crf", "23", "-preset", "medium", "-codec:a", "aac"}},
		{Name: "webm", Extension: ".webm", Args: []string{"-codec:v", "libvpx-vp9", "-crf", "32", "-b:v", "0", "-codec:a", "libopus"}},
		{Name: "mp4-720p", Extension: ".mp4", Args: []string{"-codec:v", "libx264", "-crf", "23", "-vf", "scale=-2:720", "-codec:a", "aac"}},
	} {
		t.profiles[p.Name] = p
	}

	return t
}

type formatsFile struct {
	Formats []Profile `yaml:"formats"`
}

// Load reads a YAML formats file and merges its profiles over the builtin
// table; entries with the same name replace the builtin ones.
//
// File layout:
//
//	formats:
//	  - name: ringtone
//	    extension: .m4a
//	    args: ["-vn", "-codec:a", "aac", "-t", "30"]
func Load(fs afero.Fs, path string) (*Table, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, errors.Join(ErrReadFormatsFile, err)
	}

	var file formatsFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, errors.Join(ErrParseFormatsFile, err)
	}

	t := Builtin()

	for _, p := range file.Formats {
		if p.Name == "" || p.Extension == "" {
			return nil, fmt.Errorf("%w: name and extension are required", ErrInvalidProfile)
		}

		t.profiles[p.Name] = p
	}

	return t, nil
}

// Lookup returns the profile for the logical format name.
func (t *Table) Lookup(name string) (Profile, bool) {
	p, ok := t.profiles[name]
	return p, ok
}

// Names returns the known format names in sorted order.
func (t *Table) Names() []string {
	names := make([]string, 0, len(t.profiles))
	for name := range t.profiles {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}
