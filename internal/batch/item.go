// Copyright (c) fetchmux 2026. All rights reserved.
// SPDX-License-Identifier: MIT

package batch

// Item is one (source, target format, output directory) triple. Ordering
// within a batch is significant: items are processed in strict declaration
// order, which keeps the aggregate fraction well-defined.
type Item struct {
	Source    string // Link or input file path
	Format    string // Logical target format, empty for plain downloads
	OutputDir string // Directory the produced file lands in
}

// ExpandMatrix flattens (inputs x target formats) into an ordered item list:
// the first input across all its formats before the next input.
func ExpandMatrix(sources, formats []string, outputDir string) []Item {
	items := make([]Item, 0, len(sources)*len(formats))

	for _, src := range sources {
		for _, format := range formats {
			items = append(items, Item{
				Source:    src,
				Format:    format,
				OutputDir: outputDir,
			})
		}
	}

	return items
}
