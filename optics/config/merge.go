package config

import (
	"encoding/json"
	"fmt"
	"os"
)

// MergePlacements merges the marker feed file with inline placements. A marker placed inline
// takes precedence over the same marker in the file.
func (p *Placements) MergePlacements() error {
	if p.FromFile == "" {
		return nil
	}

	data, err := os.ReadFile(p.FromFile)
	if err != nil {
		return fmt.Errorf("reading placements file: %w", err)
	}

	var filePlacements []Placement
	if err := json.Unmarshal(data, &filePlacements); err != nil {
		return fmt.Errorf("parsing placements file: %w", err)
	}

	inline := make(map[int]bool, len(p.Inline))
	for _, pl := range p.Inline {
		inline[pl.ID] = true
	}
	for _, pl := range filePlacements {
		if !inline[pl.ID] {
			p.Inline = append(p.Inline, pl)
		}
	}

	return nil
}

// HasMarker reports whether id is mapped to a prism shape
func (p *Placements) HasMarker(id int) bool {
	for _, m := range p.TriangleMarkers {
		if m == id {
			return true
		}
	}
	for _, m := range p.SquareMarkers {
		if m == id {
			return true
		}
	}
	return false
}

// LoadAndMerge loads all external files and merges their contents
func (c *ExperimentConfig) LoadAndMerge() error {
	if err := c.Placements.MergePlacements(); err != nil {
		return fmt.Errorf("merging placements: %w", err)
	}
	return nil
}
