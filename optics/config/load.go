package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadOptions configures the behavior of config loading
type LoadOptions struct {
	ValidateImmediately bool
	ResolvePaths        bool
	MergeFiles          bool
}

// Default is the installation setup: six glass prisms on a 1200x720 canvas lit by three
// rightward sources. Fields missing from a config file keep these values.
func Default() *ExperimentConfig {
	return &ExperimentConfig{
		Canvas: Canvas{Width: 1200, Height: 720},
		Optics: Optics{
			AmbientIndex: 1.0,
			PrismIndex:   1.5,
			MaxBounces:   80,
			MaxBranches:  128,
			ExitOverscan: 1,
			EscapeMargin: 500,
		},
		Generator: Generator{
			Squares:      3,
			Triangles:    3,
			SquareSize:   120,
			TriangleSize: 130,
			Margin:       100,
			MaxAttempts:  8000,
		},
		Mesh:     Mesh{Scale: 1},
		Exposure: Exposure{CellSize: 40},
		Render: Render{
			Image:       "render.png",
			Annotations: "annotations.json",
			Plot:        "paths.png",
			Width:       1200,
			Height:      720,
			LineWidth:   3,
		},
	}
}

// LoadFromFile loads an ExperimentConfig from a YAML file
func LoadFromFile(path string, opts LoadOptions) (*ExperimentConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	config := Default()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	if opts.ResolvePaths {
		baseDir := filepath.Dir(path)
		resolver := NewPathResolver(baseDir)
		if err := config.ResolvePaths(resolver); err != nil {
			return nil, fmt.Errorf("resolving paths: %w", err)
		}
	}

	if opts.MergeFiles {
		if err := config.LoadAndMerge(); err != nil {
			return nil, fmt.Errorf("merging external files: %w", err)
		}
	}

	if opts.ValidateImmediately {
		if errs := config.Validate(); len(errs) > 0 {
			return nil, fmt.Errorf("validation errors: %v", errs)
		}
	}

	return config, nil
}

// SaveToFile stamps the config with the current time and commit and writes it as YAML
func SaveToFile(config *ExperimentConfig, path string) error {
	collector, err := NewMetadataCollector()
	if err != nil {
		fmt.Printf("Warning: saving config without git commit: %v\n", err)
		collector = &MetadataCollector{timestamp: now()}
	}
	collector.PopulateMetadata(config)

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}

// ResolvePaths resolves all relative paths in the config to absolute paths
func (c *ExperimentConfig) ResolvePaths(resolver *PathResolver) error {
	if c.Mesh.Path != "" {
		c.Mesh.Path = resolver.ResolvePath(c.Mesh.Path)
	}

	if c.Placements.FromFile != "" {
		c.Placements.FromFile = resolver.ResolvePath(c.Placements.FromFile)
	}

	return nil
}
