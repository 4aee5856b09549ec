package config

import (
	"fmt"
	"math"
	"time"

	"github.com/jdginn/go-prism-studio/optics"
)

func (c *ExperimentConfig) TraceParams() optics.TraceParams {
	return optics.TraceParams{
		MaxBounces:   c.Optics.MaxBounces,
		AmbientIndex: c.Optics.AmbientIndex,
		PrismIndex:   c.Optics.PrismIndex,
		FresnelSplit: c.Optics.FresnelSplit,
		MaxBranches:  c.Optics.MaxBranches,
		ExitOverscan: c.Optics.ExitOverscan,
		EscapeMargin: c.Optics.EscapeMargin,
	}
}

func (c *ExperimentConfig) GeneratorParams() optics.GeneratorParams {
	return optics.GeneratorParams{
		Squares:      c.Generator.Squares,
		Triangles:    c.Generator.Triangles,
		SquareSize:   c.Generator.SquareSize,
		TriangleSize: c.Generator.TriangleSize,
		Width:        c.Canvas.Width,
		Height:       c.Canvas.Height,
		Margin:       c.Generator.Margin,
		MaxAttempts:  c.Generator.MaxAttempts,
		Seed:         c.Generator.Seed,
	}
}

// MarkerKinds sizes marker-placed prisms like generated ones
func (c *ExperimentConfig) MarkerKinds() optics.MarkerKinds {
	return optics.MarkerKinds{
		Triangles:    c.Placements.TriangleMarkers,
		Squares:      c.Placements.SquareMarkers,
		TriangleSize: c.Generator.TriangleSize,
		SquareSize:   c.Generator.SquareSize,
	}
}

func (c *ExperimentConfig) OpticsPlacements() []optics.Placement {
	out := make([]optics.Placement, 0, len(c.Placements.Inline))
	for _, pl := range c.Placements.Inline {
		out = append(out, optics.Placement{
			Marker: pl.ID,
			Center: optics.V(pl.X, pl.Y),
			Yaw:    pl.Yaw * math.Pi / 180,
		})
	}
	return out
}

// LightSources falls back to the three fixed installation sources when none are configured
func (c *ExperimentConfig) LightSources() []optics.LightSource {
	if len(c.Sources) == 0 {
		return optics.FixedSources(c.Canvas.Height)
	}
	sources := make([]optics.LightSource, 0, len(c.Sources))
	for _, s := range c.Sources {
		sources = append(sources, optics.LightSource{
			Position:    optics.V(s.X, s.Y),
			Direction:   optics.V(s.DX, s.DY),
			Rays:        s.Rays,
			Spread:      s.SpreadDeg * math.Pi / 180,
			Directivity: optics.NewDirectivity(s.Directivity),
		})
	}
	return sources
}

// ExposureGrid is nil when exposure tracking is disabled
func (c *ExperimentConfig) ExposureGrid() *optics.ExposureGrid {
	if !c.Exposure.Enabled {
		return nil
	}
	return optics.NewExposureGrid(c.Canvas.Width, c.Canvas.Height, c.Exposure.CellSize)
}

func (c *ExperimentConfig) View(scene *optics.Scene, grid *optics.ExposureGrid) *optics.View {
	return &optics.View{
		Scene:     scene,
		Exposure:  grid,
		XSize:     c.Render.Width,
		YSize:     c.Render.Height,
		LineWidth: c.Render.LineWidth,
	}
}

// CreateScene builds the scene as BuildScene does and prints any warnings
func (c *ExperimentConfig) CreateScene() (*optics.Scene, error) {
	scene, warnings, err := c.BuildScene()
	if err != nil {
		return nil, err
	}
	for _, w := range warnings {
		fmt.Printf("Warning: %s\n", w)
	}
	return scene, nil
}

// BuildScene builds prisms from a mesh if one is configured, otherwise from marker placements,
// otherwise by random generation. A generated scene's seed is recorded in the metadata.
// Warnings are returned rather than printed.
func (c *ExperimentConfig) BuildScene() (*optics.Scene, []string, error) {
	switch {
	case c.Mesh.Path != "":
		polygons, err := optics.PolygonsFrom3MF(c.Mesh.Path, c.Mesh.SliceHeight, c.Mesh.Scale)
		if err != nil {
			return nil, nil, fmt.Errorf("importing mesh: %w", err)
		}
		return optics.NewScene(c.Canvas.Width, c.Canvas.Height, polygons), nil, nil
	case len(c.Placements.Inline) > 0:
		return optics.SceneFromPlacements(c.Canvas.Width, c.Canvas.Height, c.OpticsPlacements(), c.MarkerKinds()), nil, nil
	}

	params := c.GeneratorParams()
	seed := time.Now().UnixNano()
	if params.Seed != nil {
		seed = *params.Seed
	}
	params.Seed = &seed
	scene := optics.GenerateScene(params)
	var warnings []string
	if got, want := len(scene.Polygons), params.Squares+params.Triangles; got < want {
		warnings = append(warnings, fmt.Sprintf("placed %d of %d prisms after %d attempts", got, want, params.MaxAttempts))
	}
	c.StampSeed(seed)
	return scene, warnings, nil
}
