package config

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func writeFile(t *testing.T, dir, name, contents string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(contents), 0644))
	return path
}

const placementsYAML = `
canvas:
  width: 800
  height: 600
optics:
  fresnel_split: true
generator:
  seed: 42
placements:
  from_file: markers.json
  triangle_markers: [1, 2, 3]
  square_markers: [4, 5, 6]
  inline:
    - {id: 2, x: 100, y: 100, yaw: 90}
sources:
  - {x: 0, y: 300, dx: 1, dy: 0, rays: 3, spread_deg: 10, directivity: {0: 0, 10: -3}}
exposure:
  enabled: true
  cell_size: 20
`

const markersJSON = `[
  {"id": 2, "x": 500, "y": 500, "yaw": 0},
  {"id": 5, "x": 400, "y": 300, "yaw": 45}
]`

func TestLoadFromFileKeepsDefaults(t *testing.T) {
	assert := assert.New(t)
	dir := t.TempDir()
	writeFile(t, dir, "markers.json", markersJSON)
	path := writeFile(t, dir, "experiment.yaml", placementsYAML)

	config, err := LoadFromFile(path, LoadOptions{})
	require.NoError(t, err)

	assert.Equal(800.0, config.Canvas.Width)
	assert.True(config.Optics.FresnelSplit)
	assert.Equal(1.5, config.Optics.PrismIndex, "unset fields keep their defaults")
	assert.Equal(80, config.Optics.MaxBounces)
	assert.Equal(3, config.Generator.Squares)
	require.NotNil(t, config.Generator.Seed)
	assert.Equal(int64(42), *config.Generator.Seed)
	assert.Equal("markers.json", config.Placements.FromFile)
	assert.Len(config.Placements.Inline, 1)
	assert.Equal(-3.0, config.Sources[0].Directivity[10])
}

func TestLoadFromFileResolvesAndMerges(t *testing.T) {
	assert := assert.New(t)
	dir := t.TempDir()
	writeFile(t, dir, "markers.json", markersJSON)
	path := writeFile(t, dir, "experiment.yaml", placementsYAML)

	config, err := LoadFromFile(path, LoadOptions{ResolvePaths: true, MergeFiles: true, ValidateImmediately: true})
	require.NoError(t, err)

	assert.Equal(filepath.Join(dir, "markers.json"), config.Placements.FromFile)
	require.Len(t, config.Placements.Inline, 2)
	assert.Equal(Placement{ID: 2, X: 100, Y: 100, Yaw: 90}, config.Placements.Inline[0], "inline placements win")
	assert.Equal(Placement{ID: 5, X: 400, Y: 300, Yaw: 45}, config.Placements.Inline[1])
}

func TestLoadFromFileErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadFromFile(filepath.Join(dir, "missing.yaml"), LoadOptions{})
	assert.ErrorContains(t, err, "reading config file")

	bad := writeFile(t, dir, "bad.yaml", "canvas: [not, a, map]\n")
	_, err = LoadFromFile(bad, LoadOptions{})
	assert.ErrorContains(t, err, "parsing config file")

	invalid := writeFile(t, dir, "invalid.yaml", "canvas:\n  width: -1\n")
	_, err = LoadFromFile(invalid, LoadOptions{ValidateImmediately: true})
	assert.ErrorContains(t, err, "validation errors")

	feed := writeFile(t, dir, "feed.yaml", "placements:\n  from_file: nowhere.json\n")
	_, err = LoadFromFile(feed, LoadOptions{ResolvePaths: true, MergeFiles: true})
	assert.ErrorContains(t, err, "merging external files")
}

func TestSaveToFileRoundTripsSeed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	config := Default()
	config.StampSeed(99)
	require.NoError(t, SaveToFile(config, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var back ExperimentConfig
	require.NoError(t, yaml.Unmarshal(data, &back))
	require.NotNil(t, back.Metadata.Seed)
	assert.Equal(t, int64(99), *back.Metadata.Seed)
	assert.NotEmpty(t, back.Metadata.Timestamp)
	assert.Equal(t, config.Optics, back.Optics)
}

func TestCreateScene(t *testing.T) {
	assert := assert.New(t)

	config := Default()
	seed := int64(5)
	config.Generator.Seed = &seed
	scene, err := config.CreateScene()
	require.NoError(t, err)
	assert.NotEmpty(scene.Polygons)
	require.NotNil(t, config.Metadata.Seed)
	assert.Equal(seed, *config.Metadata.Seed)

	// Placements take over from the generator
	config = Default()
	config.Placements = Placements{
		TriangleMarkers: []int{1},
		SquareMarkers:   []int{4},
		Inline:          []Placement{{ID: 1, X: 300, Y: 300}, {ID: 4, X: 800, Y: 300, Yaw: 45}, {ID: 9, X: 10, Y: 10}},
	}
	scene, err = config.CreateScene()
	require.NoError(t, err)
	assert.Len(scene.Polygons, 2)
	assert.Nil(config.Metadata.Seed)

	config.Mesh.Path = filepath.Join(t.TempDir(), "missing.3mf")
	_, err = config.CreateScene()
	assert.ErrorContains(err, "importing mesh")
}

func TestBuildSceneWarnsOnPartialScene(t *testing.T) {
	config := Default()
	seed := int64(3)
	config.Generator.Seed = &seed
	_, warnings, err := config.BuildScene()
	require.NoError(t, err)
	assert.Empty(t, warnings)

	config.Generator.Squares = 40
	config.Generator.SquareSize = 300
	config.Generator.MaxAttempts = 100
	scene, warnings, err := config.BuildScene()
	require.NoError(t, err)
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], fmt.Sprintf("placed %d of 43 prisms", len(scene.Polygons)))
}

func TestGeneratedSeedIsRecorded(t *testing.T) {
	config := Default()
	first, err := config.CreateScene()
	require.NoError(t, err)
	require.NotNil(t, config.Metadata.Seed)

	// Replaying the recorded seed rebuilds the same scene
	replay := Default()
	replay.Generator.Seed = config.Metadata.Seed
	second, err := replay.CreateScene()
	require.NoError(t, err)
	require.Equal(t, len(first.Polygons), len(second.Polygons))
	for i := range first.Polygons {
		assert.Equal(t, first.Polygons[i].Vertices(), second.Polygons[i].Vertices())
	}
}

func TestLightSources(t *testing.T) {
	config := Default()
	assert.Len(t, config.LightSources(), 3)

	config.Sources = []Source{{X: 10, Y: 20, DX: 0, DY: 1, Rays: 4, SpreadDeg: 90}}
	sources := config.LightSources()
	require.Len(t, sources, 1)
	assert.InDelta(t, 1.5707963, sources[0].Spread, 1e-6)
	assert.Len(t, sources[0].Sample(), 4)
}
