package optics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSceneNumbersPolygons(t *testing.T) {
	polys := []Polygon{
		NewPolygon(Square, MakeSquare(V(200, 200), 100, 0)),
		NewPolygon(Triangle, MakeTriangle(V(600, 200), 100, 0)),
	}
	polys[0].ID = 17
	scene := NewScene(1200, 720, polys)
	assert.Equal(t, 0, scene.Polygons[0].ID)
	assert.Equal(t, 1, scene.Polygons[1].ID)
	assert.Len(t, scene.Edges(), 7)
	for _, e := range scene.Edges()[4:] {
		assert.Equal(t, 1, e.Polygon)
	}
	assert.Equal(t, 17, polys[0].ID, "the caller's slice is untouched")
}

func TestMediumAt(t *testing.T) {
	scene := NewScene(1200, 720, []Polygon{
		NewPolygon(Square, MakeSquare(V(200, 200), 100, 0)),
		NewPolygon(Square, MakeSquare(V(240, 200), 100, 0)),
	})
	assert.Equal(t, medium{0}, scene.mediumAt(V(160, 200)))
	assert.Equal(t, medium{0, 1}, scene.mediumAt(V(220, 200)))
	assert.Empty(t, scene.mediumAt(V(600, 600)))
	assert.Equal(t, [][2]int{{0, 1}}, scene.OverlappingPairs())
}

func testMarkers() MarkerKinds {
	return MarkerKinds{
		Triangles:    []int{1, 2, 3},
		Squares:      []int{4, 5, 6},
		TriangleSize: 130,
		SquareSize:   120,
	}
}

func TestSceneFromPlacements(t *testing.T) {
	assert := assert.New(t)
	placements := []Placement{
		{Marker: 1, Center: V(300, 300), Yaw: 0.5},
		{Marker: 5, Center: V(800, 300), Yaw: 0},
		{Marker: 99, Center: V(500, 500)},
	}
	scene := SceneFromPlacements(1200, 720, placements, testMarkers())
	require.Len(t, scene.Polygons, 2, "unknown markers are ignored")

	assert.Equal(Triangle, scene.Polygons[0].Kind)
	assert.Equal(1, scene.Polygons[0].Marker)
	assertVec(t, V(300, 300), scene.Polygons[0].Centroid(), 1e-9)

	assert.Equal(Square, scene.Polygons[1].Kind)
	assert.Equal(5, scene.Polygons[1].Marker)
	assertVec(t, V(740, 240), scene.Polygons[1].Vertices()[0], 1e-9)
}

func TestWithoutMarkers(t *testing.T) {
	placements := []Placement{
		{Marker: 1, Center: V(300, 300)},
		{Marker: 4, Center: V(800, 300)},
		{Marker: 6, Center: V(800, 600)},
	}
	scene := SceneFromPlacements(1200, 720, placements, testMarkers())
	reduced := scene.WithoutMarkers(4)

	require.Len(t, reduced.Polygons, 2)
	assert.Equal(t, 1, reduced.Polygons[0].Marker)
	assert.Equal(t, 6, reduced.Polygons[1].Marker)
	assert.Equal(t, 1, reduced.Polygons[1].ID)
	assert.Len(t, scene.Polygons, 3, "the source scene is unchanged")

	// Generated prisms carry no marker and are never removed
	generated := GenerateScene(smallShapes(4))
	assert.Len(t, generated.WithoutMarkers(0).Polygons, len(generated.Polygons))
}
