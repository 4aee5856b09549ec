package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jdginn/go-prism-studio/optics"
)

func TestCheckSceneClean(t *testing.T) {
	scene := optics.NewScene(1200, 720, []optics.Polygon{
		optics.NewPolygon(optics.Square, optics.MakeSquare(optics.V(600, 360), 120, 0)),
	})
	assert.Empty(t, checkScene(scene, optics.FixedSources(720)))
}

func TestCheckSceneProblems(t *testing.T) {
	scene := optics.NewScene(1200, 720, []optics.Polygon{
		optics.NewPolygon(optics.Square, optics.MakeSquare(optics.V(600, 360), 120, 0)),
		optics.NewPolygon(optics.Triangle, optics.MakeTriangle(optics.V(650, 360), 130, 0)),
	})
	sources := []optics.LightSource{
		{Position: optics.V(600, 360), Direction: optics.V(1, 0)},
		{Position: optics.V(-10, 100), Direction: optics.V(1, 0)},
	}

	problems := checkScene(scene, sources)
	require.Len(t, problems, 3)
	assert.Equal(t, []int{0, 1}, problems[0].Polygons)
	assert.Equal(t, "source 0 starts inside prism 0", problems[1].Message)
	assert.Equal(t, []int{1}, problems[2].Sources)
	assert.Contains(t, problems[2].Message, "off the canvas")
}

func TestImplicated(t *testing.T) {
	problems := []problem{
		{Polygons: []int{2, 0}},
		{Polygons: []int{0}, Sources: []int{1}},
		{Sources: []int{1}},
	}
	polygons, sources := implicated(problems, 3)
	assert.Equal(t, []int{0, 2}, polygons)
	assert.Equal(t, []int{1}, sources)

	polygons, sources = implicated([]problem{{Polygons: []int{0, 1}}}, 3)
	assert.Equal(t, []int{0, 1}, polygons)
	assert.Equal(t, []int{0, 1, 2}, sources, "overlaps alone trace every source")
}
