package optics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewExposureGrid(t *testing.T) {
	g := NewExposureGrid(1200, 720, 40)
	assert.Equal(t, 30, g.Cols)
	assert.Equal(t, 18, g.Rows)
	assert.Zero(t, g.LitCount())
	assert.Zero(t, g.Coverage())

	empty := NewExposureGrid(1200, 720, 0)
	assert.Zero(t, empty.Cols)
	empty.Mark(Segment{Start: V(0, 0), End: V(100, 100)})
	assert.Zero(t, empty.Coverage())
}

func TestExposureMarkHorizontalRay(t *testing.T) {
	assert := assert.New(t)
	g := NewExposureGrid(100, 100, 10)
	g.Mark(Segment{Start: V(0, 55), End: V(100, 55)})

	for col := 0; col < g.Cols; col++ {
		assert.True(g.Lit(col, 5), "col %d", col)
		assert.False(g.Lit(col, 3), "col %d", col)
		assert.False(g.Lit(col, 7), "col %d", col)
	}
	assert.Equal(g.LitCount(), 10+countLit(g, 4)+countLit(g, 6))
	assert.False(g.Lit(-1, 5))
	assert.False(g.Lit(10, 5))
}

func countLit(g *ExposureGrid, row int) int {
	n := 0
	for col := 0; col < g.Cols; col++ {
		if g.Lit(col, row) {
			n++
		}
	}
	return n
}

func TestExposureMarkIsIdempotent(t *testing.T) {
	g := NewExposureGrid(1200, 720, 20)
	seg := Segment{Start: V(0, 0), End: V(1200, 720)}
	g.Mark(seg)
	lit := g.LitCount()
	assert.Positive(t, lit)
	g.Mark(seg)
	assert.Equal(t, lit, g.LitCount())
}

func TestExposureSkipsNonFiniteSegments(t *testing.T) {
	g := NewExposureGrid(100, 100, 10)
	g.Mark(Segment{Start: V(0, 0), End: V(math.Inf(1), 0)})
	g.Mark(Segment{Start: V(math.NaN(), 0), End: V(10, 0)})
	assert.Zero(t, g.LitCount())
}

func TestExposureSegmentOutsideCanvas(t *testing.T) {
	g := NewExposureGrid(100, 100, 10)
	g.Mark(Segment{Start: V(-500, -500), End: V(-400, -500)})
	assert.Zero(t, g.LitCount())
}

func TestExposureSegmentFarPastCanvas(t *testing.T) {
	for _, end := range []float64{1e20, -1e20} {
		g := NewExposureGrid(100, 100, 10)
		g.Mark(Segment{Start: V(5, 5), End: V(end, 5)})
		if end > 0 {
			assert.Equal(t, 10, g.LitCount(), "the whole first row")
		} else {
			assert.Equal(t, 1, g.LitCount(), "only the starting cell")
		}
		assert.True(t, g.Lit(0, 0))
	}

	g := NewExposureGrid(100, 100, 10)
	g.Mark(Segment{Start: V(55, 1e20), End: V(55, -1e20)})
	assert.Equal(t, 10, g.LitCount(), "the whole sixth column")
	assert.True(t, g.Lit(5, 9))
}

func TestExposureResetAndCoverage(t *testing.T) {
	assert := assert.New(t)
	g := NewExposureGrid(1200, 720, 40)
	traces := [][]Segment{
		singleSquareScene().Trace(V(0, 360), V(1, 0), DefaultTraceParams()),
	}
	for _, segments := range traces {
		g.MarkAll(segments)
	}
	assert.Greater(g.Coverage(), 0.0)
	assert.Less(g.Coverage(), 1.0)
	assert.InDelta(float64(g.LitCount())/float64(g.Cols*g.Rows), g.Coverage(), 1e-12)

	g.Reset()
	assert.Zero(g.LitCount())
	for row := 0; row < g.Rows; row++ {
		for col := 0; col < g.Cols; col++ {
			assert.False(g.Lit(col, row))
		}
	}
}
