package optics

import (
	"math"
	"math/rand"
	"time"

	"github.com/dhconnelly/rtreego"
	"gonum.org/v1/gonum/spatial/r2"
)

// GeneratorParams describes a random scene
type GeneratorParams struct {
	Squares   int
	Triangles int
	// Edge lengths
	SquareSize   float64
	TriangleSize float64
	// Canvas size
	Width, Height float64
	// Prism centers keep at least this far from the canvas border
	Margin float64
	// Candidate placements to try before settling for a partial scene
	MaxAttempts int
	// Seed makes the scene reproducible. A nil seed draws one from the clock.
	Seed *int64
}

// DefaultGeneratorParams matches the 1200x720 installation canvas
func DefaultGeneratorParams() GeneratorParams {
	return GeneratorParams{
		Squares:      3,
		Triangles:    3,
		SquareSize:   120,
		TriangleSize: 130,
		Width:        1200,
		Height:       720,
		Margin:       100,
		MaxAttempts:  8000,
	}
}

// boxEntry stores a placed bounding box in the rejection index
type boxEntry struct {
	box  r2.Box
	rect rtreego.Rect
}

func (b boxEntry) Bounds() rtreego.Rect {
	return b.rect
}

// rtreego rejects zero-length sides
const minRectSide = 1e-9

func newBoxEntry(box r2.Box, pad float64) (boxEntry, error) {
	rect, err := rtreego.NewRect(
		rtreego.Point{box.Min.X - pad, box.Min.Y - pad},
		[]float64{
			math.Max(box.Max.X-box.Min.X+2*pad, minRectSide),
			math.Max(box.Max.Y-box.Min.Y+2*pad, minRectSide),
		},
	)
	return boxEntry{box: box, rect: rect}, err
}

// GenerateScene places squares then triangles at uniformly random centers and rotations by
// rejection sampling, so that no two bounding boxes overlap.
//
// Running out of attempts is not an error: whatever was placed so far is returned.
func GenerateScene(params GeneratorParams) *Scene {
	var seed int64
	if params.Seed != nil {
		seed = *params.Seed
	} else {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	placed := rtreego.NewTree(2, 2, 5)
	target := params.Squares + params.Triangles
	polygons := make([]Polygon, 0, target)

	for attempts := 0; len(polygons) < target && attempts < params.MaxAttempts; attempts++ {
		isSquare := len(polygons) < params.Squares
		center := V(
			uniform(rng, params.Margin, params.Width-params.Margin),
			uniform(rng, params.Margin, params.Height-params.Margin),
		)
		angle := rng.Float64() * 2 * math.Pi

		var poly Polygon
		if isSquare {
			poly = NewPolygon(Square, MakeSquare(center, params.SquareSize, angle))
		} else {
			poly = NewPolygon(Triangle, MakeTriangle(center, params.TriangleSize, angle))
		}

		// Padding the query makes touching boxes show up as candidates; Overlaps has the final say.
		query, err := newBoxEntry(poly.Box(), minRectSide)
		if err != nil {
			continue
		}
		if collides(placed, query) {
			continue
		}
		entry, err := newBoxEntry(poly.Box(), 0)
		if err != nil {
			continue
		}
		placed.Insert(entry)
		polygons = append(polygons, poly)
	}
	return NewScene(params.Width, params.Height, polygons)
}

func collides(placed *rtreego.Rtree, query boxEntry) bool {
	for _, s := range placed.SearchIntersect(query.rect) {
		if Overlaps(s.(boxEntry).box, query.box) {
			return true
		}
	}
	return false
}

// uniform draws from [lo, hi), collapsing to the midpoint when the range is empty
func uniform(rng *rand.Rand, lo, hi float64) float64 {
	if hi <= lo {
		return (lo + hi) / 2
	}
	return lo + rng.Float64()*(hi-lo)
}
