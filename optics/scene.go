package optics

import (
	"sort"

	"gonum.org/v1/gonum/spatial/r2"
)

// Scene is an immutable set of prisms on a canvas. Regenerating replaces the whole scene, so a
// Scene may be traced from many goroutines at once.
type Scene struct {
	Width, Height float64
	Polygons      []Polygon

	edges []Edge
}

// NewScene numbers polygons by their position in the slice and derives their edges
func NewScene(width, height float64, polygons []Polygon) *Scene {
	s := &Scene{
		Width:    width,
		Height:   height,
		Polygons: make([]Polygon, len(polygons)),
	}
	for i, p := range polygons {
		p.ID = i
		s.Polygons[i] = p
		s.edges = append(s.edges, p.Edges()...)
	}
	return s
}

// Edges lists every edge of every polygon
func (s *Scene) Edges() []Edge {
	return s.edges
}

// mediumAt returns the ids of the polygons containing p
func (s *Scene) mediumAt(p r2.Vec) medium {
	var m medium
	for _, poly := range s.Polygons {
		if poly.Contains(p) {
			m = m.with(poly.ID)
		}
	}
	return m
}

// OverlappingPairs lists polygon pairs whose bounding boxes overlap. Generated scenes never have
// any; scenes built from placements can.
func (s *Scene) OverlappingPairs() [][2]int {
	var pairs [][2]int
	for i := range s.Polygons {
		for j := i + 1; j < len(s.Polygons); j++ {
			if Overlaps(s.Polygons[i].Box(), s.Polygons[j].Box()) {
				pairs = append(pairs, [2]int{i, j})
			}
		}
	}
	return pairs
}

// Placement is one detected marker: where a physical prism sits and how it is turned
type Placement struct {
	Marker int
	Center r2.Vec
	// Yaw in radians
	Yaw float64
}

// MarkerKinds maps marker ids to prism shapes
type MarkerKinds struct {
	Triangles    []int
	Squares      []int
	TriangleSize float64
	SquareSize   float64
}

func (k MarkerKinds) kindOf(marker int) (ShapeKind, bool) {
	for _, id := range k.Triangles {
		if id == marker {
			return Triangle, true
		}
	}
	for _, id := range k.Squares {
		if id == marker {
			return Square, true
		}
	}
	return 0, false
}

// SceneFromPlacements builds one prism per placement. Placements whose marker is not mapped to a
// shape are ignored.
func SceneFromPlacements(width, height float64, placements []Placement, kinds MarkerKinds) *Scene {
	var polygons []Polygon
	for _, pl := range placements {
		kind, ok := kinds.kindOf(pl.Marker)
		if !ok {
			continue
		}
		var poly Polygon
		switch kind {
		case Triangle:
			poly = NewPolygon(Triangle, MakeTriangle(pl.Center, kinds.TriangleSize, pl.Yaw))
		case Square:
			poly = NewPolygon(Square, MakeSquare(pl.Center, kinds.SquareSize, pl.Yaw))
		}
		poly.Marker = pl.Marker
		polygons = append(polygons, poly)
	}
	return NewScene(width, height, polygons)
}

// WithoutMarkers returns a new scene without the prisms placed by the given markers
func (s *Scene) WithoutMarkers(markers ...int) *Scene {
	drop := make(map[int]bool, len(markers))
	for _, m := range markers {
		drop[m] = true
	}
	kept := make([]Polygon, 0, len(s.Polygons))
	for _, p := range s.Polygons {
		if p.Marker != 0 && drop[p.Marker] {
			continue
		}
		kept = append(kept, p)
	}
	return NewScene(s.Width, s.Height, kept)
}

// medium is the sorted set of polygon ids a ray is currently inside.
//
// Non-overlapping scenes keep it at zero or one entries but nothing relies on that. with and
// without always return a fresh slice so branches never share state.
type medium []int

func (m medium) contains(id int) bool {
	i := sort.SearchInts(m, id)
	return i < len(m) && m[i] == id
}

func (m medium) with(id int) medium {
	if m.contains(id) {
		return m
	}
	out := make(medium, 0, len(m)+1)
	out = append(out, m...)
	out = append(out, id)
	sort.Ints(out)
	return out
}

func (m medium) without(id int) medium {
	out := make(medium, 0, len(m))
	for _, v := range m {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}
