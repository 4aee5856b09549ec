package optics

import (
	"fmt"
	"sort"

	"github.com/fogleman/pt/pt"
	"github.com/hpinc/go3mf"
	"gonum.org/v1/gonum/spatial/r2"
)

// Face is one triangle of an imported mesh
type Face struct {
	V1, V2, V3 pt.Vector
}

// slicePlane is a horizontal cut through a mesh
type slicePlane struct {
	Point  pt.Vector
	Normal pt.Vector
}

func horizontalPlane(z float64) slicePlane {
	return slicePlane{Point: pt.Vector{Z: z}, Normal: pt.Vector{Z: 1}}
}

func (p slicePlane) intersectSegment(v0, v1 pt.Vector) (pt.Vector, bool) {
	u := v1.Sub(v0)
	w := v0.Sub(p.Point)
	d := p.Normal.Dot(u)
	if d > -1e-9 && d < 1e-9 {
		return pt.Vector{}, false
	}
	n := -p.Normal.Dot(w)
	t := n / d
	if t < 0 || t > 1 {
		return pt.Vector{}, false
	}
	return v0.Add(u.MulScalar(t)), true
}

// intersectFace returns the points where the triangle's edges cross the plane
func (p slicePlane) intersectFace(t Face) []pt.Vector {
	var out []pt.Vector
	for _, e := range [][2]pt.Vector{{t.V1, t.V2}, {t.V2, t.V3}, {t.V3, t.V1}} {
		if v, ok := p.intersectSegment(e[0], e[1]); ok {
			out = append(out, v)
		}
	}
	return out
}

// Footprint slices a closed convex mesh at height z and returns its outline as a convex
// polygon. ok is false when the plane misses the mesh.
func Footprint(faces []Face, z float64) (Polygon, bool) {
	plane := horizontalPlane(z)
	var points []r2.Vec
	for _, t := range faces {
		for _, v := range plane.intersectFace(t) {
			points = append(points, V(v.X, v.Y))
		}
	}
	hull := convexHull(points)
	if len(hull) < 3 {
		return Polygon{}, false
	}
	kind := Square
	if len(hull) == 3 {
		kind = Triangle
	}
	return NewPolygon(kind, hull), true
}

// PolygonsFrom3MF reads every mesh object in a 3MF model, divides its coordinates by scale and
// slices it at height z. Objects the plane misses are skipped.
func PolygonsFrom3MF(path string, z, scale float64) ([]Polygon, error) {
	var model go3mf.Model
	r, err := go3mf.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("opening 3mf: %w", err)
	}
	defer r.Close()
	if err := r.Decode(&model); err != nil {
		return nil, fmt.Errorf("decoding 3mf: %w", err)
	}

	var polygons []Polygon
	for _, item := range model.Build.Items {
		obj, ok := model.FindObject(item.ObjectPath(), item.ObjectID)
		if !ok || obj.Mesh == nil {
			continue
		}
		vertex := func(i uint32) pt.Vector {
			v := obj.Mesh.Vertices.Vertex[i]
			return pt.Vector{
				X: float64(v.X()) / scale,
				Y: float64(v.Y()) / scale,
				Z: float64(v.Z()) / scale,
			}
		}
		faces := make([]Face, 0, len(obj.Mesh.Triangles.Triangle))
		for _, t := range obj.Mesh.Triangles.Triangle {
			faces = append(faces, Face{V1: vertex(t.V1), V2: vertex(t.V2), V3: vertex(t.V3)})
		}
		if poly, ok := Footprint(faces, z); ok {
			polygons = append(polygons, poly)
		}
	}
	return polygons, nil
}

// convexHull is Andrew's monotone chain. The hull is counter-clockwise with collinear and
// duplicate points removed.
func convexHull(points []r2.Vec) []r2.Vec {
	if len(points) < 3 {
		return nil
	}
	ps := make([]r2.Vec, len(points))
	copy(ps, points)
	sort.Slice(ps, func(i, j int) bool {
		if ps[i].X != ps[j].X {
			return ps[i].X < ps[j].X
		}
		return ps[i].Y < ps[j].Y
	})

	const collinear = 1e-9
	turn := func(o, a, b r2.Vec) float64 {
		return r2.Cross(r2.Sub(a, o), r2.Sub(b, o))
	}
	hull := make([]r2.Vec, 0, 2*len(ps))
	for _, p := range ps {
		for len(hull) >= 2 && turn(hull[len(hull)-2], hull[len(hull)-1], p) <= collinear {
			hull = hull[:len(hull)-1]
		}
		hull = append(hull, p)
	}
	lower := len(hull) + 1
	for i := len(ps) - 2; i >= 0; i-- {
		p := ps[i]
		for len(hull) >= lower && turn(hull[len(hull)-2], hull[len(hull)-1], p) <= collinear {
			hull = hull[:len(hull)-1]
		}
		hull = append(hull, p)
	}
	return hull[:len(hull)-1]
}
