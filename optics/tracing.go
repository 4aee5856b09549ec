package optics

import (
	"gonum.org/v1/gonum/spatial/r2"
)

// BranchKind tells the renderer which colour a branch gets
type BranchKind int

const (
	Primary BranchKind = iota
	ReflectedSplit
)

func (k BranchKind) String() string {
	if k == ReflectedSplit {
		return "reflected-split"
	}
	return "primary"
}

// Segment is one straight piece of a traced ray
type Segment struct {
	Start, End r2.Vec
	// Inside is true when the segment runs through a prism
	Inside bool
	Kind   BranchKind
	// Fraction of the source's power carried along this segment
	Intensity float64
}

// Length of the segment
func (s Segment) Length() float64 {
	return r2.Norm(r2.Sub(s.End, s.Start))
}

// Finite reports whether both endpoints can be drawn
func (s Segment) Finite() bool {
	return isFinite(s.Start) && isFinite(s.End)
}

// TraceParams contains parameters to guide tracing
type TraceParams struct {
	// Maximum number of boundary interactions along any one branch
	MaxBounces int
	// Refractive index outside the prisms
	AmbientIndex float64
	// Refractive index shared by every prism
	PrismIndex float64
	// Spawn a partially reflected branch whenever a ray refracts into a denser prism
	FresnelSplit bool
	// Stop spawning split branches once a trace holds this many. Zero means no limit.
	MaxBranches int
	// Escaping rays are drawn this far past the canvas edge
	ExitOverscan float64
	// A branch whose origin wanders further than this outside the canvas is abandoned
	EscapeMargin float64
}

// DefaultTraceParams are glass prisms in air
func DefaultTraceParams() TraceParams {
	return TraceParams{
		MaxBounces:   80,
		AmbientIndex: 1.0,
		PrismIndex:   1.5,
		MaxBranches:  128,
		ExitOverscan: 1,
		EscapeMargin: 500,
	}
}

// Distance a ray is pushed off a boundary after interacting with it
const advanceEpsilon = 1e-4

// rayState is one pending branch
type rayState struct {
	origin    r2.Vec
	direction r2.Vec
	inside    medium
	remaining int
	kind      BranchKind
	intensity float64
}

// Trace follows a ray from origin through the scene and returns every segment it draws.
//
// The primary branch is traced to completion first, then any split branches in last-in first-out
// order. A zero-length direction traces nothing. Trace holds no state between calls, so the same
// inputs always produce the same segments.
func (s *Scene) Trace(origin, direction r2.Vec, params TraceParams) []Segment {
	return s.trace(origin, direction, 1, params)
}

func (s *Scene) trace(origin, direction r2.Vec, intensity float64, params TraceParams) []Segment {
	v := Normalize(direction)
	if isDegenerate(v) || !isFinite(origin) || params.MaxBounces <= 0 {
		return nil
	}

	pending := []rayState{{
		origin:    origin,
		direction: v,
		inside:    s.mediumAt(origin),
		remaining: params.MaxBounces,
		kind:      Primary,
		intensity: intensity,
	}}
	branches := 1
	var segments []Segment
	for len(pending) > 0 {
		ray := pending[len(pending)-1]
		pending = pending[:len(pending)-1]

		allowance := -1
		if params.MaxBranches > 0 {
			allowance = params.MaxBranches - branches
		}
		var spawned []rayState
		segments, spawned = s.propagate(ray, params, segments, allowance)
		pending = append(pending, spawned...)
		branches += len(spawned)
	}
	return segments
}

// propagate runs one branch until it leaves the canvas, exhausts its bounces or escapes.
// Split branches are returned instead of being traced; at most allowance of them are spawned,
// or any number when allowance is negative. Intensity is only divided for a branch that is kept.
func (s *Scene) propagate(ray rayState, params TraceParams, segments []Segment, allowance int) ([]Segment, []rayState) {
	var spawned []rayState
	for {
		emit := func(end r2.Vec) {
			segments = append(segments, Segment{
				Start:     ray.origin,
				End:       end,
				Inside:    len(ray.inside) > 0,
				Kind:      ray.kind,
				Intensity: ray.intensity,
			})
		}

		hit, ok := nearestHit(ray.origin, ray.direction, s.edges)
		if !ok {
			if end, ok := canvasExit(ray.origin, ray.direction, s.Width, s.Height, params.ExitOverscan); ok {
				emit(end)
			}
			return segments, spawned
		}
		emit(hit.Point)

		id := hit.Edge.Polygon
		normal := s.Polygons[id].OutwardNormal(hit.Edge)
		entering := r2.Dot(ray.direction, normal) < 0
		n1, n2 := ray.inside.indices(id, entering, params)
		res := Resolve(ray.direction, normal, n1, n2)

		next := ray.inside
		intensity := ray.intensity
		if res.Kind == Refract {
			if params.FresnelSplit && allowance != 0 && entering && n2 > n1 && ray.remaining > 1 {
				r := Reflectance(ray.direction, normal, n1, n2)
				reflected := Mirror(ray.direction, normal)
				spawned = append(spawned, rayState{
					origin:    r2.Add(hit.Point, r2.Scale(advanceEpsilon, reflected)),
					direction: reflected,
					inside:    ray.inside,
					remaining: ray.remaining - 1,
					kind:      ReflectedSplit,
					intensity: intensity * r,
				})
				intensity *= 1 - r
				allowance--
			}
			if entering {
				next = ray.inside.with(id)
			} else {
				next = ray.inside.without(id)
			}
		}

		ray.origin = r2.Add(hit.Point, r2.Scale(advanceEpsilon, res.Direction))
		ray.direction = res.Direction
		ray.inside = next
		ray.intensity = intensity
		ray.remaining--

		isBudgetExhausted := ray.remaining <= 0
		isEscaped := s.escaped(ray.origin, params.EscapeMargin)
		isStalled := isDegenerate(ray.direction) || !isFinite(ray.origin)
		if isBudgetExhausted || isEscaped || isStalled {
			return segments, spawned
		}
	}
}

// indices picks the refractive index being left and the one being entered when a ray crosses
// the boundary of polygon id
func (m medium) indices(id int, entering bool, params TraceParams) (n1, n2 float64) {
	current := params.AmbientIndex
	if len(m) > 0 {
		current = params.PrismIndex
	}
	if entering {
		return current, params.PrismIndex
	}
	after := params.AmbientIndex
	if len(m.without(id)) > 0 {
		after = params.PrismIndex
	}
	return params.PrismIndex, after
}

func (s *Scene) escaped(p r2.Vec, margin float64) bool {
	return p.X < -margin || p.X > s.Width+margin || p.Y < -margin || p.Y > s.Height+margin
}

// HitsTarget reports whether any drawable segment passes within radius of center
func HitsTarget(segments []Segment, center r2.Vec, radius float64) bool {
	for _, seg := range segments {
		if !seg.Finite() {
			continue
		}
		if distanceToSegment(center, seg.Start, seg.End) <= radius {
			return true
		}
	}
	return false
}
