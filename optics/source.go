package optics

import (
	"context"
	"math"
	"runtime"
	"sort"

	lin "github.com/sgreben/piecewiselinear"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/spatial/r2"
)

// Shot is a single ray leaving a light source
type Shot struct {
	Origin    r2.Vec
	Direction r2.Vec
	// Linear gain relative to the source's axis
	Gain float64
}

type Directivity struct {
	f lin.Function
}

// NewDirectivity builds a beam profile from a map of off-axis angle in degrees to gain in dB.
// Gain should always be zero or negative. The profile is symmetric about the axis and holds its
// end values beyond the outermost angle.
func NewDirectivity(profile map[float64]float64) Directivity {
	// Fold negative angles onto the positive side; an explicit positive entry wins.
	folded := make(map[float64]float64, len(profile))
	for angle, gain := range profile {
		if _, ok := folded[math.Abs(angle)]; !ok || angle >= 0 {
			folded[math.Abs(angle)] = gain
		}
	}
	angles := make([]float64, 0, len(folded))
	for angle := range folded {
		angles = append(angles, angle)
	}
	sort.Float64s(angles)
	gains := make([]float64, len(angles))
	for i, angle := range angles {
		gains[i] = folded[angle]
	}
	return Directivity{f: lin.Function{X: angles, Y: gains}}
}

// Gain in dB at angle degrees off axis
func (d Directivity) Gain(angle float64) float64 {
	switch len(d.f.X) {
	case 0:
		return 0
	case 1:
		return d.f.Y[0]
	}
	angle = math.Abs(angle)
	lo, hi := d.f.X[0], d.f.X[len(d.f.X)-1]
	angle = math.Max(lo, math.Min(hi, angle))
	return d.f.At(angle)
}

// LightSource emits one ray, or a fan of rays spread evenly about its direction
type LightSource struct {
	Position  r2.Vec
	Direction r2.Vec
	// Number of rays in the fan. Zero or one emits a single ray along Direction.
	Rays int
	// Full angle of the fan in radians
	Spread      float64
	Directivity Directivity
}

func fromDB(gainDB float64) float64 {
	return math.Pow(10, gainDB/10)
}

// Sample returns the shots this source emits for one frame
func (s LightSource) Sample() []Shot {
	axis := Normalize(s.Direction)
	if s.Rays <= 1 {
		return []Shot{{Origin: s.Position, Direction: axis, Gain: 1}}
	}
	shots := make([]Shot, 0, s.Rays)
	for i := 0; i < s.Rays; i++ {
		offset := -s.Spread/2 + s.Spread*float64(i)/float64(s.Rays-1)
		shots = append(shots, Shot{
			Origin:    s.Position,
			Direction: rotate(axis, offset),
			Gain:      fromDB(s.Directivity.Gain(offset * 180 / math.Pi)),
		})
	}
	return shots
}

// FixedSources are the three rightward sources of the installation, at a quarter, half and three
// quarters of the canvas height on its left edge
func FixedSources(height float64) []LightSource {
	sources := make([]LightSource, 0, 3)
	for _, frac := range []float64{0.25, 0.5, 0.75} {
		sources = append(sources, LightSource{Position: V(0, height*frac), Direction: V(1, 0)})
	}
	return sources
}

// TraceSource traces every shot of a source and concatenates their segments
func (s *Scene) TraceSource(source LightSource, params TraceParams) []Segment {
	var segments []Segment
	for _, shot := range source.Sample() {
		segments = append(segments, s.trace(shot.Origin, shot.Direction, shot.Gain, params)...)
	}
	return segments
}

// TraceSources traces each source on its own goroutine and returns one segment list per source,
// in source order. Sources share nothing but the read-only scene.
func (s *Scene) TraceSources(ctx context.Context, sources []LightSource, params TraceParams) ([][]Segment, error) {
	traces := make([][]Segment, len(sources))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())
	for i, source := range sources {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			traces[i] = s.TraceSource(source, params)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return traces, nil
}
