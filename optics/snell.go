package optics

import (
	"math"

	"github.com/fogleman/pt/pt"
	"gonum.org/v1/gonum/spatial/r2"
)

// Total internal reflection is declared when sin²(θt) comes within this of 1
const totalReflectionTolerance = 1e-12

// Interaction is what happens to a ray at a medium boundary
type Interaction int

const (
	Refract Interaction = iota
	Reflect
)

func (i Interaction) String() string {
	if i == Reflect {
		return "reflect"
	}
	return "refract"
}

// Resolution is the outcome of Snell's law at one boundary crossing
type Resolution struct {
	Kind      Interaction
	Direction r2.Vec
	// Normal is the boundary normal as used, oriented against the incoming ray
	Normal r2.Vec
}

// orientAgainst flips n so that it opposes v
func orientAgainst(n, v r2.Vec) r2.Vec {
	if r2.Dot(n, v) > 0 {
		return r2.Scale(-1, n)
	}
	return n
}

// Resolve applies Snell's law for a unit direction v crossing a boundary with normal n from a
// medium of index n1 into one of index n2.
//
// The result is either the refracted direction or, past the critical angle, the mirror
// reflection. Both are renormalized.
func Resolve(v, n r2.Vec, n1, n2 float64) Resolution {
	n = orientAgainst(n, v)
	cosI := math.Max(-1, math.Min(1, -r2.Dot(n, v)))
	ratio := n1 / n2
	sinT2 := ratio * ratio * math.Max(0, 1-cosI*cosI)

	var res Resolution
	if sinT2 > 1-totalReflectionTolerance {
		res = Resolution{Kind: Reflect, Direction: mirror(v, n), Normal: n}
	} else {
		cosT := math.Sqrt(math.Max(0, 1-sinT2))
		dir := r2.Add(r2.Scale(ratio, v), r2.Scale(ratio*cosI-cosT, n))
		res = Resolution{Kind: Refract, Direction: Normalize(dir), Normal: n}
	}
	verifySnell(v, n, n1, n2, res)
	return res
}

// Mirror reflects v about the boundary normal n, whichever way n faces
func Mirror(v, n r2.Vec) r2.Vec {
	return mirror(v, orientAgainst(n, v))
}

func mirror(v, n r2.Vec) r2.Vec {
	return Normalize(r2.Sub(v, r2.Scale(2*r2.Dot(v, n), n)))
}

// Reflectance is the unpolarised Fresnel reflectance for v crossing a boundary with normal n
// from index n1 into n2. It is 1 under total internal reflection.
func Reflectance(v, n r2.Vec, n1, n2 float64) float64 {
	n = orientAgainst(n, v)
	r := lift(n).Reflectance(lift(v), n1, n2)
	return math.Max(0, math.Min(1, r))
}

// lift places a 2D vector in the z=0 plane
func lift(v r2.Vec) pt.Vector {
	return pt.Vector{X: v.X, Y: v.Y, Z: 0}
}
