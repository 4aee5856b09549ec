//go:build verify_snell
// +build verify_snell

package optics

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

const (
	lengthEpsilon    = 1e-9
	directionEpsilon = 1e-7
)

func init() {
	fmt.Println("Snell verification enabled.")
}

// verifySnell checks every resolution against pt's 3D refraction in the z=0 plane
func verifySnell(v, n r2.Vec, n1, n2 float64, res Resolution) {
	if math.Abs(r2.Norm(res.Direction)-1) > lengthEpsilon {
		panic(fmt.Sprintf("resolved direction %v is not unit length", res.Direction))
	}
	switch res.Kind {
	case Refract:
		want := lift(n).Refract(lift(v), n1, n2).Normalize()
		got := lift(res.Direction)
		if got.Sub(want).Length() > directionEpsilon {
			panic(fmt.Sprintf("refraction %v disagrees with reference %v", res.Direction, want))
		}
	case Reflect:
		if math.Abs(r2.Dot(res.Direction, n)+r2.Dot(v, n)) > directionEpsilon {
			panic("angle of incidence should equal angle of reflection")
		}
	}
}
