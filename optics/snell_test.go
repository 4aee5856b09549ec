package optics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveNormalIncidence(t *testing.T) {
	res := Resolve(V(1, 0), V(-1, 0), 1.0, 1.5)
	assert.Equal(t, Refract, res.Kind)
	assertVec(t, V(1, 0), res.Direction, 1e-12)
	assertVec(t, V(-1, 0), res.Normal, 0)
}

func TestResolveFollowsSnellsLaw(t *testing.T) {
	for _, deg := range []float64{5, 20, 30, 45, 60, 80} {
		theta := deg * math.Pi / 180
		v := V(math.Cos(theta), math.Sin(theta))
		res := Resolve(v, V(-1, 0), 1.0, 1.5)
		assert.Equal(t, Refract, res.Kind)
		// Tangential components satisfy n1 sin(i) = n2 sin(t)
		assert.InDelta(t, 1.0*math.Sin(theta), 1.5*res.Direction.Y, 1e-12, "angle %v", deg)
		assert.Greater(t, res.Direction.X, 0.0)
		assert.InDelta(t, 1, res.Direction.X*res.Direction.X+res.Direction.Y*res.Direction.Y, 1e-12)
	}
}

func TestResolveMatchesReferenceRefraction(t *testing.T) {
	for _, deg := range []float64{0, 10, 35, 40} {
		theta := deg * math.Pi / 180
		v := V(math.Cos(theta), math.Sin(theta))
		n := V(-1, 0)
		for _, idx := range [][2]float64{{1.0, 1.5}, {1.5, 1.0}, {1.0, 1.0}} {
			res := Resolve(v, n, idx[0], idx[1])
			if res.Kind != Refract {
				continue
			}
			want := lift(n).Refract(lift(v), idx[0], idx[1]).Normalize()
			assertVec(t, V(want.X, want.Y), res.Direction, 1e-9, "angle %v indices %v", deg, idx)
		}
	}
}

func TestResolveEqualIndicesPassesStraightThrough(t *testing.T) {
	v := Normalize(V(3, 1))
	res := Resolve(v, V(-1, 0), 1.5, 1.5)
	assert.Equal(t, Refract, res.Kind)
	assertVec(t, v, res.Direction, 1e-12)
}

func TestResolveTotalInternalReflection(t *testing.T) {
	assert := assert.New(t)

	// 45 degrees from glass into air is past the critical angle
	v := Normalize(V(1, 1))
	res := Resolve(v, V(1, 0), 1.5, 1.0)
	assert.Equal(Reflect, res.Kind)
	assertVec(t, Normalize(V(-1, 1)), res.Direction, 1e-12)
	assertVec(t, V(-1, 0), res.Normal, 0, "normal is flipped to face the ray")

	// Just inside the critical angle still refracts
	critical := math.Asin(1 / 1.5)
	inside := V(math.Cos(critical-0.01), math.Sin(critical-0.01))
	assert.Equal(Refract, Resolve(inside, V(1, 0), 1.5, 1.0).Kind)
	outside := V(math.Cos(critical+0.01), math.Sin(critical+0.01))
	assert.Equal(Reflect, Resolve(outside, V(1, 0), 1.5, 1.0).Kind)
}

func TestMirror(t *testing.T) {
	v := Normalize(V(1, -1))
	assertVec(t, Normalize(V(1, 1)), Mirror(v, V(0, 1)), 1e-12)
	assertVec(t, Normalize(V(1, 1)), Mirror(v, V(0, -1)), 1e-12)
}

func TestReflectance(t *testing.T) {
	assert := assert.New(t)
	assert.InDelta(0.04, Reflectance(V(1, 0), V(-1, 0), 1.0, 1.5), 1e-12)
	// Orientation of the normal does not matter
	assert.InDelta(0.04, Reflectance(V(1, 0), V(1, 0), 1.0, 1.5), 1e-12)
	assert.InDelta(0, Reflectance(V(1, 0), V(-1, 0), 1.5, 1.5), 1e-12)
	assert.Equal(1.0, Reflectance(Normalize(V(1, 1)), V(1, 0), 1.5, 1.0))

	grazing := Reflectance(Normalize(V(1, 10)), V(-1, 0), 1.0, 1.5)
	assert.Greater(grazing, 0.04)
	assert.LessOrEqual(grazing, 1.0)
}
