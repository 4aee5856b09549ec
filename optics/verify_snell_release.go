//go:build !verify_snell
// +build !verify_snell

package optics

import "gonum.org/v1/gonum/spatial/r2"

// Empty stub that will be optimized out
func verifySnell(v, n r2.Vec, n1, n2 float64, res Resolution) {
}
