package locator

import (
	"math"

	v3 "github.com/deadsy/sdfx/vec/v3"
)

// rayDirection returns the direction of the shortest ray from p to the
// surface of the box: the axis and side of the nearest box face. The other
// two components are Epsilon so the ray is never exactly axis-aligned.
//
// The length of the chosen component equals the distance to that face.
// Ties go to the lowest axis, and on that axis to the max face.
func rayDirection(p v3.Vec, b Bounds) (dir v3.Vec, axis, sign int) {
	pt := [3]float64{p.X, p.Y, p.Z}
	lo := [3]float64{b.Min.X, b.Min.Y, b.Min.Z}
	hi := [3]float64{b.Max.X, b.Max.Y, b.Max.Z}

	d := [3]float64{Epsilon, Epsilon, Epsilon}
	sign = 1
	minDist := math.MaxFloat64
	for k := 0; k < 3; k++ {
		up := hi[k] - pt[k]
		down := pt[k] - lo[k]
		dist := math.Min(up, down)
		if dist < minDist {
			axis = k
			minDist = dist
			if down < up {
				sign = -1
			} else {
				sign = 1
			}
		}
	}

	// Points on the box surface have zero distance; keep the ray non-zero.
	if minDist < Epsilon {
		minDist = Epsilon
	}
	d[axis] = float64(sign) * minDist
	return v3.Vec{X: d[0], Y: d[1], Z: d[2]}, axis, sign
}
