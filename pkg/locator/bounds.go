package locator

import (
	"fmt"
	"math"

	v3 "github.com/deadsy/sdfx/vec/v3"
)

// Bounds is the cheap rejection volume around a mesh: an axis-aligned box
// inflated by Epsilon on every side, and the sphere circumscribing that box.
type Bounds struct {
	Min    v3.Vec
	Max    v3.Vec
	Center v3.Vec
	Radius float64
}

// newBounds computes the rejection volume over every polygon vertex of m.
func newBounds(m Mesh) (Bounds, error) {
	var (
		lo, hi v3.Vec
		count  int
	)
	for i := 0; i < m.PolygonCount(); i++ {
		for j := 0; j < m.PolygonSize(i); j++ {
			v := m.Vertex(i, j)
			if count == 0 {
				lo, hi = v, v
			} else {
				lo = lo.Min(v)
				hi = hi.Max(v)
			}
			count++
		}
	}
	if count < 3 {
		return Bounds{}, fmt.Errorf("%w: %d vertices, need at least 3", ErrInvalidMesh, count)
	}

	ext := hi.Sub(lo)
	if ext.X == 0 && ext.Y == 0 && ext.Z == 0 {
		return Bounds{}, fmt.Errorf("%w: zero spatial extent", ErrInvalidMesh)
	}
	if !isFinite(lo) || !isFinite(hi) {
		return Bounds{}, fmt.Errorf("%w: non-finite vertex coordinates", ErrInvalidMesh)
	}

	pad := v3.Vec{X: Epsilon, Y: Epsilon, Z: Epsilon}
	b := Bounds{
		Min: lo.Sub(pad),
		Max: hi.Add(pad),
	}
	b.Center = b.Min.Add(b.Max).MulScalar(0.5)
	b.Radius = b.Max.Sub(b.Min).MulScalar(0.5).Length()
	return b, nil
}

// ContainsPoint reports whether p lies in the box, bounds included.
func (b Bounds) ContainsPoint(p v3.Vec) bool {
	return p.X >= b.Min.X && p.X <= b.Max.X &&
		p.Y >= b.Min.Y && p.Y <= b.Max.Y &&
		p.Z >= b.Min.Z && p.Z <= b.Max.Z
}

// SphereContainsPoint reports whether p lies strictly inside the sphere.
func (b Bounds) SphereContainsPoint(p v3.Vec) bool {
	d := p.Sub(b.Center)
	return d.Dot(d) < b.Radius*b.Radius
}

func isFinite(v v3.Vec) bool {
	for _, x := range [3]float64{v.X, v.Y, v.Z} {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return false
		}
	}
	return true
}
