package locator

import v3 "github.com/deadsy/sdfx/vec/v3"

// Crossing is the outcome of a single ray/triangle test.
type Crossing int

const (
	Miss  Crossing = iota // ray does not cross the triangle
	Hit                   // ray crosses the triangle in front of its origin
	Maybe                 // ray is parallel to the triangle's plane
)

func (c Crossing) String() string {
	switch c {
	case Miss:
		return "miss"
	case Hit:
		return "hit"
	case Maybe:
		return "maybe"
	default:
		return "unknown"
	}
}

// IntersectTriangle tests the ray starting at p with direction d against
// the triangle spanned by edge vectors b and c from the triangle's first
// vertex. All positions are relative to that vertex.
//
// The crossing point is written as xsi*b + eta*c and solved together with
// the ray parameter t by Cramer's rule. A crossing counts when
//
//	0 <= xsi < 1,  Epsilon <= eta < 1-xsi,  t > 0
//
// The half-open ranges, with Epsilon on the lower eta bound, make a ray
// through an edge shared by two triangles of a fan count exactly once.
// A zero determinant yields Maybe. Callers reject zero-area triangles.
func IntersectTriangle(p, b, c, d v3.Vec) Crossing {
	xsi, eta, t, ok := solveCrossing(p, b, c, d)
	if !ok {
		return Maybe
	}
	if xsi >= 0 && xsi < 1 &&
		eta >= Epsilon && eta < 1-xsi &&
		t > 0 {
		return Hit
	}
	return Miss
}

// solveCrossing solves xsi*b + eta*c - t*d = p. ok is false when the
// determinant d . (c x b) is exactly zero.
func solveCrossing(p, b, c, d v3.Vec) (xsi, eta, t float64, ok bool) {
	det := d.Dot(c.Cross(b))
	if det == 0 {
		return 0, 0, 0, false
	}
	xsi = -p.Dot(c.Cross(d)) / det
	eta = -b.Dot(p.Cross(d)) / det
	t = b.Dot(c.Cross(p)) / det
	return xsi, eta, t, true
}
