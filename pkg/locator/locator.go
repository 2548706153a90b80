package locator

import (
	"errors"

	v3 "github.com/deadsy/sdfx/vec/v3"
)

// Epsilon is the single tolerance used for box inflation, zero-area triangle
// rejection, the minimum ray component and the lower eta bound.
const Epsilon = 1.2345678 * 0x1p-52

// ErrInvalidMesh is returned by New when the mesh has fewer than three
// vertices or no spatial extent.
var ErrInvalidMesh = errors.New("locator: invalid mesh")

// Result is the classification of a point.
type Result int

const (
	Outside Result = iota
	Inside
)

func (r Result) String() string {
	switch r {
	case Outside:
		return "outside"
	case Inside:
		return "inside"
	default:
		return "unknown"
	}
}

// Locator classifies points against a fixed mesh. It is immutable after New
// and safe for concurrent use.
type Locator struct {
	mesh   Mesh
	bounds Bounds
	tracer Tracer
}

// New builds a Locator for m. The mesh is retained, not copied.
func New(m Mesh, opts ...Option) (*Locator, error) {
	if m == nil {
		return nil, ErrInvalidMesh
	}
	b, err := newBounds(m)
	if err != nil {
		return nil, err
	}
	l := &Locator{mesh: m, bounds: b}
	for _, opt := range opts {
		opt(l)
	}
	return l, nil
}

// Bounds returns the rejection volume computed at construction.
func (l *Locator) Bounds() Bounds {
	return l.bounds
}

// Classify reports whether point lies inside the mesh.
func (l *Locator) Classify(point v3.Vec) Result {
	ev := l.classify(point)
	if l.tracer != nil {
		l.tracer(ev)
	}
	return ev.Result
}

func (l *Locator) classify(point v3.Vec) TraceEvent {
	ev := TraceEvent{Point: point, Result: Outside}

	if !l.bounds.SphereContainsPoint(point) {
		ev.Rejection = RejectedBySphere
		return ev
	}
	if !l.bounds.ContainsPoint(point) {
		ev.Rejection = RejectedByBox
		return ev
	}

	d, axis, sign := rayDirection(point, l.bounds)
	ev.Direction, ev.Axis, ev.Sign = d, axis, sign

	m := l.mesh
	for i := 0; i < m.PolygonCount(); i++ {
		n := m.PolygonSize(i)
		if n < 3 {
			continue
		}
		pa := m.Vertex(i, 0)
		p := point.Sub(pa)
		paDotRay := -p.Dot(d)

		for j := 1; j < n-1; j++ {
			b := m.Vertex(i, j).Sub(pa)
			c := m.Vertex(i, j+1).Sub(pa)

			if b.Cross(c).Length() < Epsilon {
				continue
			}

			// Nothing to hit unless a vertex lies ahead of the point.
			pbDotRay := paDotRay + b.Dot(d)
			pcDotRay := paDotRay + c.Dot(d)
			if paDotRay <= 0 && pbDotRay <= 0 && pcDotRay <= 0 {
				continue
			}

			switch IntersectTriangle(p, b, c, d) {
			case Hit:
				ev.Crossings++
			case Maybe:
				// Not counted; a parallel ray cannot cross the face.
				ev.Parallel++
			}
		}
	}

	if ev.Crossings%2 == 1 {
		ev.Result = Inside
	}
	return ev
}
