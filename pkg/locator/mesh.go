package locator

import v3 "github.com/deadsy/sdfx/vec/v3"

// Mesh is the read-only polygon surface a Locator classifies against.
// Polygons are addressed by index; each polygon is an ordered sequence of
// vertex positions. The mesh must not be mutated while a Locator built from
// it is in use.
type Mesh interface {
	// PolygonCount returns the number of polygons.
	PolygonCount() int
	// PolygonSize returns the number of vertices of polygon i.
	PolygonSize(i int) int
	// Vertex returns the position of vertex j of polygon i.
	Vertex(i, j int) v3.Vec
}

// Polygons is a Mesh stored as explicit vertex lists, one per polygon.
// Shared vertices are simply repeated.
type Polygons [][]v3.Vec

// Compile-time interface check.
var _ Mesh = Polygons(nil)

// PolygonCount returns the number of polygons.
func (p Polygons) PolygonCount() int { return len(p) }

// PolygonSize returns the number of vertices of polygon i.
func (p Polygons) PolygonSize(i int) int { return len(p[i]) }

// Vertex returns vertex j of polygon i.
func (p Polygons) Vertex(i, j int) v3.Vec { return p[i][j] }
