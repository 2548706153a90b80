package kernel

import (
	"fmt"

	v3 "github.com/deadsy/sdfx/vec/v3"
)

// Mesh is an indexed polygon surface. Points holds each distinct vertex
// position once; every polygon is an ordered list of indices into Points.
// Kernels emit closed, consistently wound surfaces.
type Mesh struct {
	Points   []v3.Vec   `json:"points"`
	Polygons [][]uint32 `json:"polygons"`
	PartName string     `json:"partName"` // which scene solid this came from
}

// VertexCount returns the number of distinct vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Points)
}

// PolygonCount returns the number of polygons.
func (m *Mesh) PolygonCount() int {
	return len(m.Polygons)
}

// PolygonSize returns the number of vertices of polygon i.
func (m *Mesh) PolygonSize(i int) int {
	return len(m.Polygons[i])
}

// Vertex returns the position of vertex j of polygon i.
func (m *Mesh) Vertex(i, j int) v3.Vec {
	return m.Points[m.Polygons[i][j]]
}

// TriangleCount returns the number of triangles a fan triangulation of
// every polygon produces.
func (m *Mesh) TriangleCount() int {
	n := 0
	for _, p := range m.Polygons {
		if len(p) >= 3 {
			n += len(p) - 2
		}
	}
	return n
}

// IsEmpty returns true if the mesh has no geometry.
func (m *Mesh) IsEmpty() bool {
	return len(m.Points) == 0 || len(m.Polygons) == 0
}

// Validate checks that every polygon has at least three vertices and that
// every index refers to an existing point.
func (m *Mesh) Validate() error {
	for i, p := range m.Polygons {
		if len(p) < 3 {
			return fmt.Errorf("mesh %q: polygon %d has %d vertices, need at least 3", m.PartName, i, len(p))
		}
		for _, idx := range p {
			if int(idx) >= len(m.Points) {
				return fmt.Errorf("mesh %q: polygon %d references point %d of %d", m.PartName, i, idx, len(m.Points))
			}
		}
	}
	return nil
}

// Translate returns a copy of the mesh with every point moved by t.
func (m *Mesh) Translate(t v3.Vec) *Mesh {
	out := &Mesh{
		Points:   make([]v3.Vec, len(m.Points)),
		Polygons: m.Polygons,
		PartName: m.PartName,
	}
	for i, p := range m.Points {
		out.Points[i] = p.Add(t)
	}
	return out
}

// MeshBuilder accumulates triangles into an indexed Mesh, merging vertices
// with bit-identical positions so shared edges reference shared points.
type MeshBuilder struct {
	mesh  Mesh
	index map[v3.Vec]uint32
}

// NewMeshBuilder returns an empty builder for a mesh named partName.
func NewMeshBuilder(partName string) *MeshBuilder {
	return &MeshBuilder{
		mesh:  Mesh{PartName: partName},
		index: make(map[v3.Vec]uint32),
	}
}

// AddPolygon appends a polygon given by its vertex positions.
func (b *MeshBuilder) AddPolygon(vs ...v3.Vec) {
	poly := make([]uint32, 0, len(vs))
	for _, v := range vs {
		idx, ok := b.index[v]
		if !ok {
			idx = uint32(len(b.mesh.Points))
			b.mesh.Points = append(b.mesh.Points, v)
			b.index[v] = idx
		}
		poly = append(poly, idx)
	}
	b.mesh.Polygons = append(b.mesh.Polygons, poly)
}

// Mesh returns the accumulated mesh. The builder must not be used again.
func (b *MeshBuilder) Mesh() *Mesh {
	m := b.mesh
	b.index = nil
	return &m
}
