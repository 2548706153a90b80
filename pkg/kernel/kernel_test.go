package kernel

import (
	"strings"
	"testing"

	v3 "github.com/deadsy/sdfx/vec/v3"
)

// --- Mesh helper method tests ---

func TestMeshVertexCount(t *testing.T) {
	tests := []struct {
		name   string
		points []v3.Vec
		want   int
	}{
		{"empty", nil, 0},
		{"one vertex", []v3.Vec{{X: 1, Y: 2, Z: 3}}, 1},
		{"four vertices", []v3.Vec{{}, {X: 1}, {X: 1, Y: 1}, {Y: 1}}, 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := &Mesh{Points: tt.points}
			if got := m.VertexCount(); got != tt.want {
				t.Errorf("VertexCount() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestMeshTriangleCount(t *testing.T) {
	tests := []struct {
		name     string
		polygons [][]uint32
		want     int
	}{
		{"empty", nil, 0},
		{"one triangle", [][]uint32{{0, 1, 2}}, 1},
		{"one quad", [][]uint32{{0, 1, 2, 3}}, 2},
		{"triangle and pentagon", [][]uint32{{0, 1, 2}, {0, 1, 2, 3, 4}}, 4},
		{"short polygon ignored", [][]uint32{{0, 1}}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := &Mesh{Polygons: tt.polygons}
			if got := m.TriangleCount(); got != tt.want {
				t.Errorf("TriangleCount() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestMeshIsEmpty(t *testing.T) {
	t.Run("empty mesh", func(t *testing.T) {
		m := &Mesh{}
		if !m.IsEmpty() {
			t.Error("IsEmpty() = false for empty mesh, want true")
		}
	})
	t.Run("points without polygons", func(t *testing.T) {
		m := &Mesh{Points: []v3.Vec{{X: 1, Y: 2, Z: 3}}}
		if !m.IsEmpty() {
			t.Error("IsEmpty() = false for mesh without polygons, want true")
		}
	})
	t.Run("non-empty mesh", func(t *testing.T) {
		m := &Mesh{Points: []v3.Vec{{}, {X: 1}, {Y: 1}}, Polygons: [][]uint32{{0, 1, 2}}}
		if m.IsEmpty() {
			t.Error("IsEmpty() = true for non-empty mesh, want false")
		}
	})
}

func TestMeshValidate(t *testing.T) {
	pts := []v3.Vec{{}, {X: 1}, {Y: 1}}
	tests := []struct {
		name     string
		polygons [][]uint32
		wantErr  string
	}{
		{"valid", [][]uint32{{0, 1, 2}}, ""},
		{"too few vertices", [][]uint32{{0, 1}}, "has 2 vertices"},
		{"index out of range", [][]uint32{{0, 1, 3}}, "references point 3"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := &Mesh{Points: pts, Polygons: tt.polygons, PartName: "p"}
			err := m.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("Validate() error = %v, want nil", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("Validate() error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestMeshBuilderWeldsVertices(t *testing.T) {
	a, b, c, d := v3.Vec{}, v3.Vec{X: 1}, v3.Vec{X: 1, Y: 1}, v3.Vec{Y: 1}
	mb := NewMeshBuilder("quad")
	mb.AddPolygon(a, b, c)
	mb.AddPolygon(a, c, d)
	m := mb.Mesh()

	if m.VertexCount() != 4 {
		t.Fatalf("VertexCount() = %d, want 4", m.VertexCount())
	}
	if m.PolygonCount() != 2 {
		t.Fatalf("PolygonCount() = %d, want 2", m.PolygonCount())
	}
	if m.Polygons[0][0] != m.Polygons[1][0] || m.Polygons[0][2] != m.Polygons[1][1] {
		t.Errorf("shared vertices not welded: %v", m.Polygons)
	}
	if got := m.Vertex(1, 2); got != d {
		t.Errorf("Vertex(1, 2) = %v, want %v", got, d)
	}
	if m.PartName != "quad" {
		t.Errorf("PartName = %q, want %q", m.PartName, "quad")
	}
	if err := m.Validate(); err != nil {
		t.Errorf("Validate() = %v", err)
	}
}

func TestMeshTranslate(t *testing.T) {
	m := &Mesh{Points: []v3.Vec{{}, {X: 1}, {Y: 1}}, Polygons: [][]uint32{{0, 1, 2}}}
	moved := m.Translate(v3.Vec{X: 10, Y: -2, Z: 0.5})
	if got := moved.Vertex(0, 1); got != (v3.Vec{X: 11, Y: -2, Z: 0.5}) {
		t.Errorf("Vertex(0, 1) = %v after translate", got)
	}
	if m.Points[1] != (v3.Vec{X: 1}) {
		t.Error("Translate mutated the source mesh")
	}
}

// --- Compile-time interface check with a stub kernel ---

// stubSolid is a minimal Solid implementation for testing.
type stubSolid struct {
	minBB, maxBB [3]float64
}

func (s *stubSolid) BoundingBox() (min, max [3]float64) {
	return s.minBB, s.maxBB
}

// stubKernel is a minimal Kernel implementation that proves the interface
// is satisfiable. All methods return trivial results.
type stubKernel struct{}

func (k *stubKernel) Box(x, y, z float64) Solid {
	return &stubSolid{
		minBB: [3]float64{0, 0, 0},
		maxBB: [3]float64{x, y, z},
	}
}

func (k *stubKernel) Cylinder(height, radius float64, _ int) Solid {
	return &stubSolid{
		minBB: [3]float64{-radius, -radius, 0},
		maxBB: [3]float64{radius, radius, height},
	}
}

func (k *stubKernel) Sphere(radius float64, _ int) Solid {
	return &stubSolid{
		minBB: [3]float64{-radius, -radius, -radius},
		maxBB: [3]float64{radius, radius, radius},
	}
}

func (k *stubKernel) Union(a, _ Solid) Solid        { return a }
func (k *stubKernel) Difference(a, _ Solid) Solid   { return a }
func (k *stubKernel) Intersection(a, _ Solid) Solid { return a }

func (k *stubKernel) Translate(s Solid, _, _, _ float64) Solid { return s }
func (k *stubKernel) Rotate(s Solid, _, _, _ float64) Solid    { return s }

func (k *stubKernel) ToMesh(_ Solid) (*Mesh, error) {
	return &Mesh{}, nil
}

// Compile-time checks that the stubs implement the interfaces.
var _ Solid = (*stubSolid)(nil)
var _ Kernel = (*stubKernel)(nil)

func TestStubKernelBoxBoundingBox(t *testing.T) {
	var k Kernel = &stubKernel{}
	s := k.Box(10, 20, 30)
	min, max := s.BoundingBox()
	if min != [3]float64{0, 0, 0} {
		t.Errorf("Box min = %v, want [0 0 0]", min)
	}
	if max != [3]float64{10, 20, 30} {
		t.Errorf("Box max = %v, want [10 20 30]", max)
	}
}

func TestStubKernelToMesh(t *testing.T) {
	var k Kernel = &stubKernel{}
	s := k.Sphere(1, 16)
	m, err := k.ToMesh(s)
	if err != nil {
		t.Fatalf("ToMesh() error = %v", err)
	}
	if m == nil {
		t.Fatal("ToMesh() returned nil mesh")
	}
	if !m.IsEmpty() {
		t.Error("stub ToMesh() should return empty mesh")
	}
}
