package sdfx

import (
	"math"
	"math/rand"
	"testing"

	"github.com/chazu/enclose/pkg/locator"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// testCells keeps marching cubes fast in tests.
const testCells = 48

func TestBox(t *testing.T) {
	k := NewWithResolution(testCells)
	box := k.Box(100, 50, 25)
	mesh, err := k.ToMesh(box)
	if err != nil {
		t.Fatalf("ToMesh failed: %v", err)
	}
	if mesh.IsEmpty() {
		t.Fatal("mesh is empty")
	}
	if mesh.VertexCount() == 0 {
		t.Fatal("expected non-zero vertex count")
	}
	if mesh.TriangleCount() != mesh.PolygonCount() {
		t.Fatalf("marching cubes should emit triangles only: %d polygons, %d triangles",
			mesh.PolygonCount(), mesh.TriangleCount())
	}
	if err := mesh.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	// Welding shares every vertex between several triangles.
	if mesh.VertexCount() >= mesh.TriangleCount()*3 {
		t.Fatalf("vertices not welded: %d vertices for %d triangles", mesh.VertexCount(), mesh.TriangleCount())
	}
}

func TestNewWithResolution(t *testing.T) {
	tests := []struct {
		cells, want int
	}{
		{32, 32},
		{0, DefaultMeshCells},
		{-5, DefaultMeshCells},
	}
	for _, tt := range tests {
		if got := NewWithResolution(tt.cells).Cells(); got != tt.want {
			t.Errorf("NewWithResolution(%d).Cells() = %d, want %d", tt.cells, got, tt.want)
		}
	}
	if New().Cells() != DefaultMeshCells {
		t.Errorf("New().Cells() = %d, want %d", New().Cells(), DefaultMeshCells)
	}
}

func TestResolutionControlsDetail(t *testing.T) {
	coarse, err := NewWithResolution(16).ToMesh(New().Sphere(10, 0))
	if err != nil {
		t.Fatalf("ToMesh(coarse) failed: %v", err)
	}
	fine, err := NewWithResolution(48).ToMesh(New().Sphere(10, 0))
	if err != nil {
		t.Fatalf("ToMesh(fine) failed: %v", err)
	}
	if fine.TriangleCount() <= coarse.TriangleCount() {
		t.Fatalf("fine mesh (%d triangles) should have more triangles than coarse (%d)",
			fine.TriangleCount(), coarse.TriangleCount())
	}
}

func TestCylinder(t *testing.T) {
	k := NewWithResolution(testCells)
	cyl := k.Cylinder(50, 10, 32)
	mesh, err := k.ToMesh(cyl)
	if err != nil {
		t.Fatalf("ToMesh failed: %v", err)
	}
	if mesh.IsEmpty() {
		t.Fatal("mesh is empty")
	}
	t.Logf("cylinder triangle count: %d", mesh.TriangleCount())
}

func TestSphere(t *testing.T) {
	k := NewWithResolution(testCells)
	s := k.Sphere(5, 0)
	min, max := s.BoundingBox()
	const tol = 0.01
	for i := 0; i < 3; i++ {
		if math.Abs(min[i]+5) > tol || math.Abs(max[i]-5) > tol {
			t.Errorf("axis %d bounds = [%f, %f], want [-5, 5]", i, min[i], max[i])
		}
	}
	if d := Distance(s, v3.Vec{}); math.Abs(d+5) > 1e-9 {
		t.Errorf("Distance(center) = %f, want -5", d)
	}
	if d := Distance(s, v3.Vec{X: 8}); math.Abs(d-3) > 1e-9 {
		t.Errorf("Distance((8,0,0)) = %f, want 3", d)
	}
}

func TestDifference(t *testing.T) {
	k := NewWithResolution(testCells)

	box := k.Box(100, 100, 100)
	boxMesh, err := k.ToMesh(box)
	if err != nil {
		t.Fatalf("ToMesh(box) failed: %v", err)
	}

	cyl := k.Translate(k.Cylinder(120, 20, 32), 50, 50, 50)
	diff := k.Difference(box, cyl)
	diffMesh, err := k.ToMesh(diff)
	if err != nil {
		t.Fatalf("ToMesh(diff) failed: %v", err)
	}
	// A box with a hole should have more triangles than a plain box.
	if diffMesh.TriangleCount() <= boxMesh.TriangleCount() {
		t.Fatalf("difference (%d triangles) should have more triangles than box (%d triangles)",
			diffMesh.TriangleCount(), boxMesh.TriangleCount())
	}
	if d := Distance(diff, v3.Vec{X: 50, Y: 50, Z: 50}); d <= 0 {
		t.Errorf("Distance(hole center) = %f, want positive", d)
	}
}

func TestUnion(t *testing.T) {
	k := NewWithResolution(testCells)
	u := k.Union(k.Box(50, 50, 50), k.Translate(k.Box(50, 50, 50), 30, 0, 0))
	min, max := u.BoundingBox()
	if math.Abs(min[0]) > 0.01 || math.Abs(max[0]-80) > 0.01 {
		t.Errorf("union X bounds = [%f, %f], want [0, 80]", min[0], max[0])
	}
	if d := Distance(u, v3.Vec{X: 65, Y: 25, Z: 25}); d >= 0 {
		t.Errorf("Distance inside second box = %f, want negative", d)
	}
}

func TestTranslate(t *testing.T) {
	k := New()
	translated := k.Translate(k.Box(10, 10, 10), 100, 200, 300)

	min, max := translated.BoundingBox()

	const tol = 0.01
	expectMin := [3]float64{100, 200, 300}
	expectMax := [3]float64{110, 210, 310}

	for i := 0; i < 3; i++ {
		if math.Abs(min[i]-expectMin[i]) > tol {
			t.Errorf("min[%d] = %f, expected ~%f", i, min[i], expectMin[i])
		}
		if math.Abs(max[i]-expectMax[i]) > tol {
			t.Errorf("max[%d] = %f, expected ~%f", i, max[i], expectMax[i])
		}
	}
}

func TestBoxMinCornerAtOrigin(t *testing.T) {
	k := New()
	box := k.Box(100, 50, 25)
	min, max := box.BoundingBox()

	const tol = 0.01
	expectMax := [3]float64{100, 50, 25}

	for i := 0; i < 3; i++ {
		if math.Abs(min[i]) > tol {
			t.Errorf("min[%d] = %f, expected 0", i, min[i])
		}
		if math.Abs(max[i]-expectMax[i]) > tol {
			t.Errorf("max[%d] = %f, expected %f", i, max[i], expectMax[i])
		}
	}
}

func TestIntersection(t *testing.T) {
	k := NewWithResolution(testCells)
	box1 := k.Box(100, 100, 100)
	box2 := k.Translate(k.Box(100, 100, 100), 50, 0, 0)
	inter := k.Intersection(box1, box2)
	if d := Distance(inter, v3.Vec{X: 75, Y: 50, Z: 50}); d >= 0 {
		t.Errorf("Distance in overlap = %f, want negative", d)
	}
	if d := Distance(inter, v3.Vec{X: 25, Y: 50, Z: 50}); d <= 0 {
		t.Errorf("Distance outside overlap = %f, want positive", d)
	}
}

func TestRotate(t *testing.T) {
	k := New()
	box := k.Translate(k.Box(100, 10, 10), -50, -5, -5)

	// A long box along X rotated 90 degrees around Z should extend along Y instead.
	rotated := k.Rotate(box, 0, 0, 90)
	min, max := rotated.BoundingBox()

	xExtent := max[0] - min[0]
	yExtent := max[1] - min[1]

	const tol = 1.0
	if math.Abs(xExtent-10) > tol {
		t.Errorf("rotated X extent = %f, expected ~10", xExtent)
	}
	if math.Abs(yExtent-100) > tol {
		t.Errorf("rotated Y extent = %f, expected ~100", yExtent)
	}
}

// TestLocatorAgreesWithDistanceField meshes a sphere with a tunnel bored
// through it and checks that the ray-parity locator and the signed
// distance field agree on points clear of the surface.
func TestLocatorAgreesWithDistanceField(t *testing.T) {
	k := NewWithResolution(testCells)
	solid := k.Difference(k.Sphere(5, 0), k.Cylinder(12, 2, 0))
	mesh, err := k.ToMesh(solid)
	if err != nil {
		t.Fatalf("ToMesh failed: %v", err)
	}
	loc, err := locator.New(mesh)
	if err != nil {
		t.Fatalf("locator.New failed: %v", err)
	}

	// Marching cubes error stays well below this band at testCells.
	const margin = 0.5
	rng := rand.New(rand.NewSource(7))
	checked := 0
	for i := 0; i < 400; i++ {
		p := v3.Vec{
			X: rng.Float64()*14 - 7,
			Y: rng.Float64()*14 - 7,
			Z: rng.Float64()*14 - 7,
		}
		d := Distance(solid, p)
		if math.Abs(d) < margin {
			continue
		}
		want := locator.Outside
		if d < 0 {
			want = locator.Inside
		}
		if got := loc.Classify(p); got != want {
			t.Errorf("Classify(%v) = %v, distance %f wants %v", p, got, d, want)
		}
		checked++
	}
	if checked < 200 {
		t.Fatalf("only %d points checked", checked)
	}
}
