package locator

import (
	"math"

	v3 "github.com/deadsy/sdfx/vec/v3"
)

func vec(x, y, z float64) v3.Vec {
	return v3.Vec{X: x, Y: y, Z: z}
}

// unitCube returns the cube [0,1]^3 as six quads.
func unitCube() Polygons {
	return Polygons{
		{vec(0, 0, 0), vec(0, 1, 0), vec(1, 1, 0), vec(1, 0, 0)},
		{vec(0, 0, 1), vec(1, 0, 1), vec(1, 1, 1), vec(0, 1, 1)},
		{vec(0, 0, 0), vec(1, 0, 0), vec(1, 0, 1), vec(0, 0, 1)},
		{vec(0, 1, 0), vec(0, 1, 1), vec(1, 1, 1), vec(1, 1, 0)},
		{vec(0, 0, 0), vec(0, 0, 1), vec(0, 1, 1), vec(0, 1, 0)},
		{vec(1, 0, 0), vec(1, 1, 0), vec(1, 1, 1), vec(1, 0, 1)},
	}
}

// tetrahedron returns the corner tetrahedron of the unit cube.
func tetrahedron() Polygons {
	o, x, y, z := vec(0, 0, 0), vec(1, 0, 0), vec(0, 1, 0), vec(0, 0, 1)
	return Polygons{
		{o, y, x},
		{o, x, z},
		{o, z, y},
		{x, y, z},
	}
}

// uvSphere approximates the unit sphere with nu segments around the Z axis
// and nv rings from pole to pole. Rings touching a pole are triangles, the
// rest are quads.
func uvSphere(nu, nv int) Polygons {
	at := func(i, j int) v3.Vec {
		switch i {
		case 0:
			return vec(0, 0, 1)
		case nv:
			return vec(0, 0, -1)
		}
		th := math.Pi * float64(i) / float64(nv)
		ph := 2 * math.Pi * float64(j%nu) / float64(nu)
		return vec(math.Sin(th)*math.Cos(ph), math.Sin(th)*math.Sin(ph), math.Cos(th))
	}
	var polys Polygons
	for i := 0; i < nv; i++ {
		for j := 0; j < nu; j++ {
			a, b, c, d := at(i, j), at(i+1, j), at(i+1, j+1), at(i, j+1)
			switch i {
			case 0:
				polys = append(polys, []v3.Vec{a, b, c})
			case nv - 1:
				polys = append(polys, []v3.Vec{a, b, d})
			default:
				polys = append(polys, []v3.Vec{a, b, c, d})
			}
		}
	}
	return polys
}

// prism returns a right prism over a regular n-gon of unit circumradius,
// from z=0 to z=1. With split set the two caps are emitted as explicit
// fan triangles instead of single n-gons.
func prism(n int, split bool) Polygons {
	ring := func(z float64) []v3.Vec {
		r := make([]v3.Vec, n)
		for k := range r {
			a := 2 * math.Pi * float64(k) / float64(n)
			r[k] = vec(math.Cos(a), math.Sin(a), z)
		}
		return r
	}
	bot, top := ring(0), ring(1)
	botRev := make([]v3.Vec, n)
	for k := range bot {
		botRev[k] = bot[n-1-k]
	}

	var polys Polygons
	for _, face := range [][]v3.Vec{botRev, top} {
		if !split {
			polys = append(polys, face)
			continue
		}
		for j := 1; j < n-1; j++ {
			polys = append(polys, []v3.Vec{face[0], face[j], face[j+1]})
		}
	}
	for k := 0; k < n; k++ {
		polys = append(polys, []v3.Vec{bot[k], bot[(k+1)%n], top[(k+1)%n], top[k]})
	}
	return polys
}

func translate(m Polygons, t v3.Vec) Polygons {
	out := make(Polygons, len(m))
	for i, poly := range m {
		out[i] = make([]v3.Vec, len(poly))
		for j, v := range poly {
			out[i][j] = v.Add(t)
		}
	}
	return out
}

func centroid(m Polygons) v3.Vec {
	var sum v3.Vec
	n := 0
	for _, poly := range m {
		for _, v := range poly {
			sum = sum.Add(v)
			n++
		}
	}
	return sum.MulScalar(1 / float64(n))
}

// countingMesh wraps a Mesh and counts vertex reads.
type countingMesh struct {
	Mesh
	reads int
}

func (m *countingMesh) Vertex(i, j int) v3.Vec {
	m.reads++
	return m.Mesh.Vertex(i, j)
}
