package locator

import (
	"math/rand"
	"testing"

	v3 "github.com/deadsy/sdfx/vec/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestIntersectTriangle(t *testing.T) {
	// Unit right triangle in the z=0 plane, viewed from below.
	b, c := vec(1, 0, 0), vec(0, 1, 0)
	up := vec(0, 0, 1)

	tests := []struct {
		name string
		p, d v3.Vec
		want Crossing
	}{
		{"interior", vec(0.25, 0.25, -1), up, Hit},
		{"short ray still crosses", vec(0.25, 0.25, -1), vec(0, 0, 0.01), Hit},
		{"outside hypotenuse", vec(0.8, 0.8, -1), up, Miss},
		{"negative xsi", vec(-0.1, 0.5, -1), up, Miss},
		{"behind origin", vec(0.25, 0.25, 1), up, Miss},
		{"parallel ray", vec(0.25, 0.25, -1), vec(1, 0, 0), Maybe},
		{"on xsi=0 edge counts", vec(0, 0.5, -1), up, Hit},
		{"on eta=0 edge does not count", vec(0.5, 0, -1), up, Miss},
		{"at shared vertex", vec(0, 0, -1), up, Miss},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IntersectTriangle(tt.p, b, c, tt.d))
		})
	}
}

func TestSharedFanEdgeCountsOnce(t *testing.T) {
	// Quad (0,0)-(1,0)-(1,1)-(0,1) in z=0 split into a fan from (0,0).
	// A ray through the diagonal must cross exactly one of the two triangles.
	quad := []v3.Vec{vec(0, 0, 0), vec(1, 0, 0), vec(1, 1, 0), vec(0, 1, 0)}
	d := vec(0, 0, 1)
	for _, s := range []float64{0.125, 0.25, 0.5, 0.75} {
		p := vec(s, s, -1)
		hits := 0
		for j := 1; j < len(quad)-1; j++ {
			b := quad[j].Sub(quad[0])
			c := quad[j+1].Sub(quad[0])
			if IntersectTriangle(p, b, c, d) == Hit {
				hits++
			}
		}
		assert.Equal(t, 1, hits, "diagonal point %v", p)
	}
}

func TestSolveCrossingMatchesLinearSolve(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	rnd := func() v3.Vec {
		return vec(rng.Float64()*2-1, rng.Float64()*2-1, rng.Float64()*2-1)
	}

	for i := 0; i < 200; i++ {
		p, b, c, d := rnd(), rnd(), rnd(), rnd()
		xsi, eta, tt, ok := solveCrossing(p, b, c, d)
		require.True(t, ok)

		// Columns b, c, -d; right-hand side p.
		a := mat.NewDense(3, 3, []float64{
			b.X, c.X, -d.X,
			b.Y, c.Y, -d.Y,
			b.Z, c.Z, -d.Z,
		})
		if mat.Cond(a, 2) > 1e3 {
			continue
		}
		var x mat.VecDense
		require.NoError(t, x.SolveVec(a, mat.NewVecDense(3, []float64{p.X, p.Y, p.Z})))

		assert.InDelta(t, x.AtVec(0), xsi, 1e-6, "xsi")
		assert.InDelta(t, x.AtVec(1), eta, 1e-6, "eta")
		assert.InDelta(t, x.AtVec(2), tt, 1e-6, "t")
	}
}

func TestCrossingString(t *testing.T) {
	assert.Equal(t, "hit", Hit.String())
	assert.Equal(t, "miss", Miss.String())
	assert.Equal(t, "maybe", Maybe.String())
}
