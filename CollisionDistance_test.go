package c2d_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alexander-r/c2d.go"
)

func translation(x, y float64) *c2d.Transform {
	xf := c2d.MakeTransform()
	xf.P.Set(x, y)
	return &xf
}

func rigid(x, y, angle float64) *c2d.Transform {
	var xf c2d.Transform
	xf.Set(c2d.MakeVec2(x, y), angle)
	return &xf
}

func TestDistanceCircles(t *testing.T) {
	a := c2d.MakeCircle(c2d.MakeVec2(0.0, 0.0), 1.0)
	b := c2d.MakeCircle(c2d.MakeVec2(5.0, 0.0), 1.0)

	raw := c2d.GJK(a, nil, b, nil, false, nil)
	assert.InDelta(t, 5.0, raw.Distance, tol)
	assert.False(t, raw.Hit)

	out := c2d.GJK(a, nil, b, nil, true, nil)
	assert.InDelta(t, 3.0, out.Distance, tol)
	assertVec2(t, c2d.MakeVec2(1.0, 0.0), out.PointA, tol)
	assertVec2(t, c2d.MakeVec2(4.0, 0.0), out.PointB, tol)
}

func TestDistanceRadiiTouching(t *testing.T) {
	a := c2d.MakeCircle(c2d.MakeVec2(0.0, 0.0), 1.0)
	b := c2d.MakeCircle(c2d.MakeVec2(1.5, 0.0), 1.0)

	out := c2d.GJK(a, nil, b, nil, true, nil)
	assert.Equal(t, 0.0, out.Distance)
	assert.True(t, out.Hit)
	assertVec2(t, c2d.MakeVec2(0.75, 0.0), out.PointA, tol)
	assert.Equal(t, out.PointA, out.PointB)
}

func TestDistanceBoxes(t *testing.T) {
	a := c2d.MakeAABB(c2d.MakeVec2(0.0, 0.0), c2d.MakeVec2(1.0, 1.0))
	b := c2d.MakeBoxPolygon(0.5, 0.5)

	out := c2d.GJK(a, nil, b, translation(3.0, 0.5), false, nil)
	assert.InDelta(t, 1.5, out.Distance, tol)
	assert.InDelta(t, out.Distance, c2d.Vec2Distance(out.PointA, out.PointB), tol)
	assert.InDelta(t, 1.0, out.PointA.X, tol)
	assert.InDelta(t, 2.5, out.PointB.X, tol)

	overlap := c2d.GJK(a, nil, b, translation(1.2, 0.5), false, nil)
	assert.InDelta(t, 0.0, overlap.Distance, 1.0e-9)
}

func TestDistanceCapsuleSegments(t *testing.T) {
	a := c2d.MakeCapsule(c2d.MakeVec2(-1.0, 0.0), c2d.MakeVec2(1.0, 0.0), 0.25)
	b := c2d.MakeCapsule(c2d.MakeVec2(3.0, -1.0), c2d.MakeVec2(3.0, 1.0), 0.25)

	out := c2d.GJK(a, nil, b, nil, false, nil)
	assert.InDelta(t, 2.0, out.Distance, tol)
	assertVec2(t, c2d.MakeVec2(1.0, 0.0), out.PointA, tol)
	assertVec2(t, c2d.MakeVec2(3.0, 0.0), out.PointB, tol)

	rounded := c2d.GJK(a, nil, b, nil, true, nil)
	assert.InDelta(t, 1.5, rounded.Distance, tol)
}

func TestDistanceWarmStart(t *testing.T) {
	a := c2d.MakeBoxPolygon(1.0, 1.0)
	b := c2d.MakePolygon([]c2d.Vec2{
		c2d.MakeVec2(0.0, 0.0),
		c2d.MakeVec2(2.0, -1.0),
		c2d.MakeVec2(2.0, 1.0),
	})

	var cache c2d.GJKCache
	xfB := rigid(3.0, 0.2, 0.1)

	cold := c2d.GJK(a, nil, b, xfB, false, &cache)
	require.Greater(t, cache.Count, 0)

	warm := c2d.GJK(a, nil, b, xfB, false, &cache)
	assert.InDelta(t, cold.Distance, warm.Distance, 1.0e-9)
	assert.LessOrEqual(t, warm.Iterations, cold.Iterations)

	// A small step still reuses the cache and agrees with a cold query.
	moved := rigid(3.05, 0.25, 0.12)
	stepped := c2d.GJK(a, nil, b, moved, false, &cache)
	fresh := c2d.GJK(a, nil, b, moved, false, nil)
	assert.InDelta(t, fresh.Distance, stepped.Distance, 1.0e-9)
}

func TestDistanceCacheFlushedOnBadIndices(t *testing.T) {
	a := c2d.MakeCircle(c2d.MakeVec2(0.0, 0.0), 1.0)
	b := c2d.MakeCircle(c2d.MakeVec2(4.0, 0.0), 1.0)

	cache := c2d.GJKCache{Count: 2, IndexA: [3]int{5, 6}, IndexB: [3]int{7, 8}, Metric: 1.0, Div: 1.0}
	out := c2d.GJK(a, nil, b, nil, true, &cache)
	assert.InDelta(t, 2.0, out.Distance, tol)
	assert.Equal(t, 1, cache.Count)
}

func randomPolygon(rng *rand.Rand) c2d.Polygon {
	for {
		n := 3 + rng.Intn(c2d.MaxPolygonVertices-2)
		points := make([]c2d.Vec2, n)
		for i := range points {
			points[i] = c2d.MakeVec2(rng.Float64()*2.0-1.0, rng.Float64()*2.0-1.0)
		}
		poly := c2d.MakePolygon(points)
		if poly.Count >= 3 && poly.Area() > 0.05 {
			return poly
		}
	}
}

func TestDistanceAgreesWithSeparatingAxes(t *testing.T) {
	rng := rand.New(rand.NewSource(11))

	for iter := 0; iter < 300; iter++ {
		a := randomPolygon(rng)
		b := randomPolygon(rng)
		xfA := rigid(rng.Float64()*2.0-1.0, rng.Float64()*2.0-1.0, rng.Float64()*6.0)
		xfB := rigid(rng.Float64()*2.0-1.0, rng.Float64()*2.0-1.0, rng.Float64()*6.0)

		out := c2d.GJK(a, xfA, b, xfB, false, nil)
		require.GreaterOrEqual(t, out.Distance, 0.0)
		assert.InDelta(t, out.Distance, c2d.Vec2Distance(out.PointA, out.PointB), 1.0e-9)

		m := c2d.Collide(a, xfA, b, xfB)
		if out.Distance > 1.0e-5 {
			assert.Equal(t, 0, m.PointCount, "iteration %d", iter)
		}
		if m.PointCount > 0 && m.Depths[0] > 1.0e-5 {
			assert.InDelta(t, 0.0, out.Distance, 1.0e-5, "iteration %d", iter)
		}
	}
}
