package c2d_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alexander-r/c2d.go"
)

var still = c2d.MakeVec2(0.0, 0.0)

func TestTimeOfImpactCircles(t *testing.T) {
	a := c2d.MakeCircle(c2d.MakeVec2(0.0, 0.0), 1.0)
	b := c2d.MakeCircle(c2d.MakeVec2(10.0, 0.0), 1.0)

	out := c2d.TimeOfImpact(a, nil, still, b, nil, c2d.MakeVec2(-16.0, 0.0), true)
	require.True(t, out.Hit)
	assert.InDelta(t, 0.5, out.TOI, 1.0e-6)
	assertVec2(t, c2d.MakeVec2(1.0, 0.0), out.Normal, 1.0e-6)
	assertVec2(t, c2d.MakeVec2(1.0, 0.0), out.Point, 1.0e-6)

	// Too slow to close the gap within the step.
	slow := c2d.TimeOfImpact(a, nil, still, b, nil, c2d.MakeVec2(-4.0, 0.0), true)
	assert.False(t, slow.Hit)
	assert.Equal(t, 1.0, slow.TOI)

	// Moving apart.
	apart := c2d.TimeOfImpact(a, nil, still, b, nil, c2d.MakeVec2(4.0, 0.0), true)
	assert.False(t, apart.Hit)
}

func TestTimeOfImpactStartsOverlapped(t *testing.T) {
	a := c2d.MakeCircle(c2d.MakeVec2(0.0, 0.0), 1.0)
	b := c2d.MakeCircle(c2d.MakeVec2(1.5, 0.0), 1.0)
	require.True(t, c2d.Check(a, nil, b, nil))

	// Already touching at t = 0 reads like a miss.
	out := c2d.TimeOfImpact(a, nil, still, b, nil, c2d.MakeVec2(-4.0, 0.0), true)
	assert.False(t, out.Hit)
	assert.Equal(t, 1.0, out.TOI)
	assert.Equal(t, 0, out.Iterations)
}

func TestTimeOfImpactBoxes(t *testing.T) {
	a := unitBox()
	b := c2d.MakeAABB(c2d.MakeVec2(4.0, -1.0), c2d.MakeVec2(6.0, 1.0))

	out := c2d.TimeOfImpact(a, nil, still, b, nil, c2d.MakeVec2(-6.0, 0.0), false)
	require.True(t, out.Hit)
	assert.InDelta(t, 0.5, out.TOI, 1.0e-6)
	assertVec2(t, c2d.MakeVec2(1.0, 0.0), out.Normal, 1.0e-6)
	assertVec2(t, c2d.MakeVec2(1.0, -1.0), out.Point, 1.0e-6)
}

func TestTimeOfImpactCircleOntoBox(t *testing.T) {
	ball := c2d.MakeCircle(c2d.MakeVec2(0.0, 5.0), 0.5)
	floor := c2d.MakeAABB(c2d.MakeVec2(-1.0, -1.0), c2d.MakeVec2(1.0, 0.0))

	out := c2d.TimeOfImpact(ball, nil, c2d.MakeVec2(0.0, -10.0), floor, nil, still, true)
	require.True(t, out.Hit)
	assert.InDelta(t, 0.45, out.TOI, 1.0e-6)
	assertVec2(t, c2d.MakeVec2(0.0, -1.0), out.Normal, 1.0e-6)
	assertVec2(t, c2d.MakeVec2(0.0, 0.0), out.Point, 1.0e-6)
}

func TestTimeOfImpactNeverPenetrates(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	hits := 0

	for iter := 0; iter < 100; iter++ {
		a := randomPolygon(rng)
		b := randomPolygon(rng)
		xfA := rigid(-3.0, rng.Float64()-0.5, rng.Float64()*6.0)
		xfB := rigid(3.0, rng.Float64()-0.5, rng.Float64()*6.0)
		vB := c2d.MakeVec2(-8.0, rng.Float64()-0.5)

		out := c2d.TimeOfImpact(a, xfA, still, b, xfB, vB, false)
		if !out.Hit {
			continue
		}
		hits++

		require.GreaterOrEqual(t, out.TOI, 0.0)
		require.LessOrEqual(t, out.TOI, 1.0)
		assert.InDelta(t, 1.0, out.Normal.Length(), 1.0e-9)

		// Just before the impact the shapes are still apart, and at the
		// impact they are about to touch.
		before := shifted(xfB, c2d.Vec2MulScalar(0.99*out.TOI, vB))
		assert.Greater(t, c2d.GJK(a, xfA, b, before, false, nil).Distance, 0.0, "iteration %d", iter)

		at := shifted(xfB, c2d.Vec2MulScalar(out.TOI, vB))
		assert.Less(t, c2d.GJK(a, xfA, b, at, false, nil).Distance, 0.05, "iteration %d", iter)
	}

	assert.Greater(t, hits, 50)
}
