package c2d_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alexander-r/c2d.go"
)

func TestMakePolygonSquare(t *testing.T) {
	poly := c2d.MakePolygon([]c2d.Vec2{
		c2d.MakeVec2(0.0, 0.0),
		c2d.MakeVec2(1.0, 0.0),
		c2d.MakeVec2(1.0, 1.0),
		c2d.MakeVec2(0.0, 1.0),
		c2d.MakeVec2(0.5, 0.5),
	})

	require.Equal(t, 4, poly.Count)
	assert.True(t, poly.Validate())

	// Starts at the rightmost, lowest point and winds counter-clockwise.
	assert.Equal(t, c2d.MakeVec2(1.0, 0.0), poly.Vertices[0])
	assert.Equal(t, c2d.MakeVec2(1.0, 1.0), poly.Vertices[1])
	assert.Equal(t, c2d.MakeVec2(0.0, 1.0), poly.Vertices[2])
	assert.Equal(t, c2d.MakeVec2(0.0, 0.0), poly.Vertices[3])

	assertVec2(t, c2d.MakeVec2(1.0, 0.0), poly.Normals[0], tol)
	assertVec2(t, c2d.MakeVec2(0.0, 1.0), poly.Normals[1], tol)
	assertVec2(t, c2d.MakeVec2(-1.0, 0.0), poly.Normals[2], tol)
	assertVec2(t, c2d.MakeVec2(0.0, -1.0), poly.Normals[3], tol)

	assert.InDelta(t, 1.0, poly.Area(), tol)
	assertVec2(t, c2d.MakeVec2(0.5, 0.5), poly.Centroid(), tol)
}

func TestMakePolygonDropsCollinear(t *testing.T) {
	poly := c2d.MakePolygon([]c2d.Vec2{
		c2d.MakeVec2(0.0, 0.0),
		c2d.MakeVec2(1.0, 0.0),
		c2d.MakeVec2(2.0, 0.0),
		c2d.MakeVec2(2.0, 2.0),
		c2d.MakeVec2(0.0, 2.0),
	})

	assert.Equal(t, 4, poly.Count)
	assert.True(t, poly.Validate())
}

func TestMakePolygonDegenerate(t *testing.T) {
	assert.Equal(t, 0, c2d.MakePolygon(nil).Count)
	assert.Equal(t, 0, c2d.MakePolygon([]c2d.Vec2{{X: 0, Y: 0}, {X: 1, Y: 1}}).Count)
	assert.Equal(t, 0, c2d.MakePolygon([]c2d.Vec2{{X: 0, Y: 0}, {X: 1, Y: 1}, {X: 2, Y: 2}}).Count)
}

func TestMakePolygonTooManyPoints(t *testing.T) {
	points := make([]c2d.Vec2, c2d.MaxPolygonVertices+1)
	for i := range points {
		points[i] = c2d.MakeVec2(float64(i), float64(i*i))
	}

	assert.Panics(t, func() { c2d.MakePolygon(points) })
}

func TestHullProperties(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	for iter := 0; iter < 200; iter++ {
		n := 3 + rng.Intn(c2d.MaxPolygonVertices-2)
		seen := map[c2d.Vec2]bool{}
		points := make([]c2d.Vec2, 0, n)
		for len(points) < n {
			p := c2d.MakeVec2(float64(rng.Intn(21)-10), float64(rng.Intn(21)-10))
			if seen[p] {
				continue
			}
			seen[p] = true
			points = append(points, p)
		}

		poly := c2d.MakePolygon(points)
		if poly.Count == 0 {
			// collinear input
			continue
		}

		require.LessOrEqual(t, poly.Count, n)
		require.True(t, poly.Validate(), "points %v", points)

		// Every consecutive triple turns left.
		for i := 0; i < poly.Count; i++ {
			a := poly.Vertices[i]
			b := poly.Vertices[(i+1)%poly.Count]
			c := poly.Vertices[(i+2)%poly.Count]
			assert.Greater(t, c2d.Vec2Cross(c2d.Vec2Sub(b, a), c2d.Vec2Sub(c, b)), 0.0)
		}

		// Every input point is inside or on the hull.
		for _, p := range points {
			for i := 0; i < poly.Count; i++ {
				assert.LessOrEqual(t, poly.Face(i).Distance(p), 1.0e-9)
			}
		}
	}
}

func TestBoxPolygon(t *testing.T) {
	box := c2d.MakeBoxPolygon(2.0, 1.0)
	require.Equal(t, 4, box.Count)
	assert.True(t, box.Validate())
	assert.InDelta(t, 8.0, box.Area(), tol)

	var xf c2d.Transform
	xf.Set(c2d.MakeVec2(10.0, 0.0), 0.0)
	assert.True(t, box.TestPoint(xf, c2d.MakeVec2(11.5, 0.5)))
	assert.False(t, box.TestPoint(xf, c2d.MakeVec2(12.5, 0.5)))

	bb := box.ComputeAABB(xf)
	assertVec2(t, c2d.MakeVec2(8.0, -1.0), bb.Min, tol)
	assertVec2(t, c2d.MakeVec2(12.0, 1.0), bb.Max, tol)
}
