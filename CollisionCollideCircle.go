package c2d

import (
	"math"
)

// Compute the collision manifold between two circles.
func CollideCircles(manifold *Manifold, circleA Circle, circleB Circle) {
	manifold.PointCount = 0

	d := Vec2Sub(circleB.P, circleA.P)
	distSqr := Vec2Dot(d, d)
	radius := circleA.R + circleB.R
	if distSqr >= radius*radius {
		return
	}

	l := math.Sqrt(distSqr)
	n := MakeVec2(0.0, 1.0)
	if l != 0.0 {
		n = Vec2MulScalar(1.0/l, d)
	}

	surfaceA := Vec2Add(circleA.P, Vec2MulScalar(circleA.R, n))
	surfaceB := Vec2Sub(circleB.P, Vec2MulScalar(circleB.R, n))
	manifold.addPoint(contactMidpoint(surfaceA, surfaceB), radius-l)
	manifold.Normal = n
}

// Compute the collision manifold between a circle and a box.
func CollideCircleAndAABB(manifold *Manifold, circleA Circle, boxB AABB) {
	manifold.PointCount = 0

	L := Vec2Clamp(circleA.P, boxB.Min, boxB.Max)
	ab := Vec2Sub(L, circleA.P)
	d2 := Vec2Dot(ab, ab)
	r2 := circleA.R * circleA.R
	if d2 >= r2 {
		return
	}

	// Shallow: the center is outside the box, the clamped point is the
	// nearest point of the box.
	if d2 != 0.0 {
		d := math.Sqrt(d2)
		n := Vec2MulScalar(1.0/d, ab)
		surfaceA := Vec2Add(circleA.P, Vec2MulScalar(circleA.R, n))
		manifold.addPoint(contactMidpoint(surfaceA, L), circleA.R-d)
		manifold.Normal = n
		return
	}

	// Deep: push out through the face with the smallest overlap.
	mid := boxB.GetCenter()
	e := boxB.GetExtents()
	d := Vec2Sub(circleA.P, mid)
	absD := Vec2Abs(d)

	xOverlap := e.X - absD.X
	yOverlap := e.Y - absD.Y

	var depth float64
	var n Vec2
	if xOverlap < yOverlap {
		depth = xOverlap
		n.Set(1.0, 0.0)
		if d.X >= 0.0 {
			n = n.Negate()
		}
	} else {
		depth = yOverlap
		n.Set(0.0, 1.0)
		if d.Y >= 0.0 {
			n = n.Negate()
		}
	}

	surfaceA := Vec2Add(circleA.P, Vec2MulScalar(circleA.R, n))
	surfaceB := Vec2Sub(circleA.P, Vec2MulScalar(depth, n))
	manifold.addPoint(contactMidpoint(surfaceA, surfaceB), circleA.R+depth)
	manifold.Normal = n
}

// Compute the collision manifold between a circle and a capsule using the
// distance between the circle center and the capsule segment.
func CollideCircleAndCapsule(manifold *Manifold, circleA Circle, capsuleB Capsule) {
	manifold.PointCount = 0

	out := segmentDistance(MakeDistanceProxy(circleA), MakeTransform(), MakeDistanceProxy(capsuleB), MakeTransform())
	radius := circleA.R + capsuleB.R
	if out.Distance >= radius {
		return
	}

	var n Vec2
	if out.Distance < GJKEpsilon {
		n = Vec2Sub(capsuleB.B, capsuleB.A).Skew().Normalized()
	} else {
		n = Vec2Sub(out.PointB, out.PointA).Normalized()
	}

	surfaceA := Vec2Add(out.PointA, Vec2MulScalar(circleA.R, n))
	surfaceB := Vec2Sub(out.PointB, Vec2MulScalar(capsuleB.R, n))
	manifold.addPoint(contactMidpoint(surfaceA, surfaceB), radius-out.Distance)
	manifold.Normal = n
}

// Compute the collision manifold between a circle and a polygon placed
// at xfB.
func CollideCircleAndPolygon(manifold *Manifold, circleA Circle, polygonB Polygon, xfB Transform) {
	manifold.PointCount = 0

	out := segmentDistance(MakeDistanceProxy(circleA), MakeTransform(), MakeDistanceProxy(polygonB), xfB)

	// Shallow: the center is outside the polygon, use the closest points.
	if out.Distance >= GJKEpsilon {
		if out.Distance >= circleA.R {
			return
		}
		n := Vec2MulScalar(1.0/out.Distance, Vec2Sub(out.PointB, out.PointA))
		surfaceA := Vec2Add(circleA.P, Vec2MulScalar(circleA.R, n))
		manifold.addPoint(contactMidpoint(surfaceA, out.PointB), circleA.R-out.Distance)
		manifold.Normal = n
		return
	}

	// Deep: the center is inside, use the face of minimum penetration.
	local := TransformVec2MulT(xfB, circleA.P)
	separation := -MaxFloat
	normalIndex := 0
	for i := 0; i < polygonB.Count; i++ {
		s := polygonB.Face(i).Distance(local)
		if s > circleA.R {
			// Early out.
			return
		}
		if s > separation {
			separation = s
			normalIndex = i
		}
	}

	face := polygonB.Face(normalIndex)
	n := RotVec2Mul(xfB.Q, face.N.Negate())
	surfaceA := Vec2Add(circleA.P, Vec2MulScalar(circleA.R, n))
	surfaceB := TransformVec2Mul(xfB, face.Project(local))
	manifold.addPoint(contactMidpoint(surfaceA, surfaceB), circleA.R-separation)
	manifold.Normal = n
}

///////////////////////////////////////////////////////////////////////////////
// Overlap tests
///////////////////////////////////////////////////////////////////////////////

func TestOverlapCircles(circleA Circle, circleB Circle) bool {
	r := circleA.R + circleB.R
	return Vec2DistanceSquared(circleA.P, circleB.P) < r*r
}

func TestOverlapCircleAndAABB(circleA Circle, boxB AABB) bool {
	L := Vec2Clamp(circleA.P, boxB.Min, boxB.Max)
	return Vec2DistanceSquared(circleA.P, L) < circleA.R*circleA.R
}

func TestOverlapCircleAndCapsule(circleA Circle, capsuleB Capsule) bool {
	p := closestPointOnSegment(capsuleB.A, capsuleB.B, circleA.P)
	r := circleA.R + capsuleB.R
	return Vec2DistanceSquared(circleA.P, p) < r*r
}

// segmentDistance runs GJK between two proxies without their radii.
func segmentDistance(proxyA DistanceProxy, xfA Transform, proxyB DistanceProxy, xfB Transform) DistanceOutput {
	input := DistanceInput{
		ProxyA:     proxyA,
		ProxyB:     proxyB,
		TransformA: xfA,
		TransformB: xfB,
		UseRadii:   false,
	}
	var output DistanceOutput
	Distance(&output, nil, &input)
	return output
}
