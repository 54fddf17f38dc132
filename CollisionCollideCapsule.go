package c2d

// closestPointOnSegment returns the point of segment A-B nearest to Q,
// choosing between the vertex regions and the edge region with
// barycentric coordinates.
func closestPointOnSegment(A, B, Q Vec2) Vec2 {
	e := Vec2Sub(B, A)

	// Barycentric coordinates
	u := Vec2Dot(e, Vec2Sub(B, Q))
	v := Vec2Dot(e, Vec2Sub(Q, A))

	// Region A
	if v <= 0.0 {
		return A
	}

	// Region B
	if u <= 0.0 {
		return B
	}

	// Region AB
	den := Vec2Dot(e, e)
	return Vec2MulScalar(1.0/den, Vec2Add(Vec2MulScalar(u, A), Vec2MulScalar(v, B)))
}

// Compute the collision manifold between two capsules.
func CollideCapsules(manifold *Manifold, capsuleA Capsule, capsuleB Capsule) {
	manifold.PointCount = 0

	out := segmentDistance(MakeDistanceProxy(capsuleA), MakeTransform(), MakeDistanceProxy(capsuleB), MakeTransform())
	radius := capsuleA.R + capsuleB.R
	if out.Distance >= radius {
		return
	}

	var n Vec2
	if out.Distance < GJKEpsilon {
		// The segments cross; fall back to A's axis.
		n = Vec2Sub(capsuleA.B, capsuleA.A).Skew().Normalized()
	} else {
		n = Vec2Sub(out.PointB, out.PointA).Normalized()
	}

	surfaceA := Vec2Add(out.PointA, Vec2MulScalar(capsuleA.R, n))
	surfaceB := Vec2Sub(out.PointB, Vec2MulScalar(capsuleB.R, n))
	manifold.addPoint(contactMidpoint(surfaceA, surfaceB), radius-out.Distance)
	manifold.Normal = n
}

// Compute the collision manifold between a capsule and a polygon placed
// at xfB. Deep contacts are solved in the polygon frame by treating the
// capsule as a segment and clipping, shallow ones come from GJK.
func CollideCapsuleAndPolygon(manifold *Manifold, capsuleA Capsule, polygonB Polygon, xfB Transform) {
	manifold.PointCount = 0

	out := segmentDistance(MakeDistanceProxy(capsuleA), MakeTransform(), MakeDistanceProxy(polygonB), xfB)

	if out.Distance >= GJKEpsilon {
		if out.Distance >= capsuleA.R {
			return
		}
		n := Vec2MulScalar(1.0/out.Distance, Vec2Sub(out.PointB, out.PointA))
		surfaceA := Vec2Add(out.PointA, Vec2MulScalar(capsuleA.R, n))
		manifold.addPoint(contactMidpoint(surfaceA, out.PointB), capsuleA.R-out.Distance)
		manifold.Normal = n
		return
	}

	// Deep. Work in the polygon frame.
	a := TransformVec2MulT(xfB, capsuleA.A)
	b := TransformVec2MulT(xfB, capsuleA.B)
	ab := Vec2Sub(a, b).Normalized()

	// Capsule axes. Each plane runs along the segment and faces one side.
	h0 := MakePlane(ab.CW(), a)
	h1 := MakePlane(ab.Skew(), a)
	s0, s1 := -MaxFloat, -MaxFloat
	if ab.LengthSquared() > 0.0 {
		proxyB := MakeDistanceProxy(polygonB)
		s0 = h0.Distance(proxyB.Vertices[proxyB.GetSupport(h0.N.Negate())])
		s1 = h1.Distance(proxyB.Vertices[proxyB.GetSupport(h1.N.Negate())])
	}

	// Polygon axes, measured at the deeper capsule endpoint.
	separation := -MaxFloat
	index := 0
	for i := 0; i < polygonB.Count; i++ {
		h := polygonB.Face(i)
		da := Vec2Dot(a, h.N.Negate())
		db := Vec2Dot(b, h.N.Negate())

		var d float64
		if da > db {
			d = h.Distance(a)
		} else {
			d = h.Distance(b)
		}

		if d > separation {
			separation = d
			index = i
		}
	}

	switch {
	case s0 > separation && s0 >= s1:
		seg := incidentEdge(&polygonB, MakeTransform(), h0.N)
		h, ok := sidePlanes(&seg, b, a)
		if !ok {
			return
		}
		keepDeep(manifold, seg, h, capsuleA.R, 0.0)

	case s1 > separation:
		seg := incidentEdge(&polygonB, MakeTransform(), h1.N)
		h, ok := sidePlanes(&seg, a, b)
		if !ok {
			return
		}
		keepDeep(manifold, seg, h, capsuleA.R, 0.0)

	default:
		seg := [2]Vec2{a, b}
		h, ok := sidePlanesFromPolygon(&seg, MakeTransform(), &polygonB, index)
		if !ok {
			return
		}
		keepDeep(manifold, seg, h, 0.0, capsuleA.R)
		manifold.Normal = manifold.Normal.Negate()
	}

	manifold.transform(xfB)
}

func TestOverlapCapsules(capsuleA Capsule, capsuleB Capsule) bool {
	out := segmentDistance(MakeDistanceProxy(capsuleA), MakeTransform(), MakeDistanceProxy(capsuleB), MakeTransform())
	return out.Distance < capsuleA.R+capsuleB.R
}
