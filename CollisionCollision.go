package c2d

// A manifold for two touching convex shapes. Normal is a unit vector
// pointing from shape A toward shape B; moving B along Normal by Depths[i]
// resolves contact i. Each point sits halfway through the overlap, so the
// same pair gives the same points in either argument order.
// PointCount == 0 means no contact; the other fields are undefined then.
type Manifold struct {
	PointCount int
	Depths     [MaxManifoldPoints]float64
	Points     [MaxManifoldPoints]Vec2
	Normal     Vec2
}

// Flip reverses the manifold to describe (B, A) instead of (A, B).
func (m Manifold) Flip() Manifold {
	m.Normal = m.Normal.Negate()
	return m
}

func (m *Manifold) addPoint(p Vec2, depth float64) {
	m.Points[m.PointCount] = p
	m.Depths[m.PointCount] = depth
	m.PointCount++
}

// Map a manifold computed in the local frame of xf into world space.
func (m *Manifold) transform(xf Transform) {
	for i := 0; i < m.PointCount; i++ {
		m.Points[i] = TransformVec2Mul(xf, m.Points[i])
	}
	m.Normal = RotVec2Mul(xf.Q, m.Normal)
}

// contactMidpoint is the middle of the overlap between the surface point
// of A along n and the surface point of B along -n.
func contactMidpoint(surfaceA, surfaceB Vec2) Vec2 {
	return Vec2MulScalar(0.5, Vec2Add(surfaceA, surfaceB))
}

// Sutherland-Hodgman clipping of a segment against one plane. Points
// behind the plane are kept and a crossing adds the intersection point.
// Returns the number of output points.
func clipSegmentToPlane(vOut *[2]Vec2, vIn [2]Vec2, h Plane) int {
	// Start with no output points
	count := 0

	// Calculate the distance of end points to the line
	distance0 := h.Distance(vIn[0])
	distance1 := h.Distance(vIn[1])

	// If the points are behind the plane
	if distance0 <= 0.0 {
		vOut[count] = vIn[0]
		count++
	}

	if distance1 <= 0.0 {
		vOut[count] = vIn[1]
		count++
	}

	// If the points are on different sides of the plane
	if distance0*distance1 < 0.0 {
		// Find intersection point of edge and plane
		vOut[count] = h.Intersect(vIn[0], vIn[1], distance0, distance1)
		count++
	}

	return count
}

// clipToEdgeSpan clips seg against the two planes bounding the edge ra-rb.
// It fails when the segment falls outside the edge span.
func clipToEdgeSpan(seg *[2]Vec2, ra, rb Vec2) bool {
	in := Vec2Sub(rb, ra).Normalized()
	left := MakePlane(in.Negate(), ra)
	right := MakePlane(in, rb)

	var clipped [2]Vec2
	if clipSegmentToPlane(&clipped, *seg, left) < 2 {
		return false
	}
	return clipSegmentToPlane(seg, clipped, right) == 2
}

// sidePlanes clips seg to the reference edge ra-rb and returns the face
// plane on the right hand side of the edge.
func sidePlanes(seg *[2]Vec2, ra, rb Vec2) (Plane, bool) {
	if !clipToEdgeSpan(seg, ra, rb) {
		return Plane{}, false
	}
	return MakePlane(Vec2Sub(rb, ra).Normalized().CW(), ra), true
}

// sidePlanesFromPolygon uses edge e of poly, placed at xf, as the
// reference edge. The returned face plane is mapped by xf.
func sidePlanesFromPolygon(seg *[2]Vec2, xf Transform, poly *Polygon, e int) (Plane, bool) {
	e2 := e + 1
	if e2 == poly.Count {
		e2 = 0
	}
	ra := TransformVec2Mul(xf, poly.Vertices[e])
	rb := TransformVec2Mul(xf, poly.Vertices[e2])
	if !clipToEdgeSpan(seg, ra, rb) {
		return Plane{}, false
	}
	return PlaneMul(xf, poly.Face(e)), true
}

// keepDeep turns the clipped points that lie behind the reference plane h
// into contacts. refRadius and incRadius are the rounding radii of the
// reference and incident shapes, which widen the overlap on each side.
func keepDeep(m *Manifold, seg [2]Vec2, h Plane, refRadius, incRadius float64) {
	m.PointCount = 0
	for i := 0; i < 2; i++ {
		p := seg[i]
		d := h.Distance(p)
		if d <= 0.0 {
			refSurface := Vec2Add(p, Vec2MulScalar(refRadius-d, h.N))
			incSurface := Vec2Sub(p, Vec2MulScalar(incRadius, h.N))
			m.addPoint(contactMidpoint(refSurface, incSurface), refRadius+incRadius-d)
		}
	}
	m.Normal = h.N
}

// incidentEdge finds the edge of poly whose normal is most anti-parallel
// to n, which is given in the local frame of poly. The edge is returned in
// the frame of xf.
func incidentEdge(poly *Polygon, xf Transform, n Vec2) [2]Vec2 {
	index := 0
	minDot := MaxFloat
	for i := 0; i < poly.Count; i++ {
		dot := Vec2Dot(n, poly.Normals[i])
		if dot < minDot {
			minDot = dot
			index = i
		}
	}

	i2 := index + 1
	if i2 == poly.Count {
		i2 = 0
	}

	return [2]Vec2{
		TransformVec2Mul(xf, poly.Vertices[index]),
		TransformVec2Mul(xf, poly.Vertices[i2]),
	}
}

// Find the max separation between polyA and polyB using the face normals
// of polyA. Each face is mapped into the frame of polyB.
func findMaxSeparation(polyA *Polygon, xfA Transform, polyB *Polygon, xfB Transform) (float64, int) {
	aInB := TransformMulT(xfB, xfA)
	proxyB := MakeDistanceProxy(*polyB)

	bestIndex := 0
	maxSeparation := -MaxFloat
	for i := 0; i < polyA.Count; i++ {
		h := PlaneMul(aInB, polyA.Face(i))

		// Deepest point of B along the face normal.
		support := proxyB.GetSupport(h.N.Negate())
		d := h.Distance(proxyB.Vertices[support])
		if d > maxSeparation {
			maxSeparation = d
			bestIndex = i
		}
	}

	return maxSeparation, bestIndex
}
