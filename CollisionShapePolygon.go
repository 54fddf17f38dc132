package c2d

// A solid convex polygon. Vertices are counter-clockwise and Normals[i] is
// the outward unit normal of the edge Vertices[i] -> Vertices[i+1].
// Build polygons with MakePolygon so the two arrays agree.
type Polygon struct {
	Count    int
	Vertices [MaxPolygonVertices]Vec2
	Normals  [MaxPolygonVertices]Vec2
}

func (Polygon) GetType() ShapeType { return ShapePolygon }
func (Polygon) isShape()           {}

// MakePolygon wraps points in their convex hull and computes the face
// normals. More than MaxPolygonVertices points is a programming error.
// Fewer than three non-collinear points give a polygon with Count 0.
func MakePolygon(points []Vec2) Polygon {
	var poly Polygon
	hull, count := ComputeHull(points)
	poly.Count = count
	poly.Vertices = hull
	ComputeNormals(poly.Vertices[:], poly.Normals[:], poly.Count)
	return poly
}

// Build vertices to represent an axis-aligned box centered on the local
// origin.
func MakeBoxPolygon(hx, hy float64) Polygon {
	return AABB{Min: MakeVec2(-hx, -hy), Max: MakeVec2(hx, hy)}.ToPolygon()
}

// ToPolygon returns the box as a four sided polygon. Corners and normals
// are written directly since they are known.
func (bb AABB) ToPolygon() Polygon {
	var poly Polygon
	poly.Count = 4
	c := bb.Corners()
	copy(poly.Vertices[:], c[:])
	poly.Normals[0].Set(0.0, -1.0)
	poly.Normals[1].Set(1.0, 0.0)
	poly.Normals[2].Set(0.0, 1.0)
	poly.Normals[3].Set(-1.0, 0.0)
	return poly
}

// ComputeHull finds the convex hull of points by gift wrapping. The
// result is counter-clockwise and starts at the rightmost point. Points
// collinear with a hull edge are dropped.
func ComputeHull(points []Vec2) (hull [MaxPolygonVertices]Vec2, count int) {
	n := len(points)
	Assert(n <= MaxPolygonVertices)
	if n < 3 {
		return hull, 0
	}

	right := 0
	xmax := points[0].X
	for i := 1; i < n; i++ {
		x := points[i].X
		if x > xmax || (x == xmax && points[i].Y < points[right].Y) {
			right = i
			xmax = x
		}
	}

	var indices [MaxPolygonVertices]int
	index := right

	for count < n {
		indices[count] = index
		next := 0

		for i := 1; i < n; i++ {
			if next == index {
				next = i
				continue
			}

			e1 := Vec2Sub(points[next], points[indices[count]])
			e2 := Vec2Sub(points[i], points[indices[count]])
			c := Vec2Cross(e1, e2)
			if c < 0.0 {
				next = i
			}
			if c == 0.0 && e2.LengthSquared() > e1.LengthSquared() {
				next = i
			}
		}

		count++
		index = next
		if next == right {
			break
		}
	}

	for i := 0; i < count; i++ {
		hull[i] = points[indices[i]]
	}

	if count < 3 {
		// all points collinear or coincident
		return hull, 0
	}

	return hull, count
}

// ComputeNormals writes the outward unit normal of every edge of a
// counter-clockwise loop.
func ComputeNormals(vertices []Vec2, normals []Vec2, count int) {
	for i := 0; i < count; i++ {
		i2 := i + 1
		if i2 == count {
			i2 = 0
		}
		e := Vec2Sub(vertices[i2], vertices[i])
		n := e.CW()
		n.Normalize()
		normals[i] = n
	}
}

// ValidateHull checks for convexity and collinear points.
// This is expensive and should not be called at runtime.
func ValidateHull(points []Vec2, count int) bool {
	if count < 3 || MaxPolygonVertices < count {
		return false
	}

	// test that every point is behind every edge
	for i := 0; i < count; i++ {
		i1 := i
		i2 := (i + 1) % count
		p := points[i1]
		e := Vec2Sub(points[i2], p)
		e.Normalize()

		for j := 0; j < count; j++ {
			if j == i1 || j == i2 {
				continue
			}

			distance := Vec2Cross(e, Vec2Sub(points[j], p))
			if distance <= 0.0 {
				return false
			}
		}
	}

	// test for collinear points
	for i := 0; i < count; i++ {
		p1 := points[i]
		p2 := points[(i+1)%count]
		p3 := points[(i+2)%count]

		e := Vec2Sub(p3, p1)
		e.Normalize()

		distance := Vec2Cross(Vec2Sub(p2, p1), e)
		if distance <= LinearSlop {
			return false
		}
	}

	return true
}

// Validate reports whether the polygon is convex, non-degenerate and has
// normals matching its edges.
func (poly Polygon) Validate() bool {
	if !ValidateHull(poly.Vertices[:], poly.Count) {
		return false
	}

	for i := 0; i < poly.Count; i++ {
		e := Vec2Sub(poly.Vertices[(i+1)%poly.Count], poly.Vertices[i])
		n := poly.Normals[i]
		if d := n.LengthSquared() - 1.0; d > 1.0e-6 || d < -1.0e-6 {
			return false
		}
		if c := Vec2Cross(e, n); c >= 0.0 {
			return false
		}
	}

	return true
}

// Area of the polygon.
func (poly Polygon) Area() float64 {
	area := 0.0
	s := poly.Vertices[0]
	for i := 1; i+1 < poly.Count; i++ {
		e1 := Vec2Sub(poly.Vertices[i], s)
		e2 := Vec2Sub(poly.Vertices[i+1], s)
		area += 0.5 * Vec2Cross(e1, e2)
	}
	return area
}

// Area weighted centroid.
func (poly Polygon) Centroid() Vec2 {
	Assert(poly.Count >= 3)

	c := Vec2{}
	area := 0.0

	// Use the first vertex as a reference point to reduce round-off errors.
	s := poly.Vertices[0]
	inv3 := 1.0 / 3.0

	for i := 0; i < poly.Count; i++ {
		p2 := Vec2Sub(poly.Vertices[i], s)
		p3 := Vec2Sub(poly.Vertices[(i+1)%poly.Count], s)

		triangleArea := 0.5 * Vec2Cross(p2, p3)
		area += triangleArea

		c = Vec2Add(c, Vec2MulScalar(triangleArea*inv3, Vec2Add(p2, p3)))
	}

	Assert(area > Epsilon)
	return Vec2Add(Vec2MulScalar(1.0/area, c), s)
}

// Average of the vertices. Cheaper than the centroid and enough for
// picking an interior point.
func (poly Polygon) VertexAverage() Vec2 {
	c := Vec2{}
	for i := 0; i < poly.Count; i++ {
		c = Vec2Add(c, poly.Vertices[i])
	}
	return Vec2MulScalar(1.0/float64(poly.Count), c)
}

// Transformed maps vertices and normals through xf.
func (poly Polygon) Transformed(xf Transform) Polygon {
	out := poly
	for i := 0; i < poly.Count; i++ {
		out.Vertices[i] = TransformVec2Mul(xf, poly.Vertices[i])
		out.Normals[i] = RotVec2Mul(xf.Q, poly.Normals[i])
	}
	return out
}

// Plane of face i in local space.
func (poly Polygon) Face(i int) Plane {
	return MakePlane(poly.Normals[i], poly.Vertices[i])
}

func (poly Polygon) TestPoint(xf Transform, p Vec2) bool {
	pLocal := TransformVec2MulT(xf, p)

	for i := 0; i < poly.Count; i++ {
		if poly.Face(i).Distance(pLocal) > 0.0 {
			return false
		}
	}

	return true
}

// Rays that start inside the polygon do not hit since the normal is not
// defined there.
func (poly Polygon) RayCast(output *RayCastOutput, ray Ray, xf Transform) bool {
	// Put the ray into the polygon's frame of reference.
	local := ray.Local(xf)
	p1 := local.P
	d := local.D

	lower := 0.0
	upper := ray.T

	index := -1

	for i := 0; i < poly.Count; i++ {
		// p = p1 + a * d
		// dot(normal, p - v) = 0
		// dot(normal, p1 - v) + a * dot(normal, d) = 0
		numerator := Vec2Dot(poly.Normals[i], Vec2Sub(poly.Vertices[i], p1))
		denominator := Vec2Dot(poly.Normals[i], d)

		if denominator == 0.0 {
			if numerator < 0.0 {
				return false
			}
		} else {
			// lower < numerator / denominator with denominator < 0 flips to
			// denominator * lower > numerator.
			if denominator < 0.0 && numerator < lower*denominator {
				// The ray enters this half-space.
				lower = numerator / denominator
				index = i
			} else if denominator > 0.0 && numerator < upper*denominator {
				// The ray exits this half-space.
				upper = numerator / denominator
			}
		}

		if upper < lower {
			return false
		}
	}

	if index >= 0 {
		output.T = lower
		output.Normal = RotVec2Mul(xf.Q, poly.Normals[index])
		return true
	}

	return false
}

func (poly Polygon) ComputeAABB(xf Transform) AABB {
	lower := TransformVec2Mul(xf, poly.Vertices[0])
	upper := lower

	for i := 1; i < poly.Count; i++ {
		v := TransformVec2Mul(xf, poly.Vertices[i])
		lower = Vec2Min(lower, v)
		upper = Vec2Max(upper, v)
	}

	return AABB{Min: lower, Max: upper}
}
