package c2d

// worldShape is a shape resolved for pairwise tests. Circles, capsules and
// boxes are stored in world space with an identity transform. A rotated
// box is no longer axis aligned, so it becomes a polygon carrying the
// transform. Polygons keep their local vertices and transform.
type worldShape struct {
	shape Shape
	xf    Transform
}

func resolveShape(shape Shape, xf *Transform) worldShape {
	t := xfOrIdentity(xf)

	switch s := shape.(type) {
	case Circle:
		return worldShape{shape: s.Transformed(t), xf: MakeTransform()}
	case Capsule:
		return worldShape{shape: s.Transformed(t), xf: MakeTransform()}
	case AABB:
		if t.Q.IsIdentity() {
			return worldShape{shape: s.Translated(t.P), xf: MakeTransform()}
		}
		return worldShape{shape: s.ToPolygon(), xf: t}
	case Polygon:
		return worldShape{shape: s, xf: t}
	}

	Assert(false)
	return worldShape{}
}

func (w worldShape) empty() bool {
	poly, ok := w.shape.(Polygon)
	return ok && poly.Count < 3
}

type collideFcn func(manifold *Manifold, a worldShape, b worldShape)
type checkFcn func(a worldShape, b worldShape) bool

type register struct {
	collide collideFcn
	check   checkFcn
	primary bool
}

// Indexed by [typeA][typeB]. Only one order of each pair has generators;
// the other is marked non primary and runs them with swapped arguments.
var registers [shapeTypeCount][shapeTypeCount]register

func addType(collide collideFcn, check checkFcn, typeA, typeB ShapeType) {
	registers[typeA][typeB] = register{collide: collide, check: check, primary: true}
	if typeA != typeB {
		registers[typeB][typeA] = register{collide: collide, check: check, primary: false}
	}
}

func init() {
	addType(collideCircles, checkCircles, ShapeCircle, ShapeCircle)
	addType(collideCircleAABB, checkCircleAABB, ShapeCircle, ShapeAABB)
	addType(collideCircleCapsule, checkCircleCapsule, ShapeCircle, ShapeCapsule)
	addType(collideCirclePolygon, checkGJK, ShapeCircle, ShapePolygon)
	addType(collideAABBs, checkAABBs, ShapeAABB, ShapeAABB)
	addType(collideAABBCapsule, checkGJK, ShapeAABB, ShapeCapsule)
	addType(collideAABBPolygon, checkGJK, ShapeAABB, ShapePolygon)
	addType(collideCapsules, checkCapsules, ShapeCapsule, ShapeCapsule)
	addType(collideCapsulePolygon, checkGJK, ShapeCapsule, ShapePolygon)
	addType(collidePolygons, checkGJK, ShapePolygon, ShapePolygon)
}

func lookup(a, b worldShape) register {
	reg := registers[a.shape.GetType()][b.shape.GetType()]
	Assert(reg.collide != nil)
	return reg
}

// Check reports whether two shapes overlap. A nil transform is the
// identity.
func Check(a Shape, xfA *Transform, b Shape, xfB *Transform) bool {
	wa := resolveShape(a, xfA)
	wb := resolveShape(b, xfB)
	if wa.empty() || wb.empty() {
		return false
	}

	reg := lookup(wa, wb)
	if reg.primary {
		return reg.check(wa, wb)
	}
	return reg.check(wb, wa)
}

// Collide computes the contact manifold of two shapes. The normal points
// from a toward b in either argument order.
func Collide(a Shape, xfA *Transform, b Shape, xfB *Transform) Manifold {
	var manifold Manifold

	wa := resolveShape(a, xfA)
	wb := resolveShape(b, xfB)
	if wa.empty() || wb.empty() {
		return manifold
	}

	reg := lookup(wa, wb)
	if reg.primary {
		reg.collide(&manifold, wa, wb)
		return manifold
	}

	reg.collide(&manifold, wb, wa)
	if manifold.PointCount > 0 {
		manifold = manifold.Flip()
	}
	return manifold
}

// Cast a ray against a shape. Reports false when the ray misses.
func Cast(ray Ray, shape Shape, xf *Transform) (RayCastOutput, bool) {
	var output RayCastOutput
	if !isFiniteRay(ray) {
		return output, false
	}
	if poly, ok := shape.(Polygon); ok && poly.Count < 3 {
		return output, false
	}
	hit := shape.RayCast(&output, ray, xfOrIdentity(xf))
	return output, hit
}

// GJK computes the distance and closest points between two shapes. With
// useRadius the rounding radii of circles and capsules are included. A
// non nil cache is read for warm starting and always written back.
func GJK(a Shape, xfA *Transform, b Shape, xfB *Transform, useRadius bool, cache *GJKCache) DistanceOutput {
	input := DistanceInput{
		ProxyA:     MakeDistanceProxy(a),
		ProxyB:     MakeDistanceProxy(b),
		TransformA: xfOrIdentity(xfA),
		TransformB: xfOrIdentity(xfB),
		UseRadii:   useRadius,
	}
	if input.ProxyA.Count == 0 || input.ProxyB.Count == 0 {
		return DistanceOutput{Distance: MaxFloat}
	}

	var output DistanceOutput
	Distance(&output, cache, &input)
	return output
}

///////////////////////////////////////////////////////////////////////////////
// Register adapters
///////////////////////////////////////////////////////////////////////////////

func collideCircles(m *Manifold, a, b worldShape) {
	CollideCircles(m, a.shape.(Circle), b.shape.(Circle))
}

func collideCircleAABB(m *Manifold, a, b worldShape) {
	CollideCircleAndAABB(m, a.shape.(Circle), b.shape.(AABB))
}

func collideCircleCapsule(m *Manifold, a, b worldShape) {
	CollideCircleAndCapsule(m, a.shape.(Circle), b.shape.(Capsule))
}

func collideCirclePolygon(m *Manifold, a, b worldShape) {
	CollideCircleAndPolygon(m, a.shape.(Circle), b.shape.(Polygon), b.xf)
}

func collideAABBs(m *Manifold, a, b worldShape) {
	CollideAABBs(m, a.shape.(AABB), b.shape.(AABB))
}

func collideAABBCapsule(m *Manifold, a, b worldShape) {
	CollideAABBAndCapsule(m, a.shape.(AABB), b.shape.(Capsule))
}

func collideAABBPolygon(m *Manifold, a, b worldShape) {
	CollideAABBAndPolygon(m, a.shape.(AABB), b.shape.(Polygon), b.xf)
}

func collideCapsules(m *Manifold, a, b worldShape) {
	CollideCapsules(m, a.shape.(Capsule), b.shape.(Capsule))
}

func collideCapsulePolygon(m *Manifold, a, b worldShape) {
	CollideCapsuleAndPolygon(m, a.shape.(Capsule), b.shape.(Polygon), b.xf)
}

func collidePolygons(m *Manifold, a, b worldShape) {
	CollidePolygons(m, a.shape.(Polygon), a.xf, b.shape.(Polygon), b.xf)
}

func checkCircles(a, b worldShape) bool {
	return TestOverlapCircles(a.shape.(Circle), b.shape.(Circle))
}

func checkCircleAABB(a, b worldShape) bool {
	return TestOverlapCircleAndAABB(a.shape.(Circle), b.shape.(AABB))
}

func checkCircleCapsule(a, b worldShape) bool {
	return TestOverlapCircleAndCapsule(a.shape.(Circle), b.shape.(Capsule))
}

func checkAABBs(a, b worldShape) bool {
	return TestOverlap(a.shape.(AABB), b.shape.(AABB))
}

func checkCapsules(a, b worldShape) bool {
	return TestOverlapCapsules(a.shape.(Capsule), b.shape.(Capsule))
}

func checkGJK(a, b worldShape) bool {
	out := GJK(a.shape, &a.xf, b.shape, &b.xf, true, nil)
	return out.Distance < GJKEpsilon
}
