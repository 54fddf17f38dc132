package c2d

import (
	"math"
)

// Compute the collision manifold between two axis aligned boxes. Touching
// boxes report a contact with zero depth.
func CollideAABBs(manifold *Manifold, boxA AABB, boxB AABB) {
	manifold.PointCount = 0

	midA := boxA.GetCenter()
	midB := boxB.GetCenter()
	eA := Vec2Abs(boxA.GetExtents())
	eB := Vec2Abs(boxB.GetExtents())
	d := Vec2Sub(midB, midA)

	// calc overlap on x and y axes
	dx := eA.X + eB.X - math.Abs(d.X)
	if dx < 0.0 {
		return
	}
	dy := eA.Y + eB.Y - math.Abs(d.Y)
	if dy < 0.0 {
		return
	}

	// axis of minimum penetration
	axis := 1
	depth := dy
	if dx < dy {
		axis = 0
		depth = dx
	}
	other := 1 - axis

	var n Vec2
	var faceA, faceB float64
	if d.At(axis) < 0.0 {
		n.SetAt(axis, -1.0)
		faceA = boxA.Min.At(axis)
		faceB = boxB.Max.At(axis)
	} else {
		n.SetAt(axis, 1.0)
		faceA = boxA.Max.At(axis)
		faceB = boxB.Min.At(axis)
	}

	// The contact edge is the shared span on the other axis, placed
	// halfway between the two faces.
	mid := 0.5 * (faceA + faceB)
	lo := math.Max(boxA.Min.At(other), boxB.Min.At(other))
	hi := math.Min(boxA.Max.At(other), boxB.Max.At(other))

	var p Vec2
	p.SetAt(axis, mid)
	p.SetAt(other, lo)
	manifold.addPoint(p, depth)
	if hi > lo {
		p.SetAt(other, hi)
		manifold.addPoint(p, depth)
	}
	manifold.Normal = n
}

// Compute the collision manifold between two polygons.
func CollidePolygons(manifold *Manifold, polyA Polygon, xfA Transform, polyB Polygon, xfB Transform) {
	manifold.PointCount = 0

	separationA, edgeA := findMaxSeparation(&polyA, xfA, &polyB, xfB)
	if separationA >= 0.0 {
		return
	}

	separationB, edgeB := findMaxSeparation(&polyB, xfB, &polyA, xfA)
	if separationB >= 0.0 {
		return
	}

	// A is the reference polygon unless B is clearly better. A deep, nearly
	// tied overlap can leave the incident edge outside the preferred
	// reference edge, so the other polygon is tried before giving up.
	if separationA*ReferenceRelativeTol > separationB+ReferenceAbsoluteTol {
		if clipReference(manifold, &polyA, xfA, edgeA, &polyB, xfB) {
			return
		}
		if clipReference(manifold, &polyB, xfB, edgeB, &polyA, xfA) {
			manifold.Normal = manifold.Normal.Negate()
		}
		return
	}

	if clipReference(manifold, &polyB, xfB, edgeB, &polyA, xfA) {
		manifold.Normal = manifold.Normal.Negate()
		return
	}
	clipReference(manifold, &polyA, xfA, edgeA, &polyB, xfB)
}

// clipReference clips the incident edge of poly2 against edge1 of poly1 and
// keeps the points behind the reference face. The manifold normal points
// out of poly1.
func clipReference(manifold *Manifold, poly1 *Polygon, xf1 Transform, edge1 int, poly2 *Polygon, xf2 Transform) bool {
	manifold.PointCount = 0

	// Reference normal in the incident polygon frame.
	n := PlaneMulT(xf2, PlaneMul(xf1, poly1.Face(edge1))).N
	incident := incidentEdge(poly2, xf2, n)

	h, ok := sidePlanesFromPolygon(&incident, xf1, poly1, edge1)
	if !ok {
		return false
	}
	keepDeep(manifold, incident, h, 0.0, 0.0)
	return manifold.PointCount > 0
}

// Compute the collision manifold between a box and a polygon placed at xfB.
func CollideAABBAndPolygon(manifold *Manifold, boxA AABB, polyB Polygon, xfB Transform) {
	CollidePolygons(manifold, boxA.ToPolygon(), MakeTransform(), polyB, xfB)
}

// Compute the collision manifold between a box and a capsule. The box is
// handled as a polygon on the capsule side of the test.
func CollideAABBAndCapsule(manifold *Manifold, boxA AABB, capsuleB Capsule) {
	CollideCapsuleAndPolygon(manifold, capsuleB, boxA.ToPolygon(), MakeTransform())
	if manifold.PointCount > 0 {
		*manifold = manifold.Flip()
	}
}
