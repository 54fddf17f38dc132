package c2d

import "math"

// @file
// Global tuning constants. The engine works in float64 throughout.
//

// The maximum number of vertices on a convex polygon. Hull input larger
// than this is a programming error.
const MaxPolygonVertices = 8

// The maximum number of contact points between two convex shapes.
const MaxManifoldPoints = 2

// Iteration caps for the distance and time of impact loops.
const MaxGJKIterations = 20
const MaxTOIIterations = 20

const MaxFloat = math.MaxFloat64

// Machine epsilon for float64.
const Epsilon = 2.220446049250313e-16

// Distances below this are treated as touching by GJK when radii are
// applied, and as "deep" by the capsule and circle generators.
const GJKEpsilon = 1.0e-6

// Conservative advancement stops once the gap is below this.
const TOITolerance = 1.0e-4

// Points closer than this to the line through their neighbours are
// collinear for hull validation.
const LinearSlop = 0.005

// Reference face selection for polygon clipping prefers A unless B is
// clearly better, which keeps the manifold stable across frames.
const ReferenceRelativeTol = 0.95
const ReferenceAbsoluteTol = 0.01

// Assert panics when the condition does not hold. Used for programmer
// errors only; ordinary no-result cases are return values.
func Assert(a bool) {
	if !a {
		panic("c2d: assertion failed")
	}
}
