package c2d

import (
	"math"
)

///////////////////////////////////////////////////////////////////////////////
// Distance proxy
///////////////////////////////////////////////////////////////////////////////

// A distance proxy is used by the GJK algorithm. It encapsulates any shape
// as a point cloud in local space plus a radius.
type DistanceProxy struct {
	Vertices [MaxPolygonVertices]Vec2
	Count    int
	Radius   float64
}

// Initialize the proxy using the given shape.
func MakeDistanceProxy(shape Shape) DistanceProxy {
	var proxy DistanceProxy

	switch s := shape.(type) {
	case Circle:
		proxy.Vertices[0] = s.P
		proxy.Count = 1
		proxy.Radius = s.R

	case AABB:
		c := s.Corners()
		copy(proxy.Vertices[:], c[:])
		proxy.Count = 4

	case Capsule:
		proxy.Vertices[0] = s.A
		proxy.Vertices[1] = s.B
		proxy.Count = 2
		proxy.Radius = s.R

	case Polygon:
		proxy.Vertices = s.Vertices
		proxy.Count = s.Count

	default:
		Assert(false)
	}

	return proxy
}

// Get the supporting vertex index in the given direction.
func (p DistanceProxy) GetSupport(d Vec2) int {
	bestIndex := 0
	bestValue := Vec2Dot(p.Vertices[0], d)
	for i := 1; i < p.Count; i++ {
		value := Vec2Dot(p.Vertices[i], d)
		if value > bestValue {
			bestIndex = i
			bestValue = value
		}
	}

	return bestIndex
}

///////////////////////////////////////////////////////////////////////////////
// Cache, input and output
///////////////////////////////////////////////////////////////////////////////

// GJKCache warm starts the distance query between a pair of shapes
// across calls. The caller owns it; a zero value means "no cache". Do not
// share one cache between goroutines querying the same pair.
type GJKCache struct {
	Metric float64 // length or area of the cached simplex
	Count  int
	IndexA [3]int // vertices on shape A
	IndexB [3]int // vertices on shape B
	Div    float64
}

// Input for Distance.
type DistanceInput struct {
	ProxyA     DistanceProxy
	ProxyB     DistanceProxy
	TransformA Transform
	TransformB Transform
	UseRadii   bool
}

// Output for Distance.
type DistanceOutput struct {
	PointA     Vec2 // closest point on shapeA
	PointB     Vec2 // closest point on shapeB
	Distance   float64
	Iterations int // number of GJK iterations used
	Hit        bool
}

///////////////////////////////////////////////////////////////////////////////
// Simplex
///////////////////////////////////////////////////////////////////////////////

type simplexVertex struct {
	WA     Vec2    // support point in proxyA
	WB     Vec2    // support point in proxyB
	W      Vec2    // WB - WA
	U      float64 // unnormalized barycentric coordinate for closest point
	IndexA int     // WA index
	IndexB int     // WB index
}

type simplex struct {
	V     [3]simplexVertex
	Count int
	Div   float64
}

func (s *simplex) readCache(cache *GJKCache, proxyA, proxyB *DistanceProxy, xfA, xfB Transform) bool {
	if cache == nil || cache.Count == 0 || cache.Count > 3 {
		return false
	}

	s.Count = cache.Count
	s.Div = cache.Div
	for i := 0; i < s.Count; i++ {
		v := &s.V[i]
		v.IndexA = cache.IndexA[i]
		v.IndexB = cache.IndexB[i]
		if v.IndexA < 0 || v.IndexA >= proxyA.Count || v.IndexB < 0 || v.IndexB >= proxyB.Count {
			return false
		}
		v.WA = TransformVec2Mul(xfA, proxyA.Vertices[v.IndexA])
		v.WB = TransformVec2Mul(xfB, proxyB.Vertices[v.IndexB])
		v.W = Vec2Sub(v.WB, v.WA)

		// invalid
		v.U = 0.0
	}

	// If the cached metric is very different from the current one,
	// flush the simplex.
	if s.Count > 1 {
		metric1 := math.Abs(cache.Metric)
		metric2 := math.Abs(s.metric())
		if 2.0*metric1 < metric2 || metric2 < 0.5*metric1 || metric2 < Epsilon {
			return false
		}
	}

	return true
}

func (s *simplex) start(proxyA, proxyB *DistanceProxy, xfA, xfB Transform) {
	v := &s.V[0]
	v.IndexA = 0
	v.IndexB = 0
	v.WA = TransformVec2Mul(xfA, proxyA.Vertices[0])
	v.WB = TransformVec2Mul(xfB, proxyB.Vertices[0])
	v.W = Vec2Sub(v.WB, v.WA)
	v.U = 1.0
	s.Div = 1.0
	s.Count = 1
}

func (s simplex) writeCache(cache *GJKCache) {
	if cache == nil {
		return
	}
	cache.Metric = s.metric()
	cache.Count = s.Count
	cache.Div = s.Div
	for i := 0; i < s.Count; i++ {
		cache.IndexA[i] = s.V[i].IndexA
		cache.IndexB[i] = s.V[i].IndexB
	}
}

func (s simplex) metric() float64 {
	switch s.Count {
	case 2:
		return Vec2Distance(s.V[0].W, s.V[1].W)
	case 3:
		return Vec2Cross(Vec2Sub(s.V[1].W, s.V[0].W), Vec2Sub(s.V[2].W, s.V[0].W))
	}
	return 0.0
}

// Closest point on the simplex to the origin.
func (s simplex) closest() Vec2 {
	switch s.Count {
	case 1:
		return s.V[0].W
	case 2:
		a := Vec2MulScalar(s.V[0].U, s.V[0].W)
		b := Vec2MulScalar(s.V[1].U, s.V[1].W)
		return Vec2MulScalar(1.0/s.Div, Vec2Add(a, b))
	}
	return Vec2{}
}

// Direction towards the origin from the simplex.
func (s simplex) searchDirection() Vec2 {
	switch s.Count {
	case 1:
		return s.V[0].W.Negate()
	case 2:
		ab := Vec2Sub(s.V[1].W, s.V[0].W)
		if Vec2Cross(ab, s.V[0].W.Negate()) > 0.0 {
			// Origin is left of ab.
			return ab.Skew()
		}
		// Origin is right of ab.
		return ab.CW()
	}
	return Vec2{}
}

func (s simplex) witnessPoints() (pA, pB Vec2) {
	den := 1.0 / s.Div

	switch s.Count {
	case 1:
		pA = s.V[0].WA
		pB = s.V[0].WB

	case 2:
		pA = Vec2MulScalar(den, Vec2Add(
			Vec2MulScalar(s.V[0].U, s.V[0].WA),
			Vec2MulScalar(s.V[1].U, s.V[1].WA),
		))
		pB = Vec2MulScalar(den, Vec2Add(
			Vec2MulScalar(s.V[0].U, s.V[0].WB),
			Vec2MulScalar(s.V[1].U, s.V[1].WB),
		))

	case 3:
		pA = Vec2MulScalar(den, Vec2Add(
			Vec2Add(
				Vec2MulScalar(s.V[0].U, s.V[0].WA),
				Vec2MulScalar(s.V[1].U, s.V[1].WA),
			),
			Vec2MulScalar(s.V[2].U, s.V[2].WA),
		))
		pB = pA

	default:
		Assert(false)
	}

	return pA, pB
}

// Solve a line segment using barycentric coordinates.
//
// p = a1 * w1 + a2 * w2
// a1 + a2 = 1
//
// The region of the segment holding the origin decides whether one or
// both vertices survive. The weights are left unnormalized; Div holds
// their sum.
func (s *simplex) solve2() {
	w1 := s.V[0].W
	w2 := s.V[1].W

	u := Vec2Dot(w2, Vec2Sub(w2, w1).Normalized())
	v := Vec2Dot(w1, Vec2Sub(w1, w2).Normalized())

	// w1 region
	if v <= 0.0 {
		s.V[0].U = 1.0
		s.Div = 1.0
		s.Count = 1
		return
	}

	// w2 region
	if u <= 0.0 {
		s.V[0] = s.V[1]
		s.V[0].U = 1.0
		s.Div = 1.0
		s.Count = 1
		return
	}

	// Must be in e12 region.
	s.V[0].U = u
	s.V[1].U = v
	s.Div = u + v
	s.Count = 2
}

// Possible regions:
// - points[2]
// - edge points[0]-points[2]
// - edge points[1]-points[2]
// - inside the triangle
func (s *simplex) solve3() {
	a := s.V[0].W
	b := s.V[1].W
	c := s.V[2].W

	uAB := Vec2Dot(b, Vec2Sub(b, a))
	vAB := Vec2Dot(a, Vec2Sub(a, b))
	uBC := Vec2Dot(c, Vec2Sub(c, b))
	vBC := Vec2Dot(b, Vec2Sub(b, c))
	uCA := Vec2Dot(a, Vec2Sub(a, c))
	vCA := Vec2Dot(c, Vec2Sub(c, a))

	area := Vec2Cross(Vec2Sub(b, a), Vec2Sub(c, a))
	uABC := Vec2Cross(b, c) * area
	vABC := Vec2Cross(c, a) * area
	wABC := Vec2Cross(a, b) * area

	switch {
	case vAB <= 0.0 && uCA <= 0.0:
		s.V[0].U = 1.0
		s.Div = 1.0
		s.Count = 1

	case uAB <= 0.0 && vBC <= 0.0:
		s.V[0] = s.V[1]
		s.V[0].U = 1.0
		s.Div = 1.0
		s.Count = 1

	case uBC <= 0.0 && vCA <= 0.0:
		s.V[0] = s.V[2]
		s.V[0].U = 1.0
		s.Div = 1.0
		s.Count = 1

	case uAB > 0.0 && vAB > 0.0 && wABC <= 0.0:
		s.V[0].U = uAB
		s.V[1].U = vAB
		s.Div = uAB + vAB
		s.Count = 2

	case uBC > 0.0 && vBC > 0.0 && uABC <= 0.0:
		s.V[0] = s.V[1]
		s.V[1] = s.V[2]
		s.V[0].U = uBC
		s.V[1].U = vBC
		s.Div = uBC + vBC
		s.Count = 2

	case uCA > 0.0 && vCA > 0.0 && vABC <= 0.0:
		s.V[1] = s.V[0]
		s.V[0] = s.V[2]
		s.V[0].U = uCA
		s.V[1].U = vCA
		s.Div = uCA + vCA
		s.Count = 2

	default:
		// Must be in triangle123
		s.V[0].U = uABC
		s.V[1].U = vABC
		s.V[2].U = wABC
		s.Div = uABC + vABC + wABC
		s.Count = 3
	}
}

func (s *simplex) solve() {
	switch s.Count {
	case 2:
		s.solve2()
	case 3:
		s.solve3()
	}
}

///////////////////////////////////////////////////////////////////////////////
// GJK
///////////////////////////////////////////////////////////////////////////////

// Compute the closest points between two shapes. Supports any combination
// of circles, boxes, capsules and polygons. On the first call set
// cache.Count to zero; a nil cache disables warm starting.
func Distance(output *DistanceOutput, cache *GJKCache, input *DistanceInput) {
	proxyA := &input.ProxyA
	proxyB := &input.ProxyB

	transformA := input.TransformA
	transformB := input.TransformB

	// Initialize the simplex.
	var s simplex
	if !s.readCache(cache, proxyA, proxyB, transformA, transformB) {
		s.start(proxyA, proxyB, transformA, transformB)
	}

	// These store the vertices of the last simplex so that we can check
	// for duplicates and prevent cycling.
	var saveA, saveB [3]int

	d0 := MaxFloat
	iter := 0
	hit := false

	for iter < MaxGJKIterations {
		saveCount := s.Count
		for i := 0; i < saveCount; i++ {
			saveA[i] = s.V[i].IndexA
			saveB[i] = s.V[i].IndexB
		}

		s.solve()

		// If we have 3 points, then the origin is in the corresponding triangle.
		if s.Count == 3 {
			hit = true
			break
		}

		// Ensure progress.
		p := s.closest()
		d1 := Vec2Dot(p, p)
		if d1 >= d0 {
			break
		}
		d0 = d1

		d := s.searchDirection()

		// The origin is probably contained by a line segment or triangle.
		if d.LengthSquared() < Epsilon*Epsilon {
			break
		}

		// Compute a tentative new simplex vertex using support points.
		v := &s.V[s.Count]
		v.IndexA = proxyA.GetSupport(RotVec2MulT(transformA.Q, d.Negate()))
		v.WA = TransformVec2Mul(transformA, proxyA.Vertices[v.IndexA])
		v.IndexB = proxyB.GetSupport(RotVec2MulT(transformB.Q, d))
		v.WB = TransformVec2Mul(transformB, proxyB.Vertices[v.IndexB])
		v.W = Vec2Sub(v.WB, v.WA)

		// Check for duplicate support points. This is the main termination
		// criteria.
		duplicate := false
		for i := 0; i < saveCount; i++ {
			if v.IndexA == saveA[i] && v.IndexB == saveB[i] {
				duplicate = true
				break
			}
		}

		// If we found a duplicate support point we must exit to avoid cycling.
		if duplicate {
			break
		}

		// New vertex is ok and needed.
		s.Count++
		iter++
	}

	pA, pB := s.witnessPoints()
	distance := Vec2Distance(pA, pB)

	if hit {
		pB = pA
		distance = 0.0
	} else if input.UseRadii {
		rA := proxyA.Radius
		rB := proxyB.Radius

		if distance-(rA+rB) > GJKEpsilon {
			// Shapes are still not overlapped.
			// Move the witness points to the outer surface.
			distance -= rA + rB
			normal := Vec2Sub(pB, pA)
			normal.Normalize()
			pA = Vec2Add(pA, Vec2MulScalar(rA, normal))
			pB = Vec2Sub(pB, Vec2MulScalar(rB, normal))
		} else {
			// Shapes are overlapped when radii are considered.
			// Move the witness points to the middle.
			p := Vec2MulScalar(0.5, Vec2Add(pA, pB))
			pA = p
			pB = p
			distance = 0.0
		}
	}

	s.writeCache(cache)

	output.PointA = pA
	output.PointB = pB
	output.Distance = distance
	output.Iterations = iter
	output.Hit = hit || distance == 0.0
}
