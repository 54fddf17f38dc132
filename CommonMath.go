package c2d

import (
	"math"
)

///////////////////////////////////////////////////////////////////////////////
// Vec2
///////////////////////////////////////////////////////////////////////////////

// A 2D column vector.
type Vec2 struct {
	X, Y float64
}

func MakeVec2(xIn, yIn float64) Vec2 {
	return Vec2{X: xIn, Y: yIn}
}

func (v *Vec2) SetZero() {
	v.X = 0.0
	v.Y = 0.0
}

func (v *Vec2) Set(x, y float64) {
	v.X = x
	v.Y = y
}

// Negate this vector.
func (v Vec2) Negate() Vec2 {
	return MakeVec2(-v.X, -v.Y)
}

// Read from an indexed element.
func (v Vec2) At(i int) float64 {
	if i == 0 {
		return v.X
	}
	return v.Y
}

// Write to an indexed element.
func (v *Vec2) SetAt(i int, value float64) {
	if i == 0 {
		v.X = value
		return
	}
	v.Y = value
}

// Get the length of this vector (the norm).
func (v Vec2) Length() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y)
}

// Get the length squared. For performance, use this instead of
// Vec2.Length (if possible).
func (v Vec2) LengthSquared() float64 {
	return v.X*v.X + v.Y*v.Y
}

// Convert this vector into a unit vector. Returns the length. Vectors
// shorter than Epsilon are left untouched and report 0.
func (v *Vec2) Normalize() float64 {
	length := v.Length()
	if length < Epsilon {
		return 0.0
	}
	invLength := 1.0 / length
	v.X *= invLength
	v.Y *= invLength

	return length
}

// Normalized returns the unit vector, or the zero vector when v is
// too short to carry a direction.
func (v Vec2) Normalized() Vec2 {
	length := v.Length()
	if length < Epsilon {
		return Vec2{}
	}
	return Vec2MulScalar(1.0/length, v)
}

// Does this vector contain finite coordinates?
func (v Vec2) IsValid() bool {
	return IsValid(v.X) && IsValid(v.Y)
}

// Get the skew vector such that dot(skew_vec, other) == cross(vec, other)
func (v Vec2) Skew() Vec2 {
	return MakeVec2(-v.Y, v.X)
}

// Clockwise perpendicular. Outward edge normals of a CCW polygon.
func (v Vec2) CW() Vec2 {
	return MakeVec2(v.Y, -v.X)
}

func IsValid(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}

func Vec2Add(a, b Vec2) Vec2 {
	return MakeVec2(a.X+b.X, a.Y+b.Y)
}

func Vec2Sub(a, b Vec2) Vec2 {
	return MakeVec2(a.X-b.X, a.Y-b.Y)
}

func Vec2MulScalar(s float64, a Vec2) Vec2 {
	return MakeVec2(s*a.X, s*a.Y)
}

// Perform the dot product on two vectors.
func Vec2Dot(a, b Vec2) float64 {
	return a.X*b.X + a.Y*b.Y
}

// Perform the cross product on two vectors. In 2D this produces a scalar.
func Vec2Cross(a, b Vec2) float64 {
	return a.X*b.Y - a.Y*b.X
}

func Vec2Distance(a, b Vec2) float64 {
	return Vec2Sub(a, b).Length()
}

func Vec2DistanceSquared(a, b Vec2) float64 {
	c := Vec2Sub(a, b)
	return Vec2Dot(c, c)
}

func Vec2Abs(a Vec2) Vec2 {
	return MakeVec2(math.Abs(a.X), math.Abs(a.Y))
}

func Vec2Min(a, b Vec2) Vec2 {
	return MakeVec2(math.Min(a.X, b.X), math.Min(a.Y, b.Y))
}

func Vec2Max(a, b Vec2) Vec2 {
	return MakeVec2(math.Max(a.X, b.X), math.Max(a.Y, b.Y))
}

func Vec2Clamp(a, low, high Vec2) Vec2 {
	return Vec2Max(low, Vec2Min(a, high))
}

///////////////////////////////////////////////////////////////////////////////
// Mat22
///////////////////////////////////////////////////////////////////////////////

// A 2-by-2 matrix. Stored in column-major order.
type Mat22 struct {
	Ex, Ey Vec2
}

func MakeMat22FromColumns(c1, c2 Vec2) Mat22 {
	return Mat22{Ex: c1, Ey: c2}
}

func MakeMat22FromScalars(a11, a12, a21, a22 float64) Mat22 {
	return Mat22{
		Ex: MakeVec2(a11, a21),
		Ey: MakeVec2(a12, a22),
	}
}

func (m *Mat22) SetIdentity() {
	m.Ex.X = 1.0
	m.Ey.X = 0.0
	m.Ex.Y = 0.0
	m.Ey.Y = 1.0
}

func (m Mat22) GetInverse() Mat22 {
	a := m.Ex.X
	b := m.Ey.X
	c := m.Ex.Y
	d := m.Ey.Y

	det := a*d - b*c
	if det != 0.0 {
		det = 1.0 / det
	}

	return MakeMat22FromScalars(det*d, -det*b, -det*c, det*a)
}

// Solve A * x = b, where b is a column vector. This is more efficient
// than computing the inverse in one-shot cases.
func (m Mat22) Solve(b Vec2) Vec2 {
	a11 := m.Ex.X
	a12 := m.Ey.X
	a21 := m.Ex.Y
	a22 := m.Ey.Y
	det := a11*a22 - a12*a21

	if det != 0.0 {
		det = 1.0 / det
	}

	return MakeVec2(det*(a22*b.X-a12*b.Y), det*(a11*b.Y-a21*b.X))
}

// Multiply a matrix times a vector.
func Mat22MulVec2(A Mat22, v Vec2) Vec2 {
	return MakeVec2(A.Ex.X*v.X+A.Ey.X*v.Y, A.Ex.Y*v.X+A.Ey.Y*v.Y)
}

// Multiply a matrix transpose times a vector.
func Mat22MulTVec2(A Mat22, v Vec2) Vec2 {
	return MakeVec2(Vec2Dot(v, A.Ex), Vec2Dot(v, A.Ey))
}

///////////////////////////////////////////////////////////////////////////////
// Rot
///////////////////////////////////////////////////////////////////////////////

// Rotation stored as its sine and cosine.
type Rot struct {
	S, C float64
}

// Initialize from an angle in radians.
func MakeRot(angle float64) Rot {
	s, c := math.Sincos(angle)
	return Rot{S: s, C: c}
}

func RotIdentity() Rot {
	return Rot{S: 0.0, C: 1.0}
}

// Set using an angle in radians.
func (q *Rot) Set(angle float64) {
	q.S, q.C = math.Sincos(angle)
}

func (q *Rot) SetIdentity() {
	q.S = 0.0
	q.C = 1.0
}

func (q Rot) IsIdentity() bool {
	return q.S == 0.0 && q.C == 1.0
}

// Get the angle in radians.
func (q Rot) GetAngle() float64 {
	return math.Atan2(q.S, q.C)
}

func (q Rot) GetXAxis() Vec2 {
	return MakeVec2(q.C, q.S)
}

func (q Rot) GetYAxis() Vec2 {
	return MakeVec2(-q.S, q.C)
}

// The rotation as a matrix with columns x axis and y axis.
func (q Rot) Mat22() Mat22 {
	return MakeMat22FromColumns(q.GetXAxis(), q.GetYAxis())
}

// Multiply two rotations: q * r
func RotMul(q, r Rot) Rot {
	// [qc -qs] * [rc -rs] = [qc*rc-qs*rs -qc*rs-qs*rc]
	// [qs  qc]   [rs  rc]   [qs*rc+qc*rs -qs*rs+qc*rc]
	// s = qs * rc + qc * rs
	// c = qc * rc - qs * rs
	return Rot{
		S: q.S*r.C + q.C*r.S,
		C: q.C*r.C - q.S*r.S,
	}
}

// Transpose multiply two rotations: qT * r
func RotMulT(q, r Rot) Rot {
	// s = qc * rs - qs * rc
	// c = qc * rc + qs * rs
	return Rot{
		S: q.C*r.S - q.S*r.C,
		C: q.C*r.C + q.S*r.S,
	}
}

// Rotate a vector
func RotVec2Mul(q Rot, v Vec2) Vec2 {
	return MakeVec2(q.C*v.X-q.S*v.Y, q.S*v.X+q.C*v.Y)
}

// Inverse rotate a vector
func RotVec2MulT(q Rot, v Vec2) Vec2 {
	return MakeVec2(q.C*v.X+q.S*v.Y, -q.S*v.X+q.C*v.Y)
}

///////////////////////////////////////////////////////////////////////////////
// Transform
///////////////////////////////////////////////////////////////////////////////

// A transform contains translation and rotation. It is used to represent
// the position and orientation of rigid frames.
type Transform struct {
	P Vec2
	Q Rot
}

// The identity transform.
func MakeTransform() Transform {
	return Transform{Q: RotIdentity()}
}

func (t *Transform) SetIdentity() {
	t.P.SetZero()
	t.Q.SetIdentity()
}

// Set this based on the position and angle.
func (t *Transform) Set(position Vec2, angle float64) {
	t.P = position
	t.Q.Set(angle)
}

func TransformVec2Mul(T Transform, v Vec2) Vec2 {
	return MakeVec2(
		(T.Q.C*v.X-T.Q.S*v.Y)+T.P.X,
		(T.Q.S*v.X+T.Q.C*v.Y)+T.P.Y,
	)
}

func TransformVec2MulT(T Transform, v Vec2) Vec2 {
	px := v.X - T.P.X
	py := v.Y - T.P.Y
	return MakeVec2(T.Q.C*px+T.Q.S*py, -T.Q.S*px+T.Q.C*py)
}

// v2 = A.q.Rot(B.q.Rot(v1) + B.p) + A.p
//    = (A.q * B.q).Rot(v1) + A.q.Rot(B.p) + A.p
func TransformMul(A, B Transform) Transform {
	return Transform{
		Q: RotMul(A.Q, B.Q),
		P: Vec2Add(RotVec2Mul(A.Q, B.P), A.P),
	}
}

// v2 = A.q' * (B.q * v1 + B.p - A.p)
//    = A.q' * B.q * v1 + A.q' * (B.p - A.p)
func TransformMulT(A, B Transform) Transform {
	return Transform{
		Q: RotMulT(A.Q, B.Q),
		P: RotVec2MulT(A.Q, Vec2Sub(B.P, A.P)),
	}
}

// xfOrIdentity resolves the optional transform argument of the public
// queries.
func xfOrIdentity(xf *Transform) Transform {
	if xf == nil {
		return MakeTransform()
	}
	return *xf
}

///////////////////////////////////////////////////////////////////////////////
// Plane
///////////////////////////////////////////////////////////////////////////////

// A line in 2D given by its unit normal and offset: dot(N, p) == D.
type Plane struct {
	N Vec2
	D float64
}

// The plane through p with normal n.
func MakePlane(n, p Vec2) Plane {
	return Plane{N: n, D: Vec2Dot(n, p)}
}

// Signed distance of p to the plane, positive on the normal side.
func (h Plane) Distance(p Vec2) float64 {
	return Vec2Dot(h.N, p) - h.D
}

// Orthogonal projection of p onto the plane.
func (h Plane) Project(p Vec2) Vec2 {
	return Vec2Sub(p, Vec2MulScalar(h.Distance(p), h.N))
}

// Plane.Intersect returns the point where segment a-b crosses the plane,
// given the signed distances of its endpoints.
func (h Plane) Intersect(a, b Vec2, da, db float64) Vec2 {
	return Vec2Add(a, Vec2MulScalar(da/(da-db), Vec2Sub(b, a)))
}

// Map a plane into the frame described by xf.
func PlaneMul(xf Transform, h Plane) Plane {
	n := RotVec2Mul(xf.Q, h.N)
	return Plane{N: n, D: h.D + Vec2Dot(n, xf.P)}
}

// Map a plane through the inverse of xf.
func PlaneMulT(xf Transform, h Plane) Plane {
	return Plane{
		N: RotVec2MulT(xf.Q, h.N),
		D: h.D - Vec2Dot(h.N, xf.P),
	}
}
