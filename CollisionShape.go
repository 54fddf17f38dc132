package c2d

import (
	"fmt"
	"math"
)

// ShapeType tags the four primitive shapes.
type ShapeType uint8

const (
	ShapeCircle ShapeType = iota
	ShapeAABB
	ShapeCapsule
	ShapePolygon
	shapeTypeCount
)

func (t ShapeType) String() string {
	switch t {
	case ShapeCircle:
		return "circle"
	case ShapeAABB:
		return "aabb"
	case ShapeCapsule:
		return "capsule"
	case ShapePolygon:
		return "polygon"
	}
	return fmt.Sprintf("ShapeType(%d)", uint8(t))
}

// Shape is implemented by Circle, AABB, Capsule and Polygon only.
type Shape interface {
	GetType() ShapeType

	// Given a transform, compute the world bounding box of the shape.
	ComputeAABB(xf Transform) AABB

	// Cast a ray against the shape placed at xf.
	RayCast(output *RayCastOutput, ray Ray, xf Transform) bool

	isShape()
}

///////////////////////////////////////////////////////////////////////////////
// Circle
///////////////////////////////////////////////////////////////////////////////

type Circle struct {
	P Vec2
	R float64
}

func MakeCircle(p Vec2, r float64) Circle {
	return Circle{P: p, R: r}
}

func (Circle) GetType() ShapeType { return ShapeCircle }
func (Circle) isShape()           {}

func (c Circle) ComputeAABB(xf Transform) AABB {
	p := TransformVec2Mul(xf, c.P)
	r := MakeVec2(c.R, c.R)
	return AABB{Min: Vec2Sub(p, r), Max: Vec2Add(p, r)}
}

// Circle mapped into world space.
func (c Circle) Transformed(xf Transform) Circle {
	return Circle{P: TransformVec2Mul(xf, c.P), R: c.R}
}

///////////////////////////////////////////////////////////////////////////////
// Capsule
///////////////////////////////////////////////////////////////////////////////

// A segment A-B swept by a disc of radius R.
type Capsule struct {
	A, B Vec2
	R    float64
}

func MakeCapsule(a, b Vec2, r float64) Capsule {
	return Capsule{A: a, B: b, R: r}
}

func (Capsule) GetType() ShapeType { return ShapeCapsule }
func (Capsule) isShape()           {}

func (c Capsule) ComputeAABB(xf Transform) AABB {
	a := TransformVec2Mul(xf, c.A)
	b := TransformVec2Mul(xf, c.B)
	r := MakeVec2(c.R, c.R)
	return AABB{
		Min: Vec2Sub(Vec2Min(a, b), r),
		Max: Vec2Add(Vec2Max(a, b), r),
	}
}

func (c Capsule) Transformed(xf Transform) Capsule {
	return Capsule{
		A: TransformVec2Mul(xf, c.A),
		B: TransformVec2Mul(xf, c.B),
		R: c.R,
	}
}

///////////////////////////////////////////////////////////////////////////////
// AABB
///////////////////////////////////////////////////////////////////////////////

// An axis aligned bounding box.
type AABB struct {
	Min Vec2 // the lower vertex
	Max Vec2 // the upper vertex
}

func MakeAABB(min, max Vec2) AABB {
	return AABB{Min: min, Max: max}
}

func (AABB) GetType() ShapeType { return ShapeAABB }
func (AABB) isShape()           {}

// Get the center of the AABB.
func (bb AABB) GetCenter() Vec2 {
	return Vec2MulScalar(0.5, Vec2Add(bb.Min, bb.Max))
}

// Get the extents of the AABB (half-widths).
func (bb AABB) GetExtents() Vec2 {
	return Vec2MulScalar(0.5, Vec2Sub(bb.Max, bb.Min))
}

// Get the perimeter length
func (bb AABB) GetPerimeter() float64 {
	wx := bb.Max.X - bb.Min.X
	wy := bb.Max.Y - bb.Min.Y
	return 2.0 * (wx + wy)
}

// Combine two boxes into their union.
func (bb AABB) Combine(other AABB) AABB {
	return AABB{
		Min: Vec2Min(bb.Min, other.Min),
		Max: Vec2Max(bb.Max, other.Max),
	}
}

// Does this aabb contain the provided AABB.
func (bb AABB) Contains(other AABB) bool {
	return bb.Min.X <= other.Min.X &&
		bb.Min.Y <= other.Min.Y &&
		other.Max.X <= bb.Max.X &&
		other.Max.Y <= bb.Max.Y
}

func (bb AABB) IsValid() bool {
	d := Vec2Sub(bb.Max, bb.Min)
	return d.X >= 0.0 && d.Y >= 0.0 && bb.Min.IsValid() && bb.Max.IsValid()
}

func (bb AABB) ComputeAABB(xf Transform) AABB {
	if xf.Q.IsIdentity() {
		return bb.Translated(xf.P)
	}
	return bb.ToPolygon().ComputeAABB(xf)
}

func (bb AABB) Translated(p Vec2) AABB {
	return AABB{Min: Vec2Add(bb.Min, p), Max: Vec2Add(bb.Max, p)}
}

// Corners in counter-clockwise order starting at Min.
func (bb AABB) Corners() [4]Vec2 {
	return [4]Vec2{
		bb.Min,
		MakeVec2(bb.Max.X, bb.Min.Y),
		bb.Max,
		MakeVec2(bb.Min.X, bb.Max.Y),
	}
}

// TestOverlap reports whether two boxes share any point, touching included.
func TestOverlap(a, b AABB) bool {
	d1 := Vec2Sub(b.Min, a.Max)
	d2 := Vec2Sub(a.Min, b.Max)

	if d1.X > 0.0 || d1.Y > 0.0 {
		return false
	}

	if d2.X > 0.0 || d2.Y > 0.0 {
		return false
	}

	return true
}

///////////////////////////////////////////////////////////////////////////////
// Ray
///////////////////////////////////////////////////////////////////////////////

// A ray starting at P travelling along the unit direction D for a
// distance of T.
type Ray struct {
	P Vec2
	D Vec2
	T float64
}

// MakeRay builds a ray from a start and end point.
func MakeRay(from, to Vec2) Ray {
	d := Vec2Sub(to, from)
	t := d.Normalize()
	return Ray{P: from, D: d, T: t}
}

// The point at distance t along the ray.
func (r Ray) Impact(t float64) Vec2 {
	return Vec2Add(r.P, Vec2MulScalar(t, r.D))
}

// Ray into the local frame of xf.
func (r Ray) Local(xf Transform) Ray {
	return Ray{
		P: TransformVec2MulT(xf, r.P),
		D: RotVec2MulT(xf.Q, r.D),
		T: r.T,
	}
}

// Ray-cast output data. The ray hits at P + D * T, where P is the
// ray origin and D its unit direction.
type RayCastOutput struct {
	T      float64
	Normal Vec2
}

func isFiniteRay(r Ray) bool {
	return r.P.IsValid() && r.D.IsValid() && IsValid(r.T) && r.T >= 0.0 &&
		math.Abs(r.D.LengthSquared()-1.0) < 1.0e-6
}
