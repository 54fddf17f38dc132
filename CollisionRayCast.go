package c2d

import (
	"math"
)

// Collision Detection in Interactive 3D Environments by Gino van den Bergen
// From Section 3.1.2
// x = s + a * r
// norm(x) = radius
func (circle Circle) RayCast(output *RayCastOutput, ray Ray, xf Transform) bool {
	position := TransformVec2Mul(xf, circle.P)
	s := Vec2Sub(ray.P, position)
	c := Vec2Dot(s, s) - circle.R*circle.R

	// Solve quadratic equation.
	b := Vec2Dot(s, ray.D)
	sigma := b*b - c

	// Check for negative discriminant and short segment.
	if sigma < 0.0 {
		return false
	}

	// Find the point of intersection of the line with the circle.
	t := -b - math.Sqrt(sigma)

	// Is the intersection point on the segment?
	if t < 0.0 || ray.T < t {
		return false
	}

	output.T = t
	output.Normal = Vec2Sub(ray.Impact(t), position).Normalized()
	return true
}

// Slab test from Real-time Collision Detection, p179. Rays starting inside
// the box do not hit.
func (bb AABB) RayCast(output *RayCastOutput, ray Ray, xf Transform) bool {
	local := ray.Local(xf)

	tmin := -MaxFloat
	tmax := MaxFloat

	p := local.P
	d := local.D
	absD := Vec2Abs(d)

	var normal Vec2

	for i := 0; i < 2; i++ {
		if absD.At(i) < Epsilon {
			// Parallel.
			if p.At(i) < bb.Min.At(i) || bb.Max.At(i) < p.At(i) {
				return false
			}
		} else {
			invD := 1.0 / d.At(i)
			t1 := (bb.Min.At(i) - p.At(i)) * invD
			t2 := (bb.Max.At(i) - p.At(i)) * invD

			// Sign of the normal vector.
			s := -1.0

			if t1 > t2 {
				t1, t2 = t2, t1
				s = 1.0
			}

			// Push the min up
			if t1 > tmin {
				normal.SetZero()
				normal.SetAt(i, s)
				tmin = t1
			}

			// Pull the max down
			tmax = math.Min(tmax, t2)

			if tmin > tmax {
				return false
			}
		}
	}

	// Does the ray start inside the box?
	// Does the ray intersect beyond the max length?
	if tmin < 0.0 || ray.T < tmin {
		return false
	}

	// Intersection.
	output.T = tmin
	output.Normal = RotVec2Mul(xf.Q, normal)
	return true
}

// Capsule ray cast in a frame where the capsule axis runs along +y from
// the origin. A ray starting inside the capsule hits at T = 0 with the
// outward normal nearest to its origin.
func (capsule Capsule) RayCast(output *RayCastOutput, ray Ray, xf Transform) bool {
	c := capsule.Transformed(xf)
	capN := Vec2Sub(c.B, c.A)
	length := capN.Length()

	if length < Epsilon {
		return capsuleStartInside(output, ray, c, MakeVec2(0.0, 1.0)) ||
			Circle{P: c.A, R: c.R}.RayCast(output, ray, MakeTransform())
	}

	// Columns of M are the frame axes: x is the right hand perpendicular,
	// y is the capsule axis.
	my := Vec2MulScalar(1.0/length, capN)
	mx := my.CW()
	M := MakeMat22FromColumns(mx, my)

	yBb := Mat22MulTVec2(M, capN)
	yAp := Mat22MulTVec2(M, Vec2Sub(ray.P, c.A))
	yAd := Mat22MulTVec2(M, ray.D)
	yAe := Vec2Add(yAp, Vec2MulScalar(ray.T, yAd))

	body := AABB{Min: MakeVec2(-c.R, 0.0), Max: MakeVec2(c.R, yBb.Y)}
	if body.Min.X <= yAp.X && yAp.X <= body.Max.X && body.Min.Y <= yAp.Y && yAp.Y <= body.Max.Y {
		output.T = 0.0
		if yAp.X < 0.0 {
			output.Normal = mx.Negate()
		} else {
			output.Normal = mx
		}
		return true
	}
	if capsuleStartInside(output, ray, c, mx) {
		return true
	}

	capA := Circle{P: c.A, R: c.R}
	capB := Circle{P: c.B, R: c.R}
	identity := MakeTransform()

	if yAe.X*yAp.X < 0.0 || math.Min(math.Abs(yAe.X), math.Abs(yAp.X)) < c.R {
		// Starts inside the prism around the axis: must hit a cap.
		if math.Abs(yAp.X) < c.R {
			if yAp.Y < 0.0 {
				return capA.RayCast(output, ray, identity)
			}
			return capB.RayCast(output, ray, identity)
		}

		// Crosses a wall of the prism.
		side := c.R
		if yAp.X <= 0.0 {
			side = -c.R
		}
		d := yAe.X - yAp.X
		t := (side - yAp.X) / d
		y := yAp.Y + (yAe.Y-yAp.Y)*t
		if y <= 0.0 {
			return capA.RayCast(output, ray, identity)
		}
		if y >= yBb.Y {
			return capB.RayCast(output, ray, identity)
		}

		if side > 0.0 {
			output.Normal = mx
		} else {
			output.Normal = mx.Negate()
		}
		output.T = t * ray.T
		return true
	}

	return false
}

// capsuleStartInside handles a ray origin inside one of the end discs.
// fallback is used when the origin sits exactly on the endpoint.
func capsuleStartInside(output *RayCastOutput, ray Ray, c Capsule, fallback Vec2) bool {
	r2 := c.R * c.R
	for _, end := range [2]Vec2{c.A, c.B} {
		d := Vec2Sub(ray.P, end)
		if d.LengthSquared() <= r2 {
			output.T = 0.0
			output.Normal = d.Normalized()
			if output.Normal.LengthSquared() == 0.0 {
				output.Normal = fallback
			}
			return true
		}
	}
	return false
}
