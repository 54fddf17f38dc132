package c2d

// Output parameters for TimeOfImpact.
type TOIOutput struct {
	Hit        bool
	TOI        float64 // fraction of the step in [0, 1]
	Normal     Vec2    // from A toward B at the time of impact
	Point      Vec2    // contact point on A at the time of impact
	Iterations int
}

// Compute the upper bound on time before two shapes penetrate. Time is
// a fraction of the step: A moves by vA and B by vB over [0, 1]. Uses
// conservative advancement on the Minkowski difference of the swept
// shapes. Radii are ignored unless useRadius is set.
//
// No iteration runs when the starting support points already lie within
// the summed radii, as with overlapping circles at t = 0. The result is
// then Hit == false with TOI == 1 and zero Iterations, the same as a miss.
// Test for overlap at the start of the step with Check first.
func TimeOfImpact(a Shape, xfA *Transform, vA Vec2, b Shape, xfB *Transform, vB Vec2, useRadius bool) TOIOutput {
	ax := xfOrIdentity(xfA)
	bx := xfOrIdentity(xfB)

	proxyA := MakeDistanceProxy(a)
	proxyB := MakeDistanceProxy(b)

	output := TOIOutput{TOI: 1.0}
	if proxyA.Count == 0 || proxyB.Count == 0 {
		return output
	}

	t := 0.0
	rv := Vec2Sub(vB, vA)

	iA := proxyA.GetSupport(RotVec2MulT(ax.Q, rv.Negate()))
	sA := TransformVec2Mul(ax, proxyA.Vertices[iA])
	iB := proxyB.GetSupport(RotVec2MulT(bx.Q, rv))
	sB := TransformVec2Mul(bx, proxyB.Vertices[iB])
	v := Vec2Sub(sA, sB)

	rA := proxyA.Radius
	rB := proxyB.Radius
	if !useRadius {
		rA = 0.0
		rB = 0.0
	}
	radius := rA + rB

	var s simplex

	for output.Iterations < MaxTOIIterations && v.Length()-radius > TOITolerance {
		iA = proxyA.GetSupport(RotVec2MulT(ax.Q, v.Negate()))
		sA = TransformVec2Mul(ax, proxyA.Vertices[iA])
		iB = proxyB.GetSupport(RotVec2MulT(bx.Q, v))
		sB = TransformVec2Mul(bx, proxyB.Vertices[iB])
		p := Vec2Sub(sA, sB)

		v.Normalize()
		vp := Vec2Dot(v, p) - radius
		vr := Vec2Dot(v, rv)

		if vp > t*vr {
			// Moving apart, or parallel: never closes the gap.
			if vr <= 0.0 {
				return output
			}
			t = vp / vr
			if t > 1.0 {
				return output
			}
			output.Normal = v.Negate()
			s.Count = 0
		}

		// Grow the simplex with B advanced to time t.
		sv := &s.V[s.Count]
		sv.IndexA = iB
		sv.WA = Vec2Add(sB, Vec2MulScalar(t, rv))
		sv.IndexB = iA
		sv.WB = sA
		sv.W = Vec2Sub(sv.WB, sv.WA)
		sv.U = 1.0
		s.Count++

		s.solve()
		if s.Count == 3 {
			break
		}

		v = s.closest()
		output.Iterations++
	}

	if output.Iterations == 0 {
		output.Hit = false
		return output
	}

	if v.LengthSquared() > 0.0 {
		output.Normal = v.Negate().Normalized()
	}

	i := proxyA.GetSupport(RotVec2MulT(ax.Q, output.Normal))
	point := TransformVec2Mul(ax, proxyA.Vertices[i])
	point = Vec2Add(point, Vec2MulScalar(rA, output.Normal))
	output.Point = Vec2Add(point, Vec2MulScalar(t, vA))
	output.TOI = t
	output.Hit = true

	return output
}
