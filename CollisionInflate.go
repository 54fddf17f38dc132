package c2d

import (
	"fmt"
)

// Inflate grows a shape outward by skin. Circles and capsules gain radius,
// boxes grow on every side and polygon faces move out along their normals.
// A negative skin shrinks the shape as long as it stays well formed.
func Inflate(shape Shape, skin float64) (Shape, error) {
	if !IsValid(skin) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSkin, skin)
	}

	switch s := shape.(type) {
	case Circle:
		if s.R+skin < 0.0 {
			return nil, fmt.Errorf("%w: radius %v shrinks below zero", ErrInvalidSkin, s.R)
		}
		s.R += skin
		return s, nil

	case Capsule:
		if s.R+skin < 0.0 {
			return nil, fmt.Errorf("%w: radius %v shrinks below zero", ErrInvalidSkin, s.R)
		}
		s.R += skin
		return s, nil

	case AABB:
		e := MakeVec2(skin, skin)
		out := AABB{Min: Vec2Sub(s.Min, e), Max: Vec2Add(s.Max, e)}
		if !out.IsValid() {
			return nil, fmt.Errorf("%w: box inverts", ErrInvalidSkin)
		}
		return out, nil

	case Polygon:
		return InflatePolygon(s, skin)
	}

	return nil, ErrUnknownShape
}

// InflatePolygon pushes every face of poly out by skin. Each face plane is
// mapped to its dual point n / d about the vertex average; the hull of
// the dual points mapped back the same way is the inflated polygon.
func InflatePolygon(poly Polygon, skin float64) (Polygon, error) {
	if !IsValid(skin) {
		return Polygon{}, fmt.Errorf("%w: %v", ErrInvalidSkin, skin)
	}
	if poly.Count < 3 {
		return Polygon{}, fmt.Errorf("%w: polygon has %d vertices", ErrDegenerateInflate, poly.Count)
	}

	average := poly.VertexAverage()
	centered := poly
	for i := 0; i < poly.Count; i++ {
		centered.Vertices[i] = Vec2Sub(poly.Vertices[i], average)
	}

	dual, err := dualPolygon(centered, skin)
	if err != nil {
		return Polygon{}, err
	}
	out, err := dualPolygon(dual, 0.0)
	if err != nil {
		return Polygon{}, err
	}

	for i := 0; i < out.Count; i++ {
		out.Vertices[i] = Vec2Add(out.Vertices[i], average)
	}
	return out, nil
}

// dualPolygon maps face i, offset by skin, to the point n / d. The origin
// must be strictly inside every offset face.
func dualPolygon(poly Polygon, skin float64) (Polygon, error) {
	var points [MaxPolygonVertices]Vec2
	for i := 0; i < poly.Count; i++ {
		h := poly.Face(i)
		d := h.D + skin
		if d <= 0.0 {
			return Polygon{}, fmt.Errorf("%w: face %d offset %v", ErrDegenerateInflate, i, d)
		}
		points[i] = Vec2MulScalar(1.0/d, h.N)
	}

	dual := MakePolygon(points[:poly.Count])
	if dual.Count < 3 {
		return Polygon{}, fmt.Errorf("%w: dual hull collapsed", ErrDegenerateInflate)
	}
	return dual, nil
}
