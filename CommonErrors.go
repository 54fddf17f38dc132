package c2d

import "errors"

var (
	// ErrInvalidSkin is returned by Inflate when the skin is not finite or
	// would turn a radius or box extent negative.
	ErrInvalidSkin = errors.New("c2d: invalid inflation skin")
	// ErrDegenerateInflate is returned when a polygon cannot be inflated
	// by the requested skin without collapsing a face.
	ErrDegenerateInflate = errors.New("c2d: inflation collapses polygon")
	ErrUnknownShape      = errors.New("c2d: unknown shape type")
)
