// Package scenario loads YAML descriptions of shapes and collision queries
// and evaluates them against the c2d engine.
package scenario

import (
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/go-gl/mathgl/mgl64"
	"gopkg.in/yaml.v3"

	"github.com/Alexander-r/c2d.go"
)

var (
	ErrUnknownShape  = errors.New("unknown shape type")
	ErrUnknownQuery  = errors.New("unknown query kind")
	ErrMissingShape  = errors.New("query references a missing shape")
	ErrTooManyPoints = errors.New("too many polygon points")
	ErrInvalidShape  = errors.New("invalid shape")
	ErrInvalidQuery  = errors.New("invalid query")
	ErrEmptyScenario = errors.New("scenario has no queries")
)

// Kind is the operation a query runs.
type Kind string

const (
	KindCollide Kind = "collide"
	KindCheck   Kind = "check"
	KindGJK     Kind = "gjk"
	KindTOI     Kind = "toi"
	KindRayCast Kind = "raycast"
	KindSweep   Kind = "sweep"
)

// File is the YAML layout of a scenario.
type File struct {
	Name    string               `yaml:"name"`
	Shapes  map[string]ShapeSpec `yaml:"shapes"`
	Queries []QuerySpec          `yaml:"queries"`
}

// ShapeSpec describes one shape. Which fields apply depends on Type.
type ShapeSpec struct {
	Type   string       `yaml:"type"` // circle, aabb, capsule, polygon or box
	Center mgl64.Vec2   `yaml:"center,omitempty"`
	Radius float64      `yaml:"radius,omitempty"`
	Min    mgl64.Vec2   `yaml:"min,omitempty"`
	Max    mgl64.Vec2   `yaml:"max,omitempty"`
	A      mgl64.Vec2   `yaml:"a,omitempty"`
	B      mgl64.Vec2   `yaml:"b,omitempty"`
	Points []mgl64.Vec2 `yaml:"points,omitempty"`
	Half   mgl64.Vec2   `yaml:"half,omitempty"` // box half extents
	Skin   float64      `yaml:"skin,omitempty"`
}

// Pose places a shape. Angle is in degrees.
type Pose struct {
	Position mgl64.Vec2 `yaml:"position"`
	Angle    float64    `yaml:"angle"`
}

// RaySpec is a ray from one point to another.
type RaySpec struct {
	From mgl64.Vec2 `yaml:"from"`
	To   mgl64.Vec2 `yaml:"to"`
}

// QuerySpec is one query as written in the file.
type QuerySpec struct {
	Name      string     `yaml:"name"`
	Kind      Kind       `yaml:"kind"`
	A         string     `yaml:"a"`
	B         string     `yaml:"b,omitempty"`
	PoseA     *Pose      `yaml:"pose_a,omitempty"`
	PoseB     *Pose      `yaml:"pose_b,omitempty"`
	VelocityA mgl64.Vec2 `yaml:"velocity_a,omitempty"`
	VelocityB mgl64.Vec2 `yaml:"velocity_b,omitempty"`
	UseRadius bool       `yaml:"use_radius,omitempty"`
	Ray       *RaySpec   `yaml:"ray,omitempty"`
	Steps     int        `yaml:"steps,omitempty"`
}

// Query is a QuerySpec resolved against the scenario's shapes.
type Query struct {
	Name      string
	Kind      Kind
	A         c2d.Shape
	B         c2d.Shape
	XfA       c2d.Transform
	XfB       c2d.Transform
	VelocityA c2d.Vec2
	VelocityB c2d.Vec2
	UseRadius bool
	Ray       c2d.Ray
	Steps     int // zero means the runner default
}

// Scenario is a parsed, ready to run scenario.
type Scenario struct {
	Name    string
	Shapes  map[string]c2d.Shape
	Queries []Query
}

func vec(v mgl64.Vec2) c2d.Vec2 {
	return c2d.MakeVec2(v.X(), v.Y())
}

func (p *Pose) transform() c2d.Transform {
	xf := c2d.MakeTransform()
	if p != nil {
		xf.Set(vec(p.Position), mgl64.DegToRad(p.Angle))
	}
	return xf
}

// Build turns the description into an engine shape.
func (s ShapeSpec) Build() (c2d.Shape, error) {
	var shape c2d.Shape

	switch s.Type {
	case "circle":
		if s.Radius < 0.0 {
			return nil, fmt.Errorf("%w: negative radius %v", ErrInvalidShape, s.Radius)
		}
		shape = c2d.MakeCircle(vec(s.Center), s.Radius)

	case "aabb":
		bb := c2d.MakeAABB(vec(s.Min), vec(s.Max))
		if !bb.IsValid() {
			return nil, fmt.Errorf("%w: min %v exceeds max %v", ErrInvalidShape, s.Min, s.Max)
		}
		shape = bb

	case "capsule":
		if s.Radius < 0.0 {
			return nil, fmt.Errorf("%w: negative radius %v", ErrInvalidShape, s.Radius)
		}
		shape = c2d.MakeCapsule(vec(s.A), vec(s.B), s.Radius)

	case "box":
		if s.Half.X() <= 0.0 || s.Half.Y() <= 0.0 {
			return nil, fmt.Errorf("%w: box half extents %v", ErrInvalidShape, s.Half)
		}
		shape = c2d.MakeBoxPolygon(s.Half.X(), s.Half.Y())

	case "polygon":
		if len(s.Points) > c2d.MaxPolygonVertices {
			return nil, fmt.Errorf("%w: %d > %d", ErrTooManyPoints, len(s.Points), c2d.MaxPolygonVertices)
		}
		points := make([]c2d.Vec2, len(s.Points))
		for i, p := range s.Points {
			points[i] = vec(p)
		}
		poly := c2d.MakePolygon(points)
		if poly.Count < 3 {
			return nil, fmt.Errorf("%w: polygon points are degenerate", ErrInvalidShape)
		}
		shape = poly

	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownShape, s.Type)
	}

	if s.Skin != 0.0 {
		return c2d.Inflate(shape, s.Skin)
	}
	return shape, nil
}

// Parse decodes and resolves a scenario.
func Parse(data []byte) (*Scenario, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("decoding scenario: %w", err)
	}
	return f.Resolve()
}

// Load reads and parses a scenario file.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	sc, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if sc.Name == "" {
		sc.Name = path
	}
	return sc, nil
}

// Resolve builds every shape and binds the queries to them.
func (f *File) Resolve() (*Scenario, error) {
	sc := &Scenario{
		Name:   f.Name,
		Shapes: make(map[string]c2d.Shape, len(f.Shapes)),
	}

	// Sorted so the first reported error does not depend on map order.
	names := make([]string, 0, len(f.Shapes))
	for name := range f.Shapes {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		shape, err := f.Shapes[name].Build()
		if err != nil {
			return nil, fmt.Errorf("shape %q: %w", name, err)
		}
		sc.Shapes[name] = shape
	}

	if len(f.Queries) == 0 {
		return nil, ErrEmptyScenario
	}

	for i, spec := range f.Queries {
		q, err := sc.resolveQuery(spec)
		if err != nil {
			return nil, fmt.Errorf("query %d (%s): %w", i, spec.Name, err)
		}
		if q.Name == "" {
			q.Name = fmt.Sprintf("%s-%d", q.Kind, i)
		}
		sc.Queries = append(sc.Queries, q)
	}

	return sc, nil
}

func (sc *Scenario) shape(name string) (c2d.Shape, error) {
	shape, ok := sc.Shapes[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrMissingShape, name)
	}
	return shape, nil
}

func (sc *Scenario) resolveQuery(spec QuerySpec) (Query, error) {
	q := Query{
		Name:      spec.Name,
		Kind:      spec.Kind,
		XfA:       spec.PoseA.transform(),
		XfB:       spec.PoseB.transform(),
		VelocityA: vec(spec.VelocityA),
		VelocityB: vec(spec.VelocityB),
		UseRadius: spec.UseRadius,
		Steps:     spec.Steps,
	}

	var err error
	if q.A, err = sc.shape(spec.A); err != nil {
		return q, err
	}

	switch spec.Kind {
	case KindRayCast:
		if spec.Ray == nil {
			return q, fmt.Errorf("%w: raycast needs a ray", ErrInvalidQuery)
		}
		q.Ray = c2d.MakeRay(vec(spec.Ray.From), vec(spec.Ray.To))
		return q, nil

	case KindCollide, KindCheck, KindGJK, KindTOI, KindSweep:
		if spec.Steps < 0 {
			return q, fmt.Errorf("%w: negative steps", ErrInvalidQuery)
		}
		q.B, err = sc.shape(spec.B)
		return q, err
	}

	return q, fmt.Errorf("%w: %q", ErrUnknownQuery, spec.Kind)
}
