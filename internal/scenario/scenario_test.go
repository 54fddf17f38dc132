package scenario

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alexander-r/c2d.go"
)

const examplePath = "../../testdata/scenarios/example.yaml"

func TestLoadExample(t *testing.T) {
	sc, err := Load(examplePath)
	require.NoError(t, err)

	assert.Equal(t, "example", sc.Name)
	assert.Len(t, sc.Shapes, 6)
	require.Len(t, sc.Queries, 8)

	assert.Equal(t, c2d.ShapeCircle, sc.Shapes["ball"].GetType())
	assert.Equal(t, c2d.ShapeAABB, sc.Shapes["crate"].GetType())
	assert.Equal(t, c2d.ShapeCapsule, sc.Shapes["rod"].GetType())
	assert.Equal(t, c2d.ShapePolygon, sc.Shapes["wedge"].GetType())

	// Skin is applied when the shape is built.
	padded := sc.Shapes["padded"].(c2d.Polygon)
	assert.InDelta(t, 9.0, padded.Area(), 1.0e-9)

	// Angles are given in degrees.
	ray := sc.Queries[6]
	assert.Equal(t, KindRayCast, ray.Kind)
	assert.True(t, mgl64.FloatEqualThreshold(mgl64.DegToRad(90.0), ray.XfA.Q.GetAngle(), 1.0e-12))
	assert.Equal(t, c2d.MakeVec2(1.0, 0.0), ray.Ray.D)
	assert.Equal(t, 10.0, ray.Ray.T)
}

func TestParseDefaultsQueryNames(t *testing.T) {
	sc, err := Parse([]byte(`
shapes:
  a: {type: circle, radius: 1}
queries:
  - {kind: check, a: a, b: a}
`))
	require.NoError(t, err)
	assert.Equal(t, "check-0", sc.Queries[0].Name)
	assert.True(t, sc.Queries[0].XfA.Q.IsIdentity())
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		err  error
	}{
		{
			name: "unknown shape",
			yaml: "shapes:\n  a: {type: star}\nqueries:\n  - {kind: check, a: a, b: a}\n",
			err:  ErrUnknownShape,
		},
		{
			name: "unknown query",
			yaml: "shapes:\n  a: {type: circle, radius: 1}\nqueries:\n  - {kind: explode, a: a, b: a}\n",
			err:  ErrUnknownQuery,
		},
		{
			name: "missing shape",
			yaml: "shapes:\n  a: {type: circle, radius: 1}\nqueries:\n  - {kind: collide, a: a, b: nope}\n",
			err:  ErrMissingShape,
		},
		{
			name: "too many points",
			yaml: "shapes:\n  a: {type: polygon, points: [[0,0],[1,0],[2,1],[3,3],[2,5],[0,6],[-2,5],[-3,3],[-2,1]]}\nqueries:\n  - {kind: check, a: a, b: a}\n",
			err:  ErrTooManyPoints,
		},
		{
			name: "collinear polygon",
			yaml: "shapes:\n  a: {type: polygon, points: [[0,0],[1,1],[2,2]]}\nqueries:\n  - {kind: check, a: a, b: a}\n",
			err:  ErrInvalidShape,
		},
		{
			name: "inverted aabb",
			yaml: "shapes:\n  a: {type: aabb, min: [1, 1], max: [0, 0]}\nqueries:\n  - {kind: check, a: a, b: a}\n",
			err:  ErrInvalidShape,
		},
		{
			name: "raycast without ray",
			yaml: "shapes:\n  a: {type: circle, radius: 1}\nqueries:\n  - {kind: raycast, a: a}\n",
			err:  ErrInvalidQuery,
		},
		{
			name: "skin collapses box",
			yaml: "shapes:\n  a: {type: box, half: [1, 1], skin: -2}\nqueries:\n  - {kind: check, a: a, b: a}\n",
			err:  c2d.ErrDegenerateInflate,
		},
		{
			name: "no queries",
			yaml: "shapes:\n  a: {type: circle, radius: 1}\n",
			err:  ErrEmptyScenario,
		},
	}

	for _, tc := range tests {
		_, err := Parse([]byte(tc.yaml))
		assert.ErrorIs(t, err, tc.err, tc.name)
	}
}

func TestParseBadYAML(t *testing.T) {
	_, err := Parse([]byte("shapes: [not, a, map"))
	assert.Error(t, err)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.True(t, os.IsNotExist(err))
}
