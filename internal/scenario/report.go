package scenario

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/vmihailenco/msgpack/v5"
	"gopkg.in/yaml.v3"

	"github.com/Alexander-r/c2d.go"
)

var ErrUnknownFormat = errors.New("unknown report format")

// Point is a 2D point or direction in a report.
type Point = mgl64.Vec2

// Report holds the results of one run.
type Report struct {
	RunID    string   `yaml:"run_id" msgpack:"run_id"`
	Scenario string   `yaml:"scenario" msgpack:"scenario"`
	Results  []Result `yaml:"results" msgpack:"results"`
}

// Result of one query. Only the fields that make sense for Kind are set.
type Result struct {
	Name       string      `yaml:"name" msgpack:"name"`
	Kind       Kind        `yaml:"kind" msgpack:"kind"`
	Hit        bool        `yaml:"hit" msgpack:"hit"`
	Normal     Point       `yaml:"normal,flow" msgpack:"normal"`
	Points     []Point     `yaml:"points,omitempty,flow" msgpack:"points,omitempty"`
	Depths     []float64   `yaml:"depths,omitempty,flow" msgpack:"depths,omitempty"`
	Distance   float64     `yaml:"distance,omitempty" msgpack:"distance,omitempty"`
	TOI        float64     `yaml:"toi,omitempty" msgpack:"toi,omitempty"`
	T          float64     `yaml:"t,omitempty" msgpack:"t,omitempty"`
	Iterations int         `yaml:"iterations,omitempty" msgpack:"iterations,omitempty"`
	Steps      []SweepStep `yaml:"steps,omitempty" msgpack:"steps,omitempty"`
}

// SweepStep is the distance measured at one step of a sweep.
type SweepStep struct {
	T          float64 `yaml:"t" msgpack:"t"`
	Distance   float64 `yaml:"distance" msgpack:"distance"`
	Iterations int     `yaml:"iterations" msgpack:"iterations"`
}

// Hits counts the results that reported contact.
func (r *Report) Hits() int {
	n := 0
	for _, res := range r.Results {
		if res.Hit {
			n++
		}
	}
	return n
}

// Encode writes the report in the given format: text, yaml or msgpack.
func (r *Report) Encode(w io.Writer, format string) error {
	switch format {
	case "text", "":
		_, err := io.WriteString(w, r.Text())
		return err
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(r); err != nil {
			return err
		}
		return enc.Close()
	case "msgpack":
		return msgpack.NewEncoder(w).Encode(r)
	}
	return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
}

// DecodeReport reads a report written by Encode in yaml or msgpack.
func DecodeReport(data []byte, format string) (*Report, error) {
	var r Report
	var err error

	switch format {
	case "yaml":
		err = yaml.Unmarshal(data, &r)
	case "msgpack":
		err = msgpack.NewDecoder(bytes.NewReader(data)).Decode(&r)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
	if err != nil {
		return nil, err
	}
	return &r, nil
}

func point(v c2d.Vec2) Point {
	return Point{v.X, v.Y}
}

func clean(x float64) float64 {
	if math.Abs(x) < 5.0e-5 {
		return 0.0
	}
	return x
}

func fmtPoint(p Point) string {
	return fmt.Sprintf("(%.4f, %.4f)", clean(p.X()), clean(p.Y()))
}

// Text renders the report for humans, one block per query.
func (r *Report) Text() string {
	var b strings.Builder

	fmt.Fprintf(&b, "scenario %s (run %s): %d queries, %d hits\n", r.Scenario, r.RunID, len(r.Results), r.Hits())

	for _, res := range r.Results {
		fmt.Fprintf(&b, "%s [%s] hit = %v", res.Name, res.Kind, res.Hit)

		switch res.Kind {
		case KindCollide:
			if res.Hit {
				fmt.Fprintf(&b, ", normal = %s\n", fmtPoint(res.Normal))
				for i, p := range res.Points {
					fmt.Fprintf(&b, "  point %s depth %.4f\n", fmtPoint(p), clean(res.Depths[i]))
				}
				continue
			}
		case KindGJK:
			fmt.Fprintf(&b, ", distance = %.4f, iterations = %d", clean(res.Distance), res.Iterations)
		case KindTOI:
			fmt.Fprintf(&b, ", toi = %.4f", res.TOI)
			if res.Hit {
				fmt.Fprintf(&b, ", normal = %s, point = %s", fmtPoint(res.Normal), fmtPoint(res.Points[0]))
			}
		case KindRayCast:
			if res.Hit {
				fmt.Fprintf(&b, ", t = %.4f, normal = %s", res.T, fmtPoint(res.Normal))
			}
		case KindSweep:
			fmt.Fprintf(&b, ", first contact = %.4f, min distance = %.4f, iterations = %d",
				res.TOI, clean(res.Distance), res.Iterations)
		}
		b.WriteString("\n")
	}

	return b.String()
}
