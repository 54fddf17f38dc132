package scenario

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Alexander-r/c2d.go"
)

// Runner evaluates scenario queries on a bounded number of goroutines.
// Queries share no state, so results only depend on the scenario.
type Runner struct {
	log        *zap.Logger
	workers    int
	sweepSteps int
}

// NewRunner returns a runner. workers and sweepSteps below one are raised
// to one.
func NewRunner(log *zap.Logger, workers, sweepSteps int) *Runner {
	if log == nil {
		log = zap.NewNop()
	}
	return &Runner{
		log:        log,
		workers:    max(workers, 1),
		sweepSteps: max(sweepSteps, 1),
	}
}

// Run evaluates every query of sc. Results keep the order of the queries.
func (r *Runner) Run(ctx context.Context, sc *Scenario) (*Report, error) {
	runID := uuid.NewString()
	log := r.log.With(zap.String("run_id", runID), zap.String("scenario", sc.Name))

	start := time.Now()
	log.Info("run started", zap.Int("queries", len(sc.Queries)), zap.Int("workers", r.workers))

	results := make([]Result, len(sc.Queries))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(r.workers)

	for i := range sc.Queries {
		i := i
		q := &sc.Queries[i]
		g.Go(func() error {
			res, err := r.evaluate(ctx, q)
			if err != nil {
				log.Error("query failed", zap.String("query", q.Name), zap.Error(err))
				return fmt.Errorf("query %s: %w", q.Name, err)
			}
			log.Debug("query finished",
				zap.String("query", q.Name),
				zap.String("kind", string(q.Kind)),
				zap.Bool("hit", res.Hit),
				zap.Int("iterations", res.Iterations),
			)
			results[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	report := &Report{RunID: runID, Scenario: sc.Name, Results: results}
	log.Info("run finished",
		zap.Duration("elapsed", time.Since(start)),
		zap.Int("hits", report.Hits()),
	)
	return report, nil
}

func (r *Runner) evaluate(ctx context.Context, q *Query) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	res := Result{Name: q.Name, Kind: q.Kind}

	switch q.Kind {
	case KindCollide:
		m := c2d.Collide(q.A, &q.XfA, q.B, &q.XfB)
		res.Hit = m.PointCount > 0
		if res.Hit {
			res.Normal = point(m.Normal)
			for i := 0; i < m.PointCount; i++ {
				res.Points = append(res.Points, point(m.Points[i]))
				res.Depths = append(res.Depths, m.Depths[i])
			}
		}

	case KindCheck:
		res.Hit = c2d.Check(q.A, &q.XfA, q.B, &q.XfB)

	case KindGJK:
		out := c2d.GJK(q.A, &q.XfA, q.B, &q.XfB, q.UseRadius, nil)
		res.Hit = out.Hit
		res.Distance = out.Distance
		res.Points = []Point{point(out.PointA), point(out.PointB)}
		res.Iterations = out.Iterations

	case KindTOI:
		out := c2d.TimeOfImpact(q.A, &q.XfA, q.VelocityA, q.B, &q.XfB, q.VelocityB, q.UseRadius)
		res.Hit = out.Hit
		res.TOI = out.TOI
		res.Iterations = out.Iterations
		if out.Hit {
			res.Normal = point(out.Normal)
			res.Points = []Point{point(out.Point)}
		}

	case KindRayCast:
		out, hit := c2d.Cast(q.Ray, q.A, &q.XfA)
		res.Hit = hit
		if hit {
			res.T = out.T
			res.Normal = point(out.Normal)
			res.Points = []Point{point(q.Ray.Impact(out.T))}
		}

	case KindSweep:
		return r.sweep(ctx, q, res)

	default:
		return res, fmt.Errorf("%w: %q", ErrUnknownQuery, q.Kind)
	}

	return res, nil
}

// sweep steps both shapes along their velocities and measures the
// distance at each step. One cache is carried across the steps so each
// distance query starts from the previous simplex.
func (r *Runner) sweep(ctx context.Context, q *Query, res Result) (Result, error) {
	steps := q.Steps
	if steps == 0 {
		steps = r.sweepSteps
	}

	var cache c2d.GJKCache
	res.Distance = math.MaxFloat64
	res.TOI = 1.0

	for k := 0; k <= steps; k++ {
		if err := ctx.Err(); err != nil {
			return res, err
		}

		t := float64(k) / float64(steps)
		xfA := q.XfA
		xfA.P = c2d.Vec2Add(xfA.P, c2d.Vec2MulScalar(t, q.VelocityA))
		xfB := q.XfB
		xfB.P = c2d.Vec2Add(xfB.P, c2d.Vec2MulScalar(t, q.VelocityB))

		out := c2d.GJK(q.A, &xfA, q.B, &xfB, q.UseRadius, &cache)
		res.Steps = append(res.Steps, SweepStep{T: t, Distance: out.Distance, Iterations: out.Iterations})
		res.Iterations += out.Iterations
		res.Distance = math.Min(res.Distance, out.Distance)

		if !res.Hit && out.Distance < c2d.GJKEpsilon {
			res.Hit = true
			res.TOI = t
		}
	}

	return res, nil
}
