package pipeline

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/gridaxis/pkg/axis"
	"github.com/matzehuels/gridaxis/pkg/cache"
	"github.com/matzehuels/gridaxis/pkg/errors"
	"github.com/matzehuels/gridaxis/pkg/observability"
	"github.com/matzehuels/gridaxis/pkg/optimizer"
	"github.com/matzehuels/gridaxis/pkg/problem"
)

// Runner solves problems with caching. It holds no per-problem state, so a
// single Runner may serve concurrent requests.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner returns a Runner. A nil cache disables caching, a nil keyer
// selects cache.DefaultKeyer and a nil logger selects log.Default().
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if c == nil {
		c = cache.NewNullCache()
	}
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Cache: c, Keyer: keyer, Logger: logger}
}

// Bounds returns the min, max and preferred size of p.
func (r *Runner) Bounds(ctx context.Context, p *problem.Problem) (problem.Bounds, error) {
	hash, err := problemHash(p)
	if err != nil {
		return problem.Bounds{}, err
	}
	key := r.Keyer.BoundsKey(hash)
	if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
		var b problem.Bounds
		if json.Unmarshal(data, &b) == nil {
			return b, nil
		}
	}

	l, err := build(p)
	if err != nil {
		return problem.Bounds{}, err
	}
	b := problem.BoundsOf(l)
	if data, err := json.Marshal(b); err == nil {
		_ = r.Cache.Set(ctx, key, data, cache.TTLBounds)
	}
	return b, nil
}

// Solve lays p out at every requested size.
func (r *Runner) Solve(ctx context.Context, p *problem.Problem, opts Options) (res *Result, err error) {
	start := time.Now()
	observability.Solve().OnSolveStart(ctx, p.Name, p.Count())
	defer func() {
		strategy, n := "", 0
		if res != nil {
			strategy, n = res.Bounds.Strategy, len(res.Solutions)
		}
		observability.Solve().OnSolveComplete(ctx, p.Name, strategy, n, time.Since(start), err)
	}()

	hash, err := problemHash(p)
	if err != nil {
		return nil, err
	}
	l, err := build(p)
	if err != nil {
		return nil, err
	}

	res = &Result{Problem: p.Name, Hash: hash, Bounds: problem.BoundsOf(l)}
	sizes := opts.sizes(p, res.Bounds)
	if err := errors.ValidateSizeCount(len(sizes)); err != nil {
		return nil, err
	}
	for _, size := range sizes {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := errors.ValidateSize(size); err != nil {
			return nil, err
		}
		sol, hit, err := r.solveSize(ctx, l, hash, size, opts.Refresh)
		if err != nil {
			return nil, err
		}
		if hit {
			res.Stats.CacheHits++
		}
		res.Solutions = append(res.Solutions, *sol)
	}

	if len(res.Solutions) > 0 {
		for _, rx := range res.Solutions[0].Relaxed {
			observability.Solve().OnConstraintRelaxed(ctx, p.Name, rx.First, rx.Last, rx.Declared, rx.Relaxed)
			r.Logger.Warn("relaxed range maximum",
				"problem", p.Name,
				"first", rx.First,
				"last", rx.Last,
				"declared", rx.Declared,
				"relaxed", rx.Relaxed)
		}
	}

	res.Stats.Duration = time.Since(start)
	r.Logger.Info("solved axis",
		"problem", p.Name,
		"strategy", res.Bounds.Strategy,
		"elements", res.Bounds.Elements,
		"sizes", len(res.Solutions),
		"cached", res.Stats.CacheHits,
		"duration", res.Stats.Duration)
	return res, nil
}

func (r *Runner) solveSize(ctx context.Context, l axis.Layouter, hash string, size int, refresh bool) (*problem.Solution, bool, error) {
	key := r.Keyer.SolutionKey(hash, size)
	if !refresh {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			var sol problem.Solution
			if json.Unmarshal(data, &sol) == nil {
				r.Logger.Debug("cache hit", "size", size)
				return &sol, true, nil
			}
		}
	}

	sol, err := problem.Solve(l, size)
	if err != nil {
		return nil, false, solveError(err, size)
	}
	if data, err := json.Marshal(sol); err == nil {
		_ = r.Cache.Set(ctx, key, data, cache.TTLSolution)
	}
	return sol, false, nil
}

// Close releases the cache.
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

func build(p *problem.Problem) (axis.Layouter, error) {
	l, err := p.Build()
	if err != nil {
		return nil, err
	}
	if err := l.Validate(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeModeling, err, "problem %q", p.Name)
	}
	return l, nil
}

func problemHash(p *problem.Problem) (string, error) {
	data, err := p.Canonical()
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInternal, err, "encode problem")
	}
	return cache.Hash(data), nil
}

// solveError attaches a code to a failed layout.
func solveError(err error, size int) error {
	switch {
	case stderrors.Is(err, axis.ErrModeling):
		return errors.Wrap(errors.ErrCodeModeling, err, "layout at size %d", size)
	case stderrors.Is(err, optimizer.ErrNoIntegerSolution):
		return errors.Wrap(errors.ErrCodeNoIntegerSolution, err, "layout at size %d", size)
	default:
		return errors.Wrap(errors.ErrCodeSolverFailed, err, "layout at size %d", size)
	}
}
