// Package experiment runs one independent Metropolis simulation per
// temperature on a bounded worker pool and collects the raw moments in
// input order.
package experiment

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/san-kum/isingsim/internal/fourier"
	"github.com/san-kum/isingsim/internal/lattice"
	"github.com/san-kum/isingsim/internal/metropolis"
	"github.com/san-kum/isingsim/internal/rng"
)

type Runner[S lattice.Spin, P lattice.Observable] struct {
	log *logrus.Logger
}

// NewRunner returns a runner logging to logger. A nil logger discards.
func NewRunner[S lattice.Spin, P lattice.Observable](logger *logrus.Logger) *Runner[S, P] {
	if logger == nil {
		logger = logrus.New()
		logger.SetOutput(io.Discard)
	}
	return &Runner[S, P]{log: logger}
}

// Run simulates every temperature of p on its own rows x columns lattice.
// The first error, including cancellation of ctx, aborts the whole run.
func (r *Runner[S, P]) Run(ctx context.Context, rows, columns int, p Params[P]) ([]Results[P], error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if rows <= 0 || columns <= 0 {
		return nil, fmt.Errorf("%w: %w: got %dx%d", ErrArrayInit, lattice.ErrInvalidDimensions, rows, columns)
	}
	p = p.withDefaults()

	var transformer *fourier.Transformer[S, P]
	if p.StructureFactor {
		transformer = fourier.NewTransformer[S, P](columns)
	}

	r.log.WithFields(logrus.Fields{
		"rows":         rows,
		"columns":      columns,
		"temperatures": len(p.Temperatures),
		"workers":      p.Workers,
		"rng":          p.RNG,
	}).Info("starting run")
	start := time.Now()

	results := make([]Results[P], len(p.Temperatures))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.Workers)

	for idx, temp := range p.Temperatures {
		g.Go(func() error {
			res, err := r.simulate(gctx, rows, columns, idx, temp, p, transformer)
			if err != nil {
				return err
			}
			results[idx] = res

			r.log.WithFields(logrus.Fields{
				"temperature": temp,
				"elapsed":     res.Elapsed.Round(time.Millisecond),
			}).Debug("temperature done")
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		r.log.WithError(err).Warn("run aborted")
		return nil, err
	}

	r.log.WithField("elapsed", time.Since(start).Round(time.Millisecond)).Info("run complete")
	return results, nil
}

func (r *Runner[S, P]) simulate(ctx context.Context, rows, columns, idx int, temp P, p Params[P], tr *fourier.Transformer[S, P]) (Results[P], error) {
	start := time.Now()

	src, err := rng.New(p.RNG, p.seedFor(idx))
	if err != nil {
		return Results[P]{}, err
	}
	gen, err := lattice.GeneratorFor[S](p.InitialState, src)
	if err != nil {
		return Results[P]{}, err
	}
	lat, err := lattice.New[S, P](rows, columns, gen)
	if err != nil {
		return Results[P]{}, fmt.Errorf("%w: %w", ErrArrayInit, err)
	}
	chain := metropolis.NewChain(lat, src, p.Coupling, p.Field)

	for n := 0; n < p.ThermalizationSweeps; n++ {
		if err := ctx.Err(); err != nil {
			return Results[P]{}, err
		}
		chain.Sweep(temp, p.Coupling, p.Field)
	}
	chain.Resync()

	acc := NewAccumulator[P](p.Samples())
	for n := 0; n < p.MeasurementSweeps; n++ {
		if err := ctx.Err(); err != nil {
			return Results[P]{}, err
		}
		if n%p.MeasureEvery == 0 {
			acc.Observe(chain.SpinSum(), chain.Energy())
			if tr != nil {
				acc.ObserveModes(tr.Power(lat))
			}
		}

		chain.Sweep(temp, p.Coupling, p.Field)
		if p.ResyncEvery > 0 && (n+1)%p.ResyncEvery == 0 {
			chain.Resync()
		}
	}

	res := acc.Results()
	res.Temperature = temp
	res.Elapsed = time.Since(start)
	return res, nil
}
