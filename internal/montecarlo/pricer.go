// Package montecarlo estimates European option prices by averaging
// discounted payoffs over independent geometric Brownian motion paths.
package montecarlo

import (
	"context"
	"math"
	"runtime"

	"github.com/VividCortex/gohistogram"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/stat"

	"github.com/contactkeval/option-pricer/internal/logger"
	"github.com/contactkeval/option-pricer/internal/option"
	"github.com/contactkeval/option-pricer/internal/simulate"
)

// seedGamma spaces per-worker seeds; the golden-ratio increment keeps the
// derived streams from colliding for any base seed.
const seedGamma = 0x9e3779b97f4a7c15

// Config controls one Monte Carlo run.
type Config struct {
	Drift      float64 // drift of the simulated measure; risk-neutral pricing passes the risk-free rate
	Samples    int     // number of independent paths, >= 1
	Resolution int     // points per path, >= 2
	Workers    int     // concurrent simulators; 0 means GOMAXPROCS
	Seed       uint64  // base seed for the per-worker random streams
}

// Estimate is the Monte Carlo output. StdError is the sample standard
// deviation of the discounted payoffs divided by sqrt(SampleCount); the
// estimator error shrinks as 1/sqrt(SampleCount).
type Estimate struct {
	Value       float64 `json:"value"`
	SampleCount int     `json:"samples"`
	StdError    float64 `json:"std_error"`
}

// Result couples the estimate with the terminal prices that produced it, in
// draw order. Keeping the draws lets callers reprice the other payoff on the
// same sample or summarize the terminal distribution without re-simulating.
type Result struct {
	Estimate  Estimate
	Terminals []float64
}

// Pricer runs Monte Carlo estimates under a fixed configuration.
type Pricer struct {
	cfg Config
}

func New(cfg Config) *Pricer {
	return &Pricer{cfg: cfg}
}

// Price estimates the discounted expected payoff of the option under the
// configured measure. The estimator is unbiased; any simulation failure
// aborts the whole run, since silently dropping a path would bias the
// average. Cancelling ctx stops in-flight workers.
func (p *Pricer) Price(ctx context.Context, spec option.Spec, kind option.Kind) (*Result, error) {
	terminals, err := p.terminals(ctx, spec)
	if err != nil {
		return nil, err
	}
	return &Result{
		Estimate:  Discounted(terminals, spec, kind),
		Terminals: terminals,
	}, nil
}

// Discounted turns a terminal-price sample into a price estimate for the
// given payoff. Pure function of the draws, so call and put estimates over
// the same Result are guaranteed to share them.
func Discounted(terminals []float64, spec option.Spec, kind option.Kind) Estimate {
	payoffs := make([]float64, len(terminals))
	for i, s := range terminals {
		payoffs[i] = kind.Payoff(s, spec.Strike)
	}

	df := math.Exp(-spec.Rate * spec.Expiry)
	mean, std := stat.MeanStdDev(payoffs, nil)

	// A single draw has no sample variance; report zero rather than NaN.
	stdErr := 0.0
	if len(payoffs) > 1 {
		stdErr = df * std / math.Sqrt(float64(len(payoffs)))
	}

	return Estimate{
		Value:       df * mean,
		SampleCount: len(payoffs),
		StdError:    stdErr,
	}
}

// TerminalHistogram summarizes a terminal-price sample as a streaming
// histogram; useful for quantile reporting on large runs.
func TerminalHistogram(terminals []float64, bins int) *gohistogram.NumericHistogram {
	h := gohistogram.NewHistogram(bins)
	for _, s := range terminals {
		h.Add(s)
	}
	return h
}

// terminals draws cfg.Samples independent terminal prices. The sample is
// split across workers, each with its own random stream derived from the
// base seed, and every worker writes a disjoint range of the output slice.
// The result depends only on the seed, not on scheduling.
func (p *Pricer) terminals(ctx context.Context, spec option.Spec) ([]float64, error) {
	cfg := p.cfg
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	if cfg.Samples < 1 {
		return nil, errors.Wrapf(option.ErrInvalidInput, "sample count %d must be at least 1", cfg.Samples)
	}
	if cfg.Resolution < 2 {
		return nil, errors.Wrapf(option.ErrInvalidInput, "path resolution %d must be at least 2", cfg.Resolution)
	}

	workers := cfg.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > cfg.Samples {
		workers = cfg.Samples
	}

	logger.Debugf("simulating %d paths of %d points across %d workers (seed=%d)",
		cfg.Samples, cfg.Resolution, workers, cfg.Seed)

	terminals := make([]float64, cfg.Samples)
	per := cfg.Samples / workers

	g, ctx := errgroup.WithContext(ctx)
	for i := 0; i < workers; i++ {
		lo := i * per
		hi := lo + per
		if i == workers-1 {
			hi = cfg.Samples // last worker takes the remainder
		}
		src := simulate.NewNormalSource(cfg.Seed + uint64(i)*seedGamma)

		g.Go(func() error {
			for k := lo; k < hi; k++ {
				if err := ctx.Err(); err != nil {
					return err
				}
				s, err := simulate.Terminal(spec.Spot, spec.Expiry, cfg.Resolution, cfg.Drift, spec.Vol, src)
				if err != nil {
					return err
				}
				terminals[k] = s
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return terminals, nil
}
