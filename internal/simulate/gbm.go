// Package simulate generates discretized sample paths of geometric Brownian
// motion. Randomness is injected through NormalSource so runs are
// deterministic under test and parallel-safe when each worker owns its own
// source.
package simulate

import (
	"math"

	"github.com/pkg/errors"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/contactkeval/option-pricer/internal/option"
)

// NormalSource yields independent draws from N(0,1). Satisfied by
// distuv.Normal and by deterministic stubs in tests.
type NormalSource interface {
	Rand() float64
}

// NewNormalSource returns a seedable standard-normal source. Sources are not
// safe for concurrent use; give each worker its own.
func NewNormalSource(seed uint64) NormalSource {
	return distuv.Normal{Mu: 0, Sigma: 1, Src: rand.NewSource(seed)}
}

// PathPoint is one (time, price) sample of a simulated path.
type PathPoint struct {
	T float64 `json:"t"`
	S float64 `json:"s"`
}

// PricePath is one simulation run, ordered by time. The first point is
// always (0, S0) and every price is strictly positive.
type PricePath []PathPoint

// Terminal returns the price at the last sample point.
func (p PricePath) Terminal() float64 {
	return p[len(p)-1].S
}

// Path simulates geometric Brownian motion over [0, horizon] at steps evenly
// spaced points, using the exact solution of the log-price SDE:
//
//	S_k = S0 * exp((mu - sigma²/2)·t_k + sigma·W_k)
//
// where W is a discrete Brownian motion built from cumulative sqrt(dt)-scaled
// draws of src, so Var(W_k) = t_k. Prices stay positive for any drift or
// volatility because the process lives in the log domain.
func Path(s0, horizon float64, steps int, mu, sigma float64, src NormalSource) (PricePath, error) {
	if err := validate(s0, horizon, steps, sigma); err != nil {
		return nil, err
	}

	dt := horizon / float64(steps-1)
	sqrtDt := math.Sqrt(dt)
	driftTerm := mu - 0.5*sigma*sigma

	path := make(PricePath, steps)
	path[0] = PathPoint{T: 0, S: s0}

	w := 0.0
	for k := 1; k < steps; k++ {
		w += src.Rand() * sqrtDt
		t := float64(k) * dt
		path[k] = PathPoint{T: t, S: s0 * math.Exp(driftTerm*t+sigma*w)}
	}
	return path, nil
}

// Terminal simulates a path and returns only its final price. Same contract
// as Path without materializing the intermediate samples.
func Terminal(s0, horizon float64, steps int, mu, sigma float64, src NormalSource) (float64, error) {
	if err := validate(s0, horizon, steps, sigma); err != nil {
		return 0, err
	}

	dt := horizon / float64(steps-1)
	sqrtDt := math.Sqrt(dt)

	w := 0.0
	for k := 1; k < steps; k++ {
		w += src.Rand() * sqrtDt
	}
	return s0 * math.Exp((mu-0.5*sigma*sigma)*horizon + sigma*w), nil
}

func validate(s0, horizon float64, steps int, sigma float64) error {
	switch {
	case s0 <= 0:
		return errors.Wrapf(option.ErrInvalidInput, "initial price %v must be positive", s0)
	case horizon <= 0:
		return errors.Wrapf(option.ErrInvalidInput, "horizon %v must be positive", horizon)
	case steps < 2:
		return errors.Wrapf(option.ErrInvalidInput, "need at least 2 path points, got %d", steps)
	case sigma < 0:
		return errors.Wrapf(option.ErrInvalidInput, "volatility %v must not be negative", sigma)
	}
	return nil
}
