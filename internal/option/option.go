// Package option holds the contract and market parameters shared by the
// analytic and Monte Carlo pricers.
package option

import (
	"strings"

	"github.com/pkg/errors"
)

// ErrInvalidInput is returned for mathematical domain violations: non-positive
// spot/strike/expiry, negative volatility, degenerate sample counts. These are
// never transient; callers should not retry.
var ErrInvalidInput = errors.New("invalid input")

// Kind selects the payoff of a European option.
type Kind string

const (
	Call Kind = "call"
	Put  Kind = "put"
)

// ParseKind accepts "call"/"put" (case-insensitive, "c"/"p" shorthands).
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "call", "c":
		return Call, nil
	case "put", "p":
		return Put, nil
	}
	return "", errors.Wrapf(ErrInvalidInput, "unknown option kind %q", s)
}

// Payoff is the cash value at expiration given the terminal underlying price.
func (k Kind) Payoff(terminal, strike float64) float64 {
	var v float64
	switch k {
	case Call:
		v = terminal - strike
	case Put:
		v = strike - terminal
	}
	if v < 0 {
		return 0
	}
	return v
}

// Spec fixes the market and contract parameters for one option. Value type,
// constructed once per pricing request and never mutated.
type Spec struct {
	Spot   float64 `json:"spot"`   // current underlying price, > 0
	Strike float64 `json:"strike"` // strike price, > 0
	Rate   float64 `json:"rate"`   // continuously compounded risk-free rate
	Vol    float64 `json:"vol"`    // annualized volatility, >= 0
	Expiry float64 `json:"expiry"` // time to expiry in years, > 0
}

// Validate checks the domain invariants common to both pricers.
func (s Spec) Validate() error {
	switch {
	case s.Spot <= 0:
		return errors.Wrapf(ErrInvalidInput, "spot %v must be positive", s.Spot)
	case s.Strike <= 0:
		return errors.Wrapf(ErrInvalidInput, "strike %v must be positive", s.Strike)
	case s.Expiry <= 0:
		return errors.Wrapf(ErrInvalidInput, "expiry %v must be positive", s.Expiry)
	case s.Vol < 0:
		return errors.Wrapf(ErrInvalidInput, "volatility %v must not be negative", s.Vol)
	}
	return nil
}
