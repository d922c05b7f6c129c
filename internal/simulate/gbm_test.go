package simulate

import (
	"errors"
	"math"
	"testing"

	"github.com/contactkeval/option-pricer/internal/option"
)

// seqSource replays a fixed sequence of draws, cycling if exhausted.
type seqSource struct {
	vals []float64
	i    int
}

func (s *seqSource) Rand() float64 {
	v := s.vals[s.i%len(s.vals)]
	s.i++
	return v
}

func TestPathShape(t *testing.T) {
	src := &seqSource{vals: []float64{0.5, -1.2, 0.3}}
	path, err := Path(100, 2.0, 5, 0.05, 0.2, src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(path) != 5 {
		t.Fatalf("path length = %d, want 5", len(path))
	}
	if path[0].T != 0 || path[0].S != 100 {
		t.Fatalf("path must start at (0, S0), got (%v, %v)", path[0].T, path[0].S)
	}
	if math.Abs(path[len(path)-1].T-2.0) > 1e-12 {
		t.Fatalf("last sample time = %v, want 2.0", path[len(path)-1].T)
	}
	// dt = horizon/(steps-1)
	dt := 2.0 / 4
	for k, pt := range path {
		if math.Abs(pt.T-float64(k)*dt) > 1e-12 {
			t.Fatalf("sample %d at t=%v, want %v", k, pt.T, float64(k)*dt)
		}
	}
}

// With all draws at zero the path is the deterministic exponential
// S0 * exp((mu - sigma^2/2) t).
func TestPathZeroNoise(t *testing.T) {
	src := &seqSource{vals: []float64{0}}
	mu, sigma := 0.07, 0.3
	path, err := Path(80, 1.5, 10, mu, sigma, src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for k, pt := range path {
		want := 80 * math.Exp((mu-0.5*sigma*sigma)*pt.T)
		if math.Abs(pt.S-want) > 1e-9 {
			t.Fatalf("sample %d: S=%.12f, want %.12f", k, pt.S, want)
		}
	}
}

// Prices stay positive whatever the drift sign or volatility magnitude.
func TestPathPositivity(t *testing.T) {
	cases := []struct {
		mu, sigma float64
	}{
		{-0.5, 0.8},
		{0.2, 2.5},
		{-2.0, 0.05},
		{0, 0},
	}
	for i, c := range cases {
		src := NewNormalSource(uint64(i + 1))
		path, err := Path(100, 1, 500, c.mu, c.sigma, src)
		if err != nil {
			t.Fatalf("case %d: %v", i, err)
		}
		for k, pt := range path {
			if pt.S <= 0 {
				t.Fatalf("case %d: non-positive price %v at sample %d", i, pt.S, k)
			}
		}
	}
}

func TestPathDeterministicBySeed(t *testing.T) {
	a, err := Path(100, 1, 100, 0.05, 0.2, NewNormalSource(7))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := Path(100, 1, 100, 0.05, 0.2, NewNormalSource(7))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for k := range a {
		if a[k] != b[k] {
			t.Fatalf("paths diverge at sample %d: %v vs %v", k, a[k], b[k])
		}
	}
}

func TestTerminalMatchesPath(t *testing.T) {
	path, err := Path(100, 1, 250, 0.05, 0.2, NewNormalSource(11))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	term, err := Terminal(100, 1, 250, 0.05, 0.2, NewNormalSource(11))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(path.Terminal()-term) > 1e-12 {
		t.Fatalf("Terminal() = %.12f, Path terminal = %.12f", term, path.Terminal())
	}
}

func TestPathInvalidInputs(t *testing.T) {
	src := &seqSource{vals: []float64{0}}
	cases := []struct {
		name    string
		s0, h   float64
		steps   int
		sigma   float64
	}{
		{"one step", 100, 1, 1, 0.2},
		{"zero spot", 0, 1, 10, 0.2},
		{"negative spot", -5, 1, 10, 0.2},
		{"zero horizon", 100, 0, 10, 0.2},
		{"negative vol", 100, 1, 10, -0.2},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := Path(c.s0, c.h, c.steps, 0.05, c.sigma, src)
			if err == nil {
				t.Fatalf("expected error")
			}
			if !errors.Is(err, option.ErrInvalidInput) {
				t.Fatalf("error %v is not ErrInvalidInput", err)
			}
		})
	}
}
