// Command price-montecarlo estimates a European option price by simulating
// geometric Brownian motion paths and averaging discounted payoffs.
//
// Usage:
//
//	price-montecarlo --spot 100 --strike 100 --rate 0.05 --vol 0.2 --expiry 1 \
//	    --kind call --samples 10000 --resolution 1000 --seed 42
//
// The estimate is written to stdout as JSON; exit code 2 signals invalid
// inputs. By default the simulated drift equals the risk-free rate
// (risk-neutral pricing); --drift overrides it for real-world-measure
// experiments.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"math"
	"os"
	"os/signal"
	"time"

	"github.com/contactkeval/option-pricer/internal/cli"
	"github.com/contactkeval/option-pricer/internal/logger"
	"github.com/contactkeval/option-pricer/internal/montecarlo"
	"github.com/contactkeval/option-pricer/internal/option"
	"github.com/contactkeval/option-pricer/internal/report"
	"github.com/contactkeval/option-pricer/internal/simulate"
)

func main() {
	configPath := flag.String("config", "", "path to JSON scenario file")
	spot := flag.Float64("spot", 0, "spot price of the underlying")
	strike := flag.Float64("strike", 0, "strike price")
	rate := flag.Float64("rate", 0, "risk-free rate (annual, continuous)")
	vol := flag.Float64("vol", 0, "volatility (annual)")
	expiry := flag.Float64("expiry", 0, "time to expiry in years")
	kindStr := flag.String("kind", "call", "option kind: call or put")
	underlying := flag.String("underlying", "", "resolve spot from this ticker when --spot is not given")
	csvDir := flag.String("csv-dir", "", "directory of local <SYMBOL>.csv bar files")
	samples := flag.Int("samples", 10000, "number of independent paths")
	resolution := flag.Int("resolution", 1000, "points per path")
	seed := flag.Uint64("seed", 0, "random seed, 0 means time-based")
	drift := flag.Float64("drift", math.NaN(), "simulated drift, defaults to the risk-free rate")
	workers := flag.Int("workers", 0, "concurrent simulators, 0 means GOMAXPROCS")
	dist := flag.Bool("dist", false, "log terminal-price distribution quantiles")
	outDir := flag.String("out", "", "write estimate.json and path.csv to this directory")
	verbosity := flag.Int("v", 1, "verbosity: 0=errors 1=info 2=debug 3=trace")
	flag.Parse()

	logger.SetVerbosity(*verbosity)

	sc, err := cli.LoadScenario(*configPath)
	if err != nil {
		cli.Exit(err)
	}

	// Explicit flags win over scenario file values.
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "spot":
			sc.Spot = *spot
		case "strike":
			sc.Strike = *strike
		case "rate":
			sc.Rate = *rate
		case "vol":
			sc.Vol = *vol
		case "expiry":
			sc.Expiry = *expiry
		case "kind":
			sc.Kind = *kindStr
		case "underlying":
			sc.Underlying = *underlying
		case "samples":
			sc.Samples = *samples
		case "resolution":
			sc.Resolution = *resolution
		case "seed":
			sc.Seed = *seed
		case "workers":
			sc.Workers = *workers
		}
	})
	if sc.Kind == "" {
		sc.Kind = *kindStr
	}
	if sc.Samples == 0 {
		sc.Samples = *samples
	}
	if sc.Resolution == 0 {
		sc.Resolution = *resolution
	}
	if sc.Seed == 0 {
		sc.Seed = uint64(time.Now().UnixNano())
	}

	kind, err := option.ParseKind(sc.Kind)
	if err != nil {
		cli.Exit(err)
	}

	if err := cli.ResolveSpot(&sc, cli.NewProvider(*csvDir)); err != nil {
		cli.Exit(err)
	}
	spec := sc.Spec()

	mcDrift := *drift
	if math.IsNaN(mcDrift) {
		mcDrift = spec.Rate
	}

	cfg := montecarlo.Config{
		Drift:      mcDrift,
		Samples:    sc.Samples,
		Resolution: sc.Resolution,
		Workers:    sc.Workers,
		Seed:       sc.Seed,
	}

	// Ctrl-C cancels the batch loop instead of killing mid-write.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	start := time.Now()
	res, err := montecarlo.New(cfg).Price(ctx, spec, kind)
	if err != nil {
		cli.Exit(err)
	}
	logger.Infof("estimated %s in %v", kind, time.Since(start))

	if *dist {
		h := montecarlo.TerminalHistogram(res.Terminals, 50)
		logger.Infof("terminal price mean %.4f, quantiles p05=%.4f p25=%.4f p50=%.4f p75=%.4f p95=%.4f",
			h.Mean(), h.Quantile(.05), h.Quantile(.25), h.Quantile(.50), h.Quantile(.75), h.Quantile(.95))
	}

	if *outDir != "" {
		if err := os.MkdirAll(*outDir, 0755); err != nil {
			logger.Errorf("could not create output dir %s: %v", *outDir, err)
		} else {
			summary := report.Summary{Spec: spec, Kind: kind, Drift: mcDrift, Seed: sc.Seed, Estimate: res.Estimate}
			if err := report.WriteJSON(summary, *outDir); err != nil {
				logger.Errorf("writing estimate.json: %v", err)
			}
			path, err := simulate.Path(spec.Spot, spec.Expiry, sc.Resolution, mcDrift, spec.Vol, simulate.NewNormalSource(sc.Seed))
			if err == nil {
				if err := report.WriteCSV(path, *outDir); err != nil {
					logger.Errorf("writing path.csv: %v", err)
				}
			}
		}
	}

	enc := json.NewEncoder(os.Stdout)
	if err := enc.Encode(res.Estimate); err != nil {
		cli.Exit(err)
	}
}
