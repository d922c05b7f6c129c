// Command price-analytic prints the closed-form Black-Scholes price of a
// European option.
//
// Usage:
//
//	price-analytic --spot 100 --strike 100 --rate 0.05 --vol 0.2 --expiry 1 --kind call
//
// Exit code 2 signals invalid inputs; the price is written to stdout.
package main

import (
	"flag"
	"fmt"

	"github.com/contactkeval/option-pricer/internal/cli"
	"github.com/contactkeval/option-pricer/internal/logger"
	"github.com/contactkeval/option-pricer/internal/option"
	"github.com/contactkeval/option-pricer/internal/pricing"
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
	verbosity := flag.Int("v", 1, "verbosity: 0=errors 1=info 2=debug 3=trace")
	flag.Parse()

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
		}
	})
	if sc.Kind == "" {
		sc.Kind = *kindStr
	}
	logger.SetVerbosity(*verbosity)

	kind, err := option.ParseKind(sc.Kind)
	if err != nil {
		cli.Exit(err)
	}

	if err := cli.ResolveSpot(&sc, cli.NewProvider(*csvDir)); err != nil {
		cli.Exit(err)
	}

	price, err := pricing.Price(sc.Spec(), kind)
	if err != nil {
		cli.Exit(err)
	}
	fmt.Printf("%.6f\n", price)
}
