// Package cli carries the pieces shared by the pricing commands: the JSON
// scenario file, spot resolution through the data provider chain, and the
// error-to-exit-code mapping.
package cli

import (
	"encoding/json"
	"errors"
	"os"

	"github.com/contactkeval/option-pricer/internal/data"
	"github.com/contactkeval/option-pricer/internal/logger"
	"github.com/contactkeval/option-pricer/internal/option"
)

// Scenario mirrors the command flags so a pricing request can be kept in a
// JSON file. Explicitly set flags override file values.
type Scenario struct {
	Spot       float64 `json:"spot,omitempty"`
	Strike     float64 `json:"strike,omitempty"`
	Rate       float64 `json:"rate,omitempty"`
	Vol        float64 `json:"vol,omitempty"`
	Expiry     float64 `json:"expiry,omitempty"`
	Kind       string  `json:"kind,omitempty"`
	Underlying string  `json:"underlying,omitempty"` // resolved to Spot when Spot is unset
	Samples    int     `json:"samples,omitempty"`
	Resolution int     `json:"resolution,omitempty"`
	Seed       uint64  `json:"seed,omitempty"`
	Workers    int     `json:"workers,omitempty"`
}

// LoadScenario reads a scenario JSON file. An empty path yields a zero
// scenario.
func LoadScenario(path string) (Scenario, error) {
	var s Scenario
	if path == "" {
		return s, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return s, err
	}
	if err := json.Unmarshal(b, &s); err != nil {
		return s, err
	}
	return s, nil
}

// NewProvider builds the market data fallback chain: local CSV files when a
// directory is given, then Polygon when an API key is present, then
// synthetic data.
func NewProvider(csvDir string) data.Provider {
	var prov data.Provider = data.NewSyntheticProvider()
	if apiKey := os.Getenv("POLYGON_API_KEY"); apiKey != "" {
		prov = data.NewPolygonDataProvider(apiKey, prov)
		logger.Infof("polygon provider enabled")
	} else {
		logger.Infof("synthetic provider enabled")
	}
	if csvDir != "" {
		prov = data.NewLocalFileDataProvider(csvDir, prov)
		logger.Infof("local csv provider enabled at %s", csvDir)
	}
	return prov
}

// ResolveSpot fills sc.Spot from the underlying's latest close when no spot
// was supplied directly.
func ResolveSpot(sc *Scenario, prov data.Provider) error {
	if sc.Spot > 0 || sc.Underlying == "" {
		return nil
	}
	spot, err := data.LatestSpot(prov, sc.Underlying)
	if err != nil {
		return err
	}
	logger.Infof("resolved %s spot to %.2f", sc.Underlying, spot)
	sc.Spot = spot
	return nil
}

// Spec builds the validated option spec from the scenario.
func (s Scenario) Spec() option.Spec {
	return option.Spec{
		Spot:   s.Spot,
		Strike: s.Strike,
		Rate:   s.Rate,
		Vol:    s.Vol,
		Expiry: s.Expiry,
	}
}

// Exit logs err and terminates with exit code 2 for domain violations and 1
// for everything else.
func Exit(err error) {
	logger.Errorf("%v", err)
	if errors.Is(err, option.ErrInvalidInput) {
		os.Exit(2)
	}
	os.Exit(1)
}
