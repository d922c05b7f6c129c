// Package data resolves underlying spot prices for pricing requests that
// name a ticker instead of passing a spot directly.
//
// Providers form a fallback chain: each implementation may hold a secondary
// Provider it delegates to when it cannot serve a request itself.
package data

import (
	"time"

	"github.com/pkg/errors"
)

// Provider supplies market data for an underlying.
type Provider interface {
	// Secondary returns the fallback provider, or nil.
	Secondary() Provider
	// GetDailyBars returns daily OHLC bars for the symbol, oldest first.
	GetDailyBars(underlying string, fromDate, toDate time.Time) ([]Bar, error)
}

// Bar is a simplified daily OHLC record.
type Bar struct {
	Date  time.Time
	Open  float64
	High  float64
	Low   float64
	Close float64
	Vol   float64
}

// spotLookback bounds how far back LatestSpot searches for a close.
const spotLookback = 10 * 24 * time.Hour

// LatestSpot resolves the most recent closing price for the underlying,
// walking the fallback chain until a provider returns bars.
func LatestSpot(prov Provider, underlying string) (float64, error) {
	now := time.Now().UTC()

	var lastErr error
	for p := prov; p != nil; p = p.Secondary() {
		bars, err := p.GetDailyBars(underlying, now.Add(-spotLookback), now)
		if err != nil {
			lastErr = err
			continue
		}
		if len(bars) == 0 {
			lastErr = errors.Errorf("no recent bars for %s", underlying)
			continue
		}
		return bars[len(bars)-1].Close, nil
	}

	if lastErr == nil {
		lastErr = errors.Errorf("no provider could resolve %s", underlying)
	}
	return 0, errors.Wrapf(lastErr, "resolving spot for %s", underlying)
}
