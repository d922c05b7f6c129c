package data

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/contactkeval/option-pricer/internal/logger"
)

// polygonDataProvider implements Provider against the Polygon.io aggregates
// API using raw HTTP calls.
type polygonDataProvider struct {
	apiKey    string
	baseURL   string
	client    *http.Client
	secondary Provider
}

// NewPolygonDataProvider constructs a Polygon-backed provider with secondary
// as its fallback.
func NewPolygonDataProvider(apiKey string, secondary Provider) Provider {
	logger.Infof("initializing polygon data provider")
	return &polygonDataProvider{
		apiKey:  apiKey,
		baseURL: "https://api.polygon.io",
		client: &http.Client{
			Timeout: 30 * time.Second,
			Transport: &http.Transport{
				TLSHandshakeTimeout:   10 * time.Second,
				ResponseHeaderTimeout: 30 * time.Second,
				ForceAttemptHTTP2:     true,
				MaxIdleConns:          100,
				IdleConnTimeout:       90 * time.Second,
			},
		},
		secondary: secondary,
	}
}

func (polygonDataProv *polygonDataProvider) Secondary() Provider {
	return polygonDataProv.secondary
}

func (polygonDataProv *polygonDataProvider) GetDailyBars(underlying string, fromDate, toDate time.Time) ([]Bar, error) {
	url := fmt.Sprintf("%s/v2/aggs/ticker/%s/range/1/day/%s/%s?adjusted=true&sort=asc&limit=50000&apiKey=%s",
		polygonDataProv.baseURL, underlying,
		fromDate.Format("2006-01-02"), toDate.Format("2006-01-02"),
		polygonDataProv.apiKey)

	logger.Debugf("fetching daily bars: %s from=%s to=%s",
		underlying, fromDate.Format("2006-01-02"), toDate.Format("2006-01-02"))

	req, err := http.NewRequest("GET", url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	resp, err := polygonDataProv.processGetRequest(req)
	if err != nil {
		return nil, fmt.Errorf("polygon api request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("polygon aggs status %d", resp.StatusCode)
	}

	var body struct {
		Results []struct {
			Time  int64   `json:"t"` // epoch millis
			Open  float64 `json:"o"`
			High  float64 `json:"h"`
			Low   float64 `json:"l"`
			Close float64 `json:"c"`
			Vol   float64 `json:"v"`
		} `json:"results"`
		Status string `json:"status"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("parsing polygon response: %w", err)
	}

	logger.Tracef("bars received: %d records", len(body.Results))

	out := make([]Bar, 0, len(body.Results))
	for _, r := range body.Results {
		out = append(out, Bar{
			Date:  time.UnixMilli(r.Time).UTC(),
			Open:  r.Open,
			High:  r.High,
			Low:   r.Low,
			Close: r.Close,
			Vol:   r.Vol,
		})
	}
	return out, nil
}

// processGetRequest executes a GET with per-minute rate-limit handling:
// on HTTP 429 it sleeps until the next minute boundary and retries.
func (polygonDataProv *polygonDataProvider) processGetRequest(req *http.Request) (*http.Response, error) {
	for {
		resp, err := polygonDataProv.client.Do(req)
		if err != nil {
			return nil, err
		}

		if resp.StatusCode < 400 {
			return resp, nil
		}

		if resp.StatusCode == http.StatusTooManyRequests {
			resp.Body.Close()
			sleepDuration := time.Until(time.Now().Truncate(time.Minute).Add(time.Minute))
			logger.Infof("rate limit hit, sleeping for %s", sleepDuration)
			time.Sleep(sleepDuration)
			continue
		}

		return resp, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}
}
