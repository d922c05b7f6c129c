package data

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeBarsCSV(t *testing.T, dir, symbol, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, symbol+".csv"), []byte(content), 0644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}
}

const aaplCSV = `date,open,high,low,close,volume
2025-01-02,100.0,102.5,99.1,101.2,120000
2025-01-03,101.2,103.0,100.8,102.7,98000
2025-01-06,102.7,104.2,101.9,103.5,110000
`

func TestLocalFileDataProvider(t *testing.T) {
	dir := t.TempDir()
	writeBarsCSV(t, dir, "AAPL", aaplCSV)

	prov := NewLocalFileDataProvider(dir, nil)

	from := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)

	bars, err := prov.GetDailyBars("aapl", from, to)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(bars) != 3 {
		t.Fatalf("got %d bars, want 3", len(bars))
	}
	if bars[2].Close != 103.5 {
		t.Fatalf("last close = %v, want 103.5", bars[2].Close)
	}

	// range filter
	bars, err = prov.GetDailyBars("AAPL", from, time.Date(2025, 1, 3, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(bars) != 2 {
		t.Fatalf("got %d bars in narrowed range, want 2", len(bars))
	}
}

func TestLocalFileDelegatesToSecondary(t *testing.T) {
	dir := t.TempDir() // no files
	prov := NewLocalFileDataProvider(dir, NewSyntheticProvider())

	from := time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC) // a Monday
	to := from.AddDate(0, 0, 4)

	bars, err := prov.GetDailyBars("MSFT", from, to)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(bars) == 0 {
		t.Fatalf("expected synthetic bars from secondary")
	}
}

func TestSyntheticProviderBars(t *testing.T) {
	prov := NewSyntheticProvider()

	from := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC) // a Monday
	to := from.AddDate(0, 0, 6)

	bars, err := prov.GetDailyBars("SPY", from, to)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(bars) != 5 {
		t.Fatalf("got %d bars over a week, want 5 weekdays", len(bars))
	}
	for _, b := range bars {
		if b.Close <= 0 || b.High < b.Low {
			t.Fatalf("implausible bar: %+v", b)
		}
		wd := b.Date.Weekday()
		if wd == time.Saturday || wd == time.Sunday {
			t.Fatalf("bar generated on weekend: %v", b.Date)
		}
	}
}

func TestLatestSpotWalksChain(t *testing.T) {
	dir := t.TempDir()
	prov := NewLocalFileDataProvider(dir, NewSyntheticProvider())

	spot, err := LatestSpot(prov, "TSLA")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if spot <= 0 {
		t.Fatalf("resolved spot %v, want positive", spot)
	}
}

func TestLatestSpotFailsWithoutData(t *testing.T) {
	prov := NewLocalFileDataProvider(t.TempDir(), nil)
	if _, err := LatestSpot(prov, "NOPE"); err == nil {
		t.Fatalf("expected error when no provider has data")
	}
}
