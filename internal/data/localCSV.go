package data

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/contactkeval/option-pricer/internal/logger"
)

// localFileDataProvider serves daily bars from per-symbol CSV files laid out
// as <dir>/<SYMBOL>.csv with rows of date,open,high,low,close,volume.
type localFileDataProvider struct {
	dir       string
	secondary Provider
}

func NewLocalFileDataProvider(dir string, secondary Provider) Provider {
	return &localFileDataProvider{dir: dir, secondary: secondary}
}

func (localFileDataProv *localFileDataProvider) Secondary() Provider {
	return localFileDataProv.secondary
}

func (localFileDataProv *localFileDataProvider) GetDailyBars(underlying string, fromDate, toDate time.Time) ([]Bar, error) {
	path := filepath.Join(localFileDataProv.dir, strings.ToUpper(underlying)+".csv")

	f, err := os.Open(path)
	if err != nil {
		if localFileDataProv.secondary != nil {
			logger.Tracef("no local file for %s, delegating to secondary", underlying)
			return localFileDataProv.secondary.GetDailyBars(underlying, fromDate, toDate)
		}
		return nil, fmt.Errorf("open bars file: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}

	var out []Bar
	for _, row := range records {
		if len(row) < 6 {
			continue
		}

		date, err := time.Parse("2006-01-02", strings.TrimSpace(row[0]))
		if err != nil {
			continue // header or malformed row
		}
		if date.Before(fromDate) || date.After(toDate) {
			continue
		}

		fields := make([]float64, 5)
		ok := true
		for i := range fields {
			fields[i], err = strconv.ParseFloat(strings.TrimSpace(row[i+1]), 64)
			if err != nil {
				ok = false
				break
			}
		}
		if !ok {
			continue
		}

		out = append(out, Bar{
			Date:  date,
			Open:  fields[0],
			High:  fields[1],
			Low:   fields[2],
			Close: fields[3],
			Vol:   fields[4],
		})
	}

	logger.Tracef("loaded %d local bars for %s", len(out), underlying)
	return out, nil
}
