// Package report writes pricing results to disk for downstream analysis.
package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/contactkeval/option-pricer/internal/montecarlo"
	"github.com/contactkeval/option-pricer/internal/option"
	"github.com/contactkeval/option-pricer/internal/simulate"
)

// Summary is the JSON document written for one Monte Carlo run.
type Summary struct {
	Spec     option.Spec         `json:"spec"`
	Kind     option.Kind         `json:"kind"`
	Drift    float64             `json:"drift"`
	Seed     uint64              `json:"seed"`
	Estimate montecarlo.Estimate `json:"estimate"`
}

// WriteJSON writes the run summary to <outdir>/estimate.json.
func WriteJSON(s Summary, outdir string) error {
	b, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(outdir, "estimate.json"), b, 0644)
}

// WriteCSV writes one sample path to <outdir>/path.csv as t,price rows.
func WriteCSV(path simulate.PricePath, outdir string) error {
	f, err := os.Create(filepath.Join(outdir, "path.csv"))
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write([]string{"t", "price"}); err != nil {
		return err
	}
	for _, pt := range path {
		row := []string{fmt.Sprintf("%.6f", pt.T), fmt.Sprintf("%.6f", pt.S)}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}
