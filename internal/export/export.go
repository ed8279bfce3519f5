// Package export writes computed spectra to CSV and JSON, the two
// formats classroom plotting tools (spreadsheets, matplotlib, gnuplot)
// ingest directly.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"uvcat/internal/spectrum"
)

// Document is the JSON export shape.
type Document struct {
	GeneratedAt   time.Time    `json:"generated_at"`
	Temperature   float64      `json:"temperature_k"`
	WavelengthsNm []float64    `json:"wavelengths_nm"`
	Series        []SeriesData `json:"series"`
}

// SeriesData is one curve in a JSON export.
type SeriesData struct {
	Law    string    `json:"law"`
	Label  string    `json:"label"`
	Scale  float64   `json:"scale"`
	Values []float64 `json:"values"`
}

func checkSeries(series []*spectrum.Series) error {
	if len(series) == 0 {
		return fmt.Errorf("nothing to export")
	}
	n := len(series[0].WavelengthsNm)
	for _, s := range series[1:] {
		if len(s.WavelengthsNm) != n {
			return fmt.Errorf("%w: %d vs %d samples", spectrum.ErrGridMismatch, len(s.WavelengthsNm), n)
		}
	}
	return nil
}

// WriteCSV writes wavelength_nm plus one column per series.
func WriteCSV(w io.Writer, series ...*spectrum.Series) error {
	if err := checkSeries(series); err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	header := make([]string, 0, len(series)+1)
	header = append(header, "wavelength_nm")
	for _, s := range series {
		header = append(header, s.Law.Label())
	}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	row := make([]string, len(series)+1)
	for i, wl := range series[0].WavelengthsNm {
		row[0] = strconv.FormatFloat(wl, 'g', -1, 64)
		for j, s := range series {
			row[j+1] = strconv.FormatFloat(s.Values[i], 'g', -1, 64)
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteJSON writes the full document, indented for human reading.
func WriteJSON(w io.Writer, series ...*spectrum.Series) error {
	if err := checkSeries(series); err != nil {
		return err
	}

	doc := Document{
		GeneratedAt:   time.Now().UTC(),
		Temperature:   series[0].Temperature,
		WavelengthsNm: series[0].WavelengthsNm,
	}
	for _, s := range series {
		doc.Series = append(doc.Series, SeriesData{
			Law:    string(s.Law),
			Label:  s.Law.Label(),
			Scale:  s.Scale,
			Values: s.Values,
		})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}

// WriteFile exports to path, choosing the format from the extension
// (.csv or .json) and creating parent directories as needed.
func WriteFile(path string, series ...*spectrum.Series) error {
	var write func(io.Writer, ...*spectrum.Series) error
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		write = WriteCSV
	case ".json":
		write = WriteJSON
	default:
		return fmt.Errorf("unsupported export format %q (want .csv or .json)", filepath.Ext(path))
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create export directory: %w", err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create export file: %w", err)
	}
	defer f.Close()

	if err := write(f, series...); err != nil {
		return err
	}
	return f.Close()
}
