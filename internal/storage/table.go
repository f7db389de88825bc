package storage

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/san-kum/isingsim/internal/experiment"
	"github.com/san-kum/isingsim/internal/lattice"
	"github.com/san-kum/isingsim/internal/thermo"
)

var (
	ErrLengthMismatch = errors.New("storage: results length does not match temperatures")
	ErrMalformed      = errors.New("storage: malformed results table")
)

const (
	separator     = ", "
	elapsedPrefix = "elapsed_time: "
)

func header(withCorrelation bool) []string {
	cols := []string{
		"temp",
		string(thermo.QuantityEnergy),
		string(thermo.QuantityMagnetization),
		string(thermo.QuantitySpecificHeat),
		string(thermo.QuantitySusceptibility),
	}
	if withCorrelation {
		cols = append(cols, string(thermo.QuantityCorrelationLength))
	}
	return cols
}

// WriteResults derives the observables of a rows x columns run and writes
// them as a table. temps and results must have the same length.
func WriteResults[P lattice.Observable](w io.Writer, temps []P, results []experiment.Results[P], rows, columns int, elapsed time.Duration, withCorrelation bool) error {
	if len(temps) != len(results) {
		return fmt.Errorf("%w: %d temperatures, %d results", ErrLengthMismatch, len(temps), len(results))
	}
	obs := thermo.DeriveAll(results, rows, columns)
	for i := range obs {
		obs[i].Temperature = float64(temps[i])
	}
	return WriteTable(w, obs, elapsed, withCorrelation)
}

// WriteTable writes one row per temperature, fields separated by ", ".
// The header ends with the elapsed time in whole seconds.
func WriteTable(w io.Writer, obs []thermo.Observables, elapsed time.Duration, withCorrelation bool) error {
	bw := bufio.NewWriter(w)

	cols := header(withCorrelation)
	cols = append(cols, elapsedPrefix+strconv.FormatInt(int64(elapsed/time.Second), 10))
	if _, err := fmt.Fprintln(bw, strings.Join(cols, separator)); err != nil {
		return err
	}

	for _, o := range obs {
		row := []float64{o.Temperature, o.EnergyDensity, o.Magnetization, o.SpecificHeat, o.Susceptibility}
		if withCorrelation {
			row = append(row, o.CorrelationLength)
		}
		fields := make([]string, len(row))
		for i, v := range row {
			fields[i] = strconv.FormatFloat(v, 'g', -1, 64)
		}
		if _, err := fmt.Fprintln(bw, strings.Join(fields, separator)); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// ReadTable parses a table written by WriteTable.
func ReadTable(r io.Reader) ([]thermo.Observables, time.Duration, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1

	records, err := cr.ReadAll()
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %w", ErrMalformed, err)
	}
	if len(records) == 0 {
		return nil, 0, fmt.Errorf("%w: missing header", ErrMalformed)
	}

	head := records[0]
	last := head[len(head)-1]
	if !strings.HasPrefix(last, elapsedPrefix) {
		return nil, 0, fmt.Errorf("%w: header has no elapsed time", ErrMalformed)
	}
	secs, err := strconv.ParseInt(strings.TrimPrefix(last, elapsedPrefix), 10, 64)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: elapsed time: %w", ErrMalformed, err)
	}
	width := len(head) - 1
	if width != 5 && width != 6 {
		return nil, 0, fmt.Errorf("%w: unexpected %d columns", ErrMalformed, width)
	}

	obs := make([]thermo.Observables, 0, len(records)-1)
	for n, rec := range records[1:] {
		if len(rec) != width {
			return nil, 0, fmt.Errorf("%w: row %d has %d fields, want %d", ErrMalformed, n+1, len(rec), width)
		}
		vals := make([]float64, width)
		for i, field := range rec {
			if vals[i], err = strconv.ParseFloat(field, 64); err != nil {
				return nil, 0, fmt.Errorf("%w: row %d: %w", ErrMalformed, n+1, err)
			}
		}
		o := thermo.Observables{
			Temperature:    vals[0],
			EnergyDensity:  vals[1],
			Magnetization:  vals[2],
			SpecificHeat:   vals[3],
			Susceptibility: vals[4],
		}
		if width == 6 {
			o.CorrelationLength = vals[5]
		}
		obs = append(obs, o)
	}
	return obs, time.Duration(secs) * time.Second, nil
}
