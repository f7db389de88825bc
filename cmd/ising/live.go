package main

import (
	"errors"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/san-kum/isingsim/internal/export"
	"github.com/san-kum/isingsim/internal/lattice"
	"github.com/san-kum/isingsim/internal/metropolis"
	"github.com/san-kum/isingsim/internal/rng"
	"github.com/san-kum/isingsim/internal/viz"
)

var errNotTerminal = errors.New("live view needs an interactive terminal")

// newChain builds a size x size chain with a thermal start.
func newChain(kind rng.Kind, seed uint64, size int, coupling, field float64) (*metropolis.Chain[int8, float64], error) {
	src, err := rng.New(kind, seed)
	if err != nil {
		return nil, err
	}
	l, err := lattice.New[int8, float64](size, size, lattice.Thermal[int8](src))
	if err != nil {
		return nil, err
	}
	return metropolis.NewChain(l, src, coupling, field), nil
}

func runLive(cmd *cobra.Command, args []string) error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return errNotTerminal
	}

	chain, err := newChain(rng.Kind(rngKind), seed, liveSize, coupling, field)
	if err != nil {
		return err
	}

	m := viz.NewModel(chain, viz.Options{
		Temperature:    liveTemperature,
		Coupling:       coupling,
		Field:          field,
		SweepsPerFrame: sweepsPerFrame,
		Theme:          theme,
	})

	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}

func snapshot(cmd *cobra.Command, args []string) error {
	chain, err := newChain(rng.Kind(rngKind), seed, size, coupling, field)
	if err != nil {
		return err
	}

	t := max(temperature, 0)
	for range snapshotSweeps {
		chain.Sweep(t, coupling, field)
	}
	log.WithFields(logrus.Fields{
		"size":          size,
		"temperature":   t,
		"sweeps":        chain.Sweeps(),
		"magnetisation": chain.Magnetization(),
	}).Info("snapshot taken")

	svg := export.LatticeToSVG(chain.Lattice(), cellSize, "#ff00ff", "#1a001a")
	if err := os.WriteFile(snapshotFile, []byte(svg), 0644); err != nil {
		return err
	}
	fmt.Printf("exported to %s\n", snapshotFile)
	return nil
}

func bench(cmd *cobra.Command, args []string) error {
	fmt.Printf("benchmarking %dx%d lattice, %d sweeps at T=%g\n\n", size, size, benchSweeps, temperature)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "RNG\tSWEEPS\tTIME\tSWEEPS/SEC\tFLIPS/SEC")

	for _, kind := range rng.Kinds() {
		chain, err := newChain(kind, 42, size, 1, 0)
		if err != nil {
			return err
		}

		start := time.Now()
		for range benchSweeps {
			chain.Sweep(temperature, 1, 0)
		}
		elapsed := time.Since(start)

		sweepsPerSec := float64(benchSweeps) / elapsed.Seconds()
		fmt.Fprintf(w, "%s\t%d\t%v\t%.0f\t%.3g\n",
			kind, benchSweeps, elapsed.Round(time.Microsecond), sweepsPerSec, sweepsPerSec*float64(size*size))
	}

	return w.Flush()
}
