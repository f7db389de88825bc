package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/san-kum/isingsim/internal/experiment"
	"github.com/san-kum/isingsim/internal/scenario"
	"github.com/san-kum/isingsim/internal/storage"
	"github.com/san-kum/isingsim/internal/thermo"
)

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

func runExperiment(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	params, err := cfg.Params(log)
	if err != nil {
		return err
	}

	ctx, stop := signalContext()
	defer stop()

	runner := experiment.NewRunner[int8, float64](log)
	start := time.Now()
	results, err := runner.Run(ctx, cfg.Rows, cfg.Columns, params)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	obs := thermo.DeriveAll(results, cfg.Rows, cfg.Columns)
	if err := printObservables(obs, params.StructureFactor); err != nil {
		return err
	}
	fmt.Printf("\ncompleted in %v\n", elapsed.Round(time.Millisecond))
	printPeaks(obs)

	if outputFile != "" {
		f, err := os.Create(outputFile)
		if err != nil {
			return err
		}
		defer f.Close()
		if err := storage.WriteResults(f, params.Temperatures, results, cfg.Rows, cfg.Columns, elapsed, params.StructureFactor); err != nil {
			return err
		}
		fmt.Printf("results written to %s\n", outputFile)
	}

	if noSave {
		return nil
	}
	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	runID, err := st.Save(cfg.Rows, cfg.Columns, params, results, elapsed)
	if err != nil {
		return err
	}
	fmt.Printf("run id: %s\n", runID)
	return nil
}

func runScan(cmd *cobra.Command, args []string) error {
	sc, err := scenario.Load(args[0])
	if err != nil {
		return err
	}

	ctx, stop := signalContext()
	defer stop()

	st := storage.New(dataDir)
	if !noSave {
		if err := st.Init(); err != nil {
			return err
		}
	}

	sink := func(r scenario.SizeResult) error {
		if noSave {
			return nil
		}
		runID, err := st.Save(r.Size.Rows, r.Size.Columns, r.Params, r.Results, r.Elapsed)
		if err != nil {
			return err
		}
		log.WithFields(logrus.Fields{"size": r.Size, "run": runID, "elapsed": r.Elapsed}).Info("size stored")
		return nil
	}

	fmt.Printf("scenario: %s\n", sc.Name)
	if sc.Description != "" {
		fmt.Printf("%s\n", sc.Description)
	}

	runner := experiment.NewRunner[int8, float64](log)
	results, err := scenario.Run(ctx, sc, runner, log, sink)
	if err != nil {
		return err
	}

	fmt.Println()
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SIZE\tPEAK C\tPEAK CHI\tTIME")
	for i, p := range scenario.Peaks(results) {
		fmt.Fprintf(w, "%s\t%.4f\t%.4f\t%v\n",
			p.Size, p.SpecificHeat, p.Susceptibility, results[i].Elapsed.Round(time.Millisecond))
	}
	return w.Flush()
}

func printObservables(obs []thermo.Observables, withCorrelation bool) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	if withCorrelation {
		fmt.Fprintln(w, "T\tE/N\t|M|/N\tC\tCHI\tXI")
	} else {
		fmt.Fprintln(w, "T\tE/N\t|M|/N\tC\tCHI")
	}
	for _, o := range obs {
		fmt.Fprintf(w, "%.4f\t%.6f\t%.6f\t%.6f\t%.6f",
			o.Temperature, o.EnergyDensity, o.Magnetization, o.SpecificHeat, o.Susceptibility)
		if withCorrelation {
			fmt.Fprintf(w, "\t%.4f", o.CorrelationLength)
		}
		fmt.Fprintln(w)
	}
	return w.Flush()
}

func printPeaks(obs []thermo.Observables) {
	for _, q := range []thermo.Quantity{thermo.QuantitySpecificHeat, thermo.QuantitySusceptibility} {
		if tc, err := thermo.PeakTemperature(obs, q); err == nil {
			fmt.Printf("peak %s at T = %.4f\n", q, tc)
		}
	}
}
