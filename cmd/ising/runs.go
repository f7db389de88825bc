package main

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/isingsim/internal/export"
	"github.com/san-kum/isingsim/internal/storage"
	"github.com/san-kum/isingsim/internal/thermo"
)

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTIME\tSIZE\tTEMPS\tJ\tH\tSWEEPS\tRNG\tELAPSED")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%dx%d\t%d\t%g\t%g\t%d+%d\t%s\t%.2fs\n",
			run.ID,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Rows, run.Columns,
			len(run.Temperatures),
			run.Coupling,
			run.Field,
			run.ThermalizationSweeps, run.MeasurementSweeps,
			run.RNG,
			run.ElapsedSeconds,
		)
	}

	return w.Flush()
}

func showRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	obs, err := st.LoadResults(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("lattice: %dx%d, J=%g, h=%g\n", meta.Rows, meta.Columns, meta.Coupling, meta.Field)
	fmt.Printf("sweeps: %d thermalization, %d measurement, every %d\n\n",
		meta.ThermalizationSweeps, meta.MeasurementSweeps, meta.MeasureEvery)

	if err := printObservables(obs, meta.StructureFactor); err != nil {
		return err
	}
	fmt.Println()
	printPeaks(obs)
	return nil
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	obs, err := st.LoadResults(runID)
	if err != nil {
		return err
	}

	if len(obs) < 2 {
		return fmt.Errorf("need at least two temperatures to plot, run has %d", len(obs))
	}

	quantities := []thermo.Quantity{
		thermo.QuantityEnergy,
		thermo.QuantityMagnetization,
		thermo.QuantitySpecificHeat,
		thermo.QuantitySusceptibility,
	}
	if meta.StructureFactor {
		quantities = append(quantities, thermo.QuantityCorrelationLength)
	}
	if plotQuantity != "" {
		quantities = []thermo.Quantity{thermo.Quantity(plotQuantity)}
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("T: %g .. %g (%d points)\n\n", obs[0].Temperature, obs[len(obs)-1].Temperature, len(obs))

	for _, q := range quantities {
		_, values, err := thermo.Series(obs, q)
		if err != nil {
			return err
		}

		graph := asciigraph.Plot(values,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(fmt.Sprintf("%s vs temperature", q)),
		)
		fmt.Println(graph)
		fmt.Println()
	}

	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	obs, err := st.LoadResults(runID)
	if err != nil {
		return err
	}

	var w io.Writer = os.Stdout
	if outputFile != "" {
		f, err := os.Create(outputFile)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}
	return storage.ExportJSON(w, *meta, obs)
}

func exportSVG(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	obs, err := st.LoadResults(runID)
	if err != nil {
		return err
	}

	temps, values, err := thermo.Series(obs, thermo.Quantity(svgQuantity))
	if err != nil {
		return err
	}
	svg := export.CurveToSVG(temps, values, svgWidth, svgHeight, "#00ffff", fmt.Sprintf("%s %s", runID, svgQuantity))
	if svg == "" {
		return fmt.Errorf("need at least two temperatures to plot, run has %d", len(obs))
	}

	out := outputFile
	if out == "" {
		out = fmt.Sprintf("%s_%s.svg", runID, svgQuantity)
	}
	if err := os.WriteFile(out, []byte(svg), 0644); err != nil {
		return err
	}
	fmt.Printf("exported to %s\n", out)
	return nil
}
