package experiment_test

import (
	"context"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/isingsim/internal/experiment"
	"github.com/san-kum/isingsim/internal/lattice"
	"github.com/san-kum/isingsim/internal/rng"
)

func withoutElapsed(rs []experiment.Results[float64]) []experiment.Results[float64] {
	out := make([]experiment.Results[float64], len(rs))
	for i, r := range rs {
		r.Elapsed = 0
		out[i] = r
	}
	return out
}

var _ = Describe("Runner", func() {
	var (
		runner *experiment.Runner[int8, float64]
		ctx    context.Context
		params experiment.Params[float64]
	)

	BeforeEach(func() {
		runner = experiment.NewRunner[int8, float64](nil)
		ctx = context.Background()
		params = experiment.Params[float64]{
			Temperatures:         []float64{2.0},
			Coupling:             1,
			ThermalizationSweeps: 100,
			MeasurementSweeps:    100,
			Seed:                 42,
			Workers:              2,
		}
	})

	Describe("validation", func() {
		It("rejects a negative temperature before simulating", func() {
			params.Temperatures = []float64{1, 2, -0.5, 3}
			_, err := runner.Run(ctx, 4, 4, params)
			Expect(err).To(MatchError(experiment.ErrNegativeTemperature))
		})

		It("rejects NaN temperatures", func() {
			params.Temperatures = []float64{math.NaN()}
			_, err := runner.Run(ctx, 4, 4, params)
			Expect(err).To(MatchError(experiment.ErrNegativeTemperature))
		})

		It("accepts a zero temperature", func() {
			params.Temperatures = []float64{0}
			results, err := runner.Run(ctx, 4, 4, params)
			Expect(err).NotTo(HaveOccurred())
			Expect(results[0].AbsMagnetization).To(BeNumerically("~", 16, 1e-9))
		})

		DescribeTable("rejects non-positive dimensions",
			func(rows, columns int) {
				_, err := runner.Run(ctx, rows, columns, params)
				Expect(err).To(MatchError(experiment.ErrArrayInit))
				Expect(err).To(MatchError(lattice.ErrInvalidDimensions))
			},
			Entry("zero rows", 0, 4),
			Entry("zero columns", 4, 0),
			Entry("negative", -3, 3),
		)

		It("rejects negative sweep counts", func() {
			params.MeasurementSweeps = -1
			_, err := runner.Run(ctx, 4, 4, params)
			Expect(err).To(MatchError(experiment.ErrInvalidSweeps))
		})

		It("rejects an unknown generator", func() {
			params.RNG = "mt19937"
			_, err := runner.Run(ctx, 4, 4, params)
			Expect(err).To(MatchError(rng.ErrUnknownKind))
		})
	})

	Describe("results", func() {
		It("keeps the input temperature order", func() {
			params.Temperatures = []float64{0.5, 10, 1.0, 50, 1.5}
			params.Workers = 3

			results, err := runner.Run(ctx, 8, 8, params)
			Expect(err).NotTo(HaveOccurred())
			Expect(results).To(HaveLen(5))
			for i, r := range results {
				Expect(r.Temperature).To(Equal(params.Temperatures[i]))
			}
			Expect(results[0].AbsMagnetization).To(BeNumerically(">", results[1].AbsMagnetization))
		})

		It("returns an empty list for no temperatures", func() {
			params.Temperatures = nil
			results, err := runner.Run(ctx, 4, 4, params)
			Expect(err).NotTo(HaveOccurred())
			Expect(results).To(BeEmpty())
		})

		It("is reproducible for a fixed seed", func() {
			params.Temperatures = []float64{1.5, 2.3, 3.0}
			first, err := runner.Run(ctx, 8, 8, params)
			Expect(err).NotTo(HaveOccurred())
			second, err := runner.Run(ctx, 8, 8, params)
			Expect(err).NotTo(HaveOccurred())

			Expect(withoutElapsed(second)).To(Equal(withoutElapsed(first)))
		})

		It("orders a ferromagnet at low temperature", func() {
			params.Temperatures = []float64{0.5}
			params.ThermalizationSweeps = 300
			params.MeasurementSweeps = 300

			results, err := runner.Run(ctx, 16, 16, params)
			Expect(err).NotTo(HaveOccurred())

			n := 256.0
			Expect(results[0].AbsMagnetization / n).To(BeNumerically(">", 0.95))
			Expect(results[0].Energy / n).To(BeNumerically("<", -1.9))
		})

		It("folds only every k-th measurement sweep", func() {
			params.MeasurementSweeps = 10
			params.MeasureEvery = 3
			results, err := runner.Run(ctx, 4, 4, params)
			Expect(err).NotTo(HaveOccurred())
			Expect(results[0].Samples).To(Equal(4))
		})

		It("returns zero moments without measurement sweeps", func() {
			params.MeasurementSweeps = 0
			results, err := runner.Run(ctx, 4, 4, params)
			Expect(err).NotTo(HaveOccurred())
			Expect(results[0].Samples).To(BeZero())
			Expect(results[0].Energy).To(BeZero())
			Expect(results[0].MagnetizationSq).To(BeZero())
		})

		It("leaves the trajectory unchanged when resyncing", func() {
			params.Temperatures = []float64{2.0, 3.0}
			plain, err := runner.Run(ctx, 6, 6, params)
			Expect(err).NotTo(HaveOccurred())

			params.ResyncEvery = 1
			resynced, err := runner.Run(ctx, 6, 6, params)
			Expect(err).NotTo(HaveOccurred())

			for i := range plain {
				Expect(resynced[i].Energy).To(BeNumerically("~", plain[i].Energy, 1e-9))
				Expect(resynced[i].AbsMagnetization).To(BeNumerically("~", plain[i].AbsMagnetization, 1e-9))
			}
		})
	})

	Describe("structure factor", func() {
		It("stays zero when disabled", func() {
			results, err := runner.Run(ctx, 6, 6, params)
			Expect(err).NotTo(HaveOccurred())
			Expect(results[0].StructureQ0).To(BeZero())
			Expect(results[0].StructureQ1).To(BeZero())
		})

		It("ties the zero mode to the squared magnetization", func() {
			params.StructureFactor = true
			params.Temperatures = []float64{2.0, 4.0}

			results, err := runner.Run(ctx, 6, 8, params)
			Expect(err).NotTo(HaveOccurred())
			for _, r := range results {
				Expect(r.StructureQ0).To(BeNumerically("~", r.MagnetizationSq/48, 1e-9))
				Expect(r.StructureQ1).To(BeNumerically(">", 0))
			}
		})
	})

	It("stops when the context is cancelled", func() {
		cctx, cancel := context.WithCancel(ctx)
		cancel()

		_, err := runner.Run(cctx, 8, 8, params)
		Expect(err).To(MatchError(context.Canceled))
	})

	It("keeps an antiferromagnet within physical bounds", func() {
		params.Temperatures = []float64{2.0}
		params.Coupling = -1
		params.ThermalizationSweeps = 1000
		params.MeasurementSweeps = 1000
		params.Seed = 0

		results, err := runner.Run(ctx, 10, 10, params)
		Expect(err).NotTo(HaveOccurred())

		m := results[0].AbsMagnetization / 100
		e := results[0].Energy / 100
		Expect(m).To(And(BeNumerically(">", 0), BeNumerically("<", 1)))
		Expect(e).To(And(BeNumerically(">", -2), BeNumerically("<", 0)))
	})
})
