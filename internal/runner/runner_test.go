package runner_test

import (
	"context"
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/casim/internal/metrics"
	"github.com/san-kum/casim/internal/rules"
	"github.com/san-kum/casim/internal/runner"
	"github.com/san-kum/casim/pkg/automaton"
)

var alternating = []bool{false, true, false, true, false, true, false, true, false}

func newSim(rule automaton.Rule[bool], cells []bool) *automaton.Simulation[bool] {
	s, err := automaton.FromCells(3, 3, rule, automaton.VonNeumann, cells)
	Expect(err).NotTo(HaveOccurred())
	return s
}

var _ = Describe("Runner", func() {
	var (
		ctx context.Context
		pop *metrics.Population
	)

	BeforeEach(func() {
		ctx = context.Background()
		pop = metrics.NewPopulation()
	})

	It("records generation zero and every step", func() {
		r := runner.New(newSim(rules.NewMajority(), alternating))
		r.AddMetric(pop)

		result, err := r.Run(ctx, runner.Config{Generations: 4})
		Expect(err).NotTo(HaveOccurred())
		Expect(result.Steps).To(Equal(4))
		Expect(result.Generation).To(Equal(4))
		Expect(result.Series["population"]).To(Equal([]float64{4, 5, 4, 5, 4}))
		Expect(result.Metrics["population"]).To(Equal(4.0))
		Expect(result.Stable).To(BeFalse())
	})

	It("treats zero generations as observation only", func() {
		s := newSim(rules.NewMajority(), alternating)
		r := runner.New(s)
		r.AddMetric(pop)

		result, err := r.Run(ctx, runner.Config{})
		Expect(err).NotTo(HaveOccurred())
		Expect(result.Steps).To(BeZero())
		Expect(s.Cells()).To(Equal(alternating))
		Expect(result.Series["population"]).To(HaveLen(1))
	})

	It("rejects negative generation counts", func() {
		r := runner.New(newSim(rules.NewMajority(), alternating))
		_, err := r.Run(ctx, runner.Config{Generations: -1})
		Expect(err).To(MatchError(runner.ErrInvalidGenerations))
	})

	It("stops at the first fixed point", func() {
		r := runner.New(newSim(rules.NewThreshold(2), alternating))

		result, err := r.Run(ctx, runner.Config{Generations: 50, StopWhenStable: true})
		Expect(err).NotTo(HaveOccurred())
		Expect(result.Stable).To(BeTrue())
		Expect(result.StableAt).To(Equal(1))
		Expect(result.Steps).To(Equal(2))
	})

	It("never reports an oscillator as stable", func() {
		r := runner.New(newSim(rules.NewMajority(), alternating))

		result, err := r.Run(ctx, runner.Config{Generations: 10, StopWhenStable: true})
		Expect(err).NotTo(HaveOccurred())
		Expect(result.Stable).To(BeFalse())
		Expect(result.Steps).To(Equal(10))
	})

	It("returns the partial result when the context is canceled", func() {
		r := runner.New(newSim(rules.NewMajority(), alternating))
		cctx, cancel := context.WithCancel(ctx)
		r.AddObserver(runner.ObserverFunc[bool](func(gen int, cells []bool) {
			if gen == 3 {
				cancel()
			}
		}))

		result, err := r.Run(cctx, runner.Config{Generations: 100})
		Expect(errors.Is(err, context.Canceled)).To(BeTrue())
		Expect(result.Steps).To(Equal(3))
		Expect(result.Generation).To(Equal(3))
	})

	It("passes every generation to observers", func() {
		var seen []int
		r := runner.New(newSim(rules.NewMajority(), alternating))
		r.AddObserver(runner.ObserverFunc[bool](func(gen int, cells []bool) {
			Expect(cells).To(HaveLen(9))
			seen = append(seen, gen)
		}))

		_, err := r.Run(ctx, runner.Config{Generations: 3})
		Expect(err).NotTo(HaveOccurred())
		Expect(seen).To(Equal([]int{0, 1, 2, 3}))
	})

	Context("when the rule panics", func() {
		var r *runner.Runner[bool]

		BeforeEach(func() {
			calls := 0
			rule := automaton.RuleFunc[bool](func(next *bool, n *automaton.Neighborhood[bool]) {
				calls++
				if calls > 9 {
					panic("boom")
				}
			})
			r = runner.New(newSim(rule, alternating))
		})

		It("reports a StepError for the failing generation", func() {
			result, err := r.Run(ctx, runner.Config{Generations: 5})
			Expect(err).To(MatchError(runner.ErrRuleFailed))

			var stepErr *runner.StepError
			Expect(errors.As(err, &stepErr)).To(BeTrue())
			Expect(stepErr.Generation).To(Equal(2))
			Expect(stepErr.Panic).To(Equal("boom"))
			Expect(result.Steps).To(Equal(1))
		})

		It("refuses to run again", func() {
			_, err := r.Run(ctx, runner.Config{Generations: 5})
			Expect(err).To(HaveOccurred())

			_, err = r.Run(ctx, runner.Config{Generations: 1})
			Expect(err).To(MatchError(runner.ErrDiscarded))
		})
	})

	DescribeTable("metric series length",
		func(generations int) {
			r := runner.New(newSim(rules.NewMajority(), alternating))
			r.AddMetric(pop)
			r.AddMetric(metrics.NewActivity())

			result, err := r.Run(ctx, runner.Config{Generations: generations})
			Expect(err).NotTo(HaveOccurred())
			Expect(result.Series["population"]).To(HaveLen(generations + 1))
			Expect(result.Series["activity"]).To(HaveLen(generations + 1))
		},
		Entry("one generation", 1),
		Entry("ten generations", 10),
		Entry("a hundred generations", 100),
	)
})
