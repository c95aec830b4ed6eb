package models_test

import (
	"context"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/modeldrop/internal/dynamo"
	"github.com/san-kum/modeldrop/internal/models"
)

var _ = Describe("Epidemic", func() {
	var m *models.Epidemic

	BeforeEach(func() {
		m = models.NewEpidemic()
		Expect(dynamo.Run(context.Background(), m)).To(Succeed())
	})

	It("conserves the total population", func() {
		s := m.Solution.Series("susceptible")
		i := m.Solution.Series("infectious")
		r := m.Solution.Series("recovered")
		for k := range m.Times {
			Expect(s[k] + i[k] + r[k]).To(BeNumerically("~", 50000, 1e-3))
		}
	})

	It("starts from the declared prevalence", func() {
		Expect(m.Solution.Series("infectious")[0]).To(Equal(3000.0))
		Expect(m.Solution.Series("susceptible")[0]).To(Equal(47000.0))
	})

	It("burns out the epidemic", func() {
		i := m.Solution.Series("infectious")
		Expect(i[len(i)-1]).To(BeNumerically("<", 100))
	})

	It("reconstructs the effective reproduction number series", func() {
		rn := m.Solution.Series("rn")
		Expect(rn).To(HaveLen(len(m.Times)))
		Expect(rn[0]).To(BeNumerically("~", 47000.0/50000.0*1.5, 1e-9))
		Expect(rn[len(rn)-1]).To(BeNumerically("<", rn[0]))
	})
})

var _ = Describe("Ecology", func() {
	var m *models.Ecology

	BeforeEach(func() {
		m = models.NewEcology()
		Expect(dynamo.Run(context.Background(), m)).To(Succeed())
	})

	It("keeps both populations positive", func() {
		for _, key := range []string{"prey", "predator"} {
			for _, v := range m.Solution.Series(key) {
				Expect(v).To(BeNumerically(">", 0))
			}
		}
	})

	It("oscillates rather than settling", func() {
		prey := m.Solution.Series("prey")
		min, max := prey[0], prey[0]
		for _, v := range prey {
			min = math.Min(min, v)
			max = math.Max(max, v)
		}
		Expect(max).To(BeNumerically(">", 2*min))

		// The tail keeps cycling: late values still cross the mean.
		mean := (min + max) / 2
		crossings := 0
		tail := prey[len(prey)/2:]
		for i := 1; i < len(tail); i++ {
			if (tail[i-1] < mean) != (tail[i] < mean) {
				crossings++
			}
		}
		Expect(crossings).To(BeNumerically(">", 1))
	})
})

var _ = Describe("Growth", func() {
	var m *models.Growth

	BeforeEach(func() {
		m = models.NewGrowth()
		Expect(dynamo.Run(context.Background(), m)).To(Succeed())
	})

	It("matches the closed-form exponential", func() {
		p := m.Solution.Series("population")
		last := len(p) - 1
		want := 10 * math.Exp(0.035*m.Times[last])
		Expect(p[last]).To(BeNumerically("~", want, want*0.01))
	})

	It("caps the logistic population at the carrying capacity", func() {
		p := m.Solution.Series("constrainedPopulation")
		last := p[len(p)-1]
		Expect(last).To(BeNumerically("<", 1000.0+1))
		Expect(last).To(BeNumerically(">", 900.0))
	})
})

var _ = Describe("Spring", func() {
	It("returns to its starting point after whole periods", func() {
		m := models.NewSpring()
		Expect(dynamo.Run(context.Background(), m)).To(Succeed())

		x := m.Solution.Series("x")
		Expect(x[0]).To(Equal(1.0))
		// time=5 with period=1 is five full cycles.
		Expect(x[len(x)-1]).To(BeNumerically("~", 1.0, 1e-3))
	})

	It("respects an edited period", func() {
		m := models.NewSpring()
		m.Param.Set("period", 2)
		m.Param.Set("time", 1)
		Expect(dynamo.Run(context.Background(), m)).To(Succeed())

		// Half a period in: the spring is at its mirror point.
		x := m.Solution.Series("x")
		Expect(x[len(x)-1]).To(BeNumerically("~", -1.0, 1e-3))
	})
})

var _ = Describe("Goodwin", func() {
	var m *models.Goodwin

	BeforeEach(func() {
		m = models.NewGoodwin()
		Expect(dynamo.Run(context.Background(), m)).To(Succeed())
	})

	It("splits output exactly between wages and profit", func() {
		wage := m.Solution.Series("wageShare")
		profit := m.Solution.Series("profitShare")
		for i := range wage {
			Expect(wage[i] + profit[i]).To(BeNumerically("~", 1.0, 1e-9))
		}
	})

	It("grows population exponentially", func() {
		p := m.Solution.Series("population")
		last := len(p) - 1
		want := 50 * math.Exp(0.01*m.Times[last])
		Expect(p[last]).To(BeNumerically("~", want, want*0.01))
	})

	It("keeps wage and labor positive", func() {
		// Both evolve multiplicatively, so the integrator must not
		// push either through zero.
		for _, key := range []string{"wage", "labor"} {
			for _, v := range m.Solution.Series(key) {
				Expect(v).To(BeNumerically(">", 0))
			}
		}
	})
})

var _ = Describe("Property", func() {
	var m *models.Property

	BeforeEach(func() {
		m = models.NewProperty()
		Expect(dynamo.Run(context.Background(), m)).To(Succeed())
	})

	It("fixes the mortgage payment at the annuity amount", func() {
		want := 0.05 * 450000 / (1 - math.Pow(1.05, -30))
		for _, v := range m.Solution.Series("paymentRate") {
			Expect(v).To(BeNumerically("~", want, 1e-6))
		}
	})

	It("accumulates outlay linearly from the deposit", func() {
		paid := m.Solution.Series("paid")
		payment := m.Solution.Series("paymentRate")[0]
		last := len(paid) - 1
		want := 150000 + payment*m.Times[last]
		Expect(paid[0]).To(Equal(150000.0))
		Expect(paid[last]).To(BeNumerically("~", want, want*0.01))
	})

	It("appreciates the property exponentially", func() {
		p := m.Solution.Series("property")
		last := len(p) - 1
		want := 600000 * math.Exp(0.045*m.Times[last])
		Expect(p[last]).To(BeNumerically("~", want, want*0.01))
	})

	It("amortizes the principal and then stops paying it down", func() {
		principal := m.Solution.Series("principal")
		Expect(principal[0]).To(Equal(450000.0))
		// Continuous interest runs slightly ahead of the discrete
		// annuity schedule, so the loan clears before year 30 and the
		// balance freezes where the payoff condition tripped.
		last := principal[len(principal)-1]
		Expect(last).To(BeNumerically("<=", 0))
		Expect(last).To(BeNumerically(">", -40000))
	})

	It("compounds rent collected against the fund", func() {
		totalRent := m.Solution.Series("totalRent")
		last := len(totalRent) - 1
		want := 24000 / 0.02 * (math.Exp(0.02*m.Times[last]) - 1)
		Expect(totalRent[last]).To(BeNumerically("~", want, want*0.01))
	})

	It("reconstructs both profit series", func() {
		Expect(m.Solution.Series("propertyProfit")).To(HaveLen(len(m.Times)))
		Expect(m.Solution.Series("fundProfit")).To(HaveLen(len(m.Times)))
	})
})

var _ = Describe("Turchin", func() {
	var m *models.Turchin

	BeforeEach(func() {
		m = models.NewTurchin()
		Expect(dynamo.Run(context.Background(), m)).To(Succeed())
	})

	It("bounds the carrying capacity by its response curve", func() {
		for _, v := range m.Solution.Series("carryingCapacity") {
			Expect(v).To(BeNumerically(">=", 1.0))
			Expect(v).To(BeNumerically("<", 4.0))
		}
	})

	It("reconstructs surplus alongside the integrated vars", func() {
		Expect(m.Solution.Series("surplus")).To(HaveLen(len(m.Times)))
		Expect(m.Solution.Series("populationDensity")).To(HaveLen(len(m.Times)))
	})
})
