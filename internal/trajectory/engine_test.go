package trajectory

import (
	"bytes"
	"log/slog"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/trajsim/internal/dynamo"
	"github.com/san-kum/trajsim/internal/environment"
	"github.com/san-kum/trajsim/internal/integrators"
)

func lastX(s []Sample) float64 { return s[len(s)-1].X }

var _ = Describe("Engine", func() {
	launch := Launch{Speed: 30, AngleDeg: 45, Mass: 0.1, Radius: 0.05}

	Describe("Drag", func() {
		It("matches the ideal range when there is no atmosphere", func() {
			env := environment.Select("moon")
			res, err := Drag(launch, env)
			Expect(err).NotTo(HaveOccurred())
			Expect(res.Method).To(Equal(MethodRK45))
			Expect(res.Landed).To(BeTrue())

			ideal, err := Ideal(launch.Speed, launch.AngleDeg, env.Gravity)
			Expect(err).NotTo(HaveOccurred())
			Expect(lastX(res.Samples)).To(BeNumerically("~", lastX(ideal), 1e-6))
		})

		DescribeTable("never exceeds the ideal range in an atmosphere",
			func(planet string, speed, angle float64) {
				env := environment.Select(planet)
				l := Launch{Speed: speed, AngleDeg: angle, Mass: 0.1, Radius: 0.05}

				res, err := Drag(l, env)
				Expect(err).NotTo(HaveOccurred())
				idealRange, err := IdealRange(speed, angle, env.Gravity)
				Expect(err).NotTo(HaveOccurred())
				Expect(lastX(res.Samples)).To(BeNumerically("<=", idealRange))
				Expect(lastX(res.Samples)).To(BeNumerically(">", 0))
			},
			Entry("earth", "earth", 30.0, 45.0),
			Entry("earth steep", "earth", 60.0, 70.0),
			Entry("mars", "mars", 30.0, 45.0),
			Entry("jupiter", "jupiter", 80.0, 30.0),
		)

		It("ends at ground contact with ordered samples above tolerance", func() {
			res, err := Drag(launch, environment.Earth())
			Expect(err).NotTo(HaveOccurred())
			Expect(res.Samples).NotTo(BeEmpty())
			Expect(res.Samples[0]).To(Equal(Sample{}))

			for i, s := range res.Samples {
				Expect(s.Y).To(BeNumerically(">=", -GroundTolerance))
				if i > 0 {
					Expect(s.Time).To(BeNumerically(">", res.Samples[i-1].Time))
					Expect(s.Time - res.Samples[i-1].Time).To(BeNumerically("<=", MaxStep+1e-12))
				}
			}
			Expect(res.Samples[len(res.Samples)-1].Y).To(BeNumerically("~", 0, 1e-9))
		})

		It("agrees with the Euler integrator to within first-order error", func() {
			res, err := Drag(launch, environment.Earth())
			Expect(err).NotTo(HaveOccurred())
			euler := aboveGround(EulerDrag(launch, environment.Earth()))

			rk := lastX(res.Samples)
			Expect(lastX(euler)).To(BeNumerically("~", rk, 0.02*rk))
		})

		It("stops at the time span when the projectile is still airborne", func() {
			l := Launch{Speed: 100, AngleDeg: 75, Mass: 0.1, Radius: 0.05}
			res, err := Drag(l, environment.Moon())
			Expect(err).NotTo(HaveOccurred())
			Expect(res.Landed).To(BeFalse())
			Expect(res.Samples[len(res.Samples)-1].Time).To(BeNumerically("~", TimeSpan, 1e-9))
		})

		It("keeps the landing point of a grazing launch", func() {
			res, err := Drag(Launch{Speed: 1, AngleDeg: 1e-6, Mass: 0.1, Radius: 0.05}, environment.Jupiter())
			Expect(err).NotTo(HaveOccurred())
			Expect(res.Method).To(Equal(MethodRK45))
			Expect(res.Landed).To(BeTrue())
			Expect(len(res.Samples)).To(BeNumerically(">=", 2))

			last := res.Samples[len(res.Samples)-1]
			Expect(last.Time).To(BeNumerically(">", 0))
			Expect(last.X).To(BeNumerically(">", 0))
			Expect(last.Y).To(BeNumerically("~", 0, 1e-12))
		})

		It("rejects invalid launches", func() {
			_, err := Drag(Launch{Speed: 30, AngleDeg: 90, Mass: 0.1, Radius: 0.05}, environment.Earth())
			Expect(err).To(MatchError(dynamo.ErrInvalidParameter))

			_, err = Drag(launch, environment.Environment{Gravity: 0})
			Expect(err).To(MatchError(dynamo.ErrInvalidParameter))
		})

		It("is idempotent", func() {
			a, errA := Drag(launch, environment.Jupiter())
			b, errB := Drag(launch, environment.Jupiter())
			Expect(errA).NotTo(HaveOccurred())
			Expect(errB).NotTo(HaveOccurred())
			Expect(a).To(Equal(b))
		})
	})

	Describe("fallback", func() {
		var (
			logs   *bytes.Buffer
			engine *Engine
		)

		BeforeEach(func() {
			logs = &bytes.Buffer{}
			opts := SolverOptions()
			opts.MaxStep = 1e-18
			engine = &Engine{
				Logger:  slog.New(slog.NewTextHandler(logs, nil)),
				Options: &opts,
			}
		})

		It("switches to Euler when the adaptive solve fails", func() {
			res, err := engine.Drag(launch, environment.Earth())
			Expect(err).NotTo(HaveOccurred())
			Expect(res.Method).To(Equal(MethodEuler))
			Expect(res.Fallback).To(MatchError(dynamo.ErrStepTooSmall))
			Expect(res.Landed).To(BeTrue())
			Expect(res.Samples).To(Equal(aboveGround(EulerDrag(launch, environment.Earth()))))
			Expect(logs.String()).To(ContainSubstring("euler fallback"))
		})

		It("falls back once the step budget runs out on a feather-light launch", func() {
			feather := Launch{Speed: 100, AngleDeg: 45, Mass: 1e-6, Radius: 0.5}

			start := time.Now()
			res, err := NewEngine(slog.New(slog.NewTextHandler(logs, nil))).Drag(feather, environment.Earth())
			Expect(time.Since(start)).To(BeNumerically("<", 10*time.Second))

			Expect(err).NotTo(HaveOccurred())
			Expect(res.Method).To(Equal(MethodEuler))
			Expect(res.Fallback).To(MatchError(dynamo.ErrTooManySteps))
			Expect(res.Samples).NotTo(BeEmpty())
			Expect(res.Samples[0]).To(Equal(Sample{}))
		})

		It("leaves the caller's options untouched", func() {
			_, err := engine.Drag(launch, environment.Earth())
			Expect(err).NotTo(HaveOccurred())
			Expect(engine.Options.Events).To(BeEmpty())
		})
	})

	Describe("EulerDrag", func() {
		It("produces increasing time and stops below ground or at the step cap", func() {
			samples := EulerDrag(launch, environment.Earth())
			Expect(samples[0]).To(Equal(Sample{}))

			for i := 1; i < len(samples); i++ {
				Expect(samples[i].Time).To(BeNumerically(">", samples[i-1].Time))
			}

			last := samples[len(samples)-1]
			stoppedBelow := last.Y < -GroundTolerance
			hitCap := len(samples) == EulerMaxSteps+1
			Expect(stoppedBelow || hitCap).To(BeTrue())
			Expect(stoppedBelow).To(BeTrue())
		})

		It("is capped at EulerMaxSteps", func() {
			samples := EulerDrag(Launch{Speed: 100, AngleDeg: 80, Mass: 1, Radius: 0.01}, environment.Moon())
			Expect(samples).To(HaveLen(EulerMaxSteps + 1))
			Expect(samples[len(samples)-1].Time).To(BeNumerically("~", EulerMaxSteps*EulerStep, 1e-9))
		})

		It("returns the origin alone for an invalid launch", func() {
			Expect(EulerDrag(Launch{}, environment.Earth())).To(Equal([]Sample{{}}))
		})
	})

	Describe("Simulate", func() {
		It("uses the ideal path as the real one without drag", func() {
			run, err := Simulate(Request{Planet: "Mars (3.71 m/s²)", Launch: launch})
			Expect(err).NotTo(HaveOccurred())
			Expect(run.Env).To(Equal(environment.Mars()))
			Expect(run.Method).To(Equal(MethodAnalytic))
			Expect(run.Real).To(Equal(run.Ideal))
		})

		It("computes the drag path when requested", func() {
			run, err := Simulate(Request{Planet: "earth", Launch: launch, Drag: true})
			Expect(err).NotTo(HaveOccurred())
			Expect(run.Method).To(Equal(MethodRK45))
			Expect(lastX(run.Real)).To(BeNumerically("<", lastX(run.Ideal)))
		})

		It("falls back to earth for unknown planets", func() {
			run, err := Simulate(Request{Planet: "vulcan", Launch: launch})
			Expect(err).NotTo(HaveOccurred())
			Expect(run.Env.Name).To(Equal("Earth"))
		})

		It("rejects invalid launches", func() {
			_, err := Simulate(Request{Planet: "earth", Launch: Launch{Speed: -1, AngleDeg: 45, Mass: 1, Radius: 1}})
			Expect(err).To(MatchError(dynamo.ErrInvalidParameter))
		})
	})

	It("solver settings are the documented ones", func() {
		opts := SolverOptions()
		Expect(opts).To(Equal(integrators.Options{TEnd: 50, RTol: 1e-9, ATol: 1e-12, MaxStep: 1e-3, MaxSteps: 60000}))
	})
})
