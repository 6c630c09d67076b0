package circuitbreaker_test

import (
	"fmt"
	"sync"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/BankToken/circuit-breakers/pkg/circuitbreaker"
)

var _ = Describe("Registry", func() {
	var (
		registry *circuitbreaker.Registry
		clock    *fakeClock
	)

	BeforeEach(func() {
		clock = newFakeClock()

		var err error
		registry, err = circuitbreaker.NewRegistry(5, 30*time.Second,
			circuitbreaker.WithClock(clock))
		Expect(err).NotTo(HaveOccurred())
	})

	Describe("NewRegistry", func() {
		It("should create a registry", func() {
			Expect(registry).NotTo(BeNil())
		})

		It("should reject a zero threshold", func() {
			_, err := circuitbreaker.NewRegistry(0, 30*time.Second)
			Expect(err).To(MatchError(circuitbreaker.ErrInvalidConfiguration))
		})

		It("should reject a zero cooldown", func() {
			_, err := circuitbreaker.NewRegistry(5, 0)
			Expect(err).To(MatchError(circuitbreaker.ErrInvalidConfiguration))
		})
	})

	Describe("GetBreaker", func() {
		It("should create a new breaker for an unknown dependency", func() {
			cb := registry.GetBreaker("payments")
			Expect(cb).NotTo(BeNil())
			Expect(cb.Name()).To(Equal("payments"))
			Expect(cb.IsClosed()).To(BeTrue())
		})

		It("should return the same breaker for the same dependency", func() {
			cb1 := registry.GetBreaker("payments")
			cb2 := registry.GetBreaker("payments")
			Expect(cb1).To(BeIdenticalTo(cb2))
		})

		It("should return different breakers for different dependencies", func() {
			cb1 := registry.GetBreaker("payments")
			cb2 := registry.GetBreaker("inventory")
			Expect(cb1).NotTo(BeIdenticalTo(cb2))
		})

		It("should use the registry threshold for new breakers", func() {
			r, err := circuitbreaker.NewRegistry(2, 30*time.Second,
				circuitbreaker.WithClock(clock))
			Expect(err).NotTo(HaveOccurred())

			cb := r.GetBreaker("payments")
			cb.Fail()
			cb.Fail()
			Expect(cb.IsOpen()).To(BeTrue())
		})

		It("should use the registry cooldown for new breakers", func() {
			r, err := circuitbreaker.NewRegistry(1, 10*time.Second,
				circuitbreaker.WithClock(clock))
			Expect(err).NotTo(HaveOccurred())

			cb := r.GetBreaker("payments")
			cb.Fail()
			Expect(cb.IsOpen()).To(BeTrue())

			clock.Advance(10 * time.Second)
			Expect(cb.IsHalfOpen()).To(BeTrue())
		})

		It("should be safe for concurrent lookups", func() {
			var wg sync.WaitGroup
			breakers := make([]*circuitbreaker.Breaker, 50)

			for i := 0; i < 50; i++ {
				wg.Add(1)
				go func(i int) {
					defer wg.Done()
					breakers[i] = registry.GetBreaker("shared")
				}(i)
			}
			wg.Wait()

			for i := 1; i < 50; i++ {
				Expect(breakers[i]).To(BeIdenticalTo(breakers[0]))
			}
		})
	})

	Describe("Stats", func() {
		It("should report the derived state of every breaker", func() {
			registry.GetBreaker("payments")
			inventory := registry.GetBreaker("inventory")

			for i := 0; i < 5; i++ {
				inventory.Fail()
			}

			stats := registry.Stats()
			Expect(stats).To(HaveLen(2))
			Expect(stats["payments"]).To(Equal(circuitbreaker.StateClosed))
			Expect(stats["inventory"]).To(Equal(circuitbreaker.StateOpen))

			clock.Advance(30 * time.Second)
			Expect(registry.Stats()["inventory"]).To(Equal(circuitbreaker.StateHalfOpen))
		})
	})

	Describe("Reset", func() {
		It("should discard every breaker", func() {
			cb := registry.GetBreaker("payments")
			for i := 0; i < 5; i++ {
				cb.Fail()
			}
			Expect(cb.IsOpen()).To(BeTrue())

			registry.Reset()

			fresh := registry.GetBreaker("payments")
			Expect(fresh).NotTo(BeIdenticalTo(cb))
			Expect(fresh.IsClosed()).To(BeTrue())
			Expect(registry.Stats()).To(HaveLen(1))
		})
	})
})

var _ = Describe("State", func() {
	It("should have readable names", func() {
		Expect(circuitbreaker.StateClosed.String()).To(Equal("CLOSED"))
		Expect(circuitbreaker.StateOpen.String()).To(Equal("OPEN"))
		Expect(circuitbreaker.StateHalfOpen.String()).To(Equal("HALF-OPEN"))
		Expect(fmt.Sprint(circuitbreaker.State(42))).To(Equal("UNKNOWN"))
	})
})
