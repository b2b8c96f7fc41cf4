//go:build ask433_delayloop

package ask433

// identityCS is the cooperative/delay-loop critical section: tick() is only
// ever called from main context (a blocking delay loop), so there is never
// any preemption to guard against and With is an identity function
// (spec.md §4.7).
type identityCS struct{}

func (identityCS) With(fn func()) { fn() }

// newCriticalSection returns the build's critical section. external is
// accepted for API symmetry with the timer-isr build but ignored: the
// delay-loop build needs no masking.
func newCriticalSection(external CriticalSection) CriticalSection {
	return identityCS{}
}
