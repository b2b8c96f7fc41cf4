package ask433

// CriticalSection executes fn with the configured interrupt source masked.
// It is the sole synchronization mechanism between main-line API calls
// (Send, Receive, Available, SetMode) and a tick() invoked from a timer
// interrupt (spec.md §4.7, §5). Two implementations are selected at
// compile time by the ask433_delayloop build tag, see cs_delay.go and
// cs_isr.go.
type CriticalSection interface {
	With(fn func())
}
