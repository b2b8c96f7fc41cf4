package ask433

// Mode is the driver's current operating mode, a plain tagged enum with no
// payload (spec.md §9: "Mode is a tagged variant, not inheritance").
type Mode byte

const (
	// ModeSleep is the lowest power mode; Tick is a no-op.
	ModeSleep Mode = iota
	// ModeIdle neither transmits nor samples RX.
	ModeIdle
	// ModeTx is draining the TX buffer, one bit per Tick, half-duplex
	// (RX sampling is suspended).
	ModeTx
	// ModeRx is running the PLL and frame state machine against the RX pin.
	ModeRx
	// ModeCad is running the PLL like ModeRx but additionally tracking
	// channel quiet time for a clear-channel assessment.
	ModeCad
)

// String renders the mode the way the teacher's enumerations do, for use in
// log lines and trace dumps.
func (m Mode) String() string {
	switch m {
	case ModeSleep:
		return "sleep"
	case ModeIdle:
		return "idle"
	case ModeTx:
		return "tx"
	case ModeRx:
		return "rx"
	case ModeCad:
		return "cad"
	default:
		return "unknown"
	}
}
