package ask433

// LogFunc is a logging hook in the shape the teacher's radio drivers use
// (e.g. sx1231.Radio.log), defaulting to a no-op.
type LogFunc func(format string, v ...interface{})

// Stats holds zero-alloc telemetry counters, bumped as the RX state
// machine self-heals from the error conditions spec.md §7 describes.
// Not part of spec.md's data model but a natural, allocation-free addition
// (SPEC_FULL.md §6) mirroring the teacher's Radio.intrCnt/Radio.rxTimeout
// bookkeeping.
type Stats struct {
	FramesGood    uint32
	BadCRC        uint32
	BadLength     uint32
	InvalidSymbol uint32
	AddrDropped   uint32
	CADTimeouts   uint32
	TxFramesSent  uint32
}

// Driver owns all runtime state for one ASK/OOK modem: the TX bit pump, the
// RX PLL and frame state machine, and the mode automaton arbitrating
// between them (spec.md §3). It is exclusive: shared between main-line code
// and at most one interrupt source through CriticalSection.
type Driver struct {
	tx    DigitalOutput
	rx    DigitalInput
	cs    CriticalSection
	log   LogFunc
	trace traceBuf

	mode Mode

	ticksPerBit uint
	rampBase    int
	rampAdvance int
	rampRetard  int

	cadTimeout uint64

	// promiscuous delivery unless addrSet
	addrSet bool
	ourAddr byte

	// tick counter, monotonic for the lifetime of the Driver.
	tickCount uint64

	// --- TX bit pump state (spec.md §4.3) ---
	txBuf      [askMaxBufLen]byte
	txSymCount int // number of 6-bit symbols following the preambleLen preamble bytes
	txBitIndex int
	txSubTick  int

	// --- RX PLL state (spec.md §3, §4.4) ---
	rxRamp          int
	rxIntegrator    int
	rxWindow        uint16
	rxPrevSample    bool
	rxBitsSinceSync int

	// --- frame state machine state (spec.md §4.5) ---
	rxActive bool
	rxGood   bool
	rxBuf    [MaxFrameLen]byte
	rxBufLen int
	rxCount  int // -1 until the length byte has been decoded

	lastBusyTick uint64

	stats Stats
}

// Option configures a Driver at construction time.
type Option func(*driverConfig)

type driverConfig struct {
	ticksPerBit uint
	cadTimeout  uint64
	rxGain      int
	haveGain    bool
	cs          CriticalSection
	log         LogFunc
	addrSet     bool
	addr        byte
}

// WithTicksPerBit overrides the PLL oversampling factor (spec.md §3,
// default DefaultTicksPerBit).
func WithTicksPerBit(n uint) Option {
	return func(c *driverConfig) { c.ticksPerBit = n }
}

// WithCADTimeout overrides the number of quiet ticks required for Cad to
// fall back to Rx (spec.md §4.6, default DefaultCADTimeout).
func WithCADTimeout(ticks uint64) Option {
	return func(c *driverConfig) { c.cadTimeout = ticks }
}

// WithRXGain forwards gain to the RX pin at construction time if it
// implements GainSetter; AGC itself remains out of scope (spec.md §1).
func WithRXGain(gain int) Option {
	return func(c *driverConfig) { c.rxGain = gain; c.haveGain = true }
}

// WithCriticalSection supplies the interrupt-masking primitive required by
// the timer-isr build (spec.md §4.7). Ignored by the delay-loop build.
func WithCriticalSection(cs CriticalSection) Option {
	return func(c *driverConfig) { c.cs = cs }
}

// WithLogger installs a logging hook, nil-safe like sx1231.Radio.SetLogger.
func WithLogger(fn LogFunc) Option {
	return func(c *driverConfig) { c.log = fn }
}

// WithAddress enables address filtering: only frames whose header To byte
// equals addr (or BroadcastAddress) are delivered by Receive. Default is
// promiscuous delivery (spec.md §9 open question).
func WithAddress(addr byte) Option {
	return func(c *driverConfig) { c.addrSet = true; c.addr = addr }
}

// New constructs a Driver around the given TX/RX pin capabilities and
// places it in Idle mode. Ownership of tx and rx is transferred in
// (spec.md §3 Lifecycle).
func New(tx DigitalOutput, rx DigitalInput, opts ...Option) *Driver {
	cfg := driverConfig{
		ticksPerBit: DefaultTicksPerBit,
		cadTimeout:  DefaultCADTimeout,
		log:         func(string, ...interface{}) {},
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.ticksPerBit == 0 {
		cfg.ticksPerBit = DefaultTicksPerBit
	}

	if cfg.haveGain {
		if gs, ok := rx.(GainSetter); ok {
			gs.SetGain(cfg.rxGain)
		}
	}

	base := rampLen / int(cfg.ticksPerBit)
	d := &Driver{
		tx:          tx,
		rx:          rx,
		cs:          newCriticalSection(cfg.cs),
		log:         cfg.log,
		mode:        ModeIdle,
		ticksPerBit: cfg.ticksPerBit,
		rampBase:    base,
		rampAdvance: base + rampAdjust,
		rampRetard:  base - rampAdjust,
		cadTimeout:  cfg.cadTimeout,
		addrSet:     cfg.addrSet,
		ourAddr:     cfg.addr,
		rxCount:     -1,
	}
	return d
}

// Stats returns a snapshot of the driver's telemetry counters.
func (d *Driver) Stats() Stats {
	var s Stats
	d.cs.With(func() {
		s = d.stats
	})
	return s
}
