package ask433

// Wire format constants from the RadioHead/VirtualWire-compatible framing
// this driver implements (spec.md §4.1-§4.4, §6).
const (
	// MaxPayload is the largest application payload send() will accept.
	MaxPayload = 60
	// HeaderLen is the size of the application header (to, from, id, flags).
	HeaderLen = 4
	// CRCLen is the size of the on-the-wire CRC.
	CRCLen = 2
	// MaxFrameLen is the largest possible value of the declared length byte:
	// 1 (length byte itself) + HeaderLen + MaxPayload + CRCLen.
	MaxFrameLen = 1 + HeaderLen + MaxPayload + CRCLen
	// minFrameLen is the smallest legal declared length: an empty payload
	// still carries the length byte, header, and CRC.
	minFrameLen = 1 + HeaderLen + CRCLen

	preambleByte = 0x2A
	preambleLen  = 8
	// startSymHi, startSymLo are the two 6-bit symbols the start of frame
	// is serialized as: together they are the 12 bits 0xB38 (high symbol
	// in the top 6 bits), the same 12 bits startWindow searches for. They
	// are raw bit patterns, not 4b6b-encoded data (0x38 is not a symbol
	// table entry at all) — the receiver matches
	// them directly against the sliding window rather than decoding them
	// through the symbol table (spec.md §4.3: "implementations should emit
	// the same 12 bits the receiver detects").
	startSymHi = 0x2C
	startSymLo = 0x38
	// startWindow is the 12-bit pattern the sliding window is compared
	// against once the two start symbols have flowed through the PLL,
	// in the RadioHead reference bit orientation (spec.md §4.4, §9).
	startWindow = 0xB38

	// askMaxBufLen is the TX buffer capacity: preamble bytes plus the start
	// symbols and 4b6b-encoded length/header/payload/CRC, one 6-bit symbol
	// per buffer byte, rounded up per spec.md §3.
	askMaxBufLen = 150

	rampLen        = 160
	rampTransition = 80
	rampAdjust     = 9

	// DefaultTicksPerBit is the PLL oversampling factor used unless an
	// Option overrides it.
	DefaultTicksPerBit = 8
	// DefaultCADTimeout is the number of quiet ticks required for
	// Cad to fall back to Rx, per spec.md §4.6.
	DefaultCADTimeout = 8000

	// BroadcastAddress is delivered regardless of any configured address
	// filter, matching RadioHead convention.
	BroadcastAddress = 0xFF
)
