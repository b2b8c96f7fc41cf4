package ask433

// Header is the 4-byte application header carried by every frame,
// passed through unchanged by the driver (spec.md §1: "any form of
// application-layer addressing semantics beyond passing the 4 header bytes
// through unchanged" is out of scope).
type Header struct {
	To    byte
	From  byte
	ID    byte
	Flags byte
}

func decodeHeader(b []byte) Header {
	return Header{To: b[0], From: b[1], ID: b[2], Flags: b[3]}
}
