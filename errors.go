package ask433

import "errors"

// ErrTooLong is returned by Send when the payload exceeds MaxPayload bytes.
var ErrTooLong = errors.New("ask433: payload exceeds maximum length")

// ErrBusy is returned by Send when the driver is already transmitting.
var ErrBusy = errors.New("ask433: driver is transmitting")

// ErrInvalidMode is returned by SetMode/StartCad for an illegal transition:
// forcing a mode while transmitting, or requesting Tx directly instead of
// through Send.
var ErrInvalidMode = errors.New("ask433: illegal mode transition")

// Internal RX errors (spec.md §7 InvalidSymbol/BadCrc/BadLength) are never
// returned to callers: they are self-healing conditions that reset frame
// acquisition and are only observable via the trace hook or Stats.
