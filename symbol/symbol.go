// Copyright 2016 by Thorsten von Eicken, see LICENSE file

// Package symbol implements the 4b6b block code used on the wire by
// RadioHead/VirtualWire-compatible ASK/OOK modems: every 4-bit nibble maps
// to one of 16 distinct 6-bit symbols chosen for DC balance and Hamming
// separation, so that most single-symbol line errors are detectable.
package symbol

// Table is the canonical RadioHead 4b6b symbol table. Table[n] is the
// 6-bit symbol (in the low 6 bits of the byte) for the 4-bit nibble n.
var Table = [16]byte{
	0x0D, 0x0E, 0x13, 0x15, 0x16, 0x19, 0x1A, 0x1C,
	0x23, 0x25, 0x26, 0x29, 0x2A, 0x2C, 0x32, 0x34,
}

// Encode returns the pair of 6-bit symbols for a byte, high nibble first.
func Encode(b byte) (hi, lo byte) {
	return Table[b>>4], Table[b&0x0F]
}

// Decode reverse-looks-up a 6-bit symbol and returns the nibble it
// represents. ok is false when sym does not match any table entry, the
// InvalidSymbol condition from spec.md.
func Decode(sym byte) (nibble byte, ok bool) {
	for n, s := range Table {
		if s == sym {
			return byte(n), true
		}
	}
	return 0, false
}

// DecodeByte combines two 6-bit symbols (high nibble symbol first) back
// into the original byte. ok is false if either symbol is invalid.
func DecodeByte(hi, lo byte) (b byte, ok bool) {
	h, ok1 := Decode(hi)
	l, ok2 := Decode(lo)
	if !ok1 || !ok2 {
		return 0, false
	}
	return h<<4 | l, true
}
