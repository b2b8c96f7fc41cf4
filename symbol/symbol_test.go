// Copyright 2016 by Thorsten von Eicken, see LICENSE file

package symbol

import "testing"

func Test_RoundTrip(t *testing.T) {
	for b := 0; b < 256; b++ {
		hi, lo := Encode(byte(b))
		got, ok := DecodeByte(hi, lo)
		if !ok {
			t.Fatalf("byte %#02x: DecodeByte reported invalid symbol", b)
		}
		if got != byte(b) {
			t.Fatalf("byte %#02x: round trip got %#02x", b, got)
		}
	}
}

func Test_TableIsUnique(t *testing.T) {
	seen := map[byte]int{}
	for n, s := range Table {
		if other, dup := seen[s]; dup {
			t.Fatalf("symbol %#02x used for both nibble %d and %d", s, other, n)
		}
		seen[s] = n
	}
}

func Test_InvalidSymbol(t *testing.T) {
	invalid := map[byte]struct{}{}
	for s := byte(0); s < 0x40; s++ {
		invalid[s] = struct{}{}
	}
	for _, s := range Table {
		delete(invalid, s)
	}
	for s := range invalid {
		if _, ok := Decode(s); ok {
			t.Fatalf("symbol %#02x should not decode", s)
		}
	}
}

var decodings = map[string]struct {
	sym    byte
	nibble byte
}{
	"zero":  {0x0D, 0x0},
	"one":   {0x0E, 0x1},
	"seven": {0x1C, 0x7},
	"last":  {0x34, 0xF},
}

func Test_Decode(t *testing.T) {
	for n, tc := range decodings {
		got, ok := Decode(tc.sym)
		if !ok {
			t.Fatalf("%s: Decode(%#02x) reported invalid", n, tc.sym)
		}
		if got != tc.nibble {
			t.Fatalf("%s: Decode(%#02x) got %#x expected %#x", n, tc.sym, got, tc.nibble)
		}
	}
}
