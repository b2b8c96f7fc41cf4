// Copyright (c) 2016 by Thorsten von Eicken, see LICENSE file for details

package main

import "github.com/annie444/ask433/varint"

// encodeStats packs a Stats snapshot into the signed varint wire format so
// the telemetry topic stays compact even polled every few seconds over a
// slow uplink.
func encodeStats(s [7]int) []byte {
	return varint.Encode(s[:])
}

// statsVector orders a Driver.Stats snapshot for varint encoding.
func statsVector(framesGood, badCRC, badLength, invalidSymbol, addrDropped, cadTimeouts, txFramesSent uint32) [7]int {
	return [7]int{
		int(framesGood), int(badCRC), int(badLength),
		int(invalidSymbol), int(addrDropped), int(cadTimeouts), int(txFramesSent),
	}
}
