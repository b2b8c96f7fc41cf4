package ask433

import (
	"github.com/annie444/ask433/crc16"
	"github.com/annie444/ask433/symbol"
)

// resetRxState clears the PLL and frame acquisition state, as required
// whenever the driver (re-)enters Rx (spec.md §4.6: "Re-entering Rx resets
// rx_ramp, rx_integrator, rx_window, clears rx_active"). rx_good is
// deliberately left alone: only Receive or ReceiveRaw clears it.
func (d *Driver) resetRxState() {
	d.rxRamp = 0
	d.rxIntegrator = 0
	d.rxWindow = 0
	d.rxPrevSample = false
	d.resetAcquisition()
}

// resetAcquisition abandons in-progress frame acquisition and returns the
// state machine to WaitPreamble (spec.md §4.5), without touching the PLL
// phase — used after a mid-frame error so the PLL doesn't have to
// re-acquire lock from scratch.
func (d *Driver) resetAcquisition() {
	d.rxActive = false
	d.rxBufLen = 0
	d.rxCount = -1
	d.rxBitsSinceSync = 0
}

// tickRx runs one PLL sub-sample: integrate the RX sample, nudge the ramp
// phase on edges, and when a bit period elapses, feed the recovered bit
// into the frame state machine (spec.md §4.4).
func (d *Driver) tickRx() {
	sample := d.rx.IsHigh()
	edge := sample != d.rxPrevSample
	d.rxPrevSample = sample

	inc := d.rampBase
	if edge {
		if d.rxRamp < rampTransition {
			inc = d.rampRetard
		} else {
			inc = d.rampAdvance
		}
	}
	d.rxRamp += inc

	if sample {
		d.rxIntegrator++
		d.lastBusyTick = d.tickCount
	}

	if d.rxRamp >= rampLen {
		d.rxRamp -= rampLen
		bit := uint16(0)
		if d.rxIntegrator >= int(d.ticksPerBit)/2 {
			bit = 1
		}
		d.rxIntegrator = 0
		d.rxWindow = ((d.rxWindow << 1) | bit) & 0x0FFF
		d.onBitComplete()
	}

	if d.mode == ModeCad && d.tickCount-d.lastBusyTick >= d.cadTimeout {
		d.mode = ModeRx
		d.resetRxState()
		d.stats.CADTimeouts++
		d.recordTrace(traceCADTimeout, 0)
	}
}

// onBitComplete runs the frame state machine for one newly recovered bit:
// sync detection, byte assembly out of symbol pairs, the length gate, and
// CRC verification on completion (spec.md §4.4 steps 5-8, §4.5).
func (d *Driver) onBitComplete() {
	if !d.rxActive {
		// Deliver holds the completed frame until Receive drains it; don't
		// start acquiring a new one over top of it (spec.md §4.5).
		if !d.rxGood && d.rxWindow == startWindow {
			d.rxActive = true
			d.rxBufLen = 0
			d.rxCount = -1
			d.rxBitsSinceSync = 0
			d.recordTrace(traceSync, 0)
		}
		return
	}

	d.rxBitsSinceSync++
	if d.rxBitsSinceSync < 12 {
		return
	}
	d.rxBitsSinceSync = 0

	hiSym := byte((d.rxWindow >> 6) & 0x3F)
	loSym := byte(d.rxWindow & 0x3F)
	b, ok := symbol.DecodeByte(hiSym, loSym)
	if !ok {
		d.stats.InvalidSymbol++
		d.recordTrace(traceInvalidSymbol, uint16(d.rxWindow))
		d.resetAcquisition()
		return
	}

	d.rxBuf[d.rxBufLen] = b
	d.rxBufLen++

	if d.rxCount < 0 {
		n := int(b)
		if n < minFrameLen || n > MaxFrameLen {
			d.stats.BadLength++
			d.recordTrace(traceBadLength, uint16(n))
			d.resetAcquisition()
			return
		}
		d.rxCount = n
		return
	}

	if d.rxBufLen == d.rxCount {
		d.completeFrame()
	}
}

// completeFrame validates CRC over the accumulated bytes and, on success,
// applies address filtering before publishing the frame for Receive.
func (d *Driver) completeFrame() {
	crc := crc16.Checksum(d.rxBuf[:d.rxBufLen])
	if crc != crc16.Good {
		d.stats.BadCRC++
		d.recordTrace(traceBadCRC, 0)
		d.resetAcquisition()
		return
	}

	to := d.rxBuf[1]
	if d.addrSet && to != d.ourAddr && to != BroadcastAddress {
		d.stats.AddrDropped++
		d.recordTrace(traceAddrDrop, uint16(to))
		d.resetAcquisition()
		return
	}

	d.rxActive = false
	d.rxGood = true
	d.stats.FramesGood++
	d.recordTrace(traceFrameGood, uint16(d.rxBufLen))
}
