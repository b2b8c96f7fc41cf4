package ask433

import (
	"github.com/annie444/ask433/crc16"
	"github.com/annie444/ask433/symbol"
)

// Send assembles a frame (length, header, payload, CRC, 4b6b-encoded,
// preamble and start symbol prepended) and switches the driver into Tx
// mode. It returns ErrTooLong if payload exceeds MaxPayload, or ErrBusy if
// the driver is already transmitting (spec.md §4.3, §6).
func (d *Driver) Send(hdr Header, payload []byte) error {
	if len(payload) > MaxPayload {
		return ErrTooLong
	}

	var err error
	d.cs.With(func() {
		if d.mode == ModeTx {
			err = ErrBusy
			return
		}

		n := 1 + HeaderLen + len(payload) + CRCLen
		var plain [MaxFrameLen]byte
		plain[0] = byte(n)
		plain[1] = hdr.To
		plain[2] = hdr.From
		plain[3] = hdr.ID
		plain[4] = hdr.Flags
		copy(plain[5:], payload)
		crc := crc16.Checksum(plain[:5+len(payload)])
		lo, hi := crc16.Bytes(crc)
		plain[5+len(payload)] = lo
		plain[6+len(payload)] = hi

		buf := d.txBuf[:0]
		for i := 0; i < preambleLen; i++ {
			buf = append(buf, preambleByte)
		}
		buf = append(buf, startSymHi, startSymLo)
		symCount := 2
		for i := 0; i < n; i++ {
			hiSym, loSym := symbol.Encode(plain[i])
			buf = append(buf, hiSym, loSym)
			symCount += 2
		}

		d.txSymCount = symCount
		d.txBitIndex = 0
		d.txSubTick = 0
		d.mode = ModeTx
		d.stats.TxFramesSent++
		d.recordTrace(traceModeChange, uint16(ModeTx))
	})
	return err
}

// TxDone reports whether the driver has finished transmitting and returned
// to Rx, for callers that cannot wait for mode==Rx directly (spec.md §5).
func (d *Driver) TxDone() bool {
	var done bool
	d.cs.With(func() { done = d.mode != ModeTx })
	return done
}

// tickTx drains one bit of the TX buffer, holding each bit steady for
// ticksPerBit ticks so a receiver sampling at the same cadence sees a
// stable level over a full bit period (spec.md §2 dataflow, §8 property 3).
//
// The preamble occupies the first preambleLen buffer bytes at full width
// (8 bits each, MSB-first); everything after it — the start symbols and
// the 4b6b-encoded length/header/payload/CRC — is one 6-bit symbol per
// buffer byte, MSB-first within those low 6 bits, so the bit stream that
// reaches the wire matches the 12-bits-per-byte window the RX PLL
// assembles (spec.md §4.3, §4.4).
func (d *Driver) tickTx() {
	totalBits := preambleLen*8 + d.txSymCount*6
	if d.txBitIndex >= totalBits {
		d.tx.SetLow()
		d.mode = ModeRx
		d.resetRxState()
		d.txBitIndex = 0
		d.txSubTick = 0
		d.recordTrace(traceModeChange, uint16(ModeRx))
		return
	}

	var bit byte
	if d.txBitIndex < preambleLen*8 {
		byteIdx := d.txBitIndex / 8
		bitIdx := uint(7 - d.txBitIndex%8)
		bit = (d.txBuf[byteIdx] >> bitIdx) & 1
	} else {
		symBit := d.txBitIndex - preambleLen*8
		byteIdx := preambleLen + symBit/6
		bitIdx := uint(5 - symBit%6)
		bit = (d.txBuf[byteIdx] >> bitIdx) & 1
	}
	if bit == 1 {
		d.tx.SetHigh()
	} else {
		d.tx.SetLow()
	}

	d.txSubTick++
	if d.txSubTick >= int(d.ticksPerBit) {
		d.txSubTick = 0
		d.txBitIndex++
	}
}
