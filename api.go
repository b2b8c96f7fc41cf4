package ask433

// Tick advances the driver by one sub-sample: the TX bit pump while
// transmitting, or the RX PLL in Rx and Cad; in Sleep and Idle it only
// advances the tick counter. It is the sole mutator of driver
// state between calls to Send (spec.md §3), and runs in O(1) (spec.md §5).
func (d *Driver) Tick() {
	d.cs.With(func() {
		d.tickCount++
		switch d.mode {
		case ModeTx:
			d.tickTx()
		case ModeRx, ModeCad:
			d.tickRx()
		case ModeSleep, ModeIdle:
			// nothing to do
		}
	})
}

// Available reports whether a validated frame is waiting to be drained by
// Receive.
func (d *Driver) Available() bool {
	var ok bool
	d.cs.With(func() { ok = d.rxGood })
	return ok
}

// Receive drains a completed frame, if any, returning its decoded header
// and application payload with the length byte, header, and CRC stripped.
// It is non-blocking: ok is false whenever !Available() (spec.md §5, §6).
func (d *Driver) Receive() (payload []byte, hdr Header, ok bool) {
	d.cs.With(func() {
		if !d.rxGood {
			return
		}
		hdr = decodeHeader(d.rxBuf[1:5])
		n := d.rxBufLen - CRCLen
		payload = append([]byte(nil), d.rxBuf[1+HeaderLen:n]...)
		ok = true
		d.rxGood = false
		d.rxBufLen = 0
	})
	return
}

// ReceiveRaw drains a completed frame like Receive but returns the header
// and payload together, undecoded, with only the length byte and CRC
// stripped (spec.md §9 open question: expose both forms).
func (d *Driver) ReceiveRaw() (frame []byte, ok bool) {
	d.cs.With(func() {
		if !d.rxGood {
			return
		}
		n := d.rxBufLen - CRCLen
		frame = append([]byte(nil), d.rxBuf[1:n]...)
		ok = true
		d.rxGood = false
		d.rxBufLen = 0
	})
	return
}

// Mode returns the driver's current mode.
func (d *Driver) Mode() Mode {
	var m Mode
	d.cs.With(func() { m = d.mode })
	return m
}

// SetMode forces a mode transition. It is rejected while transmitting, and
// Tx cannot be requested directly — only Send enters Tx (spec.md §4.6,
// §6).
func (d *Driver) SetMode(m Mode) error {
	var err error
	d.cs.With(func() {
		if d.mode == ModeTx {
			err = ErrInvalidMode
			return
		}
		if m == ModeTx {
			err = ErrInvalidMode
			return
		}
		if m == ModeRx && d.mode != ModeRx {
			d.resetRxState()
		}
		if m == ModeCad {
			d.lastBusyTick = d.tickCount
		}
		d.mode = m
		d.recordTrace(traceModeChange, uint16(m))
	})
	return err
}

// StartCad switches from Rx to Cad to perform a clear-channel assessment
// (spec.md §4.6). It is only legal from Rx.
func (d *Driver) StartCad() error {
	var err error
	d.cs.With(func() {
		if d.mode != ModeRx {
			err = ErrInvalidMode
			return
		}
		d.mode = ModeCad
		d.lastBusyTick = d.tickCount
		d.recordTrace(traceModeChange, uint16(ModeCad))
	})
	return err
}

// IsChannelBusy reports whether the channel currently looks occupied: the
// RX line was sampled high on the most recent tick, or a frame is
// mid-acquisition.
func (d *Driver) IsChannelBusy() bool {
	var busy bool
	d.cs.With(func() { busy = d.rxPrevSample || d.rxActive })
	return busy
}
