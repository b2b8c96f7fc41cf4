// Package ask433 implements a software modem for cheap 433MHz ASK/OOK radio
// transceiver modules (e.g. the FS1000A transmitter and the XY-MK-5V
// receiver), compatible on the wire with the RadioHead/VirtualWire framing
// used by countless such modules in the field.
//
// The driver drives a single GPIO output pin at RF-modulation cadence to
// transmit and samples a single GPIO input pin at the same cadence to
// receive, recovering bit timing from an unsynchronized, noisy input with a
// small software PLL. It is designed to run on resource constrained
// microcontrollers without an operating system: all state lives in the
// Driver value, Tick and Send work in fixed-capacity buffers without heap
// allocation, and Tick can be called from either a timer interrupt or a
// cooperative delay loop. Receive and ReceiveRaw do allocate: each returns
// a newly allocated copy of the drained frame.
//
// GPIO pins, delay providers, and interrupt masking are supplied by the
// caller through the DigitalOutput, DigitalInput, and CriticalSection
// capabilities; this package never talks to hardware directly. Simple
// commands demonstrating the driver against real GPIO pins (via periph.io)
// can be found in the cmd directory tree.
package ask433
