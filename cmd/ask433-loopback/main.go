// Command ask433-loopback drives a TX and an RX GPIO pin with the ask433
// software modem from a cooperative delay loop, sending a counter payload
// once a second and logging whatever it hears back. It is meant to be run
// with a TX pin wired directly to an RX pin (or to a matching transceiver
// pair) for a bench check of the driver against real GPIO hardware, the way
// rfm-check checked an SPI radio against real silicon.
//
// Build with -tags ask433_delayloop: the delay loop below is the
// critical section, there is no timer interrupt to mask.
package main

import (
	"flag"
	"log"
	"time"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/host/v3"

	"github.com/annie444/ask433"
	"github.com/annie444/ask433/thread"
)

func panicIf(err error) {
	if err != nil {
		panic(err)
	}
}

// outPin adapts a periph.io gpio.PinIO to ask433.DigitalOutput.
type outPin struct{ pin gpio.PinIO }

func (o outPin) SetHigh() { o.pin.Out(gpio.High) }
func (o outPin) SetLow()  { o.pin.Out(gpio.Low) }

// inPin adapts a periph.io gpio.PinIO to ask433.DigitalInput.
type inPin struct{ pin gpio.PinIO }

func (i inPin) IsHigh() bool { return i.pin.Read() == gpio.High }

func main() {
	txName := flag.String("tx", "GPIO17", "name of the GPIO pin driving the transmitter")
	rxName := flag.String("rx", "GPIO27", "name of the GPIO pin reading the receiver")
	ticksPerBit := flag.Uint("ticks-per-bit", ask433.DefaultTicksPerBit, "PLL oversampling factor")
	tickInterval := flag.Duration("tick", 125*time.Microsecond, "wall-clock duration of one Tick")
	flag.Parse()

	if _, err := host.Init(); err != nil {
		panic(err)
	}

	txGPIO := gpioreg.ByName(*txName)
	if txGPIO == nil {
		panic("cannot open tx pin " + *txName)
	}
	rxGPIO := gpioreg.ByName(*rxName)
	if rxGPIO == nil {
		panic("cannot open rx pin " + *rxName)
	}
	panicIf(txGPIO.Out(gpio.Low))
	panicIf(rxGPIO.In(gpio.PullDown, gpio.NoEdge))

	d := ask433.New(outPin{txGPIO}, inPin{rxGPIO},
		ask433.WithTicksPerBit(*ticksPerBit),
		ask433.WithLogger(func(format string, v ...interface{}) { log.Printf(format, v...) }),
	)
	panicIf(d.SetMode(ask433.ModeRx))

	if err := thread.Realtime(); err != nil {
		log.Printf("could not raise scheduling priority: %v (continuing anyway)", err)
	}

	nextSend := time.Now()
	seq := byte(0)
	ticker := time.NewTicker(*tickInterval)
	defer ticker.Stop()

	for range ticker.C {
		d.Tick()

		if d.Available() {
			payload, hdr, ok := d.Receive()
			if ok {
				log.Printf("rx frame from %#x to %#x: %q (stats=%+v)", hdr.From, hdr.To, payload, d.Stats())
			}
		}

		if now := time.Now(); !now.Before(nextSend) && d.TxDone() {
			hdr := ask433.Header{To: ask433.BroadcastAddress, From: 0x01, ID: seq}
			if err := d.Send(hdr, []byte{seq}); err != nil {
				log.Printf("send failed: %v", err)
			}
			seq++
			nextSend = now.Add(time.Second)
		}
	}
}
