// Copyright (c) 2016 by Thorsten von Eicken, see LICENSE file for details

// Command ask433-gateway bridges a single 433MHz ASK/OOK radio to MQTT: it
// publishes every frame it receives to <prefix>/rx, transmits whatever
// frames are published to <prefix>/tx, and periodically publishes varint
// encoded Stats telemetry to <prefix>/stats. It descends from mqttradio,
// which did the same job for a set of SPI-attached FSK/LoRa radios; this
// gateway drives exactly one GPIO bit-bang radio instead.
//
// Build with -tags ask433_delayloop: the tick goroutine below is the
// critical section, there is no timer interrupt to mask.
package main

import (
	"flag"
	"fmt"
	"io/ioutil"
	"log"
	"os"
	"time"

	"github.com/BurntSushi/toml"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/host/v3"

	"github.com/annie444/ask433"
	"github.com/annie444/ask433/thread"
)

type outPin struct{ pin gpio.PinIO }

func (o outPin) SetHigh() { o.pin.Out(gpio.High) }
func (o outPin) SetLow()  { o.pin.Out(gpio.Low) }

type inPin struct{ pin gpio.PinIO }

func (i inPin) IsHigh() bool { return i.pin.Read() == gpio.High }

func main() {
	configFile := flag.String("config", "ask433-gateway.toml", "path to config file")
	flag.Parse()

	raw, err := ioutil.ReadFile(*configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "cannot access config file: %s\n", err)
		os.Exit(1)
	}
	var config Config
	if err := toml.Unmarshal(raw, &config); err != nil {
		fmt.Fprintf(os.Stderr, "cannot parse config file: %s\n", err)
		os.Exit(1)
	}
	config.Gateway.setDefaults()

	logger := LogPrintf(func(string, ...interface{}) {})
	if config.Debug {
		log.SetFlags(log.LstdFlags | log.Lmicroseconds)
		logger = log.Printf
	}

	broker, err := newMQ(config.Mqtt, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to connect to MQTT broker: %s\n", err)
		os.Exit(2)
	}

	if _, err := host.Init(); err != nil {
		panic(err)
	}
	txGPIO := gpioreg.ByName(config.Gateway.TxPin)
	if txGPIO == nil {
		panic("cannot open tx pin " + config.Gateway.TxPin)
	}
	rxGPIO := gpioreg.ByName(config.Gateway.RxPin)
	if rxGPIO == nil {
		panic("cannot open rx pin " + config.Gateway.RxPin)
	}
	if err := txGPIO.Out(gpio.Low); err != nil {
		panic(err)
	}
	if err := rxGPIO.In(gpio.PullDown, gpio.NoEdge); err != nil {
		panic(err)
	}

	opts := []ask433.Option{
		ask433.WithTicksPerBit(config.Gateway.TicksPerBit),
		ask433.WithLogger(func(format string, v ...interface{}) { logger(format, v...) }),
	}
	if config.Gateway.CadTimeout > 0 {
		opts = append(opts, ask433.WithCADTimeout(config.Gateway.CadTimeout))
	}
	if config.Gateway.Address >= 0 {
		opts = append(opts, ask433.WithAddress(byte(config.Gateway.Address)))
	}
	radio := ask433.New(outPin{txGPIO}, inPin{rxGPIO}, opts...)
	if err := radio.SetMode(ask433.ModeRx); err != nil {
		panic(err)
	}

	if err := broker.SubscribeTx(func(req TxRequest) {
		hdr := ask433.Header{To: req.To, From: req.From, ID: req.ID, Flags: req.Flags}
		if err := radio.Send(hdr, req.Payload); err != nil {
			logger("tx request rejected: %s", err)
		}
	}); err != nil {
		fmt.Fprintf(os.Stderr, "failed to subscribe to tx topic: %s\n", err)
		os.Exit(2)
	}

	log.Printf("Gateway is ready")
	go runTickLoop(radio, broker, time.Duration(config.Gateway.TickMicros)*time.Microsecond, logger)

	statsInterval := time.Duration(config.Gateway.StatsInterval) * time.Second
	statsTopic := config.Mqtt.Prefix + "/stats"
	for range time.Tick(statsInterval) {
		s := radio.Stats()
		vec := statsVector(s.FramesGood, s.BadCRC, s.BadLength, s.InvalidSymbol,
			s.AddrDropped, s.CADTimeouts, s.TxFramesSent)
		broker.conn.Publish(statsTopic, 0, false, encodeStats(vec))
	}
}

// runTickLoop drives the radio's modem at a fixed cadence from a realtime
// goroutine and publishes every frame it receives, the way mqttradio's
// radio->mqtt goroutines did for interrupt-driven radios.
func runTickLoop(radio *ask433.Driver, broker *mq, tickPeriod time.Duration, debug LogPrintf) {
	if err := thread.Realtime(); err != nil {
		debug("cannot make tick loop realtime: %s", err)
	}
	ticker := time.NewTicker(tickPeriod)
	defer ticker.Stop()
	for range ticker.C {
		radio.Tick()
		if !radio.Available() {
			continue
		}
		payload, hdr, ok := radio.Receive()
		if !ok {
			continue
		}
		broker.PublishRx(RxMessage{To: hdr.To, From: hdr.From, ID: hdr.ID, Flags: hdr.Flags, Payload: payload})
	}
}
