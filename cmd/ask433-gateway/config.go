// Copyright (c) 2016 by Thorsten von Eicken, see LICENSE file for details

package main

// Config is the top level gateway configuration, loaded from a TOML file the
// way mqttradio.toml configured the multi-radio gateway this one descends
// from.
type Config struct {
	Debug   bool
	Mqtt    MqttConfig
	Gateway GatewayConfig
}

// MqttConfig describes how to reach the broker.
type MqttConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Prefix   string // topic prefix, e.g. "ask433"
}

// GatewayConfig describes the single radio this gateway drives. Unlike
// mqttradio's Radio list, there is exactly one: a GPIO bit-bang modem has no
// SPI bus to mux across chips.
type GatewayConfig struct {
	TxPin         string `toml:"tx_pin"`
	RxPin         string `toml:"rx_pin"`
	TicksPerBit   uint   `toml:"ticks_per_bit"`
	TickMicros    int    `toml:"tick_micros"`
	Address       int    `toml:"address"` // -1 means promiscuous
	CadTimeout    uint64 `toml:"cad_timeout"`
	StatsInterval int    `toml:"stats_interval_secs"`
}

func (c *GatewayConfig) setDefaults() {
	if c.TicksPerBit == 0 {
		c.TicksPerBit = 8
	}
	if c.TickMicros == 0 {
		c.TickMicros = 125
	}
	if c.StatsInterval == 0 {
		c.StatsInterval = 60
	}
	if c.Address < 0 {
		c.Address = -1
	}
}
