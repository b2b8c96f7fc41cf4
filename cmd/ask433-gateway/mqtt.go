// Copyright (c) 2016 by Thorsten von Eicken, see LICENSE file for details

package main

import (
	"encoding/json"
	"fmt"
	"hash/fnv"
	"log"
	"os"
	"strings"
	"sync"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
)

// LogPrintf is a logging hook in the shape used throughout this tree.
type LogPrintf func(format string, v ...interface{})

// RxMessage is published to MQTT for every frame the radio receives.
type RxMessage struct {
	To      byte   `json:"to"`
	From    byte   `json:"from"`
	ID      byte   `json:"id"`
	Flags   byte   `json:"flags"`
	Payload []byte `json:"payload"`
}

// TxRequest is the payload subscribers publish to ask the gateway to
// transmit a frame.
type TxRequest struct {
	To      byte   `json:"to"`
	From    byte   `json:"from"`
	ID      byte   `json:"id"`
	Flags   byte   `json:"flags"`
	Payload []byte `json:"payload"`
}

// mq is a handle onto a MQTT broker connection. It mirrors mqttradio's mq,
// trimmed of the reflection-based generic subscription plumbing that repo
// needed to support an open-ended set of message shapes across several
// radio types and pluggable modules: this gateway only ever moves one
// message shape in each direction, so concrete types suffice.
type mq struct {
	conn    mqtt.Client
	prefix  string
	dedupMu sync.Mutex
	dedup   map[uint64]time.Time
}

func newMQ(conf MqttConfig, debug LogPrintf) (*mq, error) {
	if debug != nil {
		debug("Configuring MQTT: %+v", conf)
	}
	mqtt.ERROR = log.New(os.Stderr, "", 0)
	opts := mqtt.NewClientOptions().
		AddBroker(fmt.Sprintf("tcp://%s:%d", conf.Host, conf.Port))
	opts.ClientID = "ask433-gateway"
	opts.Username = conf.User
	opts.Password = conf.Password

	conn := mqtt.NewClient(opts)
	if token := conn.Connect(); !token.WaitTimeout(10 * time.Second) {
		return nil, token.Error()
	}
	m := &mq{conn: conn, prefix: conf.Prefix, dedup: make(map[uint64]time.Time)}
	go m.gc()

	log.Printf("MQTT connected")
	return m, nil
}

// gc periodically forgets de-dup entries old enough that no subscription
// echo is still pending for them.
func (m *mq) gc() {
	for {
		time.Sleep(time.Minute)
		m.dedupMu.Lock()
		tooOld := time.Now().Add(-10 * time.Minute)
		for h, t := range m.dedup {
			if t.Before(tooOld) {
				delete(m.dedup, h)
			}
		}
		m.dedupMu.Unlock()
	}
}

// PublishRx publishes a received frame under <prefix>/rx.
func (m *mq) PublishRx(msg RxMessage) {
	topic := m.prefix + "/rx"
	payload, _ := json.Marshal(msg)
	m.conn.Publish(topic, 1, false, payload)
	m.dedupMu.Lock()
	m.dedup[hashMessage(topic, string(payload))] = time.Now()
	m.dedupMu.Unlock()
}

// SubscribeTx subscribes to <prefix>/tx and calls handler for every
// well-formed TxRequest, skipping ones the gateway itself just echoed.
func (m *mq) SubscribeTx(handler func(TxRequest)) error {
	topic := m.prefix + "/tx"
	cb := func(c mqtt.Client, msg mqtt.Message) {
		payload := msg.Payload()
		h := hashMessage(m.prefix+"/rx", string(payload))
		m.dedupMu.Lock()
		_, dup := m.dedup[h]
		delete(m.dedup, h)
		m.dedupMu.Unlock()
		if dup {
			return
		}
		var req TxRequest
		if err := json.Unmarshal(payload, &req); err != nil {
			log.Printf("cannot decode tx request: %s", err)
			return
		}
		handler(req)
	}
	if token := m.conn.Subscribe(topic, 1, cb); !token.WaitTimeout(2 * time.Second) {
		return token.Error()
	}
	return nil
}

func hashMessage(s ...string) uint64 {
	h := fnv.New64()
	h.Write([]byte(strings.Join(s, "\x02")))
	return h.Sum64()
}
