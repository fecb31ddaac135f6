// Package mqtt publishes application state changes to an mqtt broker.
package mqtt

import (
	mqttlib "github.com/eclipse/paho.mqtt.golang"
	"github.com/womat/debug"
)

// quiesce is the specified number of milliseconds to wait for in-flight
// messages to be completed on disconnect.
const quiesce = 250

// Publisher is a channel driven mqtt client. Messages sent to C are
// published by the Service loop; without a configured broker every
// message is dropped silently.
type Publisher struct {
	client mqttlib.Client
	// C is the channel to service mqtt messages.
	// Sending a message to channel C will publish the message.
	C chan Message
}

// Message contains the properties of one mqtt publication.
type Message struct {
	Topic    string
	Payload  []byte
	Qos      byte
	Retained bool
}

// New creates a new, unconnected publisher.
func New() *Publisher {
	return &Publisher{
		C: make(chan Message),
	}
}

// Connect connects to the given mqtt broker.
// With an empty broker string the publisher stays disconnected and
// Service drops all messages.
func (p *Publisher) Connect(broker, clientID string) error {
	if broker == "" {
		return nil
	}

	opts := mqttlib.NewClientOptions().AddBroker(broker).SetClientID(clientID)
	p.client = mqttlib.NewClient(opts)
	return p.reconnect()
}

// Disconnect ends the connection to the broker.
func (p *Publisher) Disconnect() error {
	if p.client == nil {
		return nil
	}

	p.client.Disconnect(quiesce)
	return nil
}

func (p *Publisher) reconnect() error {
	t := p.client.Connect()
	<-t.Done()
	return t.Error()
}

// Service consumes channel C and publishes each message. It returns
// when C is closed. Designed to run in its own goroutine.
//
// Each message is dispatched in its own goroutine, so a reconnect or a
// slow broker never blocks the senders on C.
func (p *Publisher) Service() {
	for msg := range p.C {
		if p.client == nil || msg.Topic == "" {
			continue
		}

		go p.send(msg)
	}
}

// send reconnects the broker if needed and publishes one message.
func (p *Publisher) send(msg Message) {
	if !p.client.IsConnected() {
		debug.DebugLog.Print("mqtt broker isn't connected, reconnecting")

		if err := p.reconnect(); err != nil {
			debug.ErrorLog.Printf("can't reconnect to mqtt broker: %v", err)
			return
		}
	}

	debug.TraceLog.Printf("publishing %v bytes to topic %v", len(msg.Payload), msg.Topic)
	t := p.client.Publish(msg.Topic, msg.Qos, msg.Retained, msg.Payload)

	<-t.Done()
	if err := t.Error(); err != nil {
		debug.ErrorLog.Printf("publishing topic %v: %v", msg.Topic, err)
	}
}
