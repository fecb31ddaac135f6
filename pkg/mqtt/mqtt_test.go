package mqtt

import (
	"sync"
	"testing"
	"time"

	mqttlib "github.com/eclipse/paho.mqtt.golang"
)

type stubToken struct {
	done chan struct{}
}

func newStubToken() *stubToken {
	t := &stubToken{done: make(chan struct{})}
	close(t.done)
	return t
}

func (t *stubToken) Wait() bool                     { <-t.done; return true }
func (t *stubToken) WaitTimeout(time.Duration) bool { return true }
func (t *stubToken) Done() <-chan struct{}          { return t.done }
func (t *stubToken) Error() error                   { return nil }

// stubClient stalls every publish until release is closed. Only the
// methods the service loop touches are implemented.
type stubClient struct {
	mqttlib.Client

	release chan struct{}

	mu        sync.Mutex
	published []string
}

func (c *stubClient) IsConnected() bool { return true }

func (c *stubClient) Publish(topic string, qos byte, retained bool, payload interface{}) mqttlib.Token {
	<-c.release

	c.mu.Lock()
	c.published = append(c.published, topic)
	c.mu.Unlock()

	return newStubToken()
}

func (c *stubClient) topics() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.published...)
}

// A stalled broker must not block senders on C.
func TestServiceDoesNotBlockSenders(t *testing.T) {
	client := &stubClient{release: make(chan struct{})}

	p := New()
	p.client = client
	go p.Service()
	defer close(p.C)

	// all sends must be accepted while every publish is still stalled
	for i, topic := range []string{"a", "b", "c"} {
		select {
		case p.C <- Message{Topic: topic, Payload: []byte("x")}:
		case <-time.After(time.Second):
			t.Fatalf("send %d blocked behind a stalled publish", i)
		}
	}

	close(client.release)

	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		if len(client.topics()) == 3 {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Errorf("published %d messages, want 3", len(client.topics()))
}

// Without a connected broker the service drains and drops messages.
func TestServiceDropsWithoutBroker(t *testing.T) {
	p := New()
	go p.Service()
	defer close(p.C)

	for i := 0; i < 3; i++ {
		select {
		case p.C <- Message{Topic: "a", Payload: []byte("x")}:
		case <-time.After(time.Second):
			t.Fatal("send blocked without a broker")
		}
	}
}
