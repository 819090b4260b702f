package main

import "sync"

// Message is broadcast by a party to announce its keys.
type Message struct {
	From string
	// PublicKey is the encoded Schnorr public key of the sender.
	PublicKey []byte
	// Signature is a signature by PublicKey of the sender's identifier.
	Signature []byte
}

type Network interface {
	Send(msg *Message)
	Next(id string) <-chan *Message
	// Abort is called by a party which can't go on; Done is closed afterwards.
	Abort()
	Done() <-chan struct{}
}

type chanNetwork struct {
	parties        []string
	listenChannels map[string]chan *Message
	done           chan struct{}
	once           sync.Once
}

func NewNetwork(parties []string) Network {
	n := len(parties)
	lc := make(map[string]chan *Message, n)
	for _, id := range parties {
		lc[id] = make(chan *Message, 2*n)
	}
	return &chanNetwork{
		parties:        parties,
		listenChannels: lc,
		done:           make(chan struct{}),
	}
}

func (c *chanNetwork) Next(id string) <-chan *Message {
	return c.listenChannels[id]
}

// Send delivers msg to every party except its sender.
func (c *chanNetwork) Send(msg *Message) {
	for _, id := range c.parties {
		if id != msg.From {
			c.listenChannels[id] <- msg
		}
	}
}

func (c *chanNetwork) Abort() {
	c.once.Do(func() { close(c.done) })
}

func (c *chanNetwork) Done() <-chan struct{} {
	return c.done
}
