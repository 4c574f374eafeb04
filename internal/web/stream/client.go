package stream

import (
	"time"

	"github.com/google/uuid"
)

// Buffer size for outgoing messages
const sendBufferSize = 256

// Client is one connection watching a game
type Client struct {
	id          string
	connectedAt time.Time
	send        chan Message
}

// NewClient creates a new client with a fresh id
func NewClient() *Client {
	return &Client{
		id:          uuid.NewString(),
		connectedAt: time.Now(),
		send:        make(chan Message, sendBufferSize),
	}
}

// ID returns the client's connection id
func (c *Client) ID() string {
	return c.id
}

// Messages returns the channel of messages for the client.
// It is closed when the client is unregistered or the hub shuts down.
func (c *Client) Messages() <-chan Message {
	return c.send
}
