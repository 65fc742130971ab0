// Package signaling carries SDP offers, answers, and ICE candidates
// between a preview publisher and its viewers over a WebSocket relay.
package signaling

import (
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// Handler callbacks for incoming signaling messages. Nil callbacks
// are skipped.
type Handler struct {
	OnRegistered    func()
	OnOffer         func(from string, payload json.RawMessage)
	OnAnswer        func(from string, payload json.RawMessage)
	OnICECandidate  func(from string, payload json.RawMessage)
	OnPublisherGone func(publisherID string)
	OnError         func(msg string)
}

// Client is a WebSocket signaling client for one role.
type Client struct {
	url     string
	id      string
	role    string
	handler Handler

	conn   *websocket.Conn
	mu     sync.Mutex
	done   chan struct{}
	closed bool
}

func NewClient(url, id, role string, handler Handler) *Client {
	return &Client{
		url:     url,
		id:      id,
		role:    role,
		handler: handler,
		done:    make(chan struct{}),
	}
}

// Connect dials the relay, registers, and starts the read and
// heartbeat loops.
func (c *Client) Connect() error {
	conn, _, err := websocket.DefaultDialer.Dial(c.url, nil)
	if err != nil {
		return fmt.Errorf("signaling dial: %w", err)
	}
	c.conn = conn

	if err := c.send(Message{Type: TypeRegister, ID: c.id, Role: c.role}); err != nil {
		c.conn.Close()
		return fmt.Errorf("signaling register: %w", err)
	}

	go c.readLoop()
	go c.pingLoop()
	return nil
}

// Close shuts down the connection. Safe to call more than once.
func (c *Client) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	close(c.done)
	if c.conn != nil {
		c.conn.Close()
	}
}

func (c *Client) SendOffer(target string, payload json.RawMessage) error {
	return c.send(Message{Type: TypeOffer, Target: target, Payload: payload})
}

func (c *Client) SendAnswer(target string, payload json.RawMessage) error {
	return c.send(Message{Type: TypeAnswer, Target: target, Payload: payload})
}

func (c *Client) SendICECandidate(target string, payload json.RawMessage) error {
	return c.send(Message{Type: TypeICECandidate, Target: target, Payload: payload})
}

func (c *Client) send(msg Message) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.conn == nil {
		return fmt.Errorf("not connected")
	}
	return c.conn.WriteJSON(msg)
}

func (c *Client) readLoop() {
	defer c.Close()
	for {
		var msg Message
		if err := c.conn.ReadJSON(&msg); err != nil {
			select {
			case <-c.done:
			default:
				log.Printf("signaling read: %v", err)
			}
			return
		}
		c.dispatch(msg)
	}
}

func (c *Client) dispatch(msg Message) {
	switch msg.Type {
	case TypeRegistered:
		if c.handler.OnRegistered != nil {
			c.handler.OnRegistered()
		}
	case TypeOffer:
		if c.handler.OnOffer != nil {
			c.handler.OnOffer(msg.From, msg.Payload)
		}
	case TypeAnswer:
		if c.handler.OnAnswer != nil {
			c.handler.OnAnswer(msg.From, msg.Payload)
		}
	case TypeICECandidate:
		if c.handler.OnICECandidate != nil {
			c.handler.OnICECandidate(msg.From, msg.Payload)
		}
	case TypePublisherGone:
		if c.handler.OnPublisherGone != nil {
			c.handler.OnPublisherGone(msg.PublisherID)
		}
	case TypeError:
		if c.handler.OnError != nil {
			c.handler.OnError(msg.Msg)
		}
	case TypePong:
		// heartbeat response, nothing to do
	}
}

func (c *Client) pingLoop() {
	ticker := time.NewTicker(25 * time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-c.done:
			return
		case <-ticker.C:
			_ = c.send(Message{Type: TypePing})
		}
	}
}
