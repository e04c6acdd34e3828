package ws

import (
	"context"
	"encoding/json"
	"time"

	"github.com/vedran77/quill/internal/domain"
	"nhooyr.io/websocket"
	"nhooyr.io/websocket/wsjson"
)

const (
	writeWait      = 10 * time.Second
	pingInterval   = 30 * time.Second
	maxMessageSize = 4096
	sendBufSize    = 64
)

// Client is one feed subscriber. ctx lives as long as the connection; both
// pumps stop when it is cancelled.
type Client struct {
	hub     *Hub
	conn    *websocket.Conn
	subject domain.Subject

	send   chan []byte
	ctx    context.Context
	cancel context.CancelFunc
}

func NewClient(hub *Hub, conn *websocket.Conn, subject domain.Subject) *Client {
	conn.SetReadLimit(maxMessageSize)
	ctx, cancel := context.WithCancel(context.Background())
	return &Client{
		hub:     hub,
		conn:    conn,
		subject: subject,
		send:    make(chan []byte, sendBufSize),
		ctx:     ctx,
		cancel:  cancel,
	}
}

// ReadPump answers client events until the peer goes away.
func (c *Client) ReadPump() {
	defer func() {
		c.cancel()
		c.hub.leave(c)
		c.conn.Close(websocket.StatusNormalClosure, "")
	}()

	for {
		var event Event
		if err := wsjson.Read(c.ctx, c.conn, &event); err != nil {
			if websocket.CloseStatus(err) == -1 && c.ctx.Err() == nil {
				c.hub.log.Debug("ws read failed", "subject", c.subject.String(), "err", err)
			}
			return
		}
		c.handleEvent(&event)
	}
}

// WritePump drains c.send and keeps the connection alive with pings. A closed
// send channel means the hub dropped this client.
func (c *Client) WritePump() {
	keepalive := time.NewTicker(pingInterval)
	defer keepalive.Stop()
	defer c.cancel()
	defer c.conn.Close(websocket.StatusGoingAway, "")

	for {
		var err error
		select {
		case data, open := <-c.send:
			if !open {
				return
			}
			err = c.timed(func(ctx context.Context) error {
				return c.conn.Write(ctx, websocket.MessageText, data)
			})
		case <-keepalive.C:
			err = c.timed(c.conn.Ping)
		case <-c.ctx.Done():
			return
		}
		if err != nil {
			c.hub.log.Debug("ws write failed", "subject", c.subject.String(), "err", err)
			return
		}
	}
}

func (c *Client) timed(op func(context.Context) error) error {
	ctx, cancel := context.WithTimeout(c.ctx, writeWait)
	defer cancel()
	return op(ctx)
}

func (c *Client) handleEvent(event *Event) {
	switch event.Type {
	case EventTypePing:
		c.reply(&Event{Type: EventTypePong, Timestamp: time.Now().Unix()})
	default:
		evt, err := NewEvent(EventTypeError, ErrorPayload{Code: "UNKNOWN_EVENT", Message: "unknown event type: " + event.Type})
		if err != nil {
			return
		}
		c.reply(evt)
	}
}

// reply queues an event for this client only. The hub performs the send
// since it owns the lifetime of c.send.
func (c *Client) reply(evt *Event) {
	data, err := json.Marshal(evt)
	if err != nil {
		return
	}
	c.hub.sendTo(c, data)
}
