package ws

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync/atomic"
)

const broadcastBufSize = 256

type directMsg struct {
	client *Client
	data   []byte
}

// Hub owns the set of connected clients. Only the Run goroutine touches the
// set; everything else talks to it through channels.
type Hub struct {
	clients map[*Client]struct{}
	count   atomic.Int64

	register   chan *Client
	unregister chan *Client
	broadcast  chan []byte
	direct     chan directMsg
	done       chan struct{}

	log *slog.Logger
}

func NewHub(log *slog.Logger) *Hub {
	return &Hub{
		clients:    make(map[*Client]struct{}),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan []byte, broadcastBufSize),
		direct:     make(chan directMsg),
		done:       make(chan struct{}),
		log:        log,
	}
}

// Run starts the Hub's main event loop and returns when ctx is cancelled,
// disconnecting every client. Call this in a goroutine.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)

	for {
		select {
		case <-ctx.Done():
			for client := range h.clients {
				h.remove(client)
			}
			return

		case client := <-h.register:
			h.clients[client] = struct{}{}
			h.count.Store(int64(len(h.clients)))
			h.log.Info("ws client connected", "subject", client.subject.String(), "total", len(h.clients))

		case client := <-h.unregister:
			if _, ok := h.clients[client]; ok {
				h.remove(client)
				h.log.Info("ws client disconnected", "subject", client.subject.String(), "total", len(h.clients))
			}

		case msg := <-h.direct:
			if _, ok := h.clients[msg.client]; ok {
				select {
				case msg.client.send <- msg.data:
				default:
				}
			}

		case data := <-h.broadcast:
			for client := range h.clients {
				select {
				case client.send <- data:
				default:
					// Client buffer full - disconnect
					h.remove(client)
					h.log.Warn("ws client too slow, dropped", "subject", client.subject.String())
				}
			}
		}
	}
}

// Count reports the number of connected clients.
func (h *Hub) Count() int {
	return int(h.count.Load())
}

// Broadcast queues event for every connected client. It never blocks; when
// the queue is full the event is dropped.
func (h *Hub) Broadcast(event *Event) {
	data, err := json.Marshal(event)
	if err != nil {
		h.log.Error("ws hub: marshal error", "err", err)
		return
	}
	select {
	case h.broadcast <- data:
	default:
		h.log.Warn("ws hub: broadcast queue full, event dropped", "type", event.Type)
	}
}

func (h *Hub) add(client *Client) bool {
	select {
	case h.register <- client:
		return true
	case <-h.done:
		return false
	}
}

func (h *Hub) leave(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

func (h *Hub) sendTo(client *Client, data []byte) {
	select {
	case h.direct <- directMsg{client: client, data: data}:
	case <-h.done:
	}
}

func (h *Hub) remove(client *Client) {
	delete(h.clients, client)
	close(client.send)
	h.count.Store(int64(len(h.clients)))
}
