package ws

import (
	"github.com/vedran77/quill/internal/domain"
)

// HubNotifier implements service.Notifier using the WebSocket Hub.
type HubNotifier struct {
	hub *Hub
}

func NewHubNotifier(hub *Hub) *HubNotifier {
	return &HubNotifier{hub: hub}
}

func (n *HubNotifier) NotifyNewPost(post *domain.Post) {
	evt, err := NewEvent(EventTypePostCreated, PostPayload{Post: *post})
	if err != nil {
		n.hub.log.Error("ws notifier: marshal error", "err", err)
		return
	}
	n.hub.Broadcast(evt)
}

func (n *HubNotifier) NotifyFileUploaded(file *domain.File) {
	evt, err := NewEvent(EventTypeFileUploaded, FilePayload{File: *file})
	if err != nil {
		n.hub.log.Error("ws notifier: marshal error", "err", err)
		return
	}
	n.hub.Broadcast(evt)
}
