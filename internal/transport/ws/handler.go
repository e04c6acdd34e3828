package ws

import (
	"errors"
	"net/http"

	"github.com/vedran77/quill/internal/auth"
	"github.com/vedran77/quill/internal/domain"
	"nhooyr.io/websocket"
)

// TokenVerifier decodes a bearer token into its subject.
type TokenVerifier interface {
	Verify(token string) (domain.Subject, error)
}

// ServeWS returns an HTTP handler that upgrades to WebSocket.
// Auth is done via ?token=xxx query param (browsers can't set headers on the
// upgrade request). Failures mirror the guarded routes: bare 401 or 403.
func ServeWS(hub *Hub, verifier TokenVerifier) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		subject, err := verifier.Verify(r.URL.Query().Get("token"))
		if err != nil {
			if errors.Is(err, auth.ErrMissingToken) {
				w.WriteHeader(http.StatusUnauthorized)
			} else {
				w.WriteHeader(http.StatusForbidden)
			}
			return
		}

		conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
			InsecureSkipVerify: true, // any origin, same as the CORS policy
		})
		if err != nil {
			hub.log.Warn("ws accept failed", "err", err)
			return
		}

		client := NewClient(hub, conn, subject)
		if !hub.add(client) {
			conn.Close(websocket.StatusGoingAway, "server shutting down")
			return
		}

		go client.WritePump()
		go client.ReadPump()
	}
}
