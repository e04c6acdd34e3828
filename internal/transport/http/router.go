// Package httptransport assembles the HTTP surface: routes, guards and the
// middleware chain shared by every request.
package httptransport

import (
	"log/slog"
	"net/http"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/vedran77/quill/internal/metrics"
	"github.com/vedran77/quill/internal/service"
	"github.com/vedran77/quill/internal/transport/http/handlers"
	"github.com/vedran77/quill/internal/transport/http/middleware"
	"github.com/vedran77/quill/internal/transport/ws"
)

// Deps is everything the router wires together. Admin and Hub are optional.
type Deps struct {
	Auth     *service.AuthService
	Admin    *service.AdminAuthenticator
	Posts    *service.PostService
	Uploads  *service.UploadService
	Verifier middleware.TokenVerifier
	Hub      *ws.Hub
	Metrics  *metrics.Metrics
	Gatherer prometheus.Gatherer
	Log      *slog.Logger
}

func NewRouter(d Deps) http.Handler {
	authHandler := handlers.NewAuthHandler(d.Auth, d.Admin, d.Log, d.Metrics)
	postHandler := handlers.NewPostHandler(d.Posts, d.Log)
	uploadHandler := handlers.NewUploadHandler(d.Uploads, d.Log, d.Metrics)

	auth := middleware.Auth(d.Verifier)

	mux := http.NewServeMux()

	// Public
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})
	if d.Gatherer != nil {
		mux.Handle("GET /metrics", metrics.Handler(d.Gatherer))
	}
	mux.HandleFunc("POST /signup", authHandler.Signup)
	mux.HandleFunc("POST /signup/web3", authHandler.Web3Signup)
	mux.HandleFunc("POST /login", authHandler.Login)
	mux.HandleFunc("POST /admin/login", authHandler.AdminLogin)
	mux.HandleFunc("GET /posts", postHandler.List)

	// Protected
	mux.Handle("POST /posts", auth(http.HandlerFunc(postHandler.Create)))
	mux.Handle("POST /upload", auth(http.HandlerFunc(uploadHandler.Upload)))
	mux.Handle("GET /files", auth(http.HandlerFunc(uploadHandler.ListFiles)))

	// Live feed
	if d.Hub != nil {
		mux.Handle("GET /ws", ws.ServeWS(d.Hub, d.Verifier))
	}

	var h http.Handler = mux
	h = middleware.Observe(d.Log, d.Metrics)(h)
	h = middleware.CORS(h)
	h = chimw.Recoverer(h)
	h = chimw.RealIP(h)
	h = chimw.RequestID(h)
	return h
}
