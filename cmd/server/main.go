package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/vedran77/quill/internal/auth"
	"github.com/vedran77/quill/internal/config"
	"github.com/vedran77/quill/internal/database"
	"github.com/vedran77/quill/internal/logging"
	"github.com/vedran77/quill/internal/metrics"
	"github.com/vedran77/quill/internal/repository"
	postgresrepo "github.com/vedran77/quill/internal/repository/postgres"
	sqliterepo "github.com/vedran77/quill/internal/repository/sqlite"
	"github.com/vedran77/quill/internal/service"
	"github.com/vedran77/quill/internal/storage"
	httptransport "github.com/vedran77/quill/internal/transport/http"
	"github.com/vedran77/quill/internal/transport/ws"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := run(); err != nil {
		slog.Error("server exited", "err", err)
		os.Exit(1)
	}
}

type stores struct {
	users repository.UserRepository
	posts repository.PostRepository
	files repository.FileRepository
	close func()
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log := logging.New(cfg.LogLevel)
	if cfg.UsingFallbackSecret {
		log.Warn("SECRET_JWT_KEY is not set; signing tokens with the built-in development key", "env", cfg.Env)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Database
	st, err := openStores(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer st.close()

	// Content storage
	store, err := storage.New(ctx, cfg, log)
	if err != nil {
		return err
	}

	// Metrics
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	// Auth primitives
	hasher := auth.NewBcryptHasher(auth.DefaultBcryptCost)
	tokens := auth.NewTokenIssuer(cfg.JWTSecret)

	admin, err := service.NewAdminAuthenticator(cfg.AdminUsername, cfg.AdminPassword, hasher, tokens)
	if err != nil {
		return err
	}

	// Services
	authService := service.NewAuthService(st.users, hasher, auth.NewEthVerifier(), tokens, admin.Username())
	postService := service.NewPostService(st.posts)
	uploadService := service.NewUploadService(store, st.files, st.users)

	// WebSocket hub
	hub := ws.NewHub(log)
	go hub.Run(ctx)

	notifier := ws.NewHubNotifier(hub)
	postService.SetNotifier(notifier)
	uploadService.SetNotifier(notifier)

	router := httptransport.NewRouter(httptransport.Deps{
		Auth:     authService,
		Admin:    admin,
		Posts:    postService,
		Uploads:  uploadService,
		Verifier: tokens,
		Hub:      hub,
		Metrics:  m,
		Gatherer: reg,
		Log:      log,
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.ServerPort),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server listening", "addr", srv.Addr, "env", cfg.Env, "db", cfg.DBDriver, "storage", cfg.StorageBackend)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	log.Info("server stopped")
	return nil
}

func openStores(ctx context.Context, cfg *config.Config, log *slog.Logger) (*stores, error) {
	switch cfg.DBDriver {
	case "sqlite":
		db, err := sqliterepo.Open(ctx, cfg.SQLitePath, log)
		if err != nil {
			return nil, fmt.Errorf("opening sqlite: %w", err)
		}
		log.Info("connected to database", "driver", "sqlite", "path", cfg.SQLitePath)
		return &stores{
			users: db.Users(),
			posts: db.Posts(),
			files: db.Files(),
			close: func() { _ = db.Close() },
		}, nil
	case "postgres":
		pool, err := database.Connect(ctx, cfg, log)
		if err != nil {
			return nil, err
		}
		log.Info("connected to database", "driver", "postgres", "host", cfg.DBHost)
		return &stores{
			users: postgresrepo.NewUserRepo(pool),
			posts: postgresrepo.NewPostRepo(pool),
			files: postgresrepo.NewFileRepo(pool),
			close: pool.Close,
		}, nil
	default:
		return nil, fmt.Errorf("unknown DB_DRIVER %q", cfg.DBDriver)
	}
}
