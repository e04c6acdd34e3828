// Package storage implements content-addressed storage backends. Each backend
// stores a named blob and returns the IPFS CID that addresses it.
package storage

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/vedran77/quill/internal/config"
)

var ErrMissingCID = errors.New("storage backend returned no cid")

// Store is implemented by every backend.
type Store interface {
	Put(ctx context.Context, name string, content []byte) (string, error)
}

// New selects the backend named by cfg.StorageBackend.
func New(ctx context.Context, cfg *config.Config, log *slog.Logger) (Store, error) {
	switch cfg.StorageBackend {
	case "web3":
		if cfg.Web3StorageToken == "" {
			log.Warn("WEB3_STORAGE_TOKEN is not set; uploads will be rejected by web3.storage")
		}
		return NewWeb3Store(cfg.Web3StorageURL, cfg.Web3StorageToken, nil), nil
	case "s3":
		return NewS3Store(ctx, S3Config{
			Endpoint:  cfg.S3Endpoint,
			Bucket:    cfg.S3Bucket,
			Region:    cfg.S3Region,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
		})
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.StorageBackend)
	}
}
