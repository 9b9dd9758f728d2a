package cli

import (
	"encoding/base64"
	"fmt"
	"log/slog"

	"github.com/lxyhes/flowforge/pkg/adapters/file"
	"github.com/lxyhes/flowforge/pkg/adapters/memory"
	"github.com/lxyhes/flowforge/pkg/adapters/redis"
	"github.com/lxyhes/flowforge/pkg/catalog"
	"github.com/lxyhes/flowforge/pkg/persistence/middleware"
	"github.com/lxyhes/flowforge/pkg/ports"
	"github.com/lxyhes/flowforge/pkg/store"
)

// NewRepository builds the template repository selected by the config,
// wrapping it with at-rest encryption when a key is configured.
func NewRepository(cfg Config) (ports.TemplateRepository, error) {
	var repo ports.TemplateRepository
	switch cfg.Storage.Backend {
	case "memory":
		repo = memory.New()
	case "file", "":
		repo = file.New(cfg.Storage.Path)
	case "redis":
		repo = redis.New(cfg.Redis.Address, cfg.Redis.Password, cfg.Redis.DB)
	default:
		return nil, fmt.Errorf("unknown storage backend %q (expected memory, file or redis)", cfg.Storage.Backend)
	}

	if cfg.Storage.EncryptionKey != "" {
		encCfg, err := encryptionConfig(cfg.Storage)
		if err != nil {
			return nil, err
		}
		repo = middleware.NewEncryptionMiddleware(encCfg)(repo)
	}
	return repo, nil
}

func encryptionConfig(cfg StorageConfig) (middleware.EncryptionConfig, error) {
	active, err := decodeKey(cfg.EncryptionKey)
	if err != nil {
		return middleware.EncryptionConfig{}, fmt.Errorf("storage.encryption_key: %w", err)
	}
	fallbacks := make([][]byte, 0, len(cfg.EncryptionFallbackKeys))
	for i, k := range cfg.EncryptionFallbackKeys {
		decoded, err := decodeKey(k)
		if err != nil {
			return middleware.EncryptionConfig{}, fmt.Errorf("storage.encryption_fallback_keys[%d]: %w", i, err)
		}
		fallbacks = append(fallbacks, decoded)
	}
	return middleware.EncryptionConfig{ActiveKey: active, FallbackKeys: fallbacks}, nil
}

func decodeKey(encoded string) ([]byte, error) {
	key, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("invalid base64: %w", err)
	}
	if len(key) != 32 {
		return nil, fmt.Errorf("key must be 32 bytes (AES-256), got %d", len(key))
	}
	return key, nil
}

// NewService wires a template service with the built-in catalog and
// the configured repository.
func NewService(cfg Config, logger *slog.Logger) (*store.Service, error) {
	repo, err := NewRepository(cfg)
	if err != nil {
		return nil, err
	}
	return store.New(repo,
		store.WithLogger(logger),
		store.WithBuiltins(catalog.All()),
	), nil
}
