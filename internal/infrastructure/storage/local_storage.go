package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	launchapp "github.com/storelaunch/backend/internal/application/launch"
	infraconfig "github.com/storelaunch/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// LocalURLPrefix is the route local files are served from
const LocalURLPrefix = "/files/"

var _ launchapp.ObjectStorage = (*LocalObjectStorage)(nil)

// ErrInvalidStorageKey is returned for keys that escape the storage root
var ErrInvalidStorageKey = errors.New("invalid storage key")

// LocalObjectStorage keeps objects as files under a directory
type LocalObjectStorage struct {
	dir string
}

// NewLocalObjectStorage creates the root directory if needed
func NewLocalObjectStorage(dir string) (*LocalObjectStorage, error) {
	if dir == "" {
		return nil, errors.New("storage directory is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}
	return &LocalObjectStorage{dir: dir}, nil
}

// Dir returns the storage root
func (s *LocalObjectStorage) Dir() string {
	return s.dir
}

// Upload writes the bytes to <dir>/<storageKey>
func (s *LocalObjectStorage) Upload(_ context.Context, storageKey string, data []byte, _ string) error {
	path, err := s.path(storageKey)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create object directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write object: %w", err)
	}
	return nil
}

// GenerateDownloadURL returns the path the file server exposes the object at
func (s *LocalObjectStorage) GenerateDownloadURL(_ context.Context, storageKey string, _ time.Duration) (string, time.Time, error) {
	if _, err := s.path(storageKey); err != nil {
		return "", time.Time{}, err
	}
	return LocalURLPrefix + storageKey, time.Time{}, nil
}

// DeleteObject removes the file. A missing file is not an error.
func (s *LocalObjectStorage) DeleteObject(_ context.Context, storageKey string) error {
	path, err := s.path(storageKey)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to delete object: %w", err)
	}
	return nil
}

func (s *LocalObjectStorage) path(storageKey string) (string, error) {
	if storageKey == "" {
		return "", ErrStorageKeyRequired
	}
	clean := filepath.Clean(filepath.FromSlash(storageKey))
	if filepath.IsAbs(clean) || clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
		return "", ErrInvalidStorageKey
	}
	return filepath.Join(s.dir, clean), nil
}

// New builds the object storage selected by cfg.Driver
func New(ctx context.Context, cfg *infraconfig.StorageConfig, logger *zap.Logger) (launchapp.ObjectStorage, error) {
	switch cfg.Driver {
	case "", "local":
		logger.Info("Using local object storage", zap.String("dir", cfg.LocalDir))
		return NewLocalObjectStorage(cfg.LocalDir)
	case "s3":
		s, err := NewS3ObjectStorage(cfg, WithLogger(logger))
		if err != nil {
			return nil, err
		}
		if err := s.EnsureBucket(ctx); err != nil {
			return nil, err
		}
		logger.Info("Using S3 object storage", zap.String("bucket", s.Bucket()))
		return s, nil
	default:
		return nil, fmt.Errorf("unsupported storage driver: %s", cfg.Driver)
	}
}
