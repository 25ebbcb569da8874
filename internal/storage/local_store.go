package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
)

// localStore implements ImageStore on the local file system. Used when S3
// is disabled, mostly in development.
type localStore struct {
	dir    string
	logger zerolog.Logger
}

// NewLocalStore creates a file-system-backed image store rooted at dir.
func NewLocalStore(dir string, logger zerolog.Logger) ImageStore {
	return &localStore{
		dir:    dir,
		logger: logger.With().Str("component", "local-image-store").Logger(),
	}
}

// Put writes the image under the store directory and returns its path.
func (s *localStore) Put(ctx context.Context, key, contentType string, body io.Reader) (string, error) {
	path := filepath.Join(s.dir, key)

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		s.logger.Error().Err(err).Str("path", path).Msg("failed to create image directory")
		return "", fmt.Errorf("failed to create image directory: %w", err)
	}

	file, err := os.Create(path)
	if err != nil {
		s.logger.Error().Err(err).Str("path", path).Msg("failed to create image file")
		return "", fmt.Errorf("failed to create image file: %w", err)
	}
	defer file.Close()

	if _, err := io.Copy(file, body); err != nil {
		s.logger.Error().Err(err).Str("path", path).Msg("failed to write image file")
		return "", fmt.Errorf("failed to write image file: %w", err)
	}

	s.logger.Info().Str("path", path).Msg("image written to local store")

	return path, nil
}
