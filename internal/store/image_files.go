package store

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"recipebox/internal/config"
	"recipebox/internal/logger"
)

// imageFileStorage is the filesystem-backed implementation of
// [ImageFileStorage]. Files are stored under a single root directory; the
// relative paths recorded on recipe rows are resolved against it.
//
// Path segments are always generated server-side (uuid + extension), never
// taken from client-supplied filenames, so the storage root cannot be
// escaped.
type imageFileStorage struct {
	root   string
	logger *logger.Logger
}

// NewImageFileStorage constructs an [ImageFileStorage] rooted at the
// configured upload directory, creating it if necessary.
func NewImageFileStorage(cfg config.Files, logger *logger.Logger) (ImageFileStorage, error) {
	if err := os.MkdirAll(cfg.UploadDir, 0o755); err != nil {
		logger.Err(err).Str("dir", cfg.UploadDir).Msg("error creating upload directory")
		return nil, fmt.Errorf("error creating upload directory: %w", err)
	}

	logger.Debug().Str("dir", cfg.UploadDir).Msg("creating image file storage")
	return &imageFileStorage{
		root:   cfg.UploadDir,
		logger: logger,
	}, nil
}

// Save writes the payload to root/relPath, creating parent directories as
// needed. The write goes through a temporary file renamed into place so a
// failed upload never leaves a half-written image behind.
func (s *imageFileStorage) Save(ctx context.Context, relPath string, payload io.Reader) error {
	log := logger.FromContext(ctx)

	fullPath := filepath.Join(s.root, filepath.FromSlash(relPath))
	if err := os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
		log.Err(err).Str("func", "imageFileStorage.Save").Str("path", fullPath).Msg("error creating image directory")
		return fmt.Errorf("error creating image directory: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(fullPath), ".upload-*")
	if err != nil {
		log.Err(err).Str("func", "imageFileStorage.Save").Msg("error creating temp file")
		return fmt.Errorf("error creating temp file: %w", err)
	}

	if _, err := io.Copy(tmp, payload); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		log.Err(err).Str("func", "imageFileStorage.Save").Str("path", fullPath).Msg("error writing image payload")
		return fmt.Errorf("error writing image payload: %w", err)
	}

	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("error closing temp file: %w", err)
	}

	if err := os.Rename(tmp.Name(), fullPath); err != nil {
		os.Remove(tmp.Name())
		log.Err(err).Str("func", "imageFileStorage.Save").Str("path", fullPath).Msg("error moving image into place")
		return fmt.Errorf("error moving image into place: %w", err)
	}

	return nil
}

// Remove deletes a previously stored file. A missing file is not an error.
func (s *imageFileStorage) Remove(ctx context.Context, relPath string) error {
	log := logger.FromContext(ctx)

	fullPath := filepath.Join(s.root, filepath.FromSlash(relPath))
	if err := os.Remove(fullPath); err != nil && !os.IsNotExist(err) {
		log.Err(err).Str("func", "imageFileStorage.Remove").Str("path", fullPath).Msg("error removing image file")
		return fmt.Errorf("error removing image file: %w", err)
	}

	return nil
}
