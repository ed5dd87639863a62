package storage

import (
	"context"
	"errors"
	"evaluation_orders/internal/infrastructure/logger"
	"io"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/pebble"
	"go.uber.org/zap"
)

var ErrObjectNotFound = errors.New("object not found")

const blobPrefix = "blob/"
const typePrefix = "type/"

// PebbleStorage keeps documents in a local Pebble store. Used for local runs
// and tests where no S3 bucket is available.
type PebbleStorage struct {
	db      *pebble.DB
	baseURL string
	log     *zap.Logger
}

func OpenPebbleStorage(dir, baseURL string, log *zap.Logger) (*PebbleStorage, error) {
	db, err := pebble.Open(filepath.Clean(dir), &pebble.Options{})
	if err != nil {
		return nil, err
	}
	if baseURL == "" {
		baseURL = "/files"
	}
	return &PebbleStorage{db: db, baseURL: strings.TrimRight(baseURL, "/"), log: logger.OrNop(log)}, nil
}

func (s *PebbleStorage) Close() error { return s.db.Close() }

func (s *PebbleStorage) Upload(ctx context.Context, path string, body io.Reader, size int64, contentType string) (string, error) {
	if path == "" {
		return "", ErrEmptyPath
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	data, err := io.ReadAll(body)
	if err != nil {
		return "", err
	}

	b := s.db.NewBatch()
	defer b.Close()
	if err := b.Set([]byte(blobPrefix+path), data, nil); err != nil {
		return "", err
	}
	if err := b.Set([]byte(typePrefix+path), []byte(contentType), nil); err != nil {
		return "", err
	}
	if err := b.Commit(pebble.Sync); err != nil {
		s.log.Error("[storage][pebble] put failed", zap.String("path", path), zap.Error(err))
		return "", err
	}
	s.log.Debug("[storage][pebble] put", zap.String("path", path), zap.Int("size", len(data)))
	return path, nil
}

// Get returns the stored bytes and content type.
func (s *PebbleStorage) Get(path string) ([]byte, string, error) {
	data, err := s.get(blobPrefix + path)
	if err != nil {
		return nil, "", err
	}
	ct, err := s.get(typePrefix + path)
	if err != nil && !errors.Is(err, ErrObjectNotFound) {
		return nil, "", err
	}
	return data, string(ct), nil
}

func (s *PebbleStorage) get(key string) ([]byte, error) {
	v, closer, err := s.db.Get([]byte(key))
	if err == pebble.ErrNotFound {
		return nil, ErrObjectNotFound
	}
	if err != nil {
		return nil, err
	}
	defer closer.Close()
	out := make([]byte, len(v))
	copy(out, v)
	return out, nil
}

func (s *PebbleStorage) Remove(ctx context.Context, path string) error {
	if path == "" {
		return ErrEmptyPath
	}
	b := s.db.NewBatch()
	defer b.Close()
	if err := b.Delete([]byte(blobPrefix+path), nil); err != nil {
		return err
	}
	if err := b.Delete([]byte(typePrefix+path), nil); err != nil {
		return err
	}
	return b.Commit(pebble.NoSync)
}

func (s *PebbleStorage) PublicURL(path string) string {
	return publicURL(s.baseURL, path)
}
