// Package tokenstore persists the single opaque session token across
// restarts. The file backend is the default; the Redis backend serves
// deployments without durable local disk.
package tokenstore

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/enterprisehub/portal/internal/core/domain"
	"github.com/enterprisehub/portal/internal/core/ports"
)

// FileStore keeps the token in a mode-0600 file.
type FileStore struct {
	path string
}

var _ ports.TokenStore = (*FileStore)(nil)

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (s *FileStore) Load(_ context.Context) (string, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", domain.ErrNoToken
		}
		return "", err
	}
	token := strings.TrimSpace(string(raw))
	if token == "" {
		return "", domain.ErrNoToken
	}
	return token, nil
}

func (s *FileStore) Save(_ context.Context, token string) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return err
	}
	return os.WriteFile(s.path, []byte(token), 0o600)
}

func (s *FileStore) Clear(_ context.Context) error {
	err := os.Remove(s.path)
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
