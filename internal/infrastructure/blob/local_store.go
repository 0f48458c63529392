package blob

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	appstock "github.com/jhoicas/stock-intake/internal/application/stock"
)

// LocalStore guarda las imágenes en disco; el servidor las expone en PublicURL (ver app.Static).
type LocalStore struct {
	dir       string
	prefix    string
	publicURL string
}

var _ appstock.BlobStore = (*LocalStore)(nil)

// NewLocalStore crea el directorio raíz si no existe.
func NewLocalStore(dir, prefix, publicURL string) (*LocalStore, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, errors.New("blob/local: directorio requerido")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("blob/local: crear %s: %w", dir, err)
	}
	return &LocalStore{
		dir:       dir,
		prefix:    strings.Trim(strings.TrimSpace(prefix), "/"),
		publicURL: strings.TrimRight(strings.TrimSpace(publicURL), "/"),
	}, nil
}

// Dir raíz servida como estático.
func (s *LocalStore) Dir() string { return s.dir }

func (s *LocalStore) Put(ctx context.Context, fileName, _ string, body io.Reader, _ int64) (string, error) {
	key := NewObjectKey(fileName)
	if err := ctx.Err(); err != nil {
		return "", err
	}

	objectKey := applyPrefix(s.prefix, key)
	full := filepath.Join(s.dir, filepath.FromSlash(objectKey))
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return "", fmt.Errorf("blob/local: %w", err)
	}

	f, err := os.OpenFile(full, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return "", fmt.Errorf("blob/local: %w", err)
	}
	if _, err := io.Copy(f, body); err != nil {
		_ = f.Close()
		_ = os.Remove(full)
		return "", fmt.Errorf("blob/local: escribir %s: %w", objectKey, err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("blob/local: %w", err)
	}
	return s.publicURL + "/" + objectKey, nil
}
