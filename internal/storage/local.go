package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Local stores files under a directory that the HTTP server exposes at
// /uploads. It is meant for development and single-node deployments.
type Local struct {
	dir     string
	baseURL string
}

func NewLocal(dir, baseURL string) (*Local, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &Local{dir: dir, baseURL: strings.TrimRight(baseURL, "/")}, nil
}

func (l *Local) Upload(ctx context.Context, r io.Reader, filename, folder string) (File, error) {
	if err := ctx.Err(); err != nil {
		return File{}, err
	}
	id := path.Join(strings.Trim(folder, "/"), uuid.NewString()+strings.ToLower(filepath.Ext(filename)))
	full, err := l.resolve(id)
	if err != nil {
		return File{}, err
	}
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return File{}, fmt.Errorf("create folder: %w", err)
	}

	f, err := os.OpenFile(full, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return File{}, fmt.Errorf("create file: %w", err)
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		os.Remove(full)
		return File{}, fmt.Errorf("write file: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(full)
		return File{}, fmt.Errorf("close file: %w", err)
	}
	return File{SecureURL: l.baseURL + "/uploads/" + id, PublicID: id}, nil
}

func (l *Local) Delete(ctx context.Context, publicID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	full, err := l.resolve(publicID)
	if err != nil {
		return err
	}
	if err := os.Remove(full); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove %s: %w", publicID, err)
	}
	return nil
}

// resolve maps an id to a path and refuses ids that escape the upload dir.
func (l *Local) resolve(id string) (string, error) {
	clean := path.Clean("/" + id)
	if clean == "/" || strings.Contains(id, "..") {
		return "", fmt.Errorf("invalid file id %q", id)
	}
	return filepath.Join(l.dir, filepath.FromSlash(strings.TrimPrefix(clean, "/"))), nil
}
