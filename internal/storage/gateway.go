// Package storage moves uploaded files to durable storage and back out again.
package storage

import (
	"context"
	"io"
)

// File is a durable reference to an uploaded object: a URL anyone can fetch
// and the opaque id needed to delete it later.
type File struct {
	SecureURL string
	PublicID  string
}

type Gateway interface {
	Upload(ctx context.Context, r io.Reader, filename, folder string) (File, error)
	Delete(ctx context.Context, publicID string) error
}
