package storage

import (
	"context"
	"io"
	"log/slog"
)

// Lease owns an uploaded file until the caller commits it. Releasing an
// uncommitted lease deletes the file, so a deferred Release undoes the
// upload on every failure path, including panics.
type Lease struct {
	gw     Gateway
	file   File
	logger *slog.Logger
	done   bool
}

// Acquire uploads r and returns a lease on the stored file.
func Acquire(ctx context.Context, gw Gateway, r io.Reader, filename, folder string, logger *slog.Logger) (*Lease, error) {
	if logger == nil {
		logger = slog.Default()
	}
	file, err := gw.Upload(ctx, r, filename, folder)
	if err != nil {
		return nil, err
	}
	return &Lease{gw: gw, file: file, logger: logger}, nil
}

func (l *Lease) File() File { return l.file }

// Commit hands ownership of the file to whatever now references it.
func (l *Lease) Commit() { l.done = true }

// Release deletes the file unless the lease was committed. A failed delete
// is logged and otherwise ignored.
func (l *Lease) Release(ctx context.Context) {
	if l.done {
		return
	}
	l.done = true
	if err := l.gw.Delete(context.WithoutCancel(ctx), l.file.PublicID); err != nil {
		l.logger.Warn("orphaned upload left in storage",
			"public_id", l.file.PublicID,
			"error", err,
		)
		return
	}
	l.logger.Info("rolled back upload", "public_id", l.file.PublicID)
}
