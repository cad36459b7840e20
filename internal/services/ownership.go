package services

import (
	"context"
	"errors"

	"github.com/justsurfingit/job-board/internal/apperr"
	"github.com/justsurfingit/job-board/internal/models"
	"gorm.io/gorm"
)

// Owned is implemented by records that a single user may change or remove.
type Owned interface {
	OwnerID() uint
}

// loadOwned fetches the record with the given id and checks that actor owns
// it. A missing record yields notFound; someone else's record yields
// apperr.ErrNotAuthorized and nothing is touched.
func loadOwned[T any, PT interface {
	*T
	Owned
}](ctx context.Context, db *gorm.DB, id uint, actor *models.User, notFound error) (PT, error) {
	var record T
	if err := db.WithContext(ctx).First(&record, id).Error; err != nil {
		return nil, lookupError(err, notFound)
	}
	owned := PT(&record)
	if actor == nil || owned.OwnerID() != actor.ID {
		return nil, apperr.ErrNotAuthorized
	}
	return owned, nil
}

// lookupError maps a failed single-record lookup.
func lookupError(err, notFound error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notFound
	}
	return apperr.Internal("failed to load record", err)
}

// storeError maps a failed write. Unique violations the pre-checks did not
// catch still reach the client as a conflict.
func storeError(err error, conflict *apperr.Error) error {
	var appErr *apperr.Error
	switch {
	case errors.As(err, &appErr):
		return err
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return conflict.Wrap(err)
	default:
		return apperr.Internal("failed to write record", err)
	}
}
