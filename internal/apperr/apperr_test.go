package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindStatus(t *testing.T) {
	tests := []struct {
		kind Kind
		want int
	}{
		{KindValidation, http.StatusBadRequest},
		{KindUnauthorized, http.StatusUnauthorized},
		{KindTokenInvalid, http.StatusUnauthorized},
		{KindForbidden, http.StatusForbidden},
		{KindNotFound, http.StatusNotFound},
		{KindConflict, http.StatusConflict},
		{KindInternal, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.kind.Status())
		})
	}
}

func TestWrappedSentinelStillMatches(t *testing.T) {
	cause := errors.New("signature is invalid")
	err := fmt.Errorf("verify: %w", ErrTokenInvalid.Wrap(cause))

	assert.ErrorIs(t, err, ErrTokenInvalid)
	assert.ErrorIs(t, err, cause)
	assert.NotErrorIs(t, err, ErrTokenMissing)
	assert.Equal(t, KindTokenInvalid, KindOf(err))
}

func TestKindOfUnknownError(t *testing.T) {
	assert.Equal(t, KindInternal, KindOf(errors.New("boom")))
}
