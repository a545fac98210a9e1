package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		kind Kind
		want int
	}{
		{KindUnauthenticated, http.StatusUnauthorized},
		{KindSessionExpired, http.StatusUnauthorized},
		{KindInvalidCredential, http.StatusUnauthorized},
		{KindUnknownIdentity, http.StatusUnauthorized},
		{KindAccountDisabled, http.StatusUnauthorized},
		{KindForbidden, http.StatusForbidden},
		{KindNotOwner, http.StatusForbidden},
		{KindNotFound, http.StatusNotFound},
		{KindReferenceNotFound, http.StatusNotFound},
		{KindScheduleConflict, http.StatusConflict},
		{KindDuplicateIdentity, http.StatusConflict},
		{KindDuplicateCode, http.StatusConflict},
		{KindDuplicateName, http.StatusConflict},
		{KindValidation, http.StatusBadRequest},
		{KindRecordLocked, http.StatusBadRequest},
		{KindInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.kind.HTTPStatus())
		})
	}
}

func TestKindOfTraversesWrapChain(t *testing.T) {
	inner := New(KindScheduleConflict, "slot taken")
	outer := fmt.Errorf("saving appointment: %w", inner)

	assert.Equal(t, KindScheduleConflict, KindOf(outer))
	assert.True(t, Is(outer, KindScheduleConflict))
	assert.False(t, Is(outer, KindNotFound))
}

func TestKindOfUnclassified(t *testing.T) {
	assert.Equal(t, KindInternal, KindOf(errors.New("boom")))
}

func TestWrapUnwrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := Wrap(KindInternal, "failed to reach database", cause)

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "failed to reach database")
	assert.Contains(t, err.Error(), "connection refused")
}
