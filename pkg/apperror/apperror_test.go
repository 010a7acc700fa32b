package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstructorsCarryStatus(t *testing.T) {
	cases := []struct {
		err  *Error
		code int
		kind Kind
	}{
		{Validation("v"), http.StatusUnprocessableEntity, KindValidation},
		{NotFound("n"), http.StatusNotFound, KindNotFound},
		{Auth("a"), http.StatusUnauthorized, KindAuth},
		{Authorization("z"), http.StatusUnauthorized, KindAuthorization},
		{Conflict("c"), http.StatusBadRequest, KindConflict},
		{Storage("s", nil), http.StatusInternalServerError, KindStorage},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.code, tc.err.Code, tc.err.Message)
		assert.Equal(t, tc.kind, tc.err.Kind, tc.err.Message)
	}
}

func TestStorageWrapsCause(t *testing.T) {
	cause := errors.New("connection reset")
	err := Storage("Signing up failed, please try again later.", cause)

	require.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "connection reset")
}

func TestAsFindsWrappedError(t *testing.T) {
	wrapped := fmt.Errorf("outer: %w", NotFound("Could not find place for the provided id."))

	ae, ok := As(wrapped)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, ae.Code)
	assert.True(t, IsKind(wrapped, KindNotFound))
	assert.False(t, IsKind(errors.New("plain"), KindNotFound))
}

func TestWithDetailsCopies(t *testing.T) {
	base := Validation(InvalidInput)
	withDetails := base.WithDetails(map[string]string{"email": "must be a valid email"})

	assert.Nil(t, base.Details)
	assert.Equal(t, "must be a valid email", withDetails.Details["email"])
}
