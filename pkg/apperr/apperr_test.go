package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHTTPStatus(t *testing.T) {
	cases := []struct {
		kind Kind
		want int
	}{
		{Authentication, http.StatusUnauthorized},
		{Authorization, http.StatusForbidden},
		{NotFound, http.StatusNotFound},
		{Conflict, http.StatusBadRequest},
		{Internal, http.StatusInternalServerError},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, c.kind.HTTPStatus(), c.kind.String())
	}
}

func TestKindOf(t *testing.T) {
	err := New(Authorization, "not the owner")
	assert.Equal(t, Authorization, KindOf(err))

	wrapped := fmt.Errorf("handler: %w", Wrap(Conflict, "email already registered", errors.New("unique violation")))
	assert.Equal(t, Conflict, KindOf(wrapped))

	assert.Equal(t, Internal, KindOf(errors.New("plain")))
	assert.Equal(t, Internal, KindOf(nil))
}

func TestMessageOf(t *testing.T) {
	assert.Equal(t, "could not validate credentials", MessageOf(New(Authentication, "could not validate credentials")))
	// Unclassified errors never leak their own text.
	assert.Equal(t, "internal server error", MessageOf(errors.New("pq: connection refused")))
}

func TestUnwrap(t *testing.T) {
	cause := errors.New("boom")
	err := Wrap(Internal, "store fault", cause)
	assert.True(t, errors.Is(err, cause))
}
