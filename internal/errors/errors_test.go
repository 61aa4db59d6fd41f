package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNotFoundMatchesSentinel(t *testing.T) {
	err := fmt.Errorf("load item: %w", NotFound("item", "12345678"))

	assert.True(t, IsNotFound(err))
	assert.True(t, stderrors.Is(err, ErrNotFound))
	assert.Equal(t, http.StatusNotFound, HTTPStatus(err))
	assert.Equal(t, "load item: item 12345678 not found", err.Error())
}

func TestHTTPStatus(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"invalid input", InvalidInput("item_number", "required"), http.StatusBadRequest},
		{"conflict", Conflict("product exists"), http.StatusConflict},
		{"unauthorized", Unauthorized(""), http.StatusUnauthorized},
		{"rate limited", RateLimitExceeded(10, "1s"), http.StatusTooManyRequests},
		{"bare sentinel", ErrNotFound, http.StatusNotFound},
		{"plain error", stderrors.New("boom"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, HTTPStatus(tc.err))
		})
	}
}

func TestInternalUnwraps(t *testing.T) {
	cause := stderrors.New("connection refused")
	err := Internal("load cart", cause)

	assert.ErrorIs(t, err, cause)
	assert.False(t, IsNotFound(err))
	assert.Equal(t, "load cart: connection refused", err.Error())
	assert.Same(t, err, GetServiceError(fmt.Errorf("wrapped: %w", err)))
}
