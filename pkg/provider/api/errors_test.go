package api

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/amirasaad/crowdfund/pkg/domain"
	"github.com/stretchr/testify/assert"
)

func TestStatusError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		status int
		want   error
	}{
		{http.StatusUnauthorized, domain.ErrUnauthorized},
		{http.StatusForbidden, domain.ErrForbidden},
		{http.StatusNotFound, domain.ErrNotFound},
		{http.StatusBadRequest, domain.ErrValidation},
		{http.StatusUnprocessableEntity, domain.ErrValidation},
		{http.StatusConflict, domain.ErrAlreadyExists},
		{http.StatusInternalServerError, domain.ErrServer},
		{http.StatusBadGateway, domain.ErrServer},
		{http.StatusTooManyRequests, domain.ErrServer},
	}

	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			t.Parallel()
			err := StatusError("get project", tt.status, "nope")
			assert.ErrorIs(t, err, tt.want)
			assert.NotErrorIs(t, err, domain.ErrNetwork)
			assert.Contains(t, err.Error(), "nope")
		})
	}
}

func TestNetworkError(t *testing.T) {
	t.Parallel()

	err := NetworkError("list projects", context.DeadlineExceeded)
	assert.ErrorIs(t, err, domain.ErrNetwork)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	var apiErr *Error
	assert.True(t, errors.As(err, &apiErr))
	assert.Zero(t, apiErr.StatusCode)
	assert.Equal(t, domain.KindNetwork, domain.KindOf(err))
}
