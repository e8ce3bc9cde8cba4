package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/enzogallo/discover-backend/internal/apperror"
	"github.com/stretchr/testify/assert"
)

func TestHTTPErrorMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code int
	}{
		{"already posted", apperror.AlreadyPostedToday(), http.StatusConflict},
		{"pseudonym taken", apperror.PseudonymTaken("alice"), http.StatusConflict},
		{"unauthorized", apperror.Unauthorized("not your post"), http.StatusForbidden},
		{"not found", apperror.NotFound("post", "p1"), http.StatusNotFound},
		{"validation", apperror.ValidationFailed("empty"), http.StatusBadRequest},
		{"concurrent modification", apperror.Conflict("user", "u1"), http.StatusConflict},
		{"transient store failure", errors.New("connection reset"), http.StatusServiceUnavailable},
		{"wrapped app error", fmt.Errorf("creating post: %w", apperror.AlreadyPostedToday()), http.StatusConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			httpErr := httpError(tt.err)
			assert.Equal(t, tt.code, httpErr.Code)
		})
	}
}

func TestTransientFailureMessageIsGeneric(t *testing.T) {
	httpErr := httpError(errors.New("tcp dial timeout to 10.0.0.3"))
	assert.NotContains(t, fmt.Sprint(httpErr.Message), "10.0.0.3", "internal details never reach the client")
	assert.Contains(t, fmt.Sprint(httpErr.Message), "retry")
}
