package failure_test

import (
	"errors"
	"fmt"
	"net/http"
	"salon/shared/failure"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConstructors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code int
		msg  string
	}{
		{"bad request", failure.BadRequest(errors.New("booking_date is required")), http.StatusBadRequest, "booking_date is required"},
		{"bad request string", failure.BadRequestFromString("invalid status"), http.StatusBadRequest, "invalid status"},
		{"unauthorized", failure.Unauthorized("token expired"), http.StatusUnauthorized, "token expired"},
		{"forbidden", failure.Forbidden("not your booking"), http.StatusForbidden, "not your booking"},
		{"not found", failure.NotFound("artist"), http.StatusNotFound, "artist"},
		{"conflict", failure.Conflict("email already registered"), http.StatusConflict, "email already registered"},
		{"forbidden sentinel", failure.ForbiddenError, http.StatusForbidden, "You don't have the required permissions"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, failure.GetCode(tt.err))
			assert.Equal(t, tt.msg, tt.err.Error())
		})
	}
}

func TestBadRequestNil(t *testing.T) {
	assert.NoError(t, failure.BadRequest(nil))
}

func TestGetCode(t *testing.T) {
	wrapped := fmt.Errorf("failed to update booking: %w", failure.NotFound("booking"))

	assert.Equal(t, http.StatusNotFound, failure.GetCode(wrapped))
	assert.Equal(t, http.StatusInternalServerError, failure.GetCode(errors.New("boom")))
	assert.Equal(t, http.StatusInternalServerError, failure.GetCode(nil))
}
