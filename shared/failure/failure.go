// Package failure carries an HTTP status alongside an error message so services can decide the
// response code and handlers only forward it.
package failure

import (
	"errors"
	"net/http"
)

type Failure struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

var (
	ForbiddenError          = &Failure{Code: http.StatusForbidden, Message: "You don't have the required permissions"}
	ResourceRestrictedError = &Failure{Code: http.StatusForbidden, Message: "You don't have permission to access this resource"}
)

func (e *Failure) Error() string {
	return e.Message
}

func newFailure(code int, msg string) error {
	return &Failure{Code: code, Message: msg}
}

// BadRequest wraps err as a 400; nil stays nil.
func BadRequest(err error) error {
	if err == nil {
		return nil
	}

	return newFailure(http.StatusBadRequest, err.Error())
}

func BadRequestFromString(msg string) error { return newFailure(http.StatusBadRequest, msg) }

func Unauthorized(msg string) error { return newFailure(http.StatusUnauthorized, msg) }

func Forbidden(msg string) error { return newFailure(http.StatusForbidden, msg) }

// NotFound takes the entity name as its message.
func NotFound(msg string) error { return newFailure(http.StatusNotFound, msg) }

func Conflict(msg string) error { return newFailure(http.StatusConflict, msg) }

// GetCode finds the first Failure in err's chain; anything else is a 500.
func GetCode(err error) int {
	var f *Failure
	if errors.As(err, &f) {
		return f.Code
	}

	return http.StatusInternalServerError
}
