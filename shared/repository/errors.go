package repository

import (
	"errors"
	"fmt"
	"salon/shared/constant"
	"salon/shared/failure"

	"github.com/lib/pq"
)

// translateError maps constraint violations to failures the handlers can report with a 4xx code.
func translateError(entity string, err error) error {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return err
	}

	switch string(pqErr.Code) {
	case constant.PqErrorCodeUniqueViolation:
		return failure.Conflict(fmt.Sprintf("%s already exists", entity))
	case constant.PqErrorCodeFkViolation:
		return failure.BadRequestFromString(fmt.Sprintf("%s references a record that does not exist", entity))
	default:
		return err
	}
}
