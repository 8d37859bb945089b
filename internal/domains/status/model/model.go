package model

import "salon/shared/model"

const (
	TableName  = "status_options"
	EntityName = "status_option"

	FieldStatusCode  = "status_code"
	FieldStatusName  = "status_name"
	FieldActive      = "active"
	FieldDescription = "description"
)

// StatusOption is one row of the status vocabulary shown to operators.
type StatusOption struct {
	StatusCode  string `db:"status_code"`
	StatusName  string `db:"status_name"`
	Active      bool   `db:"active"`
	Description string `db:"description"`
	model.Metadata
}
