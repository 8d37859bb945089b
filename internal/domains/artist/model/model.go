package model

import "salon/shared/model"

const (
	TableName  = "artists"
	EntityName = "artist"

	FieldID        = "id"
	FieldFirstName = "first_name"
	FieldLastName  = "last_name"
	FieldEmpCode   = "emp_code"
	FieldActive    = "active"
	FieldGroupName = "group_name"
	FieldUserID    = "user_id"
)

type Artist struct {
	ID        int64   `db:"id"         insert:"false"`
	FirstName string  `db:"first_name"`
	LastName  string  `db:"last_name"`
	EmpCode   string  `db:"emp_code"`
	Active    bool    `db:"active"`
	GroupName string  `db:"group_name"`
	UserID    *string `db:"user_id"`
	model.Metadata
}
