package model

import (
	"salon/shared/constant"
	"salon/shared/model"
	"strings"
)

const (
	TableName  = "users"
	EntityName = "user"

	FieldID           = "id"
	FieldEmail        = "email"
	FieldPassword     = "password"
	FieldLevel        = "level"
	FieldFullName     = "full_name"
	FieldPhoneNo      = "phone_no"
	FieldProfileImage = "profile_image"
	FieldIsVerified   = "is_verified"
	FieldLastLogin    = "last_login"
	FieldActive       = "active"
)

// User is a login account: back office staff, an artist or a salon member. Artists are linked to
// their artists row through artists.user_id.
type User struct {
	ID           string  `db:"id"`
	Email        string  `db:"email"`
	Password     string  `db:"password"`
	Level        string  `db:"level"`
	FullName     *string `db:"full_name"`
	PhoneNo      *string `db:"phone_no"`
	ProfileImage *string `db:"profile_image"`
	IsVerified   bool    `db:"is_verified"`
	LastLogin    *string `db:"last_login"`
	Active       bool    `db:"active"`
	model.Metadata
}

// Privileged reports whether the account administers other accounts.
func (u User) Privileged() bool {
	return PrivilegedLevel(u.Level)
}

// PrivilegedLevel reports whether level may only be granted or managed by a superadmin.
func PrivilegedLevel(level string) bool {
	return level == constant.RoleSuperAdmin || level == constant.RoleAdmin
}

// NormalizeEmail is the stored spelling of an address. Lookups and the uniqueness check use it.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
