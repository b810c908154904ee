package model

import (
	"agenda/shared/constant"
	"agenda/shared/model"
	"slices"
	"time"
)

const (
	TableName  = "users"
	EntityName = "user"

	FieldID        = "id"
	FieldEmail     = "email"
	FieldPassword  = "password"
	FieldName      = "name"
	FieldPhone     = "phone"
	FieldRole      = "role"
	FieldLastLogin = "last_login"
	FieldActive    = "active"
)

// SelfRegisterRoles are the roles a user may pick when signing up.
var SelfRegisterRoles = []string{constant.RoleClient, constant.RoleProfessional}

type User struct {
	ID        string     `db:"id"`
	Email     string     `db:"email"`
	Password  string     `db:"password"`
	Name      string     `db:"name"`
	Phone     *string    `db:"phone"`
	Role      string     `db:"role"`
	LastLogin *time.Time `db:"last_login"`
	Active    bool       `db:"active"`
	model.Metadata
}

func (u User) CanSelfRegister() bool {
	return slices.Contains(SelfRegisterRoles, u.Role)
}
