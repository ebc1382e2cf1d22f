package model

import (
	"roombook/shared/constant"
	"roombook/shared/model"
)

const (
	TableName  = "users"
	EntityName = "user"

	FieldID       = "id"
	FieldEmail    = "email"
	FieldPassword = "password"
	FieldFullName = "full_name"
	FieldRole     = "role"
	FieldActive   = "active"
)

type User struct {
	ID       string `db:"id"`
	Email    string `db:"email"`
	Password string `db:"password"`
	FullName string `db:"full_name"`
	Role     string `db:"role"`
	Active   bool   `db:"active"`
	model.Metadata
}

func (u User) IsAdmin() bool {
	return u.Role == constant.RoleAdmin
}
