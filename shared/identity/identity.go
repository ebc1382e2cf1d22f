// Package identity carries the authenticated caller into domain operations.
package identity

import (
	"context"
	"roombook/shared/constant"
	"roombook/shared/failure"
)

// Caller is the user on whose behalf an operation runs.
type Caller struct {
	UserID string
	Email  string
	Role   string
}

func (c Caller) IsAdmin() bool {
	return c.Role == constant.RoleAdmin
}

func (c Caller) IsZero() bool {
	return c.UserID == ""
}

// System is the caller used by background jobs.
var System = Caller{UserID: "system", Role: constant.RoleAdmin}

// WithCaller stores the caller in the context the way the auth middleware does.
func WithCaller(ctx context.Context, caller Caller) context.Context {
	ctx = context.WithValue(ctx, constant.ContextKeyUserID, caller.UserID)
	ctx = context.WithValue(ctx, constant.ContextKeyUserEmail, caller.Email)

	return context.WithValue(ctx, constant.ContextKeyUserRole, caller.Role)
}

// FromContext reads the caller placed by the auth middleware.
func FromContext(ctx context.Context) (Caller, error) {
	userID, _ := ctx.Value(constant.ContextKeyUserID).(string)
	if userID == "" {
		return Caller{}, failure.Unauthorized("authentication required")
	}

	email, _ := ctx.Value(constant.ContextKeyUserEmail).(string)
	role, _ := ctx.Value(constant.ContextKeyUserRole).(string)

	return Caller{UserID: userID, Email: email, Role: role}, nil
}

// RequireAdmin fails with a forbidden failure for non-admin callers.
func (c Caller) RequireAdmin() error {
	if !c.IsAdmin() {
		return failure.ErrAdminRequired
	}

	return nil
}
