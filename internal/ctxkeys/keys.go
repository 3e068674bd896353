// Package ctxkeys defines typed context keys shared between middleware and handlers.
// This avoids import cycles: both middleware and handlers import this package,
// but neither imports the other for context key types.
package ctxkeys

import "context"

// Key is a typed string used as context key to prevent collisions.
type Key string

const (
	UserID   Key = "userID"
	UserRole Key = "userRole"
)

// Role values. Admin manages everything, Employee sees their own HR data,
// Client places and tracks their own orders and projects.
const (
	RoleAdmin    = "Admin"
	RoleEmployee = "Employee"
	RoleClient   = "Client"
)

// ValidRoles lists all valid role strings.
var ValidRoles = map[string]bool{
	RoleAdmin:    true,
	RoleEmployee: true,
	RoleClient:   true,
}

// CallerID returns the authenticated user's ID, or "" when unauthenticated.
func CallerID(ctx context.Context) string {
	id, _ := ctx.Value(UserID).(string)
	return id
}

// CallerRole returns the authenticated user's role, or "" when unauthenticated.
func CallerRole(ctx context.Context) string {
	role, _ := ctx.Value(UserRole).(string)
	return role
}
