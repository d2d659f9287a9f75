package domain

import (
	"context"
	"errors"
)

// Actor is the authenticated caller, as asserted by the external identity
// provider. Every operation is scoped to the actor's tenant.
type Actor struct {
	ID       string
	TenantID string
	Role     Role
}

// Role is an actor's access level.
type Role string

const (
	// RoleAdmin has full access, including the audit trail.
	RoleAdmin Role = "admin"

	// RoleManager can approve, post and void count sheets and void orders.
	RoleManager Role = "manager"

	// RoleCashier can run sessions, orders and payments.
	RoleCashier Role = "cashier"
)

var validRoles = map[Role]bool{
	RoleAdmin:   true,
	RoleManager: true,
	RoleCashier: true,
}

// IsValid checks if the role is a valid role.
func (r Role) IsValid() bool {
	return validRoles[r]
}

// CanManageCounts checks if the role may approve, post or void count sheets.
func (r Role) CanManageCounts() bool {
	return r == RoleAdmin || r == RoleManager
}

// CanViewAudit checks if the role may read the audit trail.
func (r Role) CanViewAudit() bool {
	return r == RoleAdmin
}

// Authentication errors
var (
	ErrUnauthorized     = errors.New("unauthorized")
	ErrInvalidToken     = errors.New("invalid token")
	ErrExpiredToken     = errors.New("token has expired")
	ErrInsufficientRole = errors.New("insufficient role for this operation")
)

type actorContextKey struct{}

// ContextWithActor attaches the authenticated actor to the context.
func ContextWithActor(ctx context.Context, actor *Actor) context.Context {
	return context.WithValue(ctx, actorContextKey{}, actor)
}

// ActorFromContext extracts the authenticated actor from the context.
func ActorFromContext(ctx context.Context) (*Actor, bool) {
	actor, ok := ctx.Value(actorContextKey{}).(*Actor)
	return actor, ok
}

// RequestMeta carries transport-level request details into audit records.
type RequestMeta struct {
	IPAddress string
	RequestID string
}

type requestMetaContextKey struct{}

// ContextWithRequestMeta attaches request metadata to the context.
func ContextWithRequestMeta(ctx context.Context, meta RequestMeta) context.Context {
	return context.WithValue(ctx, requestMetaContextKey{}, meta)
}

// RequestMetaFromContext extracts request metadata from the context.
func RequestMetaFromContext(ctx context.Context) (RequestMeta, bool) {
	meta, ok := ctx.Value(requestMetaContextKey{}).(RequestMeta)
	return meta, ok
}
