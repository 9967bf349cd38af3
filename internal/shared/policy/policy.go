// Package policy is the single place where role-based mutation rights are
// enforced. Every mutating service operation calls RequireLibrarian before
// touching state; handlers never re-implement the check.
package policy

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

type Role string

const (
	RoleLibrarian Role = "Librarian"
	RoleMember    Role = "Member"
)

var (
	ErrUnauthenticated  = errors.New("no authenticated actor in context")
	ErrPermissionDenied = errors.New("permission denied: librarian role required")
)

// Actor is the identity resolved by the auth middleware for one request.
// It travels in the request context instead of a process-wide "current user"
// so concurrent sessions stay independent.
type Actor struct {
	UserID uuid.UUID
	Name   string
	Role   Role
}

func (a Actor) IsLibrarian() bool {
	return a.Role == RoleLibrarian
}

type actorKey struct{}

// WithActor returns a context carrying the actor.
func WithActor(ctx context.Context, actor Actor) context.Context {
	return context.WithValue(ctx, actorKey{}, actor)
}

// ActorFromContext extracts the actor set by the auth middleware.
func ActorFromContext(ctx context.Context) (Actor, bool) {
	actor, ok := ctx.Value(actorKey{}).(Actor)
	return actor, ok
}

// RequireActor allows any authenticated caller. Read operations use this.
func RequireActor(ctx context.Context) (Actor, error) {
	actor, ok := ActorFromContext(ctx)
	if !ok {
		return Actor{}, ErrUnauthenticated
	}
	return actor, nil
}

// RequireLibrarian gates mutating operations.
func RequireLibrarian(ctx context.Context) (Actor, error) {
	actor, err := RequireActor(ctx)
	if err != nil {
		return Actor{}, err
	}
	if !actor.IsLibrarian() {
		return Actor{}, ErrPermissionDenied
	}
	return actor, nil
}
