package policy

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestActorRoundTrip(t *testing.T) {
	actor := Actor{UserID: uuid.New(), Name: "alice", Role: RoleLibrarian}
	ctx := WithActor(context.Background(), actor)

	got, ok := ActorFromContext(ctx)
	require.True(t, ok)
	assert.Equal(t, actor, got)
}

func TestActorFromEmptyContext(t *testing.T) {
	_, ok := ActorFromContext(context.Background())
	assert.False(t, ok)
}

func TestRequireActor(t *testing.T) {
	_, err := RequireActor(context.Background())
	assert.ErrorIs(t, err, ErrUnauthenticated)

	ctx := WithActor(context.Background(), Actor{Name: "bob", Role: RoleMember})
	actor, err := RequireActor(ctx)
	require.NoError(t, err)
	assert.Equal(t, "bob", actor.Name)
}

func TestRequireLibrarian(t *testing.T) {
	_, err := RequireLibrarian(context.Background())
	assert.ErrorIs(t, err, ErrUnauthenticated)

	memberCtx := WithActor(context.Background(), Actor{Role: RoleMember})
	_, err = RequireLibrarian(memberCtx)
	assert.ErrorIs(t, err, ErrPermissionDenied)

	librarianCtx := WithActor(context.Background(), Actor{Role: RoleLibrarian})
	actor, err := RequireLibrarian(librarianCtx)
	require.NoError(t, err)
	assert.True(t, actor.IsLibrarian())
}
