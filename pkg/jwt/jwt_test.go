package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	m := NewManager("test-secret")

	token, err := m.GenerateToken("user-1", "alice", "Librarian", time.Hour)
	require.NoError(t, err)

	claims, err := m.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "alice", claims.Name)
	assert.Equal(t, "Librarian", claims.Role)
}

func TestExpiredToken(t *testing.T) {
	m := NewManager("test-secret")

	token, err := m.GenerateToken("user-1", "alice", "Member", -time.Minute)
	require.NoError(t, err)

	_, err = m.ValidateToken(token)
	assert.Error(t, err)
}

func TestWrongSecret(t *testing.T) {
	token, err := NewManager("secret-a").GenerateToken("user-1", "alice", "Member", time.Hour)
	require.NoError(t, err)

	_, err = NewManager("secret-b").ValidateToken(token)
	assert.Error(t, err)
}

func TestGarbageToken(t *testing.T) {
	_, err := NewManager("test-secret").ValidateToken("not.a.token")
	assert.Error(t, err)
}
