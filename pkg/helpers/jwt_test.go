package helpers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTRoundTrip(t *testing.T) {
	m := NewJWTManager("test-secret", time.Hour)

	token, exp, err := m.Generate("user-42")
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), exp, 5*time.Second)

	claims, err := m.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "user-42", claims.UserID)
}

func TestJWTExpiredTokenRejected(t *testing.T) {
	m := NewJWTManager("test-secret", -time.Minute)

	token, _, err := m.Generate("user-42")
	require.NoError(t, err)

	_, err = m.Parse(token)
	assert.Error(t, err)
}

func TestJWTWrongSecretRejected(t *testing.T) {
	a := NewJWTManager("secret-a", time.Hour)
	token, _, err := a.Generate("user-42")
	require.NoError(t, err)

	b := NewJWTManager("secret-b", time.Hour)
	_, err = b.Parse(token)
	assert.Error(t, err)
}
