package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carolinaopazo01-byte/proyecto-sub000/internal/model"
)

func TestTokenRoundTrip(t *testing.T) {
	mgr := NewTokenManager("test-secret", "sports-api", time.Hour)
	user := &model.User{ID: 42, Role: model.RoleProfessional}

	raw, err := mgr.Issue(user)
	require.NoError(t, err)
	require.NotEmpty(t, raw)

	claims, err := mgr.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, model.RoleProfessional, claims.Role)
	assert.Equal(t, "sports-api", claims.Issuer)
}

func TestParseRejectsWrongSecret(t *testing.T) {
	raw, err := NewTokenManager("secret-a", "sports-api", time.Hour).
		Issue(&model.User{ID: 1, Role: model.RoleAdmin})
	require.NoError(t, err)

	_, err = NewTokenManager("secret-b", "sports-api", time.Hour).Parse(raw)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseRejectsExpired(t *testing.T) {
	mgr := NewTokenManager("test-secret", "sports-api", -time.Minute)
	raw, err := mgr.Issue(&model.User{ID: 1, Role: model.RoleAdmin})
	require.NoError(t, err)

	_, err = mgr.Parse(raw)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseRejectsGarbage(t *testing.T) {
	mgr := NewTokenManager("test-secret", "sports-api", time.Hour)

	_, err := mgr.Parse("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("hunter2")
	require.NoError(t, err)
	assert.NotEqual(t, "hunter2", hash)

	assert.True(t, CheckPassword(hash, "hunter2"))
	assert.False(t, CheckPassword(hash, "hunter3"))
}
