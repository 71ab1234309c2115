//go:build unit

package jwt_test

import (
	"testing"
	"time"

	"shootbook/internal/domain/user"
	"shootbook/internal/pkg/jwt"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestService_ValidateToken(t *testing.T) {
	svc := jwt.NewService("secret", "shootbook-auth")
	userID := uuid.New()

	t.Run("正常なトークン", func(t *testing.T) {
		token, err := svc.GenerateToken(userID, user.RoleProvider, time.Hour)
		require.NoError(t, err)

		claims, err := svc.ValidateToken(token)
		require.NoError(t, err)

		actor, err := claims.Actor()
		require.NoError(t, err)
		assert.Equal(t, userID, actor.ID)
		assert.Equal(t, user.RoleProvider, actor.Role)
	})

	t.Run("期限切れトークン", func(t *testing.T) {
		token, err := svc.GenerateToken(userID, user.RoleClient, -time.Minute)
		require.NoError(t, err)

		_, err = svc.ValidateToken(token)
		assert.ErrorIs(t, err, jwt.ErrExpiredToken)
	})

	t.Run("別の秘密鍵で署名されたトークン", func(t *testing.T) {
		other := jwt.NewService("other", "shootbook-auth")
		token, err := other.GenerateToken(userID, user.RoleClient, time.Hour)
		require.NoError(t, err)

		_, err = svc.ValidateToken(token)
		assert.ErrorIs(t, err, jwt.ErrInvalidToken)
	})

	t.Run("発行者が異なるトークン", func(t *testing.T) {
		other := jwt.NewService("secret", "someone-else")
		token, err := other.GenerateToken(userID, user.RoleClient, time.Hour)
		require.NoError(t, err)

		_, err = svc.ValidateToken(token)
		assert.ErrorIs(t, err, jwt.ErrInvalidToken)
	})

	t.Run("未知のロール", func(t *testing.T) {
		token, err := svc.GenerateToken(userID, user.Role("viewer"), time.Hour)
		require.NoError(t, err)

		claims, err := svc.ValidateToken(token)
		require.NoError(t, err)
		_, err = claims.Actor()
		assert.ErrorIs(t, err, jwt.ErrInvalidToken)
	})
}
