//go:build unit || e2e

package authtest

import (
	"testing"
	"time"

	"shootbook/internal/domain/user"
	"shootbook/internal/pkg/config"
	"shootbook/internal/pkg/jwt"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// JWTHelper issues tokens the way the managed auth backend does.
type JWTHelper struct {
	cfg config.JWTConfig
}

func NewJWTHelper(cfg config.JWTConfig) *JWTHelper {
	return &JWTHelper{cfg: cfg}
}

func (h *JWTHelper) GenerateToken(t *testing.T, userID uuid.UUID, role user.Role) string {
	t.Helper()
	service := jwt.NewService(h.cfg.Secret, h.cfg.Issuer)
	token, err := service.GenerateToken(userID, role, 15*time.Minute)
	require.NoError(t, err)
	return token
}

func (h *JWTHelper) CreateExpiredToken(t *testing.T, userID uuid.UUID, role user.Role) string {
	t.Helper()
	service := jwt.NewService(h.cfg.Secret, h.cfg.Issuer)
	token, err := service.GenerateToken(userID, role, -time.Minute)
	require.NoError(t, err)
	return token
}
