package service

import (
	"context"
	"testing"
	"time"

	"subcontrol-be/internal/config"
	"subcontrol-be/internal/dto"
	"subcontrol-be/internal/pkg/logger"

	"github.com/alicebob/miniredis/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func authConfig(t *testing.T) config.AuthConfig {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	require.NoError(t, err)
	return config.AuthConfig{
		JwtSecret:         "test-secret",
		AdminEmail:        "admin@example.com",
		AdminPasswordHash: string(hash),
		TokenTTL:          time.Hour,
	}
}

func TestLogin(t *testing.T) {
	svc := NewAuthService(authConfig(t), nil, logger.NewNopLogger())
	ctx := context.Background()

	res, err := svc.Login(ctx, &dto.LoginRequest{Email: "Admin@Example.com", Password: "s3cret"})
	require.NoError(t, err)
	assert.Equal(t, "Bearer", res.TokenType)

	token, err := jwt.Parse(res.AccessToken, func(t *jwt.Token) (interface{}, error) { return []byte("test-secret"), nil })
	require.NoError(t, err)
	claims := token.Claims.(jwt.MapClaims)
	assert.Equal(t, "admin@example.com", claims["user_id"])
	assert.NotEmpty(t, claims["jti"])

	_, err = svc.Login(ctx, &dto.LoginRequest{Email: "admin@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(ctx, &dto.LoginRequest{Email: "other@example.com", Password: "s3cret"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginDisabledWithoutHash(t *testing.T) {
	cfg := authConfig(t)
	cfg.AdminPasswordHash = ""
	svc := NewAuthService(cfg, nil, logger.NewNopLogger())

	_, err := svc.Login(context.Background(), &dto.LoginRequest{Email: "admin@example.com", Password: ""})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogoutRevokesInRedis(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	svc := NewAuthService(authConfig(t), rdb, logger.NewNopLogger())
	ctx := context.Background()

	revoked, err := svc.IsRevoked(ctx, "token-1")
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, svc.Logout(ctx, "token-1", time.Now().Add(10*time.Minute)))
	revoked, err = svc.IsRevoked(ctx, "token-1")
	require.NoError(t, err)
	assert.True(t, revoked)
	assert.True(t, mr.Exists("auth:revoked:token-1"))

	mr.FastForward(11 * time.Minute)
	revoked, err = svc.IsRevoked(ctx, "token-1")
	require.NoError(t, err)
	assert.False(t, revoked, "entry expires with the token")
}

func TestIsRevokedRedisDown(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	svc := NewAuthService(authConfig(t), rdb, logger.NewNopLogger())
	mr.Close()

	_, err := svc.IsRevoked(context.Background(), "token-1")
	assert.Error(t, err)
}

func TestLogoutLocalFallback(t *testing.T) {
	svc := NewAuthService(authConfig(t), nil, logger.NewNopLogger())
	ctx := context.Background()

	require.NoError(t, svc.Logout(ctx, "token-2", time.Now().Add(time.Minute)))
	revoked, err := svc.IsRevoked(ctx, "token-2")
	require.NoError(t, err)
	assert.True(t, revoked)

	require.NoError(t, svc.Logout(ctx, "expired", time.Now().Add(-time.Minute)))
	revoked, _ = svc.IsRevoked(ctx, "expired")
	assert.False(t, revoked)
}
