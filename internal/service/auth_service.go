package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"subcontrol-be/internal/apperror"
	"subcontrol-be/internal/config"
	"subcontrol-be/internal/dto"
	"subcontrol-be/internal/pkg/logger"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

const revokedKeyPrefix = "auth:revoked:"

type IAuthService interface {
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error)
	// Logout revokes a token id until its expiry.
	Logout(ctx context.Context, tokenId string, expiresAt time.Time) error
	IsRevoked(ctx context.Context, tokenId string) (bool, error)
}

// authService authenticates the single administrator configured through the environment.
// Revoked token ids live in Redis when available, otherwise in process memory.
type authService struct {
	cfg    config.AuthConfig
	rdb    *redis.Client
	local  *cache.Cache
	logger logger.ILogger
	now    func() time.Time
}

func NewAuthService(cfg config.AuthConfig, rdb *redis.Client, logger logger.ILogger) IAuthService {
	s := &authService{
		cfg:    cfg,
		rdb:    rdb,
		logger: logger,
		now:    time.Now,
	}
	if rdb == nil {
		s.local = cache.New(cfg.TokenTTL, 10*time.Minute)
	}
	return s
}

func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	if s.cfg.AdminPasswordHash == "" || s.cfg.JwtSecret == "" {
		s.logger.Warn("AUTH", "Login attempted while admin credentials are not configured", nil)
		return nil, ErrInvalidCredentials
	}
	if !strings.EqualFold(strings.TrimSpace(req.Email), s.cfg.AdminEmail) {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(s.cfg.AdminPasswordHash), []byte(req.Password)); err != nil {
		s.logger.Warn("AUTH", "Failed login", map[string]interface{}{"email": req.Email})
		return nil, ErrInvalidCredentials
	}

	now := s.now()
	expiresAt := now.Add(s.cfg.TokenTTL)
	claims := jwt.MapClaims{
		"user_id": s.cfg.AdminEmail,
		"role":    "admin",
		"jti":     uuid.NewString(),
		"iat":     now.Unix(),
		"exp":     expiresAt.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.JwtSecret))
	if err != nil {
		return nil, err
	}

	s.logger.Info("AUTH", "Admin logged in", map[string]interface{}{"email": s.cfg.AdminEmail})
	return &dto.LoginResponse{
		AccessToken: signed,
		TokenType:   "Bearer",
		ExpiresAt:   expiresAt,
	}, nil
}

func (s *authService) Logout(ctx context.Context, tokenId string, expiresAt time.Time) error {
	if tokenId == "" {
		return nil
	}
	ttl := expiresAt.Sub(s.now())
	if ttl <= 0 {
		return nil
	}

	if s.rdb == nil {
		s.local.Set(revokedKeyPrefix+tokenId, true, ttl)
		return nil
	}
	if err := s.rdb.Set(ctx, revokedKeyPrefix+tokenId, "1", ttl).Err(); err != nil {
		return apperror.Unavailable("revoke token", err)
	}

	s.logger.Info("AUTH", "Token revoked", map[string]interface{}{"tokenId": tokenId})
	return nil
}

func (s *authService) IsRevoked(ctx context.Context, tokenId string) (bool, error) {
	if s.rdb == nil {
		_, found := s.local.Get(revokedKeyPrefix + tokenId)
		return found, nil
	}
	n, err := s.rdb.Exists(ctx, revokedKeyPrefix+tokenId).Result()
	if err != nil {
		return false, apperror.Unavailable("check token revocation", err)
	}
	return n > 0, nil
}
