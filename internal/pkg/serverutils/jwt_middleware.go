package serverutils

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// TokenRevocations answers whether a token id was revoked by logout.
type TokenRevocations interface {
	IsRevoked(ctx context.Context, tokenId string) (bool, error)
}

// NewJwtMiddleware validates HS256 bearer tokens and stores user_id, token_id and token_exp in Locals.
func NewJwtMiddleware(secret string, revocations TokenRevocations) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		authHeader := ctx.Get("Authorization")
		if len(authHeader) < 7 || authHeader[:7] != "Bearer " {
			return ctx.Status(fiber.StatusUnauthorized).JSON(ErrorResponse(401, "Missing token"))
		}
		tokenStr := authHeader[7:]

		token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
			return []byte(secret), nil
		}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
		if err != nil || !token.Valid {
			return ctx.Status(fiber.StatusUnauthorized).JSON(ErrorResponse(401, "Invalid token"))
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			return ctx.Status(fiber.StatusUnauthorized).JSON(ErrorResponse(401, "Invalid claims"))
		}

		tokenId, _ := claims["jti"].(string)
		if revocations != nil && tokenId != "" {
			revoked, err := revocations.IsRevoked(ctx.Context(), tokenId)
			if err != nil {
				return ctx.Status(fiber.StatusServiceUnavailable).JSON(ErrorResponse(503, "Token check unavailable"))
			}
			if revoked {
				return ctx.Status(fiber.StatusUnauthorized).JSON(ErrorResponse(401, "Token revoked"))
			}
		}

		ctx.Locals("user_id", claims["user_id"])
		ctx.Locals("token_id", tokenId)
		if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
			ctx.Locals("token_exp", exp.Time)
		}
		return ctx.Next()
	}
}
