package serverutils

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"subcontrol-be/internal/apperror"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{apperror.Validation("amount", "must not be negative"), 400},
		{apperror.NotFound("customer", "x"), 404},
		{fmt.Errorf("key reused: %w", apperror.ErrConflict), 409},
		{apperror.Unavailable("list plans", errors.New("dial tcp")), 503},
		{fiber.ErrUnprocessableEntity, 422},
		{errors.New("boom"), 500},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, StatusFor(tt.err), tt.err.Error())
	}
}

type createRequest struct {
	Name   string `json:"name" validate:"required"`
	Email  string `json:"email" validate:"required,email"`
	Status string `json:"status" validate:"omitempty,oneof=active inactive"`
}

func TestValidateRequest(t *testing.T) {
	assert.NoError(t, ValidateRequest(createRequest{Name: "Acme", Email: "a@acme.com"}))

	err := ValidateRequest(createRequest{Email: "a@acme.com"})
	var verr *apperror.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "name", verr.Field)

	err = ValidateRequest(createRequest{Name: "Acme", Email: "a@acme.com", Status: "paused"})
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "status", verr.Field)
	assert.Contains(t, verr.Message, "active inactive")
}

func TestErrorHandlerMiddlewareEnvelope(t *testing.T) {
	app := fiber.New()
	app.Use(ErrorHandlerMiddleware())
	app.Get("/missing", func(ctx *fiber.Ctx) error { return apperror.NotFound("plan", "p1") })
	app.Get("/bad", func(ctx *fiber.Ctx) error { return apperror.Validation("price", "must not be negative") })

	resp, err := app.Test(httptest.NewRequest("GET", "/missing", nil))
	require.NoError(t, err)
	assert.Equal(t, 404, resp.StatusCode)
	var body BaseResponse[any]
	data, _ := io.ReadAll(resp.Body)
	require.NoError(t, json.Unmarshal(data, &body))
	assert.False(t, body.Success)
	assert.Equal(t, 404, body.Code)

	resp, err = app.Test(httptest.NewRequest("GET", "/bad", nil))
	require.NoError(t, err)
	assert.Equal(t, 400, resp.StatusCode)
	var vbody BaseResponse[map[string]string]
	data, _ = io.ReadAll(resp.Body)
	require.NoError(t, json.Unmarshal(data, &vbody))
	assert.Equal(t, "price", vbody.Data["field"])
}

type revokedSet map[string]bool

func (r revokedSet) IsRevoked(ctx context.Context, tokenId string) (bool, error) {
	return r[tokenId], nil
}

func sign(t *testing.T, secret string, claims jwt.MapClaims) string {
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return s
}

func TestJwtMiddleware(t *testing.T) {
	const secret = "test-secret"
	app := fiber.New()
	app.Use(NewJwtMiddleware(secret, revokedSet{"revoked-id": true}))
	app.Get("/me", func(ctx *fiber.Ctx) error {
		return ctx.SendString(ctx.Locals("user_id").(string))
	})

	exp := time.Now().Add(time.Hour).Unix()
	tests := []struct {
		name   string
		header string
		want   int
	}{
		{"missing", "", 401},
		{"garbage", "Bearer nope", 401},
		{"wrong secret", "Bearer " + sign(t, "other", jwt.MapClaims{"user_id": "admin", "exp": exp}), 401},
		{"expired", "Bearer " + sign(t, secret, jwt.MapClaims{"user_id": "admin", "exp": time.Now().Add(-time.Minute).Unix()}), 401},
		{"revoked", "Bearer " + sign(t, secret, jwt.MapClaims{"user_id": "admin", "jti": "revoked-id", "exp": exp}), 401},
		{"valid", "Bearer " + sign(t, secret, jwt.MapClaims{"user_id": "admin", "jti": "live-id", "exp": exp}), 200},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.want, resp.StatusCode)
		})
	}
}
