package controller

import (
	"errors"
	"time"

	"subcontrol-be/internal/dto"
	"subcontrol-be/internal/pkg/serverutils"
	"subcontrol-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IAuthController interface {
	RegisterRoutes(r fiber.Router, jwtMiddleware fiber.Handler)
	Login(ctx *fiber.Ctx) error
	Logout(ctx *fiber.Ctx) error
}

type authController struct {
	service service.IAuthService
}

func NewAuthController(service service.IAuthService) IAuthController {
	return &authController{service: service}
}

func (c *authController) RegisterRoutes(r fiber.Router, jwtMiddleware fiber.Handler) {
	h := r.Group("/auth")
	h.Post("/login", c.Login)
	h.Post("/logout", jwtMiddleware, c.Logout)
}

func (c *authController) Login(ctx *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := bindBody(ctx, &req); err != nil {
		return err
	}

	res, err := c.service.Login(ctx.Context(), &req)
	if errors.Is(err, service.ErrInvalidCredentials) {
		return ctx.Status(fiber.StatusUnauthorized).JSON(serverutils.ErrorResponse(401, "Invalid email or password"))
	}
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Login successful", res))
}

func (c *authController) Logout(ctx *fiber.Ctx) error {
	tokenId, _ := ctx.Locals("token_id").(string)
	expiresAt, _ := ctx.Locals("token_exp").(time.Time)

	if err := c.service.Logout(ctx.Context(), tokenId, expiresAt); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Logged out", nil))
}
