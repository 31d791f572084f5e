package controller

import (
	"subcontrol-be/internal/pkg/serverutils"
	"subcontrol-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IDashboardController interface {
	RegisterRoutes(r fiber.Router, jwtMiddleware fiber.Handler)
	Get(ctx *fiber.Ctx) error
}

type dashboardController struct {
	service service.IDashboardService
}

func NewDashboardController(service service.IDashboardService) IDashboardController {
	return &dashboardController{service: service}
}

func (c *dashboardController) RegisterRoutes(r fiber.Router, jwtMiddleware fiber.Handler) {
	r.Get("/dashboard", jwtMiddleware, c.Get)
}

// Get returns headline stats and the subscriptions needing attention
// @Summary Dashboard
// @Tags Dashboard
// @Security BearerAuth
// @Produce json
// @Success 200 {object} dto.DashboardResponse
// @Router /api/dashboard [get]
func (c *dashboardController) Get(ctx *fiber.Ctx) error {
	res, err := c.service.Get(ctx.Context())
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Dashboard retrieved", res))
}
