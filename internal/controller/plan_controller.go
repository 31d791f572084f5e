package controller

import (
	"subcontrol-be/internal/dto"
	"subcontrol-be/internal/pkg/serverutils"
	"subcontrol-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IPlanController interface {
	RegisterRoutes(r fiber.Router, jwtMiddleware fiber.Handler)
	List(ctx *fiber.Ctx) error
	Create(ctx *fiber.Ctx) error
	Update(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
}

type planController struct {
	service service.IPlanService
}

func NewPlanController(service service.IPlanService) IPlanController {
	return &planController{service: service}
}

func (c *planController) RegisterRoutes(r fiber.Router, jwtMiddleware fiber.Handler) {
	h := r.Group("/plans", jwtMiddleware)
	h.Get("/", c.List)
	h.Post("/", c.Create)
	h.Put("/:id", c.Update)
	h.Delete("/:id", c.Delete)
}

// List returns every plan, active or not
// @Summary List plans
// @Tags Plans
// @Security BearerAuth
// @Produce json
// @Success 200 {object} []dto.PlanResponse
// @Router /api/plans [get]
func (c *planController) List(ctx *fiber.Ctx) error {
	res, err := c.service.List(ctx.Context())
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Plans retrieved", res))
}

func (c *planController) Create(ctx *fiber.Ctx) error {
	var req dto.PlanCreateRequest
	if err := bindBody(ctx, &req); err != nil {
		return err
	}

	res, err := c.service.Create(ctx.Context(), &req)
	if err != nil {
		return err
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.CreatedResponse("Plan created", res))
}

func (c *planController) Update(ctx *fiber.Ctx) error {
	id, err := parseId(ctx)
	if err != nil {
		return err
	}
	var req dto.PlanUpdateRequest
	if err := bindBody(ctx, &req); err != nil {
		return err
	}

	res, err := c.service.Update(ctx.Context(), id, &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Plan updated", res))
}

func (c *planController) Delete(ctx *fiber.Ctx) error {
	id, err := parseId(ctx)
	if err != nil {
		return err
	}
	if err := c.service.Delete(ctx.Context(), id); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Plan deleted", nil))
}
