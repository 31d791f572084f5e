package controller

import (
	"subcontrol-be/internal/dto"
	"subcontrol-be/internal/pkg/serverutils"
	"subcontrol-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ISubscriptionController interface {
	RegisterRoutes(r fiber.Router, jwtMiddleware fiber.Handler)
	List(ctx *fiber.Ctx) error
	ListPayable(ctx *fiber.Ctx) error
	Create(ctx *fiber.Ctx) error
	Update(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
	ListPayments(ctx *fiber.Ctx) error
}

type subscriptionController struct {
	service service.ISubscriptionService
}

func NewSubscriptionController(service service.ISubscriptionService) ISubscriptionController {
	return &subscriptionController{service: service}
}

func (c *subscriptionController) RegisterRoutes(r fiber.Router, jwtMiddleware fiber.Handler) {
	h := r.Group("/subscriptions", jwtMiddleware)
	h.Get("/", c.List)
	// before /:id so "payable" is not parsed as an id
	h.Get("/payable", c.ListPayable)
	h.Post("/", c.Create)
	h.Put("/:id", c.Update)
	h.Delete("/:id", c.Delete)
	h.Get("/:id/payments", c.ListPayments)
}

// List returns every subscription with its status reconciled against today
// @Summary List subscriptions
// @Tags Subscriptions
// @Security BearerAuth
// @Produce json
// @Success 200 {object} []dto.SubscriptionResponse
// @Router /api/subscriptions [get]
func (c *subscriptionController) List(ctx *fiber.Ctx) error {
	res, err := c.service.List(ctx.Context())
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Subscriptions retrieved", res))
}

func (c *subscriptionController) ListPayable(ctx *fiber.Ctx) error {
	res, err := c.service.ListPayable(ctx.Context())
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Payable subscriptions retrieved", res))
}

func (c *subscriptionController) Create(ctx *fiber.Ctx) error {
	var req dto.SubscriptionCreateRequest
	if err := bindBody(ctx, &req); err != nil {
		return err
	}

	res, err := c.service.Create(ctx.Context(), &req)
	if err != nil {
		return err
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.CreatedResponse("Subscription created", res))
}

func (c *subscriptionController) Update(ctx *fiber.Ctx) error {
	id, err := parseId(ctx)
	if err != nil {
		return err
	}
	var req dto.SubscriptionUpdateRequest
	if err := bindBody(ctx, &req); err != nil {
		return err
	}

	res, err := c.service.Update(ctx.Context(), id, &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Subscription updated", res))
}

func (c *subscriptionController) Delete(ctx *fiber.Ctx) error {
	id, err := parseId(ctx)
	if err != nil {
		return err
	}
	if err := c.service.Delete(ctx.Context(), id); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Subscription deleted", nil))
}

func (c *subscriptionController) ListPayments(ctx *fiber.Ctx) error {
	id, err := parseId(ctx)
	if err != nil {
		return err
	}
	res, err := c.service.ListPayments(ctx.Context(), id)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Payments retrieved", res))
}
