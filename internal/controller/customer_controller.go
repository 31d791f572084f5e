package controller

import (
	"subcontrol-be/internal/dto"
	"subcontrol-be/internal/pkg/serverutils"
	"subcontrol-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ICustomerController interface {
	RegisterRoutes(r fiber.Router, jwtMiddleware fiber.Handler)
	List(ctx *fiber.Ctx) error
	Create(ctx *fiber.Ctx) error
	Update(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
}

type customerController struct {
	service service.ICustomerService
}

func NewCustomerController(service service.ICustomerService) ICustomerController {
	return &customerController{service: service}
}

func (c *customerController) RegisterRoutes(r fiber.Router, jwtMiddleware fiber.Handler) {
	h := r.Group("/customers", jwtMiddleware)
	h.Get("/", c.List)
	h.Post("/", c.Create)
	h.Put("/:id", c.Update)
	h.Delete("/:id", c.Delete)
}

func (c *customerController) List(ctx *fiber.Ctx) error {
	res, err := c.service.List(ctx.Context())
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Customers retrieved", res))
}

func (c *customerController) Create(ctx *fiber.Ctx) error {
	var req dto.CustomerCreateRequest
	if err := bindBody(ctx, &req); err != nil {
		return err
	}

	res, err := c.service.Create(ctx.Context(), &req)
	if err != nil {
		return err
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.CreatedResponse("Customer created", res))
}

func (c *customerController) Update(ctx *fiber.Ctx) error {
	id, err := parseId(ctx)
	if err != nil {
		return err
	}
	var req dto.CustomerUpdateRequest
	if err := bindBody(ctx, &req); err != nil {
		return err
	}

	res, err := c.service.Update(ctx.Context(), id, &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Customer updated", res))
}

// Delete leaves the customer's subscriptions in place; they show the customer as unknown afterwards.
func (c *customerController) Delete(ctx *fiber.Ctx) error {
	id, err := parseId(ctx)
	if err != nil {
		return err
	}
	if err := c.service.Delete(ctx.Context(), id); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Customer deleted", nil))
}
