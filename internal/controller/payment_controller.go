package controller

import (
	"subcontrol-be/internal/dto"
	"subcontrol-be/internal/pkg/serverutils"
	"subcontrol-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IPaymentController interface {
	RegisterRoutes(r fiber.Router, jwtMiddleware fiber.Handler)
	List(ctx *fiber.Ctx) error
	Record(ctx *fiber.Ctx) error
}

type paymentController struct {
	service service.IPaymentService
}

func NewPaymentController(service service.IPaymentService) IPaymentController {
	return &paymentController{service: service}
}

func (c *paymentController) RegisterRoutes(r fiber.Router, jwtMiddleware fiber.Handler) {
	h := r.Group("/payments", jwtMiddleware)
	h.Get("/", c.List)
	h.Post("/", c.Record)
}

func (c *paymentController) List(ctx *fiber.Ctx) error {
	res, err := c.service.List(ctx.Context())
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Payments retrieved", res))
}

// Record stores a payment and renews its subscription
// @Summary Record payment
// @Description Amount defaults to the plan price. The Idempotency-Key header is used when the body carries no key.
// @Tags Payments
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.PaymentCreateRequest true "Payment"
// @Success 201 {object} dto.PaymentRecordResponse
// @Success 200 {object} dto.PaymentRecordResponse "replayed"
// @Router /api/payments [post]
func (c *paymentController) Record(ctx *fiber.Ctx) error {
	var req dto.PaymentCreateRequest
	if err := bindBody(ctx, &req); err != nil {
		return err
	}
	if req.IdempotencyKey == "" {
		req.IdempotencyKey = ctx.Get("Idempotency-Key")
	}

	res, err := c.service.Record(ctx.Context(), &req)
	if err != nil {
		return err
	}
	if res.Replayed {
		return ctx.JSON(serverutils.SuccessResponse("Payment already recorded", res))
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.CreatedResponse("Payment recorded", res))
}
