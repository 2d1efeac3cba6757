package handler

import (
	"salon-booking-service/internal/module/checkout/models/request"
	"salon-booking-service/internal/module/checkout/usecases"
	"salon-booking-service/internal/pkg/errors"
	"salon-booking-service/internal/pkg/helpers"
	"salon-booking-service/internal/pkg/middleware"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
)

type CheckoutHandler struct {
	Log       *otelzap.Logger
	Validator *validator.Validate
	Usecase   usecases.Usecase
}

func (h *CheckoutHandler) Finalize(ctx *fiber.Ctx) error {
	var req request.Finalize
	if err := ctx.BodyParser(&req); err != nil {
		h.Log.Ctx(ctx.UserContext()).Error("error parse request", zap.Error(err))
		return helpers.RespError(ctx, h.Log, errors.BadRequest("error parse request"))
	}

	// the POS operator rings the sale up unless the cart names someone else
	if req.StaffID == "" {
		req.StaffID, _ = ctx.Locals(middleware.LocalPrincipalID).(string)
	}
	if req.IdempotencyKey == "" {
		req.IdempotencyKey = ctx.Get("Idempotency-Key")
	}

	if err := h.Validator.Struct(req); err != nil {
		h.Log.Ctx(ctx.UserContext()).Error("error validate request", zap.Error(err))
		return helpers.RespError(ctx, h.Log, errors.BadRequest(err.Error()))
	}

	resp, err := h.Usecase.Finalize(ctx.UserContext(), req)
	if err != nil {
		h.Log.Ctx(ctx.UserContext()).Error("error finalize transaction", zap.Error(err))
		return helpers.RespError(ctx, h.Log, err)
	}

	return helpers.RespSuccess(ctx, h.Log, resp, "success finalize transaction")
}
