package handler

import (
	"time"

	"salon-booking-service/internal/module/booking/models/request"
	"salon-booking-service/internal/module/booking/usecases"
	"salon-booking-service/internal/pkg/errors"
	"salon-booking-service/internal/pkg/helpers"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
)

type BookingHandler struct {
	Log       *otelzap.Logger
	Validator *validator.Validate
	Usecase   usecases.Usecase
}

func (h *BookingHandler) Availability(ctx *fiber.Ctx) error {
	var req request.Availability
	if err := ctx.QueryParser(&req); err != nil {
		h.Log.Ctx(ctx.UserContext()).Error("error parse request", zap.Error(err))
		return helpers.RespError(ctx, h.Log, errors.BadRequest("error parse request"))
	}

	if err := h.Validator.Struct(req); err != nil {
		h.Log.Ctx(ctx.UserContext()).Error("error validate request", zap.Error(err))
		return helpers.RespError(ctx, h.Log, errors.BadRequest(err.Error()))
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return helpers.RespError(ctx, h.Log, errors.BadRequest("date must be YYYY-MM-DD"))
	}

	var staffID *string
	if req.StaffID != "" {
		staffID = &req.StaffID
	}

	resp, err := h.Usecase.Availability(ctx.UserContext(), staffID, date)
	if err != nil {
		h.Log.Ctx(ctx.UserContext()).Error("error availability", zap.Error(err))
		return helpers.RespError(ctx, h.Log, err)
	}

	return helpers.RespSuccess(ctx, h.Log, resp, "success get availability")
}
