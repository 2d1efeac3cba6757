package handler

import (
	"net/http"

	"salon-booking-service/internal/module/group/models/request"
	"salon-booking-service/internal/module/group/usecases"
	"salon-booking-service/internal/pkg/errors"
	"salon-booking-service/internal/pkg/helpers"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
)

type GroupHandler struct {
	Log       *otelzap.Logger
	Validator *validator.Validate
	Usecase   usecases.Usecase
}

func (h *GroupHandler) CreateGroupBooking(ctx *fiber.Ctx) error {
	var req request.CreateGroupBooking
	if err := ctx.BodyParser(&req); err != nil {
		h.Log.Ctx(ctx.UserContext()).Error("error parse request", zap.Error(err))
		return helpers.RespError(ctx, h.Log, errors.BadRequest("error parse request"))
	}

	if err := h.Validator.Struct(req); err != nil {
		h.Log.Ctx(ctx.UserContext()).Error("error validate request", zap.Error(err))
		return helpers.RespError(ctx, h.Log, errors.BadRequest(err.Error()))
	}

	resp, err := h.Usecase.CreateGroupBooking(ctx.UserContext(), req)
	if err != nil {
		h.Log.Ctx(ctx.UserContext()).Error("error create group booking", zap.Error(err))
		return helpers.RespError(ctx, h.Log, err)
	}

	return helpers.RespSuccessWithStatus(ctx, h.Log, http.StatusCreated, resp, "success create group booking")
}

func (h *GroupHandler) GetGroupBooking(ctx *fiber.Ctx) error {
	resp, err := h.Usecase.GetGroupBooking(ctx.UserContext(), ctx.Params("id"))
	if err != nil {
		h.Log.Ctx(ctx.UserContext()).Error("error get group booking", zap.Error(err))
		return helpers.RespError(ctx, h.Log, err)
	}

	return helpers.RespSuccess(ctx, h.Log, resp, "success get group booking")
}

func (h *GroupHandler) Schedule(ctx *fiber.Ctx) error {
	var req request.ScheduleGroupBooking
	if len(ctx.Body()) > 0 {
		if err := ctx.BodyParser(&req); err != nil {
			h.Log.Ctx(ctx.UserContext()).Error("error parse request", zap.Error(err))
			return helpers.RespError(ctx, h.Log, errors.BadRequest("error parse request"))
		}
	}

	if err := h.Validator.Struct(req); err != nil {
		h.Log.Ctx(ctx.UserContext()).Error("error validate request", zap.Error(err))
		return helpers.RespError(ctx, h.Log, errors.BadRequest(err.Error()))
	}

	resp, err := h.Usecase.Schedule(ctx.UserContext(), ctx.Params("id"), req)
	if err != nil {
		h.Log.Ctx(ctx.UserContext()).Error("error schedule group booking", zap.Error(err), zap.String("group_booking_id", ctx.Params("id")))
		return helpers.RespError(ctx, h.Log, err)
	}

	return helpers.RespSuccess(ctx, h.Log, resp, "success schedule group booking")
}
