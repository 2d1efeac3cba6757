package handler

import (
	"context"

	"salon-booking-service/internal/module/terminal/models/request"
	"salon-booking-service/internal/module/terminal/models/response"
	"salon-booking-service/internal/module/terminal/signature"
	"salon-booking-service/internal/module/terminal/usecases"
	"salon-booking-service/internal/pkg/errors"
	"salon-booking-service/internal/pkg/helpers"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
)

type SignatureVerifier interface {
	Verify(ctx context.Context, signature string, body []byte) error
}

type TerminalHandler struct {
	Log       *otelzap.Logger
	Validator *validator.Validate
	Verifier  SignatureVerifier
	Usecase   usecases.Usecase
}

// Webhook answers the terminal provider. A 2xx tells the provider to stop
// delivering the event, so only failures worth retrying get a 5xx.
func (h *TerminalHandler) Webhook(ctx *fiber.Ctx) error {
	body := ctx.Body()
	if err := h.Verifier.Verify(ctx.UserContext(), ctx.Get(signature.Header), body); err != nil {
		return helpers.RespError(ctx, h.Log, err)
	}

	var event request.WebhookEvent
	if err := json.Unmarshal(body, &event); err != nil {
		h.Log.Ctx(ctx.UserContext()).Error("error parse webhook event", zap.Error(err))
		return h.ack(ctx, fiber.StatusBadRequest, response.WebhookAck{ErrorCode: errors.CodeBadRequest, Message: "error parse webhook event"})
	}

	ack, err := h.Usecase.Reconcile(ctx.UserContext(), event)
	if err != nil {
		h.Log.Ctx(ctx.UserContext()).Error("error reconcile webhook event", zap.Error(err), zap.String("event_id", event.EventID))
		status := fiber.StatusInternalServerError
		if custom, ok := errors.As(err); ok {
			status = custom.HTTPCode
		}
		return h.ack(ctx, status, ack)
	}

	return h.ack(ctx, fiber.StatusOK, ack)
}

func (h *TerminalHandler) ack(ctx *fiber.Ctx, status int, ack response.WebhookAck) error {
	if err := ctx.Status(status).JSON(ack); err != nil {
		h.Log.Ctx(ctx.UserContext()).Error("error write webhook ack", zap.Error(err))
		return err
	}
	return nil
}

func (h *TerminalHandler) RegisterCheckout(ctx *fiber.Ctx) error {
	var req request.RegisterCheckout
	if err := ctx.BodyParser(&req); err != nil {
		h.Log.Ctx(ctx.UserContext()).Error("error parse request", zap.Error(err))
		return helpers.RespError(ctx, h.Log, errors.BadRequest("error parse request"))
	}

	if err := h.Validator.Struct(req); err != nil {
		h.Log.Ctx(ctx.UserContext()).Error("error validate request", zap.Error(err))
		return helpers.RespError(ctx, h.Log, errors.BadRequest(err.Error()))
	}

	resp, err := h.Usecase.RegisterCheckout(ctx.UserContext(), req)
	if err != nil {
		h.Log.Ctx(ctx.UserContext()).Error("error register terminal checkout", zap.Error(err))
		return helpers.RespError(ctx, h.Log, err)
	}

	return helpers.RespSuccessWithStatus(ctx, h.Log, fiber.StatusCreated, resp, "success register terminal checkout")
}

// ConsumeReplay applies an event an operator sent back from the poison
// queue. Returning an error hands the message to the router's retry and
// poison middleware.
func (h *TerminalHandler) ConsumeReplay(msg *message.Message) error {
	var event request.WebhookEvent
	if err := json.Unmarshal(msg.Payload, &event); err != nil {
		h.Log.Ctx(msg.Context()).Error("error unmarshal replayed event", zap.Error(err), zap.String("message_uuid", msg.UUID))
		return err
	}

	ack, err := h.Usecase.Reconcile(msg.Context(), event)
	if err != nil {
		h.Log.Ctx(msg.Context()).Error("error reconcile replayed event", zap.Error(err), zap.String("event_id", event.EventID))
		return err
	}
	if !ack.Success {
		h.Log.Ctx(msg.Context()).Warn("replayed event parked again", zap.String("event_id", event.EventID), zap.String("error_code", ack.ErrorCode))
	}
	return nil
}
