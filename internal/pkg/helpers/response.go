package helpers

import (
	"net/http"

	"salon-booking-service/internal/pkg/errors"

	"github.com/gofiber/fiber/v2"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
)

type Response struct {
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

type ErrorResponse struct {
	ErrorCode string                 `json:"error_code"`
	Message   string                 `json:"message"`
	Details   map[string]interface{} `json:"details,omitempty"`
}

func RespSuccess(ctx *fiber.Ctx, log *otelzap.Logger, data interface{}, message string) error {
	return RespSuccessWithStatus(ctx, log, http.StatusOK, data, message)
}

func RespSuccessWithStatus(ctx *fiber.Ctx, log *otelzap.Logger, status int, data interface{}, message string) error {
	if err := ctx.Status(status).JSON(Response{Message: message, Data: data}); err != nil {
		log.Ctx(ctx.UserContext()).Error("error write success response", zap.Error(err))
		return err
	}
	return nil
}

// RespError writes err as {error_code, message}. Errors that are not a
// CustomError are reported as internal errors without leaking their text.
func RespError(ctx *fiber.Ctx, log *otelzap.Logger, err error) error {
	custom, ok := errors.As(err)
	if !ok {
		log.Ctx(ctx.UserContext()).Error("unexpected error", zap.Error(err))
		custom, _ = errors.As(errors.InternalServerError("internal server error"))
	}

	resp := ErrorResponse{
		ErrorCode: custom.Code,
		Message:   custom.Message,
		Details:   custom.Details,
	}
	if writeErr := ctx.Status(custom.HTTPCode).JSON(resp); writeErr != nil {
		log.Ctx(ctx.UserContext()).Error("error write error response", zap.Error(writeErr))
		return writeErr
	}
	return nil
}
