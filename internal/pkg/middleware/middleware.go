package middleware

import (
	"strings"

	"salon-booking-service/internal/pkg/errors"
	"salon-booking-service/internal/pkg/helpers"
	"salon-booking-service/internal/pkg/principal"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
)

const (
	LocalPrincipalID   = "principal_id"
	LocalPrincipalRole = "principal_role"
)

type Middleware struct {
	Log       *otelzap.Logger
	Principal principal.Lookup
}

func (m *Middleware) ValidateToken(ctx *fiber.Ctx) error {
	auth := ctx.Get(fiber.HeaderAuthorization)
	token, found := strings.CutPrefix(auth, "Bearer ")
	if !found || token == "" {
		m.Log.Ctx(ctx.UserContext()).Error("error get token from header")
		return helpers.RespError(ctx, m.Log, errors.UnauthorizedError("error get token from header"))
	}

	p, err := m.Principal.ValidateToken(ctx.UserContext(), token)
	if err != nil {
		m.Log.Ctx(ctx.UserContext()).Error("error validate token", zap.Error(err))
		if errors.IsRetryable(err) {
			return helpers.RespError(ctx, m.Log, err)
		}
		return helpers.RespError(ctx, m.Log, errors.UnauthorizedError("error validate token"))
	}

	ctx.Locals(LocalPrincipalID, p.UserID)
	ctx.Locals(LocalPrincipalRole, p.Role)

	return ctx.Next()
}

// RequireRole lets the request through only for the listed principal roles.
func (m *Middleware) RequireRole(roles ...string) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		role, _ := ctx.Locals(LocalPrincipalRole).(string)
		for _, r := range roles {
			if r == role {
				return ctx.Next()
			}
		}
		m.Log.Ctx(ctx.UserContext()).Warn("role not allowed", zap.String("role", role))
		return helpers.RespError(ctx, m.Log, errors.UnauthorizedError("role not allowed"))
	}
}

// WebhookCORS answers browser preflight requests on the webhook endpoint.
func WebhookCORS() fiber.Handler {
	return cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "POST,OPTIONS",
		AllowHeaders: "Content-Type,Authorization,X-Square-Hmacsha256-Signature",
	})
}
