package router

import (
	bookinghandler "salon-booking-service/internal/module/booking/handler"
	checkouthandler "salon-booking-service/internal/module/checkout/handler"
	grouphandler "salon-booking-service/internal/module/group/handler"
	terminalhandler "salon-booking-service/internal/module/terminal/handler"
	"salon-booking-service/internal/pkg/middleware"
	"salon-booking-service/internal/pkg/principal"

	"github.com/gofiber/fiber/v2"
)

func Initialize(
	app *fiber.App,
	handlerBooking *bookinghandler.BookingHandler,
	handlerGroup *grouphandler.GroupHandler,
	handlerCheckout *checkouthandler.CheckoutHandler,
	handlerTerminal *terminalhandler.TerminalHandler,
	m *middleware.Middleware,
) *fiber.App {

	// health check
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).SendString("OK")
	})

	Api := app.Group("/api")

	v1 := Api.Group("/v1")
	v1.Get("/availability", m.ValidateToken, handlerBooking.Availability)

	v1.Post("/group-bookings", m.ValidateToken, handlerGroup.CreateGroupBooking)
	v1.Get("/group-bookings/:id", m.ValidateToken, handlerGroup.GetGroupBooking)
	v1.Post("/group-bookings/:id/schedule", m.ValidateToken, m.RequireRole(principal.RoleStaff, principal.RoleAdmin), handlerGroup.Schedule)

	v1.Post("/checkout", m.ValidateToken, m.RequireRole(principal.RoleStaff, principal.RoleAdmin), handlerCheckout.Finalize)
	v1.Post("/terminal/checkouts", m.ValidateToken, m.RequireRole(principal.RoleStaff, principal.RoleAdmin), handlerTerminal.RegisterCheckout)

	// the terminal provider authenticates with the payload signature
	webhooks := app.Group("/webhooks", middleware.WebhookCORS())
	webhooks.Post("/terminal", handlerTerminal.Webhook)

	return app

}
