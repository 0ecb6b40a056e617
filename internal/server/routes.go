package server

import (
	"net/http"

	"storefront/internal/middleware"

	"github.com/labstack/echo/v4"
)

func RegisterRoutes(e *echo.Echo, opts Options, h Handlers) {
	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	session := middleware.AuthSession(opts.SessionSecret, opts.LoginURL)
	admin := middleware.AdminRoleGuard(opts.Admins, opts.LoginURL)

	api := e.Group("/api")
	h.Storefront.RegisterRoutes(api)
	h.Webhook.RegisterRoutes(api)
	h.Auth.RegisterRoutes(api, session)
	h.Cart.RegisterRoutes(api, session)
	h.Checkout.RegisterRoutes(api, session)
	h.Admin.RegisterRoutes(api, session, admin)
}
