package handler

import (
	"net/http"

	"storefront/internal/middleware"
	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
)

// POST /api/checkout
type CheckoutHandler struct {
	uc *usecase.CheckoutUsecase
	// 空カートのときの戻り先
	bagURL string
}

func NewCheckoutHandler(uc *usecase.CheckoutUsecase, publicURL string) *CheckoutHandler {
	return &CheckoutHandler{uc: uc, bagURL: publicURL + "/bag"}
}

func (h *CheckoutHandler) RegisterRoutes(api *echo.Group, session echo.MiddlewareFunc) {
	api.POST("/checkout", h.checkout, session)
}

// 決済ページへ303
func (h *CheckoutHandler) checkout(c echo.Context) error {
	res, err := h.uc.Checkout(c.Request().Context(), middleware.UserIDFrom(c))
	if err != nil {
		return writeError(c, err)
	}
	if res.RedirectURL == "" {
		return c.Redirect(http.StatusSeeOther, h.bagURL)
	}
	return c.Redirect(http.StatusSeeOther, res.RedirectURL)
}
