package handler

import (
	"net/http"

	"storefront/internal/middleware"
	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /api/cartのHTTP
type CartHandler struct {
	uc *usecase.CartUsecase
}

// DI
func NewCartHandler(uc *usecase.CartUsecase) *CartHandler {
	return &CartHandler{uc: uc}
}

// フォーム送信とJSONの両方を受ける
type AddCartRequest struct {
	ProductID string `json:"product_id" form:"product_id"`
}

func (h *CartHandler) RegisterRoutes(api *echo.Group, session echo.MiddlewareFunc) {
	g := api.Group("/cart", session)

	g.GET("", h.getCart)
	g.POST("/items", h.addItem)
	g.DELETE("/items/:productId", h.removeItem)
	// HTMLフォームはDELETEを送れない
	g.POST("/items/:productId/delete", h.removeItem)
}

func (h *CartHandler) getCart(c echo.Context) error {
	out, err := h.uc.GetCart(c.Request().Context(), middleware.UserIDFrom(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *CartHandler) addItem(c echo.Context) error {
	var req AddCartRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if req.ProductID == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "product_id required"})
	}

	out, err := h.uc.AddItem(c.Request().Context(), middleware.UserIDFrom(c), req.ProductID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *CartHandler) removeItem(c echo.Context) error {
	out, err := h.uc.RemoveItem(c.Request().Context(), middleware.UserIDFrom(c), c.Param("productId"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}
