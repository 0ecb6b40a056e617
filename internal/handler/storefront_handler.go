package handler

import (
	"net/http"

	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
)

// 公開API（ログイン不要）
type StorefrontHandler struct {
	products *usecase.ProductUsecase
	banners  *usecase.BannerUsecase
}

// DI
func NewStorefrontHandler(products *usecase.ProductUsecase, banners *usecase.BannerUsecase) *StorefrontHandler {
	return &StorefrontHandler{products: products, banners: banners}
}

func (h *StorefrontHandler) RegisterRoutes(api *echo.Group) {
	api.GET("/products", h.list)
	api.GET("/products/featured", h.featured)
	api.GET("/products/:id", h.detail)
	api.GET("/banners", h.listBanners)
}

// ?category=men|women|kids（省略で全件）
func (h *StorefrontHandler) list(c echo.Context) error {
	items, err := h.products.ListPublished(c.Request().Context(), c.QueryParam("category"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, items)
}

func (h *StorefrontHandler) featured(c echo.Context) error {
	items, err := h.products.ListFeatured(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, items)
}

func (h *StorefrontHandler) detail(c echo.Context) error {
	p, err := h.products.GetPublished(c.Request().Context(), c.Param("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, p)
}

func (h *StorefrontHandler) listBanners(c echo.Context) error {
	items, err := h.banners.List(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, items)
}
