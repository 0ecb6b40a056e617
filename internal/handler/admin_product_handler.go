package handler

import (
	"net/http"

	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
)

// ProductRequest は管理画面の商品フォーム。
// imagesはアップローダーの戻り値（カンマ区切りを含む）をそのまま受ける。
type ProductRequest struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Status      string   `json:"status"`
	Price       int64    `json:"price"`
	Images      []string `json:"images"`
	Category    string   `json:"category"`
	IsFeatured  bool     `json:"isFeatured"`
}

func (r ProductRequest) input() usecase.ProductInput {
	return usecase.ProductInput{
		Name:        r.Name,
		Description: r.Description,
		Status:      r.Status,
		Price:       r.Price,
		Images:      r.Images,
		Category:    r.Category,
		IsFeatured:  r.IsFeatured,
	}
}

type BannerRequest struct {
	Title       string `json:"title"`
	ImageString string `json:"imageString"`
}

// /api/dashboard の商品・バナー・売上
type AdminHandler struct {
	products  *usecase.ProductUsecase
	banners   *usecase.BannerUsecase
	dashboard *usecase.DashboardUsecase
}

// DI
func NewAdminHandler(products *usecase.ProductUsecase, banners *usecase.BannerUsecase, dashboard *usecase.DashboardUsecase) *AdminHandler {
	return &AdminHandler{products: products, banners: banners, dashboard: dashboard}
}

// adminを登録（sessionの後にadminを通す）
func (h *AdminHandler) RegisterRoutes(api *echo.Group, session, admin echo.MiddlewareFunc) {
	g := api.Group("/dashboard", session, admin)

	g.GET("", h.overview)
	g.GET("/recent-sales", h.recentSales)
	g.GET("/revenue", h.revenue)

	g.GET("/products", h.listProducts)
	g.POST("/products", h.createProduct)
	g.GET("/products/:id", h.getProduct)
	g.PUT("/products/:id", h.updateProduct)
	g.DELETE("/products/:id", h.deleteProduct)

	g.GET("/banners", h.listBanners)
	g.POST("/banners", h.createBanner)
	g.DELETE("/banners/:id", h.deleteBanner)
}

func (h *AdminHandler) overview(c echo.Context) error {
	out, err := h.dashboard.Overview(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *AdminHandler) recentSales(c echo.Context) error {
	out, err := h.dashboard.RecentSales(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *AdminHandler) revenue(c echo.Context) error {
	out, err := h.dashboard.RevenueChart(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *AdminHandler) listProducts(c echo.Context) error {
	items, err := h.products.AdminList(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, items)
}

func (h *AdminHandler) getProduct(c echo.Context) error {
	p, err := h.products.AdminGet(c.Request().Context(), c.Param("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, p)
}

func (h *AdminHandler) createProduct(c echo.Context) error {
	var req ProductRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	p, err := h.products.AdminCreate(c.Request().Context(), req.input())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, p)
}

func (h *AdminHandler) updateProduct(c echo.Context) error {
	var req ProductRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	p, err := h.products.AdminUpdate(c.Request().Context(), c.Param("id"), req.input())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, p)
}

func (h *AdminHandler) deleteProduct(c echo.Context) error {
	if err := h.products.AdminDelete(c.Request().Context(), c.Param("id")); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, SuccessResponse{Message: "deleted"})
}

func (h *AdminHandler) listBanners(c echo.Context) error {
	items, err := h.banners.List(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, items)
}

func (h *AdminHandler) createBanner(c echo.Context) error {
	var req BannerRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	b, err := h.banners.Create(c.Request().Context(), usecase.BannerInput{Title: req.Title, ImageString: req.ImageString})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, b)
}

func (h *AdminHandler) deleteBanner(c echo.Context) error {
	if err := h.banners.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, SuccessResponse{Message: "deleted"})
}
