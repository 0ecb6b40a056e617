package handler

import (
	"net/http"

	"storefront/internal/middleware"
	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
)

// ログイン後のユーザー登録
type AuthHandler struct {
	users     *usecase.UserUsecase
	publicURL string
}

func NewAuthHandler(users *usecase.UserUsecase, publicURL string) *AuthHandler {
	return &AuthHandler{users: users, publicURL: publicURL}
}

func (h *AuthHandler) RegisterRoutes(api *echo.Group, session echo.MiddlewareFunc) {
	api.GET("/auth/creation", h.creation, session)
}

// 認証プロバイダのコールバック後に呼ばれ、ストアのトップへ戻す
func (h *AuthHandler) creation(c echo.Context) error {
	id, ok := middleware.IdentityFrom(c)
	if !ok {
		return c.Redirect(http.StatusSeeOther, h.publicURL)
	}

	if _, err := h.users.EnsureUser(c.Request().Context(), id); err != nil {
		return writeError(c, err)
	}
	return c.Redirect(http.StatusSeeOther, h.publicURL)
}
