package middleware

import (
	"context"
	"errors"
	"net/http"

	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
)

// 管理者判定（UserUsecase.RequireAdmin）
type AdminChecker interface {
	RequireAdmin(ctx context.Context, userID string) error
}

// AuthSessionの後に置く。ADMINでなければloginURLへ戻す。
func AdminRoleGuard(checker AdminChecker, loginURL string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			err := checker.RequireAdmin(c.Request().Context(), UserIDFrom(c))
			if errors.Is(err, usecase.ErrUnauthenticated) || errors.Is(err, usecase.ErrForbidden) {
				return c.Redirect(http.StatusSeeOther, loginURL)
			}
			if err != nil {
				return c.JSON(http.StatusInternalServerError, errorJSON("internal error"))
			}

			return next(c)
		}
	}
}
