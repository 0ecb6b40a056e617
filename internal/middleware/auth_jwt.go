package middleware

import (
	"errors"
	"net/http"
	"strings"

	"storefront/internal/usecase"

	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
)

const (
	CtxIdentityKey = "identity" // usecase.Identity

	// 認証プロバイダが発行するセッションのcookie
	SessionCookieName = "session"
)

// 本人情報のクレーム
type SessionClaims struct {
	Email      string `json:"email"`
	GivenName  string `json:"given_name"`
	FamilyName string `json:"family_name"`
	Picture    string `json:"picture"`
	jwt.RegisteredClaims
}

// AuthSessionはセッショントークン（HS256）を検証する。
// 無い・不正ならエラーにせずloginURLへ303で戻す。
func AuthSession(secret, loginURL string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw := tokenFromRequest(c)
			if raw == "" {
				return c.Redirect(http.StatusSeeOther, loginURL)
			}

			//JWTをパースして検証する
			claims := &SessionClaims{}
			token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
				if t.Method != jwt.SigningMethodHS256 {
					return nil, errors.New("unexpected signing method")
				}
				return []byte(secret), nil
			})
			if err != nil || token == nil || !token.Valid {
				return c.Redirect(http.StatusSeeOther, loginURL)
			}
			if claims.Subject == "" {
				return c.Redirect(http.StatusSeeOther, loginURL)
			}

			//contextへ保存
			c.Set(CtxIdentityKey, usecase.Identity{
				ID:         claims.Subject,
				Email:      claims.Email,
				GivenName:  claims.GivenName,
				FamilyName: claims.FamilyName,
				Picture:    claims.Picture,
			})
			return next(c)
		}
	}
}

// Authorization: Bearer を優先、無ければcookie
func tokenFromRequest(c echo.Context) string {
	if authz := c.Request().Header.Get("Authorization"); authz != "" {
		parts := strings.SplitN(authz, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			return strings.TrimSpace(parts[1])
		}
		return ""
	}
	if ck, err := c.Cookie(SessionCookieName); err == nil {
		return strings.TrimSpace(ck.Value)
	}
	return ""
}

func IdentityFrom(c echo.Context) (usecase.Identity, bool) {
	id, ok := c.Get(CtxIdentityKey).(usecase.Identity)
	if !ok || id.ID == "" {
		return usecase.Identity{}, false
	}
	return id, true
}

// 未ログインなら空文字
func UserIDFrom(c echo.Context) string {
	id, _ := IdentityFrom(c)
	return id.ID
}

type errorResponse struct {
	Error string `json:"error"`
}

func errorJSON(msg string) errorResponse {
	return errorResponse{Error: msg}
}
