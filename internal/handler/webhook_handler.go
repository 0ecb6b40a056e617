package handler

import (
	"io"
	"net/http"

	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
)

const (
	// Stripeのイベントは数KB
	maxWebhookBody = 64 << 10

	stripeSignatureHeader = "Stripe-Signature"
)

type WebhookResponse struct {
	Received  bool `json:"received"`
	Duplicate bool `json:"duplicate,omitempty"`
}

// POST /api/stripe/webhook。認証は署名だけ。
type WebhookHandler struct {
	uc *usecase.WebhookUsecase
}

func NewWebhookHandler(uc *usecase.WebhookUsecase) *WebhookHandler {
	return &WebhookHandler{uc: uc}
}

func (h *WebhookHandler) RegisterRoutes(api *echo.Group) {
	api.POST("/stripe/webhook", h.receive)
}

func (h *WebhookHandler) receive(c echo.Context) error {
	// 署名は生のbytesで検証するのでBindしない
	body, err := io.ReadAll(io.LimitReader(c.Request().Body, maxWebhookBody+1))
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if len(body) > maxWebhookBody {
		return c.JSON(http.StatusRequestEntityTooLarge, ErrorResponse{Error: "body too large"})
	}

	res, err := h.uc.HandleEvent(c.Request().Context(), body, c.Request().Header.Get(stripeSignatureHeader))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, WebhookResponse{Received: true, Duplicate: res.Duplicate})
}
