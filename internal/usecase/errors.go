package usecase

import (
	"errors"
	"fmt"
	"net/http"
)

// errors.Isで判定する種類
var (
	ErrUnauthenticated  = errors.New("unauthenticated")
	ErrForbidden        = errors.New("forbidden")
	ErrProductNotFound  = errors.New("product not found")
	ErrNotFound         = errors.New("not found")
	ErrValidation       = errors.New("validation failed")
	ErrInvalidSignature = errors.New("invalid signature")
	ErrPaymentSession   = errors.New("payment session error")
	ErrCartConflict     = errors.New("cart update conflict")
)

// HTTPErrorはハンドラにそのまま返せるエラー。
// Errは種類（上の変数）と原因を持つ。
type HTTPError struct {
	Status  int
	Message string
	Err     error
}

func (e *HTTPError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%d: %s: %v", e.Status, e.Message, e.Err)
	}
	return fmt.Sprintf("%d: %s", e.Status, e.Message)
}

func (e *HTTPError) Unwrap() error {
	return e.Err
}

func NewHTTPError(status int, message string) error {
	return &HTTPError{
		Status:  status,
		Message: message,
	}
}

func AsHTTPError(err error) (*HTTPError, bool) {
	var he *HTTPError
	ok := errors.As(err, &he)
	return he, ok
}

func unauthenticated() error {
	return &HTTPError{Status: http.StatusUnauthorized, Message: "unauthenticated", Err: ErrUnauthenticated}
}

func forbidden() error {
	return &HTTPError{Status: http.StatusForbidden, Message: "forbidden", Err: ErrForbidden}
}

func productNotFound() error {
	return &HTTPError{Status: http.StatusNotFound, Message: "product not found", Err: ErrProductNotFound}
}

func notFound(what string) error {
	return &HTTPError{Status: http.StatusNotFound, Message: what + " not found", Err: ErrNotFound}
}

func invalid(message string) error {
	return &HTTPError{Status: http.StatusBadRequest, Message: message, Err: ErrValidation}
}

func invalidSignature(cause error) error {
	return &HTTPError{
		Status:  http.StatusBadRequest,
		Message: "invalid signature",
		Err:     fmt.Errorf("%w: %v", ErrInvalidSignature, cause),
	}
}

func paymentSession(cause error) error {
	return &HTTPError{
		Status:  http.StatusBadGateway,
		Message: "payment session error",
		Err:     fmt.Errorf("%w: %v", ErrPaymentSession, cause),
	}
}

func cartConflict(cause error) error {
	return &HTTPError{
		Status:  http.StatusConflict,
		Message: "cart was updated concurrently, please retry",
		Err:     fmt.Errorf("%w: %v", ErrCartConflict, cause),
	}
}
