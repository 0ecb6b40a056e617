package validator

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"storefront/internal/domain/model"
	"storefront/internal/usecase"
)

// 入力が不正
var ErrInvalidInput = errors.New("invalid input")

type catalogValidator struct{}

// Usecaseは interface を依存注入
func NewCatalogValidator() usecase.CatalogValidator {
	return &catalogValidator{}
}

// 商品フォームを検証（画像は展開済みで渡す）
func (v *catalogValidator) ValidateProduct(in usecase.ProductInput) error {
	if strings.TrimSpace(in.Name) == "" {
		return fieldErr("name", "is required")
	}
	if strings.TrimSpace(in.Description) == "" {
		return fieldErr("description", "is required")
	}
	if !model.ValidProductStatus(model.ProductStatus(in.Status)) {
		return fieldErr("status", "must be draft, published or archived")
	}
	if in.Price < 1 {
		return fieldErr("price", "must be at least 1")
	}
	if len(in.Images) == 0 {
		return fieldErr("images", "at least one image is required")
	}
	for _, img := range in.Images {
		if !isURLLike(img) {
			return fieldErr("images", "must be URLs")
		}
	}
	if !model.ValidCategory(model.Category(in.Category)) {
		return fieldErr("category", "must be men, women or kids")
	}
	return nil
}

func (v *catalogValidator) ValidateBanner(in usecase.BannerInput) error {
	if strings.TrimSpace(in.Title) == "" {
		return fieldErr("title", "is required")
	}
	if strings.TrimSpace(in.ImageString) == "" {
		return fieldErr("imageString", "is required")
	}
	return nil
}

func fieldErr(field, msg string) error {
	return fmt.Errorf("%w: %s %s", ErrInvalidInput, field, msg)
}

// アップロード先のURL（http/https）だけ許可
func isURLLike(s string) bool {
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
