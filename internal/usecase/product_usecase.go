package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"

	"github.com/google/uuid"
)

// トップページのおすすめ件数
const featuredLimit = 3

// 管理画面の商品フォーム
type ProductInput struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Status      string   `json:"status"`
	Price       int64    `json:"price"`
	Images      []string `json:"images"`
	Category    string   `json:"category"`
	IsFeatured  bool     `json:"isFeatured"`
}

type BannerInput struct {
	Title       string `json:"title"`
	ImageString string `json:"imageString"`
}

// 入力チェックは外から差し込む
type CatalogValidator interface {
	ValidateProduct(in ProductInput) error
	ValidateBanner(in BannerInput) error
}

type ProductUsecase struct {
	productRepo repo.ProductRepository
	validator   CatalogValidator
}

// DI
func NewProductUsecase(productRepo repo.ProductRepository, validator CatalogValidator) *ProductUsecase {
	return &ProductUsecase{
		productRepo: productRepo,
		validator:   validator,
	}
}

// 公開商品の一覧。categoryが空なら全カテゴリ。
func (u *ProductUsecase) ListPublished(ctx context.Context, category string) ([]model.Product, error) {
	q := repo.ProductListQuery{}
	if category != "" {
		c := model.Category(category)
		if !model.ValidCategory(c) {
			return nil, invalid("invalid category")
		}
		q.Category = c
	}

	items, err := u.productRepo.ListPublished(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return items, nil
}

func (u *ProductUsecase) ListFeatured(ctx context.Context) ([]model.Product, error) {
	items, err := u.productRepo.ListPublished(ctx, repo.ProductListQuery{FeaturedOnly: true, Limit: featuredLimit})
	if err != nil {
		return nil, fmt.Errorf("list featured: %w", err)
	}
	return items, nil
}

// 公開中でなければ404
func (u *ProductUsecase) GetPublished(ctx context.Context, id string) (model.Product, error) {
	p, err := u.find(ctx, id)
	if err != nil {
		return model.Product{}, err
	}
	if p.Status != model.ProductStatusPublished {
		return model.Product{}, productNotFound()
	}
	return p, nil
}

// 管理画面：全ステータス、新しい順
func (u *ProductUsecase) AdminList(ctx context.Context) ([]model.Product, error) {
	items, err := u.productRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list all products: %w", err)
	}
	return items, nil
}

func (u *ProductUsecase) AdminGet(ctx context.Context, id string) (model.Product, error) {
	return u.find(ctx, id)
}

func (u *ProductUsecase) AdminCreate(ctx context.Context, in ProductInput) (model.Product, error) {
	in.Images = FlattenImages(in.Images)
	if err := u.validator.ValidateProduct(in); err != nil {
		return model.Product{}, invalid(err.Error())
	}

	p := applyProductInput(model.Product{ID: uuid.NewString()}, in)
	created, err := u.productRepo.Create(ctx, p)
	if err != nil {
		return model.Product{}, fmt.Errorf("create product: %w", err)
	}
	return created, nil
}

func (u *ProductUsecase) AdminUpdate(ctx context.Context, id string, in ProductInput) (model.Product, error) {
	in.Images = FlattenImages(in.Images)
	if err := u.validator.ValidateProduct(in); err != nil {
		return model.Product{}, invalid(err.Error())
	}

	cur, err := u.find(ctx, id)
	if err != nil {
		return model.Product{}, err
	}

	p := applyProductInput(cur, in)
	if err := u.productRepo.Update(ctx, p); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return model.Product{}, productNotFound()
		}
		return model.Product{}, fmt.Errorf("update product: %w", err)
	}
	return p, nil
}

// カートに入っている明細はスナップショットなので残る
func (u *ProductUsecase) AdminDelete(ctx context.Context, id string) error {
	err := u.productRepo.Delete(ctx, id)
	if errors.Is(err, repo.ErrNotFound) {
		return productNotFound()
	}
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	return nil
}

func (u *ProductUsecase) find(ctx context.Context, id string) (model.Product, error) {
	if strings.TrimSpace(id) == "" {
		return model.Product{}, productNotFound()
	}
	p, err := u.productRepo.FindByID(ctx, id)
	if errors.Is(err, repo.ErrNotFound) {
		return model.Product{}, productNotFound()
	}
	if err != nil {
		return model.Product{}, fmt.Errorf("find product: %w", err)
	}
	return p, nil
}

func applyProductInput(p model.Product, in ProductInput) model.Product {
	p.Name = strings.TrimSpace(in.Name)
	p.Description = in.Description
	p.Status = model.ProductStatus(in.Status)
	p.Price = in.Price
	p.Images = in.Images
	p.Category = model.Category(in.Category)
	p.IsFeatured = in.IsFeatured
	return p
}

// アップローダーは "a,b" のようにカンマ区切りで返すことがあるので展開する。
// 前後の空白を落とし、空要素は捨てる。
func FlattenImages(in []string) []string {
	out := make([]string, 0, len(in))
	for _, raw := range in {
		for _, s := range strings.Split(raw, ",") {
			if s = strings.TrimSpace(s); s != "" {
				out = append(out, s)
			}
		}
	}
	return out
}
