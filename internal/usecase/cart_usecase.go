package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"
)

// CartUsecaseはカートの追加・削除・表示。
// 更新はCartStore.Updateでまとめて行い、同時アクセスでも数量を失わない。
type CartUsecase struct {
	carts       repo.CartStore
	products    repo.ProductRepository
	invalidator CartInvalidator
	log         *slog.Logger
}

func NewCartUsecase(
	carts repo.CartStore,
	products repo.ProductRepository,
	invalidator CartInvalidator,
	log *slog.Logger,
) *CartUsecase {
	return &CartUsecase{
		carts:       carts,
		products:    products,
		invalidator: invalidator,
		log:         log,
	}
}

// バッグ画面・ナビバー用
type CartView struct {
	Items []model.CartItem `json:"items"`
	Total int64            `json:"total"`
	Count int64            `json:"count"`
}

func newCartView(c model.Cart) CartView {
	items := c.Items
	if items == nil {
		items = []model.CartItem{}
	}
	return CartView{Items: items, Total: c.Total(), Count: c.Count()}
}

// 無いカートは空で返す
func (u *CartUsecase) GetCart(ctx context.Context, userID string) (CartView, error) {
	if userID == "" {
		return CartView{}, unauthenticated()
	}

	cart, _, err := u.carts.Get(ctx, userID)
	if err != nil {
		return CartView{}, fmt.Errorf("get cart: %w", err)
	}
	return newCartView(cart), nil
}

// 同じ商品なら数量+1、無ければ今のカタログ値で1つ追加。
func (u *CartUsecase) AddItem(ctx context.Context, userID, productID string) (CartView, error) {
	if userID == "" {
		return CartView{}, unauthenticated()
	}

	p, err := u.products.FindByID(ctx, productID)
	if errors.Is(err, repo.ErrNotFound) {
		return CartView{}, productNotFound()
	}
	if err != nil {
		return CartView{}, fmt.Errorf("find product: %w", err)
	}

	cart, err := u.carts.Update(ctx, userID, func(c *model.Cart, _ bool) (bool, error) {
		c.Add(p)
		return true, nil
	})
	if err != nil {
		return CartView{}, u.mapStoreErr(err)
	}

	u.notify(ctx, userID)
	return newCartView(cart), nil
}

// カートや明細が無くてもエラーにしない。無いカートのキーは作らない。
func (u *CartUsecase) RemoveItem(ctx context.Context, userID, productID string) (CartView, error) {
	if userID == "" {
		return CartView{}, unauthenticated()
	}

	cart, err := u.carts.Update(ctx, userID, func(c *model.Cart, exists bool) (bool, error) {
		if !exists {
			return false, nil
		}
		return c.Remove(productID), nil
	})
	if err != nil {
		return CartView{}, u.mapStoreErr(err)
	}

	u.notify(ctx, userID)
	return newCartView(cart), nil
}

func (u *CartUsecase) mapStoreErr(err error) error {
	if errors.Is(err, repo.ErrCartConflict) {
		return cartConflict(err)
	}
	return fmt.Errorf("update cart: %w", err)
}

// 通知の失敗は操作を失敗にしない
func (u *CartUsecase) notify(ctx context.Context, userID string) {
	if u.invalidator == nil {
		return
	}
	if err := u.invalidator.CartChanged(ctx, userID); err != nil {
		u.log.WarnContext(ctx, "cart invalidation failed", slog.String("user_id", userID), slog.Any("err", err))
	}
}
