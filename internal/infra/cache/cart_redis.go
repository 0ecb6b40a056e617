package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"

	"github.com/redis/go-redis/v9"
)

// キーは cart-<userId>
func CartKey(userID string) string {
	return "cart-" + userID
}

type CartRedisStore struct {
	rdb        *redis.Client
	maxRetries int
}

// DI
func NewCartRedisStore(rdb *redis.Client, maxRetries int) *CartRedisStore {
	if maxRetries < 1 {
		maxRetries = 1
	}
	return &CartRedisStore{rdb: rdb, maxRetries: maxRetries}
}

func (s *CartRedisStore) Get(ctx context.Context, userID string) (model.Cart, bool, error) {
	return readCart(ctx, s.rdb, userID)
}

func (s *CartRedisStore) Set(ctx context.Context, cart model.Cart) error {
	b, err := json.Marshal(cart)
	if err != nil {
		return err
	}
	return s.rdb.Set(ctx, CartKey(cart.UserID), b, 0).Err()
}

func (s *CartRedisStore) Delete(ctx context.Context, userID string) error {
	return s.rdb.Del(ctx, CartKey(userID)).Err()
}

// WATCH → 読み取り → fn → MULTI/SET/EXEC。
// EXEC前に他の書き込みが入ったらTxFailedErrになるので、読み直してやり直す。
func (s *CartRedisStore) Update(ctx context.Context, userID string, fn repo.CartMutation) (model.Cart, error) {
	key := CartKey(userID)

	var result model.Cart
	txf := func(tx *redis.Tx) error {
		cart, exists, err := readCart(ctx, tx, userID)
		if err != nil {
			return err
		}

		write, err := fn(&cart, exists)
		if err != nil {
			return err
		}
		cart.UserID = userID
		result = cart
		if !write {
			return nil
		}

		b, err := json.Marshal(cart)
		if err != nil {
			return err
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, b, 0)
			return nil
		})
		return err
	}

	for i := 0; i < s.maxRetries; i++ {
		err := s.rdb.Watch(ctx, txf, key)
		if err == nil {
			return result, nil
		}
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		return model.Cart{}, err
	}
	return model.Cart{}, repo.ErrCartConflict
}

// *redis.Client と *redis.Tx の両方から読む
func readCart(ctx context.Context, c redis.Cmdable, userID string) (model.Cart, bool, error) {
	b, err := c.Get(ctx, CartKey(userID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return model.Cart{UserID: userID, Items: []model.CartItem{}}, false, nil
	}
	if err != nil {
		return model.Cart{}, false, err
	}

	var cart model.Cart
	if err := json.Unmarshal(b, &cart); err != nil {
		return model.Cart{}, false, fmt.Errorf("decode cart %s: %w", userID, err)
	}
	if cart.Items == nil {
		cart.Items = []model.CartItem{}
	}
	cart.UserID = userID
	return cart, true, nil
}
