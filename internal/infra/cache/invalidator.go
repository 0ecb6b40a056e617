package cache

import (
	"context"

	"github.com/redis/go-redis/v9"
)

// カート表示のキャッシュを捨てる合図を流すチャンネル
const CartInvalidatedChannel = "cart:invalidated"

// Redis pub/subでユーザーIDを通知する。
// 購読側（UI配信層）が該当ユーザーのカート表示を作り直す。
type CartInvalidator struct {
	rdb *redis.Client
}

func NewCartInvalidator(rdb *redis.Client) *CartInvalidator {
	return &CartInvalidator{rdb: rdb}
}

func (i *CartInvalidator) CartChanged(ctx context.Context, userID string) error {
	return i.rdb.Publish(ctx, CartInvalidatedChannel, userID).Err()
}
