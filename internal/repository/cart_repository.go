package repository

import (
	"context"
	"errors"

	"storefront/internal/domain/model"
)

// 楽観ロックのリトライを使い切った
var ErrCartConflict = errors.New("cart update conflict")

// Updateに渡す関数。書き戻すならtrueを返す。
type CartMutation func(cart *model.Cart, exists bool) (bool, error)

// ユーザーごとのカートをKVSに置く。
// 無いカートと空のカートはどちらも「空」として扱う。
type CartStore interface {
	// 無ければexists=false
	Get(ctx context.Context, userID string) (cart model.Cart, exists bool, err error)
	Set(ctx context.Context, cart model.Cart) error
	Delete(ctx context.Context, userID string) error

	// 読み取り→変更→書き戻しをアトミックに行う。
	// 競合したら読み直してfnを再実行する。
	Update(ctx context.Context, userID string, fn CartMutation) (model.Cart, error)
}
