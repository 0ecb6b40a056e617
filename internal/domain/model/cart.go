package model

// Cartはユーザーごとに1つ、KVSにまるごと保存する。
// itemsは商品IDごとに最大1件。
type Cart struct {
	UserID string     `json:"userId"`
	Items  []CartItem `json:"items"`
}

// 同一商品は数量+1、無ければ追加時点のカタログ値で新規作成。
func (c *Cart) Add(p Product) {
	for i := range c.Items {
		if c.Items[i].ID == p.ID {
			c.Items[i].Quantity++
			return
		}
	}
	c.Items = append(c.Items, CartItem{
		ID:          p.ID,
		Name:        p.Name,
		ImageString: p.Thumbnail(),
		Price:       p.Price,
		Quantity:    1,
	})
}

// 明細ごと消す（数量0にはしない）。消したらtrue。
func (c *Cart) Remove(productID string) bool {
	kept := make([]CartItem, 0, len(c.Items))
	for _, it := range c.Items {
		if it.ID != productID {
			kept = append(kept, it)
		}
	}
	removed := len(kept) != len(c.Items)
	c.Items = kept
	return removed
}

func (c Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

// 合計（整数単位）
func (c Cart) Total() int64 {
	var total int64
	for _, it := range c.Items {
		total += it.Price * it.Quantity
	}
	return total
}

func (c Cart) Count() int64 {
	var n int64
	for _, it := range c.Items {
		n += it.Quantity
	}
	return n
}
