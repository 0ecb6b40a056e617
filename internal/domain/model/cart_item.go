package model

// 名前・価格・画像は追加時点のスナップショット。
// 決済時に価格は再検証しない。
type CartItem struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	ImageString string `json:"imageString"`
	Price       int64  `json:"price"`
	Quantity    int64  `json:"quantity"`
}
