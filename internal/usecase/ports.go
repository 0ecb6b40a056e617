package usecase

import "context"

// 決済事業者へ送る明細。UnitAmountは最小通貨単位。
type CheckoutLineItem struct {
	Name       string
	ImageURL   string
	UnitAmount int64
	Quantity   int64
}

type CheckoutSessionRequest struct {
	UserID     string
	Currency   string
	LineItems  []CheckoutLineItem
	SuccessURL string
	CancelURL  string
}

type CheckoutSession struct {
	ID  string
	URL string
}

const EventCheckoutSessionCompleted = "checkout.session.completed"

// 署名検証済みのWebhookイベント。
// Sessionはcheckout.session.completedのときだけ入る。
type PaymentEvent struct {
	ID      string
	Type    string
	Session *CompletedSession
}

type CompletedSession struct {
	ID          string
	AmountTotal int64
	Status      string
	UserID      string // metadata.userId
}

// 外部の決済事業者
type PaymentGateway interface {
	CreateCheckoutSession(ctx context.Context, req CheckoutSessionRequest) (CheckoutSession, error)
	// 署名が合わなければエラー
	ParseWebhook(payload []byte, signature string) (PaymentEvent, error)
}

// カートを表示しているUIのキャッシュを捨てさせる
type CartInvalidator interface {
	CartChanged(ctx context.Context, userID string) error
}
