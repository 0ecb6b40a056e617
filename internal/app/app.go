package app

import (
	"log/slog"

	"storefront/internal/config"
	"storefront/internal/handler"
	"storefront/internal/infra/cache"
	infraRepo "storefront/internal/infra/repository"
	"storefront/internal/server"
	"storefront/internal/usecase"
	"storefront/internal/validator"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// 起動時に一度だけ作るクライアント。閉じるのは呼び出し側。
type Deps struct {
	Config   config.Config
	Log      *slog.Logger
	DB       *gorm.DB
	Redis    *redis.Client
	Payments usecase.PaymentGateway
}

// Repository → Usecase → Handler を組み立ててEchoを返す
func NewServer(d Deps) *echo.Echo {
	cfg := d.Config

	//Repository（GORM / Redis）
	productRepo := infraRepo.NewProductGormRepository(d.DB)
	bannerRepo := infraRepo.NewBannerGormRepository(d.DB)
	userRepo := infraRepo.NewUserGormRepository(d.DB)
	orderRepo := infraRepo.NewOrderGormRepository(d.DB)
	eventRepo := infraRepo.NewProcessedEventGormRepository(d.DB)
	txm := infraRepo.NewTxManagerGorm(d.DB)

	carts := cache.NewCartRedisStore(d.Redis, cfg.CartMaxRetries)
	invalidator := cache.NewCartInvalidator(d.Redis)

	//Usecase
	catalogValidator := validator.NewCatalogValidator()
	cartUC := usecase.NewCartUsecase(carts, productRepo, invalidator, d.Log)
	checkoutUC := usecase.NewCheckoutUsecase(carts, d.Payments, usecase.CheckoutConfig{
		Currency:   cfg.Currency,
		SuccessURL: cfg.SuccessURL(),
		CancelURL:  cfg.CancelURL(),
	}, d.Log)
	webhookUC := usecase.NewWebhookUsecase(txm, eventRepo, carts, d.Payments, invalidator, d.Log)
	productUC := usecase.NewProductUsecase(productRepo, catalogValidator)
	bannerUC := usecase.NewBannerUsecase(bannerRepo, catalogValidator)
	userUC := usecase.NewUserUsecase(userRepo, usecase.NewRolePolicy(cfg.AdminEmails), d.Log)
	dashboardUC := usecase.NewDashboardUsecase(orderRepo, productRepo, userRepo)

	//Handler
	h := server.Handlers{
		Storefront: handler.NewStorefrontHandler(productUC, bannerUC),
		Cart:       handler.NewCartHandler(cartUC),
		Checkout:   handler.NewCheckoutHandler(checkoutUC, cfg.PublicURL),
		Webhook:    handler.NewWebhookHandler(webhookUC),
		Auth:       handler.NewAuthHandler(userUC, cfg.PublicURL),
		Admin:      handler.NewAdminHandler(productUC, bannerUC, dashboardUC),
	}

	return server.New(server.Options{
		Log:           d.Log,
		SessionSecret: cfg.SessionSecret,
		LoginURL:      cfg.PublicURL,
		Admins:        userUC,
	}, h)
}
