package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Configはアプリ全体の設定。起動時に一度だけ読む。
type Config struct {
	Port  string // サーバーポート（8080）
	GoEnv string // development/production

	LogLevel string

	DatabaseURL string // 無ければPOSTGRES_*から組み立てる
	RedisURL    string

	StripeSecretKey     string
	StripeWebhookSecret string
	Currency            string // 通貨は1つだけ（usd）

	SessionSecret string // 外部IdPのセッショントークン署名シークレット

	PublicURL   string   // ストアのURL。決済後のリダイレクト先の基点
	AdminEmails []string // ADMINロールを付与するメール

	CartMaxRetries int
}

// 決済成功時の戻り先
func (c Config) SuccessURL() string {
	return c.PublicURL + "/payment/success"
}

// 決済キャンセル時の戻り先
func (c Config) CancelURL() string {
	return c.PublicURL + "/payment/cancel"
}

func (c Config) IsProduction() bool {
	return c.GoEnv == "production"
}

// Loadは環境変数
func Load() (Config, error) {
	retries, err := atoiDefault("CART_MAX_RETRIES", 5)
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		Port:  os.Getenv("PORT"),
		GoEnv: getenv("GO_ENV", "development"),

		LogLevel: getenv("LOG_LEVEL", "info"),

		DatabaseURL: os.Getenv("DATABASE_URL"),
		RedisURL:    os.Getenv("REDIS_URL"),

		StripeSecretKey:     os.Getenv("STRIPE_SECRET_KEY"),
		StripeWebhookSecret: os.Getenv("STRIPE_WEBHOOK_SECRET"),
		Currency:            strings.ToLower(getenv("CURRENCY", "usd")),

		SessionSecret: os.Getenv("SESSION_SECRET"),

		PublicURL:   strings.TrimRight(os.Getenv("PUBLIC_URL"), "/"),
		AdminEmails: splitList(os.Getenv("ADMIN_EMAILS")),

		CartMaxRetries: retries,
	}

	if cfg.DatabaseURL == "" {
		dsn, err := postgresDSNFromParts()
		if err != nil {
			return Config{}, err
		}
		cfg.DatabaseURL = dsn
	}

	//必須チェック
	if cfg.Port == "" {
		return Config{}, fmt.Errorf("PORT is required")
	}
	if cfg.RedisURL == "" {
		return Config{}, fmt.Errorf("REDIS_URL is required")
	}
	if cfg.StripeSecretKey == "" {
		return Config{}, fmt.Errorf("STRIPE_SECRET_KEY is required")
	}
	if cfg.StripeWebhookSecret == "" {
		return Config{}, fmt.Errorf("STRIPE_WEBHOOK_SECRET is required")
	}
	if cfg.SessionSecret == "" {
		return Config{}, fmt.Errorf("SESSION_SECRET is required")
	}
	if cfg.PublicURL == "" {
		return Config{}, fmt.Errorf("PUBLIC_URL is required")
	}
	if cfg.CartMaxRetries < 1 {
		return Config{}, fmt.Errorf("CART_MAX_RETRIES must be >= 1")
	}

	return cfg, nil
}

// DATABASE_URLが無いときはPOSTGRES_*を全部要求する
func postgresDSNFromParts() (string, error) {
	keys := []string{"POSTGRES_HOST", "POSTGRES_USER", "POSTGRES_PASSWORD", "POSTGRES_DB"}
	for _, k := range keys {
		if os.Getenv(k) == "" {
			return "", fmt.Errorf("DATABASE_URL or %s is required", k)
		}
	}
	port, err := atoiDefault("POSTGRES_PORT", 5432)
	if err != nil {
		return "", err
	}

	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		os.Getenv("POSTGRES_HOST"),
		port,
		os.Getenv("POSTGRES_USER"),
		os.Getenv("POSTGRES_PASSWORD"),
		os.Getenv("POSTGRES_DB"),
		getenv("POSTGRES_SSLMODE", "disable"),
	), nil
}

func getenv(key string, def string) string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return v
}

func atoiDefault(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s must be number: %w", key, err)
	}
	return i, nil
}

func splitList(v string) []string {
	out := []string{}
	for _, s := range strings.Split(v, ",") {
		s = strings.ToLower(strings.TrimSpace(s))
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}
