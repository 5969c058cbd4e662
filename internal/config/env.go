package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// MoMoEnv holds MoMo gateway credentials and endpoints.
type MoMoEnv struct {
	PartnerCode string
	AccessKey   string
	SecretKey   string
	Endpoint    string
	RedirectURL string
	IPNURL      string
}

// ZaloPayEnv holds ZaloPay gateway credentials and endpoints.
type ZaloPayEnv struct {
	AppID       int
	Key1        string
	Key2        string
	Endpoint    string
	RedirectURL string
	CallbackURL string
}

type Env struct {
	AppAddr string
	GinMode string

	DBDSN string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	JWTSecret string

	// PendingTTL bounds how long a staged gateway payment may stay unclaimed.
	PendingTTL time.Duration

	NotifyChannel string

	MoMo    MoMoEnv
	ZaloPay ZaloPayEnv
}

func LoadEnv() Env {
	// .env is optional; deployments set variables directly.
	_ = godotenv.Load()

	pendingTTL := 30 * time.Minute
	if n := atoiDefault(os.Getenv("PENDING_BOOKING_TTL_MINUTES"), 0); n > 0 {
		pendingTTL = time.Duration(n) * time.Minute
	}

	return Env{
		AppAddr: getenv("APP_ADDR", ":8080"),
		GinMode: strings.TrimSpace(os.Getenv("GIN_MODE")),

		DBDSN: getenv("DB_DSN", ""),

		RedisAddr:     getenv("REDIS_ADDR", "127.0.0.1:6379"),
		RedisPassword: getenv("REDIS_PASSWORD", ""),
		RedisDB:       atoiDefault(os.Getenv("REDIS_DB"), 0),

		JWTSecret: getenv("JWT_SECRET", "super-secret-key-change-me"),

		PendingTTL: pendingTTL,

		NotifyChannel: getenv("NOTIFY_CHANNEL", "admin:booking-events"),

		MoMo: MoMoEnv{
			PartnerCode: getenv("MOMO_PARTNER_CODE", ""),
			AccessKey:   getenv("MOMO_ACCESS_KEY", ""),
			SecretKey:   getenv("MOMO_SECRET_KEY", ""),
			Endpoint:    getenv("MOMO_ENDPOINT", "https://test-payment.momo.vn"),
			RedirectURL: getenv("MOMO_REDIRECT_URL", "http://localhost:3000/payment/momo/return"),
			IPNURL:      getenv("MOMO_IPN_URL", ""),
		},
		ZaloPay: ZaloPayEnv{
			AppID:       atoiDefault(os.Getenv("ZALOPAY_APP_ID"), 2553),
			Key1:        getenv("ZALOPAY_KEY1", ""),
			Key2:        getenv("ZALOPAY_KEY2", ""),
			Endpoint:    getenv("ZALOPAY_ENDPOINT", "https://sb-openapi.zalopay.vn"),
			RedirectURL: getenv("ZALOPAY_REDIRECT_URL", "http://localhost:3000/payment/zalopay/return"),
			CallbackURL: getenv("ZALOPAY_CALLBACK_URL", ""),
		},
	}
}

func getenv(key, fallback string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	return v
}

func atoiDefault(s string, fallback int) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return fallback
	}
	return n
}
