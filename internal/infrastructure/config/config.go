// Package config reads the service settings from the environment.
package config

import (
	"evaluation_orders/internal/infrastructure/payments"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type StorageBackend string

const (
	StorageS3     StorageBackend = "s3"
	StoragePebble StorageBackend = "pebble"
)

type Config struct {
	Env      string
	LogLevel string
	Port     string

	AWSRegion        string
	DynamoDBEndpoint string
	OrdersTable      string
	QuotesTable      string
	PaymentsTable    string

	StorageBackend     StorageBackend
	S3Bucket           string
	S3Endpoint         string
	PublicFilesBaseURL string
	PebbleDir          string

	KafkaBrokers            []string
	KafkaNotificationsTopic string
	KafkaAnalyticsTopic     string

	AbandonedCartDelay   time.Duration
	SessionIdleTTL       time.Duration
	ServicesSyncInterval time.Duration
	UploadConcurrency    int
	MaxUploadBytes       int64

	MercadoPagoAccessToken string
	PaymentGatewayMock     bool
}

// Load reads every setting, falling back to local-friendly defaults.
func Load() (Config, error) {
	cfg := Config{
		Env:      getenvDefault("APP_ENV", "production"),
		LogLevel: getenvDefault("LOG_LEVEL", "info"),
		Port:     getenvDefault("PORT", "8080"),

		AWSRegion:        getenvDefault("AWS_REGION", "us-east-1"),
		DynamoDBEndpoint: os.Getenv("DYNAMODB_ENDPOINT"),
		OrdersTable:      getenvDefault("ORDERS_TABLE", "orders"),
		QuotesTable:      getenvDefault("QUOTES_TABLE", "quotes"),
		PaymentsTable:    getenvDefault("PAYMENTS_TABLE", "billing_payments"),

		StorageBackend:     StorageBackend(strings.ToLower(getenvDefault("STORAGE_BACKEND", string(StoragePebble)))),
		S3Bucket:           getenvDefault("S3_BUCKET", "order-documents"),
		S3Endpoint:         os.Getenv("S3_ENDPOINT"),
		PublicFilesBaseURL: strings.TrimRight(os.Getenv("PUBLIC_FILES_BASE_URL"), "/"),
		PebbleDir:          getenvDefault("PEBBLE_DIR", "./data/documents"),

		KafkaBrokers:            splitList(os.Getenv("KAFKA_BROKERS")),
		KafkaNotificationsTopic: getenvDefault("KAFKA_NOTIFICATIONS_TOPIC", "order-notifications"),
		KafkaAnalyticsTopic:     getenvDefault("KAFKA_ANALYTICS_TOPIC", "order-analytics"),

		MercadoPagoAccessToken: os.Getenv("MERCADOPAGO_ACCESS_TOKEN"),
		PaymentGatewayMock:     payments.MockEnabled(os.Getenv("PAYMENT_GATEWAY_MOCK"), os.Getenv("MERCADOPAGO_MOCK")),
	}

	var err error
	if cfg.AbandonedCartDelay, err = getenvDuration("ABANDONED_CART_DELAY", 30*time.Minute); err != nil {
		return Config{}, err
	}
	// Zero lets the checkout registry derive it from the abandoned-cart delay.
	if cfg.SessionIdleTTL, err = getenvDuration("SESSION_IDLE_TTL", 0); err != nil {
		return Config{}, err
	}
	if cfg.ServicesSyncInterval, err = getenvDuration("SERVICES_SYNC_INTERVAL", 2*time.Second); err != nil {
		return Config{}, err
	}
	if cfg.UploadConcurrency, err = getenvInt("UPLOAD_CONCURRENCY", 3); err != nil {
		return Config{}, err
	}
	maxBytes, err := getenvInt("MAX_UPLOAD_BYTES", 25<<20)
	if err != nil {
		return Config{}, err
	}
	cfg.MaxUploadBytes = int64(maxBytes)

	switch cfg.StorageBackend {
	case StorageS3, StoragePebble:
	default:
		return Config{}, fmt.Errorf("STORAGE_BACKEND must be s3 or pebble, got %q", cfg.StorageBackend)
	}
	return cfg, nil
}

func getenvDefault(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func getenvDuration(key string, def time.Duration) (time.Duration, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("%s must be a positive duration, got %q", key, v)
	}
	return d, nil
}

func getenvInt(key string, def int) (int, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("%s must be a positive integer, got %q", key, v)
	}
	return n, nil
}

func splitList(raw string) []string {
	var out []string
	for _, p := range strings.Split(raw, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
