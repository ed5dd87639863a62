package routes

import (
	"context"
	"evaluation_orders/internal/adapter/http/handlers"
	"evaluation_orders/internal/adapter/persistence/repository"
	"evaluation_orders/internal/infrastructure/config"
	"evaluation_orders/internal/infrastructure/database"
	"evaluation_orders/internal/infrastructure/messaging"
	"evaluation_orders/internal/infrastructure/metrics"
	"evaluation_orders/internal/infrastructure/payments"
	"evaluation_orders/internal/infrastructure/storage"
	"evaluation_orders/internal/usecase"
	"evaluation_orders/internal/usecase/checkout"
	"evaluation_orders/internal/usecase/interfaces"

	"go.uber.org/zap"
)

const localFilesBasePath = "/v1" + PathFiles

// eventPublisher is satisfied by both the Kafka and the log-only publisher.
type eventPublisher interface {
	interfaces.INotificationPublisher
	interfaces.IAnalyticsTracker
	Close() error
}

type app struct {
	handlers Handlers
	metrics  *metrics.Registry
	sessions *checkout.Registry
	closers  []func() error
	log      *zap.Logger
}

func (a *app) close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			a.log.Warn("[app] close failed", zap.Error(err))
		}
	}
}

func build(ctx context.Context, cfg config.Config, log *zap.Logger) (*app, error) {
	a := &app{metrics: metrics.NewRegistry(), log: log}

	awsCfg, err := database.NewAWSConfig(ctx, cfg.AWSRegion)
	if err != nil {
		return nil, err
	}
	ddb := database.NewDynamoDBClient(awsCfg, cfg.DynamoDBEndpoint)

	orderRepo := repository.NewOrderDynamoRepository(ddb, cfg.OrdersTable)
	quoteRepo := repository.NewQuoteDynamoRepository(ddb, cfg.QuotesTable)
	paymentRepo := repository.NewBillingPaymentDynamoRepository(ddb, cfg.PaymentsTable)

	var blobs interfaces.IObjectStorage
	switch cfg.StorageBackend {
	case config.StorageS3:
		s3Client := database.NewS3Client(awsCfg, cfg.S3Endpoint)
		blobs = storage.NewS3Storage(s3Client, cfg.S3Bucket, cfg.AWSRegion, cfg.PublicFilesBaseURL, log)
	default:
		baseURL := cfg.PublicFilesBaseURL
		if baseURL == "" {
			baseURL = localFilesBasePath
		}
		pebbleStore, err := storage.OpenPebbleStorage(cfg.PebbleDir, baseURL, log)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, pebbleStore.Close)
		a.handlers.Files = handlers.NewFileHandler(pebbleStore)
		blobs = pebbleStore
	}
	log.Info("[app] document storage ready", zap.String("backend", string(cfg.StorageBackend)))

	var publisher eventPublisher
	if len(cfg.KafkaBrokers) > 0 {
		publisher = messaging.NewKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaNotificationsTopic, cfg.KafkaAnalyticsTopic, log)
	} else {
		log.Warn("[app] KAFKA_BROKERS not set, events are only logged")
		publisher = messaging.NewLogPublisher(log)
	}
	a.closers = append(a.closers, publisher.Close)

	var paymentGateway interfaces.IPaymentGateway
	mpGateway, err := payments.NewMercadoPagoGateway(cfg.MercadoPagoAccessToken, cfg.PaymentGatewayMock, log)
	if err != nil {
		log.Warn("[app] Mercado Pago gateway not configured", zap.Error(err))
	} else {
		paymentGateway = mpGateway
	}

	orderUseCase := usecase.NewOrderUseCase(orderRepo, publisher, a.metrics, log)
	quoteUseCase := usecase.NewQuoteUseCase(quoteRepo)
	paymentUseCase := usecase.NewBillingPaymentUseCase(paymentRepo, orderRepo, quoteRepo, paymentGateway, a.metrics, log)
	notificationUseCase := usecase.NewNotificationUseCase(orderUseCase, publisher, a.metrics, log)

	a.sessions = checkout.NewRegistry(checkout.Deps{
		Backend:   checkout.NewServiceBackend(orderUseCase, paymentUseCase, notificationUseCase),
		Storage:   blobs,
		Analytics: publisher,
		Metrics:   a.metrics,
		Log:       log,
		Config:    checkoutConfig(cfg),
		OnComplete: func(orderID, paymentIntentID string) {
			log.Info("[checkout] purchase completed", zap.String("order_id", orderID), zap.String("payment_intent_id", paymentIntentID))
		},
	})

	a.handlers.Checkout = handlers.NewCheckoutHandler(a.sessions, cfg.MaxUploadBytes, log)
	a.handlers.Orders = handlers.NewOrderHandler(orderUseCase, notificationUseCase, log)
	a.handlers.Quotes = handlers.NewQuoteHandler(quoteUseCase, log)
	a.handlers.Payments = handlers.NewBillingPaymentHandler(paymentUseCase, log)
	return a, nil
}

func checkoutConfig(cfg config.Config) checkout.Config {
	out := checkout.DefaultConfig()
	if cfg.AbandonedCartDelay > 0 {
		out.AbandonedCartDelay = cfg.AbandonedCartDelay
		out.SessionIdleTTL = 2 * cfg.AbandonedCartDelay
	}
	if cfg.SessionIdleTTL > 0 {
		out.SessionIdleTTL = cfg.SessionIdleTTL
	}
	if cfg.ServicesSyncInterval > 0 {
		out.ServicesSyncInterval = cfg.ServicesSyncInterval
	}
	if cfg.UploadConcurrency > 0 {
		out.UploadConcurrency = cfg.UploadConcurrency
	}
	if cfg.MaxUploadBytes > 0 {
		out.MaxUploadBytes = cfg.MaxUploadBytes
	}
	return out
}
