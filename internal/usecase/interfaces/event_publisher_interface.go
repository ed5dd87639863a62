package interfaces

import (
	"context"
	"evaluation_orders/internal/domain/entities"
)

// INotificationPublisher hands email notifications to the mailer.
type INotificationPublisher interface {
	PublishEmail(ctx context.Context, n entities.EmailNotification) error
}

// IAnalyticsTracker records ecommerce analytics events.
type IAnalyticsTracker interface {
	Track(ctx context.Context, e entities.AnalyticsEvent) error
}
