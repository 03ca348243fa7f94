package event

import (
	"context"
	"log/slog"

	"github.com/raincoat98/lumina/pkg/kafka"
)

// Kafka topics for storefront domain events.
const (
	TopicProductCreated = "lumina.catalog.product.created"
	TopicProductUpdated = "lumina.catalog.product.updated"
	TopicProductDeleted = "lumina.catalog.product.deleted"
	TopicCartUpdated    = "lumina.cart.updated"
	TopicCartCleared    = "lumina.cart.cleared"
)

const source = "lumina-storefront"

// ProductData is the payload carried by product lifecycle events.
type ProductData struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category"`
	Price    int64  `json:"price"`
	Stock    int    `json:"stock"`
	IsActive bool   `json:"is_active"`
}

// CartData is the payload carried by cart change events.
type CartData struct {
	SessionID string `json:"session_id"`
	ItemCount int    `json:"item_count"`
	Total     int64  `json:"total"`
}

// Producer publishes storefront domain events. Publishing is best-effort:
// failures are logged and never surfaced to the mutating caller.
type Producer struct {
	producer *kafka.Producer
	logger   *slog.Logger
}

// NewProducer wraps a Kafka producer for domain event publishing.
func NewProducer(producer *kafka.Producer, logger *slog.Logger) *Producer {
	return &Producer{producer: producer, logger: logger}
}

// ProductCreated publishes a product.created event.
func (p *Producer) ProductCreated(ctx context.Context, data ProductData) {
	p.publish(ctx, TopicProductCreated, "product.created", data.ID, "product", data)
}

// ProductUpdated publishes a product.updated event.
func (p *Producer) ProductUpdated(ctx context.Context, data ProductData) {
	p.publish(ctx, TopicProductUpdated, "product.updated", data.ID, "product", data)
}

// ProductDeleted publishes a product.deleted event.
func (p *Producer) ProductDeleted(ctx context.Context, data ProductData) {
	p.publish(ctx, TopicProductDeleted, "product.deleted", data.ID, "product", data)
}

// CartUpdated publishes a cart.updated event.
func (p *Producer) CartUpdated(ctx context.Context, data CartData) {
	p.publish(ctx, TopicCartUpdated, "cart.updated", data.SessionID, "cart", data)
}

// CartCleared publishes a cart.cleared event.
func (p *Producer) CartCleared(ctx context.Context, data CartData) {
	p.publish(ctx, TopicCartCleared, "cart.cleared", data.SessionID, "cart", data)
}

func (p *Producer) publish(ctx context.Context, topic, eventType, aggregateID, aggregateType string, data any) {
	evt, err := kafka.NewEvent(eventType, aggregateID, aggregateType, source, data)
	if err != nil {
		p.logger.ErrorContext(ctx, "failed to build event",
			slog.String("event_type", eventType),
			slog.String("error", err.Error()),
		)
		return
	}
	if err := p.producer.Publish(ctx, topic, evt); err != nil {
		p.logger.WarnContext(ctx, "event publish failed, continuing",
			slog.String("topic", topic),
			slog.String("event_type", eventType),
			slog.String("error", err.Error()),
		)
	}
}
