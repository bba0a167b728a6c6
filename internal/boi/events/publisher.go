package events

import (
	"context"

	"github.com/comda/boi-proxy/pkg/logger"
	"github.com/comda/boi-proxy/pkg/messaging"
)

// Publisher is the subset of messaging.Publisher used here
type Publisher interface {
	Publish(ctx context.Context, eventType string, data interface{}) error
}

// BoiEventPublisher publishes callback outcome events
type BoiEventPublisher struct {
	publisher Publisher
	logger    *logger.Logger
}

// NewBoiEventPublisher creates a publisher on the given exchange
func NewBoiEventPublisher(rmq *messaging.RabbitMQ, exchange string, log *logger.Logger) (*BoiEventPublisher, error) {
	publisher, err := messaging.NewPublisher(rmq, exchange, "boi-proxy", log)
	if err != nil {
		return nil, err
	}

	return NewWithPublisher(publisher, log), nil
}

// NewWithPublisher wraps an existing publisher
func NewWithPublisher(publisher Publisher, log *logger.Logger) *BoiEventPublisher {
	return &BoiEventPublisher{
		publisher: publisher,
		logger:    log,
	}
}

// PublishCallbackOutcome publishes a processed or failed event. Errors are
// logged only.
func (p *BoiEventPublisher) PublishCallbackOutcome(ctx context.Context, event messaging.CallbackOutcomeEvent) {
	eventType := messaging.EventCallbackProcessed
	if !event.Success {
		eventType = messaging.EventCallbackFailed
	}

	if err := p.publisher.Publish(ctx, eventType, event); err != nil {
		p.logger.Error().Err(err).Int("callback_id", event.CallbackID).Msg("failed to publish callback outcome event")
	}
}

// NopPublisher is used when RabbitMQ is disabled
type NopPublisher struct{}

// PublishCallbackOutcome does nothing
func (NopPublisher) PublishCallbackOutcome(context.Context, messaging.CallbackOutcomeEvent) {}
