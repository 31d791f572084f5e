package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"subcontrol-be/internal/entity"
	"subcontrol-be/internal/pkg/logger"
	pkgEvents "subcontrol-be/pkg/events"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/shopspring/decimal"
)

// Publisher abstracts event publishing for billing operations.
type Publisher interface {
	PublishPaymentRecorded(ctx context.Context, payment *entity.Payment, sub *entity.Subscription)
	PublishSubscriptionRenewed(ctx context.Context, sub *entity.Subscription, previousRenewal time.Time)
	PublishSubscriptionReactivated(ctx context.Context, sub *entity.Subscription)
	PublishSubscriptionOverdue(ctx context.Context, sub *entity.Subscription)
	PublishSubscriptionCreated(ctx context.Context, sub *entity.Subscription)
}

// Sink delivers a single event to a bus. *nats.Publisher satisfies it.
type Sink interface {
	Publish(ctx context.Context, event pkgEvents.Event) error
}

// BusPublisher builds billing events and hands them to a Sink. Failures are logged, never returned.
type BusPublisher struct {
	sink   Sink
	logger logger.ILogger
	now    func() time.Time
}

func NewBusPublisher(sink Sink, logger logger.ILogger) *BusPublisher {
	return &BusPublisher{
		sink:   sink,
		logger: logger,
		now:    time.Now,
	}
}

func (p *BusPublisher) publish(ctx context.Context, eventType string, data map[string]interface{}) {
	if p.sink == nil {
		return
	}

	now := p.now()
	data["occurred_at"] = now
	evt := pkgEvents.BaseEvent{
		Type:       eventType,
		Data:       data,
		OccurredAt: now,
	}

	if err := p.sink.Publish(ctx, evt); err != nil {
		p.logger.Error("EVENTS", "Failed to publish "+eventType+" event", map[string]interface{}{"error": err.Error()})
	}
}

func (p *BusPublisher) PublishPaymentRecorded(ctx context.Context, payment *entity.Payment, sub *entity.Subscription) {
	p.publish(ctx, pkgEvents.PaymentRecorded, map[string]interface{}{
		"payment_id":      payment.Id.String(),
		"subscription_id": payment.SubscriptionId.String(),
		"customer_id":     sub.CustomerId.String(),
		"amount":          amountString(payment.Amount),
		"paid_at":         payment.PaidAt,
		"entity_type":     "payment",
		"entity_id":       payment.Id.String(),
	})
}

func (p *BusPublisher) PublishSubscriptionRenewed(ctx context.Context, sub *entity.Subscription, previousRenewal time.Time) {
	p.publish(ctx, pkgEvents.SubscriptionRenewed, map[string]interface{}{
		"subscription_id":  sub.Id.String(),
		"customer_id":      sub.CustomerId.String(),
		"previous_renewal": previousRenewal,
		"next_renewal":     sub.NextRenewal,
		"entity_type":      "subscription",
		"entity_id":        sub.Id.String(),
	})
}

func (p *BusPublisher) PublishSubscriptionReactivated(ctx context.Context, sub *entity.Subscription) {
	p.publish(ctx, pkgEvents.SubscriptionReactivated, map[string]interface{}{
		"subscription_id": sub.Id.String(),
		"customer_id":     sub.CustomerId.String(),
		"next_renewal":    sub.NextRenewal,
		"entity_type":     "subscription",
		"entity_id":       sub.Id.String(),
	})
}

func (p *BusPublisher) PublishSubscriptionOverdue(ctx context.Context, sub *entity.Subscription) {
	p.publish(ctx, pkgEvents.SubscriptionOverdue, map[string]interface{}{
		"subscription_id": sub.Id.String(),
		"customer_id":     sub.CustomerId.String(),
		"next_renewal":    sub.NextRenewal,
		"entity_type":     "subscription",
		"entity_id":       sub.Id.String(),
	})
}

func (p *BusPublisher) PublishSubscriptionCreated(ctx context.Context, sub *entity.Subscription) {
	p.publish(ctx, pkgEvents.SubscriptionCreated, map[string]interface{}{
		"subscription_id": sub.Id.String(),
		"customer_id":     sub.CustomerId.String(),
		"plan_id":         sub.PlanId.String(),
		"status":          string(sub.Status),
		"next_renewal":    sub.NextRenewal,
		"entity_type":     "subscription",
		"entity_id":       sub.Id.String(),
	})
}

// ChannelSink publishes events on an in-process watermill GoChannel. Used when NATS is not reachable.
type ChannelSink struct {
	pubSub *gochannel.GoChannel
}

func NewChannelSink(pubSub *gochannel.GoChannel) *ChannelSink {
	return &ChannelSink{pubSub: pubSub}
}

func (s *ChannelSink) Publish(ctx context.Context, event pkgEvents.Event) error {
	data, err := json.Marshal(event.Payload())
	if err != nil {
		return fmt.Errorf("failed to marshal event payload: %w", err)
	}

	msg := message.NewMessage(watermill.NewUUID(), data)
	msg.Metadata.Set("type", event.EventType())
	msg.SetContext(ctx)

	return s.pubSub.Publish(pkgEvents.Subject(event), msg)
}

// amountString keeps decimal formatting consistent in payloads.
func amountString(d decimal.Decimal) string {
	return d.StringFixed(2)
}
