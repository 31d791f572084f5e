package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"subcontrol-be/internal/entity"
	"subcontrol-be/internal/pkg/logger"
	pkgEvents "subcontrol-be/pkg/events"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingSink struct {
	events []pkgEvents.Event
	err    error
}

func (s *recordingSink) Publish(ctx context.Context, event pkgEvents.Event) error {
	s.events = append(s.events, event)
	return s.err
}

func TestBusPublisherBuildsPaymentEvent(t *testing.T) {
	sink := &recordingSink{}
	p := NewBusPublisher(sink, logger.NewNopLogger())
	fixed := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	p.now = func() time.Time { return fixed }

	sub := &entity.Subscription{Id: uuid.New(), CustomerId: uuid.New()}
	pay := &entity.Payment{Id: uuid.New(), SubscriptionId: sub.Id, Amount: decimal.NewFromInt(29), PaidAt: fixed}

	p.PublishPaymentRecorded(context.Background(), pay, sub)

	require.Len(t, sink.events, 1)
	evt := sink.events[0]
	assert.Equal(t, pkgEvents.PaymentRecorded, evt.EventType())
	assert.Equal(t, fixed, evt.Timestamp())
	assert.Equal(t, "29.00", evt.Payload()["amount"])
	assert.Equal(t, sub.CustomerId.String(), evt.Payload()["customer_id"])
}

func TestBusPublisherSwallowsSinkErrors(t *testing.T) {
	sink := &recordingSink{err: errors.New("nats down")}
	p := NewBusPublisher(sink, logger.NewNopLogger())

	assert.NotPanics(t, func() {
		p.PublishSubscriptionOverdue(context.Background(), &entity.Subscription{Id: uuid.New()})
	})
	assert.Len(t, sink.events, 1)
}

func TestBusPublisherWithoutSinkIsNoop(t *testing.T) {
	p := NewBusPublisher(nil, logger.NewNopLogger())
	assert.NotPanics(t, func() {
		p.PublishSubscriptionCreated(context.Background(), &entity.Subscription{Id: uuid.New()})
	})
}

func TestChannelSinkDeliversOnSubject(t *testing.T) {
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	defer pubSub.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	messages, err := pubSub.Subscribe(ctx, "events."+pkgEvents.SubscriptionRenewed)
	require.NoError(t, err)

	p := NewBusPublisher(NewChannelSink(pubSub), logger.NewNopLogger())
	sub := &entity.Subscription{Id: uuid.New(), CustomerId: uuid.New(), NextRenewal: time.Date(2024, 2, 9, 0, 0, 0, 0, time.UTC)}

	go p.PublishSubscriptionRenewed(ctx, sub, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))

	select {
	case msg := <-messages:
		msg.Ack()
		assert.Equal(t, pkgEvents.SubscriptionRenewed, msg.Metadata.Get("type"))
		var payload map[string]interface{}
		require.NoError(t, json.Unmarshal(msg.Payload, &payload))
		assert.Equal(t, sub.Id.String(), payload["subscription_id"])
	case <-ctx.Done():
		t.Fatal("event not delivered")
	}
}
