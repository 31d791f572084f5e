package events

import "time"

// Billing event types. Published on subject "events.<TYPE>".
const (
	PaymentRecorded         = "PAYMENT_RECORDED"
	SubscriptionRenewed     = "SUBSCRIPTION_RENEWED"
	SubscriptionReactivated = "SUBSCRIPTION_REACTIVATED"
	SubscriptionOverdue     = "SUBSCRIPTION_OVERDUE"
	SubscriptionCreated     = "SUBSCRIPTION_CREATED"
)

// Types lists every billing event type.
var Types = []string{
	PaymentRecorded,
	SubscriptionRenewed,
	SubscriptionReactivated,
	SubscriptionOverdue,
	SubscriptionCreated,
}

// Event defines the contract for all system events.
type Event interface {
	// EventType returns the unique code for this event (e.g. "PAYMENT_RECORDED").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}

// Subject is the bus subject an event is published on.
func Subject(e Event) string {
	return SubjectFor(e.EventType())
}

func SubjectFor(eventType string) string {
	return "events." + eventType
}
