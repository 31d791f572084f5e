package events

import (
	"context"
	"encoding/json"

	"subcontrol-be/internal/pkg/logger"
	pkgEvents "subcontrol-be/pkg/events"

	"github.com/ThreeDotsLabs/watermill/message"
)

// LogEvents subscribes to every billing event subject and writes each delivered event to the log.
// It keeps the in-process bus observable when no external broker is configured.
// Delivery stops when ctx is done or the subscriber is closed.
func LogEvents(ctx context.Context, subscriber message.Subscriber, logger logger.ILogger) error {
	for _, eventType := range pkgEvents.Types {
		messages, err := subscriber.Subscribe(ctx, pkgEvents.SubjectFor(eventType))
		if err != nil {
			return err
		}
		go logMessages(messages, logger)
	}
	return nil
}

func logMessages(messages <-chan *message.Message, logger logger.ILogger) {
	for msg := range messages {
		details := map[string]interface{}{
			"type":      msg.Metadata.Get("type"),
			"messageId": msg.UUID,
		}
		var payload map[string]interface{}
		if err := json.Unmarshal(msg.Payload, &payload); err != nil {
			details["error"] = err.Error()
		} else {
			details["payload"] = payload
		}
		logger.Info("EVENTS", "Event published", details)
		msg.Ack()
	}
}
