package notify

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Domenick1991/medappointments/internal/domain"
	"github.com/google/uuid"
)

type EventProducer interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
}

// KafkaNotifier hands messages to the delivery worker through a topic.
type KafkaNotifier struct {
	producer EventProducer
	topic    string
	now      func() time.Time
}

func NewKafkaNotifier(producer EventProducer, topic string) *KafkaNotifier {
	return &KafkaNotifier{producer: producer, topic: topic, now: time.Now}
}

func (n *KafkaNotifier) Send(ctx context.Context, recipient, message string) error {
	if n.producer == nil || n.topic == "" {
		return errors.New("notify: kafka producer not configured")
	}
	event := domain.Notification{
		ID:        uuid.NewString(),
		Recipient: recipient,
		Message:   message,
		CreatedAt: n.now().UTC(),
	}
	if err := n.producer.Publish(ctx, n.topic, recipient, event); err != nil {
		return fmt.Errorf("notify: publish notification %s: %w", event.ID, err)
	}
	return nil
}
