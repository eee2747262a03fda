package notify

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"staybook/internal/app/policies"
)

// Producer is the broker surface the notifier publishes through.
type Producer interface {
	Publish(ctx context.Context, topic string, key string, payload []byte, headers map[string]string) error
}

// KafkaNotifier publishes reservation notices as JSON events. Delivery is
// best-effort: the lifecycle operations that trigger these calls log
// failures and move on.
type KafkaNotifier struct {
	Producer    Producer
	TopicPrefix string
	Logger      *slog.Logger
}

const notificationsTopic = "reservations.notifications.v1"

type notice struct {
	ID               string    `json:"id"`
	Type             string    `json:"type"`
	ReservationID    string    `json:"reservation_id"`
	DaysUntilCheckIn *int      `json:"days_until_check_in,omitempty"`
	At               time.Time `json:"at"`
}

func (n *KafkaNotifier) SendConfirmation(ctx context.Context, reservationID string) error {
	return n.publish(ctx, notice{
		ID:            uuid.NewString(),
		Type:          "reservation.confirmation",
		ReservationID: reservationID,
		At:            time.Now().UTC(),
	})
}

func (n *KafkaNotifier) SendReminder(ctx context.Context, reservationID string, daysUntilCheckIn int) error {
	return n.publish(ctx, notice{
		ID:               uuid.NewString(),
		Type:             "reservation.reminder",
		ReservationID:    reservationID,
		DaysUntilCheckIn: &daysUntilCheckIn,
		At:               time.Now().UTC(),
	})
}

func (n *KafkaNotifier) publish(ctx context.Context, evt notice) error {
	payload, err := json.Marshal(evt)
	if err != nil {
		return err
	}
	topic := notificationsTopic
	if n.TopicPrefix != "" {
		topic = n.TopicPrefix + topic
	}
	headers := map[string]string{"content-type": "application/json"}
	return n.Producer.Publish(ctx, topic, evt.ReservationID, payload, headers)
}

var _ policies.Notifier = (*KafkaNotifier)(nil)

// LogNotifier is the fallback when no brokers are configured: it only
// records that a notice would have been sent.
type LogNotifier struct {
	Logger *slog.Logger
}

func (n LogNotifier) SendConfirmation(ctx context.Context, reservationID string) error {
	n.log().Info("reservation confirmation notice", "reservation_id", reservationID)
	return nil
}

func (n LogNotifier) SendReminder(ctx context.Context, reservationID string, daysUntilCheckIn int) error {
	n.log().Info("reservation reminder notice", "reservation_id", reservationID, "days_until_check_in", daysUntilCheckIn)
	return nil
}

func (n LogNotifier) log() *slog.Logger {
	if n.Logger != nil {
		return n.Logger
	}
	return slog.Default()
}

var _ policies.Notifier = LogNotifier{}
