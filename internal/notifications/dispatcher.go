package notifications

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"foilctf/internal/models"
	"foilctf/internal/observability"
	"foilctf/internal/repository"
)

// EventNotification is the event type of every published fan-out.
const EventNotification = "notification"

// Delivery is a committed fan-out waiting to be published.
type Delivery struct {
	NotificationID uint
	Contents       models.NotificationContents
	UserIDs        []uint
}

type event struct {
	Type    string  `json:"type"`
	Payload payload `json:"payload"`
}

type payload struct {
	ID      uint   `json:"id"`
	Title   string `json:"title"`
	Message string `json:"message"`
}

// Dispatcher writes notification fan-outs inside the caller's transaction
// and publishes them once the transaction has committed.
type Dispatcher struct {
	notifier *Notifier
}

// NewDispatcher creates a dispatcher. A nil notifier disables publishing;
// rows are still written.
func NewDispatcher(notifier *Notifier) *Dispatcher {
	return &Dispatcher{notifier: notifier}
}

// Fanout records one notification for recipients using tx. Unknown
// usernames are skipped. An empty recipient list writes nothing and returns
// a nil Delivery. is_published flips only after every recipient row exists.
func (d *Dispatcher) Fanout(ctx context.Context, tx *repository.Store, contents models.NotificationContents, recipients []string) (*Delivery, error) {
	if len(recipients) == 0 {
		return nil, nil
	}

	raw, err := json.Marshal(contents)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	n := &models.Notification{Contents: raw}
	if err := tx.Notifications.Create(ctx, n); err != nil {
		return nil, err
	}
	if n.ID == 0 {
		return nil, models.NewInternalError(errors.New("notification insert returned no id"))
	}

	ids, err := tx.Users.IDsByUsernames(ctx, recipients)
	if err != nil {
		return nil, err
	}
	if err := tx.Notifications.AddRecipients(ctx, n.ID, ids); err != nil {
		return nil, err
	}
	if err := tx.Notifications.MarkPublished(ctx, n.ID); err != nil {
		return nil, err
	}

	observability.NotificationsFannedOut.Add(float64(len(ids)))
	return &Delivery{NotificationID: n.ID, Contents: contents, UserIDs: ids}, nil
}

// Publish pushes a committed delivery to every recipient's Redis channel.
// Failures are logged and never surface to the caller.
func (d *Dispatcher) Publish(ctx context.Context, deliveries ...*Delivery) {
	if d == nil || d.notifier == nil {
		return
	}
	for _, delivery := range deliveries {
		if delivery == nil {
			continue
		}
		msg, err := json.Marshal(event{
			Type: EventNotification,
			Payload: payload{
				ID:      delivery.NotificationID,
				Title:   delivery.Contents.Title,
				Message: delivery.Contents.Message,
			},
		})
		if err != nil {
			observability.GlobalLogger.ErrorContext(ctx, "failed to marshal notification event",
				slog.Uint64("notification_id", uint64(delivery.NotificationID)),
				slog.String("error", err.Error()))
			continue
		}
		for _, userID := range delivery.UserIDs {
			if err := d.notifier.PublishUser(ctx, userID, string(msg)); err != nil {
				observability.NotificationPublishFailures.Inc()
				observability.GlobalLogger.WarnContext(ctx, "failed to publish notification",
					slog.Uint64("notification_id", uint64(delivery.NotificationID)),
					slog.Uint64("user_id", uint64(userID)),
					slog.String("error", err.Error()))
			}
		}
	}
}
