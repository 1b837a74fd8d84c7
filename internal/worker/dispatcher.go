package worker

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/Domenick1991/medappointments/internal/domain"
	"github.com/Domenick1991/medappointments/internal/logging"
	"github.com/Domenick1991/medappointments/internal/notify"
)

type Queue interface {
	Pop(ctx context.Context, timeout time.Duration) (*domain.Notification, error)
}

// Dispatcher delivers queued notifications. Bad events and failed deliveries
// are logged and dropped so one message never stalls the stream.
type Dispatcher struct {
	sender     notify.Notifier
	logger     *slog.Logger
	retryDelay time.Duration
}

func NewDispatcher(sender notify.Notifier, logger *slog.Logger) *Dispatcher {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Dispatcher{sender: sender, logger: logger, retryDelay: time.Second}
}

// HandleMessage is the kafka.Consumer handler.
func (d *Dispatcher) HandleMessage(ctx context.Context, value []byte) error {
	var n domain.Notification
	if err := json.Unmarshal(value, &n); err != nil {
		d.logger.WarnContext(ctx, "decode notification failed", slog.Any("err", err))
		return nil
	}
	d.Deliver(ctx, n)
	return nil
}

func (d *Dispatcher) Deliver(ctx context.Context, n domain.Notification) bool {
	if n.Recipient == "" {
		d.logger.WarnContext(ctx, "notification without recipient", slog.String("notification_id", n.ID))
		return false
	}
	if err := d.sender.Send(ctx, n.Recipient, n.Message); err != nil {
		d.logger.ErrorContext(ctx, "deliver notification failed",
			slog.String("notification_id", n.ID),
			slog.String("to", n.Recipient),
			slog.Any("err", err),
		)
		return false
	}
	d.logger.InfoContext(ctx, "notification delivered",
		slog.String("notification_id", n.ID),
		slog.String("to", n.Recipient),
	)
	return true
}

// RunQueue drains q until ctx is done.
func (d *Dispatcher) RunQueue(ctx context.Context, q Queue, pollTimeout time.Duration) error {
	for {
		if ctx.Err() != nil {
			return nil
		}

		n, err := q.Pop(ctx, pollTimeout)
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, context.Canceled) {
				return nil
			}
			d.logger.ErrorContext(ctx, "pop notification failed", slog.Any("err", err))
			select {
			case <-ctx.Done():
				return nil
			case <-time.After(d.retryDelay):
			}
			continue
		}
		if n == nil {
			continue
		}
		d.Deliver(ctx, *n)
	}
}
