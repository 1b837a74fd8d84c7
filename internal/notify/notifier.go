package notify

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/Domenick1991/medappointments/internal/logging"
)

// Notifier delivers a rendered message to a recipient address.
type Notifier interface {
	Send(ctx context.Context, recipient, message string) error
}

type Message struct {
	Recipient string
	Body      string
}

// Recorder keeps every message it is given. Set Err to make Send fail after recording.
type Recorder struct {
	mu   sync.Mutex
	sent []Message
	Err  error
}

func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) Send(ctx context.Context, recipient, message string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent = append(r.sent, Message{Recipient: recipient, Body: message})
	return r.Err
}

func (r *Recorder) Messages() []Message {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Message, len(r.sent))
	copy(out, r.sent)
	return out
}

// LogNotifier only logs what it would have sent.
type LogNotifier struct {
	logger *slog.Logger
}

func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	if logger == nil {
		logger = logging.Discard()
	}
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) Send(ctx context.Context, recipient, message string) error {
	n.logger.InfoContext(ctx, "sending email",
		slog.String("to", recipient),
		slog.String("content", message),
	)
	return nil
}

// Fallback tries each notifier in order until one succeeds.
type Fallback struct {
	notifiers []Notifier
}

func NewFallback(notifiers ...Notifier) *Fallback {
	return &Fallback{notifiers: notifiers}
}

func (f *Fallback) Send(ctx context.Context, recipient, message string) error {
	if len(f.notifiers) == 0 {
		return errors.New("notify: no notifiers configured")
	}
	var errs []error
	for i, n := range f.notifiers {
		err := n.Send(ctx, recipient, message)
		if err == nil {
			return nil
		}
		errs = append(errs, fmt.Errorf("notifier %d: %w", i, err))
	}
	return errors.Join(errs...)
}
