package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"testing"

	"github.com/Domenick1991/medappointments/internal/domain"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeWriter struct {
	written []kafka.Message
	err     error
	closed  bool
}

func (w *fakeWriter) WriteMessages(ctx context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.written = append(w.written, msgs...)
	return nil
}

func (w *fakeWriter) Close() error {
	w.closed = true
	return nil
}

type fakeReader struct {
	msgs   []kafka.Message
	closed bool
}

func (r *fakeReader) ReadMessage(ctx context.Context) (kafka.Message, error) {
	if len(r.msgs) == 0 {
		return kafka.Message{}, io.EOF
	}
	msg := r.msgs[0]
	r.msgs = r.msgs[1:]
	return msg, nil
}

func (r *fakeReader) Close() error {
	r.closed = true
	return nil
}

func TestProducer_PublishWritesJSON(t *testing.T) {
	w := &fakeWriter{}
	p := newProducer(w, nil)

	event := domain.Notification{ID: "n-1", Recipient: "ana@example.com", Message: "booked"}
	require.NoError(t, p.Publish(context.Background(), "appointment-notifications", "ana@example.com", event))

	require.Len(t, w.written, 1)
	msg := w.written[0]
	assert.Equal(t, "appointment-notifications", msg.Topic)
	assert.Equal(t, []byte("ana@example.com"), msg.Key)

	var decoded domain.Notification
	require.NoError(t, json.Unmarshal(msg.Value, &decoded))
	assert.Equal(t, event.ID, decoded.ID)
	assert.Equal(t, event.Message, decoded.Message)
}

func TestProducer_PublishWriteError(t *testing.T) {
	writeErr := errors.New("leader not available")
	p := newProducer(&fakeWriter{err: writeErr}, nil)

	err := p.Publish(context.Background(), "t", "k", map[string]string{"a": "b"})

	assert.ErrorIs(t, err, writeErr)
}

func TestProducer_PublishMarshalError(t *testing.T) {
	w := &fakeWriter{}
	p := newProducer(w, nil)

	err := p.Publish(context.Background(), "t", "k", make(chan int))

	assert.Error(t, err)
	assert.Empty(t, w.written)
}

func TestProducer_Close(t *testing.T) {
	w := &fakeWriter{}
	require.NoError(t, newProducer(w, nil).Close())
	assert.True(t, w.closed)
}

func TestConsumer_ConsumeDeliversValuesInOrder(t *testing.T) {
	r := &fakeReader{msgs: []kafka.Message{{Value: []byte("one")}, {Value: []byte("two")}}}
	c := &Consumer{reader: r}

	var got []string
	err := c.Consume(context.Background(), func(ctx context.Context, value []byte) error {
		got = append(got, string(value))
		return nil
	})

	assert.ErrorIs(t, err, io.EOF)
	assert.Equal(t, []string{"one", "two"}, got)
}

func TestConsumer_ConsumeStopsOnHandlerError(t *testing.T) {
	r := &fakeReader{msgs: []kafka.Message{{Value: []byte("one")}, {Value: []byte("two")}}}
	c := &Consumer{reader: r}
	handlerErr := errors.New("stop")

	calls := 0
	err := c.Consume(context.Background(), func(ctx context.Context, value []byte) error {
		calls++
		return handlerErr
	})

	assert.ErrorIs(t, err, handlerErr)
	assert.Equal(t, 1, calls)
}

func TestConsumer_CloseNil(t *testing.T) {
	var c *Consumer
	assert.NoError(t, c.Close())

	r := &fakeReader{}
	assert.NoError(t, (&Consumer{reader: r}).Close())
	assert.True(t, r.closed)
}
