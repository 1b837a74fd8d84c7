package mailqueue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Domenick1991/medappointments/config"
	"github.com/Domenick1991/medappointments/internal/domain"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const DefaultKey = "queue:notifications:email"

// RedisQueue is a FIFO of pending notifications kept in a Redis list.
type RedisQueue struct {
	client *redis.Client
	key    string
	now    func() time.Time
}

func NewRedisQueue(cfg config.RedisConfig) *RedisQueue {
	client := redis.NewClient(&redis.Options{Addr: cfg.Addr, Password: cfg.Password, DB: cfg.DB})
	return NewRedisQueueWithClient(client, cfg.QueueKey)
}

func NewRedisQueueWithClient(client *redis.Client, key string) *RedisQueue {
	if key == "" {
		key = DefaultKey
	}
	return &RedisQueue{client: client, key: key, now: time.Now}
}

func (q *RedisQueue) Send(ctx context.Context, recipient, message string) error {
	return q.Push(ctx, domain.Notification{
		ID:        uuid.NewString(),
		Recipient: recipient,
		Message:   message,
		CreatedAt: q.now().UTC(),
	})
}

func (q *RedisQueue) Push(ctx context.Context, n domain.Notification) error {
	payload, err := json.Marshal(n)
	if err != nil {
		return err
	}
	if err := q.client.LPush(ctx, q.key, payload).Err(); err != nil {
		return fmt.Errorf("mailqueue: push %s: %w", n.ID, err)
	}
	return nil
}

// Pop waits up to timeout for the oldest notification. It returns nil, nil when none arrived.
func (q *RedisQueue) Pop(ctx context.Context, timeout time.Duration) (*domain.Notification, error) {
	res, err := q.client.BRPop(ctx, timeout, q.key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}
	// BRPOP replies with [key, value].
	if len(res) != 2 {
		return nil, fmt.Errorf("mailqueue: unexpected reply %v", res)
	}

	var n domain.Notification
	if err := json.Unmarshal([]byte(res[1]), &n); err != nil {
		return nil, fmt.Errorf("mailqueue: decode notification: %w", err)
	}
	return &n, nil
}

func (q *RedisQueue) Len(ctx context.Context) (int64, error) {
	return q.client.LLen(ctx, q.key).Result()
}

func (q *RedisQueue) Close() error {
	return q.client.Close()
}
