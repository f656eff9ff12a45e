package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/phamduc/solwatch/internal/core/domain"
)

const defaultStream = "solwatch:transactions"

// Config holds Redis connection configuration.
type Config struct {
	URL      string `yaml:"url"`
	Password string `yaml:"password"`
	Stream   string `yaml:"stream"`
	MaxLen   int64  `yaml:"max_len"`
}

// Emitter publishes observed transactions onto a Redis stream for
// downstream consumers. It implements the sink contract.
type Emitter struct {
	rdb    *redis.Client
	stream string
	maxLen int64
}

// NewEmitter connects to Redis and verifies the connection.
func NewEmitter(cfg Config) (*Emitter, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis URL: %w", err)
	}
	if cfg.Password != "" {
		opts.Password = cfg.Password
	}

	rdb := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	stream := cfg.Stream
	if stream == "" {
		stream = defaultStream
	}
	maxLen := cfg.MaxLen
	if maxLen == 0 {
		maxLen = 100000
	}

	return &Emitter{rdb: rdb, stream: stream, maxLen: maxLen}, nil
}

// Consume appends one event to the stream. The full event is carried as a
// JSON payload; a few fields are duplicated as entry values so consumers can
// filter without decoding.
func (e *Emitter) Consume(ctx context.Context, tx *domain.Transaction) error {
	eventType := domain.EventTypeTransactionObserved
	if tx.Status == domain.TxStatusFailed {
		eventType = domain.EventTypeTransactionFailed
	}

	event := &domain.Event{
		ID:          uuid.New().String(),
		EventType:   eventType,
		Endpoint:    tx.Endpoint,
		Slot:        tx.Slot,
		Transaction: tx,
		EmittedAt:   time.Now().Unix(),
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to encode event for %s: %w", tx.Signature, err)
	}

	err = e.rdb.XAdd(ctx, &redis.XAddArgs{
		Stream: e.stream,
		MaxLen: e.maxLen,
		Approx: true,
		Values: map[string]any{
			"event_id":   event.ID,
			"event_type": string(event.EventType),
			"signature":  tx.Signature,
			"slot":       tx.Slot,
			"payload":    payload,
		},
	}).Err()
	if err != nil {
		return fmt.Errorf("failed to emit transaction %s: %w", tx.Signature, err)
	}
	return nil
}

// Close closes the Redis connection.
func (e *Emitter) Close() error {
	return e.rdb.Close()
}
