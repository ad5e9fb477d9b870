package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/yungbote/docsense-backend/internal/platform/envutil"
)

// Message is the wire format of one ingestion job.
type Message struct {
	DocumentID          uuid.UUID `json:"document_id"`
	ProcessingVersionID uuid.UUID `json:"processing_version_id"`
}

// IngestQueue is a Redis-list work queue. Claim moves a payload from the
// pending list to a processing list so a crashed worker leaves the message
// recoverable; Ack removes it from the processing list. Together they give
// one-at-a-time delivery with explicit acknowledgement.
type IngestQueue struct {
	client         *redis.Client
	queueName      string
	processingName string
}

func NewIngestQueue() (*IngestQueue, error) {
	addr := envutil.GetEnv("REDIS_ADDR", "", nil)
	if addr == "" {
		return nil, errors.New("queue: REDIS_ADDR is required")
	}
	queueName := envutil.GetEnv("INGEST_QUEUE_NAME", "ingestion_queue", nil)

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: envutil.GetEnv("REDIS_PASSWORD", "", nil),
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("queue: redis ping: %w", err)
	}

	return &IngestQueue{
		client:         client,
		queueName:      queueName,
		processingName: queueName + ":processing",
	}, nil
}

// Claim blocks up to the poll timeout for the next payload. An empty string
// with a nil error means the wait timed out and the caller should loop.
func (q *IngestQueue) Claim(ctx context.Context) (string, error) {
	payload, err := q.client.BLMove(ctx, q.queueName, q.processingName, "LEFT", "RIGHT", 5*time.Second).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return payload, nil
}

// Ack removes a claimed payload from the processing list.
func (q *IngestQueue) Ack(ctx context.Context, payload string) error {
	return q.client.LRem(ctx, q.processingName, 1, payload).Err()
}

// Publish enqueues one job. The worker itself never publishes; this exists
// for upstream services and tests.
func (q *IngestQueue) Publish(ctx context.Context, msg Message) error {
	raw, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	return q.client.RPush(ctx, q.queueName, raw).Err()
}

func (q *IngestQueue) Close() error {
	return q.client.Close()
}
