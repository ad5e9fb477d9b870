package consumer

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/yungbote/docsense-backend/internal/clients/queue"
	"github.com/yungbote/docsense-backend/internal/platform/logger"
)

// Processor handles one claimed ingestion job.
type Processor interface {
	ProcessJob(ctx context.Context, documentID, versionID uuid.UUID) error
}

// JobQueue is the claim/ack surface of the ingest queue.
type JobQueue interface {
	Claim(ctx context.Context) (string, error)
	Ack(ctx context.Context, payload string) error
}

// Consumer is the worker's main loop: claim one message, process it, ack it.
// Messages are acknowledged unconditionally, including after processing
// failure; a failed job is logged and dropped, never redelivered.
type Consumer struct {
	queue     JobQueue
	processor Processor
	log       *logger.Logger
}

func New(q JobQueue, processor Processor, baseLog *logger.Logger) *Consumer {
	return &Consumer{
		queue:     q,
		processor: processor,
		log:       baseLog.With("component", "IngestConsumer"),
	}
}

// Start blocks until the context is cancelled.
func (c *Consumer) Start(ctx context.Context) error {
	c.log.Info("Consumer started, waiting for ingestion jobs")
	for {
		select {
		case <-ctx.Done():
			c.log.Info("Consumer stopping")
			return ctx.Err()
		default:
		}

		payload, err := c.queue.Claim(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			c.log.Error("Failed to claim message", "error", err)
			continue
		}
		if payload == "" {
			continue
		}

		c.handle(ctx, payload)

		if err := c.queue.Ack(ctx, payload); err != nil {
			c.log.Error("Failed to ack message", "error", err)
		}
	}
}

func (c *Consumer) handle(ctx context.Context, payload string) {
	var msg queue.Message
	if err := json.Unmarshal([]byte(payload), &msg); err != nil {
		c.log.Warn("Discarding malformed message", "error", err)
		return
	}
	if msg.DocumentID == uuid.Nil || msg.ProcessingVersionID == uuid.Nil {
		c.log.Warn("Discarding message with missing identifiers", "payload", payload)
		return
	}

	if err := c.processJob(ctx, msg); err != nil {
		c.log.Error("Job processing failed",
			"document_id", msg.DocumentID,
			"processing_version_id", msg.ProcessingVersionID,
			"error", err)
	}
}

// processJob runs the pipeline behind a recover so a panic in one job cannot
// take the worker down or skip the ack.
func (c *Consumer) processJob(ctx context.Context, msg queue.Message) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic during processing: %v", r)
		}
	}()
	return c.processor.ProcessJob(ctx, msg.DocumentID, msg.ProcessingVersionID)
}
