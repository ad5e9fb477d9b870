package consumer

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/yungbote/docsense-backend/internal/clients/queue"
	"github.com/yungbote/docsense-backend/internal/platform/logger"
)

// fakeQueue serves a fixed set of payloads, then cancels the loop.
type fakeQueue struct {
	payloads []string
	acked    []string
	cancel   context.CancelFunc
}

func (f *fakeQueue) Claim(context.Context) (string, error) {
	if len(f.payloads) == 0 {
		f.cancel()
		return "", nil
	}
	p := f.payloads[0]
	f.payloads = f.payloads[1:]
	return p, nil
}

func (f *fakeQueue) Ack(_ context.Context, payload string) error {
	f.acked = append(f.acked, payload)
	return nil
}

type recordingProcessor struct {
	calls []uuid.UUID
	err   error
	panic bool
}

func (p *recordingProcessor) ProcessJob(_ context.Context, documentID, _ uuid.UUID) error {
	p.calls = append(p.calls, documentID)
	if p.panic {
		panic("boom")
	}
	return p.err
}

func runConsumer(t *testing.T, q *fakeQueue, p Processor) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	q.cancel = cancel

	c := New(q, p, logger.NewNop())
	if err := c.Start(ctx); !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("unexpected loop exit: %v", err)
	}
}

func payload(t *testing.T, msg queue.Message) string {
	t.Helper()
	raw, err := json.Marshal(msg)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	return string(raw)
}

func TestConsumerProcessesAndAcks(t *testing.T) {
	docID, versionID := uuid.New(), uuid.New()
	q := &fakeQueue{payloads: []string{payload(t, queue.Message{DocumentID: docID, ProcessingVersionID: versionID})}}
	p := &recordingProcessor{}

	runConsumer(t, q, p)

	if len(p.calls) != 1 || p.calls[0] != docID {
		t.Fatalf("expected one processed job, got %v", p.calls)
	}
	if len(q.acked) != 1 {
		t.Fatalf("expected one ack, got %d", len(q.acked))
	}
}

func TestConsumerAcksFailedJobs(t *testing.T) {
	q := &fakeQueue{payloads: []string{payload(t, queue.Message{DocumentID: uuid.New(), ProcessingVersionID: uuid.New()})}}
	p := &recordingProcessor{err: errors.New("pipeline blew up")}

	runConsumer(t, q, p)

	if len(q.acked) != 1 {
		t.Fatalf("failed job must still be acked, got %d acks", len(q.acked))
	}
}

func TestConsumerAcksPanickedJobs(t *testing.T) {
	q := &fakeQueue{payloads: []string{payload(t, queue.Message{DocumentID: uuid.New(), ProcessingVersionID: uuid.New()})}}
	p := &recordingProcessor{panic: true}

	runConsumer(t, q, p)

	if len(q.acked) != 1 {
		t.Fatalf("panicked job must still be acked, got %d acks", len(q.acked))
	}
}

func TestConsumerDiscardsMalformedMessages(t *testing.T) {
	q := &fakeQueue{payloads: []string{
		"not json at all",
		payload(t, queue.Message{}), // missing identifiers
	}}
	p := &recordingProcessor{}

	runConsumer(t, q, p)

	if len(p.calls) != 0 {
		t.Fatalf("malformed messages must not reach the processor, got %d calls", len(p.calls))
	}
	if len(q.acked) != 2 {
		t.Fatalf("malformed messages must still be acked, got %d acks", len(q.acked))
	}
}
