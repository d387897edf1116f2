package worker

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/aws/aws-sdk-go-v2/service/sqs/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeQueue struct {
	mu        sync.Mutex
	pending   []types.Message
	deleted   []string
	retried   map[string]int32
	processed chan struct{}
}

func newFakeQueue(msgs ...types.Message) *fakeQueue {
	return &fakeQueue{pending: msgs, retried: map[string]int32{}, processed: make(chan struct{}, len(msgs))}
}

func (q *fakeQueue) ReceiveMessage(ctx context.Context, _ *sqs.ReceiveMessageInput, _ ...func(*sqs.Options)) (*sqs.ReceiveMessageOutput, error) {
	q.mu.Lock()
	if len(q.pending) > 0 {
		out := q.pending
		q.pending = nil
		q.mu.Unlock()
		return &sqs.ReceiveMessageOutput{Messages: out}, nil
	}
	q.mu.Unlock()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-time.After(5 * time.Millisecond):
		return &sqs.ReceiveMessageOutput{}, nil
	}
}

func (q *fakeQueue) DeleteMessage(_ context.Context, params *sqs.DeleteMessageInput, _ ...func(*sqs.Options)) (*sqs.DeleteMessageOutput, error) {
	q.mu.Lock()
	q.deleted = append(q.deleted, aws.ToString(params.ReceiptHandle))
	q.mu.Unlock()
	q.processed <- struct{}{}
	return &sqs.DeleteMessageOutput{}, nil
}

func (q *fakeQueue) ChangeMessageVisibility(_ context.Context, params *sqs.ChangeMessageVisibilityInput, _ ...func(*sqs.Options)) (*sqs.ChangeMessageVisibilityOutput, error) {
	q.mu.Lock()
	q.retried[aws.ToString(params.ReceiptHandle)] = params.VisibilityTimeout
	q.mu.Unlock()
	q.processed <- struct{}{}
	return &sqs.ChangeMessageVisibilityOutput{}, nil
}

type scriptedProcessor struct {
	outcomes map[string]struct {
		retry bool
		delay int32
		err   error
	}
	done chan struct{}
}

func (p *scriptedProcessor) Process(_ context.Context, msg types.Message) (bool, int32, error) {
	o := p.outcomes[aws.ToString(msg.Body)]
	if o.err != nil && !o.retry {
		p.done <- struct{}{}
	}
	return o.retry, o.delay, o.err
}

func message(id string) types.Message {
	return types.Message{MessageId: aws.String(id), ReceiptHandle: aws.String("rh-" + id), Body: aws.String(id)}
}

func TestWorker_DeletesRetriesAndDrops(t *testing.T) {
	q := newFakeQueue(message("ok"), message("flaky"), message("bad"))
	proc := &scriptedProcessor{
		outcomes: map[string]struct {
			retry bool
			delay int32
			err   error
		}{
			"ok":    {},
			"flaky": {retry: true, delay: 40, err: errors.New("ses throttled")},
			"bad":   {err: errors.New("malformed")},
		},
		done: make(chan struct{}, 1),
	}

	w := NewWorker(q, "http://queue/reports", proc)
	w.Concurrency = 2
	ctx, cancel := context.WithCancel(context.Background())
	stopped := make(chan struct{})
	go func() {
		w.Start(ctx)
		close(stopped)
	}()

	for i := 0; i < 2; i++ {
		select {
		case <-q.processed:
		case <-time.After(2 * time.Second):
			t.Fatal("timed out waiting for messages to be acknowledged")
		}
	}
	select {
	case <-proc.done:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for malformed message")
	}

	cancel()
	select {
	case <-stopped:
	case <-time.After(2 * time.Second):
		t.Fatal("worker did not stop after cancel")
	}

	q.mu.Lock()
	defer q.mu.Unlock()
	require.Equal(t, []string{"rh-ok"}, q.deleted)
	assert.Equal(t, map[string]int32{"rh-flaky": 40}, q.retried)
}
