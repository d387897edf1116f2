package messaging

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sla.service/internal/core/model"
)

type fakeSQS struct {
	inputs []*sqs.SendMessageInput
	err    error
}

func (f *fakeSQS) SendMessage(_ context.Context, params *sqs.SendMessageInput, _ ...func(*sqs.Options)) (*sqs.SendMessageOutput, error) {
	f.inputs = append(f.inputs, params)
	return &sqs.SendMessageOutput{}, f.err
}

func TestProducer_PublishReportRequested(t *testing.T) {
	client := &fakeSQS{}
	p := NewSQSProducer(client, "http://queue/reports")

	event := ReportRequestedEvent{
		RequestID:   "req-1",
		WorkspaceID: "ws1",
		Recipient:   "lead@example.com",
		Filter:      model.Filter{From: "2024-03-01"},
		RequestedAt: time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC),
	}
	require.NoError(t, p.PublishReportRequested(context.Background(), event))

	require.Len(t, client.inputs, 1)
	in := client.inputs[0]
	assert.Equal(t, "http://queue/reports", *in.QueueUrl)
	assert.Equal(t, EventTypeReportRequested, *in.MessageAttributes["EventType"].StringValue)

	var decoded ReportRequestedEvent
	require.NoError(t, json.Unmarshal([]byte(*in.MessageBody), &decoded))
	assert.Equal(t, event, decoded)
}

func TestProducer_SendFailure(t *testing.T) {
	client := &fakeSQS{err: errors.New("queue down")}
	p := NewSQSProducer(client, "http://queue/reports")

	err := p.PublishReportRequested(context.Background(), ReportRequestedEvent{RequestID: "req-1"})

	assert.ErrorContains(t, err, "queue down")
}
