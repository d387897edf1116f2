package core

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/stretchr/testify/mock"

	"sla.service/internal/core/model"
	"sla.service/internal/ports/messaging"
)

type MockRecordSource struct {
	mock.Mock
}

func (m *MockRecordSource) FetchDurationRecords(ctx context.Context, workspaceID string, filter model.Filter) ([]model.DurationRecord, error) {
	args := m.Called(ctx, workspaceID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.DurationRecord), args.Error(1)
}

type MockDurationStore struct {
	MockRecordSource
}

func (m *MockDurationStore) CreateDuration(ctx context.Context, rec model.DurationRecord) error {
	return m.Called(ctx, rec).Error(0)
}

func (m *MockDurationStore) GetDuration(ctx context.Context, workspaceID, id string) (*model.DurationRecord, error) {
	args := m.Called(ctx, workspaceID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.DurationRecord), args.Error(1)
}

func (m *MockDurationStore) DeleteDuration(ctx context.Context, workspaceID, id string) error {
	return m.Called(ctx, workspaceID, id).Error(0)
}

type MockReportRequestStore struct {
	mock.Mock
}

func (m *MockReportRequestStore) CreateReportRequest(ctx context.Context, req model.ReportRequest) error {
	return m.Called(ctx, req).Error(0)
}

func (m *MockReportRequestStore) GetReportRequest(ctx context.Context, id string) (*model.ReportRequest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ReportRequest), args.Error(1)
}

func (m *MockReportRequestStore) UpdateReportStatus(ctx context.Context, id string, status model.ReportStatus, retryCount int) error {
	return m.Called(ctx, id, status, retryCount).Error(0)
}

type MockProducer struct {
	mock.Mock
}

func (m *MockProducer) PublishReportRequested(ctx context.Context, event messaging.ReportRequestedEvent) error {
	return m.Called(ctx, event).Error(0)
}

type MockSESClient struct {
	mock.Mock
}

func (m *MockSESClient) SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ses.SendEmailOutput), args.Error(1)
}
