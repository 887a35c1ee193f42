package storage

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type MockStorage struct {
	mock.Mock
}

var _ Interface = &MockStorage{}

func (m *MockStorage) SaveStageRun(ctx context.Context, run StageRun) error {
	args := m.Called(ctx, run)
	return args.Error(0)
}

func (m *MockStorage) GetRunHistory(ctx context.Context, runID string) ([]StageRun, error) {
	args := m.Called(ctx, runID)
	if history, ok := args.Get(0).([]StageRun); ok {
		return history, args.Error(1)
	}
	return nil, args.Error(1)
}
