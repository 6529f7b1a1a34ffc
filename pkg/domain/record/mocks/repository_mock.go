package mocks

import (
	"context"

	"github.com/NeuralTrust/TMSHarness/pkg/domain/record"
	"github.com/stretchr/testify/mock"
)

type Repository struct {
	mock.Mock
}

func (m *Repository) Append(ctx context.Context, r record.TestRecord) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *Repository) List(ctx context.Context, limit int) ([]record.TestRecord, error) {
	args := m.Called(ctx, limit)
	records, _ := args.Get(0).([]record.TestRecord) //nolint:errcheck
	return records, args.Error(1)
}

func (m *Repository) Count(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *Repository) Clear(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
