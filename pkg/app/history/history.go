package history

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/NeuralTrust/TMSHarness/pkg/common"
	"github.com/NeuralTrust/TMSHarness/pkg/domain/record"
	"github.com/NeuralTrust/TMSHarness/pkg/infra/prometheus"
	"github.com/sirupsen/logrus"
)

type Service interface {
	// Record appends r. Storage failures are logged, never returned, so a
	// broken history backend cannot fail a test run.
	Record(ctx context.Context, r record.TestRecord)
	Recent(ctx context.Context) ([]record.TestRecord, error)
	Count(ctx context.Context) (int, error)
	Stats(ctx context.Context) (record.Stats, error)
	Clear(ctx context.Context) error
	Now() time.Time
}

type service struct {
	logger  *logrus.Logger
	repo    record.Repository
	now     func() time.Time
	metrics bool
}

type Option func(*service)

func WithClock(now func() time.Time) Option {
	return func(s *service) {
		s.now = now
	}
}

func WithMetrics(enabled bool) Option {
	return func(s *service) {
		s.metrics = enabled
	}
}

func NewService(logger *logrus.Logger, repo record.Repository, opts ...Option) Service {
	s := &service{
		logger: logger,
		repo:   repo,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *service) Now() time.Time {
	return s.now()
}

func (s *service) Record(ctx context.Context, r record.TestRecord) {
	if err := s.repo.Append(ctx, r); err != nil {
		s.logger.WithError(err).WithFields(logrus.Fields{
			"type":       r.Type,
			"message_id": r.MessageID,
		}).Error("failed to store test record")
	}
	if s.metrics {
		prometheus.TestRunsTotal.WithLabelValues(r.Type, strconv.FormatBool(r.Success)).Inc()
	}
}

func (s *service) Recent(ctx context.Context) ([]record.TestRecord, error) {
	records, err := s.repo.List(ctx, common.HistoryPageSize)
	if err != nil {
		return nil, fmt.Errorf("failed to list history: %w", err)
	}
	return records, nil
}

func (s *service) Count(ctx context.Context) (int, error) {
	n, err := s.repo.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to count history: %w", err)
	}
	return n, nil
}

func (s *service) Stats(ctx context.Context) (record.Stats, error) {
	records, err := s.repo.List(ctx, 0)
	if err != nil {
		return record.Stats{}, fmt.Errorf("failed to read history: %w", err)
	}
	return record.ComputeStats(records), nil
}

func (s *service) Clear(ctx context.Context) error {
	if err := s.repo.Clear(ctx); err != nil {
		return fmt.Errorf("failed to clear history: %w", err)
	}
	return nil
}
