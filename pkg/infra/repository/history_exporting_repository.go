package repository

import (
	"context"

	"github.com/NeuralTrust/TMSHarness/pkg/domain/record"
	"github.com/sirupsen/logrus"
)

//go:generate mockery --name=RecordExporter --dir=. --output=./mocks --filename=record_exporter_mock.go --case=underscore --with-expecter
type RecordExporter interface {
	Export(ctx context.Context, rec record.TestRecord) error
}

// ExportingHistoryRepository forwards every appended record to an exporter.
// Export failures are logged and never fail the append.
type ExportingHistoryRepository struct {
	record.Repository
	exporter RecordExporter
	logger   *logrus.Logger
}

func NewExportingHistoryRepository(
	inner record.Repository,
	exporter RecordExporter,
	logger *logrus.Logger,
) record.Repository {
	return &ExportingHistoryRepository{
		Repository: inner,
		exporter:   exporter,
		logger:     logger,
	}
}

func (r *ExportingHistoryRepository) Append(ctx context.Context, rec record.TestRecord) error {
	if err := r.Repository.Append(ctx, rec); err != nil {
		return err
	}
	if err := r.exporter.Export(ctx, rec); err != nil {
		r.logger.WithError(err).WithField("type", rec.Type).Warn("failed to export test record")
	}
	return nil
}
