package repository

import (
	"context"

	"MomentumReport/internal/domain/models"
)

// ReportStore persists rendered reports.
type ReportStore interface {
	Save(ctx context.Context, doc *models.ReportDocument, rendered string) error
}

// ReportArchive lists previously stored reports, newest first.
type ReportArchive interface {
	Recent(ctx context.Context, limit int) ([]models.ReportSummary, error)
}

// ReportPublisher fans a generated report out to downstream consumers.
type ReportPublisher interface {
	Publish(ctx context.Context, doc *models.ReportDocument) error
	Close() error
}

// DeliveryGuard ensures a report date is delivered at most once.
type DeliveryGuard interface {
	Acquire(ctx context.Context, date string) (bool, error)
	Release(ctx context.Context, date string) error
}

// Metrics records pipeline measurements.
type Metrics interface {
	RecordReport(stance string, closed bool)
	RecordDelivery(result string)
	RecordError(kind string)
	RecordSignal(vix, indexReturn float64)
	RecordLatency(op string, seconds float64)
}
