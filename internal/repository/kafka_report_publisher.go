package repository

import (
	"context"
	"time"

	"MomentumReport/internal/domain/models"
	domrepo "MomentumReport/internal/domain/repository"
	pkgkafka "MomentumReport/pkg/kafka"
)

// ReportEvent is the message published for each generated report.
type ReportEvent struct {
	ID           string                  `json:"id"`
	Date         string                  `json:"date"`
	Stance       string                  `json:"stance"`
	Category     string                  `json:"category"`
	MarketClosed bool                    `json:"market_closed"`
	Reason       string                  `json:"reason"`
	Signal       models.MarketSignal     `json:"signal"`
	Watchlist    []models.WatchlistEntry `json:"watchlist"`
	GeneratedAt  time.Time               `json:"generated_at"`
}

// NewReportEvent flattens a document into its event form.
func NewReportEvent(doc *models.ReportDocument) ReportEvent {
	category := doc.Stance.Category()
	if doc.MarketClosed {
		category = "closed"
	}
	return ReportEvent{
		ID:           doc.ID,
		Date:         doc.Date,
		Stance:       doc.Stance.String(),
		Category:     category,
		MarketClosed: doc.MarketClosed,
		Reason:       doc.Reason,
		Signal:       doc.Signal,
		Watchlist:    doc.Watchlist,
		GeneratedAt:  doc.GeneratedAt,
	}
}

// KafkaReportPublisher publishes report events keyed by date.
type KafkaReportPublisher struct {
	producer *pkgkafka.Producer
	topic    string
}

func NewKafkaReportPublisher(producer *pkgkafka.Producer, topic string) *KafkaReportPublisher {
	return &KafkaReportPublisher{producer: producer, topic: topic}
}

func (p *KafkaReportPublisher) Publish(ctx context.Context, doc *models.ReportDocument) error {
	return p.producer.Publish(ctx, p.topic, []byte(doc.Date), NewReportEvent(doc), map[string]string{
		"event": "report.generated",
	})
}

func (p *KafkaReportPublisher) Close() error {
	if p.producer != nil {
		return p.producer.Close()
	}
	return nil
}

var _ domrepo.ReportPublisher = (*KafkaReportPublisher)(nil)
