package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"MomentumReport/internal/domain/models"
	domrepo "MomentumReport/internal/domain/repository"
	domsvc "MomentumReport/internal/domain/service"
	"MomentumReport/pkg/logger"
)

// Delivery outcomes recorded in metrics.
const (
	deliverySuccess = "success"
	deliveryFailure = "failure"
	deliverySkipped = "skipped"
)

// ReportService persists and delivers generated reports.
type ReportService struct {
	renderer   *ReportRenderer
	primary    domrepo.ReportStore
	archives   []domrepo.ReportStore
	publisher  domrepo.ReportPublisher
	notifier   domsvc.Notifier
	guard      domrepo.DeliveryGuard
	skipClosed bool
	metrics    domrepo.Metrics
	log        *logger.Logger
}

// ReportServiceDeps groups the optional collaborators. Nil members are disabled.
type ReportServiceDeps struct {
	Archives   []domrepo.ReportStore
	Publisher  domrepo.ReportPublisher
	Notifier   domsvc.Notifier
	Guard      domrepo.DeliveryGuard
	SkipClosed bool
}

func NewReportService(renderer *ReportRenderer, primary domrepo.ReportStore, deps ReportServiceDeps, metrics domrepo.Metrics, log *logger.Logger) *ReportService {
	return &ReportService{
		renderer:   renderer,
		primary:    primary,
		archives:   deps.Archives,
		publisher:  deps.Publisher,
		notifier:   deps.Notifier,
		guard:      deps.Guard,
		skipClosed: deps.SkipClosed,
		metrics:    metrics,
		log:        log,
	}
}

// Render returns the markdown body of doc.
func (s *ReportService) Render(doc *models.ReportDocument) (string, error) {
	return s.renderer.Markdown(doc)
}

// RenderHTML returns doc as HTML.
func (s *ReportService) RenderHTML(doc *models.ReportDocument) (string, error) {
	return s.renderer.HTML(doc)
}

// Save writes the report file and fans out to archives and the publisher.
// Only a failure of the primary store is returned.
func (s *ReportService) Save(ctx context.Context, doc *models.ReportDocument) (string, error) {
	rendered, err := s.renderer.Markdown(doc)
	if err != nil {
		return "", err
	}

	if err := s.primary.Save(ctx, doc, rendered); err != nil {
		s.metrics.RecordError("store")
		return rendered, fmt.Errorf("save report %s: %w", doc.Date, err)
	}

	for _, a := range s.archives {
		if err := a.Save(ctx, doc, rendered); err != nil {
			s.log.Warn("Report archive failed", logger.String("date", doc.Date), logger.Error(err))
			s.metrics.RecordError("archive")
		}
	}

	if s.publisher != nil {
		if err := s.publisher.Publish(ctx, doc); err != nil {
			s.log.Warn("Report publish failed", logger.String("date", doc.Date), logger.Error(err))
			s.metrics.RecordError("publish")
		}
	}

	s.log.Info("Report saved", logger.String("date", doc.Date), logger.String("id", doc.ID))
	return rendered, nil
}

// Send delivers doc once. force bypasses the closed-day skip and the
// once-per-date guard. Failures are reported in the result, never returned.
func (s *ReportService) Send(ctx context.Context, doc *models.ReportDocument, force bool) models.DeliveryResult {
	log := s.log.With(logger.String("date", doc.Date))

	if s.notifier == nil {
		return s.skip(log, "notifier disabled or webhook not configured")
	}
	if doc.MarketClosed && s.skipClosed && !force {
		return s.skip(log, "market closed, delivery skipped")
	}

	if s.guard != nil && !force {
		ok, err := s.guard.Acquire(ctx, doc.Date)
		switch {
		case err != nil:
			log.Warn("Delivery guard unavailable, sending without it", logger.Error(err))
			s.metrics.RecordError("guard")
		case !ok:
			return s.skip(log, fmt.Sprintf("report for %s already delivered", doc.Date))
		}
	}

	rendered, err := s.renderer.Markdown(doc)
	if err != nil {
		s.release(ctx, log, doc.Date, force)
		s.metrics.RecordDelivery(deliveryFailure)
		return models.NewDeliveryResult(err)
	}

	start := time.Now()
	err = s.notifier.DeliverReport(ctx, doc, rendered)
	s.metrics.RecordLatency("deliver", time.Since(start).Seconds())

	if err != nil {
		s.release(ctx, log, doc.Date, force)
		s.metrics.RecordDelivery(deliveryFailure)
		s.metrics.RecordError("delivery_" + deliveryKind(err))
		log.Error("Report delivery failed", logger.Error(err))
		return models.NewDeliveryResult(err)
	}

	s.metrics.RecordDelivery(deliverySuccess)
	log.Info("Report delivered")
	return models.NewDeliveryResult(nil)
}

func (s *ReportService) skip(log *logger.Logger, msg string) models.DeliveryResult {
	s.metrics.RecordDelivery(deliverySkipped)
	log.Info("Report delivery skipped", logger.String("reason", msg))
	return models.DeliveryResult{Success: false, Skipped: true, Message: msg}
}

// release frees the date after a failed attempt so a later run may retry it.
func (s *ReportService) release(ctx context.Context, log *logger.Logger, date string, force bool) {
	if s.guard == nil || force {
		return
	}
	if err := s.guard.Release(ctx, date); err != nil {
		log.Warn("Delivery guard release failed", logger.Error(err))
	}
}

func deliveryKind(err error) string {
	var de *models.DeliveryError
	if errors.As(err, &de) {
		return string(de.Kind)
	}
	return "unknown"
}

// Close releases the publisher.
func (s *ReportService) Close() error {
	if s.publisher != nil {
		return s.publisher.Close()
	}
	return nil
}
