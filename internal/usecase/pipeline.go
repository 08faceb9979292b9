package usecase

import (
	"context"
	"time"

	"MomentumReport/internal/domain/models"
	"MomentumReport/pkg/logger"
)

// RunResult is the outcome of one pipeline run.
type RunResult struct {
	Document *models.ReportDocument
	Markdown string
	Delivery *models.DeliveryResult
}

// ReportPipeline generates, saves and optionally sends the report for a date.
type ReportPipeline struct {
	generator *ReportGenerator
	service   *ReportService
	log       *logger.Logger
}

func NewReportPipeline(generator *ReportGenerator, service *ReportService, log *logger.Logger) *ReportPipeline {
	return &ReportPipeline{generator: generator, service: service, log: log}
}

// Run returns an error only when generation or the primary save fails.
// Delivery problems are reported in RunResult.Delivery.
func (p *ReportPipeline) Run(ctx context.Context, date time.Time, send bool) (*RunResult, error) {
	doc, err := p.generator.Generate(ctx, date)
	if err != nil {
		return nil, err
	}

	md, err := p.service.Save(ctx, doc)
	if err != nil {
		return &RunResult{Document: doc, Markdown: md}, err
	}

	res := &RunResult{Document: doc, Markdown: md}
	if send {
		d := p.service.Send(ctx, doc, false)
		res.Delivery = &d
	}
	return res, nil
}
