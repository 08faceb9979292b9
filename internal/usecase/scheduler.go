package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"MomentumReport/pkg/logger"
	"MomentumReport/pkg/util"
)

// Scheduler runs the report pipeline on a cron schedule in the report timezone.
type Scheduler struct {
	cron     *cron.Cron
	spec     string
	loc      *time.Location
	pipeline *ReportPipeline
	timeout  time.Duration
	log      *logger.Logger
}

func NewScheduler(spec string, loc *time.Location, pipeline *ReportPipeline, timeout time.Duration, log *logger.Logger) *Scheduler {
	if loc == nil {
		loc = time.UTC
	}
	if timeout <= 0 {
		timeout = 10 * time.Minute
	}
	return &Scheduler{
		cron:     cron.New(cron.WithLocation(loc)),
		spec:     spec,
		loc:      loc,
		pipeline: pipeline,
		timeout:  timeout,
		log:      log,
	}
}

// Start registers the daily job and starts the cron loop.
func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc(s.spec, s.runOnce); err != nil {
		return fmt.Errorf("invalid schedule %q: %w", s.spec, err)
	}
	s.cron.Start()
	s.log.Info("Report schedule started",
		logger.String("cron", s.spec),
		logger.String("timezone", s.loc.String()),
		logger.String("next", s.Next().Format(time.RFC3339)))
	return nil
}

// Next returns the next scheduled run, zero before Start.
func (s *Scheduler) Next() time.Time {
	entries := s.cron.Entries()
	if len(entries) == 0 {
		return time.Time{}
	}
	return entries[0].Next
}

// Stop stops the cron loop and waits for a running job to finish or ctx to end.
func (s *Scheduler) Stop(ctx context.Context) {
	done := s.cron.Stop()
	select {
	case <-done.Done():
	case <-ctx.Done():
	}
}

func (s *Scheduler) runOnce() {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	date := util.Today(s.loc)
	res, err := s.pipeline.Run(ctx, date, true)
	if err != nil {
		s.log.Error("Scheduled report failed", logger.String("date", util.FormatDate(date)), logger.Error(err))
		return
	}
	if res.Delivery != nil && !res.Delivery.Success && !res.Delivery.Skipped {
		s.log.Error("Scheduled delivery failed",
			logger.String("date", res.Document.Date),
			logger.String("message", res.Delivery.Message))
	}
}
