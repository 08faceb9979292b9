package usecase

import (
	"context"
	"errors"
	"sync"
	"time"

	"MomentumReport/internal/domain/models"
)

var errNoData = errors.New("no data")

type fakeMarket struct {
	mu      sync.Mutex
	candles map[string][]models.Candle
	calls   []string
	asOf    []time.Time
}

func (m *fakeMarket) DailyCandles(_ context.Context, symbol, rng string, asOf time.Time) ([]models.Candle, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, symbol+"/"+rng)
	m.asOf = append(m.asOf, asOf)
	cs, ok := m.candles[symbol]
	if !ok {
		return nil, errNoData
	}
	return cs, nil
}

type fakeSearch struct {
	results map[string]string
	err     error
}

func (s *fakeSearch) Search(_ context.Context, query string) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	return s.results[query], nil
}

type recMetrics struct {
	mu         sync.Mutex
	reports    []string
	deliveries []string
	errs       []string
	vix        float64
}

func (m *recMetrics) RecordReport(stance string, _ bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reports = append(m.reports, stance)
}

func (m *recMetrics) RecordDelivery(result string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.deliveries = append(m.deliveries, result)
}

func (m *recMetrics) RecordError(kind string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errs = append(m.errs, kind)
}

func (m *recMetrics) RecordSignal(vix, _ float64) { m.vix = vix }

func (m *recMetrics) RecordLatency(string, float64) {}

type fakeStore struct {
	saved map[string]string
	err   error
}

func (s *fakeStore) Save(_ context.Context, doc *models.ReportDocument, rendered string) error {
	if s.err != nil {
		return s.err
	}
	if s.saved == nil {
		s.saved = map[string]string{}
	}
	s.saved[doc.Date] = rendered
	return nil
}

type fakePublisher struct {
	published []string
	err       error
	closed    bool
}

func (p *fakePublisher) Publish(_ context.Context, doc *models.ReportDocument) error {
	if p.err != nil {
		return p.err
	}
	p.published = append(p.published, doc.Date)
	return nil
}

func (p *fakePublisher) Close() error {
	p.closed = true
	return nil
}

type fakeNotifier struct {
	err      error
	calls    int
	rendered string
}

func (n *fakeNotifier) DeliverReport(_ context.Context, _ *models.ReportDocument, rendered string) error {
	n.calls++
	n.rendered = rendered
	return n.err
}

// series builds daily candles from closes with a flat volume, oldest first.
func series(symbol string, closes ...float64) []models.Candle {
	start := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	out := make([]models.Candle, len(closes))
	for i, c := range closes {
		out[i] = models.Candle{Bucket: start.AddDate(0, 0, i), Symbol: symbol, Close: c, Volume: 1000}
	}
	return out
}

// momentumSeries rises 100..118 then jumps to 125 on triple volume: score 7.
func momentumSeries(symbol string) []models.Candle {
	closes := make([]float64, 0, 20)
	for i := 0; i < 19; i++ {
		closes = append(closes, 100+float64(i))
	}
	closes = append(closes, 125)
	cs := series(symbol, closes...)
	cs[len(cs)-1].Volume = 3000
	return cs
}

func flatSeries(symbol string) []models.Candle {
	closes := make([]float64, 20)
	for i := range closes {
		closes[i] = 50
	}
	return series(symbol, closes...)
}

var (
	monday   = time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC)
	saturday = time.Date(2026, 10, 17, 0, 0, 0, 0, time.UTC)
)
