package usecase

import (
	"context"
	"errors"
	"time"

	"MomentumReport/internal/domain/models"
	domrepo "MomentumReport/internal/domain/repository"
	domsvc "MomentumReport/internal/domain/service"
	"MomentumReport/internal/services/analytics"
	"MomentumReport/pkg/cache"
	"MomentumReport/pkg/config"
	"MomentumReport/pkg/logger"
	"MomentumReport/pkg/util"
)

const (
	volatilityQuery = "VIX volatility index today"
	newsQuery       = "US stock market news today"
)

// GeneratorConfig carries the market-data knobs of a run.
type GeneratorConfig struct {
	VolatilitySymbol string
	IndexSymbol      string
	SignalRange      string
	HistoryRange     string
	NewsCount        int
	Universe         []config.UniverseEntry
	CacheTTL         time.Duration
}

// ReportGenerator runs the fetch, classify, score and compose pipeline for one date.
type ReportGenerator struct {
	cfg        GeneratorConfig
	market     domsvc.MarketDataProvider
	search     domsvc.SearchProvider
	classifier *analytics.Classifier
	composer   *ReportComposer
	cache      cache.Service
	metrics    domrepo.Metrics
	log        *logger.Logger
}

// NewReportGenerator wires a generator. search and c may be nil.
func NewReportGenerator(
	cfg GeneratorConfig,
	market domsvc.MarketDataProvider,
	search domsvc.SearchProvider,
	classifier *analytics.Classifier,
	composer *ReportComposer,
	c cache.Service,
	metrics domrepo.Metrics,
	log *logger.Logger,
) *ReportGenerator {
	return &ReportGenerator{
		cfg:        cfg,
		market:     market,
		search:     search,
		classifier: classifier,
		composer:   composer,
		cache:      c,
		metrics:    metrics,
		log:        log,
	}
}

func reportKey(date string) string {
	return cache.GenerateKey("report", date)
}

// Report returns the cached document for date, generating it on a miss.
func (g *ReportGenerator) Report(ctx context.Context, date time.Time) (*models.ReportDocument, error) {
	if g.cache != nil {
		var doc models.ReportDocument
		err := g.cache.Get(ctx, reportKey(util.FormatDate(date)), &doc)
		if err == nil {
			return &doc, nil
		}
		if !errors.Is(err, cache.ErrCacheMiss) {
			g.log.Warn("Report cache read failed", logger.Error(err))
		}
	}
	return g.Generate(ctx, date)
}

// Generate builds a fresh document for date. Upstream failures degrade to
// fallback values; only a cancelled context is an error.
func (g *ReportGenerator) Generate(ctx context.Context, date time.Time) (*models.ReportDocument, error) {
	start := time.Now()
	log := g.log.With(logger.String("date", util.FormatDate(date)))

	var doc *models.ReportDocument
	if !IsTradingDay(date) {
		log.Info("Market closed, composing closed-market report")
		doc = g.composer.ClosedDocument(date)
	} else {
		signal := g.fetchSignal(ctx, date, log)
		stance, reason := g.classifier.Classify(signal)
		log.Info("Market classified",
			logger.String("stance", stance.String()),
			logger.Any("signal", signal))

		samples := g.scan(ctx, date, log)
		watchlist := analytics.SelectTop(samples)
		log.Info("Watchlist selected",
			logger.Int("scanned", len(samples)),
			logger.Strings("symbols", watchlistSymbols(watchlist)))

		news := g.fetchNews(ctx, log)
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		doc = g.composer.Compose(date, stance, reason, signal, watchlist, analytics.RiskNotes(stance, signal))
		doc.News = news
		g.metrics.RecordSignal(signal.VolatilityIndex, signal.IndexReturnPct)
	}

	category := doc.Stance.Category()
	if doc.MarketClosed {
		category = "closed"
	}
	g.metrics.RecordReport(category, doc.MarketClosed)
	g.metrics.RecordLatency("generate", time.Since(start).Seconds())

	if g.cache != nil {
		if err := g.cache.Set(ctx, reportKey(doc.Date), doc, g.cfg.CacheTTL); err != nil {
			log.Warn("Report cache write failed", logger.Error(err))
		}
	}
	return doc, nil
}

// fetchSignal prefers market data ending at date, then a VIX figure extracted
// from search text, then the neutral default.
func (g *ReportGenerator) fetchSignal(ctx context.Context, date time.Time, log *logger.Logger) models.MarketSignal {
	vix, err := g.market.DailyCandles(ctx, g.cfg.VolatilitySymbol, g.cfg.SignalRange, date)
	if err == nil {
		var idx []models.Candle
		idx, err = g.market.DailyCandles(ctx, g.cfg.IndexSymbol, g.cfg.SignalRange, date)
		if err == nil {
			var signal models.MarketSignal
			signal, err = SignalFromCandles(vix, idx)
			if err == nil {
				return signal
			}
		}
	}
	log.Warn("Market signal unavailable, falling back", logger.Error(err))
	g.metrics.RecordError("market_signal")

	signal := g.classifier.DefaultSignal()
	if g.search == nil {
		return signal
	}

	text, err := g.search.Search(ctx, volatilityQuery)
	if err != nil {
		log.Warn("Volatility search failed, using default signal", logger.Error(err))
		g.metrics.RecordError("search")
		return signal
	}
	if v, ok := analytics.ParseVolatilityIndex(text); ok {
		log.Info("Volatility index taken from search", logger.Float64("vix", v))
		signal.VolatilityIndex = v
		signal.Source = models.SourceSearch
	}
	return signal
}

func (g *ReportGenerator) scan(ctx context.Context, date time.Time, log *logger.Logger) []models.StockSample {
	samples := make([]models.StockSample, 0, len(g.cfg.Universe))
	for _, u := range g.cfg.Universe {
		if ctx.Err() != nil {
			break
		}

		candles, err := g.market.DailyCandles(ctx, u.Symbol, g.cfg.HistoryRange, date)
		if err != nil {
			log.Warn("Skipping symbol, no price data", logger.String("symbol", u.Symbol), logger.Error(err))
			g.metrics.RecordError("market_data")
			continue
		}

		s, err := analytics.BuildSample(u.Symbol, u.Rationale, candles)
		if err != nil {
			log.Debug("Skipping symbol", logger.String("symbol", u.Symbol), logger.Error(err))
			continue
		}
		samples = append(samples, s)
	}
	return samples
}

func watchlistSymbols(entries []models.WatchlistEntry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Symbol
	}
	return out
}

func (g *ReportGenerator) fetchNews(ctx context.Context, log *logger.Logger) []string {
	if g.search == nil || g.cfg.NewsCount <= 0 {
		return nil
	}
	text, err := g.search.Search(ctx, newsQuery)
	if err != nil {
		log.Warn("News search failed", logger.Error(err))
		g.metrics.RecordError("search")
		return nil
	}
	return analytics.ExtractHeadlines(text, g.cfg.NewsCount)
}
