package di

import (
	"context"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	domrepo "MomentumReport/internal/domain/repository"
	domsvc "MomentumReport/internal/domain/service"
	"MomentumReport/internal/handler/api"
	internalrepo "MomentumReport/internal/repository"
	"MomentumReport/internal/service/feishu"
	"MomentumReport/internal/service/search"
	"MomentumReport/internal/service/yahoo"
	"MomentumReport/internal/services/analytics"
	"MomentumReport/internal/usecase"
	"MomentumReport/pkg/cache"
	pkgch "MomentumReport/pkg/clickhouse"
	"MomentumReport/pkg/config"
	xhttp "MomentumReport/pkg/http"
	pkgkafka "MomentumReport/pkg/kafka"
	"MomentumReport/pkg/logger"
	"MomentumReport/pkg/metrics"
	"MomentumReport/pkg/server"
)

// ProvideLogger creates the application logger from config.
func ProvideLogger(cfg *config.Config) (*logger.Logger, error) {
	return logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
}

// ProvideMetrics creates a Prometheus metrics recorder on the default registry.
func ProvideMetrics() domrepo.Metrics {
	return metrics.New(prometheus.DefaultRegisterer)
}

// ProvideCache returns a Redis-backed layered cache when Redis is enabled and
// an in-process cache otherwise.
func ProvideCache(cfg *config.Config) (cache.Service, func(), error) {
	if !cfg.Redis.Enabled {
		mc := cache.NewMemoryCache()
		return mc, func() { _ = mc.Close() }, nil
	}

	rc, err := cache.NewRedisCache(
		cache.WithRedisHost(cfg.Redis.Host),
		cache.WithRedisPort(cfg.Redis.Port),
		cache.WithRedisPassword(cfg.Redis.Password),
		cache.WithRedisDB(cfg.Redis.DB),
		cache.WithRedisPrefix(cfg.Redis.Prefix),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("redis cache: %w", err)
	}
	lc := cache.NewLayeredCache(rc)
	return lc, func() { _ = lc.Close() }, nil
}

// ProvideClickHouseClient creates a ClickHouse client and the report schema.
// Returns nil when ClickHouse is disabled.
func ProvideClickHouseClient(cfg *config.Config) (*pkgch.Client, func(), error) {
	if !cfg.ClickHouse.Enabled {
		return nil, func() {}, nil
	}

	client, err := pkgch.NewClient(
		pkgch.WithHost(cfg.ClickHouse.Host),
		pkgch.WithPort(cfg.ClickHouse.Port),
		pkgch.WithDatabase(cfg.ClickHouse.Database),
		pkgch.WithCredentials(cfg.ClickHouse.User, cfg.ClickHouse.Password),
		pkgch.WithHTTP(cfg.ClickHouse.UseHTTP),
		pkgch.WithTimeouts(cfg.ClickHouse.DialTimeout, cfg.ClickHouse.ReadTimeout),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("clickhouse client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := client.InitSchema(ctx, internalrepo.ReportSchema); err != nil {
		_ = client.Close()
		return nil, nil, fmt.Errorf("clickhouse schema: %w", err)
	}

	return client, func() { _ = client.Close() }, nil
}

// ProvideKafkaProducer creates a Kafka producer. Returns nil when Kafka is disabled.
func ProvideKafkaProducer(cfg *config.Config) (*pkgkafka.Producer, error) {
	if !cfg.Kafka.Enabled {
		return nil, nil
	}

	producer, err := pkgkafka.NewProducer(
		pkgkafka.WithBrokers(cfg.Kafka.Brokers),
		pkgkafka.WithCompression(cfg.Kafka.Compression),
		pkgkafka.WithRequiredAcks(cfg.Kafka.RequiredAcks),
		pkgkafka.WithTimeouts(cfg.Kafka.WriteTimeout, cfg.Kafka.WriteTimeout),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka producer: %w", err)
	}
	return producer, nil
}

// ProvideMarketData creates the Yahoo chart client.
func ProvideMarketData(cfg *config.Config) domsvc.MarketDataProvider {
	return yahoo.New(cfg.Market.BaseURL, cfg.Market.RequestsPerSecond, cfg.Market.Timeout)
}

// ProvideSearch creates the search client, or nil when search is disabled.
func ProvideSearch(cfg *config.Config) domsvc.SearchProvider {
	if !cfg.Search.Enabled {
		return nil
	}
	return search.New(cfg.Search.URL, cfg.Search.Count, cfg.Search.Timeout)
}

// ProvideNotifier creates the webhook notifier, or nil when delivery is off.
func ProvideNotifier(cfg *config.Config, log *logger.Logger) domsvc.Notifier {
	if !cfg.NotifierActive() {
		return nil
	}
	return feishu.New(cfg.Notifier.WebhookURL,
		feishu.WithFormat(cfg.Notifier.Format),
		feishu.WithTimeout(cfg.Notifier.Timeout),
		feishu.WithLogger(log),
	)
}

func ProvideClassifier(cfg *config.Config) *analytics.Classifier {
	return analytics.NewClassifier(analytics.ClassifierConfig{
		DefaultVolatility: cfg.Classifier.DefaultVolatility,
		DefaultTrend:      cfg.Classifier.DefaultTrend,
	})
}

func ProvideComposer(cfg *config.Config) *usecase.ReportComposer {
	return usecase.NewReportComposer(cfg.Report.Trader)
}

// ProvideReportGenerator creates the generation use case.
func ProvideReportGenerator(
	cfg *config.Config,
	market domsvc.MarketDataProvider,
	search domsvc.SearchProvider,
	classifier *analytics.Classifier,
	composer *usecase.ReportComposer,
	c cache.Service,
	m domrepo.Metrics,
	log *logger.Logger,
) *usecase.ReportGenerator {
	return usecase.NewReportGenerator(usecase.GeneratorConfig{
		VolatilitySymbol: cfg.Market.VolatilitySymbol,
		IndexSymbol:      cfg.Market.IndexSymbol,
		SignalRange:      cfg.Market.SignalRange,
		HistoryRange:     cfg.Report.HistoryRange,
		NewsCount:        cfg.Report.NewsCount,
		Universe:         cfg.Report.Universe,
		CacheTTL:         cfg.Redis.ReportTTL,
	}, market, search, classifier, composer, c, m, log)
}

// ProvideFileStore creates the primary markdown store.
func ProvideFileStore(cfg *config.Config) *internalrepo.FileReportStore {
	return internalrepo.NewFileReportStore(cfg.Report.OutputDir)
}

// ProvideCHReportStore creates the ClickHouse archive, or nil without a client.
func ProvideCHReportStore(ch *pkgch.Client, log *logger.Logger) *internalrepo.CHReportStore {
	if ch == nil {
		return nil
	}
	return internalrepo.NewCHReportStore(ch, log)
}

// ProvideReportArchive exposes the ClickHouse store for history reads.
func ProvideReportArchive(store *internalrepo.CHReportStore) domrepo.ReportArchive {
	if store == nil {
		return nil
	}
	return store
}

// ProvideReportPublisher creates the Kafka publisher, or nil without a producer.
func ProvideReportPublisher(cfg *config.Config, producer *pkgkafka.Producer) domrepo.ReportPublisher {
	if producer == nil {
		return nil
	}
	return internalrepo.NewKafkaReportPublisher(producer, cfg.Kafka.Topic)
}

// ProvideDeliveryGuard creates the once-per-date delivery guard.
func ProvideDeliveryGuard(cfg *config.Config, c cache.Service) domrepo.DeliveryGuard {
	return internalrepo.NewCacheDeliveryGuard(c, cfg.Redis.GuardTTL)
}

// ProvideReportService creates the persistence and delivery use case.
func ProvideReportService(
	cfg *config.Config,
	primary *internalrepo.FileReportStore,
	chStore *internalrepo.CHReportStore,
	publisher domrepo.ReportPublisher,
	notifier domsvc.Notifier,
	guard domrepo.DeliveryGuard,
	m domrepo.Metrics,
	log *logger.Logger,
) *usecase.ReportService {
	var archives []domrepo.ReportStore
	if chStore != nil {
		archives = append(archives, chStore)
	}
	return usecase.NewReportService(usecase.NewReportRenderer(), primary, usecase.ReportServiceDeps{
		Archives:   archives,
		Publisher:  publisher,
		Notifier:   notifier,
		Guard:      guard,
		SkipClosed: cfg.Notifier.SkipClosed,
	}, m, log)
}

func ProvideReportPipeline(gen *usecase.ReportGenerator, svc *usecase.ReportService, log *logger.Logger) *usecase.ReportPipeline {
	return usecase.NewReportPipeline(gen, svc, log)
}

// ProvideScheduler creates the cron runner in the report timezone.
func ProvideScheduler(cfg *config.Config, p *usecase.ReportPipeline, log *logger.Logger) *usecase.Scheduler {
	return usecase.NewScheduler(cfg.Schedule.Cron, cfg.Location(), p, cfg.Schedule.Timeout, log)
}

// ProvideHTTPHandler creates the report API handler.
func ProvideHTTPHandler(
	cfg *config.Config,
	log *logger.Logger,
	gen *usecase.ReportGenerator,
	svc *usecase.ReportService,
	archive domrepo.ReportArchive,
) xhttp.Handler {
	return api.NewReportEchoHandler(log, gen, svc, archive, cfg.Location())
}

// ProvideApp creates the application.
func ProvideApp(
	cfg *config.Config,
	log *logger.Logger,
	gen *usecase.ReportGenerator,
	svc *usecase.ReportService,
	p *usecase.ReportPipeline,
	s *usecase.Scheduler,
	h xhttp.Handler,
) *server.App {
	return server.New(cfg, log, gen, svc, p, s, h)
}
