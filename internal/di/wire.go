//go:build wireinject
// +build wireinject

package di

import (
	"github.com/google/wire"

	"MomentumReport/pkg/config"
	"MomentumReport/pkg/server"
)

// InitializeApp wires up all dependencies and returns the application.
// The returned cleanup releases cache and ClickHouse connections.
func InitializeApp(cfg *config.Config) (*server.App, func(), error) {
	wire.Build(
		ProvideLogger,
		ProvideMetrics,

		// Infrastructure clients
		ProvideCache,
		ProvideClickHouseClient,
		ProvideKafkaProducer,

		// Upstream services
		ProvideMarketData,
		ProvideSearch,
		ProvideNotifier,

		// Repositories
		ProvideFileStore,
		ProvideCHReportStore,
		ProvideReportArchive,
		ProvideReportPublisher,
		ProvideDeliveryGuard,

		// Use cases
		ProvideClassifier,
		ProvideComposer,
		ProvideReportGenerator,
		ProvideReportService,
		ProvideReportPipeline,
		ProvideScheduler,

		// Application
		ProvideHTTPHandler,
		ProvideApp,
	)
	return nil, nil, nil
}
