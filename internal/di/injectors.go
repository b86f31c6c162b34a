//go:build wireinject
// +build wireinject

package di

import (
	wire "github.com/google/wire"
	"langtrack/internal"
	"langtrack/internal/controllers"
	"langtrack/internal/providers"
	"langtrack/internal/services"
	"langtrack/internal/session"
	"langtrack/internal/signals"
	"langtrack/internal/storage"
	"langtrack/internal/structures"
)

var storageSet = wire.NewSet(
	providers.NewConfigProvider,
	providers.NewLogProvider,
	providers.NewMetricsProvider,
	providers.NewInstrumentedCacheProvider,

	storage.NewZstdCompressor,
	storage.NewStore,
	services.NewTrackingService,
)

func InitApp(cfg *structures.CliFlags) (*internal.App, error) {

	wire.Build(
		storageSet,
		storage.NewScheduler,

		signals.NewPageContext,
		signals.NewExtractor,
		provideCollector,
		wire.Bind(new(session.Gatherer), new(*signals.Collector)),
		provideLedger,
		session.NewScheduler,
		session.NewController,

		controllers.NewApiController,
		controllers.NewSessionController,
		controllers.NewHealthController,
		internal.InitRoutes,
		internal.NewApp,
	)

	return nil, nil
}

func InitTracking(cfg *structures.CliFlags) (*Tracking, func(), error) {

	wire.Build(
		storageSet,
		provideTracking,
	)

	return nil, nil, nil
}
