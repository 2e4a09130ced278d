//go:build wireinject
// +build wireinject

package di

import (
	wire "github.com/google/wire"

	"mindd/internal"
	"mindd/internal/controllers"
	"mindd/internal/jobs"
	"mindd/internal/mailer"
	"mindd/internal/models"
	"mindd/internal/persistence"
	"mindd/internal/providers"
	"mindd/internal/services"
	"mindd/internal/structures"
)

func InitApp(cfg *structures.CliFlags) (*internal.App, error) {

	wire.Build(
		providers.NewConfigProvider,
		providers.NewLogProvider,
		providers.NewSystemClock,
		providers.NewMetricsProvider,
		providers.NewInstrumentedCacheProvider,

		models.NewStores,
		mailer.NewNotifier,
		services.NewStatsService,
		services.NewPlanService,
		services.NewEngagementService,
		persistence.NewZstdCompressor,
		persistence.NewFileManager,
		jobs.NewScheduler,
		controllers.NewApiController,
		controllers.NewHealthController,
		internal.InitRoutes,
		internal.NewApp,
	)

	return nil, nil
}
