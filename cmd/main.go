package main

import (
	"context"

	"github.com/lshigami/Lukman/config"
	"github.com/lshigami/Lukman/database"
	_ "github.com/lshigami/Lukman/docs"
	"github.com/lshigami/Lukman/internal/controller/advice"
	"github.com/lshigami/Lukman/internal/controller/health"
	"github.com/lshigami/Lukman/internal/controller/history"
	"github.com/lshigami/Lukman/internal/logger"
	"github.com/lshigami/Lukman/internal/repository"
	"github.com/lshigami/Lukman/internal/server"
	"github.com/lshigami/Lukman/internal/service"
	"github.com/rs/zerolog/log"
	"go.uber.org/fx"
)

// @title Türkmen Lukmançylyk Maslahat API
// @version 1.0.0
// @description Türkmen dilinde lukmançylyk maslahat berýän API. Questions are answered by Gemini and stored for history.
// @contact.name API Support
// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html
// @host localhost:8000
// @BasePath /
// @schemes http https
func main() {
	app := fx.New(
		fx.Provide(
			provideConfig,
			database.NewDatabase,
			server.NewGinEngine,
		),

		fx.Provide(
			repository.NewQueryRepository,
		),

		fx.Provide(
			provideGenerator,
			service.NewAdviceService,
			service.NewHistoryService,
		),

		fx.Provide(
			health.NewHealthController,
			advice.NewAdviceController,
			history.NewHistoryController,
		),

		fx.Invoke(database.AutoMigrate),
		fx.Invoke(server.RegisterRoutes),
		fx.Invoke(server.StartServer),
	)

	if err := app.Start(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("Failed to start application")
	}

	<-app.Done()
	log.Info().Msg("Application shutting down gracefully...")
	if err := app.Stop(context.Background()); err != nil {
		log.Error().Err(err).Msg("Application stop failed")
	}
}

func provideConfig() (*config.Config, error) {
	cfg, err := config.NewConfig()
	if err != nil {
		return nil, err
	}
	logger.Init(cfg.Log.Level, cfg.Log.Format)
	return cfg, nil
}

// provideGenerator never fails the app: without a working Gemini client the
// service starts degraded and /advice answers 503.
func provideGenerator(lc fx.Lifecycle, cfg *config.Config) service.Generator {
	gen, err := service.NewGeminiGenerator(cfg)
	if err != nil {
		log.Error().Err(err).Msg("Gemini client not initialized; advice endpoint disabled")
		return nil
	}
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return gen.Close()
		},
	})
	return gen
}
