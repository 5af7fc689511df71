package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"myshop/internal/adapter/repo"
	"myshop/internal/catalog"
	"myshop/internal/domain"
	"myshop/internal/http/handlers"
	httpapi "myshop/internal/http/httpapi"
	"myshop/internal/infra"
	"myshop/internal/infra/geoip"
	"myshop/internal/simulation"
)

func main() {
	// Load .env when present.
	_ = godotenv.Load()

	cfg, err := infra.LoadConfig()
	if err != nil {
		panic(err)
	}
	logger := infra.NewLogger(cfg.AppEnv)
	ctx := context.Background()

	resolver, err := geoip.Open(cfg.GeoIPDBPath)
	if err != nil {
		logger.Warn().Err(err).Msg("geoip disabled")
	}
	defer resolver.Close()

	var assets domain.AssetRepository = catalog.NewSeededAssetStore()
	if cfg.UsePostgres() {
		dbpool, err := infra.NewDBPool(ctx, cfg)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to connect database")
		}
		defer dbpool.Close()

		pgAssets := repo.NewAssetRepository(infra.NewSQLRunner(dbpool, logger))
		if err := pgAssets.Migrate(ctx); err != nil {
			logger.Fatal().Err(err).Msg("failed to migrate asset library")
		}
		if err := pgAssets.Seed(ctx, catalog.SeedAssets()); err != nil {
			logger.Fatal().Err(err).Msg("failed to seed asset library")
		}
		assets = pgAssets
		logger.Info().Msg("asset library stored in postgres")
	}

	directory := catalog.NewDirectory()
	sim, err := simulation.NewService(simulation.Options{
		Logger:         &logger,
		Stores:         directory,
		Assets:         assets,
		Users:          directory,
		DefaultStoreID: cfg.DefaultStoreID,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to build simulation service")
	}

	app := &handlers.App{
		Sim:        sim,
		Directory:  directory,
		Accounts:   catalog.NewAccounts(),
		Assets:     assets,
		Logger:     logger,
		JWTSecret:  cfg.JWTSecret,
		SessionTTL: cfg.SessionTTL,
		Secure:     cfg.AppEnv == "production",
	}
	router := httpapi.NewRouter(app, httpapi.Options{
		CORSOrigins:     cfg.CORSAllowedOrigins,
		RateLimitPerMin: cfg.RateLimitPerMin,
		DefaultLocale:   cfg.DefaultLocale,
		CountryLookup:   resolver.Lookup(),
	})

	server := infra.NewHTTPServer(cfg, router)

	go func() {
		logger.Info().Msgf("API listening on :%s", cfg.Port)
		if err := server.Start(); err != nil {
			logger.Fatal().Err(err).Msg("http server failed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPIdleTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("failed to shutdown server")
	}
	logger.Info().Msg("server stopped")
}
