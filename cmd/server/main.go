package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ridvanpektas1990-bit/amz/internal/api"
	"github.com/ridvanpektas1990-bit/amz/internal/cache"
	"github.com/ridvanpektas1990-bit/amz/internal/config"
	"github.com/ridvanpektas1990-bit/amz/internal/repository/postgres"
	"github.com/ridvanpektas1990-bit/amz/internal/service"
	"github.com/ridvanpektas1990-bit/amz/internal/spapi"
	"github.com/ridvanpektas1990-bit/amz/pkg/logger"
)

func main() {
	cfg := config.Load()

	if cfg.Server.Mode == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
		logger.SetLevel("info")
	}

	if err := cfg.RequireSPAPI(); err != nil {
		logger.Log.Fatal().Err(err).Msg("missing selling partner api credentials")
	}

	db, err := postgres.NewDB(&cfg.Database)
	if err != nil {
		logger.Log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	seriesCache, err := cache.NewWeeklySeriesCache(cfg.Cache)
	if err != nil {
		logger.Log.Warn().Err(err).Msg("cache unavailable, continuing without it")
		seriesCache = cache.NewNoopWeeklySeriesCache()
	}

	creds := spapi.Credentials{
		ClientID:     cfg.SPAPI.ClientID,
		ClientSecret: cfg.SPAPI.ClientSecret,
	}
	apiFactory := service.NewSellerAPIFactory(creds, cfg.SPAPI.Marketplace,
		spapi.WithPace(cfg.SPAPI.Pace()),
		spapi.WithMaxTokenPages(cfg.SPAPI.MaxTokenPages),
	)

	connService := service.NewConnectionService(postgres.NewConnectionRepository(db))
	salesService := service.NewSalesService(postgres.NewDemandFactRepository(db), seriesCache)
	feeService := service.NewFeeService(connService, apiFactory)
	forecastService := service.NewForecastService(salesService, connService, apiFactory)

	router := api.NewRouter(&api.Services{
		ConnectionService: connService,
		FeeService:        feeService,
		SalesService:      salesService,
		ForecastService:   forecastService,
	}, api.RouterConfig{
		AllowedOrigins: cfg.Server.AllowedOrigins,
		DefaultTenant:  cfg.SPAPI.DefaultTenant,
		DefaultRegion:  cfg.SPAPI.Region,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	go func() {
		logger.Log.Info().Str("port", cfg.Server.Port).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info().Msg("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	logger.Log.Info().Msg("server exiting")
}
