package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/ridvanpektas1990-bit/amz/internal/api/handlers"
	"github.com/ridvanpektas1990-bit/amz/internal/api/middleware"
	"github.com/ridvanpektas1990-bit/amz/internal/service"
)

type Services struct {
	ConnectionService *service.ConnectionService
	FeeService        *service.FeeService
	SalesService      *service.SalesService
	ForecastService   *service.ForecastService
}

type RouterConfig struct {
	AllowedOrigins []string
	DefaultTenant  string
	DefaultRegion  string
}

func NewRouter(services *Services, cfg RouterConfig) *gin.Engine {
	router := gin.New()

	router.Use(middleware.Logger())
	router.Use(middleware.Recovery())

	corsConfig := cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://127.0.0.1:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(cfg.AllowedOrigins) > 0 {
		normalizedOrigins, allowAll := normalizeAllowedOrigins(cfg.AllowedOrigins)
		if allowAll {
			corsConfig.AllowOrigins = nil
			corsConfig.AllowOriginFunc = func(origin string) bool { return true }
		} else if len(normalizedOrigins) > 0 {
			corsConfig.AllowOrigins = normalizedOrigins
		}
	}
	router.Use(cors.New(corsConfig))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	apiGroup := router.Group("/api/v1")

	if services != nil {
		if services.ConnectionService != nil {
			connHandler := handlers.NewConnectionHandler(services.ConnectionService, cfg.DefaultTenant)
			connGroup := apiGroup.Group("/connections")
			{
				connGroup.POST("", connHandler.Connect)
				connGroup.GET("", connHandler.List)
			}
		}

		if services.FeeService != nil {
			feeHandler := handlers.NewFeeHandler(services.FeeService, cfg.DefaultTenant, cfg.DefaultRegion)
			apiGroup.GET("/fees/orders/:orderID", feeHandler.GetOrderFees)
		}

		if services.SalesService != nil {
			salesHandler := handlers.NewSalesHandler(services.SalesService, cfg.DefaultTenant)
			apiGroup.GET("/sales/weekly", salesHandler.GetWeeklySales)
		}

		if services.ForecastService != nil {
			forecastHandler := handlers.NewForecastHandler(services.ForecastService, cfg.DefaultTenant, cfg.DefaultRegion)
			apiGroup.GET("/forecast/oos", forecastHandler.GetOOSForecast)
		}
	}

	return router
}

func normalizeAllowedOrigins(origins []string) ([]string, bool) {
	var (
		parsed   []string
		allowAll bool
	)
	for _, origin := range origins {
		parts := strings.Split(origin, ",")
		for _, part := range parts {
			trimmed := strings.TrimSpace(part)
			if trimmed == "" {
				continue
			}
			if trimmed == "*" {
				allowAll = true
				continue
			}
			parsed = append(parsed, trimmed)
		}
	}
	return parsed, allowAll
}
