package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ridvanpektas1990-bit/amz/internal/service"
)

type ForecastHandler struct {
	forecast      *service.ForecastService
	defaultTenant string
	defaultRegion string
}

func NewForecastHandler(forecast *service.ForecastService, defaultTenant, defaultRegion string) *ForecastHandler {
	return &ForecastHandler{forecast: forecast, defaultTenant: defaultTenant, defaultRegion: defaultRegion}
}

// GetOOSForecast returns the depletion and reorder projection for one SKU.
func (h *ForecastHandler) GetOOSForecast(c *gin.Context) {
	sku := c.Query("sku")
	tenantID := c.DefaultQuery("tenant", h.defaultTenant)
	region := c.DefaultQuery("region", h.defaultRegion)

	result, err := h.forecast.OOSForecast(c.Request.Context(), tenantID, region, sku)
	if err != nil {
		respondServiceError(c, err, "failed to build oos forecast")
		return
	}

	c.JSON(http.StatusOK, result)
}
