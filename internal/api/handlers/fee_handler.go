package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/ridvanpektas1990-bit/amz/internal/service"
	"github.com/ridvanpektas1990-bit/amz/internal/spapi"
)

type FeeHandler struct {
	fees          *service.FeeService
	defaultTenant string
	defaultRegion string
}

func NewFeeHandler(fees *service.FeeService, defaultTenant, defaultRegion string) *FeeHandler {
	return &FeeHandler{fees: fees, defaultTenant: defaultTenant, defaultRegion: defaultRegion}
}

// GetOrderFees returns the merged fee report for one order.
func (h *FeeHandler) GetOrderFees(c *gin.Context) {
	orderID := c.Param("orderID")
	if orderID == "" {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "order id is required"})
		return
	}

	tenantID := c.DefaultQuery("tenant", h.defaultTenant)
	region := c.DefaultQuery("region", h.defaultRegion)

	report, err := h.fees.OrderFees(c.Request.Context(), tenantID, region, orderID)
	if err != nil {
		respondServiceError(c, err, "failed to fetch order fees")
		return
	}

	c.JSON(http.StatusOK, report)
}

// respondServiceError maps service errors onto HTTP statuses shared by the
// fee and forecast handlers.
func respondServiceError(c *gin.Context, err error, msg string) {
	var upstream *spapi.UpstreamError

	switch {
	case errors.Is(err, service.ErrNoConnection):
		c.JSON(http.StatusNotFound, gin.H{"error": "no seller connection for region"})
	case errors.Is(err, service.ErrMissingSKU):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "sku is required"})
	case errors.As(err, &upstream):
		log.Error().Err(err).Msg(msg)
		c.JSON(http.StatusBadGateway, gin.H{"error": "selling partner api error", "upstream_status": upstream.StatusCode})
	default:
		log.Error().Err(err).Msg(msg)
		c.JSON(http.StatusInternalServerError, gin.H{"error": msg})
	}
}
