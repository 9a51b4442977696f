package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ridvanpektas1990-bit/amz/internal/domain"
	"github.com/ridvanpektas1990-bit/amz/internal/service"
)

type SalesHandler struct {
	sales         *service.SalesService
	defaultTenant string
}

func NewSalesHandler(sales *service.SalesService, defaultTenant string) *SalesHandler {
	return &SalesHandler{sales: sales, defaultTenant: defaultTenant}
}

// GetWeeklySales returns the 52-week series for one SKU. Year defaults to
// the current ISO year.
func (h *SalesHandler) GetWeeklySales(c *gin.Context) {
	sku := c.Query("sku")
	if sku == "" {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "sku is required"})
		return
	}

	year := time.Now().UTC().Year()
	if raw := c.Query("year"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 2000 || parsed > 2200 {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "invalid year"})
			return
		}
		year = parsed
	}

	filter := &domain.SalesFilter{
		TenantID: c.DefaultQuery("tenant", h.defaultTenant),
		SKU:      sku,
		Year:     year,
	}

	series, err := h.sales.WeeklySales(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to build weekly series"})
		return
	}

	c.JSON(http.StatusOK, series)
}
