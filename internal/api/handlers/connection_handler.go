package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/ridvanpektas1990-bit/amz/internal/domain"
	"github.com/ridvanpektas1990-bit/amz/internal/service"
)

type ConnectionHandler struct {
	conns         *service.ConnectionService
	defaultTenant string
}

func NewConnectionHandler(conns *service.ConnectionService, defaultTenant string) *ConnectionHandler {
	return &ConnectionHandler{conns: conns, defaultTenant: defaultTenant}
}

type connectRequest struct {
	Region       string `json:"region" binding:"required"`
	SellerID     string `json:"seller_id"`
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// Connect stores an SP-API authorization for the tenant.
func (h *ConnectionHandler) Connect(c *gin.Context) {
	var req connectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	conn := &domain.Connection{
		TenantID:     c.DefaultQuery("tenant", h.defaultTenant),
		Region:       req.Region,
		SellerID:     req.SellerID,
		RefreshToken: req.RefreshToken,
	}

	if err := h.conns.Connect(c.Request.Context(), conn); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	log.Info().Str("tenant", conn.TenantID).Str("region", conn.Region).Msg("seller connection stored")
	c.JSON(http.StatusCreated, gin.H{"tenant_id": conn.TenantID, "region": conn.Region})
}

// List returns the tenant's stored connections without refresh tokens.
func (h *ConnectionHandler) List(c *gin.Context) {
	tenantID := c.DefaultQuery("tenant", h.defaultTenant)

	conns, err := h.conns.List(c.Request.Context(), tenantID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch connections"})
		return
	}

	c.JSON(http.StatusOK, conns)
}
