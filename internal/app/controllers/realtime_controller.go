package controllers

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/yigit/atcampus/internal/pkg/realtime"
)

// RealtimeController upgrades authenticated clients to WebSocket connections
type RealtimeController struct {
	hub    *realtime.Hub
	logger zerolog.Logger
}

// NewRealtimeController creates a new RealtimeController
func NewRealtimeController(hub *realtime.Hub, logger zerolog.Logger) *RealtimeController {
	return &RealtimeController{
		hub:    hub,
		logger: logger,
	}
}

// Connect opens the notification channel
// @Summary Realtime notifications
// @Description Upgrades to a WebSocket that receives collaboration.requested and collaboration.resolved events for the viewer. Browsers pass the access token in the token query parameter.
// @Tags realtime
// @Security BearerAuth
// @Param token query string false "Access token"
// @Success 101 "Switching protocols"
// @Router /ws [get]
func (c *RealtimeController) Connect(ctx *gin.Context) {
	viewer, ok := requireViewer(ctx)
	if !ok {
		return
	}

	// The upgrader answers failed handshakes itself
	if err := c.hub.Serve(ctx.Writer, ctx.Request, viewer.UserID); err != nil {
		c.logger.Warn().Err(err).Str("userID", viewer.UserID).Msg("WebSocket connection refused")
	}
}
