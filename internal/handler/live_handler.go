package handler

import (
	"net/http"
	"strconv"

	ws "github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/renanvonb/nomo-backend/internal/live"
	"github.com/renanvonb/nomo-backend/internal/middleware"
)

// LiveHandler handles WebSocket connections for change notifications
type LiveHandler struct {
	hub            *live.Hub
	allowedOrigins map[string]bool
	upgrader       ws.Upgrader
}

// NewLiveHandler creates a new LiveHandler
func NewLiveHandler(hub *live.Hub, allowedOrigins []string) *LiveHandler {
	originMap := make(map[string]bool)
	for _, origin := range allowedOrigins {
		originMap[origin] = true
	}

	h := &LiveHandler{
		hub:            hub,
		allowedOrigins: originMap,
	}

	h.upgrader = ws.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     h.checkOrigin,
	}

	return h
}

// checkOrigin validates the request origin against allowed origins
func (h *LiveHandler) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		// Same-origin and non-browser clients send no Origin header
		return true
	}

	if h.allowedOrigins[origin] {
		return true
	}

	log.Warn().Str("origin", origin).Msg("WebSocket connection rejected: origin not allowed")
	return false
}

// HandleWS handles WebSocket connection requests at GET /ws. The workspace
// comes from a query parameter because browsers cannot set headers on
// WebSocket handshakes.
func (h *LiveHandler) HandleWS(c echo.Context) error {
	workspaceID := middleware.GetWorkspaceID(c)
	if workspaceID == 0 {
		raw := c.QueryParam("workspace")
		parsed, err := strconv.ParseInt(raw, 10, 32)
		if err != nil || parsed <= 0 {
			log.Debug().Msg("WebSocket connection rejected: missing workspace")
			return echo.NewHTTPError(http.StatusUnauthorized, "missing workspace")
		}
		workspaceID = int32(parsed)
	}

	conn, err := h.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		log.Error().Err(err).Msg("WebSocket upgrade failed")
		return err
	}

	client := live.NewClient(conn, workspaceID, h.hub)
	h.hub.Register(client)

	log.Info().
		Int32("workspace_id", workspaceID).
		Str("client_id", client.ID()).
		Msg("WebSocket client connected")

	go client.WritePump()
	go client.ReadPump()

	return nil
}
