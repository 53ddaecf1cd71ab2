package api

import (
	"github.com/labstack/echo"
	"github.com/nats-io/nats.go"
	log "github.com/sirupsen/logrus"
	"github.com/toddkasper/outage-query/pkg/analyzer"
	"github.com/toddkasper/outage-query/pkg/storage"
)

// Handler contains all properties to serve the API
type Handler struct {
	nc           *nats.Conn
	store        storage.Interface
	detector     *analyzer.Detector
	alertSubject string
}

// NewHandler create a new API handler
func NewHandler(nc *nats.Conn, store storage.Interface, detector *analyzer.Detector, alertSubject string) *Handler {
	return &Handler{
		nc:           nc,
		store:        store,
		detector:     detector,
		alertSubject: alertSubject,
	}
}

// RegisterRoutes attaches the handlers to the echo web server
func (h *Handler) RegisterRoutes(e *echo.Echo) {
	log.Debug("Register API routes")
	api := e.Group("/api/v1")
	api.GET("/mentions", h.handleFetchMentions)
	api.GET("/status", h.handleGetStatus)
	api.GET("/distribution", h.handleGetDistribution)

	api.Any("/realtime-alerts", h.realtimeAlertsHandler())
}
