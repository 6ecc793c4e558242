package handler

import (
	"net/http"

	"github.com/julienschmidt/httprouter"

	httputil "roomly/pkg/http"
	"roomly/pkg/logger"
)

type HealthHandler struct {
	service string
	logger  *logger.Logger
}

func NewHealthHandler(service string, log *logger.Logger) *HealthHandler {
	return &HealthHandler{service: service, logger: log}
}

func (h *HealthHandler) RegisterRoutes(router *httprouter.Router) {
	router.HandlerFunc(http.MethodGet, "/health", h.Health)
	router.HandlerFunc(http.MethodGet, "/ready", h.Ready)
}

func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	h.writeStatus(w, "healthy")
}

func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	h.writeStatus(w, "ready")
}

func (h *HealthHandler) writeStatus(w http.ResponseWriter, status string) {
	body := map[string]string{"status": status, "service": h.service}
	if err := httputil.WriteJSON(w, http.StatusOK, body); err != nil {
		h.logger.Error("failed to write health response", "error", err)
	}
}
