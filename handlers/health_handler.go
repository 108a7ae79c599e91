package handlers

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"

	"mindmetrics/services"
)

type HealthHandler struct {
	pinger services.Pinger
	log    *zap.Logger
}

// NewHealthHandler takes the store backend when it can be pinged, or nil.
func NewHealthHandler(pinger services.Pinger, log *zap.Logger) *HealthHandler {
	return &HealthHandler{pinger: pinger, log: log}
}

func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	if h.pinger != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := h.pinger.Ping(ctx); err != nil {
			h.log.Warn("health check: store unreachable", zap.Error(err))
			respondWithJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
			return
		}
	}
	respondWithJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
