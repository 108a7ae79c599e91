package handlers

import (
	"context"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"mindmetrics/services"
)

type DashboardHandler struct {
	dashboardService *services.DashboardService
	defaultPeriod    int
	log              *zap.Logger
}

func NewDashboardHandler(dashboardService *services.DashboardService, defaultPeriod int, log *zap.Logger) *DashboardHandler {
	return &DashboardHandler{
		dashboardService: dashboardService,
		defaultPeriod:    defaultPeriod,
		log:              log,
	}
}

// GetDashboard serves the dashboard for ?period=N, or the default period.
func (h *DashboardHandler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	p, ok := principal(ctx, w)
	if !ok {
		return
	}

	period := h.defaultPeriod
	if raw := r.URL.Query().Get("period"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "Query parameter 'period' must be a number")
			return
		}
		period = n
	}

	res, err := h.dashboardService.Load(ctx, p, period)
	if err != nil {
		respondWithServiceError(w, h.log, err)
		return
	}

	respondWithJSON(w, http.StatusOK, res)
}

// SignOut drops the caller's in-flight dashboard loads.
func (h *DashboardHandler) SignOut(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(r.Context(), w)
	if !ok {
		return
	}

	h.dashboardService.SignOut(p.UserID)
	h.log.Info("user signed out", zap.String("user_id", p.UserID))
	respondWithJSON(w, http.StatusOK, map[string]string{"message": "Signed out"})
}
