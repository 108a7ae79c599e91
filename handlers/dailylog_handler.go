package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"mindmetrics/internal/dailylog"
	"mindmetrics/services"
)

type DailyLogHandler struct {
	dailyLogService *services.DailyLogService
	validate        *validator.Validate
	log             *zap.Logger
}

func NewDailyLogHandler(dailyLogService *services.DailyLogService, validate *validator.Validate, log *zap.Logger) *DailyLogHandler {
	return &DailyLogHandler{
		dailyLogService: dailyLogService,
		validate:        validate,
		log:             log,
	}
}

func (h *DailyLogHandler) ListLogs(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	p, ok := principal(ctx, w)
	if !ok {
		return
	}

	logs, err := h.dailyLogService.List(ctx, p)
	if err != nil {
		respondWithServiceError(w, h.log, err)
		return
	}
	respondWithJSON(w, http.StatusOK, logs)
}

func (h *DailyLogHandler) GetLog(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	p, ok := principal(ctx, w)
	if !ok {
		return
	}

	l, err := h.dailyLogService.Get(ctx, p, mux.Vars(r)["id"])
	if err != nil {
		respondWithServiceError(w, h.log, err)
		return
	}
	respondWithJSON(w, http.StatusOK, l)
}

// GetToday returns the caller's log for the current UTC date.
func (h *DailyLogHandler) GetToday(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	p, ok := principal(ctx, w)
	if !ok {
		return
	}

	l, err := h.dailyLogService.Today(ctx, p)
	if err != nil {
		respondWithServiceError(w, h.log, err)
		return
	}
	respondWithJSON(w, http.StatusOK, l)
}

func (h *DailyLogHandler) CreateLog(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	p, ok := principal(ctx, w)
	if !ok {
		return
	}

	in, ok := h.decode(w, r)
	if !ok {
		return
	}

	res, err := h.dailyLogService.Create(ctx, p, in)
	if err != nil {
		respondWithServiceError(w, h.log, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, res)
}

func (h *DailyLogHandler) UpdateLog(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	p, ok := principal(ctx, w)
	if !ok {
		return
	}

	in, ok := h.decode(w, r)
	if !ok {
		return
	}

	l, err := h.dailyLogService.Update(ctx, p, mux.Vars(r)["id"], in)
	if err != nil {
		respondWithServiceError(w, h.log, err)
		return
	}
	respondWithJSON(w, http.StatusOK, l)
}

func (h *DailyLogHandler) DeleteLog(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	p, ok := principal(ctx, w)
	if !ok {
		return
	}

	if err := h.dailyLogService.Delete(ctx, p, mux.Vars(r)["id"]); err != nil {
		respondWithServiceError(w, h.log, err)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]string{"message": "Daily log deleted"})
}

func (h *DailyLogHandler) decode(w http.ResponseWriter, r *http.Request) (*dailylog.Input, bool) {
	var in dailylog.Input
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		h.log.Debug("failed to decode daily log", zap.Error(err))
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return nil, false
	}
	if err := h.validate.Struct(in); err != nil {
		respondWithValidationError(w, err)
		return nil, false
	}
	return &in, true
}
