package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"mindmetrics/internal/goal"
	"mindmetrics/services"
)

type GoalHandler struct {
	goalService *services.GoalService
	validate    *validator.Validate
	log         *zap.Logger
}

func NewGoalHandler(goalService *services.GoalService, validate *validator.Validate, log *zap.Logger) *GoalHandler {
	return &GoalHandler{
		goalService: goalService,
		validate:    validate,
		log:         log,
	}
}

func (h *GoalHandler) ListGoals(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	p, ok := principal(ctx, w)
	if !ok {
		return
	}

	goals, err := h.goalService.List(ctx, p)
	if err != nil {
		respondWithServiceError(w, h.log, err)
		return
	}
	respondWithJSON(w, http.StatusOK, goals)
}

func (h *GoalHandler) GetGoal(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	p, ok := principal(ctx, w)
	if !ok {
		return
	}

	g, err := h.goalService.Get(ctx, p, mux.Vars(r)["id"])
	if err != nil {
		respondWithServiceError(w, h.log, err)
		return
	}
	respondWithJSON(w, http.StatusOK, g)
}

func (h *GoalHandler) CreateGoal(w http.ResponseWriter, r *http.Request) {
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

	g, err := h.goalService.Create(ctx, p, in)
	if err != nil {
		respondWithServiceError(w, h.log, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, g)
}

func (h *GoalHandler) UpdateGoal(w http.ResponseWriter, r *http.Request) {
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

	g, err := h.goalService.Update(ctx, p, mux.Vars(r)["id"], in)
	if err != nil {
		respondWithServiceError(w, h.log, err)
		return
	}
	respondWithJSON(w, http.StatusOK, g)
}

func (h *GoalHandler) DeleteGoal(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	p, ok := principal(ctx, w)
	if !ok {
		return
	}

	if err := h.goalService.Delete(ctx, p, mux.Vars(r)["id"]); err != nil {
		respondWithServiceError(w, h.log, err)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]string{"message": "Goal deleted"})
}

func (h *GoalHandler) decode(w http.ResponseWriter, r *http.Request) (*goal.Input, bool) {
	var in goal.Input
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		h.log.Debug("failed to decode goal", zap.Error(err))
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return nil, false
	}
	if err := h.validate.Struct(in); err != nil {
		respondWithValidationError(w, err)
		return nil, false
	}
	return &in, true
}
