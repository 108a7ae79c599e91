package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"

	"mindmetrics/internal/apperror"
	"mindmetrics/internal/session"
)

const requestTimeout = 10 * time.Second

func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error": "Internal server error"}`))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}

func respondWithError(w http.ResponseWriter, code int, message string) {
	respondWithJSON(w, code, map[string]string{"error": message})
}

// respondWithServiceError maps a service error to its status. Upstream
// messages are passed through; anything unexpected is logged and hidden.
func respondWithServiceError(w http.ResponseWriter, log *zap.Logger, err error) {
	code := apperror.HTTPStatus(err)

	var upstream *apperror.UpstreamError
	switch {
	case errors.As(err, &upstream):
		respondWithError(w, code, upstream.Message)
	case errors.Is(err, context.DeadlineExceeded):
		respondWithError(w, http.StatusGatewayTimeout, "Request timed out")
	case code == http.StatusInternalServerError:
		log.Error("request failed", zap.Error(err))
		respondWithError(w, code, "Internal server error")
	case errors.Is(err, apperror.ErrNotFound):
		respondWithError(w, code, "Not found")
	default:
		respondWithError(w, code, err.Error())
	}
}

func respondWithValidationError(w http.ResponseWriter, err error) {
	respondWithJSON(w, http.StatusBadRequest, map[string]interface{}{
		"error":  "Validation failed",
		"fields": apperror.ValidationErrors(err),
	})
}

// principal reads the authenticated caller, answering 401 when there is none.
func principal(ctx context.Context, w http.ResponseWriter) (session.Principal, bool) {
	p, ok := session.FromContext(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
	}
	return p, ok
}
