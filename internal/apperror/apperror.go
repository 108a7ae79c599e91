// Package apperror defines the error taxonomy shared by stores, services and handlers.
package apperror

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
)

var (
	ErrNotFound      = errors.New("not found")
	ErrUnauthorized  = errors.New("unauthorized")
	ErrForbidden     = errors.New("forbidden")
	ErrStale         = errors.New("result superseded by a newer request")
	ErrInvalidPeriod = errors.New("invalid period")
)

// InvalidJSONMessage is reported when a collaborator answers with a body that is not JSON.
const InvalidJSONMessage = "Invalid JSON response from server"

// UpstreamError is a failed call to a collaborator API.
type UpstreamError struct {
	Status  int
	Message string
}

func (e *UpstreamError) Error() string {
	return e.Message
}

func (e *UpstreamError) Is(target error) bool {
	switch target {
	case ErrNotFound:
		return e.Status == http.StatusNotFound
	case ErrUnauthorized:
		return e.Status == http.StatusUnauthorized
	case ErrForbidden:
		return e.Status == http.StatusForbidden
	}
	return false
}

// UpstreamMessage picks the human-readable message of a failed response
// from its decoded body.
func UpstreamMessage(status int, body map[string]any) string {
	for _, key := range []string{"err", "message"} {
		if s, ok := body[key].(string); ok && s != "" {
			return s
		}
	}
	return fmt.Sprintf("Request failed: %d", status)
}

var messages = map[string]string{
	"required":   "is required",
	"min":        "is below the allowed minimum",
	"max":        "is above the allowed maximum",
	"gte":        "must not be negative",
	"oneof":      "is not an allowed value",
	"step5":      "must be a multiple of 5",
	"goalmetric": "is not a known goal metric",
	"gtefield":   "must not be before the start date",
}

// ValidationErrors converts validator errors into a list of {field: message}.
func ValidationErrors(err error) []map[string]string {
	errList := make([]map[string]string, 0)

	var validationErr validator.ValidationErrors
	if !errors.As(err, &validationErr) {
		return errList
	}
	for _, e := range validationErr {
		msg, ok := messages[e.Tag()]
		if !ok {
			msg = "is invalid"
		}
		errList = append(errList, map[string]string{e.Field(): msg})
	}
	return errList
}

// HTTPStatus maps an error to the status a handler should answer with.
func HTTPStatus(err error) int {
	var upstream *UpstreamError
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrInvalidPeriod):
		return http.StatusBadRequest
	case errors.Is(err, ErrStale):
		return http.StatusConflict
	case errors.As(err, &upstream) && upstream.Status >= 400 && upstream.Status < 500:
		return upstream.Status
	case errors.As(err, &upstream):
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}
