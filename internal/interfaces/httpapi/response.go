package httpapi

import (
	"context"
	"errors"
	"net/http"

	sonic "github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"

	"github.com/riskibarqy/formation-editor/internal/domain/formation"
	"github.com/riskibarqy/formation-editor/internal/usecase"
)

const (
	googleAPIVersion = "2.0"
	errorDomain      = "formation-editor"

	internalErrorMessage = "internal server error"
)

type googleResponseEnvelope struct {
	APIVersion string           `json:"apiVersion"`
	Data       any              `json:"data,omitempty"`
	Error      *googleErrorBody `json:"error,omitempty"`
}

type googleErrorBody struct {
	Code    int               `json:"code"`
	Message string            `json:"message"`
	Status  string            `json:"status"`
	Errors  []googleErrorItem `json:"errors,omitempty"`
}

type googleErrorItem struct {
	Domain       string `json:"domain"`
	Reason       string `json:"reason"`
	Message      string `json:"message"`
	Location     string `json:"location,omitempty"`
	LocationType string `json:"locationType,omitempty"`
}

type mappedError struct {
	HTTPStatus int
	Reason     string
	Status     string
}

var internalMapping = mappedError{
	HTTPStatus: http.StatusInternalServerError,
	Reason:     "internalError",
	Status:     "INTERNAL",
}

// errorClasses is evaluated in order. Not found wins over rule violations so
// that an unknown session or team is never reported as a bad formation.
var errorClasses = []struct {
	match  func(error) bool
	mapped mappedError
}{
	{
		match:  func(err error) bool { return errors.Is(err, usecase.ErrNotFound) },
		mapped: mappedError{HTTPStatus: http.StatusNotFound, Reason: "notFound", Status: "NOT_FOUND"},
	},
	{
		match:  formation.IsRuleViolation,
		mapped: mappedError{HTTPStatus: http.StatusBadRequest, Reason: "invalidFormation", Status: "INVALID_ARGUMENT"},
	},
	{
		match:  func(err error) bool { return errors.Is(err, usecase.ErrInvalidInput) },
		mapped: mappedError{HTTPStatus: http.StatusBadRequest, Reason: "invalidInput", Status: "INVALID_ARGUMENT"},
	},
	{
		match:  func(err error) bool { return errors.Is(err, usecase.ErrUnauthorized) },
		mapped: mappedError{HTTPStatus: http.StatusUnauthorized, Reason: "unauthorized", Status: "UNAUTHENTICATED"},
	},
	{
		match:  func(err error) bool { return errors.Is(err, usecase.ErrDependencyUnavailable) },
		mapped: mappedError{HTTPStatus: http.StatusServiceUnavailable, Reason: "dependencyUnavailable", Status: "UNAVAILABLE"},
	},
}

func writeJSON(ctx context.Context, w http.ResponseWriter, status int, payload any) {
	ctx, span := startSpan(ctx, "httpapi.writeJSON")
	defer span.End()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = sonic.ConfigDefault.NewEncoder(w).Encode(payload)
}

func writeSuccess(ctx context.Context, w http.ResponseWriter, status int, data any) {
	ctx, span := startSpan(ctx, "httpapi.writeSuccess")
	defer span.End()

	writeJSON(ctx, w, status, googleResponseEnvelope{
		APIVersion: googleAPIVersion,
		Data:       data,
	})
}

// writeError hides the cause of unclassified errors from the client.
func writeError(ctx context.Context, w http.ResponseWriter, err error) {
	ctx, span := startSpan(ctx, "httpapi.writeError")
	defer span.End()

	mapped := mapError(ctx, err)
	message := internalErrorMessage
	if mapped != internalMapping {
		message = err.Error()
	}

	items := []googleErrorItem{{Domain: errorDomain, Reason: mapped.Reason, Message: message}}
	items = append(items, fieldErrorItems(err)...)
	writeJSON(ctx, w, mapped.HTTPStatus, errorEnvelope(mapped, message, items))
}

func writeInternalError(ctx context.Context, w http.ResponseWriter) {
	ctx, span := startSpan(ctx, "httpapi.writeInternalError")
	defer span.End()

	items := []googleErrorItem{{Domain: errorDomain, Reason: internalMapping.Reason, Message: internalErrorMessage}}
	writeJSON(ctx, w, internalMapping.HTTPStatus, errorEnvelope(internalMapping, internalErrorMessage, items))
}

func errorEnvelope(mapped mappedError, message string, items []googleErrorItem) googleResponseEnvelope {
	return googleResponseEnvelope{
		APIVersion: googleAPIVersion,
		Error: &googleErrorBody{
			Code:    mapped.HTTPStatus,
			Message: message,
			Status:  mapped.Status,
			Errors:  items,
		},
	}
}

// fieldErrorItems expands request validation failures into one item per field.
func fieldErrorItems(err error) []googleErrorItem {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}

	items := make([]googleErrorItem, 0, len(verrs))
	for _, fe := range verrs {
		items = append(items, googleErrorItem{
			Domain:       errorDomain,
			Reason:       "invalidField",
			Message:      "failed on the '" + fe.Tag() + "' rule",
			Location:     fe.Namespace(),
			LocationType: "body",
		})
	}
	return items
}

func mapError(ctx context.Context, err error) mappedError {
	_, span := startSpan(ctx, "httpapi.mapError")
	defer span.End()

	for _, class := range errorClasses {
		if class.match(err) {
			return class.mapped
		}
	}
	return internalMapping
}
