package httpapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/formation-editor/internal/domain/formation"
	"github.com/riskibarqy/formation-editor/internal/usecase"
)

func TestWriteSuccess_GoogleEnvelope(t *testing.T) {
	rec := httptest.NewRecorder()
	writeSuccess(context.Background(), rec, http.StatusOK, map[string]string{"status": "ok"})

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	var body map[string]any
	if err := sonic.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal response body: %v", err)
	}

	if got, _ := body["apiVersion"].(string); got != "2.0" {
		t.Fatalf("expected apiVersion=2.0, got %v", body["apiVersion"])
	}
	if _, ok := body["data"]; !ok {
		t.Fatalf("expected data key in success response")
	}
	if _, ok := body["error"]; ok {
		t.Fatalf("did not expect error key in success response")
	}
}

func TestWriteError_GoogleEnvelope(t *testing.T) {
	rec := httptest.NewRecorder()
	writeError(context.Background(), rec, fmt.Errorf("%w: bad payload", usecase.ErrInvalidInput))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}

	var body map[string]any
	if err := sonic.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal response body: %v", err)
	}

	errorObj, ok := body["error"].(map[string]any)
	if !ok {
		t.Fatalf("expected error object in response")
	}
	if got, _ := errorObj["status"].(string); got != "INVALID_ARGUMENT" {
		t.Fatalf("expected error status INVALID_ARGUMENT, got %v", errorObj["status"])
	}
	items, _ := errorObj["errors"].([]any)
	if len(items) != 1 {
		t.Fatalf("expected one error item, got %v", errorObj["errors"])
	}
	item, _ := items[0].(map[string]any)
	if got, _ := item["domain"].(string); got != "formation-editor" {
		t.Fatalf("expected domain formation-editor, got %v", item["domain"])
	}
}

func TestMapError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantReason string
	}{
		{
			name:       "rule violation wrapped as invalid input",
			err:        fmt.Errorf("%w: %w", usecase.ErrInvalidInput, crerr.Wrapf(formation.ErrUnknownPosition, "position %q", "zz")),
			wantStatus: http.StatusBadRequest,
			wantReason: "invalidFormation",
		},
		{
			name:       "bare rule violation",
			err:        formation.ErrDuplicateAssignment,
			wantStatus: http.StatusBadRequest,
			wantReason: "invalidFormation",
		},
		{
			name:       "invalid input",
			err:        fmt.Errorf("%w: team id is required", usecase.ErrInvalidInput),
			wantStatus: http.StatusBadRequest,
			wantReason: "invalidInput",
		},
		{
			name:       "not found",
			err:        fmt.Errorf("%w: editor session es_9", usecase.ErrNotFound),
			wantStatus: http.StatusNotFound,
			wantReason: "notFound",
		},
		{
			name:       "unauthorized",
			err:        usecase.ErrUnauthorized,
			wantStatus: http.StatusUnauthorized,
			wantReason: "unauthorized",
		},
		{
			name:       "dependency unavailable",
			err:        fmt.Errorf("%w: formation sink", usecase.ErrDependencyUnavailable),
			wantStatus: http.StatusServiceUnavailable,
			wantReason: "dependencyUnavailable",
		},
		{
			name:       "unclassified",
			err:        errors.New("disk on fire"),
			wantStatus: http.StatusInternalServerError,
			wantReason: "internalError",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := mapError(context.Background(), tt.err)
			if got.HTTPStatus != tt.wantStatus || got.Reason != tt.wantReason {
				t.Fatalf("mapError()=%d/%s want=%d/%s", got.HTTPStatus, got.Reason, tt.wantStatus, tt.wantReason)
			}
		})
	}
}

func TestWriteError_HidesUnclassifiedCause(t *testing.T) {
	rec := httptest.NewRecorder()
	writeError(context.Background(), rec, errors.New("pq: connection refused to 10.0.0.7"))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected status 500, got %d", rec.Code)
	}
	var body map[string]any
	if err := sonic.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal response body: %v", err)
	}
	errorObj, _ := body["error"].(map[string]any)
	if got, _ := errorObj["message"].(string); got != internalErrorMessage {
		t.Fatalf("expected generic message, got %q", got)
	}
}

func TestWriteError_ValidationFieldItems(t *testing.T) {
	h := NewHandler(nil, nil, nil)
	err := h.validateRequest(context.Background(), &saveFormationRequest{})
	if err == nil {
		t.Fatalf("expected validation error")
	}

	rec := httptest.NewRecorder()
	writeError(context.Background(), rec, err)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}

	var body map[string]any
	if err := sonic.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal response body: %v", err)
	}
	errorObj, _ := body["error"].(map[string]any)
	items, _ := errorObj["errors"].([]any)
	if len(items) < 2 {
		t.Fatalf("expected summary plus field items, got %v", items)
	}
	first, _ := items[0].(map[string]any)
	if first["reason"] != "invalidInput" {
		t.Fatalf("expected first reason invalidInput, got %v", first["reason"])
	}
	field, _ := items[1].(map[string]any)
	if field["reason"] != "invalidField" || field["locationType"] != "body" {
		t.Fatalf("unexpected field item: %v", field)
	}
	if loc, _ := field["location"].(string); loc != "saveFormationRequest.TemplateName" {
		t.Fatalf("expected location saveFormationRequest.TemplateName, got %q", loc)
	}
}
