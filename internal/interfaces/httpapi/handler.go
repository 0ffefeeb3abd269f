package httpapi

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/go-playground/validator/v10"
	jsoniter "github.com/json-iterator/go"

	"github.com/riskibarqy/formation-editor/internal/platform/logging"
	"github.com/riskibarqy/formation-editor/internal/usecase"
)

type Handler struct {
	formationService *usecase.FormationService
	auditService     *usecase.FormationAuditService
	logger           *logging.Logger
	validator        *validator.Validate
}

func NewHandler(
	formationService *usecase.FormationService,
	auditService *usecase.FormationAuditService,
	logger *logging.Logger,
) *Handler {
	return &Handler{
		formationService: formationService,
		auditService:     auditService,
		logger:           logging.OrDefault(logger).Named("httpapi"),
		validator:        validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

// decodeJSON rejects unknown fields. An empty body is accepted only when
// allowEmpty is set.
func (h *Handler) decodeJSON(ctx context.Context, r *http.Request, dst any, allowEmpty bool) error {
	_, span := startSpan(ctx, "httpapi.Handler.decodeJSON")
	defer span.End()

	decoder := jsoniter.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		if err == io.EOF && allowEmpty {
			return nil
		}
		return fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err)
	}
	return nil
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %w", usecase.ErrInvalidInput, err)
	}

	return nil
}
