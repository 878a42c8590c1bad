// Package handlers implements the HTTP endpoints
package handlers

import (
	"encoding/json"
	"net/http"

	"betterreads-backend/application/resolver"
	apperrors "betterreads-backend/pkg/errors"

	"go.uber.org/zap"
)

// DispatchHandler exposes the resolver dispatch over HTTP. The request body
// mirrors the resolver invocation shape: parent type, field, and arguments.
type DispatchHandler struct {
	dispatcher *resolver.Dispatcher
	logger     *zap.Logger
}

// NewDispatchHandler creates a dispatch handler
func NewDispatchHandler(dispatcher *resolver.Dispatcher, logger *zap.Logger) *DispatchHandler {
	return &DispatchHandler{dispatcher: dispatcher, logger: logger}
}

// Resolve handles POST /v1/resolve
func (h *DispatchHandler) Resolve(w http.ResponseWriter, r *http.Request) {
	var req resolver.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, apperrors.NewValidationError("malformed request body").WithCause(err))
		return
	}
	if req.TypeName == "" || req.FieldName == "" {
		h.respondError(w, apperrors.NewValidationError("typeName and fieldName are required"))
		return
	}

	result, err := h.dispatcher.Dispatch(r.Context(), req)
	if err != nil {
		h.respondError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]any{"data": result})
}

func (h *DispatchHandler) respondJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		h.logger.Error("failed to encode response", zap.Error(err))
	}
}

func (h *DispatchHandler) respondError(w http.ResponseWriter, err error) {
	appErr := apperrors.GetAppError(err)
	if appErr == nil {
		h.logger.Error("unclassified error", zap.Error(err))
		appErr = apperrors.NewInternalError("internal server error")
	}

	h.respondJSON(w, appErr.HTTPStatus, map[string]any{"error": appErr})
}
