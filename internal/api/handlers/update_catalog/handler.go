package update_catalog

import (
	"errors"
	"net/http"
	"strings"

	"github.com/m04kA/SMC-StudioBooking/internal/api/handlers"
	"github.com/m04kA/SMC-StudioBooking/internal/api/middleware"
	"github.com/m04kA/SMC-StudioBooking/internal/service/catalog"
	"github.com/m04kA/SMC-StudioBooking/internal/service/catalog/models"
)

const (
	msgInvalidRequestBody = "invalid request body"
	msgDuplicateName      = "studio names and service ids must be unique"
)

type Handler struct {
	service CatalogService
	logger  Logger
}

func NewHandler(service CatalogService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PUT /api/v1/admin/catalog
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req models.ReplaceCatalogRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /admin/catalog - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	admin, _ := middleware.GetAdminUsername(r.Context())

	result, err := h.service.Replace(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, catalog.ErrInvalidInput):
			h.logger.Warn("PUT /admin/catalog - Validation failed: %v", err)
			handlers.RespondBadRequest(w, strings.TrimPrefix(err.Error(), catalog.ErrInvalidInput.Error()+": "))

		case errors.Is(err, catalog.ErrDuplicateName):
			h.logger.Warn("PUT /admin/catalog - Duplicate name: %v", err)
			handlers.RespondConflict(w, msgDuplicateName)

		default:
			h.logger.Error("PUT /admin/catalog - Failed to replace catalog: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /admin/catalog - Catalog replaced by admin=%s: studios=%d, services=%d",
		admin, len(result.Studios), len(result.Services))
	handlers.RespondJSON(w, http.StatusOK, result)
}
