package export_bookings

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/m04kA/SMC-StudioBooking/internal/api/handlers"
	listBookings "github.com/m04kA/SMC-StudioBooking/internal/api/handlers/list_bookings"
	"github.com/m04kA/SMC-StudioBooking/internal/service/bookings"
)

const (
	msgInvalidParams = "invalid query parameters"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/admin/bookings/export
// Те же фильтры, что и у списка; ответ - CSV файл
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	serviceReq, err := listBookings.ParseListQuery(r.URL.Query())
	if err != nil {
		h.logger.Warn("GET /admin/bookings/export - Invalid parameters: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	result, err := h.service.Export(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("GET /admin/bookings/export - Invalid filter: %v", err)
			handlers.RespondBadRequest(w, strings.TrimPrefix(err.Error(), bookings.ErrInvalidInput.Error()+": "))

		default:
			h.logger.Error("GET /admin/bookings/export - Failed to export bookings: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", result.FileName))
	w.Header().Set("Content-Length", strconv.Itoa(len(result.Content)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(result.Content); err != nil {
		h.logger.Warn("GET /admin/bookings/export - Failed to write response: %v", err)
		return
	}

	h.logger.Info("GET /admin/bookings/export - Exported %s (%d bytes)", result.FileName, len(result.Content))
}
