package get_availability

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-StudioBooking/internal/api/handlers"
	getAvailability "github.com/m04kA/SMC-StudioBooking/internal/usecase/get_availability"
)

const (
	msgMissingStudio        = "studio is required"
	msgInvalidDate          = "invalid date format, expected YYYY-MM-DD"
	msgStudioNotFound       = "studio not found"
	msgCatalogNotConfigured = "catalog is not configured yet"

	errPrefix = "get_availability: "
)

type Handler struct {
	useCase GetAvailabilityUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/studios/{studio}/availability
// Query params: from, to (опционально, YYYY-MM-DD)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	studio := mux.Vars(r)["studio"]
	if studio == "" {
		h.logger.Warn("GET /studios/{studio}/availability - Missing studio")
		handlers.RespondBadRequest(w, msgMissingStudio)
		return
	}

	useCaseReq, err := ToUseCaseRequest(studio, r.URL.Query().Get("from"), r.URL.Query().Get("to"))
	if err != nil {
		h.logger.Warn("GET /studios/{studio}/availability - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getAvailability.ErrStudioNotFound):
			h.logger.Warn("GET /studios/{studio}/availability - Studio not found: studio=%s", studio)
			handlers.RespondNotFound(w, msgStudioNotFound)

		case errors.Is(err, getAvailability.ErrInvalidRange), errors.Is(err, getAvailability.ErrInvalidInput):
			h.logger.Warn("GET /studios/{studio}/availability - Invalid request: %v", err)
			handlers.RespondBadRequest(w, strings.TrimPrefix(err.Error(), errPrefix))

		case errors.Is(err, getAvailability.ErrCatalogUnavailable):
			h.logger.Error("GET /studios/{studio}/availability - Catalog not configured")
			handlers.RespondError(w, http.StatusServiceUnavailable, msgCatalogNotConfigured)

		default:
			h.logger.Error("GET /studios/{studio}/availability - Failed to get availability: studio=%s, error=%v", studio, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /studios/{studio}/availability - Availability retrieved: studio=%s, days=%d",
		result.Studio, len(result.Days))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
