package create_checkout

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-StudioBooking/internal/api/handlers"
	createCheckout "github.com/m04kA/SMC-StudioBooking/internal/usecase/create_checkout"
)

const (
	msgInvalidRequestBody   = "invalid request body"
	msgInvalidDate          = "invalid date format, expected YYYY-MM-DD"
	msgInvalidInput         = "invalid booking data"
	msgBookingInvalid       = "booking is not valid"
	msgPriceMismatch        = "price verification failed, please refresh the page and try again"
	msgSlotTaken            = "selected time was just booked, please choose another time"
	msgPaymentProvider      = "payment provider is unavailable, please try again later"
	msgCatalogNotConfigured = "catalog is not configured yet"
)

type Handler struct {
	useCase CreateCheckoutUseCase
	logger  Logger
}

func NewHandler(useCase CreateCheckoutUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/checkout
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateCheckoutRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /checkout - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /checkout - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		var validationErr *createCheckout.ValidationError

		switch {
		case errors.As(err, &validationErr):
			h.logger.Warn("POST /checkout - Booking rejected: studio=%s, error=%v", req.Studio, err)
			handlers.RespondJSON(w, http.StatusUnprocessableEntity, ValidationErrorResponse{
				Code:    http.StatusUnprocessableEntity,
				Message: msgBookingInvalid,
				Reasons: validationErr.Reasons,
			})

		case errors.Is(err, createCheckout.ErrPriceMismatch):
			// Клиент не получает подробностей расхождения
			h.logger.Warn("POST /checkout - Price mismatch: studio=%s, error=%v", req.Studio, err)
			handlers.RespondBadRequest(w, msgPriceMismatch)

		case errors.Is(err, createCheckout.ErrInvalidInput):
			h.logger.Warn("POST /checkout - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, createCheckout.ErrSlotTaken):
			h.logger.Warn("POST /checkout - Slot taken: studio=%s, start=%s %s", req.Studio, req.StartDate, req.StartTime)
			handlers.RespondConflict(w, msgSlotTaken)

		case errors.Is(err, createCheckout.ErrPaymentProvider):
			h.logger.Error("POST /checkout - Payment provider error: %v", err)
			handlers.RespondError(w, http.StatusBadGateway, msgPaymentProvider)

		case errors.Is(err, createCheckout.ErrCatalogUnavailable):
			h.logger.Error("POST /checkout - Catalog not configured")
			handlers.RespondError(w, http.StatusServiceUnavailable, msgCatalogNotConfigured)

		default:
			h.logger.Error("POST /checkout - Failed to create checkout: studio=%s, error=%v", req.Studio, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /checkout - Checkout created: booking_id=%s, session_id=%s, total=%s",
		result.BookingID, result.SessionID, result.Total)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
