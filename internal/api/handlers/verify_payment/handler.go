package verify_payment

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-StudioBooking/internal/api/handlers"
	verifyPayment "github.com/m04kA/SMC-StudioBooking/internal/usecase/verify_payment"
)

const (
	msgSessionIDRequired = "session_id is required"
	msgSessionNotFound   = "checkout session not found"
	msgBookingNotFound   = "booking not found"
	msgBookingNotPending = "booking is no longer pending, please contact the studio"
	msgPaymentProvider   = "payment provider is unavailable, please try again later"
)

type Handler struct {
	useCase VerifyPaymentUseCase
	logger  Logger
}

func NewHandler(useCase VerifyPaymentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/payments/verify?session_id=...
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	sessionID := r.URL.Query().Get("session_id")

	result, err := h.useCase.Execute(r.Context(), &verifyPayment.Request{SessionID: sessionID})
	if err != nil {
		switch {
		case errors.Is(err, verifyPayment.ErrInvalidInput):
			h.logger.Warn("GET /payments/verify - Missing session_id")
			handlers.RespondBadRequest(w, msgSessionIDRequired)

		case errors.Is(err, verifyPayment.ErrSessionNotFound):
			h.logger.Warn("GET /payments/verify - Session not found: session_id=%s", sessionID)
			handlers.RespondNotFound(w, msgSessionNotFound)

		case errors.Is(err, verifyPayment.ErrBookingNotFound):
			h.logger.Warn("GET /payments/verify - Booking not found: session_id=%s", sessionID)
			handlers.RespondNotFound(w, msgBookingNotFound)

		case errors.Is(err, verifyPayment.ErrBookingNotPending):
			h.logger.Error("GET /payments/verify - Paid session for closed booking: session_id=%s", sessionID)
			handlers.RespondConflict(w, msgBookingNotPending)

		case errors.Is(err, verifyPayment.ErrPaymentProvider):
			h.logger.Error("GET /payments/verify - Payment provider error: %v", err)
			handlers.RespondError(w, http.StatusBadGateway, msgPaymentProvider)

		default:
			h.logger.Error("GET /payments/verify - Failed to verify payment: session_id=%s, error=%v", sessionID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /payments/verify - Verified: booking_id=%s, status=%s, already_processed=%t",
		result.BookingID, result.PaymentStatus, result.AlreadyProcessed)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
