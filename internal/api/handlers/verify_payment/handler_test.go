package verify_payment

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-StudioBooking/internal/domain"
	verifyPayment "github.com/m04kA/SMC-StudioBooking/internal/usecase/verify_payment"
	"github.com/m04kA/SMC-StudioBooking/pkg/logger"
)

type mockUseCase struct {
	mock.Mock
}

func (m *mockUseCase) Execute(ctx context.Context, req *verifyPayment.Request) (*verifyPayment.Response, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*verifyPayment.Response), args.Error(1)
}

func doRequest(uc *mockUseCase, url string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	NewHandler(uc, logger.NewNop()).Handle(w, httptest.NewRequest(http.MethodGet, url, nil))
	return w
}

func TestHandlePaid(t *testing.T) {
	uc := &mockUseCase{}
	bookingID := uuid.New()
	paidAt := time.Date(2025, 5, 30, 9, 10, 0, 0, time.UTC)
	day := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	uc.On("Execute", mock.Anything, &verifyPayment.Request{SessionID: "cs_test_1"}).Return(&verifyPayment.Response{
		BookingID:     bookingID,
		SessionID:     "cs_test_1",
		PaymentStatus: domain.StatusPaid,
		Paid:          true,
		Studio:        "MAIN STUDIO",
		StartDate:     day,
		EndDate:       day,
		StartTime:     "10:00 AM",
		EndTime:       "12:00 PM",
		Total:         19000,
		PaidAt:        &paidAt,
	}, nil)

	w := doRequest(uc, "/api/v1/payments/verify?session_id=cs_test_1")

	require.Equal(t, http.StatusOK, w.Code)
	var resp VerifyPaymentResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, bookingID, resp.BookingID)
	assert.True(t, resp.Paid)
	assert.Equal(t, string(domain.StatusPaid), resp.PaymentStatus)
	assert.Equal(t, "2025-06-01", resp.StartDate)
	assert.Equal(t, "10:00 AM", resp.StartTime)
}

func TestHandleErrorMapping(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"missing session", verifyPayment.ErrInvalidInput, http.StatusBadRequest},
		{"session not found", verifyPayment.ErrSessionNotFound, http.StatusNotFound},
		{"booking not found", verifyPayment.ErrBookingNotFound, http.StatusNotFound},
		{"not pending", verifyPayment.ErrBookingNotPending, http.StatusConflict},
		{"provider", verifyPayment.ErrPaymentProvider, http.StatusBadGateway},
		{"internal", verifyPayment.ErrInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &mockUseCase{}
			uc.On("Execute", mock.Anything, mock.Anything).Return(nil, tt.err)

			w := doRequest(uc, "/api/v1/payments/verify?session_id=x")
			assert.Equal(t, tt.status, w.Code)
		})
	}
}
