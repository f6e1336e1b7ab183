package validate_booking

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-StudioBooking/internal/availability"
	validateBooking "github.com/m04kA/SMC-StudioBooking/internal/usecase/validate_booking"
	"github.com/m04kA/SMC-StudioBooking/pkg/logger"
	"github.com/m04kA/SMC-StudioBooking/pkg/types"
)

type mockUseCase struct {
	mock.Mock
}

func (m *mockUseCase) Execute(ctx context.Context, req *validateBooking.Request) (*validateBooking.Response, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*validateBooking.Response), args.Error(1)
}

func doRequest(uc *mockUseCase, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings/validate", strings.NewReader(body))
	NewHandler(uc, logger.NewNop()).Handle(w, req)
	return w
}

func TestHandleRejectedDraftIsOK(t *testing.T) {
	uc := &mockUseCase{}
	day := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	// Метка времени передается как есть, о формате сообщит валидатор
	uc.On("Execute", mock.Anything, mock.MatchedBy(func(r *validateBooking.Request) bool {
		return r.Studio == "MAIN STUDIO" && r.StartDate.Equal(day) && r.EndDate.IsZero() && r.StartTime == types.TimeLabel("25:00")
	})).Return(&validateBooking.Response{
		Valid:     false,
		Reasons:   []availability.Reason{{Code: availability.ReasonInvalidTime, Message: "start time is not a valid time"}},
		Studio:    "MAIN STUDIO",
		StartDate: day,
		EndDate:   day,
		StartTime: "25:00",
		EndTime:   "12:00 PM",
	}, nil)

	w := doRequest(uc, `{"studio":"MAIN STUDIO","startDate":"2025-06-01","startTime":"25:00","endTime":"12:00 PM"}`)

	require.Equal(t, http.StatusOK, w.Code)
	var resp ValidateBookingResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Valid)
	require.Len(t, resp.Reasons, 1)
	assert.Equal(t, availability.ReasonInvalidTime, resp.Reasons[0].Code)
	assert.Equal(t, "2025-06-01", resp.StartDate)
}

func TestHandleValidDraftHasEmptyReasons(t *testing.T) {
	uc := &mockUseCase{}
	uc.On("Execute", mock.Anything, mock.Anything).Return(&validateBooking.Response{
		Valid:           true,
		Studio:          "MAIN STUDIO",
		DurationMinutes: 120,
		StudioCost:      15000,
	}, nil)

	w := doRequest(uc, `{"studio":"MAIN STUDIO","startDate":"2025-06-01","startTime":"10:00 AM","endTime":"12:00 PM"}`)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"reasons":[]`)
	assert.Contains(t, w.Body.String(), `"studioCost":15000`)
	assert.NotContains(t, w.Body.String(), `"startDate"`)
}

func TestHandleErrors(t *testing.T) {
	uc := &mockUseCase{}
	w := doRequest(uc, `{"studio":"MAIN STUDIO","startDate":"01.06.2025"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	uc.AssertNotCalled(t, "Execute", mock.Anything, mock.Anything)

	uc = &mockUseCase{}
	uc.On("Execute", mock.Anything, mock.Anything).Return(nil, validateBooking.ErrCatalogUnavailable)
	w = doRequest(uc, `{"studio":"MAIN STUDIO"}`)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	uc = &mockUseCase{}
	uc.On("Execute", mock.Anything, mock.Anything).Return(nil, validateBooking.ErrInternal)
	w = doRequest(uc, `{"studio":"MAIN STUDIO"}`)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
