package get_availability

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	getAvailability "github.com/m04kA/SMC-StudioBooking/internal/usecase/get_availability"
	"github.com/m04kA/SMC-StudioBooking/pkg/logger"
	"github.com/m04kA/SMC-StudioBooking/pkg/types"
)

type mockUseCase struct {
	mock.Mock
}

func (m *mockUseCase) Execute(ctx context.Context, req *getAvailability.Request) (*getAvailability.Response, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*getAvailability.Response), args.Error(1)
}

func serve(uc *mockUseCase, url string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.HandleFunc("/studios/{studio}/availability", NewHandler(uc, logger.NewNop()).Handle)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, url, nil))
	return w
}

func TestHandleReturnsDays(t *testing.T) {
	uc := &mockUseCase{}
	day := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	uc.On("Execute", mock.Anything, mock.MatchedBy(func(r *getAvailability.Request) bool {
		return r.Studio == "MAIN STUDIO" && r.From.Equal(day) && r.To.Equal(day)
	})).Return(&getAvailability.Response{
		Studio:      "MAIN STUDIO",
		From:        day,
		To:          day,
		OpeningTime: "8:00 AM",
		ClosingTime: "9:00 PM",
		StepMinutes: 30,
		Days: []getAvailability.Day{{
			Date:    day,
			Slots:   []types.TimeLabel{"8:00 AM", "8:30 AM"},
			Blocked: []types.TimeLabel{"8:00 AM"},
			Free:    []types.TimeLabel{"8:30 AM"},
		}},
	}, nil)

	w := serve(uc, "/studios/MAIN%20STUDIO/availability?from=2025-06-01&to=2025-06-01")

	require.Equal(t, http.StatusOK, w.Code)
	var resp AvailabilityResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Days, 1)
	assert.Equal(t, "2025-06-01", resp.Days[0].Date)
	assert.Equal(t, []string{"8:00 AM"}, resp.Days[0].BlockedTimes)
	assert.Equal(t, []string{"8:30 AM"}, resp.Days[0].FreeTimes)
	assert.Equal(t, "9:00 PM", resp.ClosingTime)
}

func TestHandleInvalidDate(t *testing.T) {
	uc := &mockUseCase{}

	w := serve(uc, "/studios/main/availability?from=June")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	uc.AssertNotCalled(t, "Execute", mock.Anything, mock.Anything)
}

func TestHandleErrorMapping(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		body   string
	}{
		{"studio not found", getAvailability.ErrStudioNotFound, http.StatusNotFound, msgStudioNotFound},
		{"range", fmt.Errorf("%w: 'to' must not be before 'from'", getAvailability.ErrInvalidRange), http.StatusBadRequest, "invalid date range: 'to' must not be before 'from'"},
		{"catalog", getAvailability.ErrCatalogUnavailable, http.StatusServiceUnavailable, msgCatalogNotConfigured},
		{"internal", getAvailability.ErrInternal, http.StatusInternalServerError, "internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &mockUseCase{}
			uc.On("Execute", mock.Anything, mock.Anything).Return(nil, tt.err)

			w := serve(uc, "/studios/main/availability")

			assert.Equal(t, tt.status, w.Code)
			assert.Contains(t, w.Body.String(), tt.body)
			assert.NotContains(t, w.Body.String(), "get_availability:")
		})
	}
}
