package get_catalog

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/m04kA/SMC-StudioBooking/internal/service/catalog"
	"github.com/m04kA/SMC-StudioBooking/internal/service/catalog/models"
	"github.com/m04kA/SMC-StudioBooking/pkg/logger"
)

type mockService struct {
	mock.Mock
}

func (m *mockService) Get(ctx context.Context) (*models.CatalogResponse, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.CatalogResponse), args.Error(1)
}

func TestHandle(t *testing.T) {
	tests := []struct {
		name     string
		result   *models.CatalogResponse
		err      error
		status   int
		contains string
	}{
		{
			name: "ok",
			result: &models.CatalogResponse{
				Studios: []models.StudioResponse{{ID: "main", Name: "MAIN STUDIO", PricePerHour: 7500}},
			},
			status:   http.StatusOK,
			contains: `"name":"MAIN STUDIO"`,
		},
		{name: "not configured", err: catalog.ErrCatalogNotFound, status: http.StatusNotFound, contains: msgCatalogNotConfigured},
		{name: "internal", err: catalog.ErrInternal, status: http.StatusInternalServerError, contains: "internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockService{}
			if tt.err != nil {
				svc.On("Get", mock.Anything).Return(nil, tt.err)
			} else {
				svc.On("Get", mock.Anything).Return(tt.result, nil)
			}

			w := httptest.NewRecorder()
			NewHandler(svc, logger.NewNop()).Handle(w, httptest.NewRequest(http.MethodGet, "/api/v1/catalog", nil))

			assert.Equal(t, tt.status, w.Code)
			assert.Contains(t, w.Body.String(), tt.contains)
		})
	}
}
