package catalog

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-StudioBooking/internal/domain"
	catalogRepo "github.com/m04kA/SMC-StudioBooking/internal/infra/storage/catalog"
	"github.com/m04kA/SMC-StudioBooking/internal/service/catalog/models"
	"github.com/m04kA/SMC-StudioBooking/pkg/logger"
)

type mockCatalogRepo struct {
	mock.Mock
}

func (m *mockCatalogRepo) Get(ctx context.Context) (*domain.Catalog, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Catalog), args.Error(1)
}

func (m *mockCatalogRepo) Replace(ctx context.Context, c *domain.Catalog) error {
	return m.Called(ctx, c).Error(0)
}

type fakeTxManager struct {
	calls int
}

func (f *fakeTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	f.calls++
	return fn(ctx)
}

func validRequest() *models.ReplaceCatalogRequest {
	return &models.ReplaceCatalogRequest{
		Studios: []models.StudioRequest{
			{ID: "main", Name: " MAIN STUDIO ", PricePerHour: 7500},
			{ID: "both", Name: "BOTH STUDIOS", PricePerHour: 11000, MinBookingMinutes: 120},
		},
		Services: []models.ServiceRequest{
			{ID: "makeup", Name: "Makeup", PricePerHour: 2000, ImageURL: "https://cdn.example.com/makeup.png"},
		},
	}
}

func TestGet(t *testing.T) {
	repo := &mockCatalogRepo{}
	s := NewService(repo, &fakeTxManager{}, 60, logger.NewNop())

	updatedAt := time.Date(2025, 5, 1, 10, 0, 0, 0, time.UTC)
	repo.On("Get", mock.Anything).Return(&domain.Catalog{
		Studios:   []domain.Studio{{ID: "main", Name: "MAIN STUDIO", PricePerHour: 7500}},
		UpdatedAt: updatedAt,
	}, nil).Once()
	repo.On("Get", mock.Anything).Return(nil, catalogRepo.ErrCatalogNotFound).Once()
	repo.On("Get", mock.Anything).Return(nil, errors.New("timeout")).Once()

	resp, err := s.Get(context.Background())
	require.NoError(t, err)
	require.Len(t, resp.Studios, 1)
	assert.Equal(t, 60, resp.Studios[0].MinBookingMinutes)
	assert.Empty(t, resp.Services)
	assert.Equal(t, &updatedAt, resp.UpdatedAt)

	_, err = s.Get(context.Background())
	assert.ErrorIs(t, err, ErrCatalogNotFound)

	_, err = s.Get(context.Background())
	assert.ErrorIs(t, err, ErrInternal)
}

func TestReplace(t *testing.T) {
	repo := &mockCatalogRepo{}
	tx := &fakeTxManager{}
	s := NewService(repo, tx, 60, logger.NewNop())

	repo.On("Replace", mock.Anything, mock.MatchedBy(func(c *domain.Catalog) bool {
		return len(c.Studios) == 2 && c.Studios[0].Name == "MAIN STUDIO" && len(c.Services) == 1
	})).Return(nil)

	resp, err := s.Replace(context.Background(), validRequest())
	require.NoError(t, err)
	assert.Equal(t, 1, tx.calls)
	assert.Equal(t, 120, resp.Studios[1].MinBookingMinutes)
	repo.AssertExpectations(t)
}

func TestReplaceRejectsInvalidCatalog(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(r *models.ReplaceCatalogRequest)
		wantErr error
	}{
		{
			name:    "no studios",
			mutate:  func(r *models.ReplaceCatalogRequest) { r.Studios = nil },
			wantErr: ErrInvalidInput,
		},
		{
			name:    "zero studio price",
			mutate:  func(r *models.ReplaceCatalogRequest) { r.Studios[0].PricePerHour = 0 },
			wantErr: ErrInvalidInput,
		},
		{
			name:    "bad image url",
			mutate:  func(r *models.ReplaceCatalogRequest) { r.Services[0].ImageURL = "not a url" },
			wantErr: ErrInvalidInput,
		},
		{
			name:    "studio names differ only by case",
			mutate:  func(r *models.ReplaceCatalogRequest) { r.Studios[1].Name = "main studio" },
			wantErr: ErrDuplicateName,
		},
		{
			name: "duplicate service id",
			mutate: func(r *models.ReplaceCatalogRequest) {
				r.Services = append(r.Services, models.ServiceRequest{ID: "makeup", Name: "Makeup 2", PricePerHour: 100})
			},
			wantErr: ErrDuplicateName,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &mockCatalogRepo{}
			tx := &fakeTxManager{}
			s := NewService(repo, tx, 60, logger.NewNop())

			req := validRequest()
			tt.mutate(req)

			_, err := s.Replace(context.Background(), req)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Zero(t, tx.calls)
		})
	}
}

func TestReplaceRepositoryError(t *testing.T) {
	repo := &mockCatalogRepo{}
	s := NewService(repo, &fakeTxManager{}, 60, logger.NewNop())
	repo.On("Replace", mock.Anything, mock.Anything).Return(errors.New("connection reset"))

	_, err := s.Replace(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrInternal)
}
