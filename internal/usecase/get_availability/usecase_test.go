package get_availability

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-StudioBooking/internal/availability"
	"github.com/m04kA/SMC-StudioBooking/internal/domain"
	catalogRepo "github.com/m04kA/SMC-StudioBooking/internal/infra/storage/catalog"
	"github.com/m04kA/SMC-StudioBooking/pkg/logger"
	"github.com/m04kA/SMC-StudioBooking/pkg/types"
)

type mockBookingRepo struct {
	mock.Mock
}

func (m *mockBookingRepo) List(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Booking), args.Error(1)
}

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

type fixedTime struct {
	now time.Time
}

func (f fixedTime) Now() time.Time { return f.now }

func testCatalog() *domain.Catalog {
	return &domain.Catalog{
		Studios: []domain.Studio{
			{ID: "main", Name: "MAIN STUDIO", PricePerHour: 7500},
			{ID: "both", Name: "BOTH STUDIOS", PricePerHour: 11000, MinBookingMinutes: 120},
		},
	}
}

func newTestUseCase(bookings *mockBookingRepo, catalog *mockCatalogRepo, now time.Time) *UseCase {
	uc := NewUseCase(bookings, catalog, availability.DefaultSchedule(), 35*time.Minute, 31, logger.NewNop())
	uc.timeProvider = fixedTime{now: now}
	return uc
}

func TestExecuteBuildsBlockedSlotsPerDay(t *testing.T) {
	bookings := &mockBookingRepo{}
	catalog := &mockCatalogRepo{}
	now := time.Date(2025, 5, 30, 10, 0, 0, 0, time.UTC)
	uc := newTestUseCase(bookings, catalog, now)

	from := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)

	catalog.On("Get", mock.Anything).Return(testCatalog(), nil)
	bookings.On("List", mock.Anything, mock.MatchedBy(func(f domain.BookingsFilter) bool {
		return f.Studio == "MAIN STUDIO" &&
			f.From.Equal(from) && f.To.Equal(to) &&
			f.PendingCreatedAfter.Equal(now.Add(-35*time.Minute)) &&
			assert.ObjectsAreEqual(domain.BlockingStatuses, f.Statuses)
	})).Return([]*domain.Booking{
		{
			Studio:    "MAIN STUDIO",
			StartDate: from,
			StartTime: types.MustParseTimeLabel("2:00 PM"),
			EndTime:   types.MustParseTimeLabel("4:00 PM"),
		},
	}, nil)

	resp, err := uc.Execute(context.Background(), &Request{Studio: "main studio", From: from, To: to})
	require.NoError(t, err)

	assert.Equal(t, "MAIN STUDIO", resp.Studio)
	assert.False(t, resp.Advanced)
	assert.Equal(t, 60, resp.MinBookingMinutes)
	require.Len(t, resp.Days, 2)

	first := resp.Days[0]
	assert.Len(t, first.Slots, 27)
	assert.Equal(t, []types.TimeLabel{"2:00 PM", "2:30 PM", "3:00 PM", "3:30 PM", "4:00 PM"}, first.Blocked)
	assert.NotContains(t, first.Free, types.TimeLabel("2:00 PM"))
	assert.Contains(t, first.Free, types.TimeLabel("4:30 PM"))

	assert.Empty(t, resp.Days[1].Blocked)
	assert.Len(t, resp.Days[1].Free, 27)

	bookings.AssertExpectations(t)
	catalog.AssertExpectations(t)
}

func TestExecuteAdvancesPastClosing(t *testing.T) {
	bookings := &mockBookingRepo{}
	catalog := &mockCatalogRepo{}
	now := time.Date(2025, 6, 1, 21, 15, 0, 0, time.UTC)
	uc := newTestUseCase(bookings, catalog, now)

	tomorrow := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)

	catalog.On("Get", mock.Anything).Return(testCatalog(), nil)
	bookings.On("List", mock.Anything, mock.Anything).Return([]*domain.Booking{}, nil)

	resp, err := uc.Execute(context.Background(), &Request{Studio: "BOTH STUDIOS"})
	require.NoError(t, err)

	assert.True(t, resp.Advanced)
	assert.True(t, resp.From.Equal(tomorrow))
	assert.True(t, resp.To.Equal(tomorrow))
	assert.Equal(t, 120, resp.MinBookingMinutes)
}

func TestExecuteErrors(t *testing.T) {
	now := time.Date(2025, 5, 30, 10, 0, 0, 0, time.UTC)
	from := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		req     *Request
		setup   func(b *mockBookingRepo, c *mockCatalogRepo)
		wantErr error
	}{
		{
			name:    "studio is required",
			req:     &Request{From: from},
			setup:   func(b *mockBookingRepo, c *mockCatalogRepo) {},
			wantErr: ErrInvalidInput,
		},
		{
			name:    "to before from",
			req:     &Request{Studio: "MAIN STUDIO", From: from, To: from.AddDate(0, 0, -1)},
			setup:   func(b *mockBookingRepo, c *mockCatalogRepo) {},
			wantErr: ErrInvalidRange,
		},
		{
			name:    "range too long",
			req:     &Request{Studio: "MAIN STUDIO", From: from, To: from.AddDate(0, 0, 31)},
			setup:   func(b *mockBookingRepo, c *mockCatalogRepo) {},
			wantErr: ErrInvalidRange,
		},
		{
			name: "unknown studio",
			req:  &Request{Studio: "ROOFTOP", From: from},
			setup: func(b *mockBookingRepo, c *mockCatalogRepo) {
				c.On("Get", mock.Anything).Return(testCatalog(), nil)
			},
			wantErr: ErrStudioNotFound,
		},
		{
			name: "empty catalog",
			req:  &Request{Studio: "MAIN STUDIO", From: from},
			setup: func(b *mockBookingRepo, c *mockCatalogRepo) {
				c.On("Get", mock.Anything).Return(nil, catalogRepo.ErrCatalogNotFound)
			},
			wantErr: ErrCatalogUnavailable,
		},
		{
			name: "repository failure",
			req:  &Request{Studio: "MAIN STUDIO", From: from},
			setup: func(b *mockBookingRepo, c *mockCatalogRepo) {
				c.On("Get", mock.Anything).Return(testCatalog(), nil)
				b.On("List", mock.Anything, mock.Anything).Return(nil, errors.New("connection refused"))
			},
			wantErr: ErrInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bookings := &mockBookingRepo{}
			catalog := &mockCatalogRepo{}
			tt.setup(bookings, catalog)

			_, err := newTestUseCase(bookings, catalog, now).Execute(context.Background(), tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
