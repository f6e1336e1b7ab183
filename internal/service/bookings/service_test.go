package bookings

import (
	"context"
	"encoding/csv"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-StudioBooking/internal/domain"
	bookingRepo "github.com/m04kA/SMC-StudioBooking/internal/infra/storage/booking"
	"github.com/m04kA/SMC-StudioBooking/internal/service/bookings/models"
	"github.com/m04kA/SMC-StudioBooking/pkg/logger"
	"github.com/m04kA/SMC-StudioBooking/pkg/ptr"
)

type mockBookingRepo struct {
	mock.Mock
}

func (m *mockBookingRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *mockBookingRepo) List(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Booking), args.Error(1)
}

type fixedTime struct {
	now time.Time
}

func (f fixedTime) Now() time.Time { return f.now }

var (
	paidID    = uuid.MustParse("11111111-1111-4111-8111-111111111111")
	pendingID = uuid.MustParse("22222222-2222-4222-8222-222222222222")
)

func sampleBookings() []*domain.Booking {
	return []*domain.Booking{
		{
			ID:         paidID,
			Studio:     "MAIN STUDIO",
			StartDate:  time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
			EndDate:    time.Date(2025, 6, 3, 0, 0, 0, 0, time.UTC),
			StartTime:  "9:00 PM",
			EndTime:    "10:00 AM",
			Subtotal:   4000,
			StudioCost: 277500,
			Total:      281500,
			Items: []domain.LineItem{
				{ServiceID: "makeup", Name: "Makeup", Quantity: 2, PricePerHour: 2000},
				{ServiceID: "steamer", Name: "Steamer", Quantity: 0, PricePerHour: 3000},
			},
			PaymentStatus: domain.StatusPaid,
			Customer:      domain.Customer{Name: "Doe, Jane", Email: "jane@example.com"},
		},
		{
			ID:            pendingID,
			Studio:        "BOTH STUDIOS",
			StartDate:     time.Date(2025, 6, 5, 0, 0, 0, 0, time.UTC),
			StartTime:     "10:00 AM",
			EndTime:       "bogus",
			Total:         5000,
			PaymentStatus: domain.StatusPending,
		},
	}
}

func newTestService(repo *mockBookingRepo) *Service {
	s := NewService(repo, logger.NewNop())
	s.timeProvider = fixedTime{now: time.Date(2025, 6, 10, 15, 0, 0, 0, time.UTC)}
	return s
}

func TestListBuildsFilter(t *testing.T) {
	repo := &mockBookingRepo{}
	s := newTestService(repo)

	repo.On("List", mock.Anything, mock.MatchedBy(func(f domain.BookingsFilter) bool {
		return *f.Month == 6 && *f.Year == 2025 && f.Studio == "main studio" &&
			len(f.Statuses) == 1 && f.Statuses[0] == domain.StatusPaid
	})).Return(sampleBookings()[:1], nil)

	resp, err := s.List(context.Background(), &models.ListBookingsRequest{
		Month:  ptr.Ptr(6),
		Year:   ptr.Ptr(2025),
		Studio: " main studio ",
		Status: ptr.Ptr("PAID"),
	})
	require.NoError(t, err)

	require.Len(t, resp.Bookings, 1)
	assert.Equal(t, 1, resp.Count)
	assert.Equal(t, "2025-06-03", resp.Bookings[0].EndDate)
	require.NotNil(t, resp.Bookings[0].TotalHours)
	assert.Equal(t, 37.0, *resp.Bookings[0].TotalHours)
	assert.EqualValues(t, 281500, resp.PaidTotal)
}

func TestListInvalidFilter(t *testing.T) {
	s := newTestService(&mockBookingRepo{})

	tests := []struct {
		name string
		req  *models.ListBookingsRequest
	}{
		{name: "month out of range", req: &models.ListBookingsRequest{Month: ptr.Ptr(13)}},
		{name: "year out of range", req: &models.ListBookingsRequest{Year: ptr.Ptr(1999)}},
		{name: "unknown status", req: &models.ListBookingsRequest{Status: ptr.Ptr("cancelled")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.List(context.Background(), tt.req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestGetByID(t *testing.T) {
	repo := &mockBookingRepo{}
	s := newTestService(repo)

	missing := uuid.New()
	repo.On("GetByID", mock.Anything, paidID).Return(sampleBookings()[0], nil)
	repo.On("GetByID", mock.Anything, missing).Return(nil, bookingRepo.ErrBookingNotFound)
	repo.On("GetByID", mock.Anything, pendingID).Return(nil, errors.New("timeout"))

	resp, err := s.GetByID(context.Background(), paidID)
	require.NoError(t, err)
	assert.Equal(t, "paid", resp.PaymentStatus)
	assert.Equal(t, "9:00 PM", resp.StartTime)

	_, err = s.GetByID(context.Background(), missing)
	assert.ErrorIs(t, err, ErrBookingNotFound)

	_, err = s.GetByID(context.Background(), pendingID)
	assert.ErrorIs(t, err, ErrInternal)
}

func TestExportCSV(t *testing.T) {
	repo := &mockBookingRepo{}
	s := newTestService(repo)

	repo.On("List", mock.Anything, mock.MatchedBy(func(f domain.BookingsFilter) bool {
		return f.Limit == 0 && f.Offset == 0
	})).Return(sampleBookings(), nil)

	resp, err := s.Export(context.Background(), &models.ListBookingsRequest{Limit: 10, Offset: 20})
	require.NoError(t, err)
	assert.Equal(t, "bookings-2025-06-10.csv", resp.FileName)

	content := string(resp.Content)
	require.True(t, strings.HasPrefix(content, "Exported On: 2025-06-10\n\n"))

	records, err := csv.NewReader(strings.NewReader(strings.TrimPrefix(content, "Exported On: 2025-06-10\n\n"))).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, exportColumns, records[0])
	assert.Equal(t, []string{
		paidID.String(), "MAIN STUDIO", "2025-06-01", "9:00 PM", "2025-06-03", "10:00 AM",
		"40.00", "2775.00", "0.00", "2815.00", "paid",
		"Doe, Jane", "jane@example.com", "Makeup (2)", "37.0",
	}, records[1])

	assert.Equal(t, "None", records[2][13])
	assert.Equal(t, "N/A", records[2][14])
	assert.Equal(t, "2025-06-05", records[2][4])
}
