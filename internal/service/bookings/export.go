package bookings

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"

	"github.com/m04kA/SMC-StudioBooking/internal/domain"
	"github.com/m04kA/SMC-StudioBooking/internal/service/bookings/models"
)

var exportColumns = []string{
	"Booking ID", "Studio", "Start Date", "Start Time", "End Date", "End Time",
	"Subtotal", "Studio Cost", "Surcharge", "Total", "Status",
	"Customer Name", "Customer Email", "Add-ons", "Total Hours",
}

// Export выгружает отфильтрованные бронирования в CSV.
// Первая строка "Exported On: <дата>", затем пустая строка и таблица
func (s *Service) Export(ctx context.Context, req *models.ListBookingsRequest) (*models.ExportResponse, error) {
	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("Export: invalid filter: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	// Выгрузка всегда полная
	filter.Limit, filter.Offset = 0, 0

	bookings, err := s.bookingRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("Export: repository error: %v", err)
		return nil, fmt.Errorf("%w: Export - repository error: %v", ErrInternal, err)
	}

	exportDate := s.timeProvider.Now().Format(domain.DateFormat)

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "Exported On: %s\n\n", exportDate)

	w := csv.NewWriter(&buf)
	if err := w.Write(exportColumns); err != nil {
		return nil, fmt.Errorf("%w: Export - write header: %v", ErrInternal, err)
	}
	for _, b := range bookings {
		if err := w.Write(exportRow(b)); err != nil {
			return nil, fmt.Errorf("%w: Export - write row: %v", ErrInternal, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("%w: Export - flush: %v", ErrInternal, err)
	}

	s.logger.Info("Export: exported %d bookings", len(bookings))

	return &models.ExportResponse{
		FileName: fmt.Sprintf("bookings-%s.csv", exportDate),
		Content:  buf.Bytes(),
	}, nil
}

func exportRow(b *domain.Booking) []string {
	totalHours := "N/A"
	if hours, ok := models.TotalHours(b); ok {
		totalHours = strconv.FormatFloat(hours, 'f', 1, 64)
	}

	return []string{
		b.ID.String(),
		b.Studio,
		b.StartDate.Format(domain.DateFormat),
		b.StartTime.String(),
		b.EffectiveEndDate().Format(domain.DateFormat),
		b.EndTime.String(),
		b.Subtotal.String(),
		b.StudioCost.String(),
		b.Surcharge.String(),
		b.Total.String(),
		string(b.PaymentStatus),
		b.Customer.Name,
		b.Customer.Email,
		addOns(b.Items),
		totalHours,
	}
}

// addOns "Makeup (2); Steamer (1)" или "None"
func addOns(items []domain.LineItem) string {
	parts := make([]string, 0, len(items))
	for _, item := range items {
		if item.Quantity > 0 {
			parts = append(parts, fmt.Sprintf("%s (%d)", item.Name, item.Quantity))
		}
	}
	if len(parts) == 0 {
		return "None"
	}
	return strings.Join(parts, "; ")
}
