package list_bookings

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/m04kA/SMC-StudioBooking/internal/service/bookings/models"
	"github.com/m04kA/SMC-StudioBooking/pkg/ptr"
)

// ParseListQuery формирует запрос к сервису из query параметров
// month, year, studio, status, limit, offset (все опциональны)
func ParseListQuery(q url.Values) (*models.ListBookingsRequest, error) {
	req := &models.ListBookingsRequest{
		Studio: strings.TrimSpace(q.Get("studio")),
	}

	month, err := optionalInt(q, "month")
	if err != nil {
		return nil, err
	}
	req.Month = month

	year, err := optionalInt(q, "year")
	if err != nil {
		return nil, err
	}
	req.Year = year

	if status := strings.TrimSpace(q.Get("status")); status != "" && status != "all" {
		req.Status = ptr.Ptr(status)
	}

	if s := q.Get("limit"); s != "" {
		limit, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid limit: %w", err)
		}
		req.Limit = limit
	}

	if s := q.Get("offset"); s != "" {
		offset, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid offset: %w", err)
		}
		req.Offset = offset
	}

	return req, nil
}

// optionalInt пустое значение и "all" означают "без фильтра"
func optionalInt(q url.Values, name string) (*int, error) {
	s := strings.TrimSpace(q.Get(name))
	if s == "" || s == "all" {
		return nil, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return nil, fmt.Errorf("invalid %s: %w", name, err)
	}
	return &v, nil
}
