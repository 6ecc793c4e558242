package handler

import (
	"net/http"
	"strconv"

	"roomly/pkg/config"
	apperrors "roomly/pkg/errors"
	"roomly/pkg/model"
)

// parsePagination reads the limit and offset query parameters. Absent values
// fall back to the configured defaults; the limit is clamped to the maximum.
func parsePagination(r *http.Request) (limit, offset int, err error) {
	limit = config.NormalizePaginationLimit(0)
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, convErr := strconv.Atoi(raw)
		if convErr != nil || n < 0 {
			return 0, 0, apperrors.InvalidInput("limit must be a non-negative integer")
		}
		limit = config.NormalizePaginationLimit(n)
	}
	if raw := r.URL.Query().Get("offset"); raw != "" {
		n, convErr := strconv.Atoi(raw)
		if convErr != nil || n < 0 {
			return 0, 0, apperrors.InvalidInput("offset must be a non-negative integer")
		}
		offset = n
	}
	return limit, offset, nil
}

func paginate(bookings []*model.Booking, limit, offset int) []*model.Booking {
	if offset >= len(bookings) {
		return []*model.Booking{}
	}
	end := offset + limit
	if end > len(bookings) {
		end = len(bookings)
	}
	return bookings[offset:end]
}
