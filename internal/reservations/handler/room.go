package handler

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/julienschmidt/httprouter"

	"roomly/internal/reservations/catalog"
	"roomly/internal/reservations/service"
	apperrors "roomly/pkg/errors"
	httputil "roomly/pkg/http"
	"roomly/pkg/logger"
	"roomly/pkg/model"
)

// RoomHandler serves the room catalog and availability queries.
type RoomHandler struct {
	rooms        catalog.Provider
	reservations service.ReservationService
	availability service.AvailabilityService
	logger       *logger.Logger
}

func NewRoomHandler(rooms catalog.Provider, reservations service.ReservationService, availability service.AvailabilityService, log *logger.Logger) *RoomHandler {
	return &RoomHandler{
		rooms:        rooms,
		reservations: reservations,
		availability: availability,
		logger:       log,
	}
}

func (h *RoomHandler) RegisterRoutes(router *httprouter.Router) {
	router.HandlerFunc(http.MethodGet, "/api/v1/rooms", h.List)
	router.Handle(http.MethodGet, "/api/v1/rooms/id/:id", h.GetByID)
	router.Handle(http.MethodGet, "/api/v1/rooms/id/:id/bookings", h.ListBookings)
	router.HandlerFunc(http.MethodGet, "/api/v1/availability", h.Availability)
}

func parseFilter(r *http.Request) (service.RoomFilter, error) {
	var filter service.RoomFilter

	if raw := r.URL.Query().Get("min_capacity"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			return filter, apperrors.InvalidInput("min_capacity must be a non-negative integer")
		}
		filter.MinCapacity = n
	}
	if raw := r.URL.Query().Get("amenities"); raw != "" {
		filter.Amenities = strings.Split(raw, ",")
	}
	filter.Location = r.URL.Query().Get("location")

	return filter, nil
}

func parseInterval(r *http.Request) (model.Interval, error) {
	startRaw := r.URL.Query().Get("start_time")
	endRaw := r.URL.Query().Get("end_time")
	if startRaw == "" || endRaw == "" {
		return model.Interval{}, apperrors.InvalidInput("start_time and end_time query parameters are required")
	}

	start, err := time.Parse(time.RFC3339, startRaw)
	if err != nil {
		return model.Interval{}, apperrors.InvalidInput("start_time must be RFC3339")
	}
	end, err := time.Parse(time.RFC3339, endRaw)
	if err != nil {
		return model.Interval{}, apperrors.InvalidInput("end_time must be RFC3339")
	}

	return model.NewInterval(start, end)
}

func (h *RoomHandler) List(w http.ResponseWriter, r *http.Request) {
	filter, err := parseFilter(r)
	if err != nil {
		h.writeError(w, err)
		return
	}

	// With a time window the listing narrows to rooms free for it.
	if r.URL.Query().Get("start_time") != "" || r.URL.Query().Get("end_time") != "" {
		iv, err := parseInterval(r)
		if err != nil {
			h.writeError(w, err)
			return
		}

		rooms, err := h.availability.ListAvailableRooms(r.Context(), iv, filter)
		if err != nil {
			h.writeError(w, err)
			return
		}
		h.writeSuccess(w, rooms)
		return
	}

	all := h.rooms.ListRooms(r.Context())
	rooms := make([]*model.Room, 0, len(all))
	for _, room := range all {
		if filter.Matches(room) {
			rooms = append(rooms, room)
		}
	}
	h.writeSuccess(w, rooms)
}

func (h *RoomHandler) GetByID(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	room, err := h.rooms.GetRoom(r.Context(), ps.ByName("id"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeSuccess(w, room)
}

func (h *RoomHandler) ListBookings(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	includeCancelled := r.URL.Query().Get("include_cancelled") == "true"
	limit, offset, err := parsePagination(r)
	if err != nil {
		h.writeError(w, err)
		return
	}

	bookings, err := h.reservations.ListByRoom(r.Context(), ps.ByName("id"), includeCancelled)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeSuccess(w, paginate(bookings, limit, offset))
}

type availabilityResponse struct {
	RoomID    string    `json:"room_id"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
	Available bool      `json:"available"`
}

func (h *RoomHandler) Availability(w http.ResponseWriter, r *http.Request) {
	roomID := r.URL.Query().Get("room_id")
	if roomID == "" {
		h.writeError(w, apperrors.InvalidInput("room_id query parameter is required"))
		return
	}

	iv, err := parseInterval(r)
	if err != nil {
		h.writeError(w, err)
		return
	}

	free, err := h.availability.IsRoomFree(r.Context(), roomID, iv)
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.writeSuccess(w, availabilityResponse{
		RoomID:    roomID,
		StartTime: iv.Start,
		EndTime:   iv.End,
		Available: free,
	})
}

func (h *RoomHandler) writeSuccess(w http.ResponseWriter, data any) {
	if err := httputil.WriteSuccess(w, data); err != nil {
		h.logger.Error("failed to write response", "error", err)
	}
}

func (h *RoomHandler) writeError(w http.ResponseWriter, err error) {
	if werr := httputil.WriteError(w, err); werr != nil {
		h.logger.Error("failed to write error response", "error", werr)
	}
}
