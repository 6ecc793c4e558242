package handler

import (
	"encoding/json"
	"net/http"

	"github.com/julienschmidt/httprouter"

	"roomly/internal/reservations/service"
	"roomly/internal/reservations/validator"
	apperrors "roomly/pkg/errors"
	httputil "roomly/pkg/http"
	"roomly/pkg/logger"
	"roomly/pkg/model"
)

// ReservationHandler exposes the booking lifecycle over HTTP. The
// calling user is identified by the X-User-ID and X-User-Email headers
// set by the gateway.
type ReservationHandler struct {
	service   service.ReservationService
	validator *validator.ReservationValidator
	logger    *logger.Logger
}

func NewReservationHandler(svc service.ReservationService, v *validator.ReservationValidator, log *logger.Logger) *ReservationHandler {
	return &ReservationHandler{
		service:   svc,
		validator: v,
		logger:    log,
	}
}

func (h *ReservationHandler) RegisterRoutes(router *httprouter.Router) {
	router.HandlerFunc(http.MethodPost, "/api/v1/bookings", h.Create)
	router.HandlerFunc(http.MethodGet, "/api/v1/bookings", h.ListMine)
	router.Handle(http.MethodGet, "/api/v1/bookings/id/:id", h.GetByID)
	router.Handle(http.MethodPatch, "/api/v1/bookings/id/:id", h.Modify)
	router.Handle(http.MethodDelete, "/api/v1/bookings/id/:id", h.Cancel)
}

func ownerFromRequest(r *http.Request) (model.Owner, error) {
	owner := model.Owner{
		UserID: r.Header.Get("X-User-ID"),
		Email:  r.Header.Get("X-User-Email"),
	}
	if owner.UserID == "" {
		return model.Owner{}, apperrors.Unauthorized("missing X-User-ID header")
	}
	return owner, nil
}

func (h *ReservationHandler) Create(w http.ResponseWriter, r *http.Request) {
	owner, err := ownerFromRequest(r)
	if err != nil {
		h.writeError(w, err)
		return
	}
	if err := h.validator.ValidateOwner(owner); err != nil {
		h.writeError(w, apperrors.Validation(err.Error(), nil))
		return
	}

	var req model.BookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, apperrors.InvalidInput("invalid request body"))
		return
	}

	if err := h.validator.ValidateRequest(&req); err != nil {
		h.writeError(w, apperrors.Validation(err.Error(), nil))
		return
	}

	booking, err := h.service.Create(r.Context(), &req, owner)
	if err != nil {
		h.writeError(w, err)
		return
	}

	if err := httputil.WriteCreated(w, booking); err != nil {
		h.logger.Error("failed to write response", "error", err)
	}
}

func (h *ReservationHandler) GetByID(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	owner, err := ownerFromRequest(r)
	if err != nil {
		h.writeError(w, err)
		return
	}

	booking, err := h.service.GetByID(r.Context(), ps.ByName("id"), owner)
	if err != nil {
		h.writeError(w, err)
		return
	}

	if err := httputil.WriteSuccess(w, booking); err != nil {
		h.logger.Error("failed to write response", "error", err)
	}
}

func (h *ReservationHandler) Modify(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	owner, err := ownerFromRequest(r)
	if err != nil {
		h.writeError(w, err)
		return
	}

	var change model.BookingChange
	if err := json.NewDecoder(r.Body).Decode(&change); err != nil {
		h.writeError(w, apperrors.InvalidInput("invalid request body"))
		return
	}

	if err := h.validator.ValidateChange(&change); err != nil {
		h.writeError(w, apperrors.Validation(err.Error(), nil))
		return
	}

	booking, err := h.service.Modify(r.Context(), ps.ByName("id"), owner, &change)
	if err != nil {
		h.writeError(w, err)
		return
	}

	if err := httputil.WriteSuccess(w, booking); err != nil {
		h.logger.Error("failed to write response", "error", err)
	}
}

func (h *ReservationHandler) Cancel(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	owner, err := ownerFromRequest(r)
	if err != nil {
		h.writeError(w, err)
		return
	}

	booking, err := h.service.Cancel(r.Context(), ps.ByName("id"), owner)
	if err != nil {
		h.writeError(w, err)
		return
	}

	if err := httputil.WriteSuccess(w, booking); err != nil {
		h.logger.Error("failed to write response", "error", err)
	}
}

func (h *ReservationHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	owner, err := ownerFromRequest(r)
	if err != nil {
		h.writeError(w, err)
		return
	}

	includeCancelled := r.URL.Query().Get("include_cancelled") == "true"
	limit, offset, err := parsePagination(r)
	if err != nil {
		h.writeError(w, err)
		return
	}

	bookings, err := h.service.ListByOwner(r.Context(), owner.UserID, includeCancelled)
	if err != nil {
		h.writeError(w, err)
		return
	}

	if err := httputil.WriteSuccess(w, paginate(bookings, limit, offset)); err != nil {
		h.logger.Error("failed to write response", "error", err)
	}
}

func (h *ReservationHandler) writeError(w http.ResponseWriter, err error) {
	if werr := httputil.WriteError(w, err); werr != nil {
		h.logger.Error("failed to write error response", "error", werr)
	}
}
