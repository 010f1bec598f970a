package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"resourcebook/internal/bookings/service"
	apperrors "resourcebook/pkg/errors"
	httputil "resourcebook/pkg/http"
	"resourcebook/pkg/logger"
	"resourcebook/pkg/model"

	"github.com/julienschmidt/httprouter"
)

const (
	BookingsPath      = "/bookings"
	BookingDeletePath = "/booking-delete/:id"
)

type BookingHandler struct {
	service service.BookingService
	log     *logger.Logger
}

func NewBookingHandler(service service.BookingService, log *logger.Logger) *BookingHandler {
	return &BookingHandler{
		service: service,
		log:     log,
	}
}

func (h *BookingHandler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req model.BookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, "Create", decodeError(err))
		return
	}

	booking, err := h.service.Create(r.Context(), &req)
	if err != nil {
		h.writeError(w, "Create", err)
		return
	}

	if err := httputil.WriteSuccess(w, model.InsertResult{
		Acknowledged: true,
		InsertedID:   booking.ID,
	}); err != nil {
		h.log.Error("failed to write success response", "handler", "Create", "operation", "WriteSuccess", "error", err)
	}
}

func (h *BookingHandler) List(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	query := r.URL.Query()
	filter := model.BookingFilter{
		Resource: query.Get("resource"),
		Date:     query.Get("date"),
	}

	bookings, err := h.service.List(r.Context(), filter)
	if err != nil {
		h.writeError(w, "List", err)
		return
	}

	if err := httputil.WriteSuccess(w, bookings); err != nil {
		h.log.Error("failed to write success response", "handler", "List", "operation", "WriteSuccess", "error", err)
	}
}

func (h *BookingHandler) Delete(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	deleted, err := h.service.Delete(r.Context(), ps.ByName("id"))
	if err != nil {
		h.writeError(w, "Delete", err)
		return
	}

	if err := httputil.WriteSuccess(w, model.DeleteResult{
		Acknowledged: true,
		DeletedCount: deleted,
	}); err != nil {
		h.log.Error("failed to write success response", "handler", "Delete", "operation", "WriteSuccess", "error", err)
	}
}

func (h *BookingHandler) writeError(w http.ResponseWriter, handler string, err error) {
	if writeErr := httputil.WriteError(w, err); writeErr != nil {
		h.log.Error("failed to write error response", "handler", handler, "operation", "WriteError", "error", writeErr)
	}
}

func decodeError(err error) error {
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		return apperrors.New("PAYLOAD_TOO_LARGE", "Request body too large", http.StatusRequestEntityTooLarge)
	}
	return apperrors.InvalidInput("Invalid request body")
}

func (h *BookingHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST(BookingsPath, h.Create)
	router.GET(BookingsPath, h.List)
	router.DELETE(BookingDeletePath, h.Delete)
}
