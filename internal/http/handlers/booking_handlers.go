package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/luxehairplug/bookings/internal/domain"
	"github.com/luxehairplug/bookings/internal/http/response"
	"github.com/luxehairplug/bookings/internal/payments"
	"github.com/luxehairplug/bookings/pkg/logger"
)

type createIntentRequest struct {
	Booking domain.BookingRequest `json:"booking"`
}

type createIntentResponse struct {
	ClientSecret    string `json:"clientSecret"`
	PaymentIntentID string `json:"paymentIntentId"`
}

// CreatePaymentIntent validates the booking and creates the fixed deposit
// charge. The Idempotency-Key header, when present, is forwarded to the
// provider so a retried request cannot create a duplicate charge.
func (h *Handlers) CreatePaymentIntent(w http.ResponseWriter, r *http.Request) {
	var in createIntentRequest
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		response.BadRequest(w, "Missing required booking information")
		return
	}

	svc, err := in.Booking.Validate(h.catalog)
	switch {
	case errors.Is(err, domain.ErrMissingFields):
		response.BadRequest(w, "Missing required booking information")
		return
	case errors.Is(err, domain.ErrUnknownService):
		response.BadRequest(w, "Invalid service selected")
		return
	}

	intent, err := h.payments.CreateDeposit(r.Context(), in.Booking, svc, r.Header.Get("Idempotency-Key"))
	if err != nil {
		var perr *payments.ProviderError
		if errors.As(err, &perr) {
			logger.ErrorContext(r.Context(), "Failed to create payment intent",
				"service", in.Booking.Service, "code", perr.Code, "error", perr.Msg)
		} else {
			logger.ErrorContext(r.Context(), "Failed to create payment intent",
				"service", in.Booking.Service, "error", err)
		}
		response.InternalError(w, "Unable to create payment intent")
		return
	}

	logger.InfoContext(r.Context(), "Payment intent created",
		"intent_id", intent.ID, "service", in.Booking.Service)

	response.WriteJSON(w, http.StatusOK, createIntentResponse{
		ClientSecret:    intent.ClientSecret,
		PaymentIntentID: intent.ID,
	})
}

type bookingStatusResponse struct {
	Success bool              `json:"success"`
	Booking map[string]string `json:"booking,omitempty"`
	Status  string            `json:"status,omitempty"`
}

// GetBooking reports whether the deposit charge succeeded. The confirmation
// page reads the booking back from charge metadata; there is no local store.
func (h *Handlers) GetBooking(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	intent, err := h.payments.GetIntent(r.Context(), id)
	if err != nil {
		if errors.Is(err, payments.ErrIntentNotFound) {
			response.NotFound(w, "Booking not found")
			return
		}
		logger.ErrorContext(r.Context(), "Failed to retrieve payment intent", "intent_id", id, "error", err)
		response.InternalError(w, "Unable to retrieve booking")
		return
	}

	if intent.Status == "succeeded" {
		response.WriteJSON(w, http.StatusOK, bookingStatusResponse{
			Success: true,
			Booking: intent.Metadata,
		})
		return
	}

	response.WriteJSON(w, http.StatusOK, bookingStatusResponse{
		Success: false,
		Status:  intent.Status,
	})
}
