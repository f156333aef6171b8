package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/luxehairplug/bookings/internal/http/response"
	"github.com/luxehairplug/bookings/internal/webhooks"
	"github.com/luxehairplug/bookings/pkg/logger"
)

const webhookBodyLimit = 1 << 16 // Stripe events are small; cap the body read

// Webhook receives signed provider events. The body is passed to the
// verifier exactly as received; re-serializing would break the signature.
func (h *Handlers) Webhook(w http.ResponseWriter, r *http.Request) {
	payload, err := io.ReadAll(http.MaxBytesReader(w, r.Body, webhookBodyLimit))
	if err != nil {
		response.BadRequest(w, "Unable to read request body")
		return
	}

	err = h.webhooks.Handle(r.Context(), payload, r.Header.Get("Stripe-Signature"))
	if err != nil {
		if errors.Is(err, webhooks.ErrNotConfigured) {
			logger.ErrorContext(r.Context(), "Webhook received but signing secret is not configured")
			response.ServiceUnavailable(w, "Webhook verification not configured")
			return
		}

		var sigErr *webhooks.SignatureError
		if errors.As(err, &sigErr) {
			logger.WarnContext(r.Context(), "Webhook signature verification failed",
				"remote_addr", r.RemoteAddr, "error", err)
			response.WriteError(w, http.StatusBadRequest, "Webhook signature verification failed", response.CodeBadSignature)
			return
		}

		logger.ErrorContext(r.Context(), "Webhook handling failed", "error", err)
		response.InternalError(w, "Webhook handling failed")
		return
	}

	response.WriteJSON(w, http.StatusOK, map[string]bool{"received": true})
}
