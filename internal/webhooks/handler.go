package webhooks

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/webhook"

	"github.com/luxehairplug/bookings/internal/notify"
	"github.com/luxehairplug/bookings/pkg/events"
	"github.com/luxehairplug/bookings/pkg/logger"
)

// ErrNotConfigured means the signing secret is absent. The webhook route
// fails closed rather than skipping verification.
var ErrNotConfigured = errors.New("webhook signing secret not configured")

// SignatureError marks an event whose signature could not be verified.
type SignatureError struct {
	cause error
}

func (e *SignatureError) Error() string {
	return fmt.Sprintf("webhook signature verification failed: %v", e.cause)
}

func (e *SignatureError) Unwrap() error { return e.cause }

// Handler verifies and dispatches Stripe webhook events. Dispatch is
// stateless; side effects go to the event bus and the notifier seam.
type Handler struct {
	secret   string
	bus      events.Publisher
	notifier notify.Notifier
}

func New(secret string, bus events.Publisher, notifier notify.Notifier) *Handler {
	return &Handler{secret: secret, bus: bus, notifier: notifier}
}

// Handle verifies the signature over the raw payload bytes exactly as
// received, then branches on event type. Unknown event types are
// acknowledged without action so new provider events cannot break delivery.
func (h *Handler) Handle(ctx context.Context, payload []byte, sigHeader string) error {
	if h.secret == "" {
		return ErrNotConfigured
	}

	// Stripe sends events pinned to the account's API version, which lags
	// the library's pinned version; only the signature matters here.
	event, err := webhook.ConstructEventWithOptions(payload, sigHeader, h.secret, webhook.ConstructEventOptions{
		IgnoreAPIVersionMismatch: true,
	})
	if err != nil {
		return &SignatureError{cause: err}
	}

	switch string(event.Type) {
	case "payment_intent.succeeded":
		if pi, ok := h.unmarshalIntent(ctx, event); ok {
			h.paymentSucceeded(ctx, pi)
		}
	case "payment_intent.payment_failed":
		if pi, ok := h.unmarshalIntent(ctx, event); ok {
			h.paymentFailed(ctx, pi)
		}
	default:
		logger.InfoContext(ctx, "Unhandled webhook event type", "type", string(event.Type))
	}

	return nil
}

func (h *Handler) unmarshalIntent(ctx context.Context, event stripe.Event) (*stripe.PaymentIntent, bool) {
	var pi stripe.PaymentIntent
	if err := json.Unmarshal(event.Data.Raw, &pi); err != nil {
		// Signature already checked; ack so the provider stops retrying.
		logger.ErrorContext(ctx, "Failed to decode webhook payload", "type", string(event.Type), "error", err)
		return nil, false
	}
	return &pi, true
}

func (h *Handler) paymentSucceeded(ctx context.Context, pi *stripe.PaymentIntent) {
	md := pi.Metadata
	logger.InfoContext(ctx, "Payment succeeded",
		"intent_id", pi.ID,
		"customer", md["customer_name"],
		"phone", md["customer_phone"],
		"service", md["service_name"],
		"date", md["appointment_date"],
		"amount_cents", pi.Amount,
	)

	if err := h.bus.Publish(ctx, events.PaymentSucceeded, events.PaymentSucceededEvent{
		IntentID:        pi.ID,
		ServiceID:       md["service_id"],
		ServiceName:     md["service_name"],
		CustomerName:    md["customer_name"],
		CustomerPhone:   md["customer_phone"],
		AppointmentDate: md["appointment_date"],
		AmountCents:     pi.Amount,
		OccurredAt:      time.Now().UTC(),
	}); err != nil {
		logger.ErrorContext(ctx, "Failed to publish payment.succeeded", "intent_id", pi.ID, "error", err)
	}

	if err := h.notifier.BookingConfirmed(ctx, md); err != nil {
		logger.ErrorContext(ctx, "Failed to send booking confirmation", "intent_id", pi.ID, "error", err)
	}
}

func (h *Handler) paymentFailed(ctx context.Context, pi *stripe.PaymentIntent) {
	reason := "unknown"
	if pi.LastPaymentError != nil && pi.LastPaymentError.Msg != "" {
		reason = pi.LastPaymentError.Msg
	}

	logger.WarnContext(ctx, "Payment failed", "intent_id", pi.ID, "reason", reason)

	if err := h.bus.Publish(ctx, events.PaymentFailed, events.PaymentFailedEvent{
		IntentID:   pi.ID,
		Reason:     reason,
		OccurredAt: time.Now().UTC(),
	}); err != nil {
		logger.ErrorContext(ctx, "Failed to publish payment.failed", "intent_id", pi.ID, "error", err)
	}
}
