package webhooks_test

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/webhook"

	"github.com/luxehairplug/bookings/internal/webhooks"
	"github.com/luxehairplug/bookings/pkg/events"
)

const testSecret = "whsec_test_secret"

// ---------- Mocks ----------

type mockPublisher struct {
	subjects []string
	payloads []interface{}
	err      error
}

func (m *mockPublisher) Publish(_ context.Context, subject string, data interface{}) error {
	m.subjects = append(m.subjects, subject)
	m.payloads = append(m.payloads, data)
	return m.err
}

func (m *mockPublisher) Close() error { return nil }

type mockNotifier struct {
	confirmed []map[string]string
	err       error
}

func (m *mockNotifier) BookingConfirmed(_ context.Context, booking map[string]string) error {
	m.confirmed = append(m.confirmed, booking)
	return m.err
}

// ---------- Helpers ----------

func signHeader(payload []byte, secret string, at time.Time) string {
	sig := webhook.ComputeSignature(at, payload, secret)
	return fmt.Sprintf("t=%d,v1=%s", at.Unix(), hex.EncodeToString(sig))
}

func eventPayload(t *testing.T, eventType string, object interface{}) []byte {
	t.Helper()
	raw, err := json.Marshal(map[string]interface{}{
		"id":          "evt_test_1",
		"api_version": stripe.APIVersion,
		"type":        eventType,
		"data":        map[string]interface{}{"object": object},
	})
	if err != nil {
		t.Fatal(err)
	}
	return raw
}

func succeededIntent() map[string]interface{} {
	return map[string]interface{}{
		"id":     "pi_test_1",
		"amount": 2000,
		"status": "succeeded",
		"metadata": map[string]string{
			"customer_name":    "Jane Doe",
			"customer_phone":   "555-0100",
			"service_id":       "wig-install",
			"service_name":     "Wig Install",
			"appointment_date": "2024-06-01",
		},
	}
}

// ---------- Tests ----------

func TestHandle_MissingSecret_FailsClosed(t *testing.T) {
	h := webhooks.New("", events.NoopPublisher{}, &mockNotifier{})

	err := h.Handle(context.Background(), []byte("{}"), "t=1,v1=deadbeef")
	if !errors.Is(err, webhooks.ErrNotConfigured) {
		t.Fatalf("got %v, want ErrNotConfigured", err)
	}
}

func TestHandle_InvalidSignature_RejectedBeforeDispatch(t *testing.T) {
	bus := &mockPublisher{}
	notifier := &mockNotifier{}
	h := webhooks.New(testSecret, bus, notifier)

	payload := eventPayload(t, "payment_intent.succeeded", succeededIntent())

	tests := []struct {
		name   string
		header string
	}{
		{"empty header", ""},
		{"garbage header", "not-a-signature"},
		{"wrong secret", signHeader(payload, "whsec_other", time.Now())},
		{"stale timestamp", signHeader(payload, testSecret, time.Now().Add(-time.Hour))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := h.Handle(context.Background(), payload, tt.header)

			var sigErr *webhooks.SignatureError
			if !errors.As(err, &sigErr) {
				t.Fatalf("got %v, want SignatureError", err)
			}
			if len(bus.subjects) != 0 || len(notifier.confirmed) != 0 {
				t.Fatal("side effects ran despite bad signature")
			}
		})
	}
}

func TestHandle_TamperedPayload_Rejected(t *testing.T) {
	h := webhooks.New(testSecret, &mockPublisher{}, &mockNotifier{})

	payload := eventPayload(t, "payment_intent.succeeded", succeededIntent())
	header := signHeader(payload, testSecret, time.Now())

	tampered := append([]byte{}, payload...)
	tampered[len(tampered)-2] = 'x'

	err := h.Handle(context.Background(), tampered, header)
	var sigErr *webhooks.SignatureError
	if !errors.As(err, &sigErr) {
		t.Fatalf("got %v, want SignatureError", err)
	}
}

func TestHandle_PaymentSucceeded_PublishesAndNotifies(t *testing.T) {
	bus := &mockPublisher{}
	notifier := &mockNotifier{}
	h := webhooks.New(testSecret, bus, notifier)

	payload := eventPayload(t, "payment_intent.succeeded", succeededIntent())

	if err := h.Handle(context.Background(), payload, signHeader(payload, testSecret, time.Now())); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(bus.subjects) != 1 || bus.subjects[0] != events.PaymentSucceeded {
		t.Fatalf("published subjects: %v", bus.subjects)
	}
	evt, ok := bus.payloads[0].(events.PaymentSucceededEvent)
	if !ok {
		t.Fatalf("unexpected payload type %T", bus.payloads[0])
	}
	if evt.IntentID != "pi_test_1" || evt.CustomerName != "Jane Doe" || evt.AmountCents != 2000 {
		t.Fatalf("unexpected event: %+v", evt)
	}

	if len(notifier.confirmed) != 1 {
		t.Fatalf("notifier called %d times, want 1", len(notifier.confirmed))
	}
	if notifier.confirmed[0]["service_name"] != "Wig Install" {
		t.Fatalf("unexpected booking metadata: %v", notifier.confirmed[0])
	}
}

func TestHandle_PaymentFailed_PublishesReason(t *testing.T) {
	bus := &mockPublisher{}
	h := webhooks.New(testSecret, bus, &mockNotifier{})

	object := map[string]interface{}{
		"id":     "pi_test_2",
		"status": "requires_payment_method",
		"last_payment_error": map[string]interface{}{
			"message": "Your card was declined.",
		},
	}
	payload := eventPayload(t, "payment_intent.payment_failed", object)

	if err := h.Handle(context.Background(), payload, signHeader(payload, testSecret, time.Now())); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(bus.subjects) != 1 || bus.subjects[0] != events.PaymentFailed {
		t.Fatalf("published subjects: %v", bus.subjects)
	}
	evt := bus.payloads[0].(events.PaymentFailedEvent)
	if evt.IntentID != "pi_test_2" || evt.Reason != "Your card was declined." {
		t.Fatalf("unexpected event: %+v", evt)
	}
}

func TestHandle_UnknownEventType_Acknowledged(t *testing.T) {
	bus := &mockPublisher{}
	notifier := &mockNotifier{}
	h := webhooks.New(testSecret, bus, notifier)

	payload := eventPayload(t, "charge.refunded", map[string]interface{}{"id": "ch_test_1"})

	if err := h.Handle(context.Background(), payload, signHeader(payload, testSecret, time.Now())); err != nil {
		t.Fatalf("unknown event type should be acknowledged, got %v", err)
	}
	if len(bus.subjects) != 0 || len(notifier.confirmed) != 0 {
		t.Fatal("unknown event type must not trigger side effects")
	}
}

func TestHandle_SideEffectErrorsStillAcknowledged(t *testing.T) {
	bus := &mockPublisher{err: errors.New("nats down")}
	notifier := &mockNotifier{err: errors.New("smtp down")}
	h := webhooks.New(testSecret, bus, notifier)

	payload := eventPayload(t, "payment_intent.succeeded", succeededIntent())

	if err := h.Handle(context.Background(), payload, signHeader(payload, testSecret, time.Now())); err != nil {
		t.Fatalf("side-effect failures must not fail the ack, got %v", err)
	}
}
