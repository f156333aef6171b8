package payments

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/luxehairplug/bookings/internal/catalog"
	"github.com/luxehairplug/bookings/internal/domain"
)

const (
	// DepositAmountCents is the fixed deposit collected at booking time,
	// independent of the service's full price.
	DepositAmountCents int64 = 2000

	BusinessName = "Luxehairplug"
)

var ErrIntentNotFound = errors.New("payment intent not found")

// ProviderError wraps a failure reported by the payment provider. The raw
// message is kept for logs; HTTP responses never relay it to callers.
type ProviderError struct {
	Msg    string
	Code   string
	Status int
}

func (e *ProviderError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("payment provider error: %s (%s)", e.Msg, e.Code)
	}
	return fmt.Sprintf("payment provider error: %s", e.Msg)
}

// DepositIntent is the client-facing result of creating a deposit charge.
type DepositIntent struct {
	ID           string
	ClientSecret string
}

// IntentStatus is the provider's view of a previously created charge.
type IntentStatus struct {
	ID       string
	Status   string
	Metadata map[string]string
}

type Client interface {
	CreateDeposit(ctx context.Context, booking domain.BookingRequest, svc catalog.ServiceEntry, idempotencyKey string) (*DepositIntent, error)
	GetIntent(ctx context.Context, id string) (*IntentStatus, error)
}

// RemainingBalance is the amount still owed after the deposit, in whole USD.
func RemainingBalance(price int64) int64 {
	return price - DepositAmountCents/100
}

// DepositMetadata carries enough information on the charge to reconstruct
// the booking; there is no other persistent store.
func DepositMetadata(booking domain.BookingRequest, svc catalog.ServiceEntry) map[string]string {
	return map[string]string{
		"customer_name":      booking.Name,
		"customer_phone":     booking.Phone,
		"customer_instagram": booking.Instagram,
		"service_id":         booking.Service,
		"service_name":       svc.Name,
		"service_price":      strconv.FormatInt(svc.Price, 10),
		"appointment_date":   booking.Date,
		"notes":              booking.Notes,
		"deposit_amount":     strconv.FormatInt(DepositAmountCents/100, 10),
		"remaining_balance":  strconv.FormatInt(RemainingBalance(svc.Price), 10),
	}
}

// DepositDescription is the human-readable charge description.
func DepositDescription(booking domain.BookingRequest, svc catalog.ServiceEntry) string {
	return fmt.Sprintf("%s Deposit - %s for %s", BusinessName, svc.Name, booking.Name)
}
