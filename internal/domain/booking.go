package domain

import (
	"errors"

	"github.com/luxehairplug/bookings/internal/catalog"
)

var (
	ErrMissingFields  = errors.New("missing required booking information")
	ErrUnknownService = errors.New("unknown service")
)

// BookingRequest is the transient booking payload sent with a deposit
// request. It is never persisted; the payment intent metadata is the only
// durable copy.
type BookingRequest struct {
	Service   string `json:"service"`
	Name      string `json:"name"`
	Phone     string `json:"phone"`
	Date      string `json:"date"`
	Email     string `json:"email,omitempty"`
	Instagram string `json:"instagram,omitempty"`
	Notes     string `json:"notes,omitempty"`
}

// Validate checks required fields and resolves the service against the
// catalog. Date and phone formats are deliberately not validated.
func (b *BookingRequest) Validate(cat *catalog.Catalog) (catalog.ServiceEntry, error) {
	if b.Service == "" || b.Name == "" || b.Phone == "" || b.Date == "" {
		return catalog.ServiceEntry{}, ErrMissingFields
	}
	entry, ok := cat.Lookup(b.Service)
	if !ok {
		return catalog.ServiceEntry{}, ErrUnknownService
	}
	return entry, nil
}
