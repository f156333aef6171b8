package domain_test

import (
	"errors"
	"testing"

	"github.com/luxehairplug/bookings/internal/catalog"
	"github.com/luxehairplug/bookings/internal/domain"
)

func testCatalog() *catalog.Catalog {
	return catalog.New([]catalog.ServiceEntry{
		{ID: "wig-install", Name: "Wig Install", Price: 50},
	})
}

func TestValidate_MissingFields(t *testing.T) {
	valid := domain.BookingRequest{
		Service: "wig-install", Name: "Jane Doe", Phone: "555-0100", Date: "2024-06-01",
	}

	tests := []struct {
		name   string
		mutate func(*domain.BookingRequest)
	}{
		{"missing service", func(b *domain.BookingRequest) { b.Service = "" }},
		{"missing name", func(b *domain.BookingRequest) { b.Name = "" }},
		{"missing phone", func(b *domain.BookingRequest) { b.Phone = "" }},
		{"missing date", func(b *domain.BookingRequest) { b.Date = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := valid
			tt.mutate(&b)
			if _, err := b.Validate(testCatalog()); !errors.Is(err, domain.ErrMissingFields) {
				t.Fatalf("got %v, want ErrMissingFields", err)
			}
		})
	}
}

func TestValidate_UnknownService(t *testing.T) {
	b := domain.BookingRequest{
		Service: "not-a-real-service", Name: "Jane Doe", Phone: "555-0100", Date: "2024-06-01",
	}
	if _, err := b.Validate(testCatalog()); !errors.Is(err, domain.ErrUnknownService) {
		t.Fatalf("got %v, want ErrUnknownService", err)
	}
}

func TestValidate_MissingFieldsCheckedBeforeService(t *testing.T) {
	b := domain.BookingRequest{Service: "not-a-real-service"}
	if _, err := b.Validate(testCatalog()); !errors.Is(err, domain.ErrMissingFields) {
		t.Fatalf("got %v, want ErrMissingFields", err)
	}
}

func TestValidate_OptionalFieldsPassThrough(t *testing.T) {
	b := domain.BookingRequest{
		Service: "wig-install", Name: "Jane Doe", Phone: "555-0100", Date: "2024-06-01",
	}
	entry, err := b.Validate(testCatalog())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if entry.ID != "wig-install" || entry.Price != 50 {
		t.Fatalf("unexpected entry: %+v", entry)
	}
	if b.Email != "" || b.Instagram != "" || b.Notes != "" {
		t.Fatal("optional fields should stay empty when absent")
	}
}
