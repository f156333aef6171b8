package payments

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"

	"github.com/luxehairplug/bookings/internal/catalog"
	"github.com/luxehairplug/bookings/internal/domain"
)

// StripeClient creates and reads deposit payment intents through Stripe.
type StripeClient struct {
	api *client.API
}

func NewStripeClient(secretKey string, timeout time.Duration) *StripeClient {
	api := &client.API{}
	api.Init(secretKey, stripe.NewBackends(&http.Client{Timeout: timeout}))
	return &StripeClient{api: api}
}

func (c *StripeClient) CreateDeposit(ctx context.Context, booking domain.BookingRequest, svc catalog.ServiceEntry, idempotencyKey string) (*DepositIntent, error) {
	params := &stripe.PaymentIntentParams{
		Params:   stripe.Params{Context: ctx},
		Amount:   stripe.Int64(DepositAmountCents),
		Currency: stripe.String(string(stripe.CurrencyUSD)),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
		Description: stripe.String(DepositDescription(booking, svc)),
	}
	if booking.Email != "" {
		params.ReceiptEmail = stripe.String(booking.Email)
	}
	if idempotencyKey != "" {
		params.SetIdempotencyKey(idempotencyKey)
	}
	for k, v := range DepositMetadata(booking, svc) {
		params.AddMetadata(k, v)
	}

	pi, err := c.api.PaymentIntents.New(params)
	if err != nil {
		return nil, wrapStripeErr(err)
	}

	return &DepositIntent{ID: pi.ID, ClientSecret: pi.ClientSecret}, nil
}

func (c *StripeClient) GetIntent(ctx context.Context, id string) (*IntentStatus, error) {
	params := &stripe.PaymentIntentParams{Params: stripe.Params{Context: ctx}}
	pi, err := c.api.PaymentIntents.Get(id, params)
	if err != nil {
		return nil, wrapStripeErr(err)
	}

	return &IntentStatus{
		ID:       pi.ID,
		Status:   string(pi.Status),
		Metadata: pi.Metadata,
	}, nil
}

func wrapStripeErr(err error) error {
	var serr *stripe.Error
	if errors.As(err, &serr) {
		if serr.HTTPStatusCode == http.StatusNotFound {
			return ErrIntentNotFound
		}
		return &ProviderError{Msg: serr.Msg, Code: string(serr.Code), Status: serr.HTTPStatusCode}
	}
	return &ProviderError{Msg: err.Error()}
}
