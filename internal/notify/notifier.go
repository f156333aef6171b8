package notify

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/mailersend/mailersend-go"

	"github.com/luxehairplug/bookings/pkg/config"
	"github.com/luxehairplug/bookings/pkg/logger"
)

// Notifier receives the confirmed-booking side effect from the webhook
// handler. The booking map is the charge metadata.
type Notifier interface {
	BookingConfirmed(ctx context.Context, booking map[string]string) error
}

// FromConfig returns an email notifier when MailerSend is configured,
// otherwise a log-only notifier.
func FromConfig(cfg config.Notify) Notifier {
	if cfg.MailerSendKey != "" && cfg.FromEmail != "" && cfg.ToEmail != "" {
		return NewEmailNotifier(cfg.MailerSendKey, cfg.FromName, cfg.FromEmail, cfg.ToEmail)
	}
	return LogNotifier{}
}

type LogNotifier struct{}

func (LogNotifier) BookingConfirmed(ctx context.Context, booking map[string]string) error {
	logger.InfoContext(ctx, "Booking confirmed (no notifier configured)",
		"customer", booking["customer_name"],
		"service", booking["service_name"],
		"date", booking["appointment_date"],
	)
	return nil
}

// EmailNotifier emails the shop owner when a deposit clears.
type EmailNotifier struct {
	client *mailersend.Mailersend
	from   mailersend.From
	to     string
}

func NewEmailNotifier(apiKey, fromName, fromEmail, toEmail string) *EmailNotifier {
	return &EmailNotifier{
		client: mailersend.NewMailersend(apiKey),
		from:   mailersend.From{Name: fromName, Email: fromEmail},
		to:     toEmail,
	}
}

func (n *EmailNotifier) BookingConfirmed(ctx context.Context, booking map[string]string) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	subject := fmt.Sprintf("New booking: %s for %s", booking["service_name"], booking["customer_name"])
	text := bookingText(booking)

	msg := n.client.Email.NewMessage()
	msg.SetFrom(n.from)
	msg.SetRecipients([]mailersend.Recipient{{Email: n.to}})
	msg.SetSubject(subject)
	msg.SetText(text)

	res, err := n.client.Email.Send(ctx, msg)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		body, _ := io.ReadAll(res.Body)
		return fmt.Errorf("mailersend error: status=%d body=%s", res.StatusCode, strings.TrimSpace(string(body)))
	}
	return nil
}

func bookingText(booking map[string]string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Deposit received for %s.\n\n", booking["service_name"])
	fmt.Fprintf(&b, "Customer: %s\n", booking["customer_name"])
	fmt.Fprintf(&b, "Phone: %s\n", booking["customer_phone"])
	fmt.Fprintf(&b, "Date: %s\n", booking["appointment_date"])
	if ig := booking["customer_instagram"]; ig != "" {
		fmt.Fprintf(&b, "Instagram: %s\n", ig)
	}
	if notes := booking["notes"]; notes != "" {
		fmt.Fprintf(&b, "Notes: %s\n", notes)
	}
	fmt.Fprintf(&b, "Remaining balance: $%s\n", booking["remaining_balance"])
	return b.String()
}
