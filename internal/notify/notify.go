// Package notify sends the administrative email for each visitor check-in.
// Two interchangeable transports exist: direct SMTP and the Resend
// transactional API. Callers depend only on the visitor.Notifier interface.
package notify

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/evcraddock/visitor-log/internal/visitor"
)

// ErrNotConfigured indicates no mail transport was configured. Sends
// report it as a NotifyError rather than crashing at startup.
var ErrNotConfigured = errors.New("no mail transport configured")

// NotifyError wraps any failure from a notification attempt with a
// human-readable cause. It is never surfaced as a request failure; the
// intake service logs it and leaves the record's notified flag false.
type NotifyError struct {
	Cause error
}

func (e *NotifyError) Error() string {
	return fmt.Sprintf("notification failed: %v", e.Cause)
}

func (e *NotifyError) Unwrap() error { return e.Cause }

// Config selects and configures the mail transport. Resend wins when both
// variable sets are present.
type Config struct {
	AdminEmail   string
	FromEmail    string
	ResendAPIKey string
	SMTP         SMTPConfig
}

// New returns the notifier for the configured transport, or a disabled
// notifier when no transport (or no admin recipient) is configured.
func New(cfg Config) visitor.Notifier {
	if cfg.AdminEmail == "" {
		return Disabled{}
	}
	if cfg.ResendAPIKey != "" {
		return NewResendNotifier(cfg.ResendAPIKey, cfg.FromEmail, cfg.AdminEmail)
	}
	if cfg.SMTP.IsConfigured() {
		return NewSMTPNotifier(cfg.SMTP, cfg.AdminEmail)
	}
	return Disabled{}
}

// Subject returns the fixed subject line for a check-in notification.
func Subject(v *visitor.Visitor) string {
	return fmt.Sprintf("New Visitor Check-In - %s", v.Name)
}

// FormatMessage builds the plain-text notification body.
func FormatMessage(v *visitor.Visitor) string {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "A new visitor has checked in.\n\n")
	fmt.Fprintf(&buf, "  Name:       %s\n", v.Name)
	fmt.Fprintf(&buf, "  Apartment:  %s\n", v.ApartmentNumber)
	fmt.Fprintf(&buf, "  Purpose:    %s\n", v.Purpose)
	if v.PhoneNumber != "" {
		fmt.Fprintf(&buf, "  Phone:      %s\n", v.PhoneNumber)
	}
	fmt.Fprintf(&buf, "  Checked in: %s\n", v.CheckInTime.UTC().Format("2006-01-02 15:04:05 MST"))
	fmt.Fprintf(&buf, "\nThis notification was generated automatically by the visitor check-in system.\n")

	return buf.String()
}
