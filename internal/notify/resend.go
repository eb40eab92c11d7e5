package notify

import (
	"context"
	"fmt"

	"github.com/resend/resend-go/v2"

	"github.com/evcraddock/visitor-log/internal/visitor"
)

// ResendNotifier sends check-in notifications through the Resend
// transactional email API.
type ResendNotifier struct {
	client *resend.Client
	from   string
	admin  string
}

// NewResendNotifier creates a Resend notifier addressing the admin recipient.
func NewResendNotifier(apiKey, from, admin string) *ResendNotifier {
	return &ResendNotifier{
		client: resend.NewClient(apiKey),
		from:   from,
		admin:  admin,
	}
}

// Send formats and delivers the notification for one visitor.
func (n *ResendNotifier) Send(ctx context.Context, v *visitor.Visitor) error {
	params := &resend.SendEmailRequest{
		From:    n.from,
		To:      []string{n.admin},
		Subject: Subject(v),
		Text:    FormatMessage(v),
	}

	if _, err := n.client.Emails.SendWithContext(ctx, params); err != nil {
		return &NotifyError{Cause: fmt.Errorf("resend: %w", err)}
	}
	return nil
}
