package notify

import (
	"context"

	"github.com/evcraddock/visitor-log/internal/visitor"
)

// Disabled is the notifier used when no mail transport is configured.
// Every send fails with ErrNotConfigured; check-ins still succeed.
type Disabled struct{}

// Send always reports the missing configuration.
func (Disabled) Send(context.Context, *visitor.Visitor) error {
	return &NotifyError{Cause: ErrNotConfigured}
}
