package events

import (
	"context"

	"github.com/easylend/userservice/internal/logging"
)

// LogNotifier consumes registration events and logs the confirmation URL.
// It stands in for the real mail sender, which lives outside this service.
type LogNotifier struct {
	logger logging.Logger
}

// NewLogNotifier constructs a notifier writing to the given logger.
func NewLogNotifier(l logging.Logger) *LogNotifier {
	return &LogNotifier{logger: l.With("module", "notifier")}
}

// Run drains events until the channel is closed or the context is cancelled.
func (n *LogNotifier) Run(ctx context.Context, in <-chan UserRegistered) {
	for {
		select {
		case event, ok := <-in:
			if !ok {
				return
			}
			n.logger.Info(ctx, "registration notification",
				"email", event.User.Email,
				"confirmation_url", event.ConfirmationURL)
		case <-ctx.Done():
			return
		}
	}
}
