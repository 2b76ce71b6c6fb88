package mail

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/ashokpds15/Myself/pkg/metrics"
)

// DeliveryOutcome is the result of one delivery attempt.
type DeliveryOutcome struct {
	Email   string
	Success bool
	Err     error
}

// Summary aggregates a notification run. Total is the recipient count the
// run started with; Outcomes are in recipient order.
type Summary struct {
	Sent     int
	Failed   int
	Total    int
	Outcomes []DeliveryOutcome
}

type Notifier struct {
	sender        Sender
	brandingName  string
	maxConcurrent int
	log           *zap.SugaredLogger
}

// NewNotifier returns a Notifier. maxConcurrent <= 0 leaves sends unbounded.
func NewNotifier(sender Sender, brandingName string, maxConcurrent int, log *zap.SugaredLogger) *Notifier {
	return &Notifier{
		sender:        sender,
		brandingName:  brandingName,
		maxConcurrent: maxConcurrent,
		log:           log.Named("notifier"),
	}
}

// Notify makes one delivery attempt per recipient and returns once every
// attempt has finished. Individual delivery failures are reported in the
// summary, never as an error. A send that hangs holds up the whole run.
func (n *Notifier) Notify(ctx context.Context, msg Notification, recipients []string) (Summary, error) {
	if len(recipients) == 0 {
		return Summary{}, nil
	}

	body, err := Render(msg, n.brandingName)
	if err != nil {
		return Summary{}, fmt.Errorf("rendering notification: %w", err)
	}

	start := time.Now()
	outcomes := make([]DeliveryOutcome, len(recipients))

	var g errgroup.Group
	if n.maxConcurrent > 0 {
		g.SetLimit(n.maxConcurrent)
	}
	for i, email := range recipients {
		g.Go(func() error {
			err := n.sender.Send([]string{email}, msg.Subject, body)
			outcomes[i] = DeliveryOutcome{Email: email, Success: err == nil, Err: err}
			return nil
		})
	}
	_ = g.Wait()

	summary := Summary{Total: len(recipients), Outcomes: outcomes}
	for _, o := range outcomes {
		if o.Success {
			summary.Sent++
			continue
		}
		summary.Failed++
		n.log.Warnw("Delivery failed", "email", o.Email, "error", o.Err)
	}
	metrics.NotificationRecipients.Observe(float64(summary.Total))

	n.log.Infow("Notification run finished",
		"subject", msg.Subject,
		"sent", summary.Sent,
		"failed", summary.Failed,
		"total", summary.Total,
		"duration", time.Since(start))
	return summary, nil
}
