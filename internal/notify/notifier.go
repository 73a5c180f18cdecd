// Package notify delivers the end-of-run notification to stakeholders.
package notify

import (
	"context"
	"errors"
	"fmt"
)

// Outcome labels the terminal result carried by a notification.
type Outcome string

const (
	OutcomeReleased Outcome = "released"
	OutcomeAborted  Outcome = "aborted"
	OutcomeFailed   Outcome = "failed"
)

// Message describes the single notification sent for a promotion run.
type Message struct {
	Outcome     Outcome
	ImageStream string
	Version     string
	DetailsURL  string

	// Reason carries the failure cause or abort explanation, empty on success.
	Reason string
}

// Subject renders the notification subject line.
func (m Message) Subject() string {
	switch m.Outcome {
	case OutcomeReleased:
		return fmt.Sprintf("[RELEASE] %s %s promoted to production", m.ImageStream, m.Version)
	case OutcomeAborted:
		return fmt.Sprintf("[RELEASE] %s %s promotion aborted", m.ImageStream, m.Version)
	default:
		return fmt.Sprintf("[RELEASE] %s %s promotion FAILED", m.ImageStream, m.Version)
	}
}

// Body renders the notification body text.
func (m Message) Body() string {
	var body string
	switch m.Outcome {
	case OutcomeReleased:
		body = fmt.Sprintf("Release %s of %s is live in production.", m.Version, m.ImageStream)
	case OutcomeAborted:
		body = fmt.Sprintf("Promotion of %s to release %s was aborted: %s",
			m.ImageStream, m.Version, m.Reason)
	default:
		body = fmt.Sprintf("Promotion of %s to release %s failed: %s",
			m.ImageStream, m.Version, m.Reason)
	}

	if m.DetailsURL != "" {
		body += fmt.Sprintf("\n\nRun details: %s", m.DetailsURL)
	}

	return body
}

// Notifier delivers a run notification.
type Notifier interface {
	Notify(ctx context.Context, msg Message) error
}

// Multi fans a notification out to several sinks. Delivery failures are
// collected so one broken sink does not silence the others.
type Multi []Notifier

func (m Multi) Notify(ctx context.Context, msg Message) error {
	var errs []error
	for _, n := range m {
		if err := n.Notify(ctx, msg); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
