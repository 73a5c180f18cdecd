package notify

import (
	"context"
	"fmt"

	"github.com/slack-go/slack"
)

// postWebhook can be replaced in tests.
var postWebhook = slack.PostWebhookContext

// Slack mirrors the run notification to a Slack incoming webhook.
type Slack struct {
	WebhookURL string
}

func (s *Slack) Notify(ctx context.Context, msg Message) error {
	text := fmt.Sprintf("*%s*\n%s", msg.Subject(), msg.Body())

	if err := postWebhook(ctx, s.WebhookURL, &slack.WebhookMessage{Text: text}); err != nil {
		return fmt.Errorf("failed to post slack notification: %w", err)
	}

	return nil
}
