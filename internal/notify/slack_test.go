package notify

import (
	"context"
	"testing"

	"github.com/slack-go/slack"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlack_Notify(t *testing.T) {
	var gotURL string
	var gotMsg *slack.WebhookMessage

	orig := postWebhook
	postWebhook = func(_ context.Context, url string, msg *slack.WebhookMessage) error {
		gotURL, gotMsg = url, msg
		return nil
	}
	t.Cleanup(func() { postWebhook = orig })

	sink := &Slack{WebhookURL: "https://hooks.slack.com/services/T/B/X"}
	err := sink.Notify(context.Background(), Message{
		Outcome:     OutcomeFailed,
		ImageStream: "myapp",
		Version:     "2.1",
		Reason:      "tagging failed",
	})
	require.NoError(t, err)

	assert.Equal(t, "https://hooks.slack.com/services/T/B/X", gotURL)
	assert.Contains(t, gotMsg.Text, "promotion FAILED")
	assert.Contains(t, gotMsg.Text, "tagging failed")
}
