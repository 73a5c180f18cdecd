package notify

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMessage_SubjectByOutcome(t *testing.T) {
	msg := Message{ImageStream: "myapp", Version: "2.1"}

	msg.Outcome = OutcomeReleased
	assert.Equal(t, "[RELEASE] myapp 2.1 promoted to production", msg.Subject())

	msg.Outcome = OutcomeAborted
	assert.Contains(t, msg.Subject(), "aborted")

	msg.Outcome = OutcomeFailed
	assert.Contains(t, msg.Subject(), "FAILED")
}

func TestMessage_BodyIncludesDetailsLink(t *testing.T) {
	msg := Message{
		Outcome:     OutcomeReleased,
		ImageStream: "myapp",
		Version:     "2.1",
		DetailsURL:  "https://ci.example.com/job/42",
	}

	body := msg.Body()
	assert.Contains(t, body, "Release 2.1 of myapp is live")
	assert.Contains(t, body, "https://ci.example.com/job/42")
}

func TestMessage_FailureBodyCarriesReason(t *testing.T) {
	msg := Message{
		Outcome:     OutcomeFailed,
		ImageStream: "myapp",
		Version:     "2.1",
		Reason:      "rollout timed out",
	}

	assert.Contains(t, msg.Body(), "rollout timed out")
}

type recordingNotifier struct {
	got []Message
	err error
}

func (r *recordingNotifier) Notify(_ context.Context, msg Message) error {
	r.got = append(r.got, msg)
	return r.err
}

func TestMulti_DeliversToAllSinks(t *testing.T) {
	a := &recordingNotifier{}
	b := &recordingNotifier{}

	msg := Message{Outcome: OutcomeReleased, ImageStream: "myapp", Version: "2.1"}
	err := Multi{a, b}.Notify(context.Background(), msg)

	assert.NoError(t, err)
	assert.Len(t, a.got, 1)
	assert.Len(t, b.got, 1)
}

func TestMulti_OneFailureDoesNotSilenceOthers(t *testing.T) {
	a := &recordingNotifier{err: errors.New("smtp down")}
	b := &recordingNotifier{}

	err := Multi{a, b}.Notify(context.Background(), Message{Outcome: OutcomeFailed})

	assert.Error(t, err)
	assert.Len(t, b.got, 1)
}
