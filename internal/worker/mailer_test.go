package worker

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mailscout/profile_go_server/internal/pkg/queue"
)

// stubSender 记录发送调用
type stubSender struct {
	welcomes []string
	expired  []string
}

func (s *stubSender) SendWelcome(to, name string) error {
	s.welcomes = append(s.welcomes, to)
	return nil
}

func (s *stubSender) SendPlanExpired(to, plan string) error {
	s.expired = append(s.expired, to)
	return nil
}

func TestMailer_Process_Welcome(t *testing.T) {
	sender := &stubSender{}
	mailer := NewMailer(sender)

	err := mailer.Process(context.Background(), &queue.EmailMessage{
		Kind: queue.KindWelcome,
		To:   "jo@x.com",
		Name: "Jo",
	})

	require.NoError(t, err)
	assert.Equal(t, []string{"jo@x.com"}, sender.welcomes)
	assert.Empty(t, sender.expired)
}

func TestMailer_Process_PlanExpired(t *testing.T) {
	sender := &stubSender{}
	mailer := NewMailer(sender)

	err := mailer.Process(context.Background(), &queue.EmailMessage{
		Kind: queue.KindPlanExpired,
		To:   "jo@x.com",
		Plan: "starter",
	})

	require.NoError(t, err)
	assert.Equal(t, []string{"jo@x.com"}, sender.expired)
}

func TestMailer_Process_UnknownKind(t *testing.T) {
	sender := &stubSender{}
	mailer := NewMailer(sender)

	err := mailer.Process(context.Background(), &queue.EmailMessage{
		Kind: "newsletter",
		To:   "jo@x.com",
	})

	assert.Error(t, err)
	assert.Empty(t, sender.welcomes)
}

func TestMailer_Process_EmptyRecipient(t *testing.T) {
	sender := &stubSender{}
	mailer := NewMailer(sender)

	err := mailer.Process(context.Background(), &queue.EmailMessage{
		Kind: queue.KindWelcome,
	})

	assert.Error(t, err)
}
