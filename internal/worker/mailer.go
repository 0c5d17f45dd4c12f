package worker

import (
	"context"
	"fmt"

	"github.com/mailscout/profile_go_server/internal/pkg/queue"
)

// Sender 实际发信能力，生产环境是 SMTP
type Sender interface {
	SendWelcome(to, name string) error
	SendPlanExpired(to, plan string) error
}

// Mailer 邮件任务处理器：消费队列里的邮件任务并发送
type Mailer struct {
	sender Sender
}

func NewMailer(sender Sender) *Mailer {
	return &Mailer{sender: sender}
}

// Process 处理一个邮件任务
func (m *Mailer) Process(ctx context.Context, msg *queue.EmailMessage) error {
	if msg.To == "" {
		return fmt.Errorf("empty recipient")
	}

	switch msg.Kind {
	case queue.KindWelcome:
		return m.sender.SendWelcome(msg.To, msg.Name)
	case queue.KindPlanExpired:
		return m.sender.SendPlanExpired(msg.To, msg.Plan)
	default:
		return fmt.Errorf("unknown email kind: %s", msg.Kind)
	}
}
