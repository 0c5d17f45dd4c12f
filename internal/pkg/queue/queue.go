package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// 邮件任务类型
const (
	KindWelcome     = "welcome"
	KindPlanExpired = "plan_expired"
)

// EmailMessage 待发送的邮件任务
type EmailMessage struct {
	Kind string `json:"kind"`
	To   string `json:"to"`
	Name string `json:"name,omitempty"`
	Plan string `json:"plan,omitempty"`
}

// Queue Redis 列表实现的邮件任务队列
type Queue struct {
	client    *redis.Client
	queueName string
}

func NewQueue(client *redis.Client, queueName string) *Queue {
	return &Queue{
		client:    client,
		queueName: queueName,
	}
}

// Push 将邮件任务加入队列
func (q *Queue) Push(ctx context.Context, msg *EmailMessage) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}

	return q.client.LPush(ctx, q.queueName, data).Err()
}

// Pop 从队列获取任务（阻塞），超时返回 nil
func (q *Queue) Pop(ctx context.Context, timeout time.Duration) (*EmailMessage, error) {
	result, err := q.client.BRPop(ctx, timeout, q.queueName).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to pop from queue: %w", err)
	}

	if len(result) < 2 {
		return nil, nil
	}

	var msg EmailMessage
	if err := json.Unmarshal([]byte(result[1]), &msg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal message: %w", err)
	}

	return &msg, nil
}

// Length 获取队列长度
func (q *Queue) Length(ctx context.Context) (int64, error) {
	return q.client.LLen(ctx, q.queueName).Result()
}

// Outbox 业务侧的投递入口，把邮件发送变成入队操作
type Outbox struct {
	queue *Queue
}

func NewOutbox(queue *Queue) *Outbox {
	return &Outbox{queue: queue}
}

// SendWelcome 投递欢迎邮件任务
func (o *Outbox) SendWelcome(to, name string) error {
	return o.queue.Push(context.Background(), &EmailMessage{
		Kind: KindWelcome,
		To:   to,
		Name: name,
	})
}

// SendPlanExpired 投递套餐到期提醒任务
func (o *Outbox) SendPlanExpired(to, plan string) error {
	return o.queue.Push(context.Background(), &EmailMessage{
		Kind: KindPlanExpired,
		To:   to,
		Plan: plan,
	})
}
