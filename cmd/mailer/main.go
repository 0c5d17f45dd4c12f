package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mailscout/profile_go_server/config"
	"github.com/mailscout/profile_go_server/internal/database"
	"github.com/mailscout/profile_go_server/internal/pkg/email"
	"github.com/mailscout/profile_go_server/internal/pkg/queue"
	"github.com/mailscout/profile_go_server/internal/worker"
)

func main() {
	// 加载配置
	cfg, err := config.Load("config.yaml")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if cfg.Email.SMTPHost == "" {
		log.Fatal("Email is not configured, mailer has nothing to do")
	}

	// 初始化 Redis
	rdb, err := database.NewRedis(&cfg.Redis)
	if err != nil {
		log.Fatalf("Failed to connect redis: %v", err)
	}
	log.Println("Redis connected")

	emailQueue := queue.NewQueue(rdb, cfg.Queue.EmailQueue)
	mailer := worker.NewMailer(email.NewService(&cfg.Email))

	// 创建 context 用于优雅关闭
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 监听退出信号
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		log.Println("Received shutdown signal")
		cancel()
	}()

	maxWorkers := cfg.Queue.MaxWorkers
	if maxWorkers <= 0 {
		maxWorkers = 1
	}
	log.Printf("Mailer started, max workers: %d", maxWorkers)

	for i := 0; i < maxWorkers; i++ {
		go func(workerID int) {
			for {
				select {
				case <-ctx.Done():
					log.Printf("Mailer %d shutting down", workerID)
					return
				default:
					msg, err := emailQueue.Pop(ctx, 5*time.Second)
					if err != nil {
						if ctx.Err() != nil {
							return
						}
						log.Printf("Mailer %d: failed to pop message: %v", workerID, err)
						continue
					}

					if msg == nil {
						continue // 超时，继续等待
					}

					if err := mailer.Process(ctx, msg); err != nil {
						log.Printf("Mailer %d: failed to send %s to %s: %v", workerID, msg.Kind, msg.To, err)
					}
				}
			}
		}(i)
	}

	<-ctx.Done()
	log.Println("Mailer shutdown complete")
}
