package cron

import (
	"context"
	"log"
	"time"

	"github.com/mailscout/profile_go_server/internal/service"
)

// Service 定时任务：每日扫描并降级到期套餐
type Service struct {
	planService *service.PlanService
	stopChan    chan struct{}
}

func NewService(planService *service.PlanService) *Service {
	return &Service{
		planService: planService,
		stopChan:    make(chan struct{}),
	}
}

// Start 启动定时任务
func (s *Service) Start() {
	go s.runDailySweep()
	log.Println("Cron service started (plan expiry sweep)")
}

// Stop 停止定时任务
func (s *Service) Stop() {
	close(s.stopChan)
	log.Println("Cron service stopped")
}

// runDailySweep 每日 UTC 零点执行到期扫描
func (s *Service) runDailySweep() {
	now := time.Now().UTC()
	nextMidnight := time.Date(now.Year(), now.Month(), now.Day()+1, 0, 0, 0, 0, time.UTC)
	timer := time.NewTimer(nextMidnight.Sub(now))

	for {
		select {
		case <-s.stopChan:
			timer.Stop()
			return
		case <-timer.C:
			s.sweep()
			timer.Reset(24 * time.Hour)
		}
	}
}

func (s *Service) sweep() {
	log.Println("Starting plan expiry sweep...")
	count, err := s.planService.SweepExpired(context.Background())
	if err != nil {
		log.Printf("Failed to sweep expired plans: %v", err)
		return
	}
	log.Printf("Plan expiry sweep completed, downgraded=%d", count)
}

// RunNow 立即执行一次到期扫描（用于测试或手动触发）
func (s *Service) RunNow() (int, error) {
	log.Println("Manual plan expiry sweep triggered...")
	return s.planService.SweepExpired(context.Background())
}
