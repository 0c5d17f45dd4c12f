package main

import (
	"fmt"
	"log"
	"os"

	"github.com/mailscout/profile_go_server/config"
	"github.com/mailscout/profile_go_server/internal/api"
	"github.com/mailscout/profile_go_server/internal/api/handler"
	"github.com/mailscout/profile_go_server/internal/database"
	"github.com/mailscout/profile_go_server/internal/pkg/cache"
	"github.com/mailscout/profile_go_server/internal/pkg/cron"
	"github.com/mailscout/profile_go_server/internal/pkg/oauth"
	"github.com/mailscout/profile_go_server/internal/pkg/queue"
	"github.com/mailscout/profile_go_server/internal/repository"
	"github.com/mailscout/profile_go_server/internal/service"
)

func main() {
	// 加载配置
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config.yaml"
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 初始化数据库
	db, err := database.NewMySQL(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect database: %v", err)
	}
	log.Println("Database connected")

	// 初始化 Redis
	rdb, err := database.NewRedis(&cfg.Redis)
	if err != nil {
		log.Fatalf("Failed to connect redis: %v", err)
	}
	log.Println("Redis connected")

	// 欢迎邮件和到期提醒都走队列，由 cmd/mailer 消费发送（未配置邮箱则不投递）
	var welcome service.WelcomeSender
	var notifier service.ExpiryNotifier
	if cfg.Email.SMTPHost != "" {
		outbox := queue.NewOutbox(queue.NewQueue(rdb, cfg.Queue.EmailQueue))
		welcome = outbox
		notifier = outbox
		log.Println("Email outbox initialized")
	}

	// 初始化 Repository 与缓存
	profileRepo := repository.NewProfileRepository(db)
	profileCache := cache.NewProfileCache(rdb)

	// 初始化 Service
	bootstrapService := service.NewBootstrapService(profileRepo, welcome, cfg)
	profileService := service.NewProfileService(profileRepo, profileCache, cfg)
	creditService := service.NewCreditService(profileRepo, profileCache)
	planService := service.NewPlanService(profileRepo, profileCache, notifier, cfg)
	authService := service.NewAuthService(bootstrapService, cfg)

	// 启动套餐到期扫描
	cronService := cron.NewService(planService)
	cronService.Start()
	defer cronService.Stop()

	// 初始化 Handler
	stateStore := oauth.NewStateStore(rdb)
	authHandler := handler.NewAuthHandler(authService, stateStore)
	profileHandler := handler.NewProfileHandler(bootstrapService, profileService)
	creditHandler := handler.NewCreditHandler(creditService)
	adminHandler := handler.NewAdminHandler(profileService, planService, creditService)

	// 初始化 Router
	router := api.NewRouter(
		authHandler,
		profileHandler,
		creditHandler,
		adminHandler,
		cfg,
	)
	engine := router.Setup()

	// 启动服务器
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	log.Printf("Server starting on %s", addr)
	if err := engine.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
