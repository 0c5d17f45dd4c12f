package api

import (
	"github.com/gin-gonic/gin"

	"github.com/mailscout/profile_go_server/config"
	"github.com/mailscout/profile_go_server/internal/api/handler"
	"github.com/mailscout/profile_go_server/internal/api/middleware"
)

type Router struct {
	authHandler    *handler.AuthHandler
	profileHandler *handler.ProfileHandler
	creditHandler  *handler.CreditHandler
	adminHandler   *handler.AdminHandler
	cfg            *config.Config
}

func NewRouter(
	authHandler *handler.AuthHandler,
	profileHandler *handler.ProfileHandler,
	creditHandler *handler.CreditHandler,
	adminHandler *handler.AdminHandler,
	cfg *config.Config,
) *Router {
	return &Router{
		authHandler:    authHandler,
		profileHandler: profileHandler,
		creditHandler:  creditHandler,
		adminHandler:   adminHandler,
		cfg:            cfg,
	}
}

func (r *Router) Setup() *gin.Engine {
	if r.cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(middleware.CORS(r.cfg.CORS))

	api := engine.Group("/api/v1")
	{
		// 公开接口 - 认证
		auth := api.Group("/auth")
		{
			auth.GET("/github", r.authHandler.GithubAuth)
			auth.GET("/github/callback", r.authHandler.GithubCallback)
		}

		// 需要认证的接口
		authenticated := api.Group("")
		authenticated.Use(middleware.Auth(r.cfg.JWT.Secret))
		{
			profile := authenticated.Group("/profile")
			{
				profile.POST("/bootstrap", r.profileHandler.Bootstrap)
				profile.GET("", r.profileHandler.GetProfile)
				profile.PUT("", r.profileHandler.UpdateProfile)
				profile.GET("/credits", r.creditHandler.GetCredits)
				profile.POST("/credits/:type/consume", r.creditHandler.Consume)
			}
		}

		// 管理接口（服务密钥）
		admin := api.Group("/admin")
		admin.Use(middleware.ServiceKey(r.cfg.Admin.ServiceKeyHash))
		{
			admin.GET("/profiles/:id", r.adminHandler.GetProfile)
			admin.PATCH("/profiles/:id", r.adminHandler.PatchProfile)
			admin.POST("/profiles/:id/plan", r.adminHandler.GrantPlan)
			admin.POST("/profiles/:id/credits/:type/refund", r.adminHandler.RefundCredit)
			admin.POST("/sweep-expired", r.adminHandler.SweepExpired)
		}
	}

	return engine
}
