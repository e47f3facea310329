package router

import (
	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/freelance-escrow/internal/config"
	"github.com/ignatzorin/freelance-escrow/internal/http/handlers"
	"github.com/ignatzorin/freelance-escrow/internal/http/middleware"
	"github.com/ignatzorin/freelance-escrow/internal/service"
)

func SetupRouter(
	cfg *config.Config,
	authHandler *handlers.AuthHandler,
	identityHandler *handlers.IdentityHandler,
	jobHandler *handlers.JobHandler,
	proposalHandler *handlers.ProposalHandler,
	milestoneHandler *handlers.MilestoneHandler,
	disputeHandler *handlers.DisputeHandler,
	adminHandler *handlers.AdminHandler,
	paymentHandler *handlers.PaymentHandler,
	wsHandler *handlers.WSHandler,
	healthHandler *handlers.HealthHandler,
	tokenManager *service.TokenManager,
) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default()
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.CORSMiddleware(cfg.AllowedOrigins))

	r.GET("/health", healthHandler.Health)

	api := r.Group("/api")

	authGroup := api.Group("/auth")
	authGroup.Use(middleware.RateLimitMiddleware(cfg.RateLimitLimit, cfg.RateLimitPeriod))
	{
		authGroup.POST("/token", authHandler.IssueToken)
	}

	// Публичные маршруты
	api.GET("/ws", wsHandler.Handle)
	api.GET("/platform", adminHandler.Platform)
	api.GET("/platform/stats", adminHandler.Stats)
	api.GET("/platform/counters", adminHandler.Counters)
	api.GET("/jobs", jobHandler.ListJobs)
	api.GET("/jobs/batch", jobHandler.BatchJobs)
	api.GET("/jobs/:id", jobHandler.GetJob)
	api.GET("/jobs/:id/proposals", proposalHandler.ListForJob)
	api.GET("/jobs/:id/milestones", milestoneHandler.ListForJob)
	api.GET("/proposals/:id", proposalHandler.Get)
	api.GET("/milestones/:id", milestoneHandler.Get)
	api.GET("/disputes/:id", disputeHandler.Get)
	api.GET("/users/:address", identityHandler.GetUser)
	api.GET("/users/:address/stats", identityHandler.GetStats)
	api.GET("/users/:address/registered", identityHandler.IsRegistered)
	api.GET("/payments/escrow", paymentHandler.TotalEscrow)
	api.GET("/payments/escrow/:id", paymentHandler.EscrowOf)

	// Защищённые маршруты
	protected := api.Group("/")
	protected.Use(middleware.AuthMiddleware(tokenManager))
	{
		protected.POST("/users", identityHandler.Register)
		protected.GET("/users/me", identityHandler.Me)
		protected.PUT("/users/me", identityHandler.UpdateProfile)
		protected.DELETE("/users/me", identityHandler.Deactivate)

		protected.POST("/jobs", jobHandler.PostJob)
		protected.GET("/jobs/my", jobHandler.MyJobs)
		protected.DELETE("/jobs/:id", jobHandler.CancelJob)
		protected.POST("/jobs/:id/complete", jobHandler.CompleteJob)

		protected.POST("/jobs/:id/proposals", proposalHandler.Submit)
		protected.POST("/proposals/:id/accept", proposalHandler.Accept)
		protected.POST("/proposals/:id/withdraw", proposalHandler.Withdraw)

		protected.POST("/jobs/:id/milestones", milestoneHandler.Create)
		protected.POST("/milestones/:id/submit", milestoneHandler.Submit)
		protected.POST("/milestones/:id/approve", milestoneHandler.Approve)

		protected.POST("/milestones/:id/dispute", disputeHandler.Raise)
		protected.POST("/disputes/:id/resolve", disputeHandler.Resolve)

		protected.POST("/payments/deposit", paymentHandler.Deposit)

		// Администрирование платформы
		protected.PUT("/admin/fee", adminHandler.UpdateFee)
		protected.POST("/admin/pause", adminHandler.TogglePause)
		protected.POST("/admin/withdraw", adminHandler.EmergencyWithdraw)
	}

	return r
}
