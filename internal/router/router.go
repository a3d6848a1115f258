// Package router 设置 HTTP 路由
package router

import (
	"github.com/gin-gonic/gin"

	"github.com/ashwinyue/fit-coach/internal/handler"
	"github.com/ashwinyue/fit-coach/internal/middleware"
	"github.com/ashwinyue/fit-coach/internal/service"
)

// SetupRouter 设置路由
func SetupRouter(h *handler.Handlers, svc *service.Services) *gin.Engine {
	r := gin.New()

	// 中间件
	r.Use(middleware.RecoveryMiddleware())
	r.Use(middleware.LoggingMiddleware())
	r.Use(middleware.CORSMiddleware())

	// 健康检查
	r.GET("/health", h.System.Health)

	// API v1
	v1 := r.Group("/api/v1")
	v1.Use(middleware.AuthMiddleware(svc))
	{
		// Auth 认证
		authGroup := v1.Group("/auth")
		{
			authGroup.POST("/register", h.Auth.Register)
			authGroup.POST("/login", h.Auth.Login)
			authGroup.POST("/refresh", h.Auth.Refresh)
			authGroup.GET("/me", middleware.RequireAuth(svc), h.Auth.Me)
		}

		// Chat 对话与提案
		chats := v1.Group("/chats")
		{
			chats.POST("/turn", h.Chat.Turn)
			chats.GET("", h.Chat.ListSessions)
			chats.GET("/:id", h.Chat.GetSession)
			chats.POST("/:id/propose", h.Proposal.Propose)
			chats.POST("/:id/confirm", h.Proposal.Confirm)
		}

		// Workout 训练计划
		workouts := v1.Group("/workouts")
		{
			workouts.POST("/generate", h.Workout.Generate)
		}

		// Weights 重量建议
		weightsGroup := v1.Group("/weights")
		{
			weightsGroup.POST("/suggest", h.Weights.Suggest)
			weightsGroup.POST("/suggest-ai", h.Weights.SuggestAI)
			weightsGroup.POST("/suggest-batch", h.Weights.SuggestBatch)
			weightsGroup.GET("", h.Weights.List)
		}

		// Context 用户上下文
		contextGroup := v1.Group("/context")
		{
			contextGroup.POST("/feedback", h.Context.Feedback)
		}

		// Onboarding 入驻
		v1.POST("/onboarding", h.Onboarding.Process)

		// 模型响应日志
		v1.GET("/model-responses", h.ModelLog.List)
	}

	return r
}
