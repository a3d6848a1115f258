package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/ashwinyue/fit-coach/internal/middleware"
	"github.com/ashwinyue/fit-coach/internal/service"
)

// WorkoutHandler 训练计划处理器
type WorkoutHandler struct {
	svc *service.Services
}

// NewWorkoutHandler 创建训练计划处理器
func NewWorkoutHandler(svc *service.Services) *WorkoutHandler {
	return &WorkoutHandler{svc: svc}
}

// GenerateRequest 计划生成请求
type GenerateRequest struct {
	UserContext string `json:"user_context" binding:"required"`
}

// Generate 生成今日训练计划并批量填充重量建议
// POST /api/v1/workouts/generate
func (h *WorkoutHandler) Generate(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		Unauthorized(c, "Not authenticated")
		return
	}

	var req GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid parameters: "+err.Error())
		return
	}

	plan, err := h.svc.Workout.GenerateWithWeights(c.Request.Context(), userID, req.UserContext)
	if err != nil {
		Error(c, err)
		return
	}

	Success(c, plan)
}
