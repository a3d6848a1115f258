package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/ashwinyue/fit-coach/internal/middleware"
	"github.com/ashwinyue/fit-coach/internal/service"
)

// ContextHandler 用户上下文处理器
type ContextHandler struct {
	svc *service.Services
}

// NewContextHandler 创建用户上下文处理器
func NewContextHandler(svc *service.Services) *ContextHandler {
	return &ContextHandler{svc: svc}
}

// FeedbackRequest 动作反馈请求
type FeedbackRequest struct {
	SessionID    string `json:"session_id" binding:"required"`
	Action       string `json:"action" binding:"required"`
	ExerciseName string `json:"exercise_name" binding:"required"`
	Reason       string `json:"reason,omitempty"`
}

// Feedback 把动作反馈合并进会话的用户上下文
// POST /api/v1/context/feedback
func (h *ContextHandler) Feedback(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		Unauthorized(c, "Not authenticated")
		return
	}

	var req FeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid parameters: "+err.Error())
		return
	}

	updated, err := h.svc.Chat.ApplyFeedback(c.Request.Context(), req.SessionID, userID, req.Action, req.ExerciseName, req.Reason)
	if err != nil {
		NotFound(c, err.Error())
		return
	}

	Success(c, gin.H{"user_context": updated})
}
