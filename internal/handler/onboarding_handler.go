package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/ashwinyue/fit-coach/internal/middleware"
	"github.com/ashwinyue/fit-coach/internal/service"
)

// OnboardingHandler 入驻处理器
type OnboardingHandler struct {
	svc *service.Services
}

// NewOnboardingHandler 创建入驻处理器
func NewOnboardingHandler(svc *service.Services) *OnboardingHandler {
	return &OnboardingHandler{svc: svc}
}

// OnboardingRequest 入驻请求
type OnboardingRequest struct {
	Paragraph string `json:"paragraph" binding:"required"`
}

// Process 分析问卷并创建带初始计划的会话
// POST /api/v1/onboarding
func (h *OnboardingHandler) Process(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		Unauthorized(c, "Not authenticated")
		return
	}

	var req OnboardingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid parameters: "+err.Error())
		return
	}

	result, err := h.svc.Onboarding.Process(c.Request.Context(), userID, req.Paragraph)
	if err != nil {
		Error(c, err)
		return
	}

	Created(c, result)
}
