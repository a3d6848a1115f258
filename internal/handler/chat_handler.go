package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/ashwinyue/fit-coach/internal/middleware"
	"github.com/ashwinyue/fit-coach/internal/model"
	"github.com/ashwinyue/fit-coach/internal/service"
	"github.com/ashwinyue/fit-coach/internal/service/chat"
)

// ChatHandler 聊天处理器
type ChatHandler struct {
	svc *service.Services
}

// NewChatHandler 创建聊天处理器
func NewChatHandler(svc *service.Services) *ChatHandler {
	return &ChatHandler{svc: svc}
}

// TurnRequest 一轮对话请求
// session_id 为空时新建会话，此时 current_plan 等字段作为会话初始状态
type TurnRequest struct {
	SessionID         string      `json:"session_id"`
	Message           string      `json:"message" binding:"required"`
	CurrentPlan       *model.Plan `json:"current_plan,omitempty"`
	UserContext       string      `json:"user_context,omitempty"`
	OnboardingContext string      `json:"onboarding_context,omitempty"`
}

// Turn 处理一轮对话
// POST /api/v1/chats/turn
func (h *ChatHandler) Turn(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		Unauthorized(c, "Not authenticated")
		return
	}

	var req TurnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid parameters: "+err.Error())
		return
	}

	result, err := h.svc.Chat.ProcessTurn(c.Request.Context(), chat.TurnRequest{
		UserID:            userID,
		Message:           req.Message,
		SessionID:         req.SessionID,
		CurrentPlan:       req.CurrentPlan,
		UserContext:       req.UserContext,
		OnboardingContext: req.OnboardingContext,
	})
	if err != nil {
		// 会话不存在是 404，建会话等持久化失败是 500
		if errors.Is(err, chat.ErrSessionNotFound) {
			NotFound(c, "Session not found")
		} else {
			Error(c, err)
		}
		return
	}

	Success(c, result)
}

// ListSessions 会话列表
// GET /api/v1/chats
func (h *ChatHandler) ListSessions(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		Unauthorized(c, "Not authenticated")
		return
	}

	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	sessions, err := h.svc.Chat.ListSessions(userID, offset, limit)
	if err != nil {
		Error(c, err)
		return
	}

	Success(c, sessions)
}

// GetSession 会话详情，带全部消息
// GET /api/v1/chats/:id
func (h *ChatHandler) GetSession(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		Unauthorized(c, "Not authenticated")
		return
	}

	session, err := h.svc.Chat.GetSession(c.Param("id"), userID)
	if err != nil {
		NotFound(c, "Session not found")
		return
	}

	Success(c, session)
}
