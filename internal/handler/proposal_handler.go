package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/ashwinyue/fit-coach/internal/middleware"
	"github.com/ashwinyue/fit-coach/internal/service"
	"github.com/ashwinyue/fit-coach/internal/service/proposal"
)

// ProposalHandler 训练计划变更提案处理器
type ProposalHandler struct {
	svc *service.Services
}

// NewProposalHandler 创建提案处理器
func NewProposalHandler(svc *service.Services) *ProposalHandler {
	return &ProposalHandler{svc: svc}
}

// ProposeRequest 提案请求
type ProposeRequest struct {
	Request string `json:"request" binding:"required"`
}

// Propose 基于对话内容生成计划变更提案
// POST /api/v1/chats/:id/propose
func (h *ProposalHandler) Propose(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		Unauthorized(c, "Not authenticated")
		return
	}

	var req ProposeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid parameters: "+err.Error())
		return
	}

	result, err := h.svc.Proposal.Propose(c.Request.Context(), c.Param("id"), userID, req.Request)
	if err != nil {
		if errors.Is(err, proposal.ErrSessionNotFound) {
			NotFound(c, "Session not found")
			return
		}
		// 新计划生成失败时没有可用的降级路径
		ServiceUnavailable(c, "Failed to generate changed plan: "+err.Error())
		return
	}

	Created(c, result)
}

// ConfirmRequest 确认请求
type ConfirmRequest struct {
	ProposalID string `json:"proposal_id" binding:"required"`
	Accepted   *bool  `json:"accepted" binding:"required"`
}

// Confirm 把提案推进到终态，重复确认返回冲突
// POST /api/v1/chats/:id/confirm
func (h *ProposalHandler) Confirm(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		Unauthorized(c, "Not authenticated")
		return
	}

	var req ConfirmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid parameters: "+err.Error())
		return
	}

	result, err := h.svc.Proposal.Confirm(c.Request.Context(), req.ProposalID, userID, *req.Accepted)
	if err != nil {
		switch {
		case errors.Is(err, proposal.ErrProposalNotFound):
			NotFound(c, "Proposal not found")
		case errors.Is(err, proposal.ErrAlreadyProcessed):
			BadRequest(c, "Proposal already processed")
		default:
			Error(c, err)
		}
		return
	}

	Success(c, result)
}
