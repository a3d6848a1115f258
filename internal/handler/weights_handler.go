package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/ashwinyue/fit-coach/internal/middleware"
	"github.com/ashwinyue/fit-coach/internal/service"
	"github.com/ashwinyue/fit-coach/internal/service/weights"
)

// WeightsHandler 重量建议处理器
type WeightsHandler struct {
	svc *service.Services
}

// NewWeightsHandler 创建重量建议处理器
func NewWeightsHandler(svc *service.Services) *WeightsHandler {
	return &WeightsHandler{svc: svc}
}

// SuggestRequest 规则路径请求
type SuggestRequest struct {
	ExerciseName    string `json:"exercise_name" binding:"required"`
	ExerciseDetails string `json:"exercise_details,omitempty"`
	UserContext     string `json:"user_context,omitempty"`
}

// Suggest 规则路径的单动作重量建议，不依赖模型
// POST /api/v1/weights/suggest
func (h *WeightsHandler) Suggest(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		Unauthorized(c, "Not authenticated")
		return
	}

	var req SuggestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid parameters: "+err.Error())
		return
	}

	result, err := h.svc.Weights.SuggestRuleBased(c.Request.Context(), userID, req.ExerciseName, req.ExerciseDetails, req.UserContext)
	if err != nil {
		BadRequest(c, err.Error())
		return
	}

	Success(c, result)
}

// SuggestAIRequest AI 路径请求
type SuggestAIRequest struct {
	UserContext     string `json:"user_context" binding:"required"`
	ExerciseDetails string `json:"exercise_details" binding:"required"`
}

// SuggestAI 单动作 AI 重量建议
// POST /api/v1/weights/suggest-ai
func (h *WeightsHandler) SuggestAI(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		Unauthorized(c, "Not authenticated")
		return
	}

	var req SuggestAIRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid parameters: "+err.Error())
		return
	}

	result, err := h.svc.Weights.SuggestAI(c.Request.Context(), userID, req.UserContext, req.ExerciseDetails)
	if err != nil {
		if errors.Is(err, weights.ErrInvalidAIResponse) {
			ServiceUnavailable(c, "AI suggestion unavailable: "+err.Error())
			return
		}
		BadRequest(c, err.Error())
		return
	}

	Success(c, result)
}

// SuggestBatchRequest 批量请求
type SuggestBatchRequest struct {
	UserContext string   `json:"user_context" binding:"required"`
	Exercises   []string `json:"exercises" binding:"required"`
}

// SuggestBatch 整份计划的批量重量建议
// POST /api/v1/weights/suggest-batch
func (h *WeightsHandler) SuggestBatch(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		Unauthorized(c, "Not authenticated")
		return
	}

	var req SuggestBatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid parameters: "+err.Error())
		return
	}

	suggestions, err := h.svc.Weights.SuggestBatch(c.Request.Context(), userID, req.UserContext, req.Exercises)
	if err != nil {
		Error(c, err)
		return
	}

	Success(c, suggestions)
}

// List 查询已存储的重量建议
// GET /api/v1/weights?exercise=&limit=
func (h *WeightsHandler) List(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		Unauthorized(c, "Not authenticated")
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	records, err := h.svc.Weights.ListSuggestions(userID, c.Query("exercise"), limit)
	if err != nil {
		Error(c, err)
		return
	}

	Success(c, records)
}
