package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/ashwinyue/fit-coach/internal/middleware"
	"github.com/ashwinyue/fit-coach/internal/service"
)

// ModelLogHandler 模型响应日志处理器
type ModelLogHandler struct {
	svc *service.Services
}

// NewModelLogHandler 创建模型响应日志处理器
func NewModelLogHandler(svc *service.Services) *ModelLogHandler {
	return &ModelLogHandler{svc: svc}
}

// List 查询原始模型响应
// GET /api/v1/model-responses?type=&limit=
func (h *ModelLogHandler) List(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		Unauthorized(c, "Not authenticated")
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	records, err := h.svc.ModelLogs.ListModelResponses(userID, c.Query("type"), limit)
	if err != nil {
		Error(c, err)
		return
	}

	Success(c, records)
}
