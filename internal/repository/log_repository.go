package repository

import (
	"github.com/ashwinyue/fit-coach/internal/model"
	"gorm.io/gorm"
)

// LogRepository 模型响应日志与上下文向量快照数据访问
type LogRepository struct {
	db *gorm.DB
}

// NewLogRepository 创建日志仓库
func NewLogRepository(db *gorm.DB) *LogRepository {
	return &LogRepository{db: db}
}

// CreateModelResponse 落库一条原始模型响应
func (r *LogRepository) CreateModelResponse(rec *model.ModelResponse) error {
	return r.db.Create(rec).Error
}

// ListModelResponses 按用户（可选按类型）列出模型响应日志
func (r *LogRepository) ListModelResponses(userID, responseType string, limit int) ([]*model.ModelResponse, error) {
	var records []*model.ModelResponse
	query := r.db.Where("user_id = ?", userID).Order("created_at DESC")
	if responseType != "" {
		query = query.Where("type = ?", responseType)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}
	err := query.Find(&records).Error
	return records, err
}

// CreateContextEmbedding 落库一条上下文向量快照
func (r *LogRepository) CreateContextEmbedding(rec *model.UserContextEmbedding) error {
	return r.db.Create(rec).Error
}
