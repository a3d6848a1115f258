package repository

import (
	"github.com/ashwinyue/fit-coach/internal/model"
	"gorm.io/gorm"
)

// WeightRepository 重量建议数据访问
type WeightRepository struct {
	db *gorm.DB
}

// NewWeightRepository 创建重量建议仓库
func NewWeightRepository(db *gorm.DB) *WeightRepository {
	return &WeightRepository{db: db}
}

// CreateSuggestion 落库一条重量建议
func (r *WeightRepository) CreateSuggestion(rec *model.WeightSuggestionRecord) error {
	return r.db.Create(rec).Error
}

// ListSuggestions 按用户（可选按动作名）列出历史建议
func (r *WeightRepository) ListSuggestions(userID, exerciseName string, limit int) ([]*model.WeightSuggestionRecord, error) {
	var records []*model.WeightSuggestionRecord
	query := r.db.Where("user_id = ?", userID).Order("created_at DESC")
	if exerciseName != "" {
		query = query.Where("exercise_name = ?", exerciseName)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}
	err := query.Find(&records).Error
	return records, err
}
