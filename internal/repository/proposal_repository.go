package repository

import (
	"time"

	"github.com/ashwinyue/fit-coach/internal/model"
	"gorm.io/gorm"
)

// ProposalRepository 训练计划变更提案数据访问
type ProposalRepository struct {
	db *gorm.DB
}

// NewProposalRepository 创建提案仓库
func NewProposalRepository(db *gorm.DB) *ProposalRepository {
	return &ProposalRepository{db: db}
}

// CreateProposal 创建提案
func (r *ProposalRepository) CreateProposal(p *model.WorkoutChangeProposal) error {
	return r.db.Create(p).Error
}

// GetProposalForUser 获取属于指定用户的提案
func (r *ProposalRepository) GetProposalForUser(id, userID string) (*model.WorkoutChangeProposal, error) {
	var proposal model.WorkoutChangeProposal
	err := r.db.Where("id = ? AND user_id = ?", id, userID).First(&proposal).Error
	if err != nil {
		return nil, err
	}
	return &proposal, nil
}

// FinalizeProposal 条件更新：只有仍为 pending 的提案才能写入终态
// WHERE status = 'pending' 保证并发确认时只有一个请求能赢
func (r *ProposalRepository) FinalizeProposal(id, status string) (bool, error) {
	result := r.db.Model(&model.WorkoutChangeProposal{}).
		Where("id = ? AND status = ?", id, model.ProposalStatusPending).
		Updates(map[string]interface{}{
			"status":     status,
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// ListProposalsBySession 列出会话下的提案
func (r *ProposalRepository) ListProposalsBySession(sessionID string) ([]*model.WorkoutChangeProposal, error) {
	var proposals []*model.WorkoutChangeProposal
	err := r.db.Where("session_id = ?", sessionID).Order("created_at DESC").Find(&proposals).Error
	return proposals, err
}
