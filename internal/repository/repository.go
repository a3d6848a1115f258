package repository

import "gorm.io/gorm"

// Repositories 仓库集合，用于统一管理所有仓库
type Repositories struct {
	DB       *gorm.DB // 直接访问数据库
	Chat     *ChatRepository
	Proposal *ProposalRepository
	Weight   *WeightRepository
	Auth     *AuthRepository
	Log      *LogRepository
}

// NewRepositories 创建所有仓库
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		DB:       db,
		Chat:     NewChatRepository(db),
		Proposal: NewProposalRepository(db),
		Weight:   NewWeightRepository(db),
		Auth:     NewAuthRepository(db),
		Log:      NewLogRepository(db),
	}
}
