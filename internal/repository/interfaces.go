// Package repository 定义数据访问接口
// 接口抽象使依赖注入和单元测试成为可能
package repository

import "github.com/ashwinyue/fit-coach/internal/model"

// ChatStore 会话与消息数据访问接口
type ChatStore interface {
	CreateSession(session *model.ChatSession) error
	GetSessionByID(id string) (*model.ChatSession, error)
	GetSessionForUser(id, userID string) (*model.ChatSession, error)
	ListSessions(userID string, offset, limit int) ([]*model.ChatSession, error)
	UpdateSession(session *model.ChatSession) error
	UpdateSessionContext(sessionID, userContext string) error
	UpdateSessionPlan(sessionID string, plan model.Plan) error

	CreateMessage(msg *model.ChatMessage) error
	GetMessagesBySessionID(sessionID string) ([]*model.ChatMessage, error)
	GetRecentMessagesBySession(sessionID string, limit int) ([]*model.ChatMessage, error)
}

// ProposalStore 训练计划变更提案数据访问接口
type ProposalStore interface {
	CreateProposal(p *model.WorkoutChangeProposal) error
	GetProposalForUser(id, userID string) (*model.WorkoutChangeProposal, error)
	// FinalizeProposal 仅当提案仍为 pending 时写入终态
	// 返回 false 表示提案已被处理过（并发确认只有一个会赢）
	FinalizeProposal(id, status string) (bool, error)
	ListProposalsBySession(sessionID string) ([]*model.WorkoutChangeProposal, error)
}

// WeightStore 重量建议数据访问接口
type WeightStore interface {
	CreateSuggestion(rec *model.WeightSuggestionRecord) error
	ListSuggestions(userID, exerciseName string, limit int) ([]*model.WeightSuggestionRecord, error)
}

// AuthStore 用户与令牌数据访问接口
type AuthStore interface {
	CreateUser(user *model.User) error
	GetUserByID(id string) (*model.User, error)
	GetUserByEmail(email string) (*model.User, error)
	GetUserByUsername(username string) (*model.User, error)
	UpdateUser(user *model.User) error

	CreateToken(token *model.AuthToken) error
	GetTokenByValue(token string) (*model.AuthToken, error)
	RevokeToken(id string) error
}

// LogStore 模型响应日志与上下文向量快照访问接口
type LogStore interface {
	CreateModelResponse(rec *model.ModelResponse) error
	ListModelResponses(userID, responseType string, limit int) ([]*model.ModelResponse, error)
	CreateContextEmbedding(rec *model.UserContextEmbedding) error
}
