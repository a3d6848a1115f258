package model

import "time"

// 提案状态，pending 只能一次性迁移到 accepted 或 rejected
const (
	ProposalStatusPending  = "pending"
	ProposalStatusAccepted = "accepted"
	ProposalStatusRejected = "rejected"
)

// WorkoutChangeProposal 待确认的训练计划变更提案
// 由提案流水线创建，用户显式接受或拒绝之前不会生效
type WorkoutChangeProposal struct {
	ID                string        `gorm:"primaryKey;size:36" json:"id"`
	SessionID         string        `gorm:"index;size:36" json:"session_id"`
	UserID            string        `gorm:"index;size:36" json:"user_id"`
	ProposedPlan      Plan          `gorm:"type:jsonb" json:"proposed_plan"`
	ChangeSummary     string        `gorm:"type:text" json:"change_summary"`
	AICoachTips       StringList    `gorm:"type:jsonb" json:"ai_coach_tips"`
	WeightSuggestions SuggestionMap `gorm:"type:jsonb" json:"weight_suggestions"`
	Status            string        `gorm:"index;size:20;default:pending" json:"status"`
	CreatedAt         time.Time     `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt         time.Time     `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName 指定表名
func (WorkoutChangeProposal) TableName() string {
	return "workout_change_proposals"
}
