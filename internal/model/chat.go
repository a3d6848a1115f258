package model

import (
	"database/sql/driver"
	"encoding/json"
	"time"
)

// ChatSession 聊天会话
// 持有当前生效的训练计划快照和两段自由文本上下文
type ChatSession struct {
	ID                string        `gorm:"primaryKey;size:36" json:"id"`
	UserID            string        `gorm:"index;size:36" json:"user_id"`
	SessionName       string        `gorm:"size:255" json:"session_name"`
	CurrentPlan       Plan          `gorm:"type:jsonb" json:"current_plan"`
	UserContext       string        `gorm:"type:text" json:"user_context"`
	OnboardingContext string        `gorm:"type:text" json:"onboarding_context"`
	Status            string        `gorm:"index;size:20;default:active" json:"status"`
	CreatedAt         time.Time     `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt         time.Time     `gorm:"autoUpdateTime" json:"updated_at"`
	Messages          []ChatMessage `gorm:"foreignKey:SessionID" json:"messages,omitempty"`
}

// Clone 返回会话的深拷贝
// 缓存等共享场景返回副本，调用方可以安全修改
func (s *ChatSession) Clone() *ChatSession {
	if s == nil {
		return nil
	}
	out := *s
	out.CurrentPlan = s.CurrentPlan.Clone()
	if s.Messages != nil {
		out.Messages = append([]ChatMessage(nil), s.Messages...)
	}
	return &out
}

// ChatMessage 聊天消息，按 created_at 排序即对话顺序，只追加不修改
type ChatMessage struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	SessionID string    `gorm:"index;size:36" json:"session_id"`
	UserID    string    `gorm:"index;size:36" json:"user_id"`
	Role      string    `gorm:"size:20;index" json:"role"` // user, assistant, system
	Content   string    `gorm:"type:text" json:"content"`
	Metadata  JSONMap   `gorm:"type:jsonb" json:"metadata,omitempty"`
	CreatedAt time.Time `gorm:"autoCreateTime;index" json:"created_at"`
}

// 消息角色
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleSystem    = "system"
)

// 会话状态
const (
	SessionStatusActive   = "active"
	SessionStatusArchived = "archived"
)

// JSONMap 自由格式的 JSON 元数据列
type JSONMap map[string]interface{}

// JSONMap 实现 driver.Valuer 和 sql.Scanner
func (m JSONMap) Value() (driver.Value, error) {
	if m == nil {
		m = JSONMap{}
	}
	return json.Marshal(m)
}

func (m *JSONMap) Scan(value interface{}) error {
	bytes, ok := value.([]byte)
	if !ok {
		return nil
	}
	return json.Unmarshal(bytes, m)
}

func (JSONMap) GormDataType() string {
	return "jsonb"
}

// TableName 指定表名
func (ChatSession) TableName() string {
	return "chat_sessions"
}

func (ChatMessage) TableName() string {
	return "chat_messages"
}
