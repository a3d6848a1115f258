package model

import (
	"database/sql/driver"
	"encoding/json"
	"time"
)

// 模型响应日志类型
const (
	ResponseTypeDailyWorkout     = "daily_workout"
	ResponseTypeWeightSuggestion = "weight_suggestion"
	ResponseTypeChat             = "chat"
	ResponseTypeOnboarding       = "onboarding"
)

// ModelResponse 原始模型响应日志，尽力写入，失败不影响主流程
type ModelResponse struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	UserID    string    `gorm:"index;size:36" json:"user_id"`
	ModelName string    `gorm:"size:100" json:"model_name"`
	Prompt    string    `gorm:"type:text" json:"prompt"`
	Response  string    `gorm:"type:text" json:"response"`
	Type      string    `gorm:"index;size:50" json:"type"`
	CreatedAt time.Time `gorm:"autoCreateTime;index" json:"created_at"`
}

// Vector 存成 JSON 数组的向量列
type Vector []float64

// Vector 实现 driver.Valuer 和 sql.Scanner
func (v Vector) Value() (driver.Value, error) {
	if v == nil {
		v = Vector{}
	}
	return json.Marshal(v)
}

func (v *Vector) Scan(value interface{}) error {
	bytes, ok := value.([]byte)
	if !ok {
		return nil
	}
	return json.Unmarshal(bytes, v)
}

func (Vector) GormDataType() string {
	return "jsonb"
}

// UserContextEmbedding 合并后用户上下文的向量快照
type UserContextEmbedding struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	UserID    string    `gorm:"index;size:36" json:"user_id"`
	Content   string    `gorm:"type:text" json:"content"`
	Embedding Vector    `gorm:"type:jsonb" json:"embedding"`
	Metadata  JSONMap   `gorm:"type:jsonb" json:"metadata,omitempty"`
	CreatedAt time.Time `gorm:"autoCreateTime;index" json:"created_at"`
}

// TableName 指定表名
func (ModelResponse) TableName() string {
	return "model_responses"
}

func (UserContextEmbedding) TableName() string {
	return "user_context_embeddings"
}
