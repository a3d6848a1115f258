package model

import (
	"database/sql/driver"
	"encoding/json"
	"time"
)

// SetList 存成 JSON 数组的组建议列
type SetList []ExerciseSet

// SetList 实现 driver.Valuer 和 sql.Scanner
func (l SetList) Value() (driver.Value, error) {
	if l == nil {
		l = SetList{}
	}
	return json.Marshal(l)
}

func (l *SetList) Scan(value interface{}) error {
	bytes, ok := value.([]byte)
	if !ok {
		return nil
	}
	return json.Unmarshal(bytes, l)
}

func (SetList) GormDataType() string {
	return "jsonb"
}

// WeightSuggestionRecord 每次生成的重量建议落库记录
// 同一 (user, exercise) 的建议在计划修订之间复用，除非动作是修订新增的
type WeightSuggestionRecord struct {
	ID                 string    `gorm:"primaryKey;size:36" json:"id"`
	UserID             string    `gorm:"index;size:36" json:"user_id"`
	ExerciseName       string    `gorm:"index;size:255" json:"exercise_name"`
	ExerciseDetails    string    `gorm:"type:text" json:"exercise_details,omitempty"`
	UserContext        string    `gorm:"type:text" json:"user_context,omitempty"`
	SuggestedWeight    float64   `json:"suggested_weight"`
	Sets               SetList   `gorm:"type:jsonb" json:"sets"`
	IsRestricted       bool      `gorm:"default:false" json:"is_restricted"`
	RestrictionReason  string    `gorm:"type:text" json:"restriction_reason,omitempty"`
	Reasoning          string    `gorm:"type:text" json:"reasoning,omitempty"`
	SafetyNotes        string    `gorm:"type:text" json:"safety_notes,omitempty"`
	Method             string    `gorm:"size:50" json:"method"` // rule_based, ai_prompt_based, ai_batch_prompt
	CalculationDetails JSONMap   `gorm:"type:jsonb" json:"calculation_details,omitempty"`
	CreatedAt          time.Time `gorm:"autoCreateTime;index" json:"created_at"`
}

// TableName 指定表名
func (WeightSuggestionRecord) TableName() string {
	return "weight_suggestions"
}
