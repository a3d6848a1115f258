// Package model 提供健身教练应用的数据模型
package model

import (
	"database/sql/driver"
	"encoding/json"
)

// PlanSection 训练计划中的一个部分（Warmup / Main Workout / Cardio / Cooldown）
type PlanSection struct {
	Section   string   `json:"section"`
	Exercises []string `json:"exercises"`
}

// Plan 一天的完整训练计划
// today 为有序的 sections，weight_suggestions 以动作原文为 key
type Plan struct {
	Today             []PlanSection `json:"today"`
	AICoachTips       []string      `json:"ai_coach_tips"`
	ChangeSummary     string        `json:"change_summary,omitempty"`
	WeightSuggestions SuggestionMap `json:"weight_suggestions,omitempty"`
}

// AllExercises 按 section 顺序返回计划中的全部动作原文
func (p *Plan) AllExercises() []string {
	var out []string
	for _, sec := range p.Today {
		out = append(out, sec.Exercises...)
	}
	return out
}

// IsEmpty 判断计划是否为空
func (p *Plan) IsEmpty() bool {
	return p == nil || len(p.Today) == 0
}

// Clone 返回计划的深拷贝，修改副本不影响原值
func (p Plan) Clone() Plan {
	out := p
	if p.Today != nil {
		out.Today = make([]PlanSection, len(p.Today))
		for i, sec := range p.Today {
			out.Today[i] = PlanSection{
				Section:   sec.Section,
				Exercises: append([]string(nil), sec.Exercises...),
			}
		}
	}
	if p.AICoachTips != nil {
		out.AICoachTips = append([]string(nil), p.AICoachTips...)
	}
	if p.WeightSuggestions != nil {
		out.WeightSuggestions = make(SuggestionMap, len(p.WeightSuggestions))
		for k, v := range p.WeightSuggestions {
			v.Sets = append([]ExerciseSet(nil), v.Sets...)
			out.WeightSuggestions[k] = v
		}
	}
	return out
}

// Plan 实现 driver.Valuer 和 sql.Scanner
func (p Plan) Value() (driver.Value, error) {
	return json.Marshal(p)
}

func (p *Plan) Scan(value interface{}) error {
	bytes, ok := value.([]byte)
	if !ok {
		return nil
	}
	return json.Unmarshal(bytes, p)
}

func (Plan) GormDataType() string {
	return "jsonb"
}

// SetType 组别类型
const (
	SetTypeWarmup  = "warmup"
	SetTypeWorking = "working"
)

// ExerciseSet 单组建议（次数 / 重量kg / 类型）
type ExerciseSet struct {
	ID        string  `json:"id"`
	Type      string  `json:"type"`
	Reps      int     `json:"reps"`
	Weight    float64 `json:"weight"`
	Completed bool    `json:"completed"`
}

// WeightSuggestion 单个动作的重量建议
type WeightSuggestion struct {
	ExerciseName string        `json:"exercise_name"`
	Sets         []ExerciseSet `json:"sets"`
	Reasoning    string        `json:"reasoning"`
	SafetyNotes  string        `json:"safety_notes"`
	Success      bool          `json:"success"`
}

// SuggestionMap 动作原文 -> 重量建议
type SuggestionMap map[string]WeightSuggestion

// SuggestionMap 实现 driver.Valuer 和 sql.Scanner
func (m SuggestionMap) Value() (driver.Value, error) {
	if m == nil {
		m = SuggestionMap{}
	}
	return json.Marshal(m)
}

func (m *SuggestionMap) Scan(value interface{}) error {
	bytes, ok := value.([]byte)
	if !ok {
		return nil
	}
	return json.Unmarshal(bytes, m)
}

func (SuggestionMap) GormDataType() string {
	return "jsonb"
}

// StringList 存成 JSON 数组的字符串列表列
type StringList []string

// StringList 实现 driver.Valuer 和 sql.Scanner
func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		l = StringList{}
	}
	return json.Marshal(l)
}

func (l *StringList) Scan(value interface{}) error {
	bytes, ok := value.([]byte)
	if !ok {
		return nil
	}
	return json.Unmarshal(bytes, l)
}

func (StringList) GormDataType() string {
	return "jsonb"
}

// ContextDelta 从单轮对话中抽取出的用户上下文增量
// 各分类按集合语义合并，Notes 整体覆盖
type ContextDelta struct {
	Preferences []string `json:"preferences,omitempty"`
	Constraints []string `json:"constraints,omitempty"`
	Goals       []string `json:"goals,omitempty"`
	Dislikes    []string `json:"dislikes,omitempty"`
	Injuries    []string `json:"injuries,omitempty"`
	Schedule    []string `json:"schedule,omitempty"`
	Notes       string   `json:"notes,omitempty"`
}

// IsEmpty 判断增量是否为空
func (d *ContextDelta) IsEmpty() bool {
	if d == nil {
		return true
	}
	return len(d.Preferences) == 0 && len(d.Constraints) == 0 && len(d.Goals) == 0 &&
		len(d.Dislikes) == 0 && len(d.Injuries) == 0 && len(d.Schedule) == 0 && d.Notes == ""
}
