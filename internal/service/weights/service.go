package weights

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ashwinyue/fit-coach/internal/model"
	"github.com/ashwinyue/fit-coach/internal/repository"
	"github.com/ashwinyue/fit-coach/internal/service/llm"
)

// ErrInvalidAIResponse 模型返回的内容无法解析成组建议
var ErrInvalidAIResponse = errors.New("invalid AI response")

// 生成方式
const (
	MethodRuleBased = "rule_based"
	MethodAIPrompt  = "ai_prompt_based"
	MethodAIBatch   = "ai_batch_prompt"
)

// fallbackDelay 批量失败后逐个重试之间的固定间隔，避免触发限流
const fallbackDelay = 2 * time.Second

// Service 重量建议引擎
type Service struct {
	generator llm.Generator
	store     repository.WeightStore
	logs      repository.LogStore
	// sleep 可注入，测试时替换掉真实延迟
	sleep func(time.Duration)
}

// NewService 创建重量建议引擎
func NewService(generator llm.Generator, store repository.WeightStore, logs repository.LogStore) *Service {
	return &Service{
		generator: generator,
		store:     store,
		logs:      logs,
		sleep:     time.Sleep,
	}
}

// RuleResult 规则路径的完整返回
type RuleResult struct {
	ExerciseName       string              `json:"exercise_name"`
	SuggestedWeight    float64             `json:"suggested_weight"`
	Sets               []model.ExerciseSet `json:"sets"`
	IsRestricted       bool                `json:"is_restricted"`
	RestrictionReason  string              `json:"restriction_reason,omitempty"`
	Profile            Profile             `json:"user_profile"`
	CalculationDetails model.JSONMap       `json:"calculation_details"`
}

// SuggestRuleBased 规则路径：查表计算，不调用模型
func (s *Service) SuggestRuleBased(ctx context.Context, userID, exerciseName, exerciseDetails, userContext string) (*RuleResult, error) {
	if exerciseName == "" {
		return nil, errors.New("exercise_name is required")
	}

	profile := ParseProfile(userContext)
	calc := CalculateWeight(exerciseName, profile)

	result := &RuleResult{
		ExerciseName:      exerciseName,
		SuggestedWeight:   calc.Weight,
		IsRestricted:      calc.IsRestricted,
		RestrictionReason: calc.RestrictionReason,
		Profile:           profile,
		CalculationDetails: model.JSONMap{
			"base_weight":           calc.Weight,
			"experience_multiplier": calc.Multiplier,
			"max_allowed":           calc.MaxAllowed,
		},
	}
	if !calc.IsRestricted {
		result.Sets = BuildSets(exerciseName, calc.Weight, exerciseDetails)
	}

	s.persistRecord(&model.WeightSuggestionRecord{
		ID:                 uuid.NewString(),
		UserID:             userID,
		ExerciseName:       exerciseName,
		ExerciseDetails:    exerciseDetails,
		UserContext:        userContext,
		SuggestedWeight:    calc.Weight,
		Sets:               result.Sets,
		IsRestricted:       calc.IsRestricted,
		RestrictionReason:  calc.RestrictionReason,
		Method:             MethodRuleBased,
		CalculationDetails: result.CalculationDetails,
	})

	return result, nil
}

// SuggestAI 模型路径：单个动作的重量建议
// 模型输出解析失败视为错误，绝不编造数据
// 解析出的组和规则路径一样保证没有两组共享相同的 (reps, weight)
func (s *Service) SuggestAI(ctx context.Context, userID, userContext, exerciseDetails string) (*model.WeightSuggestion, error) {
	if userContext == "" || exerciseDetails == "" {
		return nil, errors.New("user_context and exercise_details are required")
	}

	prompt := strings.NewReplacer(
		"{user_context}", userContext,
		"{exercise_details}", exerciseDetails,
	).Replace(singlePromptTemplate)

	content, modelName, err := s.generator.Generate(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("generate weight suggestion: %w", err)
	}

	var suggestion model.WeightSuggestion
	if err := json.Unmarshal([]byte(llm.SanitizeJSON(content)), &suggestion); err != nil {
		log.Printf("failed to parse weight suggestion response: %v", err)
		return nil, ErrInvalidAIResponse
	}
	if len(suggestion.Sets) == 0 {
		return nil, ErrInvalidAIResponse
	}
	suggestion.Sets = dedupeSets(suggestion.Sets)
	suggestion.Success = true

	s.persistSuggestion(userID, userContext, exerciseDetails, &suggestion, MethodAIPrompt, nil)
	s.logResponse(userID, modelName, prompt, content)

	return &suggestion, nil
}

// SuggestBatch 一次调用为多个动作生成建议
// 整批失败时退化为逐个生成，调用之间固定延迟；单个失败写入占位条目而不是中断
func (s *Service) SuggestBatch(ctx context.Context, userID, userContext string, exercises []string) (model.SuggestionMap, error) {
	if len(exercises) == 0 {
		return model.SuggestionMap{}, nil
	}

	suggestions, err := s.batchCall(ctx, userID, userContext, exercises)
	if err == nil {
		return suggestions, nil
	}
	log.Printf("batch weight generation failed: %v, falling back to per-exercise generation", err)

	result := make(model.SuggestionMap, len(exercises))
	for i, exercise := range exercises {
		if i > 0 {
			s.sleep(fallbackDelay)
		}
		suggestion, err := s.SuggestAI(ctx, userID, userContext, exercise)
		if err != nil {
			log.Printf("weight suggestion for %q could not be generated: %v", exercise, err)
			result[exercise] = placeholderSuggestion(exercise)
			continue
		}
		suggestion.ExerciseName = exercise
		result[exercise] = *suggestion
	}
	return result, nil
}

// batchCall 单次批量调用
func (s *Service) batchCall(ctx context.Context, userID, userContext string, exercises []string) (model.SuggestionMap, error) {
	var list strings.Builder
	for i, ex := range exercises {
		fmt.Fprintf(&list, "%d. %s\n", i+1, ex)
	}

	prompt := strings.NewReplacer(
		"{user_context}", userContext,
		"{exercises_list}", list.String(),
	).Replace(batchPromptTemplate)

	content, modelName, err := s.generator.Generate(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("batch generate: %w", err)
	}

	var parsed struct {
		Exercises []model.WeightSuggestion `json:"exercises"`
	}
	if err := json.Unmarshal([]byte(llm.SanitizeJSON(content)), &parsed); err != nil {
		return nil, ErrInvalidAIResponse
	}
	if len(parsed.Exercises) == 0 {
		return nil, ErrInvalidAIResponse
	}

	s.logResponse(userID, modelName, prompt, content)

	result := make(model.SuggestionMap, len(exercises))
	for i := range parsed.Exercises {
		suggestion := parsed.Exercises[i]
		suggestion.Sets = dedupeSets(suggestion.Sets)
		suggestion.Success = true
		key := matchExercise(suggestion.ExerciseName, exercises)
		if key == "" {
			key = suggestion.ExerciseName
		}
		suggestion.ExerciseName = key
		result[key] = suggestion

		s.persistSuggestion(userID, userContext, key, &suggestion, MethodAIBatch, model.JSONMap{
			"batch_size": len(exercises),
		})
	}

	// 模型漏掉的动作补占位条目
	for _, ex := range exercises {
		if _, ok := result[ex]; !ok {
			result[ex] = placeholderSuggestion(ex)
		}
	}
	return result, nil
}

// matchExercise 把模型返回的动作名对回请求中的原文
// 计划里的动作串形如 "Goblet Squat - 3 sets of 10"，取 " - " 前的段做匹配
func matchExercise(name string, exercises []string) string {
	normalized := normalizeExerciseName(name)
	for _, ex := range exercises {
		if normalizeExerciseName(ex) == normalized {
			return ex
		}
	}
	for _, ex := range exercises {
		base := normalizeExerciseName(ex)
		if strings.Contains(base, normalized) || strings.Contains(normalized, base) {
			return ex
		}
	}
	return ""
}

func normalizeExerciseName(s string) string {
	if idx := strings.Index(s, " - "); idx >= 0 {
		s = s[:idx]
	}
	return strings.ToLower(strings.TrimSpace(s))
}

// placeholderSuggestion 生成失败时的占位条目
func placeholderSuggestion(exercise string) model.WeightSuggestion {
	return model.WeightSuggestion{
		ExerciseName: exercise,
		Sets:         []model.ExerciseSet{},
		Reasoning:    "Weight suggestion could not be generated",
		SafetyNotes:  "Please consult a trainer for appropriate weights",
		Success:      false,
	}
}

// persistSuggestion 尽力落库，失败仅记日志
func (s *Service) persistSuggestion(userID, userContext, exerciseDetails string, suggestion *model.WeightSuggestion, method string, extra model.JSONMap) {
	if s.store == nil {
		return
	}
	var suggestedWeight float64
	for _, set := range suggestion.Sets {
		if set.Type == model.SetTypeWorking {
			suggestedWeight = set.Weight
			break
		}
	}
	details := model.JSONMap{"method": method}
	for k, v := range extra {
		details[k] = v
	}
	s.persistRecord(&model.WeightSuggestionRecord{
		ID:                 uuid.NewString(),
		UserID:             userID,
		ExerciseName:       suggestion.ExerciseName,
		ExerciseDetails:    exerciseDetails,
		UserContext:        userContext,
		SuggestedWeight:    suggestedWeight,
		Sets:               suggestion.Sets,
		Reasoning:          suggestion.Reasoning,
		SafetyNotes:        suggestion.SafetyNotes,
		Method:             method,
		CalculationDetails: details,
	})
}

func (s *Service) persistRecord(rec *model.WeightSuggestionRecord) {
	if s.store == nil {
		return
	}
	if err := s.store.CreateSuggestion(rec); err != nil {
		log.Printf("failed to store weight suggestion for %s: %v", rec.ExerciseName, err)
	}
}

// logResponse 尽力记录原始模型响应
func (s *Service) logResponse(userID, modelName, prompt, response string) {
	if s.logs == nil {
		return
	}
	err := s.logs.CreateModelResponse(&model.ModelResponse{
		ID:        uuid.NewString(),
		UserID:    userID,
		ModelName: modelName,
		Prompt:    prompt,
		Response:  response,
		Type:      model.ResponseTypeWeightSuggestion,
	})
	if err != nil {
		log.Printf("failed to store model response log: %v", err)
	}
}

// ListSuggestions 查询用户已存储的重量建议，exerciseName 为空时不过滤动作
func (s *Service) ListSuggestions(userID, exerciseName string, limit int) ([]*model.WeightSuggestionRecord, error) {
	if s.store == nil {
		return nil, nil
	}
	return s.store.ListSuggestions(userID, exerciseName, limit)
}
