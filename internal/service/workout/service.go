// Package workout 生成每日训练计划
// 主路径走模型，失败时退到固定计划，调用方永远能拿到一份计划
package workout

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"

	"github.com/ashwinyue/fit-coach/internal/model"
	"github.com/ashwinyue/fit-coach/internal/repository"
	"github.com/ashwinyue/fit-coach/internal/service/llm"
	"github.com/ashwinyue/fit-coach/internal/service/weights"
)

// ErrInvalidPlanResponse 模型返回的内容无法解析成计划
var ErrInvalidPlanResponse = errors.New("invalid plan response")

// Service 训练计划生成器
type Service struct {
	generator llm.Generator
	weights   *weights.Service
	logs      repository.LogStore
}

// NewService 创建训练计划生成器
func NewService(generator llm.Generator, weightSvc *weights.Service, logs repository.LogStore) *Service {
	return &Service{generator: generator, weights: weightSvc, logs: logs}
}

// GeneratePlan 为今天生成训练计划结构（不含重量建议）
// 模型失败或解析失败时退到按关键词选定的固定计划，这条路径不会失败
func (s *Service) GeneratePlan(ctx context.Context, userID, userContext string) *model.Plan {
	prompt := fmt.Sprintf("%s\n\nUser Context:\n%s\n", Guidelines, userContext)

	content, modelName, err := s.generator.Generate(ctx, prompt)
	if err != nil {
		log.Printf("plan generation failed: %v, using fallback plan", err)
		return FallbackPlan(userContext)
	}

	plan, err := parsePlan(content)
	if err != nil {
		log.Printf("plan response unparseable: %v, using fallback plan", err)
		return FallbackPlan(userContext)
	}

	s.logResponse(userID, modelName, userContext, content)
	return plan
}

// GenerateWithWeights 生成计划并批量填充全部动作的重量建议
func (s *Service) GenerateWithWeights(ctx context.Context, userID, userContext string) (*model.Plan, error) {
	plan := s.GeneratePlan(ctx, userID, userContext)

	suggestions, err := s.weights.SuggestBatch(ctx, userID, userContext, plan.AllExercises())
	if err != nil {
		// 重量建议降级，不影响计划本身
		log.Printf("weight suggestions degraded: %v", err)
		suggestions = model.SuggestionMap{}
	}
	plan.WeightSuggestions = suggestions
	return plan, nil
}

// ChangeRequest 计划变更生成的输入
type ChangeRequest struct {
	CurrentPlan       *model.Plan
	UserContext       string
	OnboardingContext string
	History           []*model.ChatMessage
	Request           string
}

// historyWindow 变更 prompt 中携带的最近对话轮数
const historyWindow = 10

// GenerateChangedPlan 按用户的变更请求整体重新生成计划
// 与 GeneratePlan 不同，这条路径把错误向上传递，调用方决定是否创建提案
func (s *Service) GenerateChangedPlan(ctx context.Context, userID string, req ChangeRequest) (*model.Plan, error) {
	currentJSON, err := json.MarshalIndent(req.CurrentPlan, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal current plan: %w", err)
	}

	history := req.History
	if len(history) > historyWindow {
		history = history[len(history)-historyWindow:]
	}
	var historyText strings.Builder
	for _, msg := range history {
		fmt.Fprintf(&historyText, "%s: %s\n", msg.Role, msg.Content)
	}

	prompt := fmt.Sprintf(`
You are an AI fitness coach. Based on the user's chat conversation, you need to generate a NEW workout plan that incorporates their feedback and requests.

## Current Workout Plan:
%s

## User Context (Dynamic - Updated with each conversation):
%s

## Original Onboarding Context:
%s

## Recent Chat History:
%s

## User's Change Request:
%s

## AI Guidelines:
%s

## Instructions:
1. **Analyze the user's feedback** - What specific changes do they want?
2. **Generate a NEW workout plan** - Don't just modify the existing one, create a fresh plan
3. **Incorporate their preferences** - Use the updated user context and chat history
4. **Maintain safety** - Follow all the guidelines for their experience level
5. **Provide reasoning** - Explain why you made these changes

## Output Format:
Return ONLY a JSON object with the same structure as the guidelines, plus a "change_summary" field: a brief explanation of what changed and why (2-3 sentences).

## Important Notes:
- Return only the JSON, no additional text or commentary
- Make sure the changes address the user's specific requests
- Keep the same structure but update exercises as needed
- Provide 4-5 AI coach tips that explain the reasoning behind the changes
- The change_summary should clearly explain what was modified

Return only the JSON object:
`, currentJSON, req.UserContext, req.OnboardingContext, historyText.String(), req.Request, Guidelines)

	content, modelName, err := s.generator.Generate(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("generate changed plan: %w", err)
	}

	plan, err := parsePlan(content)
	if err != nil {
		return nil, err
	}

	s.logResponse(userID, modelName, req.Request, content)
	return plan, nil
}

// parsePlan 解析模型输出成计划，缺 tips 时注入通用 tips
func parsePlan(content string) (*model.Plan, error) {
	var plan model.Plan
	if err := json.Unmarshal([]byte(llm.SanitizeJSON(content)), &plan); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPlanResponse, err)
	}
	if plan.IsEmpty() {
		return nil, ErrInvalidPlanResponse
	}
	if len(plan.AICoachTips) == 0 {
		plan.AICoachTips = append([]string(nil), genericCoachTips...)
	}
	return &plan, nil
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
		Type:      model.ResponseTypeDailyWorkout,
	})
	if err != nil {
		log.Printf("failed to store model response log: %v", err)
	}
}
