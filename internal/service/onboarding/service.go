// Package onboarding 处理新用户问卷并初始化会话
// 模型失败时退到基于问卷原文的固定摘要，入驻流程不会因模型不可用而失败
package onboarding

import (
	"context"
	"fmt"
	"log"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ashwinyue/fit-coach/internal/model"
	"github.com/ashwinyue/fit-coach/internal/repository"
	"github.com/ashwinyue/fit-coach/internal/service/chat"
	"github.com/ashwinyue/fit-coach/internal/service/llm"
	"github.com/ashwinyue/fit-coach/internal/service/workout"
)

// ProfileUpdater 从问卷解析出的档案字段写回用户记录
type ProfileUpdater interface {
	UpdateProfile(ctx context.Context, userID string, age int, weight float64, gender, experience string) (*model.User, error)
}

// Service 入驻服务
type Service struct {
	generator llm.Generator
	workouts  *workout.Service
	chats     repository.ChatStore
	logs      repository.LogStore
	profiles  ProfileUpdater
	snapshots chat.ContextPersister
}

// NewService 创建入驻服务
func NewService(generator llm.Generator, workoutSvc *workout.Service, chats repository.ChatStore, logs repository.LogStore, profiles ProfileUpdater, snapshots chat.ContextPersister) *Service {
	return &Service{
		generator: generator,
		workouts:  workoutSvc,
		chats:     chats,
		logs:      logs,
		profiles:  profiles,
		snapshots: snapshots,
	}
}

// Result 入驻处理结果
type Result struct {
	SessionID string      `json:"session_id"`
	Summary   string      `json:"summary"`
	Plan      *model.Plan `json:"plan"`
}

// 问卷是逐行的 bullet 列表，档案字段按行独立匹配
var (
	agePattern        = regexp.MustCompile(`Age:\s*(\d+)`)
	weightPattern     = regexp.MustCompile(`Weight:\s*(\d+)`)
	genderPattern     = regexp.MustCompile(`Gender:\s*(\w+)`)
	experiencePattern = regexp.MustCompile(`Experience duration:\s*([^\n]+)`)
)

// Process 分析问卷段落，创建带初始计划的会话
// 摘要作为会话的 onboarding 上下文，之后每轮对话都会带上
func (s *Service) Process(ctx context.Context, userID, paragraph string) (*Result, error) {
	summary := s.summarize(ctx, userID, paragraph)

	s.updateProfile(ctx, userID, paragraph)

	plan, err := s.workouts.GenerateWithWeights(ctx, userID, summary)
	if err != nil {
		return nil, fmt.Errorf("generate initial plan: %w", err)
	}

	session := &model.ChatSession{
		ID:                uuid.NewString(),
		UserID:            userID,
		SessionName:       "Chat Session " + time.Now().Format("2006-01-02"),
		CurrentPlan:       *plan,
		OnboardingContext: summary,
		Status:            model.SessionStatusActive,
	}
	if err := s.chats.CreateSession(session); err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}

	if s.snapshots != nil {
		s.snapshots.SnapshotContext(ctx, userID, paragraph)
	}

	return &Result{SessionID: session.ID, Summary: summary, Plan: plan}, nil
}

// summarize 调用模型生成结构化档案摘要，失败时退到固定模板
func (s *Service) summarize(ctx context.Context, userID, paragraph string) string {
	prompt := buildSummaryPrompt(paragraph)

	content, modelName, err := s.generator.Generate(ctx, prompt)
	if err != nil {
		log.Printf("onboarding summary generation failed: %v, using fallback summary", err)
		return fallbackSummary(paragraph)
	}

	if s.logs != nil {
		rec := &model.ModelResponse{
			ID:        uuid.NewString(),
			UserID:    userID,
			ModelName: modelName,
			Prompt:    paragraph,
			Response:  content,
			Type:      model.ResponseTypeOnboarding,
		}
		if err := s.logs.CreateModelResponse(rec); err != nil {
			log.Printf("failed to store onboarding response: %v", err)
		}
	}
	return content
}

// updateProfile 从问卷文本解析档案字段并尽力写回，失败只记日志
func (s *Service) updateProfile(ctx context.Context, userID, paragraph string) {
	if s.profiles == nil {
		return
	}
	var age int
	var weight float64
	var gender, experience string
	if m := agePattern.FindStringSubmatch(paragraph); m != nil {
		age, _ = strconv.Atoi(m[1])
	}
	if m := weightPattern.FindStringSubmatch(paragraph); m != nil {
		weight, _ = strconv.ParseFloat(m[1], 64)
	}
	if m := genderPattern.FindStringSubmatch(paragraph); m != nil {
		gender = m[1]
	}
	if m := experiencePattern.FindStringSubmatch(paragraph); m != nil {
		experience = strings.TrimSpace(m[1])
	}
	if age == 0 && weight == 0 && gender == "" && experience == "" {
		return
	}
	if _, err := s.profiles.UpdateProfile(ctx, userID, age, weight, gender, experience); err != nil {
		log.Printf("failed to update profile from onboarding: %v", err)
	}
}

func buildSummaryPrompt(paragraph string) string {
	return fmt.Sprintf(`%s

**SPECIFIC TASK:**
You are an expert fitness trainer and AI assistant with 10+ years of experience. Analyze the following comprehensive user onboarding questionnaire responses and create a detailed, structured summary for generating personalized workout plans.

**INSTRUCTIONS:**
1. Parse the structured questionnaire data carefully
2. Extract key insights about the user's fitness profile
3. Consider their experience level, goals, and current capabilities
4. Identify any limitations or special considerations
5. Provide actionable insights for workout planning
6. Focus on practical, achievable recommendations
7. Consider the user's lifestyle and time constraints

**USER ONBOARDING DATA:**
%s

**REQUIRED OUTPUT FORMAT:**
Create a comprehensive analysis that includes:

## User Profile Summary
- **Demographics:** Age, weight, gender
- **Experience Level:** Based on gym history and current capabilities
- **Primary Goal:** Main fitness objective
- **Current Fitness Level:** Based on bodyweight exercise performance

## Workout Preferences
- **Preferred Split:** Training style and muscle group organization
- **Training Frequency:** Based on split preference and experience
- **Equipment Access:** Inferred from goals and experience

## Key Considerations
- **Strengths:** What the user can do well
- **Limitations:** Areas that need attention or modification
- **Progression Path:** How to structure their training journey
- **Recovery Needs:** Based on recent workout history

## Training Recommendations
- **Workout Structure:** Recommended split and frequency
- **Exercise Selection:** Types of exercises appropriate for their level
- **Progression Strategy:** How to advance their training
- **Safety Considerations:** Any modifications needed

## Nutrition & Lifestyle
- **Dietary Considerations:** Basic nutrition advice for their goals
- **Sleep & Recovery:** Importance of rest and recovery
- **Motivation Tips:** How to stay consistent

Provide specific, actionable insights that will help create an effective, personalized workout plan. Be encouraging and realistic in your recommendations.
`, workout.Guidelines, paragraph)
}

// fallbackSummary 模型不可用时从问卷原文拼出的保底摘要
func fallbackSummary(paragraph string) string {
	lines := strings.Split(paragraph, "\n")
	goals := "General fitness"
	experience := "Not specified"
	age := "Not specified"
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		if goals == "General fitness" && strings.Contains(trimmed, "goal") {
			goals = trimmed
		}
		if experience == "Not specified" && strings.Contains(trimmed, "experience") {
			experience = trimmed
		}
		if age == "Not specified" && strings.Contains(trimmed, "Age:") {
			age = trimmed
		}
	}

	excerpt := paragraph
	if len(excerpt) > 150 {
		excerpt = excerpt[:150] + "..."
	}

	return fmt.Sprintf(`## User Profile Summary

- **Demographics:** %s
- **Experience Level:** %s
- **Primary Goal:** %s
- **Current Fitness Level:** Based on provided information

## Workout Preferences
- **Preferred Split:** To be determined based on experience level
- **Training Frequency:** Recommended 3-4 times per week for beginners
- **Equipment Access:** Standard gym equipment recommended

## Key Considerations
- **Strengths:** User is motivated to start their fitness journey
- **Limitations:** Will be assessed during initial workouts
- **Progression Path:** Start with basic movements and gradually increase intensity
- **Recovery Needs:** Adequate rest between workout sessions

## Training Recommendations
- **Workout Structure:** Full body workouts 3 times per week
- **Exercise Selection:** Compound movements with proper form
- **Progression Strategy:** Linear progression with focus on technique
- **Safety Considerations:** Always prioritize proper form over weight

## Nutrition & Lifestyle
- **Dietary Considerations:** Balanced diet with adequate protein
- **Sleep & Recovery:** 7-9 hours of quality sleep recommended
- **Motivation Tips:** Set small, achievable goals and track progress

Original input: %s`, age, experience, goals, excerpt)
}
