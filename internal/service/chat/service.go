// Package chat 处理对话轮次：生成回复、抽取上下文增量、判断变更意图
package chat

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ashwinyue/fit-coach/internal/model"
	"github.com/ashwinyue/fit-coach/internal/repository"
	"github.com/ashwinyue/fit-coach/internal/service/llm"
	"github.com/ashwinyue/fit-coach/internal/service/usercontext"
)

// ErrSessionNotFound 请求里的会话不存在或不属于该用户
var ErrSessionNotFound = errors.New("chat session not found")

// fallbackReply 模型不可用时的兜底回复
const fallbackReply = "I'm sorry, I'm having trouble processing your message right now. Please try again in a moment."

// promptHistoryWindow 对话 prompt 中携带的最近轮数
const promptHistoryWindow = 5

var (
	responsePattern = regexp.MustCompile(`(?s)<<<RESPONSE_START>>>(.*?)<<<RESPONSE_END>>>`)
	contextPattern  = regexp.MustCompile(`(?s)<<<CONTEXT_START>>>(.*?)<<<CONTEXT_END>>>`)
)

// ContextPersister 上下文向量快照的尽力写入接口
type ContextPersister interface {
	SnapshotContext(ctx context.Context, userID, content string)
}

// Service 聊天服务
type Service struct {
	generator llm.Generator
	store     repository.ChatStore
	logs      repository.LogStore
	snapshots ContextPersister
}

// NewService 创建聊天服务
func NewService(generator llm.Generator, store repository.ChatStore, logs repository.LogStore, snapshots ContextPersister) *Service {
	return &Service{generator: generator, store: store, logs: logs, snapshots: snapshots}
}

// TurnRequest 一轮对话的输入
type TurnRequest struct {
	UserID            string
	Message           string
	SessionID         string // 为空则创建新会话
	CurrentPlan       *model.Plan
	UserContext       string
	OnboardingContext string
}

// TurnResult 一轮对话的输出
type TurnResult struct {
	SessionID            string `json:"session_id"`
	AIResponse           string `json:"ai_response"`
	ShouldProposeChanges bool   `json:"should_propose_changes"`
	UpdatedUserContext   string `json:"updated_user_context"`
}

// ProcessTurn 处理一轮对话
// 模型失败不影响轮次完成：回复退化为兜底文案，消息照常落库
func (s *Service) ProcessTurn(ctx context.Context, req TurnRequest) (*TurnResult, error) {
	if req.UserID == "" || req.Message == "" {
		return nil, fmt.Errorf("user_id and message are required")
	}

	session, err := s.resolveSession(req)
	if err != nil {
		return nil, err
	}

	history, err := s.store.GetMessagesBySessionID(session.ID)
	if err != nil {
		log.Printf("failed to load chat history: %v", err)
	}

	s.saveMessage(session.ID, req.UserID, model.RoleUser, req.Message)

	reply, delta := s.generateReply(ctx, req.UserID, req.Message, session, history)

	s.saveMessage(session.ID, req.UserID, model.RoleAssistant, reply)

	updatedContext := session.UserContext
	if !delta.IsEmpty() {
		updatedContext = usercontext.MergeParagraph(session.UserContext, delta)
		if err := s.store.UpdateSessionContext(session.ID, updatedContext); err != nil {
			log.Printf("failed to persist updated user context: %v", err)
		} else if s.snapshots != nil {
			s.snapshots.SnapshotContext(ctx, req.UserID, updatedContext)
		}
	}

	return &TurnResult{
		SessionID:            session.ID,
		AIResponse:           reply,
		ShouldProposeChanges: SuggestsWorkoutChange(reply),
		UpdatedUserContext:   updatedContext,
	}, nil
}

// resolveSession 按 ID 加载会话，没有 ID 就创建新会话
func (s *Service) resolveSession(req TurnRequest) (*model.ChatSession, error) {
	if req.SessionID != "" {
		session, err := s.store.GetSessionForUser(req.SessionID, req.UserID)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, req.SessionID)
		}
		return session, nil
	}

	session := &model.ChatSession{
		ID:                uuid.NewString(),
		UserID:            req.UserID,
		SessionName:       fmt.Sprintf("Chat Session %s", time.Now().Format("2006-01-02")),
		UserContext:       req.UserContext,
		OnboardingContext: req.OnboardingContext,
		Status:            model.SessionStatusActive,
	}
	if req.CurrentPlan != nil {
		session.CurrentPlan = *req.CurrentPlan
	}
	if err := s.store.CreateSession(session); err != nil {
		return nil, fmt.Errorf("create chat session: %w", err)
	}
	return session, nil
}

// generateReply 调模型生成回复并抽取上下文增量
// 失败时返回兜底文案与空增量
func (s *Service) generateReply(ctx context.Context, userID, message string, session *model.ChatSession, history []*model.ChatMessage) (string, *model.ContextDelta) {
	prompt := buildTurnPrompt(message, session, history)

	content, modelName, err := s.generator.Generate(ctx, prompt)
	if err != nil {
		log.Printf("chat generation failed: %v", err)
		return fallbackReply, &model.ContextDelta{}
	}

	s.logResponse(userID, modelName, prompt, content)

	reply := strings.TrimSpace(content)
	if m := responsePattern.FindStringSubmatch(content); m != nil {
		reply = strings.TrimSpace(m[1])
	}

	delta := &model.ContextDelta{}
	if m := contextPattern.FindStringSubmatch(content); m != nil {
		delta = usercontext.ParseDelta(m[1])
	}
	return reply, delta
}

func buildTurnPrompt(message string, session *model.ChatSession, history []*model.ChatMessage) string {
	planJSON, _ := json.MarshalIndent(session.CurrentPlan, "", "  ")

	recent := history
	if len(recent) > promptHistoryWindow {
		recent = recent[len(recent)-promptHistoryWindow:]
	}
	var historyText strings.Builder
	for _, msg := range recent {
		fmt.Fprintf(&historyText, "%s: %s\n", msg.Role, msg.Content)
	}

	return fmt.Sprintf(`You are an AI fitness coach and personal trainer. You're having a conversation with a user about their workout plan and fitness goals.

Current Workout Plan:
%s

User Context (Dynamic - Updated with each conversation):
%s

Original Onboarding Context:
%s

Recent Chat History:
%s

User's Current Message:
%s

Instructions:
1. Be conversational and supportive. Reference the current workout when relevant.
2. If the user mentions new preferences, goals, constraints, injuries, dislikes, schedule, or notes, extract them.
3. Keep responses concise - MAXIMUM 60-70 words.
4. If you suggest workout changes, mention that you'll need to confirm the changes.

Format your response EXACTLY like this (replace content but keep the delimiters):
<<<RESPONSE_START>>>
Your conversational response here (plain text, can use multiple paragraphs and line breaks)
<<<RESPONSE_END>>>
<<<CONTEXT_START>>>
preferences: preference1, preference2
goals: goal1, goal2
constraints: constraint1
dislikes: dislike1
injuries: injury1
schedule: schedule1
notes: any notes
<<<CONTEXT_END>>>

Only include context fields that have new information. Leave out empty fields.`,
		planJSON, session.UserContext, session.OnboardingContext, historyText.String(), message)
}

// ApplyFeedback 把动作反馈（喜欢 / 不喜欢 / 跳过）并入会话上下文
func (s *Service) ApplyFeedback(ctx context.Context, sessionID, userID, action, exerciseName, reason string) (string, error) {
	session, err := s.store.GetSessionForUser(sessionID, userID)
	if err != nil {
		return "", fmt.Errorf("chat session not found: %w", err)
	}

	delta := usercontext.DeltaForAction(action, exerciseName, reason)
	if delta == nil {
		return session.UserContext, nil
	}

	updated := usercontext.MergeParagraph(session.UserContext, delta)
	if err := s.store.UpdateSessionContext(sessionID, updated); err != nil {
		return "", fmt.Errorf("persist user context: %w", err)
	}
	if s.snapshots != nil {
		s.snapshots.SnapshotContext(ctx, userID, updated)
	}
	return updated, nil
}

// GetSession 加载会话及其消息
func (s *Service) GetSession(sessionID, userID string) (*model.ChatSession, error) {
	session, err := s.store.GetSessionForUser(sessionID, userID)
	if err != nil {
		return nil, err
	}
	msgs, err := s.store.GetMessagesBySessionID(sessionID)
	if err != nil {
		log.Printf("failed to load messages for session %s: %v", sessionID, err)
		return session, nil
	}
	session.Messages = make([]model.ChatMessage, 0, len(msgs))
	for _, m := range msgs {
		session.Messages = append(session.Messages, *m)
	}
	return session, nil
}

// ListSessions 列出用户的会话
func (s *Service) ListSessions(userID string, offset, limit int) ([]*model.ChatSession, error) {
	return s.store.ListSessions(userID, offset, limit)
}

func (s *Service) saveMessage(sessionID, userID, role, content string) {
	err := s.store.CreateMessage(&model.ChatMessage{
		ID:        uuid.NewString(),
		SessionID: sessionID,
		UserID:    userID,
		Role:      role,
		Content:   content,
	})
	if err != nil {
		log.Printf("failed to store %s message: %v", role, err)
	}
}

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
		Type:      model.ResponseTypeChat,
	})
	if err != nil {
		log.Printf("failed to store model response log: %v", err)
	}
}
