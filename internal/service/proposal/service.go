// Package proposal 编排训练计划变更的提案与确认
// 流程：生成新计划、只为新增动作算重量、存为 pending 提案、等用户接受或拒绝
package proposal

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"

	"github.com/ashwinyue/fit-coach/internal/model"
	"github.com/ashwinyue/fit-coach/internal/repository"
	"github.com/ashwinyue/fit-coach/internal/service/weights"
	"github.com/ashwinyue/fit-coach/internal/service/workout"
)

var (
	// ErrSessionNotFound 会话不存在或不属于该用户
	ErrSessionNotFound = errors.New("chat session not found")
	// ErrProposalNotFound 提案不存在或不属于该用户
	ErrProposalNotFound = errors.New("workout change proposal not found")
	// ErrAlreadyProcessed 提案已有终态，不能再次确认
	ErrAlreadyProcessed = errors.New("proposal has already been processed")
)

// Service 计划变更提案管线
type Service struct {
	chats     repository.ChatStore
	proposals repository.ProposalStore
	workouts  *workout.Service
	weights   *weights.Service
}

// NewService 创建提案管线
func NewService(chats repository.ChatStore, proposals repository.ProposalStore, workouts *workout.Service, weightSvc *weights.Service) *Service {
	return &Service{chats: chats, proposals: proposals, workouts: workouts, weights: weightSvc}
}

// ProposeResult 提案创建结果
type ProposeResult struct {
	ProposalID    string      `json:"proposal_id"`
	NewPlan       *model.Plan `json:"new_workout_plan"`
	ChangeSummary string      `json:"change_summary"`
	AICoachTips   []string    `json:"ai_coach_tips"`
}

// Propose 创建变更提案：no-proposal -> pending
// 计划生成失败则整体失败，不创建提案；重量生成失败只降级
func (s *Service) Propose(ctx context.Context, sessionID, userID, changeRequest string) (*ProposeResult, error) {
	session, err := s.chats.GetSessionForUser(sessionID, userID)
	if err != nil {
		return nil, ErrSessionNotFound
	}

	history, err := s.chats.GetMessagesBySessionID(sessionID)
	if err != nil {
		log.Printf("failed to load chat history for proposal: %v", err)
	}

	newPlan, err := s.workouts.GenerateChangedPlan(ctx, userID, workout.ChangeRequest{
		CurrentPlan:       &session.CurrentPlan,
		UserContext:       session.UserContext,
		OnboardingContext: session.OnboardingContext,
		History:           history,
		Request:           changeRequest,
	})
	if err != nil {
		return nil, fmt.Errorf("generate new workout plan: %w", err)
	}

	// 只为旧建议表里没有的动作生成重量，其余原样复用
	existing := session.CurrentPlan.WeightSuggestions
	var newExercises []string
	for _, exercise := range newPlan.AllExercises() {
		if _, known := existing[exercise]; !known {
			newExercises = append(newExercises, exercise)
		}
	}

	merged := make(model.SuggestionMap, len(existing)+len(newExercises))
	for name, suggestion := range existing {
		merged[name] = suggestion
	}
	if len(newExercises) > 0 {
		generated, err := s.weights.SuggestBatch(ctx, userID, session.UserContext, newExercises)
		if err != nil {
			log.Printf("weight generation degraded for proposal: %v", err)
		}
		for name, suggestion := range generated {
			merged[name] = suggestion
		}
	}
	newPlan.WeightSuggestions = merged

	summary := newPlan.ChangeSummary
	if summary == "" {
		summary = "Workout plan updated based on user feedback"
	}

	proposal := &model.WorkoutChangeProposal{
		ID:                uuid.NewString(),
		SessionID:         sessionID,
		UserID:            userID,
		ProposedPlan:      *newPlan,
		ChangeSummary:     summary,
		AICoachTips:       model.StringList(newPlan.AICoachTips),
		WeightSuggestions: merged,
		Status:            model.ProposalStatusPending,
	}
	if err := s.proposals.CreateProposal(proposal); err != nil {
		return nil, fmt.Errorf("store workout proposal: %w", err)
	}

	return &ProposeResult{
		ProposalID:    proposal.ID,
		NewPlan:       newPlan,
		ChangeSummary: summary,
		AICoachTips:   newPlan.AICoachTips,
	}, nil
}

// ConfirmResult 提案确认结果
type ConfirmResult struct {
	Accepted          bool                `json:"accepted"`
	NewPlan           *model.Plan         `json:"new_workout_plan,omitempty"`
	ChangeSummary     string              `json:"change_summary,omitempty"`
	AICoachTips       []string            `json:"ai_coach_tips,omitempty"`
	WeightSuggestions model.SuggestionMap `json:"weight_suggestions,omitempty"`
}

// Confirm 把 pending 提案推进到终态，恰好一次
// 终态写入用条件更新保证：并发确认只有一个会赢，输家拿到 ErrAlreadyProcessed
func (s *Service) Confirm(ctx context.Context, proposalID, userID string, accepted bool) (*ConfirmResult, error) {
	proposal, err := s.proposals.GetProposalForUser(proposalID, userID)
	if err != nil {
		return nil, ErrProposalNotFound
	}
	if proposal.Status != model.ProposalStatusPending {
		return nil, ErrAlreadyProcessed
	}

	status := model.ProposalStatusRejected
	if accepted {
		status = model.ProposalStatusAccepted
	}
	won, err := s.proposals.FinalizeProposal(proposalID, status)
	if err != nil {
		return nil, fmt.Errorf("finalize proposal: %w", err)
	}
	if !won {
		return nil, ErrAlreadyProcessed
	}

	if !accepted {
		s.saveSystemMessage(proposal, "Workout changes were not applied. Your current workout plan remains unchanged.", false)
		return &ConfirmResult{Accepted: false}, nil
	}

	if err := s.chats.UpdateSessionPlan(proposal.SessionID, proposal.ProposedPlan); err != nil {
		return nil, fmt.Errorf("apply workout to session: %w", err)
	}

	s.saveSystemMessage(proposal, fmt.Sprintf("Workout plan updated! %s", proposal.ChangeSummary), true)

	return &ConfirmResult{
		Accepted:          true,
		NewPlan:           &proposal.ProposedPlan,
		ChangeSummary:     proposal.ChangeSummary,
		AICoachTips:       proposal.AICoachTips,
		WeightSuggestions: proposal.WeightSuggestions,
	}, nil
}

// saveSystemMessage 在会话里留一条系统消息，失败不影响确认流程
func (s *Service) saveSystemMessage(proposal *model.WorkoutChangeProposal, content string, changed bool) {
	err := s.chats.CreateMessage(&model.ChatMessage{
		ID:        uuid.NewString(),
		SessionID: proposal.SessionID,
		UserID:    proposal.UserID,
		Role:      model.RoleSystem,
		Content:   content,
		Metadata: model.JSONMap{
			"proposal_id":     proposal.ID,
			"workout_changed": changed,
		},
	})
	if err != nil {
		log.Printf("failed to store system message: %v", err)
	}
}
