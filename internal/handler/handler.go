package handler

import (
	"github.com/ashwinyue/fit-coach/internal/service"
)

// Handlers 处理器集合
type Handlers struct {
	Auth       *AuthHandler
	Chat       *ChatHandler
	Proposal   *ProposalHandler
	Workout    *WorkoutHandler
	Weights    *WeightsHandler
	Context    *ContextHandler
	Onboarding *OnboardingHandler
	ModelLog   *ModelLogHandler
	System     *SystemHandler
}

// NewHandlers 创建所有处理器
func NewHandlers(svc *service.Services) *Handlers {
	return &Handlers{
		Auth:       NewAuthHandler(svc),
		Chat:       NewChatHandler(svc),
		Proposal:   NewProposalHandler(svc),
		Workout:    NewWorkoutHandler(svc),
		Weights:    NewWeightsHandler(svc),
		Context:    NewContextHandler(svc),
		Onboarding: NewOnboardingHandler(svc),
		ModelLog:   NewModelLogHandler(svc),
		System:     NewSystemHandler(svc),
	}
}
