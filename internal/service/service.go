// Package service 组装所有业务服务
package service

import (
	"context"
	"fmt"

	einoembedding "github.com/cloudwego/eino/components/embedding"
	"github.com/redis/go-redis/v9"

	"github.com/ashwinyue/fit-coach/internal/config"
	"github.com/ashwinyue/fit-coach/internal/repository"
	"github.com/ashwinyue/fit-coach/internal/service/auth"
	"github.com/ashwinyue/fit-coach/internal/service/chat"
	"github.com/ashwinyue/fit-coach/internal/service/embedding"
	"github.com/ashwinyue/fit-coach/internal/service/llm"
	"github.com/ashwinyue/fit-coach/internal/service/onboarding"
	"github.com/ashwinyue/fit-coach/internal/service/proposal"
	"github.com/ashwinyue/fit-coach/internal/service/session"
	"github.com/ashwinyue/fit-coach/internal/service/weights"
	"github.com/ashwinyue/fit-coach/internal/service/workout"
)

// Services 服务集合
type Services struct {
	Auth       *auth.Service
	Chat       *chat.Service
	Workout    *workout.Service
	Weights    *weights.Service
	Proposal   *proposal.Service
	Onboarding *onboarding.Service

	// 模型响应日志只有读接口走这里
	ModelLogs repository.LogStore

	Config    *config.Config
	Generator llm.Generator
	Embedder  einoembedding.Embedder
}

// NewServices 创建所有服务
// 模型回退链按配置的优先级组装，embedder 缺失时上下文快照退化为纯文本
func NewServices(repo *repository.Repositories, cfg *config.Config, redisClient *redis.Client) (*Services, error) {
	ctx := context.Background()

	names, models, err := newChatModels(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("init chat models: %w", err)
	}
	generator, err := llm.NewChain(names, models)
	if err != nil {
		return nil, fmt.Errorf("init model chain: %w", err)
	}

	embedder := newEmbedder(ctx, cfg)
	snapshots := embedding.NewService(embedder, repo.Log)

	// 会话读路径加 Redis 缓存
	chatStore := session.NewCachingStore(repo.Chat, session.NewCache(redisClient))

	authSvc := auth.NewService(repo.Auth)
	weightsSvc := weights.NewService(generator, repo.Weight, repo.Log)
	workoutSvc := workout.NewService(generator, weightsSvc, repo.Log)
	chatSvc := chat.NewService(generator, chatStore, repo.Log, snapshots)
	proposalSvc := proposal.NewService(chatStore, repo.Proposal, workoutSvc, weightsSvc)
	onboardingSvc := onboarding.NewService(generator, workoutSvc, chatStore, repo.Log, authSvc, snapshots)

	return &Services{
		Auth:       authSvc,
		Chat:       chatSvc,
		Workout:    workoutSvc,
		Weights:    weightsSvc,
		Proposal:   proposalSvc,
		Onboarding: onboardingSvc,

		ModelLogs: repo.Log,

		Config:    cfg,
		Generator: generator,
		Embedder:  embedder,
	}, nil
}
