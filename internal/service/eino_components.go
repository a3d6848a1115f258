package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/cloudwego/eino-ext/components/embedding/dashscope"
	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/embedding"
	ecomodel "github.com/cloudwego/eino/components/model"

	"github.com/ashwinyue/fit-coach/internal/config"
)

// providerCredentials 按 provider 取 API key 与 baseURL
func providerCredentials(cfg *config.Config) (apiKey, baseURL string, err error) {
	aiCfg := cfg.AI

	switch aiCfg.Provider {
	case "openai":
		apiKey = aiCfg.OpenAI.APIKey
		baseURL = aiCfg.OpenAI.BaseURL
	case "alibaba", "qwen", "dashscope":
		apiKey = aiCfg.Alibaba.AccessKeySecret
		baseURL = "https://dashscope.aliyuncs.com/compatible-mode/v1"
	case "deepseek":
		apiKey = aiCfg.DeepSeek.APIKey
		baseURL = aiCfg.DeepSeek.BaseURL
	default:
		return "", "", fmt.Errorf("unsupported ai provider: %s", aiCfg.Provider)
	}

	if apiKey == "" {
		return "", "", fmt.Errorf("api_key is required for provider: %s", aiCfg.Provider)
	}
	return apiKey, baseURL, nil
}

// newChatModels 按配置的优先级列表创建 ChatModel
// 单个模型创建失败只记日志跳过，返回的 names 与 models 一一对应
func newChatModels(ctx context.Context, cfg *config.Config) ([]string, []ecomodel.ChatModel, error) {
	apiKey, baseURL, err := providerCredentials(cfg)
	if err != nil {
		return nil, nil, err
	}

	var names []string
	var models []ecomodel.ChatModel
	for _, name := range cfg.AI.Models {
		cm, err := openai.NewChatModel(ctx, &openai.ChatModelConfig{
			APIKey:  apiKey,
			BaseURL: baseURL,
			Model:   name,
		})
		if err != nil {
			log.Printf("Warning: failed to create chat model %s: %v", name, err)
			continue
		}
		names = append(names, name)
		models = append(models, cm)
	}
	if len(models) == 0 {
		return nil, nil, fmt.Errorf("no usable chat models from config")
	}
	return names, models, nil
}

// newEmbedder 创建 Embedding 器，不可用时返回 nil（上下文快照退化为纯文本）
func newEmbedder(ctx context.Context, cfg *config.Config) embedding.Embedder {
	embCfg := cfg.AI.Embedding

	apiKey := embCfg.APIKey
	if apiKey == "" {
		apiKey = cfg.AI.Alibaba.AccessKeySecret
	}
	if apiKey == "" {
		log.Printf("Warning: embedding api key not configured")
		return nil
	}

	modelName := embCfg.Model
	if modelName == "" {
		modelName = "text-embedding-v3"
	}

	embConfig := &dashscope.EmbeddingConfig{
		APIKey: apiKey,
		Model:  modelName,
	}
	if embCfg.Timeout > 0 {
		embConfig.Timeout = time.Duration(embCfg.Timeout) * time.Second
	}
	if embCfg.Dimensions > 0 {
		embConfig.Dimensions = &embCfg.Dimensions
	}

	embedder, err := dashscope.NewEmbedder(ctx, embConfig)
	if err != nil {
		log.Printf("Warning: failed to create embedder: %v", err)
		return nil
	}
	return embedder
}
