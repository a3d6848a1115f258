// Package llm 提供带模型回退的文本生成封装
// 按配置的模型优先级逐个尝试，全部失败才返回错误
package llm

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
)

// ErrNoModelAvailable 所有候选模型都不可用
var ErrNoModelAvailable = errors.New("no model available")

// Generator 文本生成接口
type Generator interface {
	// Generate 发送 prompt 并返回模型文本与实际使用的模型名
	Generate(ctx context.Context, prompt string) (content string, modelName string, err error)
	// GenerateMessages 发送完整消息序列（system + user 等）
	GenerateMessages(ctx context.Context, messages []*schema.Message) (content string, modelName string, err error)
}

// candidate 一个候选模型及其名字
type candidate struct {
	name  string
	model model.ChatModel
}

// Chain 按优先级排列的模型回退链
// 无进程级"当前模型"状态：每次调用独立地从头尝试
type Chain struct {
	candidates []candidate
}

// NewChain 创建回退链，names 与 models 一一对应
func NewChain(names []string, models []model.ChatModel) (*Chain, error) {
	if len(names) != len(models) {
		return nil, fmt.Errorf("model names and instances mismatch: %d vs %d", len(names), len(models))
	}
	if len(models) == 0 {
		return nil, ErrNoModelAvailable
	}
	c := &Chain{}
	for i := range models {
		c.candidates = append(c.candidates, candidate{name: names[i], model: models[i]})
	}
	return c, nil
}

// Generate 发送单条 user prompt
func (c *Chain) Generate(ctx context.Context, prompt string) (string, string, error) {
	return c.GenerateMessages(ctx, []*schema.Message{
		{Role: schema.User, Content: prompt},
	})
}

// GenerateMessages 逐个模型尝试，返回第一个成功的结果
func (c *Chain) GenerateMessages(ctx context.Context, messages []*schema.Message) (string, string, error) {
	var lastErr error
	for _, cand := range c.candidates {
		resp, err := cand.model.Generate(ctx, messages)
		if err != nil {
			log.Printf("model %s failed: %v, trying next", cand.name, err)
			lastErr = err
			continue
		}
		if resp == nil || resp.Content == "" {
			lastErr = fmt.Errorf("model %s returned empty response", cand.name)
			continue
		}
		return resp.Content, cand.name, nil
	}
	if lastErr == nil {
		lastErr = ErrNoModelAvailable
	}
	return "", "", fmt.Errorf("all models failed: %w", lastErr)
}
