// Package embedding 把合并后的用户上下文做成向量快照
// 只写不读，失败只记日志，绝不影响调用方的主流程
package embedding

import (
	"context"
	"log"

	"github.com/cloudwego/eino/components/embedding"
	"github.com/google/uuid"

	"github.com/ashwinyue/fit-coach/internal/model"
	"github.com/ashwinyue/fit-coach/internal/repository"
)

// Service 上下文向量快照服务
type Service struct {
	embedder embedding.Embedder
	logs     repository.LogStore
}

// NewService 创建快照服务，embedder 可以为 nil（此时只存文本不存向量）
func NewService(embedder embedding.Embedder, logs repository.LogStore) *Service {
	return &Service{embedder: embedder, logs: logs}
}

// SnapshotContext 将一段上下文文本向量化后落库
// 向量化失败时仍然保存文本快照，落库失败只记日志
func (s *Service) SnapshotContext(ctx context.Context, userID, content string) {
	if s.logs == nil || content == "" {
		return
	}

	var vec model.Vector
	if s.embedder != nil {
		vectors, err := s.embedder.EmbedStrings(ctx, []string{content})
		if err != nil {
			log.Printf("context embedding failed, storing text only: %v", err)
		} else if len(vectors) > 0 {
			vec = model.Vector(vectors[0])
		}
	}

	rec := &model.UserContextEmbedding{
		ID:        uuid.NewString(),
		UserID:    userID,
		Content:   content,
		Embedding: vec,
	}
	if err := s.logs.CreateContextEmbedding(rec); err != nil {
		log.Printf("failed to store context snapshot: %v", err)
	}
}
