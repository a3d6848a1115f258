package embedding

import (
	"context"
	"errors"
	"testing"

	"github.com/cloudwego/eino/components/embedding"

	"github.com/ashwinyue/fit-coach/internal/model"
)

type fakeEmbedder struct {
	vectors [][]float64
	err     error
	texts   []string
}

func (f *fakeEmbedder) EmbedStrings(_ context.Context, texts []string, _ ...embedding.Option) ([][]float64, error) {
	f.texts = append(f.texts, texts...)
	return f.vectors, f.err
}

type fakeLogStore struct {
	embeddings []*model.UserContextEmbedding
	createErr  error
}

func (f *fakeLogStore) CreateModelResponse(rec *model.ModelResponse) error { return nil }

func (f *fakeLogStore) ListModelResponses(userID, responseType string, limit int) ([]*model.ModelResponse, error) {
	return nil, nil
}

func (f *fakeLogStore) CreateContextEmbedding(rec *model.UserContextEmbedding) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.embeddings = append(f.embeddings, rec)
	return nil
}

func TestSnapshotContextStoresVector(t *testing.T) {
	emb := &fakeEmbedder{vectors: [][]float64{{0.1, 0.2, 0.3}}}
	logs := &fakeLogStore{}
	svc := NewService(emb, logs)

	svc.SnapshotContext(context.Background(), "user-1", "## Dynamic User Context\n### Goals\n- Build muscle")

	if len(logs.embeddings) != 1 {
		t.Fatalf("stored %d snapshots, want 1", len(logs.embeddings))
	}
	rec := logs.embeddings[0]
	if rec.UserID != "user-1" {
		t.Errorf("user id = %q", rec.UserID)
	}
	if len(rec.Embedding) != 3 {
		t.Errorf("embedding = %v", rec.Embedding)
	}
	if len(emb.texts) != 1 || emb.texts[0] != rec.Content {
		t.Errorf("embedded texts = %v", emb.texts)
	}
}

func TestSnapshotContextEmbedderFailureStoresTextOnly(t *testing.T) {
	emb := &fakeEmbedder{err: errors.New("rate limited")}
	logs := &fakeLogStore{}
	svc := NewService(emb, logs)

	svc.SnapshotContext(context.Background(), "user-1", "some context")

	if len(logs.embeddings) != 1 {
		t.Fatal("snapshot should still be stored without a vector")
	}
	if logs.embeddings[0].Embedding != nil {
		t.Errorf("embedding = %v, want nil", logs.embeddings[0].Embedding)
	}
}

func TestSnapshotContextNilEmbedder(t *testing.T) {
	logs := &fakeLogStore{}
	svc := NewService(nil, logs)

	svc.SnapshotContext(context.Background(), "user-1", "text")

	if len(logs.embeddings) != 1 {
		t.Fatal("text snapshot expected even without an embedder")
	}
}

func TestSnapshotContextSkipsEmpty(t *testing.T) {
	logs := &fakeLogStore{}
	svc := NewService(nil, logs)

	svc.SnapshotContext(context.Background(), "user-1", "")

	if len(logs.embeddings) != 0 {
		t.Error("empty content must not be stored")
	}
}
