package weights

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/cloudwego/eino/schema"

	"github.com/ashwinyue/fit-coach/internal/model"
)

// fakeGenerator 按调用顺序返回预置结果
type fakeGenerator struct {
	responses []fakeResponse
	calls     int
	prompts   []string
}

type fakeResponse struct {
	content string
	err     error
}

func (f *fakeGenerator) Generate(_ context.Context, prompt string) (string, string, error) {
	f.prompts = append(f.prompts, prompt)
	if f.calls >= len(f.responses) {
		return "", "", errors.New("unexpected call")
	}
	resp := f.responses[f.calls]
	f.calls++
	return resp.content, "test-model", resp.err
}

func (f *fakeGenerator) GenerateMessages(ctx context.Context, messages []*schema.Message) (string, string, error) {
	var prompt string
	if len(messages) > 0 {
		prompt = messages[len(messages)-1].Content
	}
	return f.Generate(ctx, prompt)
}

type fakeWeightStore struct {
	records []*model.WeightSuggestionRecord
	err     error
}

func (f *fakeWeightStore) CreateSuggestion(rec *model.WeightSuggestionRecord) error {
	if f.err != nil {
		return f.err
	}
	f.records = append(f.records, rec)
	return nil
}

func (f *fakeWeightStore) ListSuggestions(userID, exerciseName string, limit int) ([]*model.WeightSuggestionRecord, error) {
	return f.records, nil
}

type fakeLogStore struct {
	responses  []*model.ModelResponse
	embeddings []*model.UserContextEmbedding
}

func (f *fakeLogStore) CreateModelResponse(rec *model.ModelResponse) error {
	f.responses = append(f.responses, rec)
	return nil
}

func (f *fakeLogStore) ListModelResponses(userID, responseType string, limit int) ([]*model.ModelResponse, error) {
	return f.responses, nil
}

func (f *fakeLogStore) CreateContextEmbedding(rec *model.UserContextEmbedding) error {
	f.embeddings = append(f.embeddings, rec)
	return nil
}

func newTestService(gen *fakeGenerator) (*Service, *fakeWeightStore, *fakeLogStore) {
	store := &fakeWeightStore{}
	logs := &fakeLogStore{}
	svc := NewService(gen, store, logs)
	svc.sleep = func(time.Duration) {}
	return svc, store, logs
}

const singleSuggestionJSON = `{
  "exercise_name": "Lat Pulldown",
  "sets": [
    {"id": "set-1", "type": "warmup", "reps": 12, "weight": 25, "completed": false},
    {"id": "set-2", "type": "working", "reps": 10, "weight": 35, "completed": false},
    {"id": "set-3", "type": "working", "reps": 8, "weight": 37.5, "completed": false}
  ],
  "reasoning": "Moderate load for an intermediate lifter.",
  "safety_notes": "Keep the torso upright."
}`

func TestSuggestRuleBased(t *testing.T) {
	svc, store, _ := newTestService(&fakeGenerator{})
	ctx := "Age: 28 - Weight: 80 - Gender: Male - Experience duration: 1-2 years"

	result, err := svc.SuggestRuleBased(context.Background(), "user-1", "Lat Pulldown", "Lat Pulldown - 3 sets of 8-12 reps", ctx)
	if err != nil {
		t.Fatalf("SuggestRuleBased() error = %v", err)
	}
	if result.IsRestricted {
		t.Fatal("lat pulldown should not be restricted")
	}
	if result.SuggestedWeight < 2.5 {
		t.Errorf("suggested weight %v below floor", result.SuggestedWeight)
	}
	if len(result.Sets) == 0 {
		t.Error("expected generated sets")
	}
	if len(store.records) != 1 || store.records[0].Method != MethodRuleBased {
		t.Errorf("expected one rule_based record, got %+v", store.records)
	}
}

func TestSuggestRuleBasedRestricted(t *testing.T) {
	svc, _, _ := newTestService(&fakeGenerator{})
	ctx := "Age: 22 - Weight: 70 - Gender: Male - Experience duration: Less than 6 months"

	result, err := svc.SuggestRuleBased(context.Background(), "user-1", "Barbell Squat", "", ctx)
	if err != nil {
		t.Fatalf("SuggestRuleBased() error = %v", err)
	}
	if !result.IsRestricted || result.SuggestedWeight != 0 || result.RestrictionReason == "" {
		t.Errorf("restricted result incomplete: %+v", result)
	}
	if len(result.Sets) != 0 {
		t.Errorf("restricted exercise should have no sets, got %d", len(result.Sets))
	}
}

func TestSuggestRuleBasedSurvivesStoreFailure(t *testing.T) {
	gen := &fakeGenerator{}
	store := &fakeWeightStore{err: errors.New("db down")}
	svc := NewService(gen, store, &fakeLogStore{})

	_, err := svc.SuggestRuleBased(context.Background(), "user-1", "Lat Pulldown", "", "")
	if err != nil {
		t.Fatalf("store failure should not fail the request: %v", err)
	}
}

func TestSuggestAI(t *testing.T) {
	gen := &fakeGenerator{responses: []fakeResponse{{content: "```json\n" + singleSuggestionJSON + "\n```"}}}
	svc, store, logs := newTestService(gen)

	suggestion, err := svc.SuggestAI(context.Background(), "user-1", "intermediate male, 80kg", "Lat Pulldown - 3 sets of 8-12")
	if err != nil {
		t.Fatalf("SuggestAI() error = %v", err)
	}
	if !suggestion.Success {
		t.Error("parsed suggestion should be marked successful")
	}
	if len(suggestion.Sets) != 3 {
		t.Errorf("got %d sets, want 3", len(suggestion.Sets))
	}
	if len(store.records) != 1 || store.records[0].Method != MethodAIPrompt {
		t.Errorf("expected one ai_prompt_based record, got %+v", store.records)
	}
	if len(logs.responses) != 1 || logs.responses[0].Type != model.ResponseTypeWeightSuggestion {
		t.Errorf("expected one model response log, got %+v", logs.responses)
	}
	if !strings.Contains(gen.prompts[0], "Lat Pulldown - 3 sets of 8-12") {
		t.Error("prompt should embed exercise details")
	}
}

func TestSuggestAIDedupesSets(t *testing.T) {
	duplicated := `{
  "exercise_name": "Lat Pulldown",
  "sets": [
    {"id": "set-1", "type": "working", "reps": 10, "weight": 30, "completed": false},
    {"id": "set-2", "type": "working", "reps": 10, "weight": 30, "completed": false},
    {"id": "set-3", "type": "working", "reps": 10, "weight": 30, "completed": false}
  ],
  "reasoning": "r",
  "safety_notes": "s"
}`
	gen := &fakeGenerator{responses: []fakeResponse{{content: duplicated}}}
	svc, _, _ := newTestService(gen)

	suggestion, err := svc.SuggestAI(context.Background(), "user-1", "ctx", "Lat Pulldown - 3 sets of 10")
	if err != nil {
		t.Fatalf("SuggestAI() error = %v", err)
	}
	assertNoDuplicatePairs(t, suggestion.Sets)
}

func assertNoDuplicatePairs(t *testing.T, sets []model.ExerciseSet) {
	t.Helper()
	type pair struct {
		reps   int
		weight float64
	}
	seen := map[pair]bool{}
	for _, set := range sets {
		p := pair{set.Reps, set.Weight}
		if seen[p] {
			t.Errorf("two sets share (reps=%d, weight=%v)", set.Reps, set.Weight)
		}
		seen[p] = true
	}
}

func TestSuggestAIInvalidResponse(t *testing.T) {
	gen := &fakeGenerator{responses: []fakeResponse{{content: "I cannot help with that."}}}
	svc, store, _ := newTestService(gen)

	_, err := svc.SuggestAI(context.Background(), "user-1", "ctx", "Lat Pulldown")
	if !errors.Is(err, ErrInvalidAIResponse) {
		t.Fatalf("error = %v, want ErrInvalidAIResponse", err)
	}
	if len(store.records) != 0 {
		t.Error("invalid response must not be persisted")
	}
}

func TestSuggestBatch(t *testing.T) {
	batch := `{
  "exercises": [
    {"exercise_name": "Goblet Squat", "sets": [{"id": "set-1", "type": "working", "reps": 10, "weight": 12.5, "completed": false}], "reasoning": "r", "safety_notes": "s"},
    {"exercise_name": "Dumbbell Row", "sets": [{"id": "set-1", "type": "working", "reps": 10, "weight": 15, "completed": false}], "reasoning": "r", "safety_notes": "s"}
  ]
}`
	gen := &fakeGenerator{responses: []fakeResponse{{content: batch}}}
	svc, store, _ := newTestService(gen)

	exercises := []string{"Goblet Squat - 3 sets of 10", "Dumbbell Row - 3 sets of 10-12"}
	result, err := svc.SuggestBatch(context.Background(), "user-1", "ctx", exercises)
	if err != nil {
		t.Fatalf("SuggestBatch() error = %v", err)
	}
	if gen.calls != 1 {
		t.Errorf("batch should use a single model call, got %d", gen.calls)
	}
	// 结果必须以计划里的动作原文为 key
	for _, ex := range exercises {
		suggestion, ok := result[ex]
		if !ok {
			t.Fatalf("missing suggestion for %q, keys: %v", ex, keysOf(result))
		}
		if !suggestion.Success {
			t.Errorf("suggestion for %q not marked successful", ex)
		}
	}
	if len(store.records) != 2 {
		t.Errorf("expected 2 persisted records, got %d", len(store.records))
	}
}

func TestSuggestBatchDedupesSets(t *testing.T) {
	batch := `{
  "exercises": [
    {"exercise_name": "Goblet Squat", "sets": [
      {"id": "set-1", "type": "working", "reps": 8, "weight": 20, "completed": false},
      {"id": "set-2", "type": "working", "reps": 8, "weight": 20, "completed": false}
    ], "reasoning": "r", "safety_notes": "s"}
  ]
}`
	gen := &fakeGenerator{responses: []fakeResponse{{content: batch}}}
	svc, _, _ := newTestService(gen)

	result, err := svc.SuggestBatch(context.Background(), "user-1", "ctx", []string{"Goblet Squat - 2 sets of 8"})
	if err != nil {
		t.Fatalf("SuggestBatch() error = %v", err)
	}
	assertNoDuplicatePairs(t, result["Goblet Squat - 2 sets of 8"].Sets)
}

func TestSuggestBatchFallsBackPerExercise(t *testing.T) {
	gen := &fakeGenerator{responses: []fakeResponse{
		{err: errors.New("rate limited")},            // 批量调用失败
		{content: singleSuggestionJSON},              // 第一个动作成功
		{content: "not json at all, sorry about it"}, // 第二个动作解析失败
	}}
	svc, _, _ := newTestService(gen)

	var slept int
	svc.sleep = func(time.Duration) { slept++ }

	exercises := []string{"Lat Pulldown", "Cursed Exercise"}
	result, err := svc.SuggestBatch(context.Background(), "user-1", "ctx", exercises)
	if err != nil {
		t.Fatalf("fallback path should not fail the batch: %v", err)
	}
	if gen.calls != 3 {
		t.Errorf("expected 1 batch + 2 fallback calls, got %d", gen.calls)
	}
	if slept != 1 {
		t.Errorf("expected a delay between serialized fallback calls, slept %d times", slept)
	}
	if !result["Lat Pulldown"].Success {
		t.Error("first exercise should succeed via fallback")
	}
	failed := result["Cursed Exercise"]
	if failed.Success {
		t.Error("unparseable exercise must be a failure placeholder")
	}
	if !strings.Contains(failed.Reasoning, "could not be generated") {
		t.Errorf("placeholder reasoning = %q", failed.Reasoning)
	}
}

func TestSuggestBatchEmptyInput(t *testing.T) {
	svc, _, _ := newTestService(&fakeGenerator{})
	result, err := svc.SuggestBatch(context.Background(), "user-1", "ctx", nil)
	if err != nil {
		t.Fatalf("SuggestBatch() error = %v", err)
	}
	if len(result) != 0 {
		t.Errorf("expected empty map, got %v", result)
	}
}

func keysOf(m model.SuggestionMap) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}
